package player

import (
	"scene-viewer/internal/input"
	"scene-viewer/internal/physics"
	"scene-viewer/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Intent is the slice of input state the controller reads each tick.
type Intent interface {
	IsPointerLocked() bool
	IsActive(action input.Action) bool
	ConsumeJump() bool
	TakeLook() (dx, dy float64)
}

// Controller turns held keys into rig motion with a simplified walking model:
// exponential horizontal damping, constant gravity, thrust while a key is held,
// a downward ground probe and a hard floor at the ground height.
type Controller struct {
	Body   *Body
	Rig    *Rig
	Tuning Tuning

	intent  Intent
	probe   *physics.Raycaster
	objects []physics.Collider
}

func NewController(body *Body, rig *Rig, intent Intent, tuning Tuning) *Controller {
	return &Controller{
		Body:   body,
		Rig:    rig,
		Tuning: tuning,
		intent: intent,
		probe:  physics.NewDownRaycaster(tuning.ProbeDistance),
	}
}

// AddCollider registers an object the ground probe can stand on.
func (c *Controller) AddCollider(obj physics.Collider) {
	c.objects = append(c.objects, obj)
}

// SetTuning swaps the walking constants; the body state is kept.
func (c *Controller) SetTuning(t Tuning) {
	c.Tuning = t
	c.probe.Far = t.ProbeDistance
}

// Update advances the body by delta seconds. While the pointer is unlocked it does
// nothing at all, so the body stays frozen in place.
func (c *Controller) Update(delta float64) {
	if !c.intent.IsPointerLocked() {
		c.intent.ConsumeJump()
		return
	}
	defer profiling.Track("player.Update")()

	c.Rig.Look(c.intent.TakeLook())

	t := c.Tuning
	d := float32(delta)
	b := c.Body
	v := &b.Velocity

	v[0] -= v[0] * t.Damping * d
	v[2] -= v[2] * t.Damping * d
	v[1] -= t.Gravity * d

	forward := c.intent.IsActive(input.ActionMoveForward)
	backward := c.intent.IsActive(input.ActionMoveBackward)
	left := c.intent.IsActive(input.ActionMoveLeft)
	right := c.intent.IsActive(input.ActionMoveRight)
	dir := MoveDirection(forward, backward, left, right)

	if forward || backward {
		v[2] -= dir.Z() * t.Thrust * d
	}
	if left || right {
		v[0] -= dir.X() * t.Thrust * d
	}

	origin := b.Position
	origin[1] -= t.ProbeOffset
	if hits := c.probe.IntersectObjects(origin, c.objects); len(hits) > 0 {
		v[1] = max(0, v[1])
		b.CanJump = true
	}

	b.Position = c.Rig.MoveRight(b.Position, -v[0]*d)
	b.Position = c.Rig.MoveForward(b.Position, -v[2]*d)
	b.Position[1] += v[1] * d

	if b.Position[1] < t.GroundHeight {
		v[1] = 0
		b.Position[1] = t.GroundHeight
		b.CanJump = true
	}

	if c.intent.ConsumeJump() && b.CanJump {
		v[1] += t.JumpImpulse
		b.CanJump = false
	}
}

// MoveDirection converts held keys into a unit direction: z is forward, x is right.
// No keys, or opposing keys, give the zero vector.
func MoveDirection(forward, backward, left, right bool) mgl32.Vec3 {
	d := rawDirection(forward, backward, left, right)
	if l := d.Len(); l > 0 {
		return d.Mul(1 / l)
	}
	return d
}

func rawDirection(forward, backward, left, right bool) mgl32.Vec3 {
	return mgl32.Vec3{b2f(right) - b2f(left), 0, b2f(forward) - b2f(backward)}
}

func b2f(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// Eye is the camera position: the body's position.
func (c *Controller) Eye() mgl32.Vec3 {
	return c.Body.Position
}

func (c *Controller) ViewMatrix() mgl32.Mat4 {
	return c.Rig.ViewMatrix(c.Body.Position)
}
