package player

import (
	"math"
	"testing"

	"scene-viewer/internal/input"
	"scene-viewer/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = 1.0 / 60.0

func newTestController(y float32) (*Controller, *input.InputManager) {
	im := input.NewInputManager()
	im.Lock()
	c := NewController(NewBody(mgl32.Vec3{0, y, 0}), NewRig(-90, 0, 0.1), im, DefaultTuning())
	return c, im
}

func TestMoveDirectionMagnitude(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		f, b, l, r := mask&1 != 0, mask&2 != 0, mask&4 != 0, mask&8 != 0
		n := MoveDirection(f, b, l, r).Len()
		assert.True(t, n == 0 || math.Abs(float64(n)-1) < 1e-6, "mask %04b gave |d|=%v", mask, n)
		assert.False(t, math.IsNaN(float64(n)))
	}
}

func TestMoveDirectionDiagonal(t *testing.T) {
	raw := rawDirection(true, false, true, false)
	assert.Equal(t, mgl32.Vec3{-1, 0, 1}, raw)

	d := MoveDirection(true, false, true, false)
	assert.InDelta(t, -0.7071, d.X(), 1e-4)
	assert.InDelta(t, 0.7071, d.Z(), 1e-4)

	d = MoveDirection(true, false, false, true)
	assert.InDelta(t, 0.7071, d.X(), 1e-4)
	assert.InDelta(t, 0.7071, d.Z(), 1e-4)

	assert.Equal(t, mgl32.Vec3{}, MoveDirection(false, false, false, false))
	assert.Equal(t, mgl32.Vec3{}, MoveDirection(true, true, true, true))
}

func TestFallSettlesOnFloor(t *testing.T) {
	c, _ := newTestController(30)

	c.Update(step)
	assert.Less(t, c.Body.Velocity.Y(), float32(0), "gravity accumulates")

	for i := 0; i < 600 && c.Body.Position.Y() > GroundHeight; i++ {
		c.Update(step)
	}
	assert.Equal(t, float32(GroundHeight), c.Body.Position.Y())
	assert.Equal(t, float32(0), c.Body.Velocity.Y())
	assert.True(t, c.Body.CanJump)
}

func TestJumpIsSingleShot(t *testing.T) {
	c, im := newTestController(GroundHeight)
	c.Update(step) // settle on the floor
	require.True(t, c.Body.CanJump)

	im.KeyDown(input.Space)
	c.Update(step)
	assert.Equal(t, float32(JumpImpulse), c.Body.Velocity.Y())
	assert.False(t, c.Body.CanJump)

	im.KeyUp(input.Space)
	c.Update(step)
	vy := c.Body.Velocity.Y()

	im.KeyDown(input.Space)
	c.Update(step)
	assert.InDelta(t, vy-Gravity*step, c.Body.Velocity.Y(), 1e-3, "mid-air jump must not add impulse")
	assert.Greater(t, c.Body.Position.Y(), float32(GroundHeight))
}

func TestHeldJumpDoesNotRepeat(t *testing.T) {
	c, im := newTestController(GroundHeight)
	im.KeyDown(input.Space)
	c.Update(step)
	require.Equal(t, float32(JumpImpulse), c.Body.Velocity.Y())

	// keep holding space until landing; no second jump is armed
	for i := 0; i < 600 && c.Body.Position.Y() > GroundHeight; i++ {
		im.KeyDown(input.Space)
		c.Update(step)
	}
	assert.Equal(t, float32(GroundHeight), c.Body.Position.Y())
	c.Update(step)
	assert.Equal(t, float32(0), c.Body.Velocity.Y())
}

func TestHorizontalDecay(t *testing.T) {
	c, im := newTestController(GroundHeight)
	im.KeyDown(input.KeyD)
	for i := 0; i < 30; i++ {
		c.Update(step)
	}
	im.KeyUp(input.KeyD)

	prev := float32(math.Abs(float64(c.Body.Velocity.X())))
	require.Greater(t, prev, float32(0))
	for i := 0; i < 100; i++ {
		c.Update(step)
		cur := float32(math.Abs(float64(c.Body.Velocity.X())))
		assert.Less(t, cur, prev)
		assert.Greater(t, cur, float32(0))
		prev = cur
	}
}

func TestForwardFollowsLook(t *testing.T) {
	c, im := newTestController(GroundHeight)
	im.KeyDown(input.KeyW)
	for i := 0; i < 10; i++ {
		c.Update(step)
	}
	assert.Less(t, c.Body.Position.Z(), float32(0), "yaw -90 walks towards -Z")
	assert.InDelta(t, 0, c.Body.Position.X(), 1e-3)

	c.Rig.Yaw = 0
	x := c.Body.Position.X()
	for i := 0; i < 10; i++ {
		c.Update(step)
	}
	assert.Greater(t, c.Body.Position.X(), x, "yaw 0 walks towards +X")
}

func TestUnlockedFreezesBody(t *testing.T) {
	c, im := newTestController(30)
	im.KeyDown(input.KeyW)
	c.Update(step)
	im.Unlock()

	pos, vel := c.Body.Position, c.Body.Velocity
	im.KeyDown(input.Space)
	for i := 0; i < 20; i++ {
		c.Update(step)
	}
	assert.Equal(t, pos, c.Body.Position)
	assert.Equal(t, vel, c.Body.Velocity)

	// jump pressed while unlocked is discarded
	im.Lock()
	c.Body.Position[1] = GroundHeight
	c.Body.Velocity = mgl32.Vec3{}
	c.Update(step)
	assert.Equal(t, float32(0), c.Body.Velocity.Y())
}

func TestGroundProbeOnCollider(t *testing.T) {
	c, _ := newTestController(30)
	// box top at y=15 so the probe (origin 10 below the camera, 10 long) reaches it
	c.AddCollider(physics.AABB{Min: mgl32.Vec3{-50, 0, -50}, Max: mgl32.Vec3{50, 15, 50}})

	c.Body.Velocity[1] = -100
	c.Update(step)
	assert.GreaterOrEqual(t, c.Body.Velocity.Y(), float32(0))
	assert.True(t, c.Body.CanJump)
}

func TestMouseLookWhileLocked(t *testing.T) {
	c, im := newTestController(GroundHeight)
	im.MouseMove(100, -50)
	c.Update(step)
	assert.InDelta(t, -80.0, c.Rig.Yaw, 1e-9)
	assert.InDelta(t, 5.0, c.Rig.Pitch, 1e-9)
}

func TestTuningValidate(t *testing.T) {
	assert.NoError(t, DefaultTuning().Validate())
	bad := DefaultTuning()
	bad.Gravity = -1
	assert.Error(t, bad.Validate())
}
