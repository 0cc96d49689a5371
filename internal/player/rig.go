package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const maxPitch = 89.0

// Rig is a first-person camera rig. Yaw and Pitch are in degrees; yaw -90 looks down -Z.
type Rig struct {
	Yaw         float64
	Pitch       float64
	Sensitivity float64 // degrees per pixel of pointer movement
}

func NewRig(yaw, pitch, sensitivity float64) *Rig {
	r := &Rig{Yaw: yaw, Sensitivity: sensitivity}
	r.SetPitch(pitch)
	return r
}

// Look applies a relative pointer movement. Moving the pointer up (negative dy) looks up.
func (r *Rig) Look(dx, dy float64) {
	r.Yaw += dx * r.Sensitivity
	r.SetPitch(r.Pitch - dy*r.Sensitivity)
}

func (r *Rig) SetPitch(pitch float64) {
	r.Pitch = max(-maxPitch, min(maxPitch, pitch))
}

// Forward is the look direction projected onto the ground plane (unit length).
func (r *Rig) Forward() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(r.Yaw))
	return mgl32.Vec3{float32(math.Cos(float64(y))), 0, float32(math.Sin(float64(y)))}
}

// Right is the horizontal axis to the right of the look direction (unit length).
func (r *Rig) Right() mgl32.Vec3 {
	f := r.Forward()
	return mgl32.Vec3{-f.Z(), 0, f.X()}
}

// Front is the full look direction including pitch.
func (r *Rig) Front() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(float32(r.Yaw)))
	p := float64(mgl32.DegToRad(float32(r.Pitch)))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}.Normalize()
}

// MoveRight translates pos sideways by distance along the rig's right axis.
func (r *Rig) MoveRight(pos mgl32.Vec3, distance float32) mgl32.Vec3 {
	return pos.Add(r.Right().Mul(distance))
}

// MoveForward translates pos by distance along the rig's horizontal forward axis.
func (r *Rig) MoveForward(pos mgl32.Vec3, distance float32) mgl32.Vec3 {
	return pos.Add(r.Forward().Mul(distance))
}

func (r *Rig) ViewMatrix(eye mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, eye.Add(r.Front()), mgl32.Vec3{0, 1, 0})
}

// LookAt points the rig from eye towards target.
func (r *Rig) LookAt(eye, target mgl32.Vec3) {
	d := target.Sub(eye)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	r.Yaw = float64(mgl32.RadToDeg(float32(math.Atan2(float64(d.Z()), float64(d.X())))))
	r.SetPitch(float64(mgl32.RadToDeg(float32(math.Asin(float64(d.Y()))))))
}
