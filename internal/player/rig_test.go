package player

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestRigAxes(t *testing.T) {
	r := NewRig(-90, 0, 0.1)

	f := r.Forward()
	assert.InDelta(t, 0, f.X(), 1e-6)
	assert.InDelta(t, -1, f.Z(), 1e-6)

	right := r.Right()
	assert.InDelta(t, 1, right.X(), 1e-6)
	assert.InDelta(t, 0, right.Z(), 1e-6)
	assert.InDelta(t, 0, f.Dot(right), 1e-6)
}

func TestRigForwardIgnoresPitch(t *testing.T) {
	r := NewRig(0, 60, 0.1)
	pos := r.MoveForward(mgl32.Vec3{0, 10, 0}, 5)
	assert.InDelta(t, 5, pos.X(), 1e-5)
	assert.Equal(t, float32(10), pos.Y())
	assert.Greater(t, r.Front().Y(), float32(0.8))
}

func TestRigPitchClamp(t *testing.T) {
	r := NewRig(0, 120, 1)
	assert.Equal(t, 89.0, r.Pitch)
	r.Look(0, 500)
	assert.Equal(t, -89.0, r.Pitch)
}

func TestRigLookAt(t *testing.T) {
	r := NewRig(0, 0, 0.1)
	eye := mgl32.Vec3{-150, 30, 2.5}
	r.LookAt(eye, mgl32.Vec3{2200, 0, 0})

	front := r.Front()
	want := mgl32.Vec3{2200, 0, 0}.Sub(eye).Normalize()
	assert.InDelta(t, want.X(), front.X(), 1e-4)
	assert.InDelta(t, want.Y(), front.Y(), 1e-4)
	assert.InDelta(t, want.Z(), front.Z(), 1e-4)

	r.LookAt(eye, eye)
	assert.InDelta(t, want.X(), r.Front().X(), 1e-4, "degenerate target keeps orientation")
}

func TestRigViewMatrixLooksDownFront(t *testing.T) {
	r := NewRig(-90, 0, 0.1)
	eye := mgl32.Vec3{0, 10, 0}
	view := r.ViewMatrix(eye)

	ahead := view.Mul4x1(mgl32.Vec4{0, 10, -5, 1})
	assert.InDelta(t, -5, ahead.Z(), 1e-4)
	assert.InDelta(t, 0, ahead.X(), 1e-4)
}
