package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera handles the projection matrix and viewport size. The view matrix comes
// from whatever drives the eye (the navigation rig).
type Camera struct {
	AspectRatio float32
	FOV         float32 // vertical, degrees
	NearPlane   float32
	FarPlane    float32

	Width, Height int
}

func NewCamera(width, height int, fov, near, far float32) *Camera {
	c := &Camera{FOV: fov, NearPlane: near, FarPlane: far}
	c.SetViewport(width, height)
	return c
}

// SetViewport records the framebuffer size. A minimised window reports 0x0; the
// previous aspect ratio is kept so the projection stays finite.
func (c *Camera) SetViewport(width, height int) {
	c.Width, c.Height = width, height
	if width > 0 && height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	} else if c.AspectRatio == 0 {
		c.AspectRatio = 1
	}
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// Ortho is a pixel-space projection with the origin at the top-left corner.
func (c *Camera) Ortho() mgl32.Mat4 {
	return mgl32.Ortho(0, float32(c.Width), float32(c.Height), 0, -1, 1)
}
