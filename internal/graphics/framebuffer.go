package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Framebuffer is an offscreen target with one RGBA16F colour texture and an
// optional depth renderbuffer.
type Framebuffer struct {
	FBO   uint32
	Color uint32
	depth uint32

	Width, Height int
	withDepth     bool
}

func NewFramebuffer(width, height int, withDepth bool) (*Framebuffer, error) {
	fb := &Framebuffer{withDepth: withDepth}
	gl.GenFramebuffers(1, &fb.FBO)
	gl.GenTextures(1, &fb.Color)
	if withDepth {
		gl.GenRenderbuffers(1, &fb.depth)
	}
	if err := fb.Resize(width, height); err != nil {
		fb.Delete()
		return nil, err
	}
	return fb, nil
}

// Resize reallocates storage. Sizes below 1 are raised to 1 so a minimised window
// keeps a complete framebuffer.
func (fb *Framebuffer) Resize(width, height int) error {
	width, height = max(width, 1), max(height, 1)
	fb.Width, fb.Height = width, height

	gl.BindTexture(gl.TEXTURE_2D, fb.Color)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, int32(width), int32(height), 0, gl.RGBA, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.Color, 0)
	if fb.withDepth {
		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depth)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depth)
		gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	}
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer %dx%d incomplete: 0x%x", width, height, status)
	}
	return nil
}

// Bind makes fb the draw target and sets the viewport to its size.
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.FBO)
	gl.Viewport(0, 0, int32(fb.Width), int32(fb.Height))
}

func (fb *Framebuffer) Delete() {
	if fb.depth != 0 {
		gl.DeleteRenderbuffers(1, &fb.depth)
	}
	if fb.Color != 0 {
		gl.DeleteTextures(1, &fb.Color)
	}
	if fb.FBO != 0 {
		gl.DeleteFramebuffers(1, &fb.FBO)
	}
	*fb = Framebuffer{}
}

// BindDefault restores the window framebuffer.
func BindDefault(width, height int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
}
