package renderer

import (
	"errors"

	"github.com/go-gl/gl/v4.1-core/gl"

	"scene-viewer/internal/effects"
	"scene-viewer/internal/frame"
	"scene-viewer/internal/graphics"
	"scene-viewer/internal/profiling"
)

// blurPasses is the number of horizontal+vertical pairs in the bloom blur.
const blurPasses = 5

// Composer renders the world into an HDR buffer, extracts and blurs the bright
// parts, then tone maps the sum onto the window (Reinhard, exposure^4).
type Composer struct {
	r      *Renderer
	params effects.BloomParams

	hdr    *graphics.Framebuffer
	bright *graphics.Framebuffer
	ping   [2]*graphics.Framebuffer
	quad   *graphics.Quad

	brightPass *graphics.Shader
	blurPass   *graphics.Shader
	composite  *graphics.Shader

	width, height int
}

func NewComposer(r *Renderer, params effects.BloomParams) (*Composer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	c := &Composer{r: r, params: params}
	if err := c.init(); err != nil {
		c.Dispose()
		return nil, err
	}
	return c, nil
}

func (c *Composer) init() error {
	var err error
	if c.brightPass, err = graphics.LoadShader("bright"); err != nil {
		return err
	}
	if c.blurPass, err = graphics.LoadShader("blur"); err != nil {
		return err
	}
	if c.composite, err = graphics.LoadShader("composite"); err != nil {
		return err
	}

	w, h := c.r.camera.Width, c.r.camera.Height
	if c.hdr, err = graphics.NewFramebuffer(w, h, true); err != nil {
		return err
	}
	bw, bh := bloomSize(w, h)
	if c.bright, err = graphics.NewFramebuffer(bw, bh, false); err != nil {
		return err
	}
	for i := range c.ping {
		if c.ping[i], err = graphics.NewFramebuffer(bw, bh, false); err != nil {
			return err
		}
	}
	c.quad = graphics.NewQuad()
	c.width, c.height = w, h
	return nil
}

// bloomSize is the half-resolution size of the blur buffers.
func bloomSize(w, h int) (int, int) {
	return max(w/2, 1), max(h/2, 1)
}

func (c *Composer) Params() effects.BloomParams {
	return c.params
}

// SetParams swaps in new bloom settings; invalid ones are rejected and the old kept.
func (c *Composer) SetParams(p effects.BloomParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.params = p
	return nil
}

// SetViewport resizes every buffer to the new framebuffer size.
func (c *Composer) SetViewport(width, height int) error {
	if width == c.width && height == c.height {
		return nil
	}
	c.width, c.height = width, height
	bw, bh := bloomSize(width, height)
	errs := []error{c.hdr.Resize(width, height), c.bright.Resize(bw, bh)}
	for _, fb := range c.ping {
		errs = append(errs, fb.Resize(bw, bh))
	}
	return errors.Join(errs...)
}

// Render implements frame.Target.
func (c *Composer) Render(f frame.Frame) {
	defer profiling.Track("renderer.Composer")()

	c.hdr.Bind()
	ctx := c.r.Context(f, false)
	c.r.DrawWorld(ctx)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)

	bloom := c.blur()

	graphics.BindDefault(c.width, c.height)
	c.composite.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, c.hdr.Color)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, bloom)
	c.composite.SetInt("scene", 0)
	c.composite.SetInt("bloom", 1)
	c.composite.SetFloat("bloomStrength", c.params.Strength)
	c.composite.SetFloat("toneMappingExposure", c.params.ToneMappingExposure())
	c.quad.Draw()
	ctx.Stats.Draw(2)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	c.r.DrawOverlay(ctx)
	c.r.finishFrame()
}

// blur runs the bright pass then ping-pong gaussian passes, returning the texture
// holding the result.
func (c *Composer) blur() uint32 {
	defer profiling.Track("renderer.Bloom")()

	c.bright.Bind()
	c.brightPass.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, c.hdr.Color)
	c.brightPass.SetInt("scene", 0)
	c.brightPass.SetFloat("threshold", c.params.Threshold)
	c.quad.Draw()

	src := c.bright.Color
	c.blurPass.Use()
	c.blurPass.SetInt("image", 0)
	// radius widens the kernel spacing
	c.blurPass.SetFloat("spread", 0.5+c.params.Radius)
	for i := 0; i < blurPasses*2; i++ {
		dst := c.ping[i%2]
		dst.Bind()
		horizontal := i%2 == 0
		if horizontal {
			c.blurPass.SetVec2("direction", 1/float32(dst.Width), 0)
		} else {
			c.blurPass.SetVec2("direction", 0, 1/float32(dst.Height))
		}
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, src)
		c.quad.Draw()
		src = dst.Color
	}
	return src
}

func (c *Composer) Dispose() {
	for _, s := range []*graphics.Shader{c.brightPass, c.blurPass, c.composite} {
		if s != nil {
			s.Delete()
		}
	}
	for _, fb := range []*graphics.Framebuffer{c.hdr, c.bright, c.ping[0], c.ping[1]} {
		if fb != nil {
			fb.Delete()
		}
	}
	if c.quad != nil {
		c.quad.Delete()
	}
}
