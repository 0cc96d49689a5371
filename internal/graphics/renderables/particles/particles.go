package particles

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"scene-viewer/internal/effects"
	"scene-viewer/internal/graphics"
	renderer "scene-viewer/internal/graphics/renderer"
	"scene-viewer/internal/profiling"
)

type field struct {
	src    *effects.ParticleField
	sprite *graphics.Texture
	vao    uint32
	vbo    uint32
	count  int32
}

// Particles draws every registered field as textured GL points. Positions are
// uploaded once; colour and drift change per frame through uniforms.
type Particles struct {
	textures *graphics.TextureCache
	shader   *graphics.Shader
	white    *graphics.Texture
	fields   []*field
}

func NewParticles(textures *graphics.TextureCache) *Particles {
	return &Particles{textures: textures}
}

func (p *Particles) Init() error {
	var err error
	p.shader, err = graphics.LoadShader("particles")
	if err != nil {
		return err
	}
	p.white = graphics.WhiteTexture()
	return nil
}

// Add uploads a generated field. A sprite that fails to load falls back to plain
// square points and the error is returned for logging.
func (p *Particles) Add(src *effects.ParticleField) error {
	f := &field{src: src, sprite: p.white, count: int32(src.Count())}

	gl.GenVertexArrays(1, &f.vao)
	gl.GenBuffers(1, &f.vbo)
	gl.BindVertexArray(f.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, f.vbo)
	if pos := src.Positions(); len(pos) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(pos)*4, gl.Ptr(pos), gl.STATIC_DRAW)
	}
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	p.fields = append(p.fields, f)

	params := src.Params()
	if params.Sprite == "" {
		return nil
	}
	tex, err := p.textures.Load(params.Sprite, 0, 0, graphics.TextureOptions{Mipmaps: true})
	if err != nil {
		return fmt.Errorf("particles %q: %w", params.Name, err)
	}
	f.sprite = tex
	return nil
}

// Len is the number of fields currently drawn.
func (p *Particles) Len() int {
	return len(p.fields)
}

// Clear releases every field, e.g. before a config reload regenerates them.
func (p *Particles) Clear() {
	for _, f := range p.fields {
		f.delete()
	}
	p.fields = nil
}

func (p *Particles) Render(ctx renderer.RenderContext) {
	if len(p.fields) == 0 {
		return
	}
	defer profiling.Track("renderer.Particles")()

	p.shader.Use()
	p.shader.SetMatrix4("view", ctx.View)
	p.shader.SetMatrix4("projection", ctx.Proj)
	// attenuated sizes stay proportional to the framebuffer height
	p.shader.SetFloat("scale", float32(ctx.Camera.Height)/2)
	p.shader.SetInt("sprite", 0)
	ctx.ApplyFog(p.shader)
	ctx.ApplyToneMapping(p.shader)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	for _, f := range p.fields {
		if f.count == 0 {
			continue
		}
		params := f.src.Params()
		p.shader.SetVec3("color", f.src.Color().Vec3())
		p.shader.SetVec3("offset", f.src.Offset())
		p.shader.SetFloat("size", params.Size)
		p.shader.SetBool("sizeAttenuation", params.SizeAttenuation)
		p.shader.SetFloat("opacity", params.Opacity)
		p.shader.SetFloat("alphaTest", params.AlphaTest)
		f.sprite.Bind(0)

		gl.BindVertexArray(f.vao)
		gl.DrawArrays(gl.POINTS, 0, f.count)
		ctx.Stats.Draw(0)
	}
	gl.Disable(gl.BLEND)
}

func (p *Particles) SetViewport(width, height int) {}

func (p *Particles) Dispose() {
	p.Clear()
	if p.white != nil {
		p.white.Delete()
	}
	if p.shader != nil {
		p.shader.Delete()
	}
}

func (f *field) delete() {
	if f.vbo != 0 {
		gl.DeleteBuffers(1, &f.vbo)
	}
	if f.vao != 0 {
		gl.DeleteVertexArrays(1, &f.vao)
	}
}
