package sky

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/internal/effects"
	"scene-viewer/internal/graphics"
	renderer "scene-viewer/internal/graphics/renderer"
	"scene-viewer/internal/profiling"
)

// cube corners, drawn from the inside
var vertices = []float32{
	-1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1,
	-1, -1, 1, 1, -1, 1, 1, 1, 1, -1, 1, 1,
}

var indices = []uint32{
	0, 1, 2, 2, 3, 0, // back
	4, 6, 5, 6, 4, 7, // front
	0, 3, 7, 7, 4, 0, // left
	1, 5, 6, 6, 2, 1, // right
	3, 2, 6, 6, 7, 3, // top
	0, 4, 5, 5, 1, 0, // bottom
}

// Sky draws the atmospheric scattering dome as a large cube centred on the eye,
// pinned to the far plane so everything else draws in front of it.
type Sky struct {
	params effects.SkyParams
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
	ebo    uint32
}

func NewSky(p effects.SkyParams) *Sky {
	return &Sky{params: p}
}

func (s *Sky) Params() effects.SkyParams {
	return s.params
}

// SetParams swaps the scattering parameters; invalid ones are rejected.
func (s *Sky) SetParams(p effects.SkyParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	return nil
}

func (s *Sky) Init() error {
	if err := s.params.Validate(); err != nil {
		return err
	}
	var err error
	s.shader, err = graphics.LoadShader("sky")
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.GenBuffers(1, &s.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
	return nil
}

func (s *Sky) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.Sky")()

	p := s.params
	half := p.Scale / 2
	model := mgl32.Translate3D(ctx.Eye.X(), ctx.Eye.Y(), ctx.Eye.Z()).Mul4(mgl32.Scale3D(half, half, half))

	s.shader.Use()
	s.shader.SetMatrix4("model", model)
	s.shader.SetMatrix4("view", ctx.View)
	s.shader.SetMatrix4("projection", ctx.Proj)
	s.shader.SetVec3("sunPosition", p.SunPosition())
	s.shader.SetVec3("up", mgl32.Vec3{0, 1, 0})
	s.shader.SetVec3("eye", ctx.Eye)
	s.shader.SetFloat("rayleigh", p.Rayleigh)
	s.shader.SetFloat("turbidity", p.Turbidity)
	s.shader.SetFloat("mieCoefficient", p.MieCoefficient)
	s.shader.SetFloat("mieDirectionalG", p.MieDirectionalG)
	s.shader.SetFloat("exposure", p.Exposure)
	ctx.ApplyToneMapping(s.shader)

	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)

	gl.BindVertexArray(s.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(indices)), gl.UNSIGNED_INT, 0)
	ctx.Stats.Draw(len(indices) / 3)

	gl.Enable(gl.CULL_FACE)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
}

func (s *Sky) SetViewport(width, height int) {}

func (s *Sky) Dispose() {
	if s.ebo != 0 {
		gl.DeleteBuffers(1, &s.ebo)
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
	}
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
	}
	if s.shader != nil {
		s.shader.Delete()
	}
}
