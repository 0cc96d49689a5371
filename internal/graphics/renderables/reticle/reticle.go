package reticle

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/internal/graphics"
	"scene-viewer/internal/graphics/renderer"
	"scene-viewer/internal/profiling"
)

// halfSize is the arm length of the cross in pixels.
const halfSize = 8

var color = mgl32.Vec4{1, 1, 1, 0.8}

// Reticle marks the view centre while mouse look is engaged.
type Reticle struct {
	locked func() bool

	shader   *graphics.Shader
	vao, vbo uint32
	width    int
	height   int
}

func NewReticle(locked func() bool) *Reticle {
	return &Reticle{locked: locked}
}

func (r *Reticle) Init() error {
	var err error
	if r.shader, err = graphics.LoadShader("ui"); err != nil {
		return err
	}
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 8*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
	return nil
}

func (r *Reticle) SetViewport(width, height int) {}

func (r *Reticle) Render(ctx renderer.RenderContext) {
	if !r.locked() {
		return
	}
	defer profiling.Track("renderer.Reticle")()

	if r.width != ctx.Camera.Width || r.height != ctx.Camera.Height {
		r.width, r.height = ctx.Camera.Width, ctx.Camera.Height
		verts := crossVertices(r.width, r.height)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r.shader.Use()
	r.shader.SetMatrix4("projection", ctx.Camera.Ortho())
	r.shader.SetVec4("color", color)
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.LINES, 0, 4)
	ctx.Stats.Draw(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (r *Reticle) Dispose() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.shader != nil {
		r.shader.Delete()
	}
}

// crossVertices is a horizontal then a vertical line through the centre, in pixels.
func crossVertices(width, height int) []float32 {
	cx, cy := float32(width)/2, float32(height)/2
	return []float32{
		cx - halfSize, cy,
		cx + halfSize, cy,
		cx, cy - halfSize,
		cx, cy + halfSize,
	}
}
