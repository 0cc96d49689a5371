package water

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/internal/effects"
	"scene-viewer/internal/graphics"
	renderer "scene-viewer/internal/graphics/renderer"
	"scene-viewer/internal/profiling"
)

// Water draws the animated ocean plane at y=0. Its phase comes from an
// effects.Water that the frame orchestrator advances once per tick.
type Water struct {
	state   *effects.Water
	shader  *graphics.Shader
	normals *graphics.Texture
	pending *image.RGBA
	vao     uint32
	vbo     uint32
}

func NewWater(state *effects.Water) *Water {
	return &Water{state: state}
}

// SetNormalMap queues the normal texture for upload on the next frame. Until then
// a flat normal is used.
func (w *Water) SetNormalMap(img *image.RGBA) {
	w.pending = img
}

// SetState replaces the phase source, e.g. after the parameters were reloaded.
func (w *Water) SetState(s *effects.Water) {
	w.state = s
}

func (w *Water) Init() error {
	var err error
	w.shader, err = graphics.LoadShader("water")
	if err != nil {
		return err
	}

	flat := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(flat.Pix, []byte{128, 128, 255, 255})
	w.normals = graphics.UploadTexture(flat, graphics.TextureOptions{Repeat: true})

	gl.GenVertexArrays(1, &w.vao)
	gl.GenBuffers(1, &w.vbo)
	gl.BindVertexArray(w.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	w.uploadPlane()
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return nil
}

func (w *Water) uploadPlane() {
	h := w.state.Params().Size / 2
	// counter-clockwise seen from above
	verts := []float32{
		-h, 0, h, h, 0, h, h, 0, -h,
		-h, 0, h, h, 0, -h, -h, 0, -h,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
}

func (w *Water) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.Water")()

	if w.pending != nil {
		w.normals.Delete()
		w.normals = graphics.UploadTexture(w.pending, graphics.TextureOptions{Repeat: true, Mipmaps: true})
		w.pending = nil
	}

	p := w.state.Params()
	skyColor := mgl32.Vec3{0.55, 0.65, 0.8}
	horizon := mgl32.Vec3{0.8, 0.8, 0.85}
	if h := ctx.Scene.Hemisphere; h != nil {
		skyColor = h.Sky.Vec3().Mul(h.Intensity)
		horizon = h.Ground.Vec3().Mul(h.Intensity)
	}

	w.shader.Use()
	w.shader.SetMatrix4("view", ctx.View)
	w.shader.SetMatrix4("projection", ctx.Proj)
	w.shader.SetFloat("time", float32(w.state.Time()))
	w.shader.SetVec3("eye", ctx.Eye)
	w.shader.SetVec3("sunDirection", w.state.SunDirection())
	w.shader.SetVec3("sunColor", p.SunColor.Vec3())
	w.shader.SetVec3("waterColor", p.WaterColor.Vec3())
	w.shader.SetVec3("skyColor", skyColor)
	w.shader.SetVec3("horizonColor", horizon)
	w.shader.SetFloat("distortionScale", p.DistortionScale)
	w.shader.SetFloat("alpha", p.Alpha)
	if p.Fog {
		ctx.ApplyFog(w.shader)
	} else {
		w.shader.SetBool("fogEnabled", false)
	}
	ctx.ApplyToneMapping(w.shader)

	w.normals.Bind(0)
	w.shader.SetInt("normalSampler", 0)

	if p.Alpha < 1 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	ctx.Stats.Draw(2)
	gl.Disable(gl.BLEND)
}

func (w *Water) SetViewport(width, height int) {}

func (w *Water) Dispose() {
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.normals != nil {
		w.normals.Delete()
	}
	if w.shader != nil {
		w.shader.Delete()
	}
}
