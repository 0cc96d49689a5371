package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/internal/frame"
	"scene-viewer/internal/graphics"
	"scene-viewer/internal/scene"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera  *graphics.Camera
	Scene   *scene.Scene
	Frame   frame.Frame
	View    mgl32.Mat4
	Proj    mgl32.Mat4
	Eye     mgl32.Vec3
	Sun     mgl32.Vec3 // unit vector towards the sun
	Frustum graphics.Frustum

	// ToneMap is set when drawing straight to the window; the composer tone maps
	// in its final pass instead.
	ToneMap  bool
	Exposure float32

	Stats *Stats
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}

// Stats counts the work submitted during one frame.
type Stats struct {
	DrawCalls int
	Triangles int
	Culled    int
}

func (s *Stats) Draw(triangles int) {
	s.DrawCalls++
	s.Triangles += triangles
}

// Viewpoint supplies the eye position and view matrix each frame.
type Viewpoint interface {
	Eye() mgl32.Vec3
	ViewMatrix() mgl32.Mat4
}

// ApplyToneMapping sets the shared tone mapping uniforms on a scene shader.
func (ctx RenderContext) ApplyToneMapping(s *graphics.Shader) {
	s.SetBool("toneMapping", ctx.ToneMap)
	s.SetFloat("toneMappingExposure", ctx.Exposure)
}

// ApplyFog sets the shared fog uniforms on a scene shader.
func (ctx RenderContext) ApplyFog(s *graphics.Shader) {
	fog := ctx.Scene.Fog
	s.SetBool("fogEnabled", fog.Enabled && fog.Far > fog.Near)
	s.SetVec3("fogColor", fog.Color.Vec3())
	s.SetFloat("fogNear", fog.Near)
	s.SetFloat("fogFar", fog.Far)
}
