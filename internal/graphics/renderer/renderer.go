package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/internal/frame"
	"scene-viewer/internal/graphics"
	"scene-viewer/internal/profiling"
	"scene-viewer/internal/scene"
)

// Renderer orchestrates rendering via renderable features. Used on its own it is
// the direct frame target: the scene goes straight to the window framebuffer.
type Renderer struct {
	world   []Renderable
	overlay []Renderable
	camera  *graphics.Camera
	scene   *scene.Scene
	view    Viewpoint

	sun      mgl32.Vec3
	exposure float32

	stats     Stats
	lastStats Stats
}

// NewRenderer initialises every renderable. World renderables draw the 3D scene and
// are post-processed by a composer; overlay renderables draw on top afterwards.
func NewRenderer(cam *graphics.Camera, scn *scene.Scene, view Viewpoint, world, overlay []Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	r := &Renderer{
		world:    world,
		overlay:  overlay,
		camera:   cam,
		scene:    scn,
		view:     view,
		sun:      mgl32.Vec3{0, 1, 0},
		exposure: 1,
	}

	for _, rs := range [][]Renderable{world, overlay} {
		for _, f := range rs {
			if err := f.Init(); err != nil {
				r.Dispose()
				return nil, err
			}
		}
	}
	return r, nil
}

// Render implements frame.Target.
func (r *Renderer) Render(f frame.Frame) {
	defer profiling.Track("renderer.Direct")()
	graphics.BindDefault(r.camera.Width, r.camera.Height)
	ctx := r.Context(f, true)
	r.DrawWorld(ctx)
	r.DrawOverlay(ctx)
	r.finishFrame()
}

// Context assembles the per-frame render context.
func (r *Renderer) Context(f frame.Frame, toneMap bool) RenderContext {
	view := r.view.ViewMatrix()
	proj := r.camera.GetProjectionMatrix()
	r.stats = Stats{}
	return RenderContext{
		Camera:   r.camera,
		Scene:    r.scene,
		Frame:    f,
		View:     view,
		Proj:     proj,
		Eye:      r.view.Eye(),
		Sun:      r.sun,
		Frustum:  graphics.NewFrustum(proj.Mul4(view)),
		ToneMap:  toneMap,
		Exposure: r.exposure,
		Stats:    &r.stats,
	}
}

// DrawWorld clears the bound framebuffer to the background colour and draws the scene.
func (r *Renderer) DrawWorld(ctx RenderContext) {
	bg := r.scene.Background
	gl.ClearColor(bg.R, bg.G, bg.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)

	for _, f := range r.world {
		f.Render(ctx)
	}
}

func (r *Renderer) DrawOverlay(ctx RenderContext) {
	defer profiling.Track("renderer.Overlay")()
	for _, f := range r.overlay {
		f.Render(ctx)
	}
}

func (r *Renderer) finishFrame() {
	r.lastStats = r.stats
}

// LastStats returns the counters of the previous completed frame.
func (r *Renderer) LastStats() Stats {
	return r.lastStats
}

// SetSun points the lighting at the sun; dir need not be normalised.
func (r *Renderer) SetSun(dir mgl32.Vec3) {
	if dir.Len() > 0 {
		r.sun = dir.Normalize()
	}
}

// SetExposure sets the tone mapping exposure used when drawing directly.
func (r *Renderer) SetExposure(e float32) {
	r.exposure = e
}

func (r *Renderer) Camera() *graphics.Camera {
	return r.camera
}

// SetViewport updates the camera and every renderable after a framebuffer resize.
func (r *Renderer) SetViewport(width, height int) {
	r.camera.SetViewport(width, height)
	for _, rs := range [][]Renderable{r.world, r.overlay} {
		for _, f := range rs {
			f.SetViewport(width, height)
		}
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.overlay) - 1; i >= 0; i-- {
		r.overlay[i].Dispose()
	}
	for i := len(r.world) - 1; i >= 0; i-- {
		r.world[i].Dispose()
	}
}
