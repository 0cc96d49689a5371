package overlay

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/internal/config"
	"scene-viewer/internal/graphics"
	renderer "scene-viewer/internal/graphics/renderer"
	"scene-viewer/internal/profiling"
	"scene-viewer/internal/ui/menu"
)

const fontPixels = 24

// Instructions are shown over the dimmed scene while mouse look is released.
var Instructions = []string{
	"Move: W A S D or arrow keys",
	"Jump: Space",
	"Look: mouse",
	"Release the mouse: Esc",
	"Stats: F3",
}

var (
	dimColor   = mgl32.Vec4{0, 0, 0, 0.5}
	textColor  = mgl32.Vec4{1, 1, 1, 1}
	panelColor = mgl32.Vec4{0, 0, 0, 0.35}
)

// Overlay draws the "click to play" blocker and the settings menu while the
// pointer is free, and an optional stats panel in the top-left corner.
type Overlay struct {
	locked func() bool
	menu   *menu.Menu

	shader *graphics.Shader
	font   *graphics.FontRenderer
	vao    uint32
	vbo    uint32

	projection    mgl32.Mat4
	width, height int

	fps fpsCounter
}

// NewOverlay takes a function reporting whether mouse look is engaged.
func NewOverlay(locked func() bool) *Overlay {
	return &Overlay{locked: locked}
}

// SetMenu installs the settings menu shown beside the blocker.
func (o *Overlay) SetMenu(m *menu.Menu) {
	o.menu = m
}

// MenuPosition is where the menu's top-left corner goes for a framebuffer width.
func MenuPosition(width int) (float32, float32) {
	return max(float32(width)-menu.Width-16, 0), 16
}

func (o *Overlay) Init() error {
	atlas, err := graphics.BakeFontAtlas(graphics.DefaultFont(), fontPixels)
	if err != nil {
		return err
	}
	o.shader, err = graphics.LoadShader("ui")
	if err != nil {
		return err
	}
	o.font, err = graphics.NewFontRenderer(atlas, max(o.width, 1), max(o.height, 1))
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*2*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return nil
}

func (o *Overlay) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.Overlay")()

	o.fps.add(ctx.Frame.Elapsed)
	if o.width != ctx.Camera.Width || o.height != ctx.Camera.Height {
		o.SetViewport(ctx.Camera.Width, ctx.Camera.Height)
	}

	if config.GetShowStats() {
		o.renderStats(ctx)
	}
	if !o.locked() {
		o.renderBlocker()
		if o.menu != nil {
			o.menu.Layout(MenuPosition(o.width))
			o.menu.Render(o)
		}
	}
}

func (o *Overlay) renderStats(ctx renderer.RenderContext) {
	s := ctx.Stats
	eye := ctx.Eye
	lines := []string{
		fmt.Sprintf("FPS: %d", o.fps.current),
		fmt.Sprintf("Draws: %d  Tris: %d  Culled: %d", s.DrawCalls, s.Triangles, s.Culled),
		fmt.Sprintf("Pos: %.1f, %.1f, %.1f", eye.X(), eye.Y(), eye.Z()),
	}
	if top := profiling.TopN(3); top != "" {
		lines = append(lines, top)
	}

	scale := float32(0.75)
	step := o.font.LineHeight() * scale
	var width float32
	for _, l := range lines {
		w, _ := o.font.Measure(l, scale)
		width = max(width, w)
	}
	o.DrawFilledRect(4, 4, width+16, step*float32(len(lines))+12, panelColor)
	o.font.RenderLines(lines, 12, 8+step, step, scale, textColor)
}

func (o *Overlay) renderBlocker() {
	w, h := float32(o.width), float32(o.height)
	o.DrawFilledRect(0, 0, w, h, dimColor)

	title := "Click to play"
	tw, _ := o.font.Measure(title, 1.5)
	o.font.Render(title, (w-tw)/2, h/2-o.font.LineHeight(), 1.5, textColor)

	step := o.font.LineHeight() * 0.8
	y := h/2 + step
	for _, line := range Instructions {
		lw, _ := o.font.Measure(line, 0.8)
		o.font.Render(line, (w-lw)/2, y, 0.8, textColor)
		y += step
	}
}

func (o *Overlay) DrawText(text string, x, y, scale float32, color mgl32.Vec4) {
	o.font.Render(text, x, y, scale, color)
}

func (o *Overlay) MeasureText(text string, scale float32) (float32, float32) {
	return o.font.Measure(text, scale)
}

// DrawFilledRect fills a rectangle given in pixels from the top-left corner.
func (o *Overlay) DrawFilledRect(x, y, w, h float32, color mgl32.Vec4) {
	verts := rectVertices(x, y, w, h)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	o.shader.Use()
	o.shader.SetMatrix4("projection", o.projection)
	o.shader.SetVec4("color", color)

	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
}

func rectVertices(x, y, w, h float32) []float32 {
	return []float32{
		x, y,
		x + w, y,
		x + w, y + h,
		x, y,
		x + w, y + h,
		x, y + h,
	}
}

func (o *Overlay) SetViewport(width, height int) {
	o.width, o.height = width, height
	o.projection = mgl32.Ortho(0, float32(max(width, 1)), float32(max(height, 1)), 0, -1, 1)
	if o.font != nil {
		o.font.SetViewport(width, height)
	}
}

func (o *Overlay) Dispose() {
	if o.vao != 0 {
		gl.DeleteVertexArrays(1, &o.vao)
	}
	if o.vbo != 0 {
		gl.DeleteBuffers(1, &o.vbo)
	}
	if o.font != nil {
		o.font.Dispose()
	}
	if o.shader != nil {
		o.shader.Delete()
	}
}

// fpsCounter counts frames over one-second windows of frame time.
type fpsCounter struct {
	frames      int
	windowStart float64
	current     int
}

func (c *fpsCounter) add(elapsed float64) {
	c.frames++
	if span := elapsed - c.windowStart; span >= 1 {
		c.current = int(float64(c.frames)/span + 0.5)
		c.frames = 0
		c.windowStart = elapsed
	}
}
