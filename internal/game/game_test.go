package game

import (
	"testing"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-viewer/internal/config"
	"scene-viewer/internal/effects"
	"scene-viewer/internal/input"
	"scene-viewer/internal/scene"
	"scene-viewer/internal/ui/widget"
)

func TestBuildScene(t *testing.T) {
	cfg := config.Default()
	cfg.Lights.Points = []scene.PointLight{{Color: effects.MustColor("#ff0000"), Intensity: 2}}

	s := BuildScene(cfg)
	require.NotNil(t, s.Root)
	assert.Empty(t, s.Root.Children())
	assert.Equal(t, cfg.Scene.Fog, s.Fog)
	assert.Same(t, cfg.Lights.Hemisphere, s.Hemisphere)
	assert.Len(t, s.Points, 1)
	assert.Nil(t, s.Ambient)
}

func TestPlaceModel(t *testing.T) {
	root := scene.NewNode("city1.gltf")
	placeModel(root, config.ModelConfig{
		Name:     "ruin",
		Position: [3]float32{10, 0, -5},
		Scale:    [3]float32{300, 300, 300},
		Rotation: [3]float32{0, 0, 0},
	})
	assert.Equal(t, "ruin", root.Name)
	assert.True(t, root.Visible)
	assert.Equal(t, mgl32.Vec3{10, 0, -5}, root.Translation)
	p := root.LocalMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 310, p.X(), 1e-3)

	hidden := scene.NewNode("drive")
	placeModel(hidden, config.ModelConfig{Name: "drive", Scale: [3]float32{1, 1, 1}, Hidden: true})
	assert.False(t, hidden.Visible)
}

func TestColliders(t *testing.T) {
	cs := colliders([]config.BoxConfig{{Min: [3]float32{-5, 0, -5}, Max: [3]float32{5, 10, 5}}})
	require.Len(t, cs, 1)
	d, ok := cs[0].IntersectRay(mgl32.Vec3{0, 20, 0}, mgl32.Vec3{0, -1, 0})
	assert.True(t, ok)
	assert.InDelta(t, 10, d, 1e-5)
	assert.Empty(t, colliders(nil))
}

func TestKeyCode(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want input.Key
	}{
		{glfw.KeyW, input.KeyW},
		{glfw.KeyA, input.KeyA},
		{glfw.KeyZ, "KeyZ"},
		{glfw.Key3, "Digit3"},
		{glfw.KeyUp, input.ArrowUp},
		{glfw.KeySpace, input.Space},
		{glfw.KeyEscape, input.Escape},
	}
	for _, tt := range tests {
		got, ok := keyCode(tt.key)
		assert.True(t, ok, tt.want)
		assert.Equal(t, tt.want, got)
	}

	_, ok := keyCode(glfw.KeyF5)
	assert.False(t, ok)
}

func TestCursorTracker(t *testing.T) {
	var c cursorTracker
	dx, dy := c.move(100, 100)
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	dx, dy = c.move(110, 95)
	assert.Equal(t, 10.0, dx)
	assert.Equal(t, -5.0, dy)

	c.reset()
	dx, dy = c.move(500, 500)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestEffectiveLimit(t *testing.T) {
	assert.Equal(t, 0, effectiveLimit(0, false))
	assert.Equal(t, 144, effectiveLimit(144, false))
	assert.Equal(t, idleFPS, effectiveLimit(0, true))
	assert.Equal(t, idleFPS, effectiveLimit(144, true))
	assert.Equal(t, 30, effectiveLimit(30, true))
}

func TestNextDeadline(t *testing.T) {
	target := 10 * time.Millisecond
	now := time.Now()

	assert.Equal(t, now.Add(target), nextDeadline(time.Time{}, now, target))

	prev := now.Add(-5 * time.Millisecond)
	assert.Equal(t, prev.Add(target), nextDeadline(prev, now, target))

	// far behind: resync instead of bursting
	late := now.Add(-50 * time.Millisecond)
	assert.Equal(t, now.Add(target), nextDeadline(late, now, target))
}

func TestToFramebuffer(t *testing.T) {
	x, y := toFramebuffer(100, 50, 800, 600, 1600, 1200)
	assert.Equal(t, float32(200), x)
	assert.Equal(t, float32(100), y)

	// minimised window reports 0x0
	x, y = toFramebuffer(10, 20, 0, 0, 0, 0)
	assert.Equal(t, float32(10), x)
	assert.Equal(t, float32(20), y)
}

func TestPressPointer(t *testing.T) {
	var ptr widget.Pointer
	pressPointer(&ptr, glfw.Press)
	assert.True(t, ptr.Down)
	assert.True(t, ptr.JustPressed)

	pressPointer(&ptr, glfw.Release)
	assert.False(t, ptr.Down)
	// the press still has to be seen by the next tick
	assert.True(t, ptr.JustPressed)
}

func TestStartRig(t *testing.T) {
	nav := config.Default().Navigation
	nav.Yaw, nav.Pitch = 30, -10
	r := startRig(nav, 0.1)
	assert.Equal(t, 30.0, r.Yaw)
	assert.InDelta(t, -10.0, r.Pitch, 1e-9)

	target := [3]float32{nav.Start[0] + 100, nav.Start[1], nav.Start[2]}
	nav.LookAt = &target
	r = startRig(nav, 0.1)
	front := r.Front()
	assert.InDelta(t, 1.0, front.X(), 1e-4)
	assert.InDelta(t, 0.0, front.Y(), 1e-4)
	assert.InDelta(t, 0.0, front.Z(), 1e-4)
}
