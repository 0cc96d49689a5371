package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrustum() Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(75), 16.0/9.0, 1, 1000)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return NewFrustum(proj.Mul4(view))
}

func TestFrustumCulling(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name    string
		lo, hi  mgl32.Vec3
		visible bool
	}{
		{"ahead", mgl32.Vec3{-1, -1, -20}, mgl32.Vec3{1, 1, -10}, true},
		{"behind", mgl32.Vec3{-1, -1, 10}, mgl32.Vec3{1, 1, 20}, false},
		{"beyond far", mgl32.Vec3{-1, -1, -2000}, mgl32.Vec3{1, 1, -1500}, false},
		{"far left", mgl32.Vec3{-500, -1, -20}, mgl32.Vec3{-400, 1, -10}, false},
		{"straddles near", mgl32.Vec3{-1, -1, -5}, mgl32.Vec3{1, 1, 5}, true},
		{"encloses camera", mgl32.Vec3{-5000, -5000, -5000}, mgl32.Vec3{5000, 5000, 5000}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.visible, f.IntersectsAABB(tt.lo, tt.hi))
		})
	}
}

func TestTransformAABB(t *testing.T) {
	m := mgl32.Translate3D(10, 0, 0).Mul4(mgl32.Scale3D(2, 3, 4))
	lo, hi := TransformAABB(m, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	assert.Equal(t, mgl32.Vec3{8, -3, -4}, lo)
	assert.Equal(t, mgl32.Vec3{12, 3, 4}, hi)

	// a quarter turn about Y swaps the x and z extents
	r := mgl32.HomogRotate3DY(mgl32.DegToRad(90))
	lo, hi = TransformAABB(r, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 1, 5})
	assert.InDelta(t, 0, lo.X(), 1e-5)
	assert.InDelta(t, 5, hi.X(), 1e-5)
	assert.InDelta(t, -2, lo.Z(), 1e-5)
	assert.InDelta(t, 0, hi.Z(), 1e-5)
}

func TestCameraViewport(t *testing.T) {
	c := NewCamera(1600, 900, 75, 1, 10000)
	assert.InDelta(t, 16.0/9.0, c.AspectRatio, 1e-6)

	c.SetViewport(0, 0)
	assert.InDelta(t, 16.0/9.0, c.AspectRatio, 1e-6, "minimised window keeps the last aspect")

	c.SetViewport(800, 800)
	assert.Equal(t, float32(1), c.AspectRatio)
	p := c.GetProjectionMatrix()
	assert.InDelta(t, p[0], p[5], 1e-6)
}

func TestBakeFontAtlas(t *testing.T) {
	atlas, err := BakeFontAtlas(DefaultFont(), 16)
	require.NoError(t, err)

	assert.Len(t, atlas.Characters, 95)
	assert.Greater(t, atlas.LineHeight, 0)
	assert.Equal(t, atlasWidth, atlas.Image.Bounds().Dx())

	a := atlas.Characters['A']
	assert.Greater(t, a.Width, float32(0))
	assert.Greater(t, a.Advance, 0)
	assert.LessOrEqual(t, int(a.AtlasY+a.Height), atlas.Image.Bounds().Dy())

	space := atlas.Characters[' ']
	assert.Zero(t, space.Width)
	assert.Greater(t, space.Advance, 0)

	w1, _ := atlas.Measure("Click", 1)
	w2, _ := atlas.Measure("Click", 2)
	assert.InDelta(t, 2*w1, w2, 1e-4)

	// unknown runes advance like a space
	wq, _ := atlas.Measure("é", 1)
	assert.Equal(t, float32(space.Advance), wq)

	verts := atlas.appendQuads(nil, "a b", 0, 20, 1)
	assert.Len(t, verts, 2*6*4, "space emits no quad")
}

func TestBakeFontAtlasBadData(t *testing.T) {
	_, err := BakeFontAtlas([]byte("not a font"), 16)
	assert.ErrorContains(t, err, "parse font")
}
