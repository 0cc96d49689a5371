package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-viewer/internal/effects"
)

func TestWorldMatrixComposesParents(t *testing.T) {
	parent := NewNode("parent")
	parent.SetTranslation(mgl32.Vec3{10, 0, 0})
	parent.SetScale(mgl32.Vec3{2, 2, 2})

	child := NewNode("child")
	child.SetTranslation(mgl32.Vec3{1, 0, 0})
	parent.AddChild(child)

	p := child.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 12, p.X(), 1e-5)
	assert.Same(t, parent, child.Parent())
}

func TestAddChildReparents(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.AddChild(c)
	b.AddChild(c)
	assert.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)
	assert.Same(t, b, c.Parent())
}

func TestFind(t *testing.T) {
	s := New()
	model := NewNode("city")
	tower := NewNode("tower")
	model.AddChild(tower)
	s.Add(model)
	assert.Same(t, tower, s.Root.Find("tower"))
	assert.Nil(t, s.Root.Find("missing"))
}

func TestMeshesSkipsHiddenSubtrees(t *testing.T) {
	s := New()
	visible := NewNode("visible")
	visible.Mesh = &Mesh{Positions: [][3]float32{{0, 0, 0}}}
	hidden := NewNode("hidden")
	hidden.Visible = false
	hiddenChild := NewNode("hidden-child")
	hiddenChild.Mesh = &Mesh{}
	hidden.AddChild(hiddenChild)
	s.Add(visible)
	s.Add(hidden)

	var names []string
	s.Meshes(func(n *Node, _ mgl32.Mat4) { names = append(names, n.Name) })
	assert.Equal(t, []string{"visible"}, names)
}

func TestInterleavedDefaults(t *testing.T) {
	m := &Mesh{
		Positions: [][3]float32{{1, 2, 3}, {4, 5, 6}},
		UVs:       [][2]float32{{0.5, 0.25}},
	}
	assert.Equal(t, []float32{
		1, 2, 3, 0, 1, 0, 0.5, 0.25,
		4, 5, 6, 0, 1, 0, 0, 0,
	}, m.Interleaved())
	assert.Equal(t, 2, m.VertexCount())
	m.Indices = []uint32{0, 1, 0}
	assert.Equal(t, 3, m.VertexCount())
}

func TestFogFactor(t *testing.T) {
	f := Fog{Enabled: true, Color: effects.Color{R: 1}, Near: 10, Far: 110}
	assert.Equal(t, float32(0), f.Factor(5))
	assert.InDelta(t, 0.5, f.Factor(60), 1e-6)
	assert.Equal(t, float32(1), f.Factor(500))

	f.Enabled = false
	assert.Equal(t, float32(0), f.Factor(60))
}

func TestMeshBounds(t *testing.T) {
	m := &Mesh{Positions: [][3]float32{{1, -2, 3}, {-4, 5, 0}, {2, 0, -6}}}
	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-4, -2, -6}, lo)
	assert.Equal(t, mgl32.Vec3{2, 5, 3}, hi)

	lo, hi = (&Mesh{}).Bounds()
	assert.Equal(t, mgl32.Vec3{}, lo)
	assert.Equal(t, mgl32.Vec3{}, hi)
}
