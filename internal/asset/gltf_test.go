package asset

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-viewer/internal/anim"
)

// writeAnimatedTriangle saves a one-node .glb whose translation moves from x=0 to x=10 over 2s.
func writeAnimatedTriangle(t *testing.T) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{"POSITION": pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "body", Mesh: gltf.Index(0), Translation: [3]float64{1, 2, 3}}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	in := modeler.WriteAccessor(doc, gltf.TargetNone, []float32{0, 2})
	out := modeler.WriteAccessor(doc, gltf.TargetNone, [][3]float32{{0, 0, 0}, {10, 0, 0}})
	doc.Animations = []*gltf.Animation{{
		Name: "drift",
		Channels: []*gltf.AnimationChannel{{
			Sampler: 0,
			Target:  gltf.AnimationChannelTarget{Node: gltf.Index(0), Path: gltf.TRSTranslation},
		}},
		Samplers: []*gltf.AnimationSampler{{Input: in, Output: out, Interpolation: gltf.InterpolationLinear}},
	}}

	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoadModel(t *testing.T) {
	m, err := LoadModel(writeAnimatedTriangle(t))
	require.NoError(t, err)
	assert.Equal(t, "tri.glb", m.Name)

	body := m.Root.Find("body")
	require.NotNil(t, body)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, body.Translation)
	require.NotNil(t, body.Mesh)
	assert.Len(t, body.Mesh.Positions, 3)
	assert.Equal(t, []uint32{0, 1, 2}, body.Mesh.Indices)
	assert.NotNil(t, body.Mesh.Material)

	require.Len(t, m.Clips, 1)
	assert.Equal(t, "drift", m.Clips[0].Name)
	assert.Equal(t, float32(2), m.Clips[0].Duration)

	mixer := anim.NewMixer(m.Clips...)
	require.True(t, mixer.PlayFirst())
	mixer.Update(1)
	assert.InDelta(t, 5, body.Translation.X(), 1e-5)
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nope.gltf"))
	assert.Error(t, err)
}

func TestDecompose(t *testing.T) {
	q := mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0})
	m := mgl32.Translate3D(1, 2, 3).Mul4(q.Mat4()).Mul4(mgl32.Scale3D(2, 3, 4))
	tr, r, s := decompose(m)
	assert.True(t, tr.ApproxEqual(mgl32.Vec3{1, 2, 3}))
	assert.True(t, s.ApproxEqualThreshold(mgl32.Vec3{2, 3, 4}, 1e-5))
	assert.True(t, r.OrientationEqualThreshold(q, 1e-4))
}

func TestFlattenNormalizedRotation(t *testing.T) {
	v, err := flatten([][4]int8{{0, 0, 0, 127}, {-128, 0, 0, 0}})
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 1, -1, 0, 0, 0}, v)

	_, err = flatten([]float32{1})
	assert.Error(t, err)
}
