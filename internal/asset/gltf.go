package asset

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"scene-viewer/internal/anim"
	"scene-viewer/internal/scene"
)

// Model is a loaded glTF scene: a node tree plus any animation clips bound to it.
type Model struct {
	Name  string
	Root  *scene.Node
	Clips []*anim.Clip
}

// LoadModel reads a .gltf or .glb file. It runs off the render thread, so it only
// builds CPU-side data; textures are decoded here and uploaded later.
func LoadModel(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	name := filepath.Base(path)
	l := &gltfLoader{doc: doc, dir: filepath.Dir(path), log: slog.With("model", name)}

	textures := l.textures()
	materials := l.materials(textures)
	meshes := l.meshes(materials)
	nodes := l.nodes(meshes)

	root := scene.NewNode(name)
	for _, i := range l.rootIndices() {
		root.AddChild(nodes[i])
	}

	clips := make([]*anim.Clip, 0, len(doc.Animations))
	for i, a := range doc.Animations {
		clip, err := l.clip(i, a, nodes)
		if err != nil {
			l.log.Warn("skipping animation", "index", i, "error", err)
			continue
		}
		clips = append(clips, clip)
	}

	return &Model{Name: name, Root: root, Clips: clips}, nil
}

type gltfLoader struct {
	doc *gltf.Document
	dir string
	log *slog.Logger
}

func (l *gltfLoader) textures() []*image.RGBA {
	out := make([]*image.RGBA, len(l.doc.Textures))
	for i, t := range l.doc.Textures {
		if t.Source == nil || *t.Source >= len(l.doc.Images) {
			continue
		}
		img := l.doc.Images[*t.Source]
		var (
			rgba *image.RGBA
			err  error
		)
		switch {
		case img.BufferView != nil:
			var raw []byte
			raw, err = modeler.ReadBufferView(l.doc, l.doc.BufferViews[*img.BufferView])
			if err == nil {
				rgba, err = DecodeImage(raw, 0, 0)
			}
		case img.IsEmbeddedResource():
			var raw []byte
			raw, err = img.MarshalData()
			if err == nil {
				rgba, err = DecodeImage(raw, 0, 0)
			}
		case img.URI != "":
			rgba, err = LoadImage(filepath.Join(l.dir, img.URI), 0, 0)
		}
		if err != nil {
			l.log.Warn("texture skipped", "texture", i, "error", err)
			continue
		}
		out[i] = rgba
	}
	return out
}

func (l *gltfLoader) materials(textures []*image.RGBA) []*scene.Material {
	out := make([]*scene.Material, len(l.doc.Materials))
	for i, gm := range l.doc.Materials {
		m := scene.DefaultMaterial()
		m.Name = gm.Name
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			c := pbr.BaseColorFactorOrDefault()
			m.BaseColor = mgl32.Vec4{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
			m.Metallic = float32(pbr.MetallicFactorOrDefault())
			m.Roughness = float32(pbr.RoughnessFactorOrDefault())
			if t := pbr.BaseColorTexture; t != nil && t.Index < len(textures) {
				m.Texture = textures[t.Index]
			}
		}
		out[i] = m
	}
	return out
}

// meshes returns one slice of primitives per glTF mesh.
func (l *gltfLoader) meshes(materials []*scene.Material) [][]*scene.Mesh {
	out := make([][]*scene.Mesh, len(l.doc.Meshes))
	for mi, gm := range l.doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := l.primitive(gm.Name, pi, prim)
			if err != nil {
				l.log.Warn("primitive skipped", "mesh", mi, "primitive", pi, "error", err)
				continue
			}
			if prim.Material != nil && *prim.Material < len(materials) {
				m.Material = materials[*prim.Material]
			} else {
				m.Material = scene.DefaultMaterial()
			}
			out[mi] = append(out[mi], m)
		}
	}
	return out
}

func (l *gltfLoader) primitive(meshName string, idx int, prim *gltf.Primitive) (*scene.Mesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, fmt.Errorf("unsupported primitive mode %v", prim.Mode)
	}
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(l.doc, l.doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	m := &scene.Mesh{Name: fmt.Sprintf("%s_p%d", meshName, idx), Positions: positions}

	if i, ok := prim.Attributes["NORMAL"]; ok {
		if m.Normals, err = modeler.ReadNormal(l.doc, l.doc.Accessors[i], nil); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	if i, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if m.UVs, err = modeler.ReadTextureCoord(l.doc, l.doc.Accessors[i], nil); err != nil {
			return nil, fmt.Errorf("uvs: %w", err)
		}
	}
	if prim.Indices != nil {
		if m.Indices, err = modeler.ReadIndices(l.doc, l.doc.Accessors[*prim.Indices], nil); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}
	return m, nil
}

func (l *gltfLoader) nodes(meshes [][]*scene.Mesh) []*scene.Node {
	nodes := make([]*scene.Node, len(l.doc.Nodes))
	for i, gn := range l.doc.Nodes {
		name := gn.Name
		if name == "" {
			name = fmt.Sprintf("node_%d", i)
		}
		n := scene.NewNode(name)
		setNodeTransform(n, gn)

		if gn.Mesh != nil && *gn.Mesh < len(meshes) {
			prims := meshes[*gn.Mesh]
			if len(prims) == 1 {
				n.Mesh = prims[0]
			} else {
				for pi, p := range prims {
					child := scene.NewNode(fmt.Sprintf("%s_prim%d", name, pi))
					child.Mesh = p
					n.AddChild(child)
				}
			}
		}
		nodes[i] = n
	}
	for i, gn := range l.doc.Nodes {
		for _, c := range gn.Children {
			if c < len(nodes) {
				nodes[i].AddChild(nodes[c])
			}
		}
	}
	return nodes
}

func setNodeTransform(n *scene.Node, gn *gltf.Node) {
	if m := gn.MatrixOrDefault(); m != gltf.DefaultMatrix {
		var mat mgl32.Mat4
		for i, v := range m {
			mat[i] = float32(v)
		}
		t, r, s := decompose(mat)
		n.SetTranslation(t)
		n.SetRotation(r)
		n.SetScale(s)
		return
	}
	t := gn.TranslationOrDefault()
	s := gn.ScaleOrDefault()
	r := gn.RotationOrDefault()
	n.SetTranslation(mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])})
	n.SetScale(mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])})
	n.SetRotation(mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}})
}

// decompose splits a column-major TRS matrix without shear.
func decompose(m mgl32.Mat4) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	t := mgl32.Vec3{m[12], m[13], m[14]}
	s := mgl32.Vec3{
		m.Col(0).Vec3().Len(),
		m.Col(1).Vec3().Len(),
		m.Col(2).Vec3().Len(),
	}
	rot := mgl32.Ident3()
	for c := 0; c < 3; c++ {
		if s[c] == 0 {
			continue
		}
		col := m.Col(c).Vec3().Mul(1 / s[c])
		rot.SetCol(c, col)
	}
	return t, mgl32.Mat4ToQuat(rot.Mat4()), s
}

func (l *gltfLoader) rootIndices() []int {
	if l.doc.Scene != nil && *l.doc.Scene < len(l.doc.Scenes) {
		return l.doc.Scenes[*l.doc.Scene].Nodes
	}
	hasParent := make([]bool, len(l.doc.Nodes))
	for _, gn := range l.doc.Nodes {
		for _, c := range gn.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range l.doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (l *gltfLoader) clip(idx int, a *gltf.Animation, nodes []*scene.Node) (*anim.Clip, error) {
	name := a.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", idx)
	}
	channels := make([]anim.Channel, 0, len(a.Channels))
	for ci, ch := range a.Channels {
		if ch.Target.Node == nil || *ch.Target.Node >= len(nodes) {
			continue
		}
		var path anim.Path
		switch ch.Target.Path {
		case gltf.TRSTranslation:
			path = anim.Translation
		case gltf.TRSRotation:
			path = anim.Rotation
		case gltf.TRSScale:
			path = anim.Scale
		default:
			// morph target weights are not supported
			continue
		}
		if ch.Sampler >= len(a.Samplers) {
			return nil, fmt.Errorf("channel %d: sampler %d out of range", ci, ch.Sampler)
		}
		s, err := l.sampler(a.Samplers[ch.Sampler])
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ci, err)
		}
		channels = append(channels, anim.Channel{Target: nodes[*ch.Target.Node], Path: path, Sampler: s})
	}
	return anim.NewClip(name, channels)
}

func (l *gltfLoader) sampler(s *gltf.AnimationSampler) (anim.Sampler, error) {
	in, err := modeler.ReadAccessor(l.doc, l.doc.Accessors[s.Input], nil)
	if err != nil {
		return anim.Sampler{}, fmt.Errorf("input: %w", err)
	}
	times, ok := in.([]float32)
	if !ok {
		return anim.Sampler{}, fmt.Errorf("input accessor has type %T", in)
	}
	out, err := modeler.ReadAccessor(l.doc, l.doc.Accessors[s.Output], nil)
	if err != nil {
		return anim.Sampler{}, fmt.Errorf("output: %w", err)
	}
	values, err := flatten(out)
	if err != nil {
		return anim.Sampler{}, err
	}

	interp := anim.Linear
	switch s.Interpolation {
	case gltf.InterpolationStep:
		interp = anim.Step
	case gltf.InterpolationCubicSpline:
		interp = anim.CubicSpline
	}
	return anim.Sampler{Times: times, Values: values, Interpolation: interp}, nil
}

// flatten converts accessor output into floats, unpacking normalized integer
// rotations the way glTF defines them.
func flatten(v any) ([]float32, error) {
	switch d := v.(type) {
	case [][3]float32:
		out := make([]float32, 0, len(d)*3)
		for _, e := range d {
			out = append(out, e[:]...)
		}
		return out, nil
	case [][4]float32:
		out := make([]float32, 0, len(d)*4)
		for _, e := range d {
			out = append(out, e[:]...)
		}
		return out, nil
	case [][4]int8:
		return unpackNorm(d, func(x int8) float32 { return max(float32(x)/127, -1) }), nil
	case [][4]uint8:
		return unpackNorm(d, func(x uint8) float32 { return float32(x) / 255 }), nil
	case [][4]int16:
		return unpackNorm(d, func(x int16) float32 { return max(float32(x)/32767, -1) }), nil
	case [][4]uint16:
		return unpackNorm(d, func(x uint16) float32 { return float32(x) / 65535 }), nil
	}
	return nil, fmt.Errorf("unsupported output accessor type %T", v)
}

func unpackNorm[T int8 | uint8 | int16 | uint16](d [][4]T, conv func(T) float32) []float32 {
	out := make([]float32, 0, len(d)*4)
	for _, e := range d {
		out = append(out, conv(e[0]), conv(e[1]), conv(e[2]), conv(e[3]))
	}
	return out
}
