package scene

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Material is the subset of glTF metallic-roughness the renderer draws with.
type Material struct {
	Name      string
	BaseColor mgl32.Vec4
	Texture   *image.RGBA
	Metallic  float32
	Roughness float32
}

func DefaultMaterial() *Material {
	return &Material{BaseColor: mgl32.Vec4{1, 1, 1, 1}, Roughness: 1}
}

// Mesh is CPU-side geometry. GPU handles live in the graphics package, keyed by *Mesh.
type Mesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Indices   []uint32
	Material  *Material
}

// VertexCount is the number of elements drawn: indices when present, otherwise positions.
func (m *Mesh) VertexCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices)
	}
	return len(m.Positions)
}

// Interleaved packs position, normal and uv (8 floats per vertex). Missing normals
// default to +Y and missing uvs to zero.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Positions)*8)
	for i, p := range m.Positions {
		n := [3]float32{0, 1, 0}
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		var uv [2]float32
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}

// Bounds returns the local-space box enclosing every position. An empty mesh
// yields two zero vectors.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Positions) == 0 {
		return lo, hi
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], p[a])
			hi[a] = max(hi[a], p[a])
		}
	}
	return lo, hi
}

// Node is a transform in the scene graph with optional geometry.
type Node struct {
	Name        string
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
	Visible     bool
	Mesh        *Mesh

	parent   *Node
	children []*Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Visible:  true,
	}
}

func (n *Node) SetTranslation(v mgl32.Vec3) { n.Translation = v }
func (n *Node) SetRotation(q mgl32.Quat)    { n.Rotation = q }
func (n *Node) SetScale(v mgl32.Vec3)       { n.Scale = v }

// SetEuler sets the rotation from XYZ Euler angles in radians.
func (n *Node) SetEuler(x, y, z float32) {
	n.Rotation = mgl32.AnglesToQuat(x, y, z, mgl32.XYZ)
}

// AddChild reparents c under n.
func (n *Node) AddChild(c *Node) {
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) RemoveChild(c *Node) {
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

func (n *Node) Children() []*Node { return n.children }
func (n *Node) Parent() *Node     { return n.parent }

func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Translation.X(), n.Translation.Y(), n.Translation.Z())
	r := n.Rotation.Normalize().Mat4()
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Walk visits n and its descendants depth-first with their world matrices.
// Returning false from fn skips that node's subtree.
func (n *Node) Walk(fn func(node *Node, world mgl32.Mat4) bool) {
	var parent mgl32.Mat4
	if n.parent != nil {
		parent = n.parent.WorldMatrix()
	} else {
		parent = mgl32.Ident4()
	}
	n.walk(parent, fn)
}

func (n *Node) walk(parent mgl32.Mat4, fn func(*Node, mgl32.Mat4) bool) {
	world := parent.Mul4(n.LocalMatrix())
	if !fn(n, world) {
		return
	}
	for _, c := range n.children {
		c.walk(world, fn)
	}
}

// Find returns the first descendant (or n itself) with the given name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}
