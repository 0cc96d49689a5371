package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/internal/effects"
)

type HemisphereLight struct {
	Sky       effects.Color `yaml:"sky"`
	Ground    effects.Color `yaml:"ground"`
	Intensity float32       `yaml:"intensity"`
	// Up is the direction the sky colour comes from.
	Up mgl32.Vec3 `yaml:"up"`
}

type AmbientLight struct {
	Color     effects.Color `yaml:"color"`
	Intensity float32       `yaml:"intensity"`
}

// PointLight falls off to zero at Distance (0 means infinite range).
type PointLight struct {
	Color     effects.Color `yaml:"color"`
	Intensity float32       `yaml:"intensity"`
	Distance  float32       `yaml:"distance"`
	Decay     float32       `yaml:"decay"`
	Position  mgl32.Vec3    `yaml:"position"`
}

// SpotLight cones are in radians; Penumbra is the fraction of the cone that fades.
type SpotLight struct {
	Color     effects.Color `yaml:"color"`
	Intensity float32       `yaml:"intensity"`
	Distance  float32       `yaml:"distance"`
	Angle     float32       `yaml:"angle"`
	Penumbra  float32       `yaml:"penumbra"`
	Decay     float32       `yaml:"decay"`
	Position  mgl32.Vec3    `yaml:"position"`
	Target    mgl32.Vec3    `yaml:"target"`
}

// Fog ramps from none at Near to full at Far with a smoothstep, as the shaders do.
type Fog struct {
	Enabled bool          `yaml:"enabled"`
	Color   effects.Color `yaml:"color"`
	Near    float32       `yaml:"near"`
	Far     float32       `yaml:"far"`
}

// Factor returns how much of the fog colour is mixed in at distance d.
func (f Fog) Factor(d float32) float32 {
	if !f.Enabled || f.Far <= f.Near {
		return 0
	}
	t := mgl32.Clamp((d-f.Near)/(f.Far-f.Near), 0, 1)
	return t * t * (3 - 2*t)
}

// Scene is the root of everything drawn each frame.
type Scene struct {
	Root       *Node
	Background effects.Color
	Fog        Fog
	Hemisphere *HemisphereLight
	Ambient    *AmbientLight
	Points     []PointLight
	Spots      []SpotLight
}

func New() *Scene {
	return &Scene{Root: NewNode("root")}
}

func (s *Scene) Add(n *Node) {
	s.Root.AddChild(n)
}

// Meshes calls fn for every visible node carrying geometry.
func (s *Scene) Meshes(fn func(n *Node, world mgl32.Mat4)) {
	s.Root.Walk(func(n *Node, world mgl32.Mat4) bool {
		if !n.Visible {
			return false
		}
		if n.Mesh != nil {
			fn(n, world)
		}
		return true
	})
}
