package effects

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// ParticleParams describes a field of point sprites scattered uniformly in a box.
type ParticleParams struct {
	Name            string     `yaml:"name"`
	Count           int        `yaml:"count"`
	Sprite          string     `yaml:"sprite"`
	Size            float32    `yaml:"size"`
	SizeAttenuation bool       `yaml:"size_attenuation"`
	Min             [3]float32 `yaml:"min"`
	Extent          [3]float32 `yaml:"extent"`
	// YScale squashes the field vertically after sampling (ground dust uses 0.025).
	YScale     float32    `yaml:"y_scale"`
	AlphaTest  float32    `yaml:"alpha_test"`
	Opacity    float32    `yaml:"opacity"`
	Hue        float64    `yaml:"hue"`
	Saturation float64    `yaml:"saturation"`
	Lightness  float64    `yaml:"lightness"`
	HueCycle   float64    `yaml:"hue_cycle"` // turns per second, 0 keeps the hue fixed
	Drift      [3]float32 `yaml:"drift"`     // units per second
	Seed       uint64     `yaml:"seed"`
}

func DefaultParticleParams() ParticleParams {
	return ParticleParams{
		Name:            "stars",
		Count:           1000000,
		Sprite:          "assets/textures/disc.png",
		Size:            2,
		SizeAttenuation: true,
		Min:             [3]float32{-1000, -1000, -1000},
		Extent:          [3]float32{20000, 20000, 2000},
		YScale:          1,
		AlphaTest:       0.5,
		Opacity:         1,
		Hue:             0.5,
		Saturation:      1,
		Lightness:       0.5,
	}
}

func (p ParticleParams) Validate() error {
	var errs []error
	if p.Count < 0 {
		errs = append(errs, fmt.Errorf("particle count must be >= 0, got %d", p.Count))
	}
	if p.Size <= 0 {
		errs = append(errs, fmt.Errorf("particle size must be > 0, got %v", p.Size))
	}
	for i, e := range p.Extent {
		if e < 0 {
			errs = append(errs, fmt.Errorf("particle extent[%d] must be >= 0, got %v", i, e))
		}
	}
	errs = append(errs,
		inRange("alpha test", p.AlphaTest, 0, 1),
		inRange("opacity", p.Opacity, 0, 1),
		inRange("saturation", float32(p.Saturation), 0, 1),
		inRange("lightness", float32(p.Lightness), 0, 1),
	)
	return errors.Join(errs...)
}

// ParticleField holds generated positions plus the per-frame material state.
type ParticleField struct {
	params    ParticleParams
	positions []float32
	color     Color
	offset    mgl32.Vec3
}

func NewParticleField(p ParticleParams) (*ParticleField, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("particles %q: %w", p.Name, err)
	}
	seed := p.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	pos := make([]float32, 0, p.Count*3)
	for i := 0; i < p.Count; i++ {
		x := p.Extent[0]*rng.Float32() + p.Min[0]
		y := p.Extent[1]*rng.Float32() + p.Min[1]
		z := p.Extent[2]*rng.Float32() + p.Min[2]
		pos = append(pos, x, y*p.YScale, z)
	}

	return &ParticleField{
		params:    p,
		positions: pos,
		color:     HSL(p.Hue, p.Saturation, p.Lightness),
	}, nil
}

// Update recomputes the material colour and drift offset for the given elapsed time.
func (f *ParticleField) Update(elapsed float64) {
	hue := f.params.Hue + f.params.HueCycle*elapsed
	f.color = HSL(hue, f.params.Saturation, f.params.Lightness)
	f.offset = mgl32.Vec3(f.params.Drift).Mul(float32(elapsed))
}

func (f *ParticleField) Params() ParticleParams { return f.params }

// Positions is the flat xyz array handed to the GPU.
func (f *ParticleField) Positions() []float32 { return f.positions }

func (f *ParticleField) Count() int { return len(f.positions) / 3 }

func (f *ParticleField) Color() Color { return f.color }

func (f *ParticleField) Offset() mgl32.Vec3 { return f.offset }
