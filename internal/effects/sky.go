package effects

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SkyParams configures the atmospheric scattering sky.
type SkyParams struct {
	Scale           float32 `yaml:"scale"`
	Turbidity       float32 `yaml:"turbidity"`
	Rayleigh        float32 `yaml:"rayleigh"`
	MieCoefficient  float32 `yaml:"mie_coefficient"`
	MieDirectionalG float32 `yaml:"mie_directional_g"`
	Elevation       float32 `yaml:"elevation"` // degrees above the horizon
	Azimuth         float32 `yaml:"azimuth"`   // degrees
	Exposure        float32 `yaml:"exposure"`
}

func DefaultSkyParams() SkyParams {
	return SkyParams{
		Scale:           450000,
		Turbidity:       20,
		Rayleigh:        0,
		MieCoefficient:  0.1,
		MieDirectionalG: 1,
		Elevation:       2,
		Azimuth:         180,
		Exposure:        0.5,
	}
}

func inRange(name string, v, lo, hi float32) error {
	if v < lo || v > hi || math.IsNaN(float64(v)) {
		return fmt.Errorf("%s must be in [%v,%v], got %v", name, lo, hi, v)
	}
	return nil
}

func (p SkyParams) Validate() error {
	var errs []error
	if p.Scale <= 0 {
		errs = append(errs, fmt.Errorf("sky scale must be > 0, got %v", p.Scale))
	}
	errs = append(errs,
		inRange("turbidity", p.Turbidity, 0, 20),
		inRange("rayleigh", p.Rayleigh, 0, 4),
		inRange("mie coefficient", p.MieCoefficient, 0, 0.1),
		inRange("mie directional g", p.MieDirectionalG, 0, 1),
		inRange("elevation", p.Elevation, 0, 90),
		inRange("azimuth", p.Azimuth, -180, 180),
		inRange("sky exposure", p.Exposure, 0, 1),
	)
	return errors.Join(errs...)
}

// SunPosition is the unit vector towards the sun: polar angle 90-elevation from +Y,
// azimuth measured from +Z towards +X.
func (p SkyParams) SunPosition() mgl32.Vec3 {
	phi := float64(mgl32.DegToRad(90 - p.Elevation))
	theta := float64(mgl32.DegToRad(p.Azimuth))
	return mgl32.Vec3{
		float32(math.Sin(phi) * math.Sin(theta)),
		float32(math.Cos(phi)),
		float32(math.Sin(phi) * math.Cos(theta)),
	}
}
