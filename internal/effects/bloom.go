package effects

import (
	"errors"
	"math"
)

// BloomParams configures the post-processing chain.
type BloomParams struct {
	Enabled   bool    `yaml:"enabled"`
	Exposure  float32 `yaml:"exposure"`
	Strength  float32 `yaml:"strength"`
	Threshold float32 `yaml:"threshold"`
	Radius    float32 `yaml:"radius"`
}

func DefaultBloomParams() BloomParams {
	return BloomParams{
		Enabled:   true,
		Exposure:  1,
		Strength:  0.5,
		Threshold: 0,
		Radius:    1,
	}
}

func (p BloomParams) Validate() error {
	return errors.Join(
		inRange("bloom exposure", p.Exposure, 0.1, 2),
		inRange("bloom strength", p.Strength, 0, 3),
		inRange("bloom threshold", p.Threshold, 0, 1),
		inRange("bloom radius", p.Radius, 0, 1),
	)
}

// ToneMappingExposure maps the exposure setting onto the tone mapper's scale (exposure^4).
func (p BloomParams) ToneMappingExposure() float32 {
	return float32(math.Pow(float64(p.Exposure), 4))
}
