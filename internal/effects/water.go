package effects

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// WaterParams configures the water surface shader.
type WaterParams struct {
	Size            float32 `yaml:"size"`
	TextureWidth    int     `yaml:"texture_width"`
	TextureHeight   int     `yaml:"texture_height"`
	Normals         string  `yaml:"normals"`
	SunColor        Color   `yaml:"sun_color"`
	WaterColor      Color   `yaml:"water_color"`
	DistortionScale float32 `yaml:"distortion_scale"`
	Alpha           float32 `yaml:"alpha"`
	Fog             bool    `yaml:"fog"`
	// TimeStep is the phase added per frame, independent of wall-clock time.
	TimeStep float64 `yaml:"time_step"`
}

func DefaultWaterParams() WaterParams {
	return WaterParams{
		Size:            10000,
		TextureWidth:    512,
		TextureHeight:   512,
		Normals:         "assets/textures/waternormals.jpg",
		SunColor:        MustColor("#ffffff"),
		WaterColor:      MustColor("#3d8d96"),
		DistortionScale: 8,
		Alpha:           1,
		Fog:             true,
		TimeStep:        1.0 / 60.0,
	}
}

func (p WaterParams) Validate() error {
	var errs []error
	if p.Size <= 0 {
		errs = append(errs, fmt.Errorf("water size must be > 0, got %v", p.Size))
	}
	if p.TextureWidth <= 0 || p.TextureHeight <= 0 {
		errs = append(errs, fmt.Errorf("water texture size must be positive, got %dx%d", p.TextureWidth, p.TextureHeight))
	}
	if p.DistortionScale < 0 {
		errs = append(errs, fmt.Errorf("water distortion scale must be >= 0, got %v", p.DistortionScale))
	}
	if p.Alpha < 0 || p.Alpha > 1 {
		errs = append(errs, fmt.Errorf("water alpha must be in [0,1], got %v", p.Alpha))
	}
	if p.TimeStep <= 0 {
		errs = append(errs, fmt.Errorf("water time step must be > 0, got %v", p.TimeStep))
	}
	return errors.Join(errs...)
}

// Water owns the phase accumulator driving the water shader's time uniform.
type Water struct {
	params WaterParams
	ticks  uint64
	sunDir mgl32.Vec3
}

func NewWater(p WaterParams) (*Water, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Water{params: p, sunDir: mgl32.Vec3{0, 1, 0}}, nil
}

// Advance moves the phase forward by exactly one step.
func (w *Water) Advance() {
	w.ticks++
}

// Time is the accumulated phase: ticks * TimeStep.
func (w *Water) Time() float64 {
	return float64(w.ticks) * w.params.TimeStep
}

func (w *Water) Ticks() uint64 {
	return w.ticks
}

func (w *Water) Params() WaterParams {
	return w.params
}

func (w *Water) SunDirection() mgl32.Vec3 {
	return w.sunDir
}

func (w *Water) SetSunDirection(dir mgl32.Vec3) {
	if dir.Len() == 0 {
		return
	}
	w.sunDir = dir.Normalize()
}
