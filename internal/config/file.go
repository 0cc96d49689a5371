package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"scene-viewer/internal/effects"
	"scene-viewer/internal/input"
	"scene-viewer/internal/logger"
	"scene-viewer/internal/player"
	"scene-viewer/internal/scene"
)

type Config struct {
	Window     WindowConfig             `yaml:"window"`
	Logging    logger.Config            `yaml:"logging"`
	Controls   ControlsConfig           `yaml:"controls"`
	Navigation NavigationConfig         `yaml:"navigation"`
	Camera     CameraConfig             `yaml:"camera"`
	Scene      SceneConfig              `yaml:"scene"`
	Lights     LightsConfig             `yaml:"lights"`
	Models     []ModelConfig            `yaml:"models"`
	Water      WaterConfig              `yaml:"water"`
	Sky        SkyConfig                `yaml:"sky"`
	Bloom      effects.BloomParams      `yaml:"bloom"`
	Particles  []effects.ParticleParams `yaml:"particles"`
	Audio      AudioConfig              `yaml:"audio"`
	Colliders  []BoxConfig              `yaml:"colliders"`
}

type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	VSync     bool   `yaml:"vsync"`
	FPSLimit  int    `yaml:"fps_limit"`
	ShowStats bool   `yaml:"show_stats"`
}

type ControlsConfig struct {
	// MouseSensitivity is in degrees per pixel.
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	// Bindings maps key codes ("KeyW", "ArrowUp") to actions ("forward", "jump").
	// Empty means the built-in bindings. Escape always unlocks the pointer.
	Bindings map[string]string `yaml:"bindings"`
}

// Apply installs the configured key bindings on im, replacing whatever was bound
// before. Invalid bindings leave im untouched.
func (c ControlsConfig) Apply(im *input.InputManager) error {
	if len(c.Bindings) == 0 {
		im.ResetBindings()
		return nil
	}
	type binding struct {
		key input.Key
		act input.Action
	}
	parsed := make([]binding, 0, len(c.Bindings))
	for k, a := range c.Bindings {
		act, err := input.ParseAction(a)
		if err != nil {
			return fmt.Errorf("binding %s: %w", k, err)
		}
		parsed = append(parsed, binding{input.Key(k), act})
	}
	im.ClearBindings()
	for _, b := range parsed {
		im.BindKey(b.key, b.act)
	}
	return nil
}

type NavigationConfig struct {
	player.Tuning `yaml:",inline"`
	Start         [3]float32 `yaml:"start"`
	Yaw           float64    `yaml:"yaw"`
	Pitch         float64    `yaml:"pitch"`
	// LookAt aims the view at a point at startup, overriding Yaw and Pitch.
	LookAt *[3]float32 `yaml:"look_at"`
	// MaxDelta clamps the frame delta in seconds; 0 disables the clamp.
	MaxDelta float64 `yaml:"max_delta"`
}

type CameraConfig struct {
	FOV  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

type SceneConfig struct {
	Background effects.Color `yaml:"background"`
	Fog        scene.Fog     `yaml:"fog"`
}

type LightsConfig struct {
	Hemisphere *scene.HemisphereLight `yaml:"hemisphere"`
	Ambient    *scene.AmbientLight    `yaml:"ambient"`
	Points     []scene.PointLight     `yaml:"points"`
	Spots      []scene.SpotLight      `yaml:"spots"`
}

type ModelConfig struct {
	Name     string     `yaml:"name"`
	Path     string     `yaml:"path"`
	Position [3]float32 `yaml:"position"`
	Scale    [3]float32 `yaml:"scale"`
	// Rotation is XYZ Euler angles in radians.
	Rotation [3]float32 `yaml:"rotation"`
	Hidden   bool       `yaml:"hidden"`
	// Animate plays the model's first clip in a loop.
	Animate bool `yaml:"animate"`
}

type WaterConfig struct {
	Enabled             bool `yaml:"enabled"`
	effects.WaterParams `yaml:",inline"`
}

type SkyConfig struct {
	Enabled           bool `yaml:"enabled"`
	effects.SkyParams `yaml:",inline"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Path    string  `yaml:"path"`
	Volume  float64 `yaml:"volume"` // linear gain, 1 is unchanged
	Loop    bool    `yaml:"loop"`
}

// BoxConfig is an axis-aligned box the ground probe can land on.
type BoxConfig struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

// Default is the demo scene: city and ruined buildings, the animated
// ion drive (hidden), ocean, sky, stars and bloom.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "scene-viewer",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Logging: logger.Config{Level: "info", Format: "console"},
		Controls: ControlsConfig{
			MouseSensitivity: 0.1146,
		},
		Navigation: NavigationConfig{
			Tuning:   player.DefaultTuning(),
			Start:    [3]float32{0, 30, 0},
			Yaw:      -90,
			MaxDelta: 0.1,
		},
		Camera: CameraConfig{FOV: 75, Near: 1, Far: 10000},
		Scene: SceneConfig{
			Background: effects.MustColor("#000000"),
			Fog: scene.Fog{
				Enabled: true,
				Color:   effects.MustColor("#ffffff"),
				Near:    0,
				Far:     750,
			},
		},
		Lights: LightsConfig{
			Hemisphere: &scene.HemisphereLight{
				Sky:       effects.MustColor("#eeeeff"),
				Ground:    effects.MustColor("#777788"),
				Intensity: 0.75,
				Up:        mgl32.Vec3{0.5, 1, 0.75},
			},
		},
		Models: []ModelConfig{
			{Name: "city", Path: "assets/models/city1.gltf", Position: [3]float32{0, 0, 1}, Scale: [3]float32{3, 3, 3}},
			{Name: "ruin-1", Path: "assets/models/BrokenBuilding1.gltf", Position: [3]float32{10, 0, 10}, Scale: [3]float32{300, 300, 300}},
			{Name: "ruin-2", Path: "assets/models/BrokenBuilding1.gltf", Position: [3]float32{-3000, 0, 1000}, Scale: [3]float32{300, 300, 300}, Rotation: [3]float32{-0.10471976, 0, 0}},
			{Name: "ruin-3", Path: "assets/models/BrokenBuilding1.gltf", Position: [3]float32{-3000, 0, -1000}, Scale: [3]float32{200, 200, 200}, Rotation: [3]float32{0.07853982, 0, 0}},
			{Name: "ion-drive", Path: "assets/models/PrimaryIonDrive.glb", Scale: [3]float32{1, 1, 1}, Hidden: true, Animate: true},
		},
		Water:     WaterConfig{Enabled: true, WaterParams: effects.DefaultWaterParams()},
		Sky:       SkyConfig{Enabled: true, SkyParams: effects.DefaultSkyParams()},
		Bloom:     effects.DefaultBloomParams(),
		Particles: []effects.ParticleParams{effects.DefaultParticleParams()},
		Audio: AudioConfig{
			Enabled: true,
			Path:    "assets/audio/ambience.mp3",
			Volume:  0.5,
			Loop:    true,
		},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// normalize fills per-entry defaults that a YAML list entry cannot inherit.
func (c *Config) normalize() {
	for i := range c.Models {
		if c.Models[i].Scale == ([3]float32{}) {
			c.Models[i].Scale = [3]float32{1, 1, 1}
		}
	}
	for i := range c.Particles {
		if c.Particles[i].YScale == 0 {
			c.Particles[i].YScale = 1
		}
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("fps limit must be >= 0, got %d", c.Window.FPSLimit))
	}
	if c.Controls.MouseSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("mouse sensitivity must be > 0, got %v", c.Controls.MouseSensitivity))
	}
	for k, a := range c.Controls.Bindings {
		if k == "" {
			errs = append(errs, errors.New("binding with empty key code"))
		}
		if _, err := input.ParseAction(a); err != nil {
			errs = append(errs, fmt.Errorf("binding %s: %w", k, err))
		}
	}
	if err := c.Navigation.Tuning.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("navigation: %w", err))
	}
	if c.Navigation.MaxDelta < 0 {
		errs = append(errs, fmt.Errorf("max delta must be >= 0, got %v", c.Navigation.MaxDelta))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov must be in (0, 180), got %v", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera planes must satisfy 0 < near < far, got %v..%v", c.Camera.Near, c.Camera.Far))
	}
	for i, m := range c.Models {
		if m.Path == "" {
			errs = append(errs, fmt.Errorf("model %d (%s): empty path", i, m.Name))
		}
	}
	if c.Water.Enabled {
		errs = append(errs, c.Water.WaterParams.Validate())
	}
	if c.Sky.Enabled {
		errs = append(errs, c.Sky.SkyParams.Validate())
	}
	errs = append(errs, c.Bloom.Validate())
	for _, p := range c.Particles {
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("particles %q: %w", p.Name, err))
		}
	}
	if c.Audio.Enabled {
		if c.Audio.Path == "" {
			errs = append(errs, errors.New("audio enabled with empty path"))
		}
		if c.Audio.Volume < 0 {
			errs = append(errs, fmt.Errorf("audio volume must be >= 0, got %v", c.Audio.Volume))
		}
	}
	for i, b := range c.Colliders {
		for a := 0; a < 3; a++ {
			if b.Min[a] > b.Max[a] {
				errs = append(errs, fmt.Errorf("collider %d: min > max on axis %d", i, a))
				break
			}
		}
	}
	return errors.Join(errs...)
}
