package game

import (
	"scene-viewer/internal/config"
	"scene-viewer/internal/effects"
	"scene-viewer/internal/ui/menu"
)

// newSettingsMenu builds the live tuning panel for bloom, sky and frame pacing.
// Changes apply immediately and are not written back to the config file.
func newSettingsMenu(s *Session) *menu.Menu {
	m := menu.New("Settings")

	if s.Composer != nil {
		bloom := s.Composer.Params()
		// the composer can be dropped after a failed resize
		update := func(set func(p *effects.BloomParams)) {
			if s.Composer == nil {
				return
			}
			p := s.Composer.Params()
			set(&p)
			s.setBloom(p)
		}
		m.Heading("Bloom")
		m.AddToggle("Enabled", bloom.Enabled, func(on bool) {
			update(func(p *effects.BloomParams) { p.Enabled = on })
		})
		m.AddSlider("Exposure", 0.1, 2, bloom.Exposure, 0, "%.2f", func(v float32) {
			update(func(p *effects.BloomParams) { p.Exposure = v })
		})
		m.AddSlider("Threshold", 0, 1, bloom.Threshold, 0, "%.2f", func(v float32) {
			update(func(p *effects.BloomParams) { p.Threshold = v })
		})
		m.AddSlider("Strength", 0, 3, bloom.Strength, 0, "%.2f", func(v float32) {
			update(func(p *effects.BloomParams) { p.Strength = v })
		})
		m.AddSlider("Radius", 0, 1, bloom.Radius, 0, "%.2f", func(v float32) {
			update(func(p *effects.BloomParams) { p.Radius = v })
		})
	}

	if s.sky != nil {
		sky := s.sky.Params()
		m.Heading("Sky")
		skySlider := func(label string, min, max, value float32, format string, set func(p *effects.SkyParams, v float32)) {
			m.AddSlider(label, min, max, value, 0, format, func(v float32) {
				p := s.sky.Params()
				set(&p, v)
				s.setSky(p)
			})
		}
		skySlider("Turbidity", 0, 20, sky.Turbidity, "%.1f", func(p *effects.SkyParams, v float32) { p.Turbidity = v })
		skySlider("Rayleigh", 0, 4, sky.Rayleigh, "%.3f", func(p *effects.SkyParams, v float32) { p.Rayleigh = v })
		skySlider("Mie coefficient", 0, 0.1, sky.MieCoefficient, "%.3f", func(p *effects.SkyParams, v float32) { p.MieCoefficient = v })
		skySlider("Mie directional g", 0, 1, sky.MieDirectionalG, "%.3f", func(p *effects.SkyParams, v float32) { p.MieDirectionalG = v })
		skySlider("Elevation", 0, 90, sky.Elevation, "%.1f", func(p *effects.SkyParams, v float32) { p.Elevation = v })
		skySlider("Azimuth", -180, 180, sky.Azimuth, "%.1f", func(p *effects.SkyParams, v float32) { p.Azimuth = v })
		skySlider("Exposure", 0, 1, sky.Exposure, "%.2f", func(p *effects.SkyParams, v float32) { p.Exposure = v })
	}

	m.Heading("Display")
	s.statsToggle = m.AddToggle("Show stats", config.GetShowStats(), config.SetShowStats)
	// 0 on the slider means uncapped
	m.AddSlider("FPS limit", 0, 240, float32(config.GetFPSLimit()), 9, "%.0f", func(v float32) {
		config.SetFPSLimit(int(v))
	})
	m.AddButton("Resume", s.Input.Lock)
	return m
}
