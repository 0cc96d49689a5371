package game

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"scene-viewer/internal/anim"
	"scene-viewer/internal/asset"
	"scene-viewer/internal/audio"
	"scene-viewer/internal/config"
	"scene-viewer/internal/effects"
	"scene-viewer/internal/frame"
	"scene-viewer/internal/graphics"
	"scene-viewer/internal/graphics/renderables/models"
	"scene-viewer/internal/graphics/renderables/overlay"
	"scene-viewer/internal/graphics/renderables/particles"
	"scene-viewer/internal/graphics/renderables/reticle"
	"scene-viewer/internal/graphics/renderables/sky"
	"scene-viewer/internal/graphics/renderables/water"
	"scene-viewer/internal/graphics/renderer"
	"scene-viewer/internal/input"
	"scene-viewer/internal/player"
	"scene-viewer/internal/scene"
	"scene-viewer/internal/ui/menu"
	"scene-viewer/internal/ui/widget"
)

// Session owns everything driven by the frame loop. All methods run on the main
// thread.
type Session struct {
	log *slog.Logger

	Input        *input.InputManager
	Scene        *scene.Scene
	Controller   *player.Controller
	Orchestrator *frame.Orchestrator
	Renderer     *renderer.Renderer
	Composer     *renderer.Composer
	Menu         *menu.Menu

	clock     *frame.Clock
	waterFx   *effects.Water
	textures  *graphics.TextureCache
	models    *models.Models
	sky       *sky.Sky
	water     *water.Water
	particles *particles.Particles
	overlay   *overlay.Overlay
	track     *audio.Track

	// statsToggle mirrors config.GetShowStats in the settings panel
	statsToggle *widget.Toggle

	last  frame.Frame
	width int
}

// NewSession assembles the scene, the renderers and the orchestrator, then starts
// every asset load in the background. It needs a current GL context.
func NewSession(cfg *config.Config, im *input.InputManager, width, height int, log *slog.Logger) (*Session, error) {
	s := &Session{
		log:      log,
		Input:    im,
		Scene:    BuildScene(cfg),
		clock:    frame.NewClock(cfg.Navigation.MaxDelta),
		textures: graphics.NewTextureCache(),
		width:    width,
	}

	if err := cfg.Controls.Apply(im); err != nil {
		return nil, err
	}

	nav := cfg.Navigation
	body := player.NewBody(nav.Start)
	rig := startRig(nav, cfg.Controls.MouseSensitivity)
	s.Controller = player.NewController(body, rig, im, nav.Tuning)
	for _, c := range colliders(cfg.Colliders) {
		s.Controller.AddCollider(c)
	}

	sun := cfg.Sky.SunPosition()
	var world []renderer.Renderable
	if cfg.Sky.Enabled {
		s.sky = sky.NewSky(cfg.Sky.SkyParams)
		world = append(world, s.sky)
	}
	s.models = models.NewModels(s.textures)
	world = append(world, s.models)
	if cfg.Water.Enabled {
		var err error
		if s.waterFx, err = effects.NewWater(cfg.Water.WaterParams); err != nil {
			return nil, fmt.Errorf("water: %w", err)
		}
		s.waterFx.SetSunDirection(sun)
		s.water = water.NewWater(s.waterFx)
		world = append(world, s.water)
	}
	s.particles = particles.NewParticles(s.textures)
	world = append(world, s.particles)

	cam := graphics.NewCamera(width, height, cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far)
	s.overlay = overlay.NewOverlay(im.IsPointerLocked)
	r, err := renderer.NewRenderer(cam, s.Scene, s.Controller, world, []renderer.Renderable{reticle.NewReticle(im.IsPointerLocked), s.overlay})
	if err != nil {
		s.textures.Dispose()
		return nil, err
	}
	r.SetSun(sun)
	r.SetExposure(cfg.Bloom.ToneMappingExposure())
	r.SetViewport(width, height)
	s.Renderer = r

	sc := &frame.SceneContext{
		Clock:     s.clock,
		Navigator: s.Controller,
		Direct:    r,
	}
	if s.waterFx != nil {
		sc.Water = s.waterFx
	}
	if comp, err := renderer.NewComposer(r, cfg.Bloom); err != nil {
		log.Error("bloom unavailable", "error", err)
	} else {
		s.Composer = comp
		if cfg.Bloom.Enabled {
			sc.Composer = comp
		}
	}

	if s.Orchestrator, err = frame.New(sc, log); err != nil {
		s.Close()
		return nil, err
	}
	s.Menu = newSettingsMenu(s)
	s.overlay.SetMenu(s.Menu)

	s.load(cfg)
	return s, nil
}

// load starts one future per asset. Each is adopted on the tick it completes.
func (s *Session) load(cfg *config.Config) {
	o := s.Orchestrator

	for _, mc := range cfg.Models {
		f := asset.Go(mc.Name, func() (*asset.Model, error) {
			return asset.LoadModel(mc.Path)
		})
		frame.Await(o, f, func(m *asset.Model) { s.adoptModel(mc, m) })
	}

	if s.water != nil {
		p := cfg.Water.WaterParams
		f := asset.Go("water normals", func() (*image.RGBA, error) {
			return asset.LoadImage(p.Normals, p.TextureWidth, p.TextureHeight)
		})
		frame.Await(o, f, s.water.SetNormalMap)
	}

	for _, pp := range cfg.Particles {
		f := asset.Go("particles "+pp.Name, func() (*effects.ParticleField, error) {
			return effects.NewParticleField(pp)
		})
		frame.Await(o, f, s.adoptParticles)
	}

	if cfg.Audio.Enabled {
		ac := cfg.Audio
		f := asset.Go("audio", func() (*audio.Track, error) {
			return audio.Open(ac.Path)
		})
		frame.Await(o, f, func(t *audio.Track) {
			if err := t.Play(ac.Loop, ac.Volume); err != nil {
				s.log.Error("audio playback failed", "track", t.Name, "error", err)
				_ = t.Close()
				return
			}
			s.log.Info("ambient audio playing", "track", t.Name, "duration", t.Duration(), "loop", ac.Loop)
			s.track = t
		})
	}
}

func (s *Session) adoptModel(mc config.ModelConfig, m *asset.Model) {
	placeModel(m.Root, mc)
	s.Scene.Add(m.Root)
	s.log.Info("model loaded", "model", mc.Name, "clips", len(m.Clips))

	if !mc.Animate || len(m.Clips) == 0 {
		return
	}
	mixer := anim.NewMixer(m.Clips...)
	mixer.PlayFirst()
	s.Orchestrator.AddAnimator(mixer)
}

func (s *Session) adoptParticles(f *effects.ParticleField) {
	if err := s.particles.Add(f); err != nil {
		s.log.Warn("particle sprite unavailable", "error", err)
	}
	ctx := s.Orchestrator.Context()
	ctx.Effects = append(ctx.Effects, f)
	s.log.Debug("particles ready", "name", f.Params().Name, "count", f.Count())
}

// Tick runs one frame of the orchestrator.
func (s *Session) Tick(now time.Time) frame.Frame {
	s.last = s.Orchestrator.Tick(now)
	return s.last
}

// Redraw submits the last frame again without advancing anything, for window
// refresh events during a resize.
func (s *Session) Redraw() {
	if c := s.Orchestrator.Context().Composer; c != nil {
		c.Render(s.last)
		return
	}
	s.Renderer.Render(s.last)
}

// Resize propagates a framebuffer size change to the camera and every buffer.
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width = width
	s.Renderer.SetViewport(width, height)
	if s.Composer == nil {
		return
	}
	if err := s.Composer.SetViewport(width, height); err != nil {
		s.log.Error("resize post-processing buffers", "error", err)
		s.Composer.Dispose()
		s.Composer = nil
		s.Orchestrator.SetComposer(nil)
	}
}

// HandlePointer routes a pointer sample to the settings menu. It reports whether
// the pointer was over the panel or dragging one of its controls.
func (s *Session) HandlePointer(ptr widget.Pointer) bool {
	if s.Menu == nil {
		return false
	}
	s.Menu.Layout(overlay.MenuPosition(s.width))
	used := s.Menu.HandleInput(ptr)
	return used || s.Menu.Contains(ptr.X, ptr.Y)
}

// setBloom applies bloom settings from the settings menu.
func (s *Session) setBloom(p effects.BloomParams) {
	if s.Composer == nil {
		return
	}
	if err := s.Composer.SetParams(p); err != nil {
		s.log.Warn("bloom parameters rejected", "error", err)
		return
	}
	s.Renderer.SetExposure(p.ToneMappingExposure())
	if p.Enabled {
		s.Orchestrator.SetComposer(s.Composer)
	} else {
		s.Orchestrator.SetComposer(nil)
	}
}

// setSky applies sky settings and moves the sun for the water and lighting.
func (s *Session) setSky(p effects.SkyParams) {
	if err := s.sky.SetParams(p); err != nil {
		s.log.Warn("sky parameters rejected", "error", err)
		return
	}
	sun := p.SunPosition()
	s.Renderer.SetSun(sun)
	if s.waterFx != nil {
		s.waterFx.SetSunDirection(sun)
	}
}

// Apply takes the settings of a reloaded config that can change while running.
// Models, particle fields and the audio track need a restart.
func (s *Session) Apply(cfg *config.Config) {
	config.ApplyRuntime(cfg)
	applySceneSettings(s.Scene, cfg)

	if err := cfg.Controls.Apply(s.Input); err != nil {
		s.log.Warn("key bindings not applied", "error", err)
	}
	s.Controller.SetTuning(cfg.Navigation.Tuning)
	s.Controller.Rig.Sensitivity = cfg.Controls.MouseSensitivity
	s.clock.MaxDelta = cfg.Navigation.MaxDelta

	cam := s.Renderer.Camera()
	cam.FOV, cam.NearPlane, cam.FarPlane = cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far

	sun := cfg.Sky.SunPosition()
	s.Renderer.SetSun(sun)
	s.Renderer.SetExposure(cfg.Bloom.ToneMappingExposure())
	if s.sky != nil {
		if err := s.sky.SetParams(cfg.Sky.SkyParams); err != nil {
			s.log.Warn("sky parameters not applied", "error", err)
		}
	}
	if s.waterFx != nil {
		s.waterFx.SetSunDirection(sun)
	}
	if s.Composer != nil {
		if err := s.Composer.SetParams(cfg.Bloom); err != nil {
			s.log.Warn("bloom parameters not applied", "error", err)
		}
		if cfg.Bloom.Enabled {
			s.Orchestrator.SetComposer(s.Composer)
		} else {
			s.Orchestrator.SetComposer(nil)
		}
	}
	if s.track != nil {
		s.track.SetVolume(cfg.Audio.Volume)
	}

	// rebuild so the panel shows the reloaded values
	s.Menu = newSettingsMenu(s)
	s.overlay.SetMenu(s.Menu)
}

// ToggleStats flips the stats panel and keeps the settings panel in step.
func (s *Session) ToggleStats() {
	show := !config.GetShowStats()
	config.SetShowStats(show)
	if s.statsToggle != nil {
		s.statsToggle.IsOn = show
	}
}

// Close releases GPU resources and stops audio.
func (s *Session) Close() {
	if s.track != nil {
		_ = s.track.Close()
		s.track = nil
	}
	if s.Composer != nil {
		s.Composer.Dispose()
		s.Composer = nil
	}
	if s.Renderer != nil {
		s.Renderer.Dispose()
		s.Renderer = nil
	}
	s.textures.Dispose()
}
