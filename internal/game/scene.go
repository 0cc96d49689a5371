package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/internal/config"
	"scene-viewer/internal/physics"
	"scene-viewer/internal/player"
	"scene-viewer/internal/scene"
)

// BuildScene creates the empty scene graph with the background, fog and lights
// from cfg. Models are attached later as their loads complete.
func BuildScene(cfg *config.Config) *scene.Scene {
	s := scene.New()
	applySceneSettings(s, cfg)
	return s
}

func applySceneSettings(s *scene.Scene, cfg *config.Config) {
	s.Background = cfg.Scene.Background
	s.Fog = cfg.Scene.Fog
	s.Hemisphere = cfg.Lights.Hemisphere
	s.Ambient = cfg.Lights.Ambient
	s.Points = cfg.Lights.Points
	s.Spots = cfg.Lights.Spots
}

// placeModel applies the configured placement to a loaded model root.
func placeModel(root *scene.Node, mc config.ModelConfig) {
	root.Name = mc.Name
	root.SetTranslation(mgl32.Vec3(mc.Position))
	root.SetScale(mgl32.Vec3(mc.Scale))
	root.SetEuler(mc.Rotation[0], mc.Rotation[1], mc.Rotation[2])
	root.Visible = !mc.Hidden
}

// colliders turns the configured boxes into ground probe targets.
func colliders(boxes []config.BoxConfig) []physics.Collider {
	out := make([]physics.Collider, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, physics.AABB{Min: mgl32.Vec3(b.Min), Max: mgl32.Vec3(b.Max)})
	}
	return out
}

// startRig orients the camera from the configured yaw and pitch, or towards
// look_at when it is set.
func startRig(nav config.NavigationConfig, sensitivity float64) *player.Rig {
	rig := player.NewRig(nav.Yaw, nav.Pitch, sensitivity)
	if nav.LookAt != nil {
		rig.LookAt(nav.Start, *nav.LookAt)
	}
	return rig
}
