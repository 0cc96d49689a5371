package player

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	Damping       = 10.0
	Gravity       = 980.0 // 9.8 scaled by a mass factor of 100
	Thrust        = 400.0
	JumpImpulse   = 350.0
	GroundHeight  = 10.0
	ProbeOffset   = 10.0
	ProbeDistance = 10.0
)

// Tuning holds the constants of the walking model.
type Tuning struct {
	Damping       float32 `yaml:"damping"`
	Gravity       float32 `yaml:"gravity"`
	Thrust        float32 `yaml:"thrust"`
	JumpImpulse   float32 `yaml:"jump_impulse"`
	GroundHeight  float32 `yaml:"ground_height"`
	ProbeOffset   float32 `yaml:"probe_offset"`
	ProbeDistance float32 `yaml:"probe_distance"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Damping:       Damping,
		Gravity:       Gravity,
		Thrust:        Thrust,
		JumpImpulse:   JumpImpulse,
		GroundHeight:  GroundHeight,
		ProbeOffset:   ProbeOffset,
		ProbeDistance: ProbeDistance,
	}
}

// Validate rejects values that would make the integration diverge or never settle.
func (t Tuning) Validate() error {
	switch {
	case t.Damping < 0:
		return fmt.Errorf("damping must be >= 0, got %v", t.Damping)
	case t.Gravity < 0:
		return fmt.Errorf("gravity must be >= 0, got %v", t.Gravity)
	case t.Thrust < 0:
		return fmt.Errorf("thrust must be >= 0, got %v", t.Thrust)
	case t.JumpImpulse < 0:
		return fmt.Errorf("jump impulse must be >= 0, got %v", t.JumpImpulse)
	case t.ProbeDistance < 0:
		return fmt.Errorf("probe distance must be >= 0, got %v", t.ProbeDistance)
	}
	return nil
}

// Body is the navigating entity: the camera sits at Position.
// Position.Y never drops below the ground height after an update.
type Body struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	CanJump  bool
}

func NewBody(position mgl32.Vec3) *Body {
	return &Body{Position: position}
}
