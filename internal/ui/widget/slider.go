package widget

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const thumbWidth = 12

// Slider edits a value in [Min, Max]. Steps > 1 snaps to that many evenly spaced
// positions; otherwise the value is continuous. Dragging keeps control of the
// slider until the button is released, even outside its rectangle.
type Slider struct {
	BaseComponent
	Label    string
	Min, Max float32
	Value    float32
	Steps    int
	// Format renders the value next to the track, "%.2f" when empty.
	Format   string
	OnChange func(val float32)

	dragging bool
}

func NewSlider(label string, min, max, value float32, steps int, onChange func(val float32)) *Slider {
	s := &Slider{
		BaseComponent: BaseComponent{W: 200, H: 16},
		Label:         label,
		Min:           min,
		Max:           max,
		Steps:         steps,
		OnChange:      onChange,
	}
	s.Value = s.clamp(value)
	return s
}

func (s *Slider) clamp(v float32) float32 {
	return mgl32.Clamp(v, s.Min, s.Max)
}

// Ratio is the value's position along the track in [0,1].
func (s *Slider) Ratio() float32 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// valueAt maps a pointer x coordinate to a value, applying step snapping.
func (s *Slider) valueAt(px float32) float32 {
	v := float32(0)
	if s.W > 0 {
		v = mgl32.Clamp((px-s.X)/s.W, 0, 1)
	}
	if s.Steps > 1 {
		denom := float32(s.Steps - 1)
		v = float32(int(v*denom+0.5)) / denom
	}
	return s.Min + v*(s.Max-s.Min)
}

func (s *Slider) HandleInput(ptr Pointer) bool {
	switch {
	case s.dragging && !ptr.Down:
		s.dragging = false
		return false
	case !s.dragging && ptr.JustPressed && s.Contains(ptr.X, ptr.Y):
		s.dragging = true
	case !s.dragging:
		return false
	}

	if v := s.valueAt(ptr.X); v != s.Value {
		s.Value = v
		if s.OnChange != nil {
			s.OnChange(v)
		}
	}
	return true
}

// Dragging reports whether the slider currently owns the pointer.
func (s *Slider) Dragging() bool {
	return s.dragging
}

func (s *Slider) Render(p Painter) {
	p.DrawFilledRect(s.X, s.Y, s.W, s.H, mgl32.Vec4{0.3, 0.3, 0.3, 0.8})
	p.DrawFilledRect(s.X, s.Y, s.W*s.Ratio(), s.H, mgl32.Vec4{0.25, 0.45, 0.7, 0.8})
	thumbX := s.X + (s.W-thumbWidth)*s.Ratio()
	p.DrawFilledRect(thumbX, s.Y, thumbWidth, s.H, mgl32.Vec4{0.75, 0.75, 0.75, 0.95})

	format := s.Format
	if format == "" {
		format = "%.2f"
	}
	p.DrawText(fmt.Sprintf(format, s.Value), s.X+s.W+8, s.Y+s.H-3, 0.55, mutedColor)
}
