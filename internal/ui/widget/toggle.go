package widget

import "github.com/go-gl/mathgl/mgl32"

type Toggle struct {
	BaseComponent
	Label     string
	IsOn      bool
	OnToggle  func(isOn bool)
	IsHovered bool
}

func NewToggle(label string, initial bool, onToggle func(isOn bool)) *Toggle {
	return &Toggle{
		BaseComponent: BaseComponent{W: 36, H: 16},
		Label:         label,
		IsOn:          initial,
		OnToggle:      onToggle,
	}
}

func (t *Toggle) HandleInput(ptr Pointer) bool {
	t.IsHovered = t.Contains(ptr.X, ptr.Y)
	if t.IsHovered && ptr.JustPressed {
		t.IsOn = !t.IsOn
		if t.OnToggle != nil {
			t.OnToggle(t.IsOn)
		}
		return true
	}
	return false
}

func (t *Toggle) Render(p Painter) {
	// green when enabled, red when disabled
	bg := mgl32.Vec4{0.5, 0.2, 0.2, 0.85}
	if t.IsOn {
		bg = mgl32.Vec4{0.2, 0.5, 0.2, 0.85}
	}
	if t.IsHovered {
		bg = mgl32.Vec4{bg.X() * 1.2, bg.Y() * 1.2, bg.Z() * 1.2, bg.W()}
	}
	p.DrawFilledRect(t.X, t.Y, t.W, t.H, bg)

	status := "off"
	if t.IsOn {
		status = "on"
	}
	p.DrawText(status, t.X+t.W+8, t.Y+t.H-3, 0.55, mutedColor)
}
