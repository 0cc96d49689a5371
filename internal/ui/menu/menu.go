package menu

import (
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/internal/ui/widget"
)

// Layout constants in pixels at scale 1.
const (
	Width      = 360
	padding    = 12
	rowHeight  = 34
	labelScale = 0.55
	titleScale = 0.8
	controlW   = 170
	controlH   = 14
	buttonH    = 30
)

var (
	panelColor = mgl32.Vec4{0.05, 0.05, 0.08, 0.8}
	titleColor = mgl32.Vec4{1, 1, 1, 1}
	labelColor = mgl32.Vec4{0.85, 0.85, 0.85, 1}
)

type row struct {
	label   string
	heading bool
	c       widget.Component
}

// Menu is a vertical list of labelled controls, used as the live settings panel
// while mouse look is released.
type Menu struct {
	Title string
	X, Y  float32

	rows []row
}

func New(title string) *Menu {
	return &Menu{Title: title}
}

// Heading starts a titled group of controls.
func (m *Menu) Heading(text string) {
	m.rows = append(m.rows, row{label: text, heading: true})
}

func (m *Menu) AddSlider(label string, min, max, value float32, steps int, format string, onChange func(float32)) *widget.Slider {
	s := widget.NewSlider(label, min, max, value, steps, onChange)
	s.Format = format
	s.SetSize(controlW, controlH)
	m.rows = append(m.rows, row{label: label, c: s})
	return s
}

func (m *Menu) AddToggle(label string, on bool, onToggle func(bool)) *widget.Toggle {
	t := widget.NewToggle(label, on, onToggle)
	m.rows = append(m.rows, row{label: label, c: t})
	return t
}

func (m *Menu) AddButton(text string, onClick func()) *widget.Button {
	b := widget.NewButton(text, Width-2*padding, buttonH, onClick)
	m.rows = append(m.rows, row{c: b})
	return b
}

// Height is the panel height in pixels.
func (m *Menu) Height() float32 {
	return padding*2 + rowHeight*float32(len(m.rows)+1)
}

// Contains reports whether a point falls on the panel.
func (m *Menu) Contains(x, y float32) bool {
	return x >= m.X && x <= m.X+Width && y >= m.Y && y <= m.Y+m.Height()
}

// Layout positions the panel with its top-left corner at (x, y).
func (m *Menu) Layout(x, y float32) {
	m.X, m.Y = x, y
	rowY := y + padding + rowHeight
	for _, r := range m.rows {
		if r.c != nil {
			_, h := r.c.GetSize()
			if _, ok := r.c.(*widget.Button); ok {
				r.c.SetPosition(x+padding, rowY)
			} else {
				r.c.SetPosition(x+Width-padding-controlW-50, rowY+(rowHeight-h)/2-6)
			}
		}
		rowY += rowHeight
	}
}

// HandleInput routes the pointer to the controls. It returns true when a control
// used it, so the click should not fall through to the scene.
func (m *Menu) HandleInput(ptr widget.Pointer) bool {
	for _, r := range m.rows {
		// an active drag owns the pointer until release
		if s, ok := r.c.(*widget.Slider); ok && s.Dragging() {
			s.HandleInput(ptr)
			return true
		}
	}
	used := false
	for _, r := range m.rows {
		if r.c != nil && r.c.HandleInput(ptr) {
			used = true
		}
	}
	return used
}

func (m *Menu) Render(p widget.Painter) {
	p.DrawFilledRect(m.X, m.Y, Width, m.Height(), panelColor)
	p.DrawText(m.Title, m.X+padding, m.Y+padding+rowHeight*0.6, titleScale, titleColor)

	rowY := m.Y + padding + rowHeight
	for _, r := range m.rows {
		baseline := rowY + rowHeight*0.5
		switch {
		case r.heading:
			p.DrawText(r.label, m.X+padding, baseline, labelScale*1.1, titleColor)
		case r.label != "":
			p.DrawText(r.label, m.X+padding+8, baseline, labelScale, labelColor)
		}
		if r.c != nil {
			r.c.Render(p)
		}
		rowY += rowHeight
	}
}
