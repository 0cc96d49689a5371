package widget

import "github.com/go-gl/mathgl/mgl32"

// Painter draws the primitives widgets are made of. Coordinates are pixels from
// the top-left corner; text is positioned by its baseline.
type Painter interface {
	DrawFilledRect(x, y, w, h float32, color mgl32.Vec4)
	DrawText(text string, x, y, scale float32, color mgl32.Vec4)
	MeasureText(text string, scale float32) (float32, float32)
}

// Pointer is the mouse state for one frame, in the same pixel space as the Painter.
type Pointer struct {
	X, Y        float32
	Down        bool
	JustPressed bool
}

type Component interface {
	Render(p Painter)
	HandleInput(ptr Pointer) bool
	SetPosition(x, y float32)
	SetSize(w, h float32)
	GetSize() (float32, float32)
}

type BaseComponent struct {
	X, Y, W, H float32
}

func (b *BaseComponent) SetPosition(x, y float32)    { b.X, b.Y = x, y }
func (b *BaseComponent) SetSize(w, h float32)        { b.W, b.H = w, h }
func (b *BaseComponent) GetSize() (float32, float32) { return b.W, b.H }

// Contains reports whether the point lies inside the component's rectangle.
func (b *BaseComponent) Contains(x, y float32) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

var (
	textColor  = mgl32.Vec4{1, 1, 1, 1}
	mutedColor = mgl32.Vec4{0.8, 0.8, 0.8, 1}
)
