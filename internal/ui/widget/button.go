package widget

import "github.com/go-gl/mathgl/mgl32"

type Button struct {
	BaseComponent
	Text      string
	OnClick   func()
	IsHovered bool

	NormalColor mgl32.Vec4
	HoverColor  mgl32.Vec4
	TextColor   mgl32.Vec4
}

func NewButton(text string, w, h float32, onClick func()) *Button {
	return &Button{
		BaseComponent: BaseComponent{W: w, H: h},
		Text:          text,
		OnClick:       onClick,
		NormalColor:   mgl32.Vec4{0.2, 0.2, 0.2, 0.9},
		HoverColor:    mgl32.Vec4{0.3, 0.3, 0.3, 0.9},
		TextColor:     textColor,
	}
}

func (b *Button) HandleInput(ptr Pointer) bool {
	b.IsHovered = b.Contains(ptr.X, ptr.Y)
	if b.IsHovered && ptr.JustPressed {
		if b.OnClick != nil {
			b.OnClick()
		}
		return true
	}
	return false
}

func (b *Button) Render(p Painter) {
	color := b.NormalColor
	if b.IsHovered {
		color = b.HoverColor
	}
	p.DrawFilledRect(b.X, b.Y, b.W, b.H, color)

	// scale the label to ~40% of the button height, shrinking to fit 90% of its width
	_, rawH := p.MeasureText(b.Text, 1)
	if rawH == 0 {
		rawH = 20
	}
	scale := b.H * 0.4 / rawH
	textW, _ := p.MeasureText(b.Text, scale)
	if maxW := b.W * 0.9; textW > maxW {
		scale *= maxW / textW
		textW = maxW
	}
	textH := rawH * scale
	baseline := b.Y + (b.H-textH)/2 + textH*0.75
	p.DrawText(b.Text, b.X+(b.W-textW)/2, baseline, scale, b.TextColor)
}
