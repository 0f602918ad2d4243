package object

import (
	"image/color"

	"github.com/SP4567/PONG-GAME/internal/physics"
)

// Paddle is a vertical bat. X is fixed per side; Y is the top edge.
type Paddle struct {
	X, Y  float64
	W, H  float64
	Color color.RGBA
}

// NewPaddle places a paddle of the given size inset from its wall and vertically centered.
func NewPaddle(side Side, field Playfield, w, h, inset float64, clr color.RGBA) Paddle {
	x := inset
	if side == SideRight {
		x = field.Width - inset - w
	}
	return Paddle{
		X:     x,
		Y:     (field.Height - h) / 2,
		W:     w,
		H:     h,
		Color: clr,
	}
}

// CenterY returns the vertical center of the paddle.
func (p Paddle) CenterY() float64 {
	return p.Y + p.H/2
}

// Rect returns the paddle's collision rectangle.
func (p Paddle) Rect() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// ClampTo keeps the paddle fully inside a field of the given height.
func (p *Paddle) ClampTo(fieldHeight float64) {
	p.Y = physics.Clamp(p.Y, 0, fieldHeight-p.H)
}

// Draw renders the paddle as a filled rectangle.
func (p Paddle) Draw(ctx DrawContext) error {
	ctx.Canvas.FillRect(p.X, p.Y, p.W, p.H)
	return nil
}
