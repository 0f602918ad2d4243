// Package object holds the game entities: paddles, ball and score.
package object

import (
	"io"

	"github.com/SP4567/PONG-GAME/internal/draw"
)

// Side identifies a half of the playfield.
type Side int

const (
	SideLeft  Side = iota // Player paddle
	SideRight             // AI paddle
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Direction is the horizontal sign of a serve: +1 travels right, -1 travels left.
type Direction int

const (
	DirectionLeft  Direction = -1
	DirectionRight Direction = 1
)

func (d Direction) String() string {
	if d == DirectionLeft {
		return "left"
	}
	return "right"
}

// Playfield is the fixed logical coordinate space. Origin is top-left, y grows downward.
type Playfield struct {
	Width  float64
	Height float64
}

// CenterX returns the horizontal center.
func (p Playfield) CenterX() float64 {
	return p.Width / 2
}

// CenterY returns the vertical center.
func (p Playfield) CenterY() float64 {
	return p.Height / 2
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
	Writer io.Writer    // Direct terminal output (for text)
}

// Drawable is anything that can put itself on the terminal canvas.
type Drawable interface {
	Draw(ctx DrawContext) error
}
