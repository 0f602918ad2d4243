package object

import (
	"image/color"
	"math"

	"github.com/SP4567/PONG-GAME/internal/physics"
)

// Ball is the puck. Speed is the scalar the velocity is built from on every serve or
// paddle hit; in between, walls only flip VY so the magnitude is preserved.
type Ball struct {
	X, Y   float64 // Center
	R      float64
	Speed  float64
	VX, VY float64
	Color  color.RGBA
}

// Circle returns the ball's collision circle.
func (b Ball) Circle() physics.Circle {
	return physics.Circle{X: b.X, Y: b.Y, R: b.R}
}

// Launch sets the velocity to speed along angle (radians from horizontal), with dir
// choosing the horizontal sign.
func (b *Ball) Launch(dir Direction, speed, angle float64) {
	b.Speed = speed
	b.VX = float64(dir) * speed * math.Cos(angle)
	b.VY = speed * math.Sin(angle)
}

// Integrate advances the ball by one explicit Euler step of d units.
func (b *Ball) Integrate(d float64) {
	b.X += b.VX * d
	b.Y += b.VY * d
}

// Draw renders the ball as a filled circle.
func (b Ball) Draw(ctx DrawContext) error {
	ctx.Canvas.FillCircle(b.X, b.Y, b.R)
	return nil
}
