package engine

import (
	"math"

	"github.com/SP4567/PONG-GAME/internal/object"
	"github.com/SP4567/PONG-GAME/internal/physics"
)

// movePlayer applies the pointer target or, without one, both directional flags.
// Up and down are applied independently, so holding both cancels out.
func (e *Engine) movePlayer(d float64) {
	p := &e.left
	if e.intent.HasPointer {
		p.Y = e.intent.PointerY - p.H/2
	} else {
		if e.intent.Up {
			p.Y -= e.cfg.PaddleSpeed * d
		}
		if e.intent.Down {
			p.Y += e.cfg.PaddleSpeed * d
		}
	}
	p.ClampTo(e.cfg.Field.Height)
}

// moveAI steps the right paddle's center toward the ball at a capped rate,
// holding still inside the dead zone.
func (e *Engine) moveAI(d float64) {
	p := &e.right
	step := e.cfg.AISpeed * d
	center := p.CenterY()
	switch {
	case center < e.ball.Y-e.cfg.AIDeadZone:
		p.Y += step
	case center > e.ball.Y+e.cfg.AIDeadZone:
		p.Y -= step
	}
	p.ClampTo(e.cfg.Field.Height)
}

// bounceWalls reflects the ball off the top and bottom walls. The ball is put back
// on the wall and its vertical velocity pointed away from it.
func (e *Engine) bounceWalls() {
	b := &e.ball
	switch {
	case b.Y-b.R <= 0:
		b.Y = b.R
		b.VY = math.Abs(b.VY)
	case b.Y+b.R >= e.cfg.Field.Height:
		b.Y = e.cfg.Field.Height - b.R
		b.VY = -math.Abs(b.VY)
	}
}

// bouncePaddles tests each paddle only while the ball travels toward it, so a ball
// still overlapping a paddle it just left is not bounced again.
func (e *Engine) bouncePaddles() {
	if e.ball.VX < 0 && physics.CircleRectOverlap(e.left.Rect(), e.ball.Circle()) {
		e.hitPaddle(object.SideLeft)
	}
	if e.ball.VX > 0 && physics.CircleRectOverlap(e.right.Rect(), e.ball.Circle()) {
		e.hitPaddle(object.SideRight)
	}
}

// hitPaddle sends the ball back at an angle set by where it struck the paddle,
// a little faster, and moves it clear of the paddle face.
func (e *Engine) hitPaddle(side object.Side) {
	p := e.left
	dir := object.DirectionRight
	if side == object.SideRight {
		p = e.right
		dir = object.DirectionLeft
	}
	b := &e.ball

	offset := physics.Clamp((b.Y-p.CenterY())/(p.H/2), -1, 1)
	angle := offset * e.cfg.MaxBounceAngle
	speed := math.Min(e.cfg.MaxSpeed, b.Speed*e.cfg.SpeedGain)
	b.Launch(dir, speed, angle)

	if side == object.SideLeft {
		b.X = p.X + p.W + b.R + e.cfg.Separation
	} else {
		b.X = p.X - b.R - e.cfg.Separation
	}
}

// checkScore awards a point once the ball has fully left the field and hands the
// next serve to the sequencer: rightward after the left side concedes, leftward
// after the right side concedes.
func (e *Engine) checkScore() {
	b := e.ball
	switch {
	case b.X+b.R < 0:
		e.awardPoint(object.SideLeft, object.DirectionRight)
	case b.X-b.R > e.cfg.Field.Width:
		e.awardPoint(object.SideRight, object.DirectionLeft)
	}
}

func (e *Engine) awardPoint(conceded object.Side, serve object.Direction) {
	e.score.Credit(conceded)
	e.state = StateAwaitingServe
	e.seq.Schedule(serve)
	e.log.Debug("point", "conceded", conceded, "score", e.score.String(), "serve", serve)
	e.emit(Event{Kind: EventScored, Score: e.score, Conceded: conceded, Direction: serve})
}
