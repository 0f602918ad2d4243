// Package engine is the Pong simulation: it owns the paddles, the ball, the score
// and the play state, and advances them one normalized delta at a time.
package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SP4567/PONG-GAME/internal/object"
)

// ErrInvalidDelta is returned by Tick for negative, NaN or infinite deltas.
var ErrInvalidDelta = errors.New("invalid delta")

// PlayState tells whether the ball is in play.
type PlayState int

const (
	StateRunning       PlayState = iota // Ball in play
	StateAwaitingServe                  // Point scored, ball frozen until the serve is due
)

func (s PlayState) String() string {
	if s == StateAwaitingServe {
		return "awaiting-serve"
	}
	return "running"
}

// Intent is the latest input from the player. The engine reads it once per tick.
type Intent struct {
	Up         bool
	Down       bool
	PointerY   float64
	HasPointer bool // When set, PointerY overrides Up/Down entirely
}

// Snapshot is a value copy of everything a renderer may read.
type Snapshot struct {
	Field    object.Playfield
	Left     object.Paddle
	Right    object.Paddle
	Ball     object.Ball
	Score    object.Score
	State    PlayState
	Paused   bool
	Intent   Intent           // Input the next tick will apply
	ServeIn  time.Duration    // Time left before the pending serve, 0 when running
	ServeDir object.Direction // Where the pending serve goes, 0 when running
}

// Options configures the engine's collaborators. Zero values pick defaults.
type Options struct {
	Clock  Clock       // Drives the serve delay; defaults to SystemClock
	Rand   *rand.Rand  // Serve angles and directions; defaults to a time-seeded source
	Logger *log.Logger // Defaults to log.Default()
}

// Engine owns all mutable game state. It is not safe for concurrent use: one
// goroutine drives Tick, Poll and the intent setters.
type Engine struct {
	cfg    Config
	left   object.Paddle
	right  object.Paddle
	ball   object.Ball
	score  object.Score
	intent Intent
	state  PlayState
	paused bool
	seq    *Sequencer
	rng    *rand.Rand
	log    *log.Logger
	events []Event
}

// New creates an engine with paddles centered and the ball served in a random direction.
func New(cfg Config, opts Options) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = SystemClock
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	e := &Engine{
		cfg:   cfg,
		left:  object.NewPaddle(object.SideLeft, cfg.Field, cfg.PaddleWidth, cfg.PaddleHeight, cfg.PaddleInset, cfg.PaddleColor),
		right: object.NewPaddle(object.SideRight, cfg.Field, cfg.PaddleWidth, cfg.PaddleHeight, cfg.PaddleInset, cfg.PaddleColor),
		ball: object.Ball{
			R:     cfg.BallRadius,
			Color: cfg.BallColor,
		},
		seq: NewSequencer(clock, cfg.ServeDelay),
		rng: rng,
		log: logger,
	}
	e.Serve(e.randomDirection())
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Tick advances the simulation by d delta units (1 unit = 1/60 s). It does nothing
// while a serve is pending or the game is paused.
func (e *Engine) Tick(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, d)
	}
	if e.state == StateAwaitingServe || e.paused {
		return nil
	}

	e.movePlayer(d)
	e.moveAI(d)
	e.ball.Integrate(d)
	e.bounceWalls()
	e.bouncePaddles()
	e.checkScore()
	return nil
}

// Poll puts the ball back in play once the pending serve is due. The serve timer
// keeps running while manually paused, and serving leaves the pause flag alone.
func (e *Engine) Poll() {
	dir, ok := e.seq.Due()
	if !ok {
		return
	}
	e.Serve(dir)
	e.state = StateRunning
	e.emit(Event{Kind: EventServed, Score: e.score, Direction: dir})
}

// Serve re-centers the ball at base speed and launches it toward dir at a random
// angle within the configured serve cone.
func (e *Engine) Serve(dir object.Direction) {
	angle := (e.rng.Float64()*2 - 1) * e.cfg.MaxServeAngle
	e.ball.X = e.cfg.Field.CenterX()
	e.ball.Y = e.cfg.Field.CenterY()
	e.ball.Launch(dir, e.cfg.BaseSpeed, angle)
	e.log.Debug("serve", "direction", dir, "angle", angle*180/math.Pi)
}

func (e *Engine) randomDirection() object.Direction {
	if e.rng.Float64() < 0.5 {
		return object.DirectionRight
	}
	return object.DirectionLeft
}

// SetDirectional records which directional keys are held.
func (e *Engine) SetDirectional(up, down bool) {
	e.intent.Up = up
	e.intent.Down = down
}

// SetPointerTarget makes the player paddle follow y (its center) until cleared.
// NaN and infinite targets are ignored.
func (e *Engine) SetPointerTarget(y float64) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return
	}
	e.intent.PointerY = y
	e.intent.HasPointer = true
}

// ClearPointerTarget hands the player paddle back to the directional keys.
func (e *Engine) ClearPointerTarget() {
	e.intent.HasPointer = false
}

// TogglePause flips the manual pause. It never touches a pending serve.
func (e *Engine) TogglePause() {
	e.paused = !e.paused
	if e.paused {
		e.emit(Event{Kind: EventPaused, Score: e.score})
		return
	}
	e.emit(Event{Kind: EventResumed, Score: e.score})
}

// Reset zeroes the score, cancels any pending serve, clears the manual pause and
// serves a fresh ball in a random direction.
func (e *Engine) Reset() {
	if e.seq.Cancel() {
		e.log.Debug("pending serve cancelled by reset")
	}
	e.score = object.Score{}
	e.paused = false
	e.state = StateRunning
	dir := e.randomDirection()
	e.Serve(dir)
	e.emit(Event{Kind: EventReset, Score: e.score, Direction: dir})
}

// Snapshot returns a copy of the state for rendering.
func (e *Engine) Snapshot() Snapshot {
	dir, _ := e.seq.Pending()
	return Snapshot{
		Field:    e.cfg.Field,
		Left:     e.left,
		Right:    e.right,
		Ball:     e.ball,
		Score:    e.score,
		State:    e.state,
		Paused:   e.paused,
		Intent:   e.intent,
		ServeIn:  e.seq.Remaining(),
		ServeDir: dir,
	}
}

// Events drains the queued events, oldest first.
func (e *Engine) Events() []Event {
	if len(e.events) == 0 {
		return nil
	}
	out := e.events
	e.events = nil
	return out
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}
