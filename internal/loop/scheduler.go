package loop

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SP4567/PONG-GAME/internal/engine"
	"github.com/SP4567/PONG-GAME/internal/object"
)

// Renderer draws one frame. It is called once per Frame, after the tick.
type Renderer interface {
	Render(snap engine.Snapshot) error
}

// ScoreDisplay is told about every score change (points and resets).
type ScoreDisplay interface {
	ShowScore(score object.Score)
}

// SchedulerOptions configures a Scheduler.
type SchedulerOptions struct {
	// MaxDelta caps the delta a single frame may apply, in units. 0 disables the cap.
	MaxDelta float64
	Renderer Renderer
	Scores   ScoreDisplay
	Logger   *log.Logger
}

// Scheduler converts host frame timestamps into normalized engine deltas and keeps
// tick and render strictly in order. Hosts call Frame once per display frame.
type Scheduler struct {
	engine   *engine.Engine
	maxDelta float64
	renderer Renderer
	scores   ScoreDisplay
	log      *log.Logger

	last    time.Duration
	hasLast bool
	delta   float64
}

// NewScheduler creates a scheduler driving e.
func NewScheduler(e *engine.Engine, opts SchedulerOptions) *Scheduler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		engine:   e,
		maxDelta: opts.MaxDelta,
		renderer: opts.Renderer,
		scores:   opts.Scores,
		log:      logger,
	}
}

// Delta returns the delta applied by the most recent Frame.
func (s *Scheduler) Delta() float64 {
	return s.delta
}

// Restart makes the next Frame apply a zero delta.
func (s *Scheduler) Restart() {
	s.hasLast = false
}

// Frame runs one frame at host timestamp now, which must come from a monotonic
// source with a fixed origin. The first frame, and the first after a resume or a
// reset, applies a zero delta so the time spent away is not simulated.
func (s *Scheduler) Frame(now time.Duration) error {
	s.drainEvents()
	s.engine.Poll()
	s.drainEvents()

	s.delta = 0
	if s.hasLast {
		s.delta = float64(now-s.last) / float64(engine.UnitDuration)
		if s.maxDelta > 0 && s.delta > s.maxDelta {
			s.delta = s.maxDelta
		}
	}
	s.last = now
	s.hasLast = true

	if err := s.engine.Tick(s.delta); err != nil {
		if !errors.Is(err, engine.ErrInvalidDelta) {
			return err
		}
		s.log.Warn("frame skipped", "err", err)
	}
	s.drainEvents()

	if s.renderer == nil {
		return nil
	}
	return s.renderer.Render(s.engine.Snapshot())
}

func (s *Scheduler) drainEvents() {
	for _, ev := range s.engine.Events() {
		s.log.Debug("engine event", "kind", ev.Kind, "score", ev.Score.String())
		if ev.RestartsClock() {
			s.hasLast = false
		}
		if ev.ChangesScore() && s.scores != nil {
			s.scores.ShowScore(ev.Score)
		}
	}
}
