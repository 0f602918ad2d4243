package engine

import (
	"time"

	"github.com/SP4567/PONG-GAME/internal/object"
)

// Clock reports the current time. The sequencer only ever compares against it.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock (monotonic reading included).
var SystemClock Clock = ClockFunc(time.Now)

// Sequencer holds the single pending serve between a point and the next rally.
// It is a deadline, not a goroutine: whoever drives the frames calls Due, so a
// serve can never race a tick.
type Sequencer struct {
	clock     Clock
	delay     time.Duration
	pending   bool
	deadline  time.Time
	direction object.Direction
}

// NewSequencer creates a sequencer that serves delay after each Schedule.
func NewSequencer(clock Clock, delay time.Duration) *Sequencer {
	return &Sequencer{clock: clock, delay: delay}
}

// Schedule arms a serve toward dir, replacing any serve already pending.
func (s *Sequencer) Schedule(dir object.Direction) {
	s.pending = true
	s.direction = dir
	s.deadline = s.clock.Now().Add(s.delay)
}

// Cancel drops the pending serve. It reports whether one was pending.
func (s *Sequencer) Cancel() bool {
	was := s.pending
	s.pending = false
	return was
}

// Pending returns the direction of the pending serve, if any.
func (s *Sequencer) Pending() (object.Direction, bool) {
	if !s.pending {
		return 0, false
	}
	return s.direction, true
}

// Remaining returns how long until the pending serve is due, or 0.
func (s *Sequencer) Remaining() time.Duration {
	if !s.pending {
		return 0
	}
	if d := s.deadline.Sub(s.clock.Now()); d > 0 {
		return d
	}
	return 0
}

// Due fires the pending serve once its deadline has passed. The serve is
// consumed: later calls report false until the next Schedule.
func (s *Sequencer) Due() (object.Direction, bool) {
	if !s.pending || s.clock.Now().Before(s.deadline) {
		return 0, false
	}
	s.pending = false
	return s.direction, true
}
