package engine

import "github.com/SP4567/PONG-GAME/internal/object"

// EventKind identifies what happened inside the engine.
type EventKind int

const (
	EventScored  EventKind = iota // A point was won; a serve is pending
	EventServed                   // The ball was put back in play
	EventPaused                   // Manual pause switched on
	EventResumed                  // Manual pause switched off; frame timing restarts
	EventReset                    // Scores zeroed and ball re-served; frame timing restarts
)

func (k EventKind) String() string {
	switch k {
	case EventScored:
		return "scored"
	case EventServed:
		return "served"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is queued by the engine and drained by whoever drives the frames.
type Event struct {
	Kind      EventKind
	Score     object.Score     // Score after the event
	Conceded  object.Side      // EventScored only
	Direction object.Direction // EventScored: pending serve; EventServed/EventReset: serve taken
}

// RestartsClock reports whether the frame scheduler must forget its last timestamp.
func (ev Event) RestartsClock() bool {
	return ev.Kind == EventResumed || ev.Kind == EventReset
}

// ChangesScore reports whether the score display needs refreshing.
func (ev Event) ChangesScore() bool {
	return ev.Kind == EventScored || ev.Kind == EventReset
}
