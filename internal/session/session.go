// Package session tracks the live game sessions of a server so it can shut down
// gracefully: every session is told to wind down and the server waits for them.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ErrFull is returned by Register when the registry is at capacity.
var ErrFull = errors.New("too many sessions")

// EventType identifies an event sent to a session.
type EventType int

const (
	EventShutdown EventType = iota // Server is going away; finish up and disconnect
)

// Event is sent from the server to a session.
type Event struct {
	Type EventType
}

// Handle is a session's registration. Events is buffered and never closed.
type Handle struct {
	ID      int
	User    string
	Started time.Time
	Events  chan Event
}

// Registry holds the live sessions. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[int]*Handle
	nextID   int
	max      int
	log      *log.Logger
}

// NewRegistry creates a registry admitting at most max sessions (0 = unlimited).
func NewRegistry(max int, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		sessions: make(map[int]*Handle),
		nextID:   1,
		max:      max,
		log:      logger,
	}
}

// Register adds a session for user and returns its handle.
func (r *Registry) Register(user string) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.max > 0 && len(r.sessions) >= r.max {
		return nil, ErrFull
	}
	h := &Handle{
		ID:      r.nextID,
		User:    user,
		Started: time.Now(),
		Events:  make(chan Event, 4),
	}
	r.nextID++
	r.sessions[h.ID] = h
	r.log.Debug("session registered", "id", h.ID, "user", user, "live", len(r.sessions))
	return h, nil
}

// Unregister removes a session. Unknown IDs are ignored.
func (r *Registry) Unregister(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.sessions[id]
	if !ok {
		return
	}
	delete(r.sessions, id)
	r.log.Debug("session unregistered", "id", id, "user", h.User, "played", time.Since(h.Started).Round(time.Second))
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Shutdown notifies every session and waits for them to unregister, up to timeout.
// It returns how many sessions were still live when it gave up.
func (r *Registry) Shutdown(timeout time.Duration) int {
	r.mu.RLock()
	for _, h := range r.sessions {
		select {
		case h.Events <- Event{Type: EventShutdown}:
		default:
		}
	}
	r.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if remaining := r.Count(); remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			remaining := r.Count()
			r.log.Warn("shutdown timed out", "remaining", remaining)
			return remaining
		case <-ticker.C:
		}
	}
}
