// Package input turns the raw terminal byte stream into per-frame player input.
package input

import (
	"bufio"
	"bytes"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals never report key releases, only repeats.
const keyHoldDuration = 120 * time.Millisecond

// maxEscapeLen bounds how long an unterminated escape sequence is buffered.
const maxEscapeLen = 32

// Input represents the current frame's input state.
type Input struct {
	Up   bool // Held
	Down bool // Held

	Directional bool // An up/down key arrived this frame

	Pause bool // Pressed an odd number of times this frame
	Reset bool // Pressed this frame
	Quit  bool

	// Pointer is the last mouse position reported this frame, as a 1-based terminal cell.
	PointerCol int
	PointerRow int
	HasPointer bool

	Active bool // A byte arrived from the terminal this frame
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	up   time.Time
	down time.Time
}

// Stream delivers input bytes via a channel and tracks key state across frames.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence carried over to the next frame
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error, which reads as Quit.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 256)}
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	buf := s.pending
	s.pending = nil
	fresh := 0

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
			fresh++
		default:
			break drain
		}
	}

	// A sequence that got nothing more for a whole frame was a bare Esc press.
	if fresh == 0 {
		buf = nil
	}

	in := s.parse(buf, now)
	in.Active = fresh > 0
	if s.closed {
		in.Quit = true
	}
	return in
}

// parse applies buf to the key state and builds this frame's input.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	var in Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' {
			n, complete := s.parseEscape(buf[i:], now, &in)
			if !complete {
				s.pending = append([]byte(nil), buf[i:]...)
				break
			}
			i += n - 1
			continue
		}
		s.applyByte(b, now, &in)
	}

	in.Up = now.Sub(s.state.up) < keyHoldDuration
	in.Down = now.Sub(s.state.down) < keyHoldDuration
	return in
}

// parseEscape handles one escape sequence at the start of seq and returns how many
// bytes it consumed. complete is false when more bytes are needed.
func (s *Stream) parseEscape(seq []byte, now time.Time, in *Input) (n int, complete bool) {
	if len(seq) < 2 {
		return 0, false
	}
	if seq[1] != '[' {
		return 1, true
	}
	if len(seq) < 3 {
		return 0, false
	}

	switch seq[2] {
	case 'A': // Up arrow
		s.state.up = now
		in.Directional = true
		return 3, true
	case 'B': // Down arrow
		s.state.down = now
		in.Directional = true
		return 3, true
	case '<': // SGR mouse report: ESC [ < b ; col ; row (M|m)
		end := bytes.IndexAny(seq, "Mm")
		if end < 0 {
			if len(seq) > maxEscapeLen {
				return len(seq), true
			}
			return 0, false
		}
		if col, row, ok := parseMouse(seq[3:end]); ok {
			in.PointerCol = col
			in.PointerRow = row
			in.HasPointer = true
		}
		return end + 1, true
	}
	return 3, true
}

// parseMouse parses "b;col;row" into 1-based terminal coordinates.
func parseMouse(body []byte) (col, row int, ok bool) {
	fields := bytes.Split(body, []byte{';'})
	if len(fields) != 3 {
		return 0, 0, false
	}
	x, err := strconv.Atoi(string(fields[1]))
	if err != nil || x < 1 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(string(fields[2]))
	if err != nil || y < 1 {
		return 0, 0, false
	}
	return x, y, true
}

// applyByte updates key state from a single plain byte.
func (s *Stream) applyByte(b byte, now time.Time, in *Input) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'w', 'W', 'k', 'K':
		s.state.up = now
		in.Directional = true
	case 's', 'S', 'j', 'J':
		s.state.down = now
		in.Directional = true
	case ' ':
		in.Pause = !in.Pause
	case 'r', 'R':
		in.Reset = true
	}
}
