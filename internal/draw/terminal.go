// Package draw renders to ANSI terminals: a scaled half-block canvas, a frame
// buffer that batches each frame's output, and the terminal modes a game runs in.
package draw

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// maxChunkSize caps a single write. 1400 bytes keeps a chunk under a typical
// 1500-byte MTU once SSH framing is added.
const maxChunkSize = 1400

const (
	seqClearScreen = "\033[H\033[2J"
	seqClearLine   = "\033[2K"
	seqHideCursor  = "\033[?25l"
	seqShowCursor  = "\033[?25h"
	seqMouseOn     = "\033[?1003h\033[?1006h" // Any-motion tracking, SGR coordinates
	seqMouseOff    = "\033[?1003l\033[?1006l"
)

// Frame collects one frame of terminal output so it reaches the terminal in a few
// MTU-sized writes instead of one per cell.
type Frame struct {
	out io.Writer
	buf bytes.Buffer
	num [20]byte
}

// NewFrame returns a frame that flushes to w.
func NewFrame(w io.Writer) *Frame {
	return &Frame{out: w}
}

// Write queues p. Canvas and text objects render through it.
func (f *Frame) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

// ClearScreen queues a full clear.
func (f *Frame) ClearScreen() {
	f.buf.WriteString(seqClearScreen)
}

// ClearRow queues erasing a whole 1-based terminal row.
func (f *Frame) ClearRow(row int) {
	f.buf.WriteString("\033[")
	f.buf.Write(strconv.AppendInt(f.num[:0], int64(row), 10))
	f.buf.WriteString(";1H")
	f.buf.WriteString(seqClearLine)
}

// Flush sends everything queued since the last flush. On error the rest of the
// frame is dropped; the next frame redraws from the canvas diff.
func (f *Frame) Flush() error {
	for f.buf.Len() > 0 {
		if _, err := f.out.Write(f.buf.Next(maxChunkSize)); err != nil {
			f.buf.Reset()
			return err
		}
	}
	return nil
}

// EnterGameMode hides the cursor, turns on mouse tracking and clears the screen.
func EnterGameMode(w io.Writer) error {
	_, err := io.WriteString(w, seqHideCursor+seqMouseOn+seqClearScreen)
	return err
}

// LeaveGameMode undoes EnterGameMode and leaves a clean screen behind.
func LeaveGameMode(w io.Writer) error {
	_, err := io.WriteString(w, seqMouseOff+seqShowCursor+seqClearScreen)
	return err
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns the size of the terminal on os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
