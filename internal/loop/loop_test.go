package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/SP4567/PONG-GAME/internal/config"
	"github.com/SP4567/PONG-GAME/internal/engine"
	"github.com/SP4567/PONG-GAME/internal/input"
	"github.com/SP4567/PONG-GAME/internal/object"
	"github.com/SP4567/PONG-GAME/internal/session"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func testOptions(out io.Writer) Options {
	settings := config.Default()
	settings.Loop.Seed = 1
	return Options{
		Settings:     settings,
		TermSizeFunc: fixedSize(100, 40),
		Renderer:     lipgloss.NewRenderer(out),
		Logger:       log.New(io.Discard),
	}
}

func newTestHost(t *testing.T) (*host, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	h, err := newHost(bufio.NewReader(pr), &out, testOptions(&out))
	if err != nil {
		t.Fatalf("newHost: %v", err)
	}
	h.updateScreen()
	return h, &out
}

func TestLayout(t *testing.T) {
	field := object.Playfield{Width: 800, Height: 480}
	tests := []struct {
		name                       string
		termW, termH               int
		cols, rows, offCol, offRow int
	}{
		{"width bound", 100, 40, 98, 29, 1, 6},
		{"height bound", 300, 30, 90, 27, 105, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, offCol, offRow := layout(tt.termW, tt.termH, field)
			if cols != tt.cols || rows != tt.rows || offCol != tt.offCol || offRow != tt.offRow {
				t.Fatalf("layout(%d, %d) = %d, %d, %d, %d; want %d, %d, %d, %d",
					tt.termW, tt.termH, cols, rows, offCol, offRow, tt.cols, tt.rows, tt.offCol, tt.offRow)
			}
			if offRow+rows+1 > tt.termH || offCol+cols+1 > tt.termW {
				t.Fatal("bordered playfield does not fit the terminal")
			}
		})
	}
}

func TestPointerMovesPaddleAndKeysTakeOver(t *testing.T) {
	h, _ := newTestHost(t)
	now := time.Now()

	col, row := h.canvas.LogicalToTerminal(10, 300)
	h.processInput(input.Input{HasPointer: true, PointerCol: col, PointerRow: row, Active: true}, now)
	intent := h.engine.Snapshot().Intent
	if !intent.HasPointer {
		t.Fatal("mouse report did not set a pointer target")
	}
	if cell := 480.0 / float64(h.canvas.TerminalHeight()); math.Abs(intent.PointerY-300) > cell {
		t.Fatalf("pointer y = %v, want within one cell of 300", intent.PointerY)
	}

	h.processInput(input.Input{Up: true, Directional: true, Active: true}, now)
	intent = h.engine.Snapshot().Intent
	if intent.HasPointer || !intent.Up {
		t.Fatalf("directional key did not take over: %+v", intent)
	}
}

func TestPauseAndResetKeys(t *testing.T) {
	h, _ := newTestHost(t)
	now := time.Now()

	h.processInput(input.Input{Pause: true}, now)
	if !h.engine.Snapshot().Paused {
		t.Fatal("space did not pause")
	}
	h.processInput(input.Input{Reset: true}, now)
	if h.engine.Snapshot().Paused {
		t.Fatal("reset did not clear the pause")
	}
	h.processInput(input.Input{Quit: true}, now)
	if h.running {
		t.Fatal("quit did not stop the host")
	}
}

func TestRenderDrawsHUDAndBanner(t *testing.T) {
	h, out := newTestHost(t)
	h.engine.TogglePause()

	if err := h.sched.Frame(0); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	got := out.String()
	for _, want := range []string{"YOU 0 - 0 CPU", "PAUSED", "█", "┌"} {
		if !strings.Contains(got, want) {
			t.Errorf("frame output is missing %q", want)
		}
	}
	if h.banner.width == 0 {
		t.Fatal("banner area not recorded")
	}

	h.engine.TogglePause()
	out.Reset()
	if err := h.sched.Frame(unit); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if strings.Contains(out.String(), "PAUSED") || h.banner.width != 0 {
		t.Fatal("banner still drawn after resuming")
	}
}

func TestHintsFollowSteering(t *testing.T) {
	h, out := newTestHost(t)
	if err := h.sched.Frame(0); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "↑/↓ W/S mouse") || strings.Contains(got, "mouse steering") {
		t.Fatalf("keyboard hints missing from %q", got)
	}

	col, row := h.canvas.LogicalToTerminal(10, 200)
	h.processInput(input.Input{HasPointer: true, PointerCol: col, PointerRow: row, Active: true}, time.Now())
	out.Reset()
	if err := h.sched.Frame(unit); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "\033[40;1H\033[2K") {
		t.Error("hint row not cleared before the longer hint")
	}
	if !strings.Contains(got, "mouse steering") {
		t.Errorf("pointer hints missing from %q", got)
	}
}

func TestStatusBannerNamesServeSide(t *testing.T) {
	hud := newHUD(lipgloss.NewRenderer(io.Discard), "#22c55e")
	tests := []struct {
		dir  object.Direction
		want string
	}{
		{object.DirectionLeft, "serve ◀ in 0.9s"},
		{object.DirectionRight, "serve ▶ in 0.9s"},
	}
	for _, tt := range tests {
		snap := engine.Snapshot{State: engine.StateAwaitingServe, ServeIn: 850 * time.Millisecond, ServeDir: tt.dir}
		if got := hud.statusBanner(snap); !strings.Contains(got, tt.want) {
			t.Errorf("banner for %v = %q, want %q", tt.dir, got, tt.want)
		}
	}
	if got := hud.statusBanner(engine.Snapshot{State: engine.StateRunning}); got != "" {
		t.Errorf("running banner = %q, want none", got)
	}
}

func TestShutdownNoticeEndsGame(t *testing.T) {
	h, _ := newTestHost(t)
	events := make(chan session.Event, 1)
	h.events = events
	events <- session.Event{Type: session.EventShutdown}

	h.processServerEvents()
	if !h.shuttingDown {
		t.Fatal("shutdown notice ignored")
	}
	h.updateTimers(time.Second, time.Now())
	if !h.running {
		t.Fatal("stopped before the notice was shown")
	}
	h.updateTimers(5*time.Second, time.Now())
	if h.running {
		t.Fatal("still running after the shutdown countdown")
	}
}

func TestIdleDisconnect(t *testing.T) {
	h, _ := newTestHost(t)
	h.disconnectIdle = true
	start := h.lastInput

	h.updateTimers(0, start.Add(91*time.Second))
	if !h.idle || !h.running {
		t.Fatalf("expected an idle warning, idle=%v running=%v", h.idle, h.running)
	}
	h.processInput(input.Input{Active: true}, start.Add(95*time.Second))
	if h.idle {
		t.Fatal("input did not clear the idle warning")
	}
	h.updateTimers(0, start.Add(95*time.Second+121*time.Second))
	if h.running {
		t.Fatal("idle player not disconnected")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	var out bytes.Buffer
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := Run(ctx, bufio.NewReader(pr), &out, testOptions(&out)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "\033[?1003h") || !strings.HasSuffix(got, "\033[H\033[2J") {
		t.Fatal("terminal not set up and restored")
	}
	if !strings.Contains(got, "YOU 0 - 0 CPU") {
		t.Fatal("no frame was drawn")
	}
}

func TestRunStopsOnQuitKey(t *testing.T) {
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), bufio.NewReader(strings.NewReader("q")), &out, testOptions(&out))
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on q")
	}
}
