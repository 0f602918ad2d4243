// Package loop drives the engine frame by frame. Scheduler turns host timestamps
// into engine deltas; Run hosts a full game in an ANSI terminal with the standard
// Input → Update → Draw cycle.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/SP4567/PONG-GAME/internal/config"
	"github.com/SP4567/PONG-GAME/internal/draw"
	"github.com/SP4567/PONG-GAME/internal/engine"
	"github.com/SP4567/PONG-GAME/internal/input"
	loopconfig "github.com/SP4567/PONG-GAME/internal/loop/config"
	"github.com/SP4567/PONG-GAME/internal/object"
	"github.com/SP4567/PONG-GAME/internal/session"
)

// Options configures a terminal game.
type Options struct {
	Settings       config.Settings
	TermSizeFunc   draw.TermSizeFunc    // Defaults to the size of os.Stdout
	Renderer       *lipgloss.Renderer   // HUD color profile; defaults to one detected on w
	Logger         *log.Logger          // Defaults to log.Default()
	Events         <-chan session.Event // Server notices for hosted sessions; nil when local
	DisconnectIdle bool                 // End the game after a long stretch without input
}

// Run plays one game on the terminal behind r and w until the player quits, the
// input stream ends, ctx is cancelled or the hosting server shuts down.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	h, err := newHost(r, w, opts)
	if err != nil {
		return err
	}

	if err := draw.EnterGameMode(w); err != nil {
		return err
	}
	defer func() {
		_ = draw.LeaveGameMode(w)
	}()

	return h.run(ctx)
}

// host owns one terminal game: its engine, scheduler and screen state.
type host struct {
	frame    *draw.Frame
	canvas   *draw.Canvas
	termSize draw.TermSizeFunc
	stream   *input.Stream
	events   <-chan session.Event
	log      *log.Logger

	engine *engine.Engine
	sched  *Scheduler
	net    object.Net
	hud    hud

	termWidth   int
	termHeight  int
	borderDirty bool
	scoreLine   string
	hintLine    string
	banner      textArea // Last banner drawn over the canvas

	running        bool
	shuttingDown   bool
	shutdownTimer  float64
	disconnectIdle bool
	lastInput      time.Time
	idle           bool
}

func newHost(r *bufio.Reader, w io.Writer, opts Options) (*host, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(w)
	}

	cfg, err := opts.Settings.EngineConfig()
	if err != nil {
		return nil, err
	}
	seed := opts.Settings.Loop.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng, err := engine.New(cfg, engine.Options{
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("start engine: %w", err)
	}

	h := &host{
		frame:          draw.NewFrame(w),
		canvas:         draw.NewScaledCanvas(1, 1, cfg.Field.Width, cfg.Field.Height),
		termSize:       termSize,
		stream:         input.StartStream(r),
		events:         opts.Events,
		log:            logger,
		engine:         eng,
		net:            object.Net{Field: cfg.Field},
		hud:            newHUD(renderer, opts.Settings.Ball.Color),
		running:        true,
		disconnectIdle: opts.DisconnectIdle,
		lastInput:      time.Now(),
	}
	h.scoreLine = h.hud.scoreLine(object.Score{})
	h.sched = NewScheduler(eng, SchedulerOptions{
		MaxDelta: opts.Settings.Loop.MaxDelta,
		Renderer: h,
		Scores:   h,
		Logger:   logger,
	})
	return h, nil
}

func (h *host) run(ctx context.Context) error {
	start := time.Now()
	lastFrame := start

	for h.running {
		frameStart := time.Now()
		delta := frameStart.Sub(lastFrame)
		lastFrame = frameStart

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// ===== INPUT PHASE =====
		h.processInput(input.ReadInput(h.stream), frameStart)
		h.processServerEvents()
		h.updateTimers(delta, frameStart)
		if !h.running {
			break
		}

		// ===== UPDATE + DRAW PHASE =====
		h.updateScreen()
		if err := h.sched.Frame(frameStart.Sub(start)); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < loopconfig.TargetFrameTime {
			time.Sleep(loopconfig.TargetFrameTime - elapsed)
		}
	}
	return nil
}

// processInput forwards this frame's keys and mouse to the engine.
func (h *host) processInput(in input.Input, now time.Time) {
	if in.Active {
		h.lastInput = now
		h.idle = false
	}
	if in.Quit {
		h.running = false
		return
	}

	// Terminals have no mouse-leave event, so a key press takes the paddle back.
	if in.Directional {
		h.engine.ClearPointerTarget()
	}
	h.engine.SetDirectional(in.Up, in.Down)
	if in.HasPointer {
		_, y := h.canvas.TerminalToLogical(in.PointerCol, in.PointerRow)
		h.engine.SetPointerTarget(y)
	}
	if in.Pause {
		h.engine.TogglePause()
	}
	if in.Reset {
		h.engine.Reset()
	}
}

// processServerEvents handles notices from the hosting server, without blocking.
func (h *host) processServerEvents() {
	for {
		select {
		case ev := <-h.events:
			if ev.Type == session.EventShutdown && !h.shuttingDown {
				h.shuttingDown = true
				h.shutdownTimer = loopconfig.ShutdownDisplaySeconds
				h.log.Info("shutdown notice received")
			}
		default:
			return
		}
	}
}

// updateTimers runs the shutdown countdown and the inactivity checks.
func (h *host) updateTimers(delta time.Duration, now time.Time) {
	if h.shuttingDown {
		h.shutdownTimer -= delta.Seconds()
		if h.shutdownTimer <= 0 {
			h.running = false
		}
	}
	if !h.disconnectIdle {
		return
	}
	inactive := now.Sub(h.lastInput)
	switch {
	case inactive > loopconfig.InactivityDisconnectUser:
		h.log.Info("disconnecting idle player", "idle", inactive.Round(time.Second))
		h.running = false
	case inactive > loopconfig.InactivityWarnUser:
		h.idle = true
	}
}

// ShowScore caches the styled score line; it is redrawn every frame.
func (h *host) ShowScore(score object.Score) {
	h.scoreLine = h.hud.scoreLine(score)
	h.frame.ClearRow(1)
}
