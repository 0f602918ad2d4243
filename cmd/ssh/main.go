package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/SP4567/PONG-GAME/internal/config"
	"github.com/SP4567/PONG-GAME/internal/draw"
	"github.com/SP4567/PONG-GAME/internal/loop"
	"github.com/SP4567/PONG-GAME/internal/session"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultMaxSessions = "64"
)

func main() {
	logger, err := config.NewLogger(os.Stderr, "pong-ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	maxSessions, err := strconv.Atoi(config.GetEnv("SSH_MAX_SESSIONS", defaultMaxSessions))
	if err != nil {
		logger.Fatal("invalid SSH_MAX_SESSIONS", "err", err)
	}
	settings, settingsPath, err := config.LoadFromEnv()
	if err != nil {
		logger.Fatal("failed to load settings", "err", err)
	}
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath,
		"maxSessions", maxSessions, "settings", settingsPath)

	registry := session.NewRegistry(maxSessions, logger)
	games := &gameHandler{
		registry: registry,
		settings: settings,
		logger:   logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", registry.Count())

	// Tell every game to show its notice and wait for the players to drop.
	if remaining := registry.Shutdown(15 * time.Second); remaining > 0 {
		logger.Warn("closing sessions that did not finish", "remaining", remaining)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameHandler runs an independent single-player game for every SSH session.
type gameHandler struct {
	registry *session.Registry
	settings config.Settings
	logger   *log.Logger
}

func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		handle, err := g.registry.Register(sess.User())
		if err != nil {
			fmt.Fprintln(sess, "The server is full, please try again later.")
			g.logger.Warn("session rejected", "user", sess.User(), "err", err)
			return
		}
		defer g.registry.Unregister(handle.ID)

		logger := g.logger.With("session", handle.ID, "user", sess.User())
		logger.Info("new game session", "terminal", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		err = loop.Run(sess.Context(), bufio.NewReader(sess), sess, loop.Options{
			Settings:       g.settings,
			TermSizeFunc:   sizeTracker.getSize,
			Renderer:       lipgloss.NewRenderer(sess),
			Logger:         logger,
			Events:         handle.Events,
			DisconnectIdle: true,
		})
		if err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
