package config

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger builds a timestamped logger writing to w at the level named by
// PONG_LOG_LEVEL (info when unset).
func NewLogger(w io.Writer, prefix string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
	})
	level, err := log.ParseLevel(GetEnv("PONG_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("PONG_LOG_LEVEL: %w", err)
	}
	logger.SetLevel(level)
	return logger, nil
}

// OpenLogFile opens PONG_LOG_FILE for appending. Without it logs are discarded,
// since a terminal game's stdout is the screen. The returned close func is never nil.
func OpenLogFile() (io.Writer, func() error, error) {
	path := GetEnv("PONG_LOG_FILE", "")
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}
