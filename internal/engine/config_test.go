package engine

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig(800, 480).Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Field.Width = 0 }},
		{"negative height", func(c *Config) { c.Field.Height = -1 }},
		{"flat paddle", func(c *Config) { c.PaddleHeight = 0 }},
		{"paddle taller than field", func(c *Config) { c.PaddleHeight = 500 }},
		{"paddles overlap", func(c *Config) { c.PaddleInset = 390 }},
		{"ball too big", func(c *Config) { c.BallRadius = 240 }},
		{"base above max", func(c *Config) { c.BaseSpeed = 13 }},
		{"slowing gain", func(c *Config) { c.SpeedGain = 0.9 }},
		{"negative ai speed", func(c *Config) { c.AISpeed = -1 }},
		{"vertical serve", func(c *Config) { c.MaxServeAngle = math.Pi / 2 }},
		{"negative bounce angle", func(c *Config) { c.MaxBounceAngle = -0.1 }},
		{"negative delay", func(c *Config) { c.ServeDelay = -1 }},
		{"NaN base speed", func(c *Config) { c.BaseSpeed = math.NaN() }},
		{"NaN paddle speed", func(c *Config) { c.PaddleSpeed = math.NaN() }},
		{"infinite max speed", func(c *Config) { c.MaxSpeed = math.Inf(1) }},
		{"infinite field", func(c *Config) { c.Field.Width = math.Inf(1) }},
		{"NaN dead zone", func(c *Config) { c.AIDeadZone = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(800, 480)
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestEventFlags(t *testing.T) {
	tests := []struct {
		kind    EventKind
		restart bool
		score   bool
	}{
		{EventScored, false, true},
		{EventServed, false, false},
		{EventPaused, false, false},
		{EventResumed, true, false},
		{EventReset, true, true},
	}
	for _, tt := range tests {
		ev := Event{Kind: tt.kind}
		if ev.RestartsClock() != tt.restart || ev.ChangesScore() != tt.score {
			t.Errorf("%v: RestartsClock=%v ChangesScore=%v", tt.kind, ev.RestartsClock(), ev.ChangesScore())
		}
	}
}
