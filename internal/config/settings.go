package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/SP4567/PONG-GAME/internal/engine"
)

// DefaultSettingsPath is read when PONG_CONFIG is unset and the file exists.
const DefaultSettingsPath = "pong.toml"

// ErrInvalidSettings is returned for settings that cannot produce a playable game.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the player-facing tunables, loaded from TOML.
type Settings struct {
	Field  FieldSettings  `toml:"field"`
	Paddle PaddleSettings `toml:"paddle"`
	Ball   BallSettings   `toml:"ball"`
	Loop   LoopSettings   `toml:"loop"`
}

type FieldSettings struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type PaddleSettings struct {
	Speed   float64 `toml:"speed"`
	AISpeed float64 `toml:"ai_speed"`
	Color   string  `toml:"color"`
}

type BallSettings struct {
	Speed      float64       `toml:"speed"`
	MaxSpeed   float64       `toml:"max_speed"`
	ServeDelay time.Duration `toml:"serve_delay"`
	Color      string        `toml:"color"`
}

type LoopSettings struct {
	MaxDelta float64 `toml:"max_delta"` // Largest delta one frame may apply; 0 disables the clamp
	Seed     int64   `toml:"seed"`      // Fixed serve randomness; 0 seeds from the clock
}

// Default returns the classic 800x480 game.
func Default() Settings {
	return Settings{
		Field: FieldSettings{Width: 800, Height: 480},
		Paddle: PaddleSettings{
			Speed:   6.5,
			AISpeed: 4.5,
			Color:   "#ffffff",
		},
		Ball: BallSettings{
			Speed:      5,
			MaxSpeed:   12,
			ServeDelay: 900 * time.Millisecond,
			Color:      "#22c55e",
		},
	}
}

// Load reads settings from path on top of the defaults. Keys missing from the file
// keep their default value; unknown keys are rejected.
func Load(path string) (Settings, error) {
	s := Default()
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Settings{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidSettings, path, strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
	}
	return s, nil
}

// LoadFromEnv loads PONG_CONFIG, or pong.toml when present, or the defaults.
// The returned path is empty when the defaults were used.
func LoadFromEnv() (Settings, string, error) {
	path := GetEnv("PONG_CONFIG", "")
	if path == "" {
		if _, err := os.Stat(DefaultSettingsPath); err != nil {
			return Default(), "", nil
		}
		path = DefaultSettingsPath
	}
	s, err := Load(path)
	return s, path, err
}

// Write encodes s as TOML.
func (s Settings) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// Validate checks ranges that the engine config cannot express on its own.
func (s Settings) Validate() error {
	if d := s.Loop.MaxDelta; d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return fmt.Errorf("%w: loop.max_delta must be a finite non-negative number, got %v", ErrInvalidSettings, d)
	}
	_, err := s.EngineConfig()
	return err
}

// EngineConfig converts the settings into a validated engine configuration.
func (s Settings) EngineConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig(s.Field.Width, s.Field.Height)
	cfg.PaddleSpeed = s.Paddle.Speed
	cfg.AISpeed = s.Paddle.AISpeed
	cfg.BaseSpeed = s.Ball.Speed
	cfg.MaxSpeed = s.Ball.MaxSpeed
	cfg.ServeDelay = s.Ball.ServeDelay

	var err error
	if cfg.PaddleColor, err = ParseHexColor(s.Paddle.Color); err != nil {
		return engine.Config{}, fmt.Errorf("%w: paddle.color: %v", ErrInvalidSettings, err)
	}
	if cfg.BallColor, err = ParseHexColor(s.Ball.Color); err != nil {
		return engine.Config{}, fmt.Errorf("%w: ball.color: %v", ErrInvalidSettings, err)
	}
	if err := cfg.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return cfg, nil
}

// ParseHexColor parses "#rrggbb" or "#rgb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 || !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
