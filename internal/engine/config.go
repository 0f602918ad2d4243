package engine

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/SP4567/PONG-GAME/internal/object"
)

// UnitDuration is the real time one delta unit stands for. All speeds are per unit.
const UnitDuration = time.Second / 60

// Config holds every tunable of the simulation. Speeds are in logical units per
// delta unit (1/60 s), angles in radians.
type Config struct {
	Field object.Playfield

	PaddleWidth  float64
	PaddleHeight float64
	PaddleInset  float64 // Gap between a wall and its paddle
	PaddleSpeed  float64

	AISpeed    float64 // Kept below the ball's attainable vertical speed so the AI is beatable
	AIDeadZone float64

	BallRadius     float64
	BaseSpeed      float64
	MaxSpeed       float64
	SpeedGain      float64 // Multiplier per paddle hit
	MaxServeAngle  float64
	MaxBounceAngle float64
	Separation     float64 // Clearance left between ball and paddle face after a hit

	ServeDelay time.Duration

	PaddleColor color.RGBA
	BallColor   color.RGBA
}

// DefaultConfig returns the classic tuning for a field of the given size.
func DefaultConfig(width, height float64) Config {
	return Config{
		Field:          object.Playfield{Width: width, Height: height},
		PaddleWidth:    12,
		PaddleHeight:   100,
		PaddleInset:    20,
		PaddleSpeed:    6.5,
		AISpeed:        4.5,
		AIDeadZone:     3,
		BallRadius:     8,
		BaseSpeed:      5,
		MaxSpeed:       12,
		SpeedGain:      1.05,
		MaxServeAngle:  math.Pi / 4,
		MaxBounceAngle: math.Pi / 3,
		Separation:     0.1,
		ServeDelay:     900 * time.Millisecond,
		PaddleColor:    color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		BallColor:      color.RGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff},
	}
}

// ErrInvalidConfig is returned when a Config cannot produce a playable field.
var ErrInvalidConfig = errors.New("invalid engine config")

// Validate checks that the field can hold both paddles and the ball and that the
// speed settings keep the ball's speed monotonic and bounded.
func (c Config) Validate() error {
	if name, ok := c.firstNonFinite(); ok {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidConfig, name)
	}
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field must be positive, got %vx%v", ErrInvalidConfig, c.Field.Width, c.Field.Height)
	case c.PaddleWidth <= 0 || c.PaddleHeight <= 0:
		return fmt.Errorf("%w: paddle must be positive, got %vx%v", ErrInvalidConfig, c.PaddleWidth, c.PaddleHeight)
	case c.PaddleHeight > c.Field.Height:
		return fmt.Errorf("%w: paddle height %v exceeds field height %v", ErrInvalidConfig, c.PaddleHeight, c.Field.Height)
	case 2*(c.PaddleInset+c.PaddleWidth) >= c.Field.Width:
		return fmt.Errorf("%w: paddles overlap on a %v wide field", ErrInvalidConfig, c.Field.Width)
	case c.BallRadius <= 0 || 2*c.BallRadius >= c.Field.Height:
		return fmt.Errorf("%w: ball radius %v does not fit the field", ErrInvalidConfig, c.BallRadius)
	case c.BaseSpeed <= 0 || c.MaxSpeed < c.BaseSpeed:
		return fmt.Errorf("%w: need 0 < base speed <= max speed, got %v and %v", ErrInvalidConfig, c.BaseSpeed, c.MaxSpeed)
	case c.SpeedGain < 1:
		return fmt.Errorf("%w: speed gain %v would slow the ball down", ErrInvalidConfig, c.SpeedGain)
	case c.PaddleSpeed < 0 || c.AISpeed < 0 || c.AIDeadZone < 0:
		return fmt.Errorf("%w: paddle speeds and dead zone must not be negative", ErrInvalidConfig)
	case c.MaxServeAngle < 0 || c.MaxServeAngle >= math.Pi/2 || c.MaxBounceAngle < 0 || c.MaxBounceAngle >= math.Pi/2:
		return fmt.Errorf("%w: angles must be in [0, 90) degrees", ErrInvalidConfig)
	case c.ServeDelay < 0:
		return fmt.Errorf("%w: serve delay %v is negative", ErrInvalidConfig, c.ServeDelay)
	}
	return nil
}

// firstNonFinite names the first NaN or infinite tunable. The range checks in
// Validate cannot catch NaN, since every comparison with it is false.
func (c Config) firstNonFinite() (string, bool) {
	fields := []struct {
		name string
		v    float64
	}{
		{"field width", c.Field.Width},
		{"field height", c.Field.Height},
		{"paddle width", c.PaddleWidth},
		{"paddle height", c.PaddleHeight},
		{"paddle inset", c.PaddleInset},
		{"paddle speed", c.PaddleSpeed},
		{"ai speed", c.AISpeed},
		{"ai dead zone", c.AIDeadZone},
		{"ball radius", c.BallRadius},
		{"base speed", c.BaseSpeed},
		{"max speed", c.MaxSpeed},
		{"speed gain", c.SpeedGain},
		{"max serve angle", c.MaxServeAngle},
		{"max bounce angle", c.MaxBounceAngle},
		{"separation", c.Separation},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return f.name, true
		}
	}
	return "", false
}
