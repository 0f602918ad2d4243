package physics

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{42, 0, 10, 10},
		{0, 0, 0, 0},
		{math.Inf(1), 0, 380, 380},
		{math.Inf(-1), 0, 380, 0},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestCircleRectOverlap(t *testing.T) {
	paddle := Rect{X: 20, Y: 190, W: 12, H: 100}

	if !CircleRectOverlap(paddle, Circle{X: 38, Y: 240, R: 8}) {
		t.Fatal("expected ball against paddle face to overlap")
	}
	// Touching edges counts.
	if !CircleRectOverlap(paddle, Circle{X: 40, Y: 240, R: 8}) {
		t.Fatal("expected touching ball to overlap")
	}
	if CircleRectOverlap(paddle, Circle{X: 41, Y: 240, R: 8}) {
		t.Fatal("expected ball just right of the face not to overlap")
	}
	if CircleRectOverlap(paddle, Circle{X: 26, Y: 170, R: 8}) {
		t.Fatal("expected ball above the paddle not to overlap")
	}
	// Bounding-box approximation: a ball diagonally off the corner still overlaps.
	if !CircleRectOverlap(paddle, Circle{X: 39, Y: 183, R: 8}) {
		t.Fatal("expected corner bounding boxes to overlap")
	}
}
