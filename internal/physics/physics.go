// Package physics provides clamping and overlap utilities.
package physics

import "math"

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Circle is a circle given by its center and radius.
type Circle struct {
	X, Y float64
	R    float64
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// CircleRectOverlap reports whether the circle's bounding box intersects the
// rectangle on both axes. Edges touching count as overlap.
//
// This is a bounding-box approximation, not a true circle-edge distance test.
// Callers gate on travel direction so a ball leaving a paddle is not bounced twice.
func CircleRectOverlap(rect Rect, c Circle) bool {
	return c.X-c.R <= rect.X+rect.W &&
		c.X+c.R >= rect.X &&
		c.Y+c.R >= rect.Y &&
		c.Y-c.R <= rect.Y+rect.H
}
