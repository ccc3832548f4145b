package gamemath

import "math"

// Distance is the Euclidean distance between two points.
func Distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// WithinAxisBox reports whether b lies strictly inside the axis-aligned box of
// half extent around a.
func WithinAxisBox(ax, ay, bx, by, half float64) bool {
	return math.Abs(bx-ax) < half && math.Abs(by-ay) < half
}

// Separation returns the unit vector pointing from b towards a. Coincident
// points separate along +X so pushes never produce NaN.
func Separation(ax, ay, bx, by float64) (float64, float64) {
	dx, dy := ax-bx, ay-by
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 1, 0
	}
	return dx / dist, dy / dist
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
