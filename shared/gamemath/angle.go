// Package gamemath holds the small pure helpers shared by movement, combat and AI.
// Headings are in degrees, 0 pointing along +X and increasing clockwise in
// screen space (+Y down).
package gamemath

import "math"

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Heading returns the unit vector for a heading in degrees.
func Heading(deg float64) (x, y float64) {
	rad := DegToRad(deg)
	return math.Cos(rad), math.Sin(rad)
}

// Advance moves (x, y) by dist along the heading.
func Advance(x, y, deg, dist float64) (float64, float64) {
	hx, hy := Heading(deg)
	return x + hx*dist, y + hy*dist
}

// AngleTo returns the heading in degrees from (fromX, fromY) to (toX, toY).
func AngleTo(fromX, fromY, toX, toY float64) float64 {
	return RadToDeg(math.Atan2(toY-fromY, toX-fromX))
}

// ShortestAngleDiff returns to-from wrapped into [-180, 180].
func ShortestAngleDiff(from, to float64) float64 {
	diff := math.Mod(to-from, 360)
	if diff > 180 {
		diff -= 360
	} else if diff < -180 {
		diff += 360
	}
	return diff
}
