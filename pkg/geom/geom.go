// Package geom provides integer-millimeter geometry primitives.
//
// All building geometry is stored in whole millimeters. Meters only appear at
// the display boundary via [ToMeters]. Floating-point math is used for
// intermediate computations and rounded back with [Round].
package geom

import "math"

// Point is a 2D point in millimeters. X grows east, Y grows north.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q in millimeters.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// Lerp returns the point at fraction t along the segment p→q.
func Lerp(p, q Point, t float64) Point {
	return Point{
		X: Round(float64(p.X) + float64(q.X-p.X)*t),
		Y: Round(float64(p.Y) + float64(q.Y-p.Y)*t),
	}
}

// Round rounds a float millimeter value to the nearest integer.
func Round(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}

// ToMeters converts millimeters to meters.
func ToMeters(mm int) float64 { return float64(mm) / 1000 }

// FromMeters converts meters to millimeters.
func FromMeters(m float64) int { return Round(m * 1000) }

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Clamp limits v to [lo, hi]. Non-finite values collapse to lo.
func Clamp(v, lo, hi float64) float64 {
	if !Finite(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
