package geom

import "math"

// Polygon is a closed polygon. The closing edge from the last point back to
// the first is implicit.
type Polygon []Point

// Area returns the absolute area in square millimeters (shoelace formula).
func (p Polygon) Area() int64 {
	if len(p) < 3 {
		return 0
	}
	var sum int64
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		sum += int64(a.X)*int64(b.Y) - int64(b.X)*int64(a.Y)
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// AreaM2 returns the area in square meters.
func (p Polygon) AreaM2() float64 { return float64(p.Area()) / 1e6 }

// Bounds returns the axis-aligned bounding box.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	r := Rect{Min: p[0], Max: p[0]}
	for _, q := range p[1:] {
		r.Min.X = min(r.Min.X, q.X)
		r.Min.Y = min(r.Min.Y, q.Y)
		r.Max.X = max(r.Max.X, q.X)
		r.Max.Y = max(r.Max.Y, q.Y)
	}
	return r
}

// Edges returns the polygon edges including the closing edge.
func (p Polygon) Edges() [][2]Point {
	if len(p) < 2 {
		return nil
	}
	out := make([][2]Point, len(p))
	for i := range p {
		out[i] = [2]Point{p[i], p[(i+1)%len(p)]}
	}
	return out
}

// Clone returns a copy of p.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Vec is a floating-point 2D vector used for directions and offsets.
type Vec struct{ X, Y float64 }

// Direction returns the unit vector from a to b, or the zero vector when the
// points coincide.
func Direction(a, b Point) Vec {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Vec{}
	}
	return Vec{dx / l, dy / l}
}

// Perp returns v rotated 90° counter-clockwise.
func (v Vec) Perp() Vec { return Vec{-v.Y, v.X} }

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Offset returns p moved by v, rounded to millimeters.
func (p Point) Offset(v Vec) Point {
	return Point{Round(float64(p.X) + v.X), Round(float64(p.Y) + v.Y)}
}
