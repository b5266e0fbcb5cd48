package geom

// Rect is an axis-aligned rectangle in millimeters. Min is the south-west
// corner and Max the north-east corner.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// RectXYWH builds a rectangle from its south-west corner and size.
func RectXYWH(x, y, w, h int) Rect {
	return Rect{Min: Point{x, y}, Max: Point{x + w, y + h}}
}

// Width returns the east-west extent.
func (r Rect) Width() int { return r.Max.X - r.Min.X }

// Height returns the north-south extent.
func (r Rect) Height() int { return r.Max.Y - r.Min.Y }

// Area returns the area in square millimeters.
func (r Rect) Area() int64 { return int64(r.Width()) * int64(r.Height()) }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d int) Rect {
	return Rect{Min: Point{r.Min.X + d, r.Min.Y + d}, Max: Point{r.Max.X - d, r.Max.Y - d}}
}

// Translate moves the rectangle by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{Min: Point{r.Min.X + dx, r.Min.Y + dy}, Max: Point{r.Max.X + dx, r.Max.Y + dy}}
}

// Contains reports whether o lies fully inside r (edges inclusive).
func (r Rect) Contains(o Rect) bool {
	return o.Min.X >= r.Min.X && o.Min.Y >= r.Min.Y && o.Max.X <= r.Max.X && o.Max.Y <= r.Max.Y
}

// ContainsPoint reports whether p lies inside r (edges inclusive).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether r and o share interior area. Touching edges do
// not count as overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X && r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Polygon returns the rectangle corners counter-clockwise from south-west.
func (r Rect) Polygon() Polygon {
	return Polygon{r.Min, {r.Max.X, r.Min.Y}, r.Max, {r.Min.X, r.Max.Y}}
}

// Gap returns the separation between r and o along each axis. A negative
// value is the overlap length on that axis.
func (r Rect) Gap(o Rect) (gx, gy int) {
	gx = max(o.Min.X-r.Max.X, r.Min.X-o.Max.X)
	gy = max(o.Min.Y-r.Max.Y, r.Min.Y-o.Max.Y)
	return gx, gy
}

// Touching reports whether r and o are within tol of each other on one axis
// while overlapping on the other.
func (r Rect) Touching(o Rect, tol int) bool {
	gx, gy := r.Gap(o)
	return (gx >= -tol && gx <= tol && gy < 0) || (gy >= -tol && gy <= tol && gx < 0)
}
