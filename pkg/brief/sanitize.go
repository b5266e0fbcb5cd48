package brief

import "math"

// Sanitize returns a deep copy of b with every non-finite or negative number
// replaced by zero and every negative count or level replaced by zero.
// Zero means "not provided" everywhere downstream. A nil brief stays nil.
func (b *Brief) Sanitize() *Brief {
	if b == nil {
		return nil
	}
	out := *b
	out.Rooms = sanitizeRooms(b.Rooms)

	if b.Site != nil {
		s := *b.Site
		s.Area = nonNeg(s.Area)
		s.Polygon = nil
		for _, p := range b.Site.Polygon {
			if finite(p.Lat) && finite(p.Lng) && math.Abs(p.Lat) <= 90 && math.Abs(p.Lng) <= 180 {
				s.Polygon = append(s.Polygon, p)
			}
		}
		out.Site = &s
	}

	if b.Program != nil {
		p := *b.Program
		p.TotalArea = nonNeg(p.TotalArea)
		p.PerFloorArea = nonNeg(p.PerFloorArea)
		p.LevelCount = max(0, p.LevelCount)
		p.FloorHeights = sanitizeSlice(p.FloorHeights)
		p.Rooms = sanitizeRooms(p.Rooms)
		p.Levels = make([]Level, len(b.Program.Levels))
		for i, l := range b.Program.Levels {
			l.FloorHeight = nonNeg(l.FloorHeight)
			l.Rooms = sanitizeRooms(l.Rooms)
			if l.Index != nil && *l.Index < 0 {
				l.Index = Int(0)
			}
			p.Levels[i] = l
		}
		out.Program = &p
	}

	if b.Massing != nil {
		m := *b.Massing
		m.Width = nonNeg(m.Width)
		m.Depth = nonNeg(m.Depth)
		m.Floors = max(0, m.Floors)
		m.FloorHeights = sanitizeSlice(m.FloorHeights)
		m.Roof = sanitizeRoof(m.Roof)
		out.Massing = &m
	}

	if b.DNA != nil {
		d := *b.DNA
		d.FloorCount = max(0, d.FloorCount)
		d.Roof = sanitizeRoof(d.Roof)
		if d.Dimensions != nil {
			dim := *d.Dimensions
			dim.Width = nonNeg(dim.Width)
			dim.Length = nonNeg(dim.Length)
			dim.Height = nonNeg(dim.Height)
			d.Dimensions = &dim
		}
		out.DNA = &d
	}
	return &out
}

func sanitizeRooms(rooms []Room) []Room {
	if rooms == nil {
		return nil
	}
	out := make([]Room, len(rooms))
	for i, r := range rooms {
		r.Area = nonNeg(r.Area)
		if r.Level != nil {
			r.Level = Int(max(0, *r.Level))
		}
		out[i] = r
	}
	return out
}

func sanitizeRoof(r *Roof) *Roof {
	if r == nil {
		return nil
	}
	c := *r
	c.Pitch = nonNeg(c.Pitch)
	return &c
}

func sanitizeSlice(vs []float64) []float64 {
	if vs == nil {
		return nil
	}
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = nonNeg(v)
	}
	return out
}

func nonNeg(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return v
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
