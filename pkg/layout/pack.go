package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/styles"
)

const (
	// minSide is the smallest side a room may be shrunk to.
	minSide = 1500
	// roomGap separates neighbouring rooms and zones; an internal wall
	// fills it.
	roomGap = styles.InternalWallThickness

	minZoneDepth            = 500
	minCirculationZoneDepth = 2000

	fallbackRetries = 8
	fallbackShrink  = 0.9
	fallbackFill    = 0.9
)

// frame maps a local (u, v) packing space onto a world rectangle: u runs
// along the entrance facade and v from the entrance wall inward.
type frame struct {
	b    geom.Rect
	side model.Facade
}

func (f frame) length() int {
	if f.side == model.East || f.side == model.West {
		return f.b.Height()
	}
	return f.b.Width()
}

func (f frame) depth() int {
	if f.side == model.East || f.side == model.West {
		return f.b.Width()
	}
	return f.b.Height()
}

func (f frame) point(u, v int) geom.Point {
	b := f.b
	switch f.side {
	case model.North:
		return geom.Pt(b.Max.X-u, b.Max.Y-v)
	case model.East:
		return geom.Pt(b.Max.X-v, b.Min.Y+u)
	case model.West:
		return geom.Pt(b.Min.X+v, b.Max.Y-u)
	default:
		return geom.Pt(b.Min.X+u, b.Min.Y+v)
	}
}

func (f frame) rect(u0, v0, u1, v1 int) geom.Rect {
	p, q := f.point(u0, v0), f.point(u1, v1)
	return geom.Rect{
		Min: geom.Pt(min(p.X, q.X), min(p.Y, q.Y)),
		Max: geom.Pt(max(p.X, q.X), max(p.Y, q.Y)),
	}
}

// local is a rectangle in packing space.
type local struct {
	req            Request
	u0, v0, u1, v1 int
}

// sortForPacking puts circulation first, then larger rooms first. Equal
// rooms keep their order.
func sortForPacking(reqs []Request) []Request {
	out := slices.Clone(reqs)
	slices.SortStableFunc(out, func(a, b Request) int {
		if a.Circulation != b.Circulation {
			if a.Circulation {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.Area, a.Area)
	})
	return out
}

// packStrip packs rooms into an L×D strip, scaling every area by scale.
// It first tries a single full-depth row, then rows of rooms at their
// preferred aspect, wrapping on overflow and shrinking a room to the space
// left (never below minSide) before dropping it.
func packStrip(L, D int, reqs []Request, scale float64) ([]local, []Request) {
	if len(reqs) == 0 {
		return nil, nil
	}
	if L <= 0 || D <= 0 {
		return nil, slices.Clone(reqs)
	}
	sorted := sortForPacking(reqs)
	if row, ok := singleRow(L, D, sorted, scale); ok {
		return row, nil
	}

	var placed []local
	var dropped []Request
	u, v, rowD := 0, 0, 0

	fit := func(u, v, w, d int, shrink bool) (int, int, bool) {
		remL, remD := L-u, D-v
		if w <= remL && d <= remD {
			return w, d, true
		}
		if !shrink {
			return 0, 0, false
		}
		sw, sd := min(w, remL), min(d, remD)
		okW := sw == w || sw >= minSide
		okD := sd == d || sd >= minSide
		return sw, sd, okW && okD && sw > 0 && sd > 0
	}

	for _, r := range sorted {
		w, d := preferredSize(r, scale, L, D)
		nextV := v + rowD + roomGap

		type slot struct {
			u, v   int
			shrink bool
			wrap   bool
		}
		slots := []slot{{u, v, false, false}}
		if u > 0 {
			slots = append(slots, slot{0, nextV, false, true})
		}
		slots = append(slots, slot{u, v, true, false})
		if u > 0 {
			slots = append(slots, slot{0, nextV, true, true})
		}

		done := false
		for _, s := range slots {
			pw, pd, ok := fit(s.u, s.v, w, d, s.shrink)
			if !ok {
				continue
			}
			if s.wrap {
				v, rowD = nextV, 0
			}
			placed = append(placed, local{r, s.u, s.v, s.u + pw, s.v + pd})
			u = s.u + pw + roomGap
			rowD = max(rowD, pd)
			done = true
			break
		}
		if !done {
			dropped = append(dropped, r)
		}
	}
	return placed, dropped
}

// singleRow lays every room across the full strip depth when they all fit
// side by side with usable widths.
func singleRow(L, D int, reqs []Request, scale float64) ([]local, bool) {
	widths := make([]int, len(reqs))
	total := roomGap * (len(reqs) - 1)
	for i, r := range reqs {
		w := geom.Round(r.Area * 1e6 * scale / float64(D))
		if w < minSide {
			return nil, false
		}
		widths[i] = w
		total += w
	}
	if total > L {
		return nil, false
	}
	out := make([]local, len(reqs))
	u := 0
	for i, r := range reqs {
		out[i] = local{r, u, 0, u + widths[i], D}
		u += widths[i] + roomGap
	}
	return out, true
}

// preferredSize returns the room size at its kind's aspect ratio with the
// long side along the strip, limited to the strip.
func preferredSize(r Request, scale float64, L, D int) (int, int) {
	a := r.Area * 1e6 * scale
	ar := Info(r.Kind).Aspect
	if r.Circulation {
		ar = circulationAspect
	}
	w := math.Sqrt(a * ar)
	d := a / w
	if d > float64(D) {
		d = float64(D)
		w = a / d
	}
	if w > float64(L) {
		w = float64(L)
		d = math.Min(a/w, float64(D))
	}
	return max(geom.Round(w), 1), max(geom.Round(d), 1)
}

// allocateDepths splits avail across zones in proportion to their areas,
// raising any zone below its minimum to that minimum and sharing the rest
// among the others. The result sums to avail.
func allocateDepths(avail int, areas []float64, mins []int) []int {
	n := len(areas)
	out := make([]int, n)
	if n == 0 || avail <= 0 {
		return out
	}
	sumMin := 0
	for _, m := range mins {
		sumMin += m
	}
	if sumMin >= avail {
		for i, m := range mins {
			out[i] = int(float64(m) * float64(avail) / float64(sumMin))
		}
		out[n-1] += avail - sum(out)
		return out
	}

	fixed := make([]bool, n)
	share := make([]float64, n)
	for {
		free := float64(avail)
		var freeArea float64
		for i := range areas {
			if fixed[i] {
				free -= float64(mins[i])
			} else {
				freeArea += areas[i]
			}
		}
		changed := false
		for i := range areas {
			if fixed[i] {
				share[i] = float64(mins[i])
				continue
			}
			share[i] = free / float64(n)
			if freeArea > 0 {
				share[i] = free * areas[i] / freeArea
			}
			if share[i] < float64(mins[i]) {
				fixed[i] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	for i := range share {
		out[i] = int(share[i])
	}
	out[n-1] += avail - sum(out)
	return out
}

func sum(vs []int) int {
	t := 0
	for _, v := range vs {
		t += v
	}
	return t
}

// zoneOrder is the front-to-back order of zones from the entrance.
var zoneOrder = []model.ZoneType{model.ZonePublic, model.ZoneService, model.ZonePrivate}

// ZoneStrategy slices the floor into public, service and private bands from
// the entrance inward and strip-packs each band.
type ZoneStrategy struct{}

func (ZoneStrategy) Name() string { return "zone" }

func (ZoneStrategy) Pack(area geom.Rect, entrance model.Facade, rooms []Request) Packing {
	f := frame{area, entrance}

	var groups [][]Request
	var areas []float64
	var mins []int
	for _, z := range zoneOrder {
		var g []Request
		var a float64
		circ := false
		for _, r := range rooms {
			if r.Zone == z {
				g = append(g, r)
				a += r.Area
				circ = circ || r.Circulation
			}
		}
		if len(g) == 0 {
			continue
		}
		groups = append(groups, g)
		areas = append(areas, a)
		if circ {
			mins = append(mins, minCirculationZoneDepth)
		} else {
			mins = append(mins, minZoneDepth)
		}
	}

	var p Packing
	avail := f.depth() - roomGap*(len(groups)-1)
	if avail <= 0 {
		p.Dropped = slices.Clone(rooms)
		return p
	}
	depths := allocateDepths(avail, areas, mins)

	v := 0
	for i, g := range groups {
		placed, dropped := packStrip(f.length(), depths[i], g, 1)
		for _, l := range placed {
			p.Placed = append(p.Placed, Placement{l.req, f.rect(l.u0, v+l.v0, l.u1, v+l.v1)})
		}
		p.Dropped = append(p.Dropped, dropped...)
		v += depths[i] + roomGap
	}
	return p
}

// WholeFloorStrategy packs all rooms into the whole floor at one uniform
// scale, shrinking the scale on each retry until everything fits. When the
// retries run out it returns the best partial packing.
type WholeFloorStrategy struct{}

func (WholeFloorStrategy) Name() string { return "whole-floor" }

func (WholeFloorStrategy) Pack(area geom.Rect, entrance model.Facade, rooms []Request) Packing {
	f := frame{area, entrance}
	var want float64
	for _, r := range rooms {
		want += r.Area * 1e6
	}
	scale := 1.0
	if have := float64(area.Area()) * fallbackFill; want > have && want > 0 {
		scale = have / want
	}

	var best Packing
	for attempt := 0; attempt <= fallbackRetries; attempt++ {
		placed, dropped := packStrip(f.length(), f.depth(), rooms, scale)
		p := Packing{Dropped: dropped}
		for _, l := range placed {
			p.Placed = append(p.Placed, Placement{l.req, f.rect(l.u0, l.v0, l.u1, l.v1)})
		}
		if p.Complete() {
			return p
		}
		if attempt == 0 || len(p.Placed) >= len(best.Placed) {
			best = p
		}
		scale *= fallbackShrink
	}
	return best
}
