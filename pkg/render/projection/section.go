package projection

import (
	"fmt"
	"strings"

	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/render/svg"
	"github.com/matzehuels/blueprint/pkg/styles"
)

// Section names.
const (
	SectionAA = "A-A"
	SectionBB = "B-B"
)

// SectionNames lists the sections in drawing order.
var SectionNames = []string{SectionAA, SectionBB}

// ParseSection returns the canonical section name for "A-A", "AA", "A" and
// the B-B equivalents, in any case.
func ParseSection(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A-A", "AA", "A":
		return SectionAA, true
	case "B-B", "BB", "B":
		return SectionBB, true
	}
	return "", false
}

// cutFrame describes a vertical cut through the building. u runs along the
// cut axis from the building's west (A-A) or south (B-B) edge; the cut
// plane passes through the footprint center.
type cutFrame struct {
	alongX  bool
	b       geom.Rect
	width   int
	plane   int
	profile model.Facade
}

func newCutFrame(env model.Envelope, name string) cutFrame {
	b := env.Bounds()
	c := b.Center()
	if name == SectionAA {
		return cutFrame{alongX: true, b: b, width: b.Width(), plane: c.Y, profile: model.South}
	}
	return cutFrame{b: b, width: b.Height(), plane: c.X, profile: model.East}
}

// span returns the u extent of r and whether the cut plane crosses it.
func (f cutFrame) span(r geom.Rect) (u0, u1 int, cut bool) {
	if f.alongX {
		return r.Min.X - f.b.Min.X, r.Max.X - f.b.Min.X, r.Min.Y <= f.plane && f.plane < r.Max.Y
	}
	return r.Min.Y - f.b.Min.Y, r.Max.Y - f.b.Min.Y, r.Min.X <= f.plane && f.plane < r.Max.X
}

// Section returns section A-A (cut along X, seen looking north) or B-B (cut
// along Y, seen looking west). Unknown names and models without floors
// return a placeholder.
func Section(m *model.Building, name string, opts Options) []byte {
	d := newDrawer(opts)
	cut, ok := ParseSection(name)
	if !ok {
		return svg.Placeholder(d.theme, "Section", fmt.Sprintf("unknown section %q", name))
	}
	title := "Section " + cut
	if m == nil || len(m.Floors) == 0 || m.Envelope.Footprint.Area() <= 0 {
		return svg.Placeholder(d.theme, title, "building has no floors")
	}
	f := newCutFrame(m.Envelope, cut)
	w, h := f.width, m.Envelope.Height
	t := styles.ExternalWallThickness
	top := max(h, m.Roof.RidgeHeight)

	if opts.ShowGround {
		d.c.Group("ground", "")
		d.rectUZ(-skyMargin/2, -styles.GroundDepthShown, w+skyMargin/2, 0, "earth")
		d.line(d.uz(-skyMargin/2, 0), d.uz(w+skyMargin/2, 0), "ground")
		d.c.End()
	}
	if opts.ShowFoundation {
		d.c.Group("foundations", "")
		for _, c := range []int{t / 2, w - t/2} {
			d.rectUZ(c-styles.FoundationWidth/2, -styles.FoundationDepth, c+styles.FoundationWidth/2, 0, "foundation")
		}
		d.c.End()
	}

	for i := range m.Floors {
		d.sectionFloor(f, &m.Floors[i], i == len(m.Floors)-1)
	}

	d.c.Group("cut-walls", "")
	d.rectUZ(0, 0, t, h, "cut-wall")
	d.rectUZ(w-t, 0, w, h, "cut-wall")
	d.c.End()

	d.sectionStairs(m, f)

	if opts.ShowLevelMarkers {
		d.levelMarkers(w, levels(m))
	}
	if opts.ShowRoof {
		d.drawRoof(m.Roof, m.RoofProfile(f.profile), h)
	}
	off := styles.Symbols.DimensionOffsetPx
	if opts.ShowDimensions {
		d.c.Group("dimensions", "")
		below := 0.0
		if opts.ShowGround || opts.ShowFoundation {
			below = d.px(max(styles.GroundDepthShown, styles.FoundationDepth))
		}
		d.hDim(0, d.px(w), below+off, fmt.Sprintf("%.2f m", geom.ToMeters(w)))
		d.vDim(-off, -d.px(h), 0, fmt.Sprintf("%.2f m", geom.ToMeters(h)))
		d.c.End()
	}
	d.title(0, -d.px(top)-off, title)
	return d.render(title)
}

// sectionFloor draws one storey: its slab, the rooms the cut plane crosses
// (or the whole interior when it crosses none) and cut partitions.
func (d *drawer) sectionFloor(f cutFrame, fl *model.Floor, last bool) {
	t := styles.ExternalWallThickness
	slab := styles.SlabThickness
	z0, z1 := fl.ZBase+slab, fl.ZTop
	if last {
		z1 = fl.ZTop - slab
	}

	d.c.Group(fmt.Sprintf("floor-%d", fl.Index), "")
	defer d.c.End()

	type cutRoom struct {
		u0, u1 int
		r      model.Room
	}
	var rooms []cutRoom
	for _, r := range fl.Rooms {
		u0, u1, ok := f.span(r.Bounds)
		if ok {
			rooms = append(rooms, cutRoom{u0, u1, r})
		}
	}
	if len(rooms) == 0 {
		d.rectUZ(t, z0, f.width-t, z1, "room")
	}
	for _, c := range rooms {
		class := "room"
		if c.r.Circulation {
			class = "room circulation"
		}
		d.rectUZ(c.u0, z0, c.u1, z1, class)
	}

	d.rectUZ(0, fl.ZBase, f.width, fl.ZBase+slab, "slab")
	if last {
		d.rectUZ(0, fl.ZTop-slab, f.width, fl.ZTop, "slab")
	}

	for _, wl := range fl.Walls {
		if wl.Type != model.WallInternal {
			continue
		}
		r := geom.Rect{
			Min: geom.Pt(min(wl.Start.X, wl.End.X), min(wl.Start.Y, wl.End.Y)),
			Max: geom.Pt(max(wl.Start.X, wl.End.X), max(wl.Start.Y, wl.End.Y)),
		}
		// Only partitions running across the cut are sliced.
		if f.alongX && r.Width() != 0 || !f.alongX && r.Height() != 0 {
			continue
		}
		if f.alongX {
			r.Max.X++
		} else {
			r.Max.Y++
		}
		u0, _, ok := f.span(r)
		if !ok {
			continue
		}
		d.rectUZ(u0-wl.Thickness/2, z0, u0+wl.Thickness/2, z1, "cut-wall")
	}

	if d.opts.ShowRoomLabels {
		for _, c := range rooms {
			p := d.uz((c.u0+c.u1)/2, (z0+z1)/2)
			d.c.Text(p.X, p.Y, c.r.Name, "label")
		}
	}
}

// sectionStairs draws each stair as a tread/riser zig-zag between the
// floors it connects. U-shaped stairs turn back at mid-height.
func (d *drawer) sectionStairs(m *model.Building, f cutFrame) {
	d.c.Group("stairs", "")
	defer d.c.End()
	for _, st := range m.Stairs {
		if st.Bounds.Empty() || st.Risers <= 0 {
			continue
		}
		u0, u1, _ := f.span(st.Bounds)
		forward := f.alongX && st.Up == model.East || !f.alongX && st.Up == model.North
		for k := 0; k+1 < len(st.ConnectsFloors); k++ {
			fl := m.Floor(st.ConnectsFloors[k])
			if fl == nil {
				continue
			}
			flights, steps := 1, st.Risers
			if st.Type == model.StairUShape {
				flights, steps = 2, max((st.Risers+1)/2, 1)
			}
			rise := float64(fl.FloorHeight) / float64(flights*steps)
			going := float64(u1-u0) / float64(steps)
			z := float64(fl.ZBase)
			dir := forward
			for range flights {
				u := float64(u0)
				step := going
				if !dir {
					u, step = float64(u1), -going
				}
				pts := []svg.Point{d.uz(geom.Round(u), geom.Round(z))}
				for range steps {
					z += rise
					pts = append(pts, d.uz(geom.Round(u), geom.Round(z)))
					u += step
					pts = append(pts, d.uz(geom.Round(u), geom.Round(z)))
				}
				d.c.Polyline(pts, "stair")
				dir = !dir
			}
		}
	}
}
