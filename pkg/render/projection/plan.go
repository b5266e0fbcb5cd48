package projection

import (
	"fmt"
	"math"

	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/layout"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/render/svg"
	"github.com/matzehuels/blueprint/pkg/styles"
)

// Plan returns the floor plan of floor index. Geometry is drawn in a
// y-flipped group so north is up; labels, dimensions, the north arrow and
// the scale bar are drawn outside it. A missing floor returns a
// placeholder.
func Plan(m *model.Building, index int, opts Options) []byte {
	d := newDrawer(opts)
	title := floorTitle(index)
	if m == nil {
		return svg.Placeholder(d.theme, title, "no building model")
	}
	fl := m.Floor(index)
	if fl == nil {
		return svg.Placeholder(d.theme, title, fmt.Sprintf("floor %d does not exist", index))
	}
	if m.Envelope.Footprint.Area() <= 0 {
		return svg.Placeholder(d.theme, title, "building footprint is empty")
	}
	bounds := m.Envelope.Bounds()

	d.c.FlipGroup("plan")
	d.planRooms(fl)
	d.externalWalls(m.Envelope)
	d.internalWalls(fl)
	d.planOpenings(fl)
	d.planStairs(m.Stairs, fl.Index)
	if opts.ShowFurniture {
		d.furniture(fl)
	}
	d.c.End()

	if opts.ShowRoomLabels {
		d.roomLabels(fl)
	}
	d.stairLabels(m.Stairs, fl.Index)
	if opts.ShowDimensions {
		d.planDimensions(bounds)
	}
	d.northArrow(bounds)
	d.scaleBar(bounds)
	sym := styles.Symbols
	d.title(d.px(bounds.Min.X), -d.px(bounds.Max.Y)-sym.DimensionOffsetPx-sym.NorthArrowPx, title)
	return d.render(title)
}

func floorTitle(index int) string {
	switch index {
	case 0:
		return "Ground floor plan"
	case 1:
		return "First floor plan"
	default:
		return fmt.Sprintf("Level %d plan", index)
	}
}

func (d *drawer) planRooms(fl *model.Floor) {
	d.c.Group("rooms", "")
	for _, r := range fl.Rooms {
		poly := r.Polygon
		if len(poly) < 3 {
			poly = r.Bounds.Polygon()
		}
		class := "room"
		if r.Circulation {
			class = "room circulation"
		}
		d.c.Polygon(d.polygon(poly), class)
	}
	d.c.End()
}

// externalWalls fills the band between the footprint and its inset by the
// wall thickness.
func (d *drawer) externalWalls(env model.Envelope) {
	d.c.Group("walls-external", "")
	p := &svg.Path{}
	appendRing(p, d.polygon(env.Footprint))
	appendRing(p, d.polygon(env.Buildable().Polygon()))
	class := "wall-ext"
	if d.opts.ShowWallHatch {
		class = "wall-ext hatched"
	}
	d.c.Path(p, class)
	d.c.End()
}

func appendRing(p *svg.Path, pts []svg.Point) {
	if len(pts) == 0 {
		return
	}
	p.MoveTo(pts[0])
	for _, q := range pts[1:] {
		p.LineTo(q)
	}
	p.Close()
}

// internalWalls draws each partition as a quad offset by half its
// thickness to both sides of the centerline.
func (d *drawer) internalWalls(fl *model.Floor) {
	d.c.Group("walls-internal", "")
	for _, w := range fl.Walls {
		if w.Type != model.WallInternal {
			continue
		}
		f := newWallFrame(w, d.s)
		half := float64(w.Thickness) / 2
		d.c.Polygon(f.quad(0, f.length, -half, half), "wall-int")
	}
	d.c.End()
}

// wallFrame maps (along, off) millimeters relative to a wall centerline to
// plan pixels. off is measured along the left normal of the wall, which
// points into the building for external walls.
type wallFrame struct {
	start  geom.Point
	dir, n geom.Vec
	length float64
	s      float64
}

func newWallFrame(w model.Wall, s float64) wallFrame {
	dir := geom.Direction(w.Start, w.End)
	return wallFrame{start: w.Start, dir: dir, n: dir.Perp(), length: float64(w.Length()), s: s}
}

func (f wallFrame) at(along, off float64) svg.Point {
	return svg.Point{
		X: f.s * (float64(f.start.X) + f.dir.X*along + f.n.X*off),
		Y: f.s * (float64(f.start.Y) + f.dir.Y*along + f.n.Y*off),
	}
}

func (f wallFrame) quad(u0, u1, v0, v1 float64) []svg.Point {
	return []svg.Point{f.at(u0, v0), f.at(u1, v0), f.at(u1, v1), f.at(u0, v1)}
}

// sillProjection is how far a window sill reaches past the outer face and
// the window edges.
const sillProjection = 50

func (d *drawer) planOpenings(fl *model.Floor) {
	d.c.Group("openings", "")
	for _, o := range fl.Openings {
		w, ok := fl.Wall(o.WallID)
		if !ok || w.Length() == 0 {
			continue
		}
		f := newWallFrame(w, d.s)
		t := float64(w.Thickness)
		a, b := -t/2, t/2
		if w.Type == model.WallExternal {
			a, b = 0, t
		}
		c := float64(model.PositionAt(o.Position.Ratio, w.Length()).Offset)
		half := float64(o.Width) / 2
		lo, hi := c-half, c+half

		if o.Type == model.OpeningDoor {
			d.c.Polygon(f.quad(lo, hi, a, b), "door-gap")
			d.line(f.at(lo, a), f.at(lo, b), "door")
			d.line(f.at(hi, a), f.at(hi, b), "door")
			r := float64(o.Width) * styles.Symbols.DoorLeafRatio
			hinge, leaf := f.at(lo, b), f.at(lo, b+r)
			d.line(hinge, leaf, "door")
			d.c.Path((&svg.Path{}).MoveTo(leaf).ArcTo(r*d.s, false, f.at(lo+r, b)), "swing")
			continue
		}

		d.c.Polygon(f.quad(lo, hi, a, b), "window")
		mid, g := (a+b)/2, t*0.15
		d.c.Polygon(f.quad(lo, hi, mid-g, mid+g), "glass")
		d.line(f.at(c, a), f.at(c, b), "window")
		if w.Type == model.WallExternal {
			d.line(f.at(lo-sillProjection, a-sillProjection), f.at(hi+sillProjection, a-sillProjection), "window")
		}
	}
	d.c.End()
}

func (d *drawer) line(p, q svg.Point, class string) {
	d.c.Line(p.X, p.Y, q.X, q.Y, class)
}

// stairFrame maps (run, across) millimeters of a stair to plan pixels. run
// grows toward the Up facade from the opposite edge of the stair bounds.
type stairFrame struct {
	ox, oy        float64
	runDir, acDir geom.Vec
	runLen, acLen float64
	flight        float64 // run length of one flight
	u             bool
	s             float64
}

func newStairFrame(st model.Stair, s float64) stairFrame {
	b := st.Bounds
	f := stairFrame{runDir: st.Up.Normal(), s: s, u: st.Type == model.StairUShape}
	switch st.Up {
	case model.North:
		f.ox, f.oy = float64(b.Min.X), float64(b.Min.Y)
	case model.South:
		f.ox, f.oy = float64(b.Min.X), float64(b.Max.Y)
	case model.East:
		f.ox, f.oy = float64(b.Min.X), float64(b.Min.Y)
	default:
		f.ox, f.oy = float64(b.Max.X), float64(b.Min.Y)
	}
	if st.Up == model.East || st.Up == model.West {
		f.acDir = geom.Vec{Y: 1}
		f.runLen, f.acLen = float64(b.Width()), float64(b.Height())
	} else {
		f.acDir = geom.Vec{X: 1}
		f.runLen, f.acLen = float64(b.Height()), float64(b.Width())
	}
	f.flight = f.runLen
	if f.u && f.runLen > layout.StairLanding {
		f.flight = f.runLen - layout.StairLanding
	}
	return f
}

// mm returns the plan position in millimeters.
func (f stairFrame) mm(run, across float64) (float64, float64) {
	return f.ox + f.runDir.X*run + f.acDir.X*across, f.oy + f.runDir.Y*run + f.acDir.Y*across
}

func (f stairFrame) at(run, across float64) svg.Point {
	x, y := f.mm(run, across)
	return svg.Point{X: x * f.s, Y: y * f.s}
}

// arrow returns the walking line of the stair from its foot upward.
func (f stairFrame) arrow() [][2]float64 {
	if !f.u {
		return [][2]float64{{0.1 * f.runLen, f.acLen / 2}, {0.9 * f.runLen, f.acLen / 2}}
	}
	turn := f.flight + (f.runLen-f.flight)/2
	return [][2]float64{
		{0.1 * f.flight, f.acLen / 4},
		{turn, f.acLen / 4},
		{turn, 3 * f.acLen / 4},
		{0.1 * f.flight, 3 * f.acLen / 4},
	}
}

func stairOnFloor(st model.Stair, index int) bool {
	for _, i := range st.ConnectsFloors {
		if i == index {
			return true
		}
	}
	return false
}

func (d *drawer) planStairs(stairs []model.Stair, index int) {
	d.c.Group("stairs", "")
	defer d.c.End()
	for _, st := range stairs {
		if !stairOnFloor(st, index) || st.Bounds.Empty() {
			continue
		}
		f := newStairFrame(st, d.s)
		d.c.Polygon(d.polygon(st.Bounds.Polygon()), "stair")

		treads := max(st.Risers, 2)
		if f.u {
			treads = max((st.Risers+1)/2, 2)
			d.line(f.at(0, f.acLen/2), f.at(f.flight, f.acLen/2), "stair")
			d.line(f.at(f.flight, 0), f.at(f.flight, f.acLen), "tread")
		}
		for i := 1; i < treads; i++ {
			r := f.flight * float64(i) / float64(treads)
			d.line(f.at(r, 0), f.at(r, f.acLen), "tread")
		}

		path := f.arrow()
		pts := make([]svg.Point, len(path))
		for i, p := range path {
			pts[i] = f.at(p[0], p[1])
		}
		d.c.Polyline(pts, "stair")
		d.arrowHead(pts[len(pts)-2], pts[len(pts)-1])
	}
}

// arrowHead draws a filled head at tip pointing away from from.
func (d *drawer) arrowHead(from, tip svg.Point) {
	dx, dy := tip.X-from.X, tip.Y-from.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	dx, dy = dx/l, dy/l
	k := styles.Symbols.ArrowHeadPx
	back := svg.Point{X: tip.X - dx*k, Y: tip.Y - dy*k}
	d.c.Polygon([]svg.Point{
		tip,
		{X: back.X - dy*k/2, Y: back.Y + dx*k/2},
		{X: back.X + dy*k/2, Y: back.Y - dx*k/2},
	}, "arrow")
}

func (d *drawer) stairLabels(stairs []model.Stair, index int) {
	d.c.Group("stair-labels", "")
	defer d.c.End()
	for _, st := range stairs {
		if !stairOnFloor(st, index) || st.Bounds.Empty() {
			continue
		}
		f := newStairFrame(st, d.s)
		foot := f.arrow()[0]
		x, y := f.mm(foot[0], foot[1])
		p := d.label(geom.Round(x), geom.Round(y))
		d.c.Text(p.X, p.Y+styles.Symbols.SmallFont/2, "UP", "label-small")
	}
}

func (d *drawer) roomLabels(fl *model.Floor) {
	d.c.Group("labels", "")
	for _, r := range fl.Rooms {
		c := r.Bounds.Center()
		p := d.label(c.X, c.Y)
		d.c.Text(p.X, p.Y, r.Name, "label")
		d.c.Text(p.X, p.Y+styles.Symbols.LabelFont+2, fmt.Sprintf("%.1f m²", r.Area), "label-small")
	}
	d.c.End()
}

func (d *drawer) planDimensions(b geom.Rect) {
	off := styles.Symbols.DimensionOffsetPx
	d.c.Group("dimensions", "")
	d.hDim(d.px(b.Min.X), d.px(b.Max.X), -d.px(b.Min.Y)+off, fmt.Sprintf("%.2f m", geom.ToMeters(b.Width())))
	d.vDim(d.px(b.Max.X)+off, -d.px(b.Max.Y), -d.px(b.Min.Y), fmt.Sprintf("%.2f m", geom.ToMeters(b.Height())))
	d.c.End()
}

func (d *drawer) northArrow(b geom.Rect) {
	sym := styles.Symbols
	x := d.px(b.Max.X)
	tip := -d.px(b.Max.Y) - sym.DimensionOffsetPx - sym.NorthArrowPx
	l, k := sym.NorthArrowPx, sym.ArrowHeadPx
	d.c.Group("north-arrow", "")
	d.c.Polygon([]svg.Point{
		{X: x, Y: tip},
		{X: x + k, Y: tip + l},
		{X: x, Y: tip + 0.7*l},
		{X: x - k, Y: tip + l},
	}, "arrow")
	d.c.Text(x, tip-4, "N", "label")
	d.c.End()
}

func (d *drawer) scaleBar(b geom.Rect) {
	sym := styles.Symbols
	seg := d.px(geom.FromMeters(sym.ScaleBarSegmentM))
	x0 := d.px(b.Min.X)
	y := -d.px(b.Min.Y) + 2*sym.DimensionOffsetPx
	d.c.Group("scale-bar", "")
	for i := range sym.ScaleBarSegments {
		class := "arrow"
		if i%2 == 1 {
			class = "window"
		}
		d.c.Rect(x0+float64(i)*seg, y, seg, 6, class)
	}
	d.c.Text(x0, y+6+sym.SmallFont+2, "0", "label-small")
	total := sym.ScaleBarSegmentM * float64(sym.ScaleBarSegments)
	d.c.Text(x0+float64(sym.ScaleBarSegments)*seg, y+6+sym.SmallFont+2, fmt.Sprintf("%g m", total), "label-small")
	d.c.End()
}

// furnitureSize is the footprint of the symbol drawn for a room kind.
var furnitureSize = map[layout.Kind][2]int{
	layout.KindMaster:   {1600, 2000},
	layout.KindBedroom:  {1200, 2000},
	layout.KindLiving:   {2000, 900},
	layout.KindDining:   {1600, 900},
	layout.KindKitchen:  {2400, 600},
	layout.KindBathroom: {700, 1700},
	layout.KindEnsuite:  {700, 1200},
	layout.KindWC:       {400, 650},
	layout.KindStudy:    {1400, 700},
}

// furnitureClearance is kept between a symbol and the room edge.
const furnitureClearance = 200

// furniture draws one symbol per room, centered, where it fits.
func (d *drawer) furniture(fl *model.Floor) {
	d.c.Group("furniture", "")
	defer d.c.End()
	for _, r := range fl.Rooms {
		size, ok := furnitureSize[layout.Kind(r.Kind)]
		if !ok {
			continue
		}
		w, h := size[0], size[1]
		if r.Bounds.Width() < r.Bounds.Height() != (w < h) {
			w, h = h, w
		}
		if w+2*furnitureClearance > r.Bounds.Width() || h+2*furnitureClearance > r.Bounds.Height() {
			continue
		}
		c := r.Bounds.Center()
		box := geom.RectXYWH(c.X-w/2, c.Y-h/2, w, h)
		d.c.Polygon(d.polygon(box.Polygon()), "furniture")
		switch layout.Kind(r.Kind) {
		case layout.KindMaster, layout.KindBedroom:
			// pillow line across the head end
			inset := min(w, h) / 4
			if w < h {
				d.line(d.pt(geom.Pt(box.Min.X, box.Max.Y-inset)), d.pt(geom.Pt(box.Max.X, box.Max.Y-inset)), "furniture")
			} else {
				d.line(d.pt(geom.Pt(box.Max.X-inset, box.Min.Y)), d.pt(geom.Pt(box.Max.X-inset, box.Max.Y)), "furniture")
			}
		case layout.KindDining:
			p := d.pt(c)
			d.c.Circle(p.X, p.Y, d.px(min(w, h)/4), "furniture")
		}
	}
}
