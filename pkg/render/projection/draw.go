package projection

import (
	"fmt"

	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/render/svg"
	"github.com/matzehuels/blueprint/pkg/styles"
)

// drawer holds the state shared by one drawing.
type drawer struct {
	c     *svg.Canvas
	s     float64 // px per mm
	opts  Options
	theme styles.Theme
}

func newDrawer(opts Options) *drawer {
	return &drawer{c: svg.New(), s: opts.pxPerMM(), opts: opts, theme: opts.theme()}
}

func (d *drawer) px(mm int) float64 { return float64(mm) * d.s }

// pt maps model plan coordinates into the flipped plan group.
func (d *drawer) pt(p geom.Point) svg.Point { return svg.Point{X: d.px(p.X), Y: d.px(p.Y)} }

// label maps model plan coordinates to root coordinates, where y points
// down. Text drawn outside the flipped group uses it.
func (d *drawer) label(x, y int) svg.Point { return svg.Point{X: d.px(x), Y: -d.px(y)} }

// uz maps facade-local (u, z) millimeters to root coordinates.
func (d *drawer) uz(u, z int) svg.Point { return svg.Point{X: d.px(u), Y: -d.px(z)} }

func (d *drawer) polygon(p geom.Polygon) []svg.Point {
	out := make([]svg.Point, len(p))
	for i, q := range p {
		out[i] = d.pt(q)
	}
	return out
}

func (d *drawer) render(title string) []byte {
	return d.c.Render(svg.Document{
		Theme:     d.theme,
		Title:     title,
		MinWidth:  d.opts.Width,
		MinHeight: d.opts.Height,
		Margin:    styles.Symbols.MarginPx,
	})
}

func (d *drawer) title(x, y float64, s string) {
	d.c.Group("title", "")
	d.c.Text(x, y, s, "title")
	d.c.End()
}

// hDim draws a horizontal dimension line at root y between x1 and x2.
func (d *drawer) hDim(x1, x2, y float64, text string) {
	t := styles.Symbols.TickPx
	d.c.Line(x1, y, x2, y, "dim")
	d.c.Line(x1-t, y+t, x1+t, y-t, "dim")
	d.c.Line(x2-t, y+t, x2+t, y-t, "dim")
	d.c.Text((x1+x2)/2, y-t-2, text, "label-small")
}

// vDim draws a vertical dimension line at root x between y1 and y2.
func (d *drawer) vDim(x, y1, y2 float64, text string) {
	t := styles.Symbols.TickPx
	d.c.Line(x, y1, x, y2, "dim")
	d.c.Line(x-t, y1+t, x+t, y1-t, "dim")
	d.c.Line(x-t, y2+t, x+t, y2-t, "dim")
	d.c.Text(x+t+styles.Symbols.SmallFont*2, (y1+y2)/2, text, "label-small")
}

// level is one elevation marker.
type level struct {
	z    int
	name string
}

func levels(m *model.Building) []level {
	out := []level{{0, "Ground"}}
	for _, fl := range m.Floors {
		name := fmt.Sprintf("Level %d", fl.Index+1)
		if fl.Index == len(m.Floors)-1 {
			name = "Eaves"
		}
		out = append(out, level{fl.ZTop, name})
	}
	if m.Roof.RidgeHeight > m.Envelope.Height {
		out = append(out, level{m.Roof.RidgeHeight, "Ridge"})
	}
	return out
}

// levelMarkers draws a marker triangle, leader line and height label for
// each level to the right of a facade-local span of the given width.
func (d *drawer) levelMarkers(width int, lv []level) {
	d.c.Group("levels", "")
	sym := styles.Symbols
	x0 := d.px(width)
	x1 := x0 + sym.LeaderPx
	for _, l := range lv {
		y := -d.px(l.z)
		d.c.Line(x0, y, x1, y, "level")
		k := sym.LevelMarkerPx
		d.c.Polygon([]svg.Point{{X: x1, Y: y}, {X: x1 - k/2, Y: y - k}, {X: x1 + k/2, Y: y - k}}, "arrow")
		d.c.Text(x1+k, y-2, fmt.Sprintf("%s %s", l.name, formatLevel(l.z)), "small")
	}
	d.c.End()
}

func formatLevel(z int) string {
	if z == 0 {
		return "±0.00"
	}
	return fmt.Sprintf("%+.2f", geom.ToMeters(z))
}

// roofOutline closes a roof profile down to the eave height so it can be
// filled. Consecutive duplicates are dropped.
func roofOutline(profile []geom.Point, eave int) []geom.Point {
	if len(profile) == 0 {
		return nil
	}
	pts := []geom.Point{{X: profile[0].X, Y: eave}}
	pts = append(pts, profile...)
	pts = append(pts, geom.Point{X: profile[len(profile)-1].X, Y: eave})
	out := pts[:1]
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// drawRoof draws a roof profile in facade-local coordinates. Flat roofs get
// a parapet band; an empty profile draws nothing.
func (d *drawer) drawRoof(r model.Roof, profile []geom.Point, eave int) {
	if len(profile) == 0 {
		return
	}
	d.c.Group("roof", "")
	defer d.c.End()
	if r.Type == model.RoofFlat {
		u0, u1 := profile[0].X, profile[len(profile)-1].X
		a, b := d.uz(u0, eave+styles.ParapetHeight), d.uz(u1, eave)
		d.c.Rect(a.X, a.Y, b.X-a.X, b.Y-a.Y, "roof")
		return
	}
	outline := roofOutline(profile, eave)
	pts := make([]svg.Point, len(outline))
	for i, p := range outline {
		pts[i] = d.uz(p.X, p.Y)
	}
	d.c.Polygon(pts, "roof")
}
