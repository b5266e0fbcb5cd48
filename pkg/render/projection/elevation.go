package projection

import (
	"fmt"
	"slices"

	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/render/svg"
	"github.com/matzehuels/blueprint/pkg/styles"
)

// skyMargin is how far sky and ground extend past the building.
const skyMargin = 2000

// glassInset is the frame width drawn around window glass in elevations.
const glassInset = 60

// Elevation returns the elevation of facade f, seen from outside with u
// running left to right. Unknown facades and models without floors return a
// placeholder.
func Elevation(m *model.Building, f model.Facade, opts Options) []byte {
	d := newDrawer(opts)
	if !slices.Contains(model.Facades, f) {
		return svg.Placeholder(d.theme, "Elevation", fmt.Sprintf("unknown facade %q", f))
	}
	title := f.Name() + " elevation"
	if m == nil || len(m.Floors) == 0 {
		return svg.Placeholder(d.theme, title, "building has no floors")
	}
	env := m.Envelope
	w, h := env.FacadeWidth(f), env.Height
	top := max(h, m.Roof.RidgeHeight)

	if opts.ShowGround {
		d.c.Group("background", "")
		d.rectUZ(-skyMargin, 0, w+skyMargin, top+skyMargin/2, "sky")
		d.rectUZ(-skyMargin, -styles.GroundDepthShown, w+skyMargin, 0, "ground")
		d.c.End()
	}

	d.c.Group("envelope", "")
	d.rectUZ(0, 0, w, h, "envelope")
	for _, fl := range m.Floors[:len(m.Floors)-1] {
		a, b := d.uz(0, fl.ZTop), d.uz(w, fl.ZTop)
		d.line(a, b, "tread")
	}
	d.c.End()

	if opts.ShowRoof {
		d.drawRoof(m.Roof, m.RoofProfile(f), h)
	}

	d.elevationOpenings(m, f)

	if opts.ShowLevelMarkers {
		d.levelMarkers(w, levels(m))
	}
	off := styles.Symbols.DimensionOffsetPx
	if opts.ShowDimensions {
		d.c.Group("dimensions", "")
		below := 0.0
		if opts.ShowGround {
			below = d.px(styles.GroundDepthShown)
		}
		d.hDim(0, d.px(w), below+off, fmt.Sprintf("%.2f m", geom.ToMeters(w)))
		d.vDim(-off, -d.px(h), 0, fmt.Sprintf("%.2f m", geom.ToMeters(h)))
		d.c.End()
	}
	d.title(0, -d.px(top)-off, title)
	return d.render(title)
}

// rectUZ draws the facade-local rectangle [u0,u1]×[z0,z1].
func (d *drawer) rectUZ(u0, z0, u1, z1 int, class string) {
	a, b := d.uz(u0, z1), d.uz(u1, z0)
	d.c.Rect(a.X, a.Y, b.X-a.X, b.Y-a.Y, class)
}

// facadeU projects a plan point onto the facade axis. u is zero at the left
// corner as seen from outside.
func facadeU(b geom.Rect, f model.Facade, p geom.Point) int {
	switch f {
	case model.East:
		return p.Y - b.Min.Y
	case model.North:
		return b.Max.X - p.X
	case model.West:
		return b.Max.Y - p.Y
	default:
		return p.X - b.Min.X
	}
}

func (d *drawer) elevationOpenings(m *model.Building, f model.Facade) {
	b := m.Envelope.Bounds()
	d.c.Group("openings", "")
	defer d.c.End()
	for _, o := range m.OpeningsForFacade(f) {
		fl := m.Floor(o.FloorIndex)
		if fl == nil {
			continue
		}
		w, ok := fl.Wall(o.WallID)
		if !ok {
			continue
		}
		pos := model.PositionAt(o.Position.Ratio, w.Length())
		u := facadeU(b, f, w.At(pos.Ratio))
		u0, u1 := u-o.Width/2, u+o.Width/2
		z0 := o.ZBase + o.SillHeight
		z1 := z0 + o.Height

		if o.Type == model.OpeningDoor {
			d.rectUZ(u0, z0, u1, z1, "window")
			d.rectUZ(u0+glassInset, z0, u1-glassInset, z1-glassInset, "door")
			continue
		}
		d.rectUZ(u0, z0, u1, z1, "window")
		if u1-u0 > 2*glassInset && z1-z0 > 2*glassInset {
			d.rectUZ(u0+glassInset, z0+glassInset, u1-glassInset, z1-glassInset, "glass")
		}
		d.line(d.uz(u, z0), d.uz(u, z1), "window")
		d.line(d.uz(u0-sillProjection, z0), d.uz(u1+sillProjection, z0), "window")
	}
}
