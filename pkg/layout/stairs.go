package layout

import (
	"math"

	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/model"
)

// Stair dimensions in millimeters.
const (
	StairWidth    = 1000
	UStairWidth   = 2200
	StairGoing    = 250
	StairMaxRiser = 190
	StairLanding  = 1000
	stairInset    = 2500 // stair center distance from the entrance door
)

// BuildStairs places a single stair core for multi-floor buildings,
// stairInset inward from the entrance door along the entrance normal. Two
// floors get a straight flight, more get a U-shaped stair. The core is
// clamped into the buildable area.
func BuildStairs(env model.Envelope) []model.Stair {
	n := len(env.FloorHeights)
	if n < 2 {
		return nil
	}
	risers := int(math.Ceil(float64(env.FloorHeights[0]) / StairMaxRiser))

	st := model.Stair{
		ID:     "ST1",
		Type:   model.StairStraight,
		Width:  StairWidth,
		Length: risers * StairGoing,
		Risers: risers,
		Up:     env.EntranceSide.Opposite(),
	}
	if n > 2 {
		st.Type = model.StairUShape
		st.Width = UStairWidth
		st.Length = (risers+1)/2*StairGoing + StairLanding
	}
	for i := range n {
		st.ConnectsFloors = append(st.ConnectsFloors, i)
	}

	area := env.Buildable()
	door := entrancePoint(env)
	inward := env.EntranceSide.Normal().Scale(-stairInset)
	center := door.Offset(inward)

	// The flight runs along the entrance normal.
	w, l := st.Width, st.Length
	horizontal := env.EntranceSide == model.East || env.EntranceSide == model.West
	if horizontal {
		w, l = l, w
	}
	w, l = min(w, area.Width()), min(l, area.Height())
	if horizontal {
		st.Length, st.Width = w, l
	} else {
		st.Width, st.Length = w, l
	}

	r := geom.RectXYWH(center.X-w/2, center.Y-l/2, w, l)
	dx := max(area.Min.X-r.Min.X, 0) + min(area.Max.X-r.Max.X, 0)
	dy := max(area.Min.Y-r.Min.Y, 0) + min(area.Max.Y-r.Max.Y, 0)
	st.Bounds = r.Translate(dx, dy)
	st.Position = st.Bounds.Center()
	return []model.Stair{st}
}

// entrancePoint is the midpoint of the entrance facade wall.
func entrancePoint(env model.Envelope) geom.Point {
	b := env.Bounds()
	c := b.Center()
	switch env.EntranceSide {
	case model.North:
		return geom.Pt(c.X, b.Max.Y)
	case model.East:
		return geom.Pt(b.Max.X, c.Y)
	case model.West:
		return geom.Pt(b.Min.X, c.Y)
	default:
		return geom.Pt(c.X, b.Min.Y)
	}
}
