package layout

import (
	"fmt"

	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/styles"
)

const (
	// wallTolerance is the largest gap between two rooms that still gets
	// a shared partition.
	wallTolerance = 3 * styles.InternalWallThickness
	// minWallOverlap is the shortest shared edge that gets a partition.
	minWallOverlap = 100
)

// ExternalWalls returns one wall per footprint edge. The footprint runs
// counter-clockwise from the south-west corner, so walls come out in S, E,
// N, W order and each runs left to right as seen from outside. External
// walls lie on the outer face of the footprint; their thickness extends
// inward.
func ExternalWalls(level int, env model.Envelope) []model.Wall {
	edges := env.Footprint.Edges()
	walls := make([]model.Wall, 0, len(edges))
	for i, e := range edges {
		f := model.Facades[i%len(model.Facades)]
		walls = append(walls, model.Wall{
			ID:        fmt.Sprintf("F%d-EXT-%s", level, f),
			Start:     e[0],
			End:       e[1],
			Thickness: styles.ExternalWallThickness,
			Type:      model.WallExternal,
			Facade:    f,
		})
	}
	return walls
}

// SharedEdge reports whether two room rectangles are close enough to share
// a partition and returns its centerline. The rooms must be within
// wallTolerance on one axis and overlap by at least minWallOverlap on the
// other; the wall sits in the middle of the gap.
func SharedEdge(a, b geom.Rect) (geom.Point, geom.Point, bool) {
	gx, gy := a.Gap(b)
	switch {
	case gx >= 0 && gx <= wallTolerance && -gy >= minWallOverlap:
		left, right := a, b
		if b.Min.X < a.Min.X {
			left, right = b, a
		}
		x := (left.Max.X + right.Min.X) / 2
		y0, y1 := max(a.Min.Y, b.Min.Y), min(a.Max.Y, b.Max.Y)
		return geom.Pt(x, y0), geom.Pt(x, y1), true
	case gy >= 0 && gy <= wallTolerance && -gx >= minWallOverlap:
		lower, upper := a, b
		if b.Min.Y < a.Min.Y {
			lower, upper = b, a
		}
		y := (lower.Max.Y + upper.Min.Y) / 2
		x0, x1 := max(a.Min.X, b.Min.X), min(a.Max.X, b.Max.X)
		return geom.Pt(x0, y), geom.Pt(x1, y), true
	}
	return geom.Point{}, geom.Point{}, false
}

// InternalWalls returns at most one partition per adjacent room pair.
func InternalWalls(level int, rooms []model.Room) []model.Wall {
	var walls []model.Wall
	for i := range rooms {
		for j := i + 1; j < len(rooms); j++ {
			start, end, ok := SharedEdge(rooms[i].Bounds, rooms[j].Bounds)
			if !ok {
				continue
			}
			walls = append(walls, model.Wall{
				ID:            fmt.Sprintf("F%d-INT-%d", level, len(walls)+1),
				Start:         start,
				End:           end,
				Thickness:     styles.InternalWallThickness,
				Type:          model.WallInternal,
				ConnectsRooms: []string{rooms[i].ID, rooms[j].ID},
			})
		}
	}
	return walls
}
