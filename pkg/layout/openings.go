package layout

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/model"
)

// WindowPolicy sizes and spaces the windows of one facade.
type WindowPolicy struct {
	Width   int
	Height  int
	Sill    int
	Spacing int // center-to-center
}

// WindowPolicies favour the south for solar gain and keep the north small.
var WindowPolicies = map[model.Facade]WindowPolicy{
	model.South: {Width: 1500, Height: 1500, Sill: 900, Spacing: 2400},
	model.East:  {Width: 1200, Height: 1350, Sill: 900, Spacing: 3000},
	model.West:  {Width: 1200, Height: 1350, Sill: 900, Spacing: 3000},
	model.North: {Width: 900, Height: 1200, Sill: 1050, Spacing: 3600},
}

// Door sizes in millimeters.
const (
	EntranceDoorWidth = 1000
	PatioDoorWidth    = 1800
	InternalDoorWidth = 850
	MinDoorWidth      = 600
	DoorHeight        = 2100

	// patioMinWall is the shortest south wall that gets a patio door.
	patioMinWall = 3000
	// doorEndClearance is the total wall left beside a door.
	doorEndClearance = 200
	// windowCornerMargin keeps windows away from building corners.
	windowCornerMargin = 600
	// windowDoorClearance keeps windows away from doors on the same wall.
	windowDoorClearance = 300
)

type openingBuilder struct {
	level    int
	openings []model.Opening
	doored   map[string]bool
	windows  int
	doors    int
}

func (ob *openingBuilder) door(w model.Wall, width int, kind string) bool {
	length := w.Length()
	width = min(width, length-doorEndClearance)
	if width < MinDoorWidth || ob.doored[w.ID] {
		return false
	}
	ob.doors++
	ob.openings = append(ob.openings, model.Opening{
		ID:       fmt.Sprintf("F%d-D%d", ob.level, ob.doors),
		WallID:   w.ID,
		Type:     model.OpeningDoor,
		Kind:     kind,
		Position: model.PositionAt(0.5, length),
		Width:    width,
		Height:   DoorHeight,
		Facade:   w.Facade,
	})
	ob.doored[w.ID] = true
	return true
}

func (ob *openingBuilder) window(w model.Wall, center int, p WindowPolicy) {
	ob.windows++
	ob.openings = append(ob.openings, model.Opening{
		ID:         fmt.Sprintf("F%d-W%d", ob.level, ob.windows),
		WallID:     w.ID,
		Type:       model.OpeningWindow,
		Kind:       model.KindWindow,
		Position:   model.PositionAtOffset(center, w.Length()),
		Width:      p.Width,
		Height:     p.Height,
		SillHeight: p.Sill,
		Facade:     w.Facade,
	})
}

func externalWall(walls []model.Wall, f model.Facade) (model.Wall, bool) {
	for _, w := range walls {
		if w.Type == model.WallExternal && w.Facade == f {
			return w, true
		}
	}
	return model.Wall{}, false
}

// placeOpenings returns the doors and windows of one floor: the entrance
// and patio doors on the ground floor, internal doors from circulation to
// every room, direct connector doors, and facade-policy windows on every
// external wall clear of the doors.
func placeOpenings(level int, entrance model.Facade, rooms []model.Room, walls []model.Wall, logger *log.Logger) []model.Opening {
	ob := &openingBuilder{level: level, doored: map[string]bool{}}

	if level == 0 {
		if w, ok := externalWall(walls, entrance); ok {
			ob.door(w, EntranceDoorWidth, model.KindEntrance)
		}
		if entrance != model.South {
			if w, ok := externalWall(walls, model.South); ok && w.Length() >= patioMinWall {
				ob.door(w, PatioDoorWidth, model.KindPatio)
			}
		}
	}

	internalDoors(ob, rooms, walls, logger)

	for _, pair := range ConnectorPairs {
		a, okA := roomOfKind(rooms, pair.A)
		b, okB := roomOfKind(rooms, pair.B)
		if !okA || !okB {
			continue
		}
		for _, w := range walls {
			if w.Type == model.WallInternal && w.Connects(a.ID, b.ID) {
				ob.door(w, InternalDoorWidth, model.KindConnector)
				break
			}
		}
	}

	for _, w := range walls {
		if w.Type != model.WallExternal {
			continue
		}
		p, ok := WindowPolicies[w.Facade]
		if !ok {
			continue
		}
		blocked := doorSpans(ob.openings, w.ID)
		for _, c := range WindowCenters(w.Length(), p) {
			lo, hi := c-p.Width/2-windowDoorClearance, c+p.Width/2+windowDoorClearance
			if overlapsSpan(lo, hi, blocked) {
				continue
			}
			ob.window(w, c, p)
		}
	}
	return ob.openings
}

func internalDoors(ob *openingBuilder, rooms []model.Room, walls []model.Wall, logger *log.Logger) {
	var circ []model.Room
	for _, r := range rooms {
		if r.Circulation {
			circ = append(circ, r)
		}
	}

	if len(circ) == 0 {
		for _, w := range walls {
			if w.Type == model.WallInternal {
				ob.door(w, InternalDoorWidth, model.KindInternal)
			}
		}
		return
	}

	for _, r := range rooms {
		if r.Circulation {
			continue
		}
		if w, ok := sharedWall(walls, circ, r); ok {
			if ob.door(w, InternalDoorWidth, model.KindInternal) || ob.doored[w.ID] {
				continue
			}
		}
		if w, ok := nearestWall(walls, r, circ[0].Bounds.Center(), ob.doored); ok {
			if ob.door(w, InternalDoorWidth, model.KindInternal) {
				continue
			}
		}
		logger.Debug("no door reaches room", "floor", ob.level, "room", r.Name)
	}
}

// sharedWall returns the partition between r and any circulation room.
func sharedWall(walls []model.Wall, circ []model.Room, r model.Room) (model.Wall, bool) {
	for _, c := range circ {
		for _, w := range walls {
			if w.Type == model.WallInternal && w.Connects(c.ID, r.ID) {
				return w, true
			}
		}
	}
	return model.Wall{}, false
}

// nearestWall returns the door-free partition of r closest to target.
func nearestWall(walls []model.Wall, r model.Room, target geom.Point, doored map[string]bool) (model.Wall, bool) {
	best, found := model.Wall{}, false
	bestD := 0.0
	for _, w := range walls {
		if w.Type != model.WallInternal || doored[w.ID] || !touchesRoom(w, r.ID) {
			continue
		}
		d := w.At(0.5).Dist(target)
		if !found || d < bestD {
			best, bestD, found = w, d, true
		}
	}
	return best, found
}

func touchesRoom(w model.Wall, id string) bool {
	for _, r := range w.ConnectsRooms {
		if r == id {
			return true
		}
	}
	return false
}

func roomOfKind(rooms []model.Room, k Kind) (model.Room, bool) {
	for _, r := range rooms {
		if Kind(r.Kind) == k {
			return r, true
		}
	}
	return model.Room{}, false
}

// WindowCenters returns evenly spaced window centers along a wall of the
// given length, keeping windowCornerMargin clear at both ends.
func WindowCenters(length int, p WindowPolicy) []int {
	usable := length - 2*windowCornerMargin
	if usable < p.Width || p.Spacing <= 0 {
		return nil
	}
	n := max(usable/p.Spacing, 1)
	out := make([]int, n)
	for k := range out {
		out[k] = windowCornerMargin + geom.Round(float64(usable)*(float64(k)+0.5)/float64(n))
	}
	return out
}

func doorSpans(openings []model.Opening, wallID string) [][2]int {
	var out [][2]int
	for _, o := range openings {
		if o.WallID == wallID && o.Type == model.OpeningDoor {
			out = append(out, [2]int{o.Position.Offset - o.Width/2, o.Position.Offset + o.Width/2})
		}
	}
	return out
}

func overlapsSpan(lo, hi int, spans [][2]int) bool {
	for _, s := range spans {
		if lo < s[1] && s[0] < hi {
			return true
		}
	}
	return false
}
