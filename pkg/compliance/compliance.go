// Package compliance checks a building model against residential layout
// rules: minimum room areas and widths, minimum door widths, glazing of
// habitable rooms and door connectivity.
//
// The report is advisory. It never changes the model and has no bearing on
// [model.Building.Validate].
//
//	r := compliance.Check(m)
//	for _, issue := range r.Issues {
//	    fmt.Println(issue)
//	}
package compliance

import (
	"fmt"

	"github.com/matzehuels/blueprint/pkg/layout"
	"github.com/matzehuels/blueprint/pkg/model"
)

// Check names.
const (
	CheckArea         = "area"
	CheckWidth        = "width"
	CheckDoor         = "door"
	CheckGlazing      = "glazing"
	CheckConnectivity = "connectivity"
)

// Rules are the thresholds a model is checked against. Areas are m², lengths
// millimeters.
type Rules struct {
	MinArea map[layout.Kind]float64
	// MinWidth is the shortest allowed side per kind. Habitable kinds not
	// listed use HabitableMinWidth; other kinds are not checked.
	MinWidth          map[layout.Kind]int
	HabitableMinWidth int
	// MinDoorWidth is keyed by opening kind; unlisted kinds use
	// DefaultMinDoorWidth.
	MinDoorWidth        map[string]int
	DefaultMinDoorWidth int
	// MinGlazingRatio is the window area of a habitable room with an
	// external wall as a fraction of its floor area.
	MinGlazingRatio float64
}

// DefaultRules returns UK-style residential minimums.
func DefaultRules() Rules {
	return Rules{
		MinArea: map[layout.Kind]float64{
			layout.KindMaster:   11,
			layout.KindBedroom:  6.5,
			layout.KindLiving:   13,
			layout.KindKitchen:  5.5,
			layout.KindBathroom: 2.5,
			layout.KindEnsuite:  2.5,
			layout.KindWC:       1.5,
		},
		MinWidth: map[layout.Kind]int{
			layout.KindMaster:      2100,
			layout.KindBedroom:     2100,
			layout.KindBathroom:    1700,
			layout.KindEnsuite:     1700,
			layout.KindWC:          1700,
			layout.KindCirculation: 900,
		},
		HabitableMinWidth: 2400,
		MinDoorWidth: map[string]int{
			model.KindEntrance: 800,
			model.KindPatio:    850,
		},
		DefaultMinDoorWidth: 750,
		MinGlazingRatio:     0.10,
	}
}

// Issue is one failed check.
type Issue struct {
	Check   string `json:"check"`
	Floor   int    `json:"floor"`
	Subject string `json:"subject"` // room name or opening id
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("floor %d: %s: %s", i.Floor, i.Check, i.Message)
}

// RoomReport is the measured and required values of one room.
type RoomReport struct {
	Floor      int         `json:"floor"`
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Kind       layout.Kind `json:"kind"`
	Area       float64     `json:"area"`
	MinArea    float64     `json:"min_area"`
	Width      int         `json:"width"`
	MinWidth   int         `json:"min_width"`
	Glazing    float64     `json:"glazing"`     // m² of window
	MinGlazing float64     `json:"min_glazing"` // m², zero when not required
	Reachable  bool        `json:"reachable"`
}

// Report is the result of Check.
type Report struct {
	Compliant bool         `json:"compliant"`
	Issues    []Issue      `json:"issues"`
	Rooms     []RoomReport `json:"rooms"`
}

// Check runs every check with DefaultRules.
func Check(b *model.Building) Report {
	return DefaultRules().Check(b)
}

// Check runs every check against the model.
func (r Rules) Check(b *model.Building) Report {
	rep := Report{Issues: []Issue{}, Rooms: []RoomReport{}}
	if b == nil {
		rep.Compliant = true
		return rep
	}
	for i := range b.Floors {
		r.checkFloor(&b.Floors[i], &rep)
	}
	rep.Compliant = len(rep.Issues) == 0
	return rep
}

func (r Rules) minWidth(k layout.Kind) int {
	if w, ok := r.MinWidth[k]; ok {
		return w
	}
	if layout.IsHabitable(k) {
		return r.HabitableMinWidth
	}
	return 0
}

func (r Rules) minDoorWidth(kind string) int {
	if w, ok := r.MinDoorWidth[kind]; ok {
		return w
	}
	return r.DefaultMinDoorWidth
}

func (r Rules) checkFloor(fl *model.Floor, rep *Report) {
	add := func(check, subject, format string, args ...any) {
		rep.Issues = append(rep.Issues, Issue{Check: check, Floor: fl.Index, Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	glazing := map[string]float64{}
	for _, o := range fl.Openings {
		if o.Type != model.OpeningWindow {
			continue
		}
		if room, ok := fl.RoomBehind(o); ok {
			glazing[room.ID] += float64(o.Width) * float64(o.Height) / 1e6
		}
	}
	reached := reachable(fl)

	for _, room := range fl.Rooms {
		k := layout.Kind(room.Kind)
		if k == "" {
			k = layout.Classify(room.Name, "")
		}
		rr := RoomReport{
			Floor:     fl.Index,
			ID:        room.ID,
			Name:      room.Name,
			Kind:      k,
			Area:      room.Area,
			MinArea:   r.MinArea[k],
			Width:     min(room.Bounds.Width(), room.Bounds.Height()),
			MinWidth:  r.minWidth(k),
			Glazing:   glazing[room.ID],
			Reachable: reached == nil || reached[room.ID],
		}
		if rr.MinArea > 0 && rr.Area < rr.MinArea {
			add(CheckArea, room.Name, "%s area %.1f m² below minimum %.1f m²", room.Name, rr.Area, rr.MinArea)
		}
		if rr.MinWidth > 0 && rr.Width < rr.MinWidth {
			add(CheckWidth, room.Name, "%s width %.2f m below minimum %.2f m", room.Name, float64(rr.Width)/1000, float64(rr.MinWidth)/1000)
		}
		if layout.IsHabitable(k) && hasExternalWall(fl, room) {
			rr.MinGlazing = rr.Area * r.MinGlazingRatio
			if rr.Glazing < rr.MinGlazing {
				add(CheckGlazing, room.Name, "%s window area %.2f m² below %.0f%% of floor area (%.2f m²)",
					room.Name, rr.Glazing, r.MinGlazingRatio*100, rr.MinGlazing)
			}
		}
		if !rr.Reachable {
			add(CheckConnectivity, room.Name, "%s cannot be reached through doors", room.Name)
		}
		rep.Rooms = append(rep.Rooms, rr)
	}

	for _, o := range fl.Openings {
		if o.Type != model.OpeningDoor {
			continue
		}
		if want := r.minDoorWidth(o.Kind); o.Width < want {
			add(CheckDoor, o.ID, "door %s width %.2f m below minimum %.2f m", o.ID, float64(o.Width)/1000, float64(want)/1000)
		}
	}
}

// hasExternalWall reports whether the room lies against the inner face of
// an external wall.
func hasExternalWall(fl *model.Floor, room model.Room) bool {
	b := room.Bounds
	for _, w := range fl.Walls {
		if w.Type != model.WallExternal {
			continue
		}
		switch w.Facade {
		case model.South:
			if b.Min.Y <= w.Start.Y+w.Thickness {
				return true
			}
		case model.North:
			if b.Max.Y >= w.Start.Y-w.Thickness {
				return true
			}
		case model.East:
			if b.Max.X >= w.Start.X-w.Thickness {
				return true
			}
		case model.West:
			if b.Min.X <= w.Start.X+w.Thickness {
				return true
			}
		}
	}
	return false
}

// reachable walks door-bearing internal walls from the floor's circulation
// rooms and the rooms behind external doors. It returns nil when the floor
// has no such starting room, in which case connectivity is not judged.
func reachable(fl *model.Floor) map[string]bool {
	var queue []string
	seen := map[string]bool{}
	visit := func(id string) {
		if !seen[id] {
			seen[id] = true
			queue = append(queue, id)
		}
	}
	for _, r := range fl.Rooms {
		if r.Circulation {
			visit(r.ID)
		}
	}
	for _, o := range fl.Openings {
		if o.Type != model.OpeningDoor {
			continue
		}
		if r, ok := fl.RoomBehind(o); ok {
			visit(r.ID)
		}
	}
	if len(queue) == 0 {
		return nil
	}

	doored := map[string]bool{}
	for _, o := range fl.Openings {
		if o.Type == model.OpeningDoor {
			doored[o.WallID] = true
		}
	}
	adj := map[string][]string{}
	for _, w := range fl.Walls {
		if w.Type != model.WallInternal || len(w.ConnectsRooms) != 2 || !doored[w.ID] {
			continue
		}
		a, b := w.ConnectsRooms[0], w.ConnectsRooms[1]
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range adj[id] {
			visit(next)
		}
	}
	return seen
}

// Failed returns the issues of one check.
func (r Report) Failed(check string) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Check == check {
			out = append(out, i)
		}
	}
	return out
}

// Checks lists every check name.
func Checks() []string {
	return []string{CheckArea, CheckWidth, CheckDoor, CheckGlazing, CheckConnectivity}
}
