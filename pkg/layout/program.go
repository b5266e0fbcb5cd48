package layout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/blueprint/pkg/brief"
	"github.com/matzehuels/blueprint/pkg/envelope"
)

const (
	circulationArea   = 7.0
	circulationAspect = 1.9
)

// sourceRooms turns the brief's rooms into per-level requests. The flat
// room list wins over nested per-level lists. When every room sits on
// level 0 of a multi-floor building the rooms are redistributed by kind.
func sourceRooms(rooms []brief.Room, levels int) ([][]Request, bool) {
	out := make([][]Request, levels)
	reqs := make([]Request, 0, len(rooms))
	allGround := true
	for i, r := range rooms {
		k := Classify(r.Name, r.Program)
		area := r.Area
		if area <= 0 {
			area = Info(k).DefaultArea
		}
		name := strings.TrimSpace(r.Name)
		if name == "" {
			name = fmt.Sprintf("Room %d", i+1)
		}
		reqs = append(reqs, Request{
			Name:        name,
			Kind:        k,
			Zone:        ZoneOf(r.ZoneType, k),
			Area:        area,
			Level:       min(max(r.LevelIndex(), 0), levels-1),
			Circulation: k == KindCirculation,
		})
		if r.LevelIndex() != 0 {
			allGround = false
		}
	}

	auto := levels > 1 && len(reqs) > 0 && allGround
	if auto {
		assignLevels(reqs, rooms, levels)
	}
	for _, r := range reqs {
		out[r.Level] = append(out[r.Level], r)
	}
	return out, auto
}

// assignLevels puts ground-floor kinds on level 0, upper-floor kinds on the
// least loaded upper level and everything else on the least loaded level.
// Ties go to the lower level.
func assignLevels(reqs []Request, rooms []brief.Room, levels int) {
	totals := make([]float64, levels)
	lightest := func(from int) int {
		best := from
		for l := from + 1; l < levels; l++ {
			if totals[l] < totals[best] {
				best = l
			}
		}
		return best
	}

	var flexible []int
	for i := range reqs {
		switch FloorOf(rooms[i].Name, reqs[i].Kind) {
		case FloorGround:
			reqs[i].Level = 0
		case FloorUpper:
			reqs[i].Level = lightest(1)
		default:
			flexible = append(flexible, i)
			continue
		}
		totals[reqs[i].Level] += reqs[i].Area
	}
	for _, i := range flexible {
		reqs[i].Level = lightest(0)
		totals[reqs[i].Level] += reqs[i].Area
	}
}

// injectCirculation prepends a hall or landing to a floor of a multi-floor
// building that has rooms but no circulation.
func injectCirculation(level, levels int, reqs []Request) []Request {
	if levels < 2 || len(reqs) == 0 {
		return reqs
	}
	for _, r := range reqs {
		if r.Circulation {
			return reqs
		}
	}
	name := "Hall"
	if level > 0 {
		name = "Landing"
	}
	hall := Request{
		Name:        name,
		Kind:        KindCirculation,
		Zone:        ZoneOf("", KindCirculation),
		Area:        circulationArea,
		Level:       level,
		Circulation: true,
	}
	return append([]Request{hall}, reqs...)
}

// orderByAffinity starts from the first circulation room (else the first
// room) and repeatedly appends the remaining room with the highest affinity
// to the last appended one. Ties keep input order.
func orderByAffinity(reqs []Request) []Request {
	if len(reqs) < 2 {
		return reqs
	}
	anchor := 0
	for i, r := range reqs {
		if r.Circulation {
			anchor = i
			break
		}
	}
	used := make([]bool, len(reqs))
	out := make([]Request, 0, len(reqs))
	out = append(out, reqs[anchor])
	used[anchor] = true
	for len(out) < len(reqs) {
		last := out[len(out)-1]
		best, bestScore := -1, 0
		for i, r := range reqs {
			if used[i] {
				continue
			}
			if s := Affinity(last.Kind, r.Kind); best < 0 || s > bestScore {
				best, bestScore = i, s
			}
		}
		out = append(out, reqs[best])
		used[best] = true
	}
	return out
}

// defaultProgram is the standard house program used when the program
// policy allows one and the brief has no rooms.
func defaultProgram(levels int) []brief.Room {
	room := func(name string, area float64, level int) brief.Room {
		return brief.Room{Name: name, Area: area, Level: brief.Int(level)}
	}
	if levels < 2 {
		return []brief.Room{
			room("Living Room", 18, 0),
			room("Kitchen", 12, 0),
			room("Dining", 10, 0),
			room("Bedroom", 11, 0),
			room("Bathroom", 5, 0),
		}
	}
	rooms := []brief.Room{
		room("Living Room", 18, 0),
		room("Kitchen", 12, 0),
		room("Dining", 10, 0),
		room("WC", 2, 0),
		room("Master Bedroom", 14, 1),
		room("En-Suite", 4, 1),
		room("Bedroom 2", 11, 1),
		room("Bathroom", 5, 1),
	}
	for l := 2; l < levels; l++ {
		rooms = append(rooms,
			room(fmt.Sprintf("Bedroom %d", l+1), 11, l),
			room(fmt.Sprintf("Shower Room %d", l), 4, l),
		)
	}
	return rooms
}

// programRooms returns the brief's rooms, or the default program when the
// policy allows it and the program is not locked.
func programRooms(b *brief.Brief, levels int, policy ProgramPolicy) ([]brief.Room, bool) {
	rooms := envelope.AllRooms(b)
	if len(rooms) > 0 {
		return rooms, false
	}
	if policy == PolicyDefaultProgram && !b.ProgramLocked {
		return defaultProgram(levels), true
	}
	return nil, false
}
