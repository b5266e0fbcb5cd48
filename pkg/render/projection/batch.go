package projection

import (
	"fmt"
	"time"

	"github.com/matzehuels/blueprint/pkg/model"
)

// FloorKey returns the batch key of floor i: ground, first, level2, level3...
func FloorKey(i int) string {
	switch i {
	case 0:
		return "ground"
	case 1:
		return "first"
	default:
		return fmt.Sprintf("level%d", i)
	}
}

// FloorAlias returns the older key of floor i: ground_floor, first_floor,
// floor_2, floor_3...
func FloorAlias(i int) string {
	switch i {
	case 0:
		return "ground_floor"
	case 1:
		return "first_floor"
	default:
		return fmt.Sprintf("floor_%d", i)
	}
}

// ParseFloorKey returns the floor index named by a key or alias, or by a
// plain index ("0", "1").
func ParseFloorKey(key string) (int, bool) {
	switch key {
	case "ground", "ground_floor":
		return 0, true
	case "first", "first_floor":
		return 1, true
	}
	var i int
	for _, format := range []string{"level%d", "floor_%d", "%d"} {
		if n, err := fmt.Sscanf(key, format, &i); err == nil && n == 1 && i >= 0 && fmt.Sprintf(format, i) == key {
			return i, true
		}
	}
	return 0, false
}

// Plans draws every floor. Each drawing is stored under both its key and
// its alias.
func Plans(m *model.Building, opts Options) map[string][]byte {
	out := map[string][]byte{}
	if m == nil {
		return out
	}
	for i := range m.Floors {
		doc := Plan(m, i, opts)
		out[FloorKey(i)] = doc
		out[FloorAlias(i)] = doc
	}
	return out
}

// Elevations draws all four facades.
func Elevations(m *model.Building, opts Options) map[model.Facade][]byte {
	out := make(map[model.Facade][]byte, len(model.Facades))
	for _, f := range model.Facades {
		out[f] = Elevation(m, f, opts)
	}
	return out
}

// Sections draws A-A and B-B.
func Sections(m *model.Building, opts Options) map[string][]byte {
	out := make(map[string][]byte, len(SectionNames))
	for _, s := range SectionNames {
		out[s] = Section(m, s, opts)
	}
	return out
}

// Metadata describes a drawing set. It is the only part of a set that
// varies between runs.
type Metadata struct {
	DesignID   string              `json:"design_id"`
	Timestamp  time.Time           `json:"timestamp"`
	FloorCount int                 `json:"floor_count"`
	Facades    model.FacadeSummary `json:"facades"`
}

// Set is every drawing of one model.
type Set struct {
	Plans      map[string][]byte       `json:"-"`
	Elevations map[model.Facade][]byte `json:"-"`
	Sections   map[string][]byte       `json:"-"`
	Metadata   Metadata                `json:"metadata"`
}

// All draws the complete set. now stamps the metadata only; drawings do
// not depend on it.
func All(m *model.Building, opts Options, now time.Time) Set {
	s := Set{
		Plans:      Plans(m, opts),
		Elevations: Elevations(m, opts),
		Sections:   Sections(m, opts),
		Metadata:   Metadata{Timestamp: now.UTC()},
	}
	if m != nil {
		s.Metadata.DesignID = m.ID
		s.Metadata.FloorCount = len(m.Floors)
		s.Metadata.Facades = m.Facades
	}
	return s
}

// Files returns the set as file names mapped to documents, with one entry
// per floor (aliases omitted): plan-ground.svg, elevation-N.svg,
// section-A-A.svg.
func (s Set) Files() map[string][]byte {
	out := map[string][]byte{}
	for i := 0; ; i++ {
		doc, ok := s.Plans[FloorKey(i)]
		if !ok {
			break
		}
		out["plan-"+FloorKey(i)+".svg"] = doc
	}
	for f, doc := range s.Elevations {
		out["elevation-"+string(f)+".svg"] = doc
	}
	for name, doc := range s.Sections {
		out["section-"+name+".svg"] = doc
	}
	return out
}
