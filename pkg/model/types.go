package model

import (
	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/styles"
)

// Envelope is the outer building volume.
type Envelope struct {
	Width        int          `json:"width"`
	Depth        int          `json:"depth"`
	Height       int          `json:"height"`
	Footprint    geom.Polygon `json:"footprint"`
	FloorHeights []int        `json:"floor_heights"`
	EntranceSide Facade       `json:"entrance_side"`
}

// Bounds returns the footprint bounding box.
func (e Envelope) Bounds() geom.Rect { return e.Footprint.Bounds() }

// Buildable returns the footprint inset by the external wall thickness, the
// area rooms may occupy.
func (e Envelope) Buildable() geom.Rect {
	return e.Bounds().Inset(styles.ExternalWallThickness)
}

// FacadeWidth returns the in-plane width of a facade.
func (e Envelope) FacadeWidth(f Facade) int {
	if f == East || f == West {
		return e.Depth
	}
	return e.Width
}

// ZoneType groups rooms for spatial layout.
type ZoneType string

const (
	ZonePublic  ZoneType = "public"
	ZonePrivate ZoneType = "private"
	ZoneService ZoneType = "service"
)

// Room is one placed room.
type Room struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Kind        string       `json:"kind"`
	Zone        ZoneType     `json:"zone"`
	Polygon     geom.Polygon `json:"polygon"`
	Bounds      geom.Rect    `json:"bounds"`
	Area        float64      `json:"area"`        // computed, m²
	TargetArea  float64      `json:"target_area"` // requested, m²
	Circulation bool         `json:"circulation,omitempty"`
}

// WallType distinguishes envelope walls from partitions.
type WallType string

const (
	WallExternal WallType = "external"
	WallInternal WallType = "internal"
)

// Wall is a straight wall segment along its centerline.
type Wall struct {
	ID            string     `json:"id"`
	Start         geom.Point `json:"start"`
	End           geom.Point `json:"end"`
	Thickness     int        `json:"thickness"`
	Type          WallType   `json:"type"`
	Facade        Facade     `json:"facade,omitempty"`
	ConnectsRooms []string   `json:"connects_rooms,omitempty"`
}

// Length returns the wall length in millimeters.
func (w Wall) Length() int { return geom.Round(w.Start.Dist(w.End)) }

// At returns the point at fraction t from Start to End.
func (w Wall) At(t float64) geom.Point { return geom.Lerp(w.Start, w.End, t) }

// Connects reports whether the wall separates rooms a and b.
func (w Wall) Connects(a, b string) bool {
	if len(w.ConnectsRooms) != 2 {
		return false
	}
	x, y := w.ConnectsRooms[0], w.ConnectsRooms[1]
	return (x == a && y == b) || (x == b && y == a)
}

// OpeningType distinguishes windows from doors.
type OpeningType string

const (
	OpeningWindow OpeningType = "window"
	OpeningDoor   OpeningType = "door"
)

// Opening kinds.
const (
	KindWindow    = "window"
	KindEntrance  = "entrance"
	KindPatio     = "patio"
	KindInternal  = "internal"
	KindConnector = "connector"
)

// Opening is a window or door placed in a wall.
type Opening struct {
	ID         string      `json:"id"`
	WallID     string      `json:"wall_id"`
	Type       OpeningType `json:"type"`
	Kind       string      `json:"kind,omitempty"`
	Position   Position    `json:"position"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	SillHeight int         `json:"sill_height"`
	Facade     Facade      `json:"facade,omitempty"`
}

// RoofType names the roof form.
type RoofType string

const (
	RoofFlat  RoofType = "flat"
	RoofGable RoofType = "gable"
	RoofHip   RoofType = "hip"
)

// Ridge orientations.
const (
	RidgeNS = "N-S"
	RidgeEW = "E-W"
)

// Roof holds the roof form and its per-facade outline. Each profile is a
// polyline of (u, z) points: u along the facade as seen from outside, z the
// elevation above ground, both in millimeters.
type Roof struct {
	Type        RoofType                `json:"type"`
	Pitch       float64                 `json:"pitch"`
	RidgeHeight int                     `json:"ridge_height"`
	Ridge       string                  `json:"ridge"`
	Profiles    map[Facade][]geom.Point `json:"profiles"`
}

// Stair kinds.
const (
	StairStraight = "straight"
	StairUShape   = "u-shape"
)

// Stair is the vertical circulation core.
type Stair struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	Position       geom.Point `json:"position"`
	Bounds         geom.Rect  `json:"bounds"`
	Width          int        `json:"width"`
	Length         int        `json:"length"`
	Up             Facade     `json:"up"`
	Risers         int        `json:"risers"`
	ConnectsFloors []int      `json:"connects_floors"`
}

// Floor is one storey.
type Floor struct {
	Index       int       `json:"index"`
	ZBase       int       `json:"z_base"`
	ZTop        int       `json:"z_top"`
	FloorHeight int       `json:"floor_height"`
	Rooms       []Room    `json:"rooms"`
	Walls       []Wall    `json:"walls"`
	Openings    []Opening `json:"openings"`
}

// Wall returns the wall with the given id.
func (f *Floor) Wall(id string) (Wall, bool) {
	for _, w := range f.Walls {
		if w.ID == id {
			return w, true
		}
	}
	return Wall{}, false
}

// Room returns the room with the given id.
func (f *Floor) Room(id string) (Room, bool) {
	for _, r := range f.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

// FacadeCount is the opening tally of one facade.
type FacadeCount struct {
	Windows int `json:"windows"`
	Doors   int `json:"doors"`
}

// FacadeSummary maps each facade to its opening tally.
type FacadeSummary map[Facade]FacadeCount

// SummarizeFacades counts external openings per facade across all floors.
func SummarizeFacades(floors []Floor) FacadeSummary {
	s := FacadeSummary{}
	for _, f := range Facades {
		s[f] = FacadeCount{}
	}
	for _, fl := range floors {
		for _, o := range fl.Openings {
			if o.Facade == "" {
				continue
			}
			c := s[o.Facade]
			if o.Type == OpeningDoor {
				c.Doors++
			} else {
				c.Windows++
			}
			s[o.Facade] = c
		}
	}
	return s
}

// RoomBehind returns the room just inside an opening in an external wall,
// found one wall thickness inward from the opening center.
func (f *Floor) RoomBehind(o Opening) (Room, bool) {
	w, ok := f.Wall(o.WallID)
	if !ok || w.Type != WallExternal || w.Length() == 0 {
		return Room{}, false
	}
	inward := w.Facade.Normal().Scale(-float64(w.Thickness + 1))
	p := w.At(PositionAt(o.Position.Ratio, w.Length()).Ratio).Offset(inward)
	for _, r := range f.Rooms {
		if r.Bounds.ContainsPoint(p) {
			return r, true
		}
	}
	return Room{}, false
}
