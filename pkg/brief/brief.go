// Package brief defines the read-only design brief consumed by the building
// pipeline.
//
// A brief is produced upstream (design intake) and describes the site, the
// room program, optional massing and optional "DNA" dimensions. Every
// numeric field may be missing, zero, negative or non-finite; [Brief.Sanitize]
// replaces such values with zero so downstream code can treat zero as "not
// provided". Lengths are meters and areas square meters, as the upstream
// tools emit them; the pipeline converts to millimeters.
//
// Briefs are decoded from JSON, TOML or YAML with [ReadFile] or [Decode].
package brief

// Brief is the complete input description of one design.
type Brief struct {
	ID            string   `json:"id,omitempty" toml:"id" yaml:"id,omitempty"`
	EntranceSide  string   `json:"entrance_side,omitempty" toml:"entrance_side" yaml:"entrance_side,omitempty"`
	ProgramLocked bool     `json:"program_locked,omitempty" toml:"program_locked" yaml:"program_locked,omitempty"`
	Site          *Site    `json:"site,omitempty" toml:"site" yaml:"site,omitempty"`
	Program       *Program `json:"program,omitempty" toml:"program" yaml:"program,omitempty"`
	Massing       *Massing `json:"massing,omitempty" toml:"massing" yaml:"massing,omitempty"`
	DNA           *DNA     `json:"dna,omitempty" toml:"dna" yaml:"dna,omitempty"`
	Rooms         []Room   `json:"rooms,omitempty" toml:"rooms" yaml:"rooms,omitempty"`
}

// Site describes the plot.
type Site struct {
	Area         float64  `json:"area,omitempty" toml:"area" yaml:"area,omitempty"`
	Polygon      []LatLng `json:"polygon,omitempty" toml:"polygon" yaml:"polygon,omitempty"`
	EntranceSide string   `json:"entrance_side,omitempty" toml:"entrance_side" yaml:"entrance_side,omitempty"`
}

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat" toml:"lat" yaml:"lat"`
	Lng float64 `json:"lng" toml:"lng" yaml:"lng"`
}

// Program is the room program.
type Program struct {
	TotalArea    float64   `json:"total_area,omitempty" toml:"total_area" yaml:"total_area,omitempty"`
	LevelCount   int       `json:"level_count,omitempty" toml:"level_count" yaml:"level_count,omitempty"`
	PerFloorArea float64   `json:"per_floor_area,omitempty" toml:"per_floor_area" yaml:"per_floor_area,omitempty"`
	FloorHeights []float64 `json:"floor_heights,omitempty" toml:"floor_heights" yaml:"floor_heights,omitempty"`
	Levels       []Level   `json:"levels,omitempty" toml:"levels" yaml:"levels,omitempty"`
	Rooms        []Room    `json:"rooms,omitempty" toml:"rooms" yaml:"rooms,omitempty"`
}

// Level is one entry of a per-level nested program.
type Level struct {
	Index       *int    `json:"index,omitempty" toml:"index" yaml:"index,omitempty"`
	FloorHeight float64 `json:"floor_height,omitempty" toml:"floor_height" yaml:"floor_height,omitempty"`
	Rooms       []Room  `json:"rooms,omitempty" toml:"rooms" yaml:"rooms,omitempty"`
}

// Massing carries explicit building dimensions.
type Massing struct {
	Width        float64   `json:"width,omitempty" toml:"width" yaml:"width,omitempty"`
	Depth        float64   `json:"depth,omitempty" toml:"depth" yaml:"depth,omitempty"`
	Floors       int       `json:"floors,omitempty" toml:"floors" yaml:"floors,omitempty"`
	FloorHeights []float64 `json:"floor_heights,omitempty" toml:"floor_heights" yaml:"floor_heights,omitempty"`
	Roof         *Roof     `json:"roof,omitempty" toml:"roof" yaml:"roof,omitempty"`
}

// DNA is the design "DNA" block. Its width maps to the model width and its
// length to the model depth.
type DNA struct {
	Dimensions   *Dimensions `json:"dimensions,omitempty" toml:"dimensions" yaml:"dimensions,omitempty"`
	FloorCount   int         `json:"floor_count,omitempty" toml:"floor_count" yaml:"floor_count,omitempty"`
	Roof         *Roof       `json:"roof,omitempty" toml:"roof" yaml:"roof,omitempty"`
	EntranceSide string      `json:"entrance_side,omitempty" toml:"entrance_side" yaml:"entrance_side,omitempty"`
}

// Dimensions are DNA building dimensions in meters.
type Dimensions struct {
	Width  float64 `json:"width,omitempty" toml:"width" yaml:"width,omitempty"`
	Length float64 `json:"length,omitempty" toml:"length" yaml:"length,omitempty"`
	Height float64 `json:"height,omitempty" toml:"height" yaml:"height,omitempty"`
}

// Roof describes the requested roof form.
type Roof struct {
	Type  string  `json:"type,omitempty" toml:"type" yaml:"type,omitempty"`
	Pitch float64 `json:"pitch,omitempty" toml:"pitch" yaml:"pitch,omitempty"`
}

// Room is one programmed room.
type Room struct {
	Name     string  `json:"name" toml:"name" yaml:"name"`
	Area     float64 `json:"area,omitempty" toml:"area" yaml:"area,omitempty"`
	Level    *int    `json:"level,omitempty" toml:"level" yaml:"level,omitempty"`
	ZoneType string  `json:"zone_type,omitempty" toml:"zone_type" yaml:"zone_type,omitempty"`
	Program  string  `json:"program,omitempty" toml:"program" yaml:"program,omitempty"`
}

// LevelIndex returns the tagged level, or 0 when untagged.
func (r Room) LevelIndex() int {
	if r.Level == nil {
		return 0
	}
	return *r.Level
}

// Tagged reports whether the room carries an explicit level.
func (r Room) Tagged() bool { return r.Level != nil }

// Int returns a pointer to v, for building briefs in code.
func Int(v int) *int { return &v }
