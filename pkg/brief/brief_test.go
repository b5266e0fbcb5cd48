package brief

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/blueprint/pkg/errors"
)

const jsonBrief = `{
  "id": "house-01",
  "entrance_side": "s",
  "massing": {"width": 10, "depth": 8, "floors": 2},
  "rooms": [
    {"name": "Kitchen", "area": 12, "level": 0},
    {"name": "Bedroom", "area": 11, "level": 1}
  ]
}`

const tomlBrief = `
id = "house-01"
entrance_side = "s"

[massing]
width = 10.0
depth = 8.0
floors = 2

[[rooms]]
name = "Kitchen"
area = 12.0
level = 0

[[rooms]]
name = "Bedroom"
area = 11.0
level = 1
`

const yamlBrief = `
id: house-01
entrance_side: s
massing:
  width: 10
  depth: 8
  floors: 2
rooms:
  - name: Kitchen
    area: 12
    level: 0
  - name: Bedroom
    area: 11
    level: 1
`

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		format string
		input  string
	}{
		{FormatJSON, jsonBrief},
		{FormatTOML, tomlBrief},
		{FormatYAML, yamlBrief},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			b, err := Decode(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if b.ID != "house-01" {
				t.Errorf("ID = %q", b.ID)
			}
			if b.Massing == nil || b.Massing.Width != 10 || b.Massing.Depth != 8 || b.Massing.Floors != 2 {
				t.Errorf("Massing = %+v", b.Massing)
			}
			if len(b.Rooms) != 2 {
				t.Fatalf("len(Rooms) = %d, want 2", len(b.Rooms))
			}
			if !b.Rooms[1].Tagged() || b.Rooms[1].LevelIndex() != 1 {
				t.Errorf("Rooms[1].Level = %v, want 1", b.Rooms[1].Level)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(strings.NewReader("{}"), "xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format: err = %v, want INVALID_FORMAT", err)
	}
	if _, err := Decode(strings.NewReader("{"), FormatJSON); !errors.Is(err, errors.ErrCodeInvalidBrief) {
		t.Errorf("malformed json: err = %v, want INVALID_BRIEF", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.yml")
	if err := os.WriteFile(path, []byte(yamlBrief), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if b.EntranceSide != "s" {
		t.Errorf("EntranceSide = %q", b.EntranceSide)
	}

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"a.json": FormatJSON,
		"a.TOML": FormatTOML,
		"a.yaml": FormatYAML,
		"a.yml":  FormatYAML,
		"a":      FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSanitize(t *testing.T) {
	b := &Brief{
		Site: &Site{
			Area:    math.Inf(1),
			Polygon: []LatLng{{Lat: 52, Lng: 0}, {Lat: math.NaN(), Lng: 1}, {Lat: 91, Lng: 0}},
		},
		Program: &Program{
			TotalArea:  -5,
			LevelCount: -2,
			Levels:     []Level{{Index: Int(-1), FloorHeight: math.NaN()}},
		},
		Massing: &Massing{Width: math.NaN(), Depth: 8, FloorHeights: []float64{3, math.Inf(-1)}},
		DNA:     &DNA{Dimensions: &Dimensions{Width: -1, Length: 9}, Roof: &Roof{Pitch: math.NaN()}},
		Rooms:   []Room{{Name: "Kitchen", Area: math.NaN(), Level: Int(-3)}},
	}

	s := b.Sanitize()

	if s == b {
		t.Fatal("Sanitize returned the receiver")
	}
	if s.Site.Area != 0 || len(s.Site.Polygon) != 1 {
		t.Errorf("Site = %+v", s.Site)
	}
	if s.Program.TotalArea != 0 || s.Program.LevelCount != 0 {
		t.Errorf("Program = %+v", s.Program)
	}
	if *s.Program.Levels[0].Index != 0 || s.Program.Levels[0].FloorHeight != 0 {
		t.Errorf("Levels[0] = %+v", s.Program.Levels[0])
	}
	if s.Massing.Width != 0 || s.Massing.Depth != 8 || s.Massing.FloorHeights[1] != 0 {
		t.Errorf("Massing = %+v", s.Massing)
	}
	if s.DNA.Dimensions.Width != 0 || s.DNA.Dimensions.Length != 9 || s.DNA.Roof.Pitch != 0 {
		t.Errorf("DNA = %+v", s.DNA)
	}
	if s.Rooms[0].Area != 0 || s.Rooms[0].LevelIndex() != 0 {
		t.Errorf("Rooms[0] = %+v", s.Rooms[0])
	}

	// The input is untouched.
	if !math.IsNaN(b.Massing.Width) || *b.Rooms[0].Level != -3 {
		t.Error("Sanitize mutated its input")
	}

	var nilBrief *Brief
	if nilBrief.Sanitize() != nil {
		t.Error("nil.Sanitize() != nil")
	}
}
