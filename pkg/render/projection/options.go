package projection

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blueprint/pkg/styles"
)

// DefaultScale is the default drawing scale in pixels per meter.
const DefaultScale = 50.0

// Options configures every drawing. Width and Height are minimum canvas
// sizes in pixels; the canvas grows to fit its content.
type Options struct {
	Scale            float64 `json:"scale" toml:"scale"`
	ShowDimensions   bool    `json:"show_dimensions" toml:"show_dimensions"`
	ShowRoomLabels   bool    `json:"show_room_labels" toml:"show_room_labels"`
	ShowFurniture    bool    `json:"show_furniture" toml:"show_furniture"`
	ShowWallHatch    bool    `json:"show_wall_hatch" toml:"show_wall_hatch"`
	Width            float64 `json:"width" toml:"width"`
	Height           float64 `json:"height" toml:"height"`
	Theme            string  `json:"theme" toml:"theme"`
	ShowGround       bool    `json:"show_ground" toml:"show_ground"`
	ShowRoof         bool    `json:"show_roof" toml:"show_roof"`
	ShowLevelMarkers bool    `json:"show_level_markers" toml:"show_level_markers"`
	ShowFoundation   bool    `json:"show_foundation" toml:"show_foundation"`
}

// DefaultOptions returns the standard drawing options: everything shown
// except furniture.
func DefaultOptions() Options {
	return Options{
		Scale:            DefaultScale,
		ShowDimensions:   true,
		ShowRoomLabels:   true,
		ShowWallHatch:    true,
		Theme:            styles.DefaultTheme,
		ShowGround:       true,
		ShowRoof:         true,
		ShowLevelMarkers: true,
		ShowFoundation:   true,
	}
}

// LoadOptions reads drawing options from a TOML file. Keys missing from the
// file keep their DefaultOptions values.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), &opts); err != nil {
		return opts, fmt.Errorf("decode %s: %w", path, err)
	}
	return opts, nil
}

func (o Options) theme() styles.Theme {
	t, _ := styles.Lookup(o.Theme)
	return t
}

// pxPerMM returns the scale in pixels per millimeter.
func (o Options) pxPerMM() float64 {
	s := o.Scale
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		s = DefaultScale
	}
	return s / 1000
}
