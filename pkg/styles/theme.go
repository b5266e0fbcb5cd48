package styles

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultTheme is the theme used when none is requested.
const DefaultTheme = "technical"

// Palette holds the colors used by a theme.
type Palette struct {
	Background  string
	Sky         string
	Ground      string
	Earth       string
	RoomFill    string
	Circulation string
	Wall        string
	Poche       string
	Window      string
	Glass       string
	Door        string
	Stair       string
	Roof        string
	Slab        string
	Text        string
	Dimension   string
	Accent      string
}

// LineWeights holds stroke widths in pixels.
type LineWeights struct {
	Cut       float64 // cut walls and slabs
	Outline   float64 // visible edges beyond the cut
	Thin      float64 // openings, stairs, furniture
	Hairline  float64 // hatching, treads
	Dimension float64 // dimension and leader lines
}

// Theme is a named drawing preset.
type Theme struct {
	Name    string
	Palette Palette
	Weights LineWeights
}

var themes = map[string]Theme{
	"technical": {
		Name: "technical",
		Palette: Palette{
			Background: "#ffffff", Sky: "#eef4f8", Ground: "#d9d2c5", Earth: "#8c7b65",
			RoomFill: "#fbfbf8", Circulation: "#eef1f6", Wall: "#1a1a1a", Poche: "#3a3a3a",
			Window: "#1a1a1a", Glass: "#7fb2d9", Door: "#1a1a1a", Stair: "#404040",
			Roof: "#5b5b5b", Slab: "#6e6e6e", Text: "#1a1a1a", Dimension: "#505050", Accent: "#c0392b",
		},
		Weights: LineWeights{Cut: 2.0, Outline: 1.2, Thin: 0.8, Hairline: 0.4, Dimension: 0.6},
	},
	"blueprint": {
		Name: "blueprint",
		Palette: Palette{
			Background: "#12355b", Sky: "#163f6b", Ground: "#0f2e4f", Earth: "#9fb7d1",
			RoomFill: "#154170", Circulation: "#1a4d82", Wall: "#ffffff", Poche: "#dce8f5",
			Window: "#ffffff", Glass: "#9fd0ff", Door: "#ffffff", Stair: "#e6eef8",
			Roof: "#dce8f5", Slab: "#c9d9ea", Text: "#ffffff", Dimension: "#c9d9ea", Accent: "#ffd166",
		},
		Weights: LineWeights{Cut: 1.8, Outline: 1.1, Thin: 0.8, Hairline: 0.4, Dimension: 0.6},
	},
	"monochrome": {
		Name: "monochrome",
		Palette: Palette{
			Background: "#ffffff", Sky: "#ffffff", Ground: "#e0e0e0", Earth: "#000000",
			RoomFill: "#ffffff", Circulation: "#f2f2f2", Wall: "#000000", Poche: "#000000",
			Window: "#000000", Glass: "#9a9a9a", Door: "#000000", Stair: "#000000",
			Roof: "#000000", Slab: "#000000", Text: "#000000", Dimension: "#000000", Accent: "#000000",
		},
		Weights: LineWeights{Cut: 2.4, Outline: 1.2, Thin: 0.7, Hairline: 0.35, Dimension: 0.5},
	},
	"sketch": {
		Name: "sketch",
		Palette: Palette{
			Background: "#fbf6ec", Sky: "#f4efe3", Ground: "#e3d7bf", Earth: "#8a6f4e",
			RoomFill: "#fffaf0", Circulation: "#f3ead8", Wall: "#3b2f2f", Poche: "#5c4a3d",
			Window: "#3b2f2f", Glass: "#a9c5c9", Door: "#3b2f2f", Stair: "#5c4a3d",
			Roof: "#7a4b3a", Slab: "#6b5a4a", Text: "#3b2f2f", Dimension: "#6b5a4a", Accent: "#b5523b",
		},
		Weights: LineWeights{Cut: 2.2, Outline: 1.3, Thin: 0.9, Hairline: 0.45, Dimension: 0.6},
	},
}

// Lookup returns the named theme. Names are case-insensitive; unknown or
// empty names return the default theme and false.
func Lookup(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return themes[DefaultTheme], false
	}
	return t, true
}

// Default returns the default theme.
func Default() Theme { return themes[DefaultTheme] }

// Names returns the registered theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// CSS returns the embedded stylesheet for the theme. Class names are shared
// by every drawing type.
func (t Theme) CSS() string {
	p, w := t.Palette, t.Weights
	var b strings.Builder
	rule := func(sel, body string, args ...any) {
		fmt.Fprintf(&b, "    %s { %s }\n", sel, fmt.Sprintf(body, args...))
	}
	rule(".background", "fill: %s;", p.Background)
	rule(".sky", "fill: %s;", p.Sky)
	rule(".ground", "fill: %s; stroke: %s; stroke-width: %.2f;", p.Ground, p.Wall, w.Cut)
	rule(".earth", "fill: url(#hatch-earth); stroke: none;")
	rule(".room", "fill: %s; stroke: none;", p.RoomFill)
	rule(".room.circulation", "fill: %s;", p.Circulation)
	rule(".wall-ext", "fill: %s; stroke: %s; stroke-width: %.2f; fill-rule: evenodd;", p.Poche, p.Wall, w.Cut)
	rule(".wall-ext.hatched", "fill: url(#hatch-poche);")
	rule(".wall-int", "fill: %s; stroke: %s; stroke-width: %.2f;", p.Poche, p.Wall, w.Outline)
	rule(".window", "fill: %s; stroke: %s; stroke-width: %.2f;", p.Background, p.Window, w.Thin)
	rule(".glass", "fill: %s; stroke: %s; stroke-width: %.2f;", p.Glass, p.Window, w.Hairline)
	rule(".door", "fill: none; stroke: %s; stroke-width: %.2f;", p.Door, w.Thin)
	rule(".door-gap", "fill: %s; stroke: none;", p.RoomFill)
	rule(".swing", "fill: none; stroke: %s; stroke-width: %.2f; stroke-dasharray: 4,3;", p.Door, w.Hairline)
	rule(".stair", "fill: none; stroke: %s; stroke-width: %.2f;", p.Stair, w.Thin)
	rule(".tread", "stroke: %s; stroke-width: %.2f;", p.Stair, w.Hairline)
	rule(".furniture", "fill: none; stroke: %s; stroke-width: %.2f;", p.Dimension, w.Hairline)
	rule(".envelope", "fill: %s; stroke: %s; stroke-width: %.2f;", p.RoomFill, p.Wall, w.Outline)
	rule(".roof", "fill: %s; fill-opacity: 0.35; stroke: %s; stroke-width: %.2f;", p.Roof, p.Roof, w.Outline)
	rule(".slab", "fill: url(#hatch-poche); stroke: %s; stroke-width: %.2f;", p.Slab, w.Cut)
	rule(".cut-wall", "fill: url(#hatch-poche); stroke: %s; stroke-width: %.2f;", p.Wall, w.Cut)
	rule(".foundation", "fill: url(#hatch-earth); stroke: %s; stroke-width: %.2f;", p.Wall, w.Outline)
	rule(".dim", "fill: none; stroke: %s; stroke-width: %.2f;", p.Dimension, w.Dimension)
	rule(".level", "fill: none; stroke: %s; stroke-width: %.2f; stroke-dasharray: 6,4;", p.Dimension, w.Dimension)
	rule(".arrow", "fill: %s; stroke: %s; stroke-width: %.2f;", p.Text, p.Text, w.Thin)
	rule(".accent", "fill: %s; stroke: none;", p.Accent)
	rule("text", "fill: %s; font-family: 'Helvetica Neue', Arial, sans-serif;", p.Text)
	rule(".label", "font-size: %.0fpx; text-anchor: middle;", Symbols.LabelFont)
	rule(".label-small", "font-size: %.0fpx; text-anchor: middle;", Symbols.SmallFont)
	rule(".small", "font-size: %.0fpx;", Symbols.SmallFont)
	rule(".title", "font-size: %.0fpx; font-weight: bold;", Symbols.TitleFont)
	return b.String()
}

// HatchColors returns the stroke colors of the poché and earth hatches.
func (t Theme) HatchColors() (poche, earth string) {
	return t.Palette.Poche, t.Palette.Earth
}
