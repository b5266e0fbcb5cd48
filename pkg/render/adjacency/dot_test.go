package adjacency

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/model"
)

// sampleFloor is a hall entered from the south, a kitchen behind a door and
// a dining room sharing a plain wall with the kitchen.
func sampleFloor() *model.Floor {
	return &model.Floor{
		Index: 0,
		Rooms: []model.Room{
			{ID: "H", Name: "Hall", Kind: "circulation", Zone: model.ZonePublic, Circulation: true,
				Bounds: geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(3000, 4000)}, Area: 12},
			{ID: "K", Name: "Kitchen", Kind: "kitchen", Zone: model.ZoneService,
				Bounds: geom.Rect{Min: geom.Pt(3000, 0), Max: geom.Pt(7000, 4000)}, Area: 16},
			{ID: "D", Name: "Dining", Kind: "dining", Zone: model.ZonePublic,
				Bounds: geom.Rect{Min: geom.Pt(3000, 4000), Max: geom.Pt(7000, 8000)}, Area: 16},
		},
		Walls: []model.Wall{
			{ID: "F0-EXT-S", Start: geom.Pt(-300, -300), End: geom.Pt(7300, -300), Thickness: 300,
				Type: model.WallExternal, Facade: model.South},
			{ID: "F0-INT-1", Start: geom.Pt(3000, 0), End: geom.Pt(3000, 4000), Thickness: 100,
				Type: model.WallInternal, ConnectsRooms: []string{"H", "K"}},
			{ID: "F0-INT-2", Start: geom.Pt(3000, 4000), End: geom.Pt(7000, 4000), Thickness: 100,
				Type: model.WallInternal, ConnectsRooms: []string{"K", "D"}},
		},
		Openings: []model.Opening{
			{ID: "D1", WallID: "F0-EXT-S", Type: model.OpeningDoor, Kind: model.KindEntrance,
				Position: model.PositionAt(0.25, 7600), Width: 1000, Height: 2100, Facade: model.South},
			{ID: "D2", WallID: "F0-INT-1", Type: model.OpeningDoor, Kind: model.KindInternal,
				Position: model.PositionAt(0.5, 4000), Width: 900, Height: 2100},
			{ID: "W1", WallID: "F0-EXT-S", Type: model.OpeningWindow, Kind: model.KindWindow,
				Position: model.PositionAt(0.7, 7600), Width: 1200, Height: 1200, SillHeight: 900, Facade: model.South},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleFloor(), Options{})

	for _, want := range []string{
		`graph "floor0" {`,
		`"H" [label="Hall\n12.0 m²", fillcolor="#eef1f6", shape=box`,
		`"K" [label="Kitchen\n16.0 m²", fillcolor="#e3e3e3"]`,
		`"D" [label="Dining\n16.0 m²", fillcolor="#fde9c9"]`,
		`"H" -- "K" [style=solid];`,
		`"K" -- "D" [style=dashed];`,
		`"outside" -- "H" [style=bold];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() should produce an undirected graph")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(sampleFloor(), Options{Detailed: true})
	if !strings.Contains(dot, `kind: kitchen\nzone: service`) {
		t.Errorf("ToDOT() detailed output missing kind and zone:\n%s", dot)
	}
}

func TestToDOT_NoEntrance(t *testing.T) {
	fl := sampleFloor()
	fl.Openings = fl.Openings[1:]
	if dot := ToDOT(fl, Options{}); strings.Contains(dot, OutsideNode) {
		t.Errorf("ToDOT() added an outside node without an external door:\n%s", dot)
	}
}

func TestToDOT_Nil(t *testing.T) {
	dot := ToDOT(nil, Options{})
	if !strings.HasPrefix(dot, `graph "floor" {`) || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT(nil) = %q", dot)
	}
}

func TestFmtAttrs(t *testing.T) {
	tests := []struct {
		name string
		room model.Room
		want int
	}{
		{"zoned", model.Room{Zone: model.ZonePrivate}, 2},
		{"unzoned", model.Room{}, 1},
		{"circulation", model.Room{Zone: model.ZonePublic, Circulation: true}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtAttrs(tt.room, "x"); len(got) != tt.want {
				t.Errorf("fmtAttrs() = %v, want %d attrs", got, tt.want)
			}
		})
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeViewBox([]byte(tt.svg)); string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleFloor(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "Kitchen") {
		t.Error("RenderSVG() output missing the diagram")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
