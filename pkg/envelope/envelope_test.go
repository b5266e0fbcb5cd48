package envelope

import (
	"math"
	"testing"

	"github.com/matzehuels/blueprint/pkg/brief"
	"github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/model"
)

func TestBuildMissingBrief(t *testing.T) {
	_, err := Build(nil, Options{})
	if !errors.Is(err, errors.ErrCodeMissingBrief) {
		t.Fatalf("err = %v, want MISSING_BRIEF", err)
	}
}

func TestBuildPriority(t *testing.T) {
	tests := []struct {
		name   string
		brief  *brief.Brief
		source Source
		width  int
		depth  int
	}{
		{
			name:   "massing",
			brief:  &brief.Brief{Massing: &brief.Massing{Width: 10, Depth: 8}},
			source: SourceMassing, width: 10000, depth: 8000,
		},
		{
			name: "massing too small falls through to dna",
			brief: &brief.Brief{
				Massing: &brief.Massing{Width: 0.5, Depth: 8},
				DNA:     &brief.DNA{Dimensions: &brief.Dimensions{Width: 12, Length: 9}},
			},
			source: SourceDNA, width: 12000, depth: 9000,
		},
		{
			name:   "per floor area with golden ratio",
			brief:  &brief.Brief{Program: &brief.Program{PerFloorArea: 100}},
			source: SourceFallback,
			width:  12720, depth: 7862,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Build(tt.brief, Options{})
			if err != nil {
				t.Fatal(err)
			}
			if res.Source != tt.source {
				t.Errorf("Source = %v, want %v", res.Source, tt.source)
			}
			e := res.Envelope
			if abs(e.Width-tt.width) > 2 || abs(e.Depth-tt.depth) > 2 {
				t.Errorf("size = %dx%d, want %dx%d", e.Width, e.Depth, tt.width, tt.depth)
			}
		})
	}
}

func TestBuildEnvelopeInvariants(t *testing.T) {
	b := &brief.Brief{
		Massing: &brief.Massing{Width: 10, Depth: 8, Floors: 3, FloorHeights: []float64{3.2}},
	}
	res, err := Build(b, Options{})
	if err != nil {
		t.Fatal(err)
	}
	e := res.Envelope

	if e.Footprint.Area() <= 0 {
		t.Fatal("footprint has no area")
	}
	bounds := e.Bounds()
	if bounds.Min.X != -5000 || bounds.Max.Y != 4000 {
		t.Errorf("footprint not centered: %+v", bounds)
	}

	want := []int{3200, UpperFloorHeight, UpperFloorHeight}
	sum := 0
	for i, h := range e.FloorHeights {
		if h != want[i] {
			t.Errorf("FloorHeights[%d] = %d, want %d", i, h, want[i])
		}
		sum += h
	}
	if e.Height != sum {
		t.Errorf("Height = %d, want Σ floor heights %d", e.Height, sum)
	}
	if e.EntranceSide != model.South {
		t.Errorf("EntranceSide = %v, want S", e.EntranceSide)
	}
}

func TestFootprintArea(t *testing.T) {
	tests := []struct {
		name   string
		brief  *brief.Brief
		levels int
		want   float64
	}{
		{"per floor hint", &brief.Brief{Program: &brief.Program{PerFloorArea: 90, TotalArea: 500}}, 2, 90},
		{"site coverage binds", &brief.Brief{Site: &brief.Site{Area: 100}, Program: &brief.Program{TotalArea: 200}}, 1, 55},
		{"program binds", &brief.Brief{Site: &brief.Site{Area: 1000}, Program: &brief.Program{TotalArea: 200}}, 2, 100},
		{"total over levels", &brief.Brief{Program: &brief.Program{TotalArea: 240}}, 2, 120},
		{"rooms grossed up", &brief.Brief{Rooms: []brief.Room{{Name: "a", Area: 50}, {Name: "b", Area: 50}}}, 1, 120},
		{"nothing known", &brief.Brief{}, 1, defaultFloorM2},
		{"tiny floor clamps", &brief.Brief{Program: &brief.Program{TotalArea: 5}}, 1, minFootprintM2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FootprintArea(tt.brief, tt.levels); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("FootprintArea = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSiteAspect(t *testing.T) {
	square := []brief.LatLng{{Lat: 52, Lng: 0}, {Lat: 52.001, Lng: 0}, {Lat: 52.001, Lng: 0.001}}
	got := SiteAspect(&brief.Brief{Site: &brief.Site{Polygon: square}})
	want := 111320 * math.Cos(52*math.Pi/180) / 110540
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("SiteAspect = %v, want %v", got, want)
	}

	wide := []brief.LatLng{{Lat: 52, Lng: 0}, {Lat: 52.0001, Lng: 0}, {Lat: 52.0001, Lng: 0.01}}
	if got := SiteAspect(&brief.Brief{Site: &brief.Site{Polygon: wide}}); got != 2.0 {
		t.Errorf("wide site aspect = %v, want clamp 2.0", got)
	}

	if got := SiteAspect(&brief.Brief{}); got != goldenRatio {
		t.Errorf("no site aspect = %v, want %v", got, goldenRatio)
	}
}

func TestLevelCount(t *testing.T) {
	tests := []struct {
		name  string
		brief *brief.Brief
		want  int
	}{
		{"program", &brief.Brief{Program: &brief.Program{LevelCount: 3}, Massing: &brief.Massing{Floors: 2}}, 3},
		{"massing", &brief.Brief{Massing: &brief.Massing{Floors: 2}, DNA: &brief.DNA{FloorCount: 4}}, 2},
		{"dna", &brief.Brief{DNA: &brief.DNA{FloorCount: 4}}, 4},
		{"room tags", &brief.Brief{Rooms: []brief.Room{{Name: "a", Level: brief.Int(2)}}}, 3},
		{"nested levels", &brief.Brief{Program: &brief.Program{Levels: []brief.Level{
			{Rooms: []brief.Room{{Name: "a"}}}, {Rooms: []brief.Room{{Name: "b"}}},
		}}}, 2},
		{"default", &brief.Brief{}, 1},
		{"clamped", &brief.Brief{Program: &brief.Program{LevelCount: 99}}, MaxLevels},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelCount(tt.brief); got != tt.want {
				t.Errorf("LevelCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEntranceSide(t *testing.T) {
	tests := []struct {
		brief *brief.Brief
		want  model.Facade
	}{
		{&brief.Brief{EntranceSide: "east"}, model.East},
		{&brief.Brief{EntranceSide: "??", Site: &brief.Site{EntranceSide: "n"}}, model.North},
		{&brief.Brief{DNA: &brief.DNA{EntranceSide: "W"}}, model.West},
		{&brief.Brief{}, model.South},
	}
	for _, tt := range tests {
		if got := EntranceSide(tt.brief); got != tt.want {
			t.Errorf("EntranceSide(%+v) = %v, want %v", tt.brief, got, tt.want)
		}
	}
}

func TestFloorHeightsClamped(t *testing.T) {
	idx := 1
	b := &brief.Brief{Program: &brief.Program{Levels: []brief.Level{
		{FloorHeight: 12},
		{Index: &idx, FloorHeight: 1},
	}}}
	got := FloorHeights(b, 2)
	if got[0] != MaxFloorHeight || got[1] != MinFloorHeight {
		t.Errorf("FloorHeights = %v", got)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
