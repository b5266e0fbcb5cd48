// Package envelope resolves the building envelope from a brief.
//
// Dimensions come from the first source that provides them:
//
//  1. explicit massing width and depth (both above 1 m)
//  2. DNA dimensions (DNA width is the model width, DNA length the depth)
//  3. a footprint area derived from the program, shaped by the site
//     polygon aspect ratio or the golden ratio
//
// Invalid numbers never fail the build; they fall through to the next
// source or are clamped. The only error is a nil brief.
package envelope

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blueprint/pkg/brief"
	"github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/model"
)

// Floor height defaults and limits in millimeters.
const (
	GroundFloorHeight = 3000
	UpperFloorHeight  = 2800
	MinFloorHeight    = 2000
	MaxFloorHeight    = 6000
)

// Dimension limits in millimeters.
const (
	MinDimension = 1000
	MaxDimension = 200000
)

// MaxLevels bounds the number of floors.
const MaxLevels = 20

const (
	goldenRatio      = 1.618
	siteCoverage     = 0.55
	grossingFactor   = 1.2  // room areas to gross floor area
	defaultFloorM2   = 80.0 // used when the brief has no area at all
	minFootprintM2   = 20.0
	projectionLatDeg = 52.0
	metersPerDegLat  = 110540.0
	metersPerDegLng  = 111320.0
)

// Source names where the envelope dimensions came from.
type Source string

const (
	SourceMassing  Source = "massing"
	SourceDNA      Source = "dna"
	SourceFallback Source = "fallback"
)

// Options configures Build.
type Options struct {
	Logger *log.Logger
}

// Result is the resolved envelope plus how it was resolved.
type Result struct {
	Envelope model.Envelope
	Levels   int
	Source   Source
	Aspect   float64 // width / depth
}

// Build resolves the envelope of b. A nil brief is the only error.
func Build(b *brief.Brief, opts Options) (Result, error) {
	if b == nil {
		return Result{}, errors.New(errors.ErrCodeMissingBrief, "no brief provided")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	levels := LevelCount(b)
	width, depth, src := dimensions(b, levels, logger)
	width = clampDim(width)
	depth = clampDim(depth)

	heights := FloorHeights(b, levels)
	height := 0
	for _, h := range heights {
		height += h
	}

	minX, minY := -width/2, -depth/2
	fp := geom.RectXYWH(minX, minY, width, depth).Polygon()

	res := Result{
		Envelope: model.Envelope{
			Width:        width,
			Depth:        depth,
			Height:       height,
			Footprint:    fp,
			FloorHeights: heights,
			EntranceSide: EntranceSide(b),
		},
		Levels: levels,
		Source: src,
		Aspect: float64(width) / float64(depth),
	}
	logger.Debug("resolved envelope",
		"source", src,
		"width", width,
		"depth", depth,
		"height", height,
		"levels", levels,
		"entrance", res.Envelope.EntranceSide)
	return res, nil
}

func dimensions(b *brief.Brief, levels int, logger *log.Logger) (w, d int, src Source) {
	if m := b.Massing; m != nil && m.Width > 1 && m.Depth > 1 {
		return geom.FromMeters(m.Width), geom.FromMeters(m.Depth), SourceMassing
	}
	if b.DNA != nil && b.DNA.Dimensions != nil {
		dim := b.DNA.Dimensions
		if dim.Width > 1 && dim.Length > 1 {
			return geom.FromMeters(dim.Width), geom.FromMeters(dim.Length), SourceDNA
		}
	}

	area := FootprintArea(b, levels)
	ratio := SiteAspect(b)
	wm := math.Sqrt(area * ratio)
	dm := area / wm
	logger.Debug("envelope from footprint area", "area_m2", area, "aspect", ratio)
	return geom.FromMeters(wm), geom.FromMeters(dm), SourceFallback
}

// FootprintArea returns the target footprint area in square meters:
// the per-floor hint, else the site-coverage-constrained share of the total
// program, else total/levels.
func FootprintArea(b *brief.Brief, levels int) float64 {
	levels = max(levels, 1)
	if p := b.Program; p != nil && p.PerFloorArea > 0 {
		return math.Max(p.PerFloorArea, minFootprintM2)
	}
	total := totalArea(b)
	var area float64
	switch {
	case total <= 0:
		area = defaultFloorM2
	case b.Site != nil && b.Site.Area > 0:
		area = math.Min(siteCoverage*b.Site.Area, total/float64(levels))
	default:
		area = total / float64(levels)
	}
	return math.Max(area, minFootprintM2)
}

func totalArea(b *brief.Brief) float64 {
	if b.Program != nil && b.Program.TotalArea > 0 {
		return b.Program.TotalArea
	}
	var sum float64
	for _, r := range AllRooms(b) {
		sum += r.Area
	}
	return sum * grossingFactor
}

// SiteAspect returns the width/depth ratio of the site polygon bounding
// box, projected at a fixed mid latitude and clamped to [0.5, 2.0]. Without
// a usable polygon it returns the golden ratio.
func SiteAspect(b *brief.Brief) float64 {
	if b.Site == nil || len(b.Site.Polygon) < 3 {
		return goldenRatio
	}
	minLat, maxLat := math.Inf(1), math.Inf(-1)
	minLng, maxLng := math.Inf(1), math.Inf(-1)
	for _, p := range b.Site.Polygon {
		minLat, maxLat = math.Min(minLat, p.Lat), math.Max(maxLat, p.Lat)
		minLng, maxLng = math.Min(minLng, p.Lng), math.Max(maxLng, p.Lng)
	}
	dx := (maxLng - minLng) * metersPerDegLng * math.Cos(projectionLatDeg*math.Pi/180)
	dy := (maxLat - minLat) * metersPerDegLat
	if dx <= 0 || dy <= 0 {
		return goldenRatio
	}
	return geom.Clamp(dx/dy, 0.5, 2.0)
}

// LevelCount returns the number of floors: the program level count, else
// the massing floor count, else the DNA floor count, else the highest
// tagged room level plus one, else 1. The result is clamped to
// [1, MaxLevels].
func LevelCount(b *brief.Brief) int {
	n := 0
	switch {
	case b.Program != nil && b.Program.LevelCount > 0:
		n = b.Program.LevelCount
	case b.Massing != nil && b.Massing.Floors > 0:
		n = b.Massing.Floors
	case b.DNA != nil && b.DNA.FloorCount > 0:
		n = b.DNA.FloorCount
	default:
		for _, r := range AllRooms(b) {
			n = max(n, r.LevelIndex()+1)
		}
		if b.Program != nil {
			for i, l := range b.Program.Levels {
				idx := i
				if l.Index != nil {
					idx = *l.Index
				}
				if len(l.Rooms) > 0 {
					n = max(n, idx+1)
				}
			}
		}
	}
	return min(max(n, 1), MaxLevels)
}

// FloorHeights returns per-floor heights in millimeters. Level overrides
// come from the nested program levels, then massing, then the program list.
func FloorHeights(b *brief.Brief, levels int) []int {
	out := make([]int, levels)
	for i := range out {
		h := UpperFloorHeight
		if i == 0 {
			h = GroundFloorHeight
		}
		if m := override(b, i); m > 0 {
			h = geom.Round(geom.Clamp(m*1000, MinFloorHeight, MaxFloorHeight))
		}
		out[i] = h
	}
	return out
}

func override(b *brief.Brief, level int) float64 {
	if p := b.Program; p != nil {
		for i, l := range p.Levels {
			idx := i
			if l.Index != nil {
				idx = *l.Index
			}
			if idx == level && l.FloorHeight > 0 {
				return l.FloorHeight
			}
		}
	}
	if m := b.Massing; m != nil && level < len(m.FloorHeights) && m.FloorHeights[level] > 0 {
		return m.FloorHeights[level]
	}
	if p := b.Program; p != nil && level < len(p.FloorHeights) && p.FloorHeights[level] > 0 {
		return p.FloorHeights[level]
	}
	return 0
}

// EntranceSide returns the entrance facade: the brief, then the site, then
// the DNA, defaulting to south.
func EntranceSide(b *brief.Brief) model.Facade {
	candidates := []string{b.EntranceSide}
	if b.Site != nil {
		candidates = append(candidates, b.Site.EntranceSide)
	}
	if b.DNA != nil {
		candidates = append(candidates, b.DNA.EntranceSide)
	}
	for _, c := range candidates {
		if f, ok := model.ParseFacade(c); ok {
			return f
		}
	}
	return model.South
}

// AllRooms returns every room in the brief: the flat list when present,
// else the program's flat list, else the per-level nested lists with the
// level index applied to untagged rooms.
func AllRooms(b *brief.Brief) []brief.Room {
	if len(b.Rooms) > 0 {
		return b.Rooms
	}
	if b.Program == nil {
		return nil
	}
	if len(b.Program.Rooms) > 0 {
		return b.Program.Rooms
	}
	var out []brief.Room
	for i, l := range b.Program.Levels {
		idx := i
		if l.Index != nil {
			idx = *l.Index
		}
		for _, r := range l.Rooms {
			if !r.Tagged() {
				r.Level = brief.Int(idx)
			}
			out = append(out, r)
		}
	}
	return out
}

func clampDim(v int) int {
	return min(max(v, MinDimension), MaxDimension)
}
