package styles

// Wall and foundation conventions in millimeters. The synthesizer uses them
// to size geometry and the renderer uses the same values so drawings agree
// with the model.
const (
	ExternalWallThickness = 300
	InternalWallThickness = 100
	SlabThickness         = 200
	RoofThickness         = 250
	ParapetHeight         = 300
	FoundationDepth       = 1000
	FoundationWidth       = 600
	GroundDepthShown      = 1200
)

// SymbolTable holds symbol sizes. Values ending in Px are screen pixels, the
// rest are fractions or meters as named.
type SymbolTable struct {
	MarginPx          float64 // canvas margin around content
	NorthArrowPx      float64 // north arrow length
	ScaleBarSegmentM  float64 // length of one scale-bar segment in meters
	ScaleBarSegments  int
	DimensionOffsetPx float64 // distance of dimension lines from the building
	TickPx            float64 // dimension tick half-length
	LevelMarkerPx     float64 // level marker triangle size
	LeaderPx          float64 // leader line length beyond the building
	LabelFont         float64
	SmallFont         float64
	TitleFont         float64
	DoorLeafRatio     float64 // door leaf length as a fraction of door width
	HatchSpacingPx    float64
	ArrowHeadPx       float64
}

// Symbols is the symbol size table used by every drawing.
var Symbols = SymbolTable{
	MarginPx:          80,
	NorthArrowPx:      40,
	ScaleBarSegmentM:  1,
	ScaleBarSegments:  5,
	DimensionOffsetPx: 36,
	TickPx:            5,
	LevelMarkerPx:     7,
	LeaderPx:          60,
	LabelFont:         12,
	SmallFont:         10,
	TitleFont:         16,
	DoorLeafRatio:     0.9,
	HatchSpacingPx:    6,
	ArrowHeadPx:       8,
}
