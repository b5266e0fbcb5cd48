package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/observability"
)

// ProgramPolicy decides what happens when a brief has no rooms.
type ProgramPolicy string

const (
	// PolicyEnvelopeOnly keeps empty floors and logs a warning.
	PolicyEnvelopeOnly ProgramPolicy = "envelope-only"
	// PolicyDefaultProgram fills empty programs with a standard house
	// program. Briefs with program_locked set ignore it.
	PolicyDefaultProgram ProgramPolicy = "default-program"
)

// Pair is an unordered pair of room kinds.
type Pair struct {
	A, B Kind
}

// DefaultRepairPairs are the room pairs the repair pass keeps adjacent.
var DefaultRepairPairs = []Pair{
	{KindKitchen, KindDining},
	{KindMaster, KindEnsuite},
}

// ConnectorPairs get a direct door when they share a wall.
var ConnectorPairs = []Pair{
	{KindKitchen, KindDining},
	{KindMaster, KindEnsuite},
	{KindLiving, KindKitchen},
}

// Options configures a Synthesizer. The zero value is usable.
type Options struct {
	Logger        *log.Logger
	ProgramPolicy ProgramPolicy

	// RepairPairs overrides DefaultRepairPairs when non-nil.
	RepairPairs   []Pair
	DisableRepair bool

	// Strategies are tried in order; nil means zone layout with whole-floor
	// fallback.
	Strategies []Strategy

	// Hooks receives synthesis anomalies; nil uses the global registry.
	Hooks observability.SynthesisHooks
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.ProgramPolicy == "" {
		o.ProgramPolicy = PolicyEnvelopeOnly
	}
	if o.RepairPairs == nil {
		o.RepairPairs = DefaultRepairPairs
	}
	if o.Strategies == nil {
		o.Strategies = []Strategy{ZoneStrategy{}, WholeFloorStrategy{}}
	}
	if o.Hooks == nil {
		o.Hooks = observability.Synthesis()
	}
	return o
}

// Request is a room waiting to be placed.
type Request struct {
	Name        string
	Kind        Kind
	Zone        model.ZoneType
	Area        float64 // target, m²
	Level       int
	Circulation bool
}

// Placement is a placed room rectangle.
type Placement struct {
	Request
	Rect geom.Rect
}

// Packing is the outcome of one strategy run.
type Packing struct {
	Placed  []Placement
	Dropped []Request
}

// Complete reports whether every requested room was placed.
func (p Packing) Complete() bool { return len(p.Dropped) == 0 }

// Strategy packs the rooms of one floor into the buildable rectangle. The
// entrance facade defines the front of the floor.
type Strategy interface {
	Name() string
	Pack(area geom.Rect, entrance model.Facade, rooms []Request) Packing
}
