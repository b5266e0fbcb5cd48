// Package layout synthesizes the floors of a building from a brief and a
// resolved envelope.
//
// Each floor goes through a fixed sequence: room sourcing and automatic
// level assignment, circulation injection, adjacency ordering, packing by
// the configured [Strategy] chain (zone layout, then whole-floor fallback),
// adjacency repair, wall derivation and opening placement. The roof and the
// stair core are derived from the envelope afterwards.
//
// Synthesis never fails on malformed input: missing values fall back to
// defaults and anomalies are logged and reported as warnings.
package layout

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blueprint/pkg/brief"
	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/observability"
)

// Result holds the synthesized parts of a building.
type Result struct {
	Floors   []model.Floor
	Roof     model.Roof
	Stairs   []model.Stair
	Warnings []string
}

// Synthesizer builds floors. It holds no per-building state and is safe
// for concurrent use.
type Synthesizer struct {
	opts Options
}

// New returns a Synthesizer with defaults applied to opts.
func New(opts Options) *Synthesizer {
	return &Synthesizer{opts: opts.withDefaults()}
}

// Synthesize is shorthand for New(opts).Synthesize(b, env).
func Synthesize(b *brief.Brief, env model.Envelope, opts Options) *Result {
	return New(opts).Synthesize(b, env)
}

// Synthesize builds every floor of env plus the roof and stairs.
func (s *Synthesizer) Synthesize(b *brief.Brief, env model.Envelope) *Result {
	logger := s.opts.Logger
	levels := max(len(env.FloorHeights), 1)
	res := &Result{}
	warn := func(msg string, kv ...any) {
		logger.Warn(msg, kv...)
		res.Warnings = append(res.Warnings, formatWarning(msg, kv...))
	}

	rooms, generated := programRooms(b, levels, s.opts.ProgramPolicy)
	switch {
	case generated:
		logger.Info("using default program", "rooms", len(rooms))
	case len(rooms) == 0:
		warn("no rooms in program; continuing with envelope-only floors", "levels", levels)
	}
	perLevel, auto := sourceRooms(rooms, levels)
	if auto {
		logger.Debug("assigned room levels automatically", "rooms", len(rooms), "levels", levels)
	}

	z := 0
	for i := range levels {
		h := 0
		if i < len(env.FloorHeights) {
			h = env.FloorHeights[i]
		}
		fl := s.floor(i, levels, env, perLevel[i], warn)
		fl.ZBase, fl.FloorHeight, fl.ZTop = z, h, z+h
		z += h
		res.Floors = append(res.Floors, fl)
	}

	t, pitch := RoofSpec(b)
	res.Roof = BuildRoof(env, t, pitch)
	res.Stairs = BuildStairs(env)
	logger.Debug("synthesized building",
		"floors", len(res.Floors),
		"roof", res.Roof.Type,
		"ridge_height", res.Roof.RidgeHeight,
		"stairs", len(res.Stairs))
	return res
}

func (s *Synthesizer) floor(level, levels int, env model.Envelope, reqs []Request, warn func(string, ...any)) model.Floor {
	logger, hooks := s.opts.Logger, s.opts.Hooks
	area := env.Buildable()

	reqs = injectCirculation(level, levels, reqs)
	reqs = orderByAffinity(reqs)

	packing := s.pack(level, area, env.EntranceSide, reqs, hooks, logger)
	if !packing.Complete() {
		names := make([]string, len(packing.Dropped))
		for i, r := range packing.Dropped {
			names[i] = r.Name
			hooks.OnRoomDropped(level, r.Name)
		}
		warn("rooms could not be placed", "floor", level, "dropped", len(names), "rooms", names)
	}

	if !s.opts.DisableRepair {
		for _, r := range repairAdjacency(area, packing.Placed, s.opts.RepairPairs) {
			if r.Moved {
				logger.Debug("repaired adjacency", "floor", level, "a", r.A, "b", r.B)
			}
			if r.Moved || !r.Adjacent {
				hooks.OnRepair(level, r.A, r.B, r.Moved)
			}
			if !r.Adjacent {
				logger.Warn("adjacency not repaired", "floor", level, "a", r.A, "b", r.B)
			}
		}
	}

	fl := model.Floor{Index: level}
	for i, p := range packing.Placed {
		fl.Rooms = append(fl.Rooms, model.Room{
			ID:          fmt.Sprintf("F%d-R%d", level, i+1),
			Name:        p.Name,
			Kind:        string(p.Kind),
			Zone:        p.Zone,
			Polygon:     p.Rect.Polygon(),
			Bounds:      p.Rect,
			Area:        float64(p.Rect.Area()) / 1e6,
			TargetArea:  p.Area,
			Circulation: p.Circulation,
		})
	}
	fl.Walls = append(ExternalWalls(level, env), InternalWalls(level, fl.Rooms)...)
	fl.Openings = placeOpenings(level, env.EntranceSide, fl.Rooms, fl.Walls, logger)
	logger.Debug("synthesized floor",
		"floor", level,
		"rooms", len(fl.Rooms),
		"walls", len(fl.Walls),
		"openings", len(fl.Openings))
	return fl
}

// pack runs the strategy chain. The first complete packing wins; when none
// is complete the last strategy's result is kept.
func (s *Synthesizer) pack(level int, area geom.Rect, entrance model.Facade, reqs []Request, hooks observability.SynthesisHooks, logger *log.Logger) Packing {
	if len(reqs) == 0 {
		return Packing{}
	}
	var p Packing
	for i, st := range s.opts.Strategies {
		if i > 0 {
			prev := s.opts.Strategies[i-1].Name()
			logger.Info("falling back to next layout strategy",
				"floor", level, "from", prev, "to", st.Name(), "dropped", len(p.Dropped))
			hooks.OnStrategyFallback(level, prev, st.Name())
		}
		p = st.Pack(area, entrance, reqs)
		if p.Complete() && len(p.Placed) > 0 {
			return p
		}
	}
	return p
}

func formatWarning(msg string, kv ...any) string {
	out := msg
	for i := 0; i+1 < len(kv); i += 2 {
		out += fmt.Sprintf(" %v=%v", kv[i], kv[i+1])
	}
	return out
}
