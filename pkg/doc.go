// Package pkg provides the core libraries for Blueprint building synthesis.
//
// # Overview
//
// Blueprint turns a design brief into one 3D building model and projects
// that model into technical drawings. Because every drawing reads the same
// model, plans, elevations and sections always agree. The pkg directory is
// organized into these areas:
//
//  1. [brief] - Design brief types and decoding (JSON, YAML, TOML)
//  2. [envelope], [layout], [building] - Synthesis of the envelope, rooms, walls, openings, roof and stairs
//  3. [model] - The immutable building model and its JSON form
//  4. [render] - Drawings (plans, elevations, sections, adjacency diagrams) and format conversion
//  5. [compliance] - Room-level regulatory checks
//  6. [pipeline], [cache] - Orchestration (brief → model → drawings) with caching
//
// # Architecture
//
// The typical data flow through Blueprint:
//
//	Brief (JSON / YAML / TOML)
//	         ↓
//	    [brief] package (decode + sanitize)
//	         ↓
//	    [building] package (envelope + layout synthesis)
//	         ↓
//	    [model] package (validated building model)
//	         ↓
//	    [render/projection] package (plans, elevations, sections)
//	         ↓
//	    SVG/PDF/PNG/JSON/DOT output
//
// # Quick Start
//
// Build a model and draw the ground floor plan:
//
//	import (
//	    "github.com/matzehuels/blueprint/pkg/brief"
//	    "github.com/matzehuels/blueprint/pkg/building"
//	    "github.com/matzehuels/blueprint/pkg/render/projection"
//	)
//
//	b, _ := brief.ReadFile("house.yaml")
//	m, _ := building.New(b, building.Options{})
//	svg := projection.Plan(m, 0, projection.DefaultOptions())
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    BriefPath: "house.yaml",
//	    Formats:   []string{"svg", "json"},
//	})
//
// # Packages
//
// Domain:
//   - [brief]: Brief types, decoding and sanitizing
//   - [envelope]: Footprint, floor heights and roof parameters
//   - [layout]: Room packing, walls, openings, stairs and roof synthesis
//   - [building]: Synthesis entry point tying envelope and layout together
//   - [model]: Building model, validation and JSON export
//   - [geom]: Millimeter geometry primitives
//   - [compliance]: Minimum area, width, door, glazing and connectivity checks
//
// Rendering:
//   - [render]: PDF and PNG conversion
//   - [render/projection]: Plans, elevations and sections
//   - [render/adjacency]: Room adjacency diagrams with Graphviz
//   - [render/svg]: Minimal SVG writer
//   - [styles]: Drawing themes and symbol conventions
//
// Infrastructure:
//   - [pipeline]: Build and render stages with caching
//   - [cache]: Cache interface, file cache and key derivation
//   - [observability]: Hooks for build, render and cache events
//   - [errors]: Structured error codes
//   - [buildinfo]: Version information
//
// [brief]: github.com/matzehuels/blueprint/pkg/brief
// [envelope]: github.com/matzehuels/blueprint/pkg/envelope
// [layout]: github.com/matzehuels/blueprint/pkg/layout
// [building]: github.com/matzehuels/blueprint/pkg/building
// [model]: github.com/matzehuels/blueprint/pkg/model
// [geom]: github.com/matzehuels/blueprint/pkg/geom
// [compliance]: github.com/matzehuels/blueprint/pkg/compliance
// [render]: github.com/matzehuels/blueprint/pkg/render
// [render/projection]: github.com/matzehuels/blueprint/pkg/render/projection
// [render/adjacency]: github.com/matzehuels/blueprint/pkg/render/adjacency
// [render/svg]: github.com/matzehuels/blueprint/pkg/render/svg
// [styles]: github.com/matzehuels/blueprint/pkg/styles
// [pipeline]: github.com/matzehuels/blueprint/pkg/pipeline
// [cache]: github.com/matzehuels/blueprint/pkg/cache
// [observability]: github.com/matzehuels/blueprint/pkg/observability
// [errors]: github.com/matzehuels/blueprint/pkg/errors
// [buildinfo]: github.com/matzehuels/blueprint/pkg/buildinfo
package pkg
