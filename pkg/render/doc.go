// Package render turns building models into drawings.
//
// # Overview
//
// This package holds format conversion shared by the drawing packages:
//
//   - Technical drawings (in [projection] subpackage)
//   - Room adjacency diagrams (in [adjacency] subpackage)
//   - The SVG writer both drawing styles build on (in [svg] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	doc := projection.Plan(m, 0, projection.DefaultOptions())
//	pdf, err := render.ToPDF(ctx, doc)
//	png, err := render.ToPNG(ctx, doc, 2.0)  // 2x scale
//
// # Technical Drawings
//
// The [projection] subpackage draws floor plans, elevations and sections
// from one model, so every view agrees with the others.
//
// # Adjacency Diagrams
//
// The [adjacency] subpackage renders a bubble diagram of one floor with
// Graphviz.
//
//	dot := adjacency.ToDOT(m.Floor(0), adjacency.Options{})
//	svg, err := adjacency.RenderSVG(ctx, dot)
//
// [projection]: github.com/matzehuels/blueprint/pkg/render/projection
// [adjacency]: github.com/matzehuels/blueprint/pkg/render/adjacency
// [svg]: github.com/matzehuels/blueprint/pkg/render/svg
package render
