// Package adjacency renders the room adjacency of a floor as a bubble
// diagram.
//
// # Overview
//
// Rooms become nodes filled by zone and internal walls become edges: solid
// where the wall carries a door, dashed where the rooms only share a wall.
// An "outside" node is linked to every room with an external door, so the
// diagram shows how the floor is entered and traversed.
//
// # Usage
//
//	dot := adjacency.ToDOT(m.Floor(0), adjacency.Options{})
//	svg, err := adjacency.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools. PDF and PNG conversion goes through [render.ToPDF] and
// [render.ToPNG].
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
//
// [render.ToPDF]: github.com/matzehuels/blueprint/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/blueprint/pkg/render.ToPNG
package adjacency
