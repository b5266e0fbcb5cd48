package adjacency

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/blueprint/pkg/model"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the room kind and zone to node labels.
	Detailed bool
}

// OutsideNode is the node id of the exterior.
const OutsideNode = "outside"

var zoneFill = map[model.ZoneType]string{
	model.ZonePublic:  "#fde9c9",
	model.ZonePrivate: "#d7e8f7",
	model.ZoneService: "#e3e3e3",
}

const circulationFill = "#eef1f6"

// ToDOT converts one floor to an undirected Graphviz graph. A nil floor
// yields an empty graph.
func ToDOT(fl *model.Floor, opts Options) string {
	var buf bytes.Buffer
	name := "floor"
	if fl != nil {
		name = fmt.Sprintf("floor%d", fl.Index)
	}
	fmt.Fprintf(&buf, "graph %q {\n", name)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("\n")
	if fl == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	for _, r := range fl.Rooms {
		fmt.Fprintf(&buf, "  %q [%s];\n", r.ID, strings.Join(fmtAttrs(r, fmtLabel(r, opts.Detailed)), ", "))
	}

	doors := doorWalls(fl)
	entered := entrances(fl)
	if len(entered) > 0 {
		fmt.Fprintf(&buf, "  %q [shape=plaintext, style=\"\", label=\"Outside\"];\n", OutsideNode)
	}

	buf.WriteString("\n")
	for _, w := range fl.Walls {
		if w.Type != model.WallInternal || len(w.ConnectsRooms) != 2 {
			continue
		}
		style := "dashed"
		if doors[w.ID] {
			style = "solid"
		}
		fmt.Fprintf(&buf, "  %q -- %q [style=%s];\n", w.ConnectsRooms[0], w.ConnectsRooms[1], style)
	}
	for _, id := range entered {
		fmt.Fprintf(&buf, "  %q -- %q [style=bold];\n", OutsideNode, id)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(r model.Room, detailed bool) string {
	label := fmt.Sprintf("%s\n%.1f m²", r.Name, r.Area)
	if !detailed {
		return label
	}
	return label + fmt.Sprintf("\nkind: %s\nzone: %s", r.Kind, r.Zone)
}

func fmtAttrs(r model.Room, label string) []string {
	fill, ok := zoneFill[r.Zone]
	if r.Circulation {
		fill, ok = circulationFill, true
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	if r.Circulation {
		attrs = append(attrs, "shape=box", "style=\"rounded,filled\"")
	}
	return attrs
}

// doorWalls returns the ids of walls carrying at least one door.
func doorWalls(fl *model.Floor) map[string]bool {
	out := map[string]bool{}
	for _, o := range fl.Openings {
		if o.Type == model.OpeningDoor {
			out[o.WallID] = true
		}
	}
	return out
}

// entrances returns the ids of rooms behind an external door, in opening
// order without repeats.
func entrances(fl *model.Floor) []string {
	var out []string
	seen := map[string]bool{}
	for _, o := range fl.Openings {
		if o.Type != model.OpeningDoor {
			continue
		}
		if r, ok := fl.RoomBehind(o); ok && !seen[r.ID] {
			seen[r.ID] = true
			out = append(out, r.ID)
		}
	}
	return out
}

// RenderSVG renders DOT source to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing starts at the
// origin and carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
