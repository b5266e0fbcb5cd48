// Package svg writes the vector documents produced by the projection
// renderer.
//
// A [Canvas] collects layered groups of primitives in pixel coordinates and
// tracks the extent of everything drawn. [Canvas.Render] wraps the body in a
// root element sized to the content plus a margin, with the theme stylesheet
// and the two hatch patterns (hatch-poche, hatch-earth) in its defs.
//
// Output is deterministic: the same sequence of calls produces the same
// bytes. Numbers are written with two decimals.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/blueprint/pkg/styles"
)

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Canvas accumulates the body of a drawing.
type Canvas struct {
	body  bytes.Buffer
	flips []bool

	minX, minY, maxX, maxY float64
	empty                  bool
}

// New returns an empty canvas.
func New() *Canvas {
	return &Canvas{empty: true}
}

func (c *Canvas) flipped() bool {
	for _, f := range c.flips {
		if f {
			return true
		}
	}
	return false
}

func (c *Canvas) extend(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	if c.flipped() {
		y = -y
	}
	if c.empty {
		c.minX, c.maxX, c.minY, c.maxY = x, x, y, y
		c.empty = false
		return
	}
	c.minX, c.maxX = math.Min(c.minX, x), math.Max(c.maxX, x)
	c.minY, c.maxY = math.Min(c.minY, y), math.Max(c.maxY, y)
}

func (c *Canvas) indent() string {
	return strings.Repeat("  ", len(c.flips)+1)
}

// Bounds returns the extent of everything drawn so far in root
// coordinates, or ok=false for an empty canvas.
func (c *Canvas) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	return c.minX, c.minY, c.maxX, c.maxY, !c.empty
}

// Group opens a layer. Every Group must be closed with End.
func (c *Canvas) Group(id, class string) {
	fmt.Fprintf(&c.body, "%s<g%s%s>\n", c.indent(), attr("id", id), attr("class", class))
	c.flips = append(c.flips, false)
}

// FlipGroup opens a layer whose y axis points up. Text drawn inside would
// be mirrored, so labels belong outside.
func (c *Canvas) FlipGroup(id string) {
	fmt.Fprintf(&c.body, "%s<g%s transform=\"scale(1,-1)\">\n", c.indent(), attr("id", id))
	c.flips = append(c.flips, true)
}

// End closes the innermost group.
func (c *Canvas) End() {
	if len(c.flips) == 0 {
		return
	}
	c.flips = c.flips[:len(c.flips)-1]
	fmt.Fprintf(&c.body, "%s</g>\n", c.indent())
}

// Rect draws an axis-aligned rectangle. Negative sizes are normalized.
func (c *Canvas) Rect(x, y, w, h float64, class string) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	c.extend(x, y)
	c.extend(x+w, y+h)
	fmt.Fprintf(&c.body, `%s<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"%s/>`+"\n",
		c.indent(), x, y, w, h, attr("class", class))
}

// Line draws a segment.
func (c *Canvas) Line(x1, y1, x2, y2 float64, class string) {
	c.extend(x1, y1)
	c.extend(x2, y2)
	fmt.Fprintf(&c.body, `%s<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s/>`+"\n",
		c.indent(), x1, y1, x2, y2, attr("class", class))
}

// Polygon draws a closed outline. Fewer than three points draw nothing.
func (c *Canvas) Polygon(pts []Point, class string) {
	if len(pts) < 3 {
		return
	}
	fmt.Fprintf(&c.body, `%s<polygon points="%s"%s/>`+"\n", c.indent(), c.points(pts), attr("class", class))
}

// Polyline draws an open outline. Fewer than two points draw nothing.
func (c *Canvas) Polyline(pts []Point, class string) {
	if len(pts) < 2 {
		return
	}
	fmt.Fprintf(&c.body, `%s<polyline points="%s"%s/>`+"\n", c.indent(), c.points(pts), attr("class", class))
}

func (c *Canvas) points(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		c.extend(p.X, p.Y)
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

// Circle draws a circle.
func (c *Canvas) Circle(cx, cy, r float64, class string) {
	c.extend(cx-r, cy-r)
	c.extend(cx+r, cy+r)
	fmt.Fprintf(&c.body, `%s<circle cx="%.2f" cy="%.2f" r="%.2f"%s/>`+"\n",
		c.indent(), cx, cy, r, attr("class", class))
}

// Path draws p. Empty paths draw nothing.
func (c *Canvas) Path(p *Path, class string) {
	if p == nil || p.b.Len() == 0 {
		return
	}
	for _, pt := range p.pts {
		c.extend(pt.X, pt.Y)
	}
	fmt.Fprintf(&c.body, `%s<path d="%s"%s/>`+"\n", c.indent(), strings.TrimSpace(p.b.String()), attr("class", class))
}

// Text draws a label. Its extent is estimated from the class font size.
func (c *Canvas) Text(x, y float64, s, class string) {
	size := fontSize(class)
	w := float64(utf8.RuneCountInString(s)) * size * 0.6
	if strings.HasPrefix(class, "label") {
		c.extend(x-w/2, y-size)
		c.extend(x+w/2, y+size*0.3)
	} else {
		c.extend(x, y-size)
		c.extend(x+w, y+size*0.3)
	}
	fmt.Fprintf(&c.body, `%s<text x="%.2f" y="%.2f"%s>%s</text>`+"\n",
		c.indent(), x, y, attr("class", class), EscapeXML(s))
}

func fontSize(class string) float64 {
	switch {
	case strings.Contains(class, "title"):
		return styles.Symbols.TitleFont
	case strings.Contains(class, "small"):
		return styles.Symbols.SmallFont
	default:
		return styles.Symbols.LabelFont
	}
}

// Path builds SVG path data.
type Path struct {
	b   strings.Builder
	pts []Point
}

// MoveTo starts a subpath at p.
func (p *Path) MoveTo(pt Point) *Path {
	fmt.Fprintf(&p.b, "M %.2f %.2f ", pt.X, pt.Y)
	p.pts = append(p.pts, pt)
	return p
}

// LineTo draws a straight segment to pt.
func (p *Path) LineTo(pt Point) *Path {
	fmt.Fprintf(&p.b, "L %.2f %.2f ", pt.X, pt.Y)
	p.pts = append(p.pts, pt)
	return p
}

// ArcTo draws a circular arc of radius r to pt.
func (p *Path) ArcTo(r float64, sweep bool, pt Point) *Path {
	s := 0
	if sweep {
		s = 1
	}
	fmt.Fprintf(&p.b, "A %.2f %.2f 0 0 %d %.2f %.2f ", r, r, s, pt.X, pt.Y)
	p.pts = append(p.pts, pt)
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.b.WriteString("Z ")
	return p
}

// Document controls the root element written by Render.
type Document struct {
	Theme     styles.Theme
	Title     string
	MinWidth  float64 // canvas grows to at least this width
	MinHeight float64
	Margin    float64
}

// Render returns the complete document. Groups left open are closed.
func (c *Canvas) Render(doc Document) []byte {
	for len(c.flips) > 0 {
		c.End()
	}
	minX, minY, maxX, maxY, ok := c.Bounds()
	if !ok {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}
	m := doc.Margin
	minX, minY = minX-m, minY-m
	w := math.Max(maxX+m-minX, doc.MinWidth)
	h := math.Max(maxY+m-minY, doc.MinHeight)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, w, h, math.Ceil(w), math.Ceil(h))
	if doc.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(doc.Title))
	}
	writeDefs(&buf, doc.Theme)
	fmt.Fprintf(&buf, `  <rect class="background" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n", minX, minY, w, h)
	buf.Write(c.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeDefs(buf *bytes.Buffer, t styles.Theme) {
	poche, earth := t.HatchColors()
	sp := styles.Symbols.HatchSpacingPx
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, "  <style>\n%s  </style>\n", t.CSS())
	fmt.Fprintf(buf, `    <pattern id="hatch-poche" patternUnits="userSpaceOnUse" width="%.2f" height="%.2f" patternTransform="rotate(45)">`+"\n", sp, sp)
	fmt.Fprintf(buf, `      <rect width="%.2f" height="%.2f" fill="%s" fill-opacity="0.25"/>`+"\n", sp, sp, poche)
	fmt.Fprintf(buf, `      <line x1="0" y1="0" x2="0" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n", sp, poche)
	buf.WriteString("    </pattern>\n")
	fmt.Fprintf(buf, `    <pattern id="hatch-earth" patternUnits="userSpaceOnUse" width="%.2f" height="%.2f" patternTransform="rotate(-45)">`+"\n", 2*sp, 2*sp)
	fmt.Fprintf(buf, `      <line x1="0" y1="0" x2="0" y2="%.2f" stroke="%s" stroke-width="0.8"/>`+"\n", 2*sp, earth)
	fmt.Fprintf(buf, `      <line x1="%.2f" y1="0" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="0.4"/>`+"\n", sp, sp, 2*sp, earth)
	buf.WriteString("    </pattern>\n")
	buf.WriteString("  </defs>\n")
}

// Placeholder returns a small document carrying a message in place of a
// drawing that could not be produced.
func Placeholder(theme styles.Theme, title, message string) []byte {
	c := New()
	c.Group("placeholder", "placeholder")
	c.Rect(0, 0, 320, 120, "envelope")
	if title != "" {
		c.Text(12, 28, title, "title")
	}
	c.Text(160, 72, message, "label")
	c.End()
	return c.Render(Document{Theme: theme, Title: title, Margin: 10})
}

// EscapeXML escapes s for use in text content and attribute values.
func EscapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func attr(name, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(` %s="%s"`, name, EscapeXML(value))
}
