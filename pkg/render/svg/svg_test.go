package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/blueprint/pkg/styles"
)

func TestCanvasBounds(t *testing.T) {
	c := New()
	if _, _, _, _, ok := c.Bounds(); ok {
		t.Fatal("new canvas should be empty")
	}
	c.Rect(10, 20, 30, 40, "room")
	c.Line(-5, 0, 0, 100, "dim")
	minX, minY, maxX, maxY, ok := c.Bounds()
	if !ok || minX != -5 || minY != 0 || maxX != 40 || maxY != 100 {
		t.Errorf("bounds = %v %v %v %v", minX, minY, maxX, maxY)
	}
}

func TestFlipGroupBounds(t *testing.T) {
	c := New()
	c.FlipGroup("plan")
	c.Rect(0, 100, 50, 50, "room")
	c.End()
	_, minY, _, maxY, _ := c.Bounds()
	if minY != -150 || maxY != -100 {
		t.Errorf("flipped y extent = %v..%v, want -150..-100", minY, maxY)
	}
}

func TestNegativeRectNormalized(t *testing.T) {
	c := New()
	c.Rect(10, 10, -10, -10, "room")
	out := string(c.Render(Document{Theme: styles.Default()}))
	if !strings.Contains(out, `<rect x="0.00" y="0.00" width="10.00" height="10.00" class="room"/>`) {
		t.Errorf("rect not normalized:\n%s", out)
	}
}

func TestRenderDocument(t *testing.T) {
	c := New()
	c.Group("rooms", "")
	c.Rect(0, 0, 100, 50, "room")
	c.Text(50, 25, "Kitchen & Dining", "label")
	c.End()
	out := c.Render(Document{Theme: styles.Default(), Title: "Plan <1>", Margin: 10, MinWidth: 400})

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`width="400"`,
		`<title>Plan &lt;1&gt;</title>`,
		`id="hatch-poche"`,
		`id="hatch-earth"`,
		`.wall-ext {`,
		`Kitchen &amp; Dining`,
		`<g id="rooms">`,
		"</svg>\n",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderClosesGroups(t *testing.T) {
	c := New()
	c.Group("a", "")
	c.FlipGroup("b")
	out := string(c.Render(Document{Theme: styles.Default()}))
	if strings.Count(out, "<g") != strings.Count(out, "</g>") {
		t.Errorf("unbalanced groups:\n%s", out)
	}
}

func TestPath(t *testing.T) {
	p := (&Path{}).MoveTo(Point{0, 0}).LineTo(Point{10, 0}).ArcTo(10, false, Point{0, 10}).Close()
	c := New()
	c.Path(p, "swing")
	c.Path(&Path{}, "empty")
	out := string(c.Render(Document{Theme: styles.Default()}))
	if !strings.Contains(out, `d="M 0.00 0.00 L 10.00 0.00 A 10.00 10.00 0 0 0 0.00 10.00 Z"`) {
		t.Errorf("path data wrong:\n%s", out)
	}
	if strings.Contains(out, `class="empty"`) {
		t.Error("empty path was written")
	}
}

func TestDegenerateShapesSkipped(t *testing.T) {
	c := New()
	c.Polygon([]Point{{0, 0}, {1, 1}}, "room")
	c.Polyline([]Point{{0, 0}}, "roof")
	if _, _, _, _, ok := c.Bounds(); ok {
		t.Error("degenerate shapes should not extend the canvas")
	}
}

func TestPlaceholder(t *testing.T) {
	out := Placeholder(styles.Default(), "Floor 9", "floor 9 does not exist")
	if !bytes.HasPrefix(out, []byte("<svg")) || !bytes.Contains(out, []byte("floor 9 does not exist")) {
		t.Errorf("placeholder = %s", out)
	}
	if !bytes.Equal(out, Placeholder(styles.Default(), "Floor 9", "floor 9 does not exist")) {
		t.Error("placeholder is not deterministic")
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`<a href="x">&</a>`); got != "&lt;a href=&#34;x&#34;&gt;&amp;&lt;/a&gt;" {
		t.Errorf("EscapeXML = %s", got)
	}
}
