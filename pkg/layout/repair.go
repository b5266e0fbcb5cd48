package layout

import (
	"github.com/matzehuels/blueprint/pkg/geom"
)

// touchTolerance is how far apart two rooms may be and still count as
// adjacent for the repair pass.
const touchTolerance = roomGap + 50

// repairAdjacency moves the second room of each pair next to the first when
// they do not touch. Candidates are tried right, below, left and above the
// first room; the first one inside the floor and clear of every other room
// wins. It reports the pairs it looked at.
func repairAdjacency(area geom.Rect, placed []Placement, pairs []Pair) []repairResult {
	var out []repairResult
	for _, pair := range pairs {
		ia, ib := findKind(placed, pair.A), findKind(placed, pair.B)
		if ia < 0 || ib < 0 || ia == ib {
			continue
		}
		a, b := placed[ia].Rect, placed[ib].Rect
		res := repairResult{A: placed[ia].Name, B: placed[ib].Name}
		if a.Touching(b, touchTolerance) {
			res.Adjacent = true
			out = append(out, res)
			continue
		}
		for _, c := range candidates(a, b.Width(), b.Height()) {
			if !area.Contains(c) || overlapsAny(c, placed, ib) {
				continue
			}
			placed[ib].Rect = c
			res.Moved, res.Adjacent = true, true
			break
		}
		out = append(out, res)
	}
	return out
}

type repairResult struct {
	A, B     string
	Adjacent bool
	Moved    bool
}

// candidates returns positions for a w×h room next to a: right and left
// aligned to a's top edge, below and above aligned to a's left edge. The
// rotated size is tried after the natural one.
func candidates(a geom.Rect, w, h int) []geom.Rect {
	var out []geom.Rect
	for _, s := range [][2]int{{w, h}, {h, w}} {
		w, h := s[0], s[1]
		out = append(out,
			geom.RectXYWH(a.Max.X+roomGap, a.Max.Y-h, w, h),
			geom.RectXYWH(a.Min.X, a.Min.Y-roomGap-h, w, h),
			geom.RectXYWH(a.Min.X-roomGap-w, a.Max.Y-h, w, h),
			geom.RectXYWH(a.Min.X, a.Max.Y+roomGap, w, h),
		)
		if w == h {
			break
		}
	}
	return out
}

func overlapsAny(r geom.Rect, placed []Placement, skip int) bool {
	for i, p := range placed {
		if i != skip && r.Overlaps(p.Rect) {
			return true
		}
	}
	return false
}

func findKind(placed []Placement, k Kind) int {
	for i, p := range placed {
		if p.Kind == k {
			return i
		}
	}
	return -1
}
