package model

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/blueprint/pkg/geom"
)

// Opening centers are kept between 5% and 95% of their wall.
const (
	MinPositionRatio = 0.05
	MaxPositionRatio = 0.95
)

// Position locates an opening center along its wall. Ratio is the fraction
// of the wall length from the wall start and Offset the same distance in
// millimeters; both are always set and agree.
type Position struct {
	Ratio  float64 `json:"ratio"`
	Offset int     `json:"offset"`
}

// PositionAt returns the position at ratio along a wall of the given length.
// The ratio is clamped to [MinPositionRatio, MaxPositionRatio].
func PositionAt(ratio float64, wallLength int) Position {
	r := geom.Clamp(ratio, MinPositionRatio, MaxPositionRatio)
	if !geom.Finite(ratio) {
		r = 0.5
	}
	return Position{Ratio: r, Offset: geom.Round(r * float64(max(wallLength, 0)))}
}

// PositionAtOffset returns the position of an opening centered offset
// millimeters from the wall start.
func PositionAtOffset(offset, wallLength int) Position {
	if wallLength <= 0 {
		return PositionAt(0.5, 0)
	}
	return PositionAt(float64(offset)/float64(wallLength), wallLength)
}

type legacyPosition struct {
	Ratio  *float64 `json:"ratio"`
	Offset *float64 `json:"offset"`
	MM     *float64 `json:"mm"`
}

// NormalizePosition converts any stored position encoding into a Position.
//
// Accepted encodings:
//   - {"ratio": r} or {"ratio": r, "offset": mm}: ratio wins
//   - {"offset": mm} or {"mm": mm}: millimeters from the wall start
//   - a bare number in [0, 1]: a ratio
//   - a bare number above 1: millimeters from the wall start
//
// Anything else, including null, centers the opening.
func NormalizePosition(raw json.RawMessage, wallLength int) Position {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return PositionAt(0.5, wallLength)
	}
	if raw[0] == '{' {
		var lp legacyPosition
		if err := json.Unmarshal(raw, &lp); err != nil {
			return PositionAt(0.5, wallLength)
		}
		switch {
		case lp.Ratio != nil:
			return PositionAt(*lp.Ratio, wallLength)
		case lp.Offset != nil:
			return PositionAtOffset(geom.Round(*lp.Offset), wallLength)
		case lp.MM != nil:
			return PositionAtOffset(geom.Round(*lp.MM), wallLength)
		}
		return PositionAt(0.5, wallLength)
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return PositionAt(0.5, wallLength)
	}
	if v >= 0 && v <= 1 {
		return PositionAt(v, wallLength)
	}
	return PositionAtOffset(geom.Round(v), wallLength)
}
