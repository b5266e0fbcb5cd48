package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/blueprint/pkg/brief"
	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/model"
)

// Roof defaults.
const (
	DefaultRoofType  = model.RoofGable
	DefaultRoofPitch = 35.0
	MinRoofPitch     = 5.0
	MaxRoofPitch     = 60.0
)

var roofTypes = map[string]model.RoofType{
	"flat":    model.RoofFlat,
	"gable":   model.RoofGable,
	"gabled":  model.RoofGable,
	"pitched": model.RoofGable,
	"hip":     model.RoofHip,
	"hipped":  model.RoofHip,
}

// RoofSpec resolves the requested roof form from massing, then DNA. Unknown
// types become gable; missing or out-of-range pitches become the default.
func RoofSpec(b *brief.Brief) (model.RoofType, float64) {
	var r *brief.Roof
	switch {
	case b.Massing != nil && b.Massing.Roof != nil:
		r = b.Massing.Roof
	case b.DNA != nil && b.DNA.Roof != nil:
		r = b.DNA.Roof
	}
	if r == nil {
		return DefaultRoofType, DefaultRoofPitch
	}
	t, ok := roofTypes[strings.ToLower(strings.TrimSpace(r.Type))]
	if !ok {
		t = DefaultRoofType
	}
	if t == model.RoofFlat {
		return t, 0
	}
	pitch := r.Pitch
	if pitch <= 0 || pitch > 75 {
		pitch = DefaultRoofPitch
	}
	return t, geom.Clamp(pitch, MinRoofPitch, MaxRoofPitch)
}

// BuildRoof derives the roof of an envelope. The ridge runs N-S when the
// building is at least as wide as it is deep, else E-W; the rise is half
// the span across the ridge times tan(pitch) on top of the eave height.
//
// Profiles are (u, z) polylines per facade: flat roofs give the 2-point
// roof line, gables a 3-point end triangle or a 2-point ridge line on the
// eave sides, hips a 4-point trapezoid on the long sides and a 3-point
// triangle on the ends.
func BuildRoof(env model.Envelope, t model.RoofType, pitch float64) model.Roof {
	h := env.Height
	roof := model.Roof{
		Type:     t,
		Pitch:    pitch,
		Ridge:    model.RidgeNS,
		Profiles: map[model.Facade][]geom.Point{},
	}
	span := env.Width
	if env.Width < env.Depth {
		roof.Ridge = model.RidgeEW
		span = env.Depth
	}

	if t == model.RoofFlat {
		roof.Pitch = 0
		roof.RidgeHeight = h
		for _, f := range model.Facades {
			roof.Profiles[f] = []geom.Point{{X: 0, Y: h}, {X: env.FacadeWidth(f), Y: h}}
		}
		return roof
	}

	rise := geom.Round(float64(span) / 2 * math.Tan(pitch*math.Pi/180))
	r := h + rise
	roof.RidgeHeight = r

	// Gable ends face the ends of the ridge.
	ends := map[model.Facade]bool{model.North: true, model.South: true}
	if roof.Ridge == model.RidgeEW {
		ends = map[model.Facade]bool{model.East: true, model.West: true}
	}

	for _, f := range model.Facades {
		w := env.FacadeWidth(f)
		switch {
		case ends[f]:
			roof.Profiles[f] = []geom.Point{{X: 0, Y: h}, {X: w / 2, Y: r}, {X: w, Y: h}}
		case t == model.RoofHip:
			inset := min(span/2, w/2)
			roof.Profiles[f] = []geom.Point{{X: 0, Y: h}, {X: inset, Y: r}, {X: w - inset, Y: r}, {X: w, Y: h}}
		default:
			roof.Profiles[f] = []geom.Point{{X: 0, Y: r}, {X: w, Y: r}}
		}
	}
	return roof
}
