// Package model defines the building model: an immutable aggregate of the
// envelope, floors, roof, stairs and facade summary produced by the building
// pipeline and consumed by the projection renderer.
//
// All lengths are integer millimeters. [Building.DimensionsMeters] is the
// only place meters appear.
package model

import (
	"fmt"

	"github.com/matzehuels/blueprint/pkg/geom"
)

// Building is the complete 3D building model.
type Building struct {
	ID       string        `json:"id"`
	Envelope Envelope      `json:"envelope"`
	Floors   []Floor       `json:"floors"`
	Roof     Roof          `json:"roof"`
	Stairs   []Stair       `json:"stairs"`
	Facades  FacadeSummary `json:"facades"`
	Warnings []string      `json:"warnings,omitempty"`
}

// Floor returns floor i, or nil when i is out of range.
func (b *Building) Floor(i int) *Floor {
	if i < 0 || i >= len(b.Floors) {
		return nil
	}
	return &b.Floors[i]
}

// FacadeWall is a wall annotated with the floor it belongs to.
type FacadeWall struct {
	Wall
	FloorIndex int `json:"floor_index"`
	ZBase      int `json:"z_base"`
}

// WallsForFacade returns the external walls of a facade on every floor,
// bottom floor first.
func (b *Building) WallsForFacade(f Facade) []FacadeWall {
	var out []FacadeWall
	for _, fl := range b.Floors {
		for _, w := range fl.Walls {
			if w.Type == WallExternal && w.Facade == f {
				out = append(out, FacadeWall{Wall: w, FloorIndex: fl.Index, ZBase: fl.ZBase})
			}
		}
	}
	return out
}

// FacadeOpening is an opening annotated with its floor.
type FacadeOpening struct {
	Opening
	FloorIndex int `json:"floor_index"`
	ZBase      int `json:"z_base"`
}

// OpeningsForFacade returns the openings on a facade on every floor.
func (b *Building) OpeningsForFacade(f Facade) []FacadeOpening {
	var out []FacadeOpening
	for _, fl := range b.Floors {
		for _, o := range fl.Openings {
			if o.Facade == f {
				out = append(out, FacadeOpening{Opening: o, FloorIndex: fl.Index, ZBase: fl.ZBase})
			}
		}
	}
	return out
}

// RoofProfile returns the roof outline seen from a facade, or nil.
func (b *Building) RoofProfile(f Facade) []geom.Point {
	return b.Roof.Profiles[f]
}

// Dimensions are the envelope dimensions in meters.
type Dimensions struct {
	Width        float64   `json:"width"`
	Depth        float64   `json:"depth"`
	Height       float64   `json:"height"`
	RidgeHeight  float64   `json:"ridge_height"`
	FloorHeights []float64 `json:"floor_heights"`
}

// DimensionsMeters converts the envelope dimensions to meters.
func (b *Building) DimensionsMeters() Dimensions {
	e := b.Envelope
	d := Dimensions{
		Width:        geom.ToMeters(e.Width),
		Depth:        geom.ToMeters(e.Depth),
		Height:       geom.ToMeters(e.Height),
		RidgeHeight:  geom.ToMeters(b.Roof.RidgeHeight),
		FloorHeights: make([]float64, len(e.FloorHeights)),
	}
	for i, h := range e.FloorHeights {
		d.FloorHeights[i] = geom.ToMeters(h)
	}
	return d
}

// Metrics are aggregate counts reported by Validate.
type Metrics struct {
	Floors     int     `json:"floors"`
	Rooms      int     `json:"rooms"`
	Walls      int     `json:"walls"`
	Windows    int     `json:"windows"`
	Doors      int     `json:"doors"`
	Stairs     int     `json:"stairs"`
	GrossArea  float64 `json:"gross_area"` // m², footprint × floors
	RoomArea   float64 `json:"room_area"`  // m², Σ room area
	Efficiency float64 `json:"efficiency"` // RoomArea / GrossArea
}

// Validation is the result of Validate. Errors are blocking, warnings are
// advisory.
type Validation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Metrics  Metrics  `json:"metrics"`
}

// Validate checks the model for blocking errors (no floors, no walls) and
// advisory warnings (no rooms, no openings, missing stairs).
func (b *Building) Validate() Validation {
	v := Validation{Errors: []string{}, Warnings: []string{}}
	m := &v.Metrics
	m.Floors = len(b.Floors)
	m.Stairs = len(b.Stairs)

	for _, fl := range b.Floors {
		m.Rooms += len(fl.Rooms)
		m.Walls += len(fl.Walls)
		for _, r := range fl.Rooms {
			m.RoomArea += r.Area
		}
		for _, o := range fl.Openings {
			if o.Type == OpeningDoor {
				m.Doors++
			} else {
				m.Windows++
			}
		}
	}
	m.GrossArea = b.Envelope.Footprint.AreaM2() * float64(m.Floors)
	if m.GrossArea > 0 {
		m.Efficiency = m.RoomArea / m.GrossArea
	}

	if m.Floors == 0 {
		v.Errors = append(v.Errors, "model has no floors")
	}
	if m.Floors > 0 && m.Walls == 0 {
		v.Errors = append(v.Errors, "model has no walls")
	}
	if m.Floors > 0 && m.Rooms == 0 {
		v.Warnings = append(v.Warnings, "model has no rooms")
	}
	if m.Walls > 0 && m.Windows+m.Doors == 0 {
		v.Warnings = append(v.Warnings, "model has no openings")
	}
	if m.Floors > 1 && m.Stairs == 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("%d floors but no stairs", m.Floors))
	}
	v.Valid = len(v.Errors) == 0
	return v
}

// Dispose drops the retained collections. The model must not be used
// afterwards.
func (b *Building) Dispose() {
	for i := range b.Floors {
		b.Floors[i].Rooms = nil
		b.Floors[i].Walls = nil
		b.Floors[i].Openings = nil
	}
	b.Floors = nil
	b.Stairs = nil
	b.Roof.Profiles = nil
	b.Facades = nil
	b.Warnings = nil
}
