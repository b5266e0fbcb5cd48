package model

import (
	"strings"

	"github.com/matzehuels/blueprint/pkg/geom"
)

// Facade is one of the four compass-oriented exterior faces.
type Facade string

const (
	North Facade = "N"
	South Facade = "S"
	East  Facade = "E"
	West  Facade = "W"
)

// Facades lists the facades in wall order: the footprint polygon runs
// counter-clockwise from the south-west corner, so its edges are S, E, N, W.
var Facades = []Facade{South, East, North, West}

var facadeNames = map[string]Facade{
	"n": North, "north": North,
	"s": South, "south": South,
	"e": East, "east": East,
	"w": West, "west": West,
}

// ParseFacade parses a facade name ("S", "south", any case).
func ParseFacade(s string) (Facade, bool) {
	f, ok := facadeNames[strings.ToLower(strings.TrimSpace(s))]
	return f, ok
}

// Normal returns the outward unit normal of the facade.
func (f Facade) Normal() geom.Vec {
	switch f {
	case North:
		return geom.Vec{Y: 1}
	case East:
		return geom.Vec{X: 1}
	case West:
		return geom.Vec{X: -1}
	default:
		return geom.Vec{Y: -1}
	}
}

// Opposite returns the facade on the other side of the building.
func (f Facade) Opposite() Facade {
	switch f {
	case North:
		return South
	case East:
		return West
	case West:
		return East
	default:
		return North
	}
}

// Name returns the long name ("North").
func (f Facade) Name() string {
	switch f {
	case North:
		return "North"
	case East:
		return "East"
	case West:
		return "West"
	default:
		return "South"
	}
}
