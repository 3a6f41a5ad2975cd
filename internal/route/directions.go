package route

import (
	"errors"
	"fmt"

	"github.com/udisondev/buttermap/internal/geo"
	"github.com/udisondev/buttermap/internal/model"
)

// ErrIllegalStep is returned when two consecutive path points are not one unit step apart.
var ErrIllegalStep = errors.New("illegal route step")

// Direction tokens. North is -Y.
const (
	North     = "n"
	South     = "s"
	East      = "e"
	West      = "w"
	NorthEast = "ne"
	NorthWest = "nw"
	SouthEast = "se"
	SouthWest = "sw"
)

var tokenByNSWE = map[byte]string{
	geo.NSWENorth:     North,
	geo.NSWESouth:     South,
	geo.NSWEEast:      East,
	geo.NSWEWest:      West,
	geo.NSWENorthEast: NorthEast,
	geo.NSWENorthWest: NorthWest,
	geo.NSWESouthEast: SouthEast,
	geo.NSWESouthWest: SouthWest,
}

// IsToken reports whether s is one of the eight direction tokens.
func IsToken(s string) bool {
	for _, t := range tokenByNSWE {
		if t == s {
			return true
		}
	}
	return false
}

// StepDirection maps a unit step to its token. Anything but the eight unit
// vectors yields "".
func StepDirection(dx, dy int) string {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return ""
	}
	return tokenByNSWE[geo.ComputeNSWE(dx, dy)]
}

// Leg is a translated path: one token per step and the wrapped positions
// reached by each step (the starting point is not included).
type Leg struct {
	Tokens      []string
	Coordinates []model.Coordinate
}

// Translate converts a search path into tokens. Each pair of points is
// wrapped onto the torus before taking the delta, so an edge crossing reads
// as a single step. Coordinates are placed on layer z.
//
// Steps that are not unit moves are skipped and reported together as
// ErrIllegalStep; the returned leg still holds every legal step.
func Translate(t geo.Torus, path []geo.Point, z int) (Leg, error) {
	steps := max(len(path)-1, 0)
	leg := Leg{
		Tokens:      make([]string, 0, steps),
		Coordinates: make([]model.Coordinate, 0, steps),
	}

	var errs []error
	for i := 1; i < len(path); i++ {
		prev := t.Wrap(path[i-1])
		curr := t.Wrap(path[i])
		dx, dy := t.Delta(prev, curr)

		token := StepDirection(dx, dy)
		if token == "" {
			errs = append(errs, fmt.Errorf("%w: %v -> %v", ErrIllegalStep, prev, curr))
			continue
		}
		leg.Tokens = append(leg.Tokens, token)
		leg.Coordinates = append(leg.Coordinates, curr.Coordinate(z))
	}
	return leg, errors.Join(errs...)
}
