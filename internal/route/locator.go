package route

import (
	"github.com/udisondev/buttermap/internal/geo"
	"github.com/udisondev/buttermap/internal/model"
)

// Locator finds transport endpoints on a snapshot by torus distance.
// Ties keep the first candidate in map order.
type Locator struct {
	snap  *model.Snapshot
	torus geo.Torus
}

// NewLocator returns a locator over snap.
func NewLocator(snap *model.Snapshot) *Locator {
	return &Locator{snap: snap, torus: geo.NewTorus(snap.Extents())}
}

// NearestTarget returns the transport target closest to dest.
func (l *Locator) NearestTarget(dest model.Coordinate) (*model.Cell, bool) {
	return l.nearest(l.snap.TargetCells(), dest, nil)
}

// NearestTransport returns the transport-capable cell closest to from that
// offers a transport to targetName, together with that transport.
func (l *Locator) NearestTransport(from model.Coordinate, targetName string) (*model.Cell, model.Transport, bool) {
	cell, ok := l.nearest(l.snap.TransportCells(), from, func(c *model.Cell) bool {
		_, ok := c.TransportTo(targetName)
		return ok
	})
	if !ok {
		return nil, model.Transport{}, false
	}
	t, _ := cell.TransportTo(targetName)
	return cell, t, true
}

func (l *Locator) nearest(candidates []*model.Cell, to model.Coordinate, accept func(*model.Cell) bool) (*model.Cell, bool) {
	var (
		best     *model.Cell
		bestDist int
	)
	for _, c := range candidates {
		if accept != nil && !accept(c) {
			continue
		}
		d := l.torus.CoordinateDistance(c.Coordinate, to)
		if best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != nil
}
