package model

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

var (
	// ErrInvalidExtents is returned when the extents are negative.
	ErrInvalidExtents = errors.New("invalid map extents")
	// ErrOutOfBounds is returned when a cell lies outside the map extents.
	ErrOutOfBounds = errors.New("cell outside map extents")
)

// Snapshot is an immutable view of every known map cell.
// Thread-safe: nothing is modified after NewSnapshot returns.
type Snapshot struct {
	cells   []Cell
	extents Extents

	// indexes into cells, map order
	transports []int
	targets    []int
	byName     map[string]int
}

// NewSnapshot validates cells against extents and indexes them.
// The cells slice is copied; later changes by the caller are not observed.
func NewSnapshot(cells []Cell, extents Extents) (*Snapshot, error) {
	if extents.MaxX < 0 || extents.MaxY < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidExtents, extents.MaxX, extents.MaxY)
	}

	s := &Snapshot{
		cells:   make([]Cell, len(cells)),
		extents: extents,
		byName:  make(map[string]int),
	}
	for i := range cells {
		c := cells[i]
		if !extents.Contains(c.X, c.Y) {
			return nil, fmt.Errorf("%w: %s not in [0,%d]x[0,%d]", ErrOutOfBounds, c.Coordinate, extents.MaxX, extents.MaxY)
		}
		if len(c.Transports) > 0 {
			c.Transports = append([]Transport(nil), c.Transports...)
		}
		if c.Area != nil {
			area := *c.Area
			c.Area = &area
		}
		s.cells[i] = c

		if c.HasTransports() {
			s.transports = append(s.transports, i)
		}
		if c.IsTarget() {
			s.targets = append(s.targets, i)
		}
		if c.Name != "" {
			if _, ok := s.byName[c.Name]; !ok {
				s.byName[c.Name] = i
			}
		}
	}
	return s, nil
}

// Extents returns the map bounds.
func (s *Snapshot) Extents() Extents {
	return s.extents
}

// Len returns the number of known cells.
func (s *Snapshot) Len() int {
	return len(s.cells)
}

// Each calls fn for every cell in map order. The cell must not be modified.
func (s *Snapshot) Each(fn func(c *Cell)) {
	for i := range s.cells {
		fn(&s.cells[i])
	}
}

// Cells returns a copy of all cells in map order.
func (s *Snapshot) Cells() []Cell {
	out := make([]Cell, len(s.cells))
	copy(out, s.cells)
	return out
}

// TransportCells returns the cells offering at least one transport, in map order.
func (s *Snapshot) TransportCells() []*Cell {
	return s.pick(s.transports)
}

// TargetCells returns the named TRANSPORT_TARGET cells, in map order.
func (s *Snapshot) TargetCells() []*Cell {
	return s.pick(s.targets)
}

// CellByName returns the first cell in map order carrying name.
func (s *Snapshot) CellByName(name string) (*Cell, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return &s.cells[i], true
}

func (s *Snapshot) pick(idx []int) []*Cell {
	out := make([]*Cell, len(idx))
	for i, j := range idx {
		out[i] = &s.cells[j]
	}
	return out
}

// Digest returns a BLAKE2b-256 fingerprint of the snapshot contents.
// Two snapshots with the same cells in the same order and the same extents
// share a digest.
func (s *Snapshot) Digest() string {
	h, _ := blake2b.New256(nil) // nil key never fails

	buf := make([]byte, 0, 64)
	buf = binary.AppendVarint(buf, int64(s.extents.MaxX))
	buf = binary.AppendVarint(buf, int64(s.extents.MaxY))
	h.Write(buf)

	for i := range s.cells {
		c := &s.cells[i]
		buf = buf[:0]
		buf = binary.AppendVarint(buf, int64(c.X))
		buf = binary.AppendVarint(buf, int64(c.Y))
		buf = binary.AppendVarint(buf, int64(c.Z))
		buf = appendString(buf, c.Char)
		buf = appendString(buf, c.Color)
		buf = appendString(buf, c.Name)
		buf = binary.AppendUvarint(buf, uint64(c.Features))
		buf = binary.AppendUvarint(buf, uint64(len(c.Transports)))
		for _, t := range c.Transports {
			buf = appendString(buf, t.TargetName)
			buf = appendString(buf, t.MoveCommand)
		}
		if c.Area != nil {
			buf = append(buf, 1)
			buf = appendString(buf, c.Area.Name)
			buf = appendString(buf, c.Area.EnterCommand)
			buf = appendString(buf, c.Area.ExitCommand)
		} else {
			buf = append(buf, 0)
		}
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// appendString writes a length-prefixed string so field boundaries stay unambiguous.
func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}
