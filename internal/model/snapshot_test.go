package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCells() []Cell {
	return []Cell{
		{Coordinate: NewCoordinate(0, 0, 0), Char: "."},
		{Coordinate: NewCoordinate(1, 0, 0), Char: "T", Name: "dock", Transports: []Transport{{TargetName: "isle", MoveCommand: "board"}}},
		{Coordinate: NewCoordinate(3, 2, 0), Char: "I", Name: "isle", Features: NewFeatureSet(FeatureTransportTarget)},
		{Coordinate: NewCoordinate(2, 2, 0), Char: "i", Name: "isle"},
		{Coordinate: NewCoordinate(4, 1, 0), Char: "x", Features: NewFeatureSet(FeatureTransportTarget)},
	}
}

func TestComputeExtents(t *testing.T) {
	assert.Equal(t, Extents{MaxX: 4, MaxY: 2}, ComputeExtents(testCells()))
	assert.Equal(t, Extents{}, ComputeExtents(nil))
}

func TestNewSnapshotIndexes(t *testing.T) {
	cells := testCells()
	s, err := NewSnapshot(cells, ComputeExtents(cells))
	require.NoError(t, err)

	assert.Equal(t, 5, s.Len())

	transports := s.TransportCells()
	require.Len(t, transports, 1)
	assert.Equal(t, "dock", transports[0].Name)

	// unnamed TRANSPORT_TARGET cell is not a target
	targets := s.TargetCells()
	require.Len(t, targets, 1)
	assert.Equal(t, NewCoordinate(3, 2, 0), targets[0].Coordinate)

	// first cell in map order wins
	isle, ok := s.CellByName("isle")
	require.True(t, ok)
	assert.Equal(t, NewCoordinate(3, 2, 0), isle.Coordinate)

	_, ok = s.CellByName("nowhere")
	assert.False(t, ok)
}

func TestNewSnapshotCopiesInput(t *testing.T) {
	cells := testCells()
	s, err := NewSnapshot(cells, ComputeExtents(cells))
	require.NoError(t, err)

	cells[1].Transports[0].MoveCommand = "swim"
	cells[0].Char = "#"

	dock, ok := s.CellByName("dock")
	require.True(t, ok)
	assert.Equal(t, "board", dock.Transports[0].MoveCommand)
	assert.Equal(t, ".", s.Cells()[0].Char)
}

func TestNewSnapshotRejectsOutOfBounds(t *testing.T) {
	_, err := NewSnapshot(testCells(), Extents{MaxX: 3, MaxY: 2})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = NewSnapshot([]Cell{{Coordinate: NewCoordinate(-1, 0, 0)}}, Extents{MaxX: 3, MaxY: 3})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = NewSnapshot(nil, Extents{MaxX: -1})
	assert.ErrorIs(t, err, ErrInvalidExtents)
}

func TestSnapshotDigest(t *testing.T) {
	cells := testCells()
	a, err := NewSnapshot(cells, ComputeExtents(cells))
	require.NoError(t, err)
	b, err := NewSnapshot(testCells(), ComputeExtents(cells))
	require.NoError(t, err)

	assert.Len(t, a.Digest(), 64)
	assert.Equal(t, a.Digest(), b.Digest())

	changed := testCells()
	changed[2].Features = changed[2].Features.Add(FeatureWater)
	c, err := NewSnapshot(changed, ComputeExtents(changed))
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest(), c.Digest())

	wider, err := NewSnapshot(testCells(), Extents{MaxX: 9, MaxY: 2})
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest(), wider.Digest())
}
