package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/buttermap/internal/model"
)

func target(x, y int, name string) model.Cell {
	return model.Cell{
		Coordinate: model.NewCoordinate(x, y, 0),
		Name:       name,
		Features:   model.NewFeatureSet(model.FeatureTransportTarget),
	}
}

func transportCell(x, y int, to, cmd string) model.Cell {
	return model.Cell{
		Coordinate: model.NewCoordinate(x, y, 0),
		Transports: []model.Transport{{TargetName: to, MoveCommand: cmd}},
	}
}

func newTestSnapshot(t *testing.T, width, height int, cells ...model.Cell) *model.Snapshot {
	t.Helper()
	snap, err := model.NewSnapshot(cells, model.Extents{MaxX: width - 1, MaxY: height - 1})
	require.NoError(t, err)
	return snap
}

func TestNearestTarget(t *testing.T) {
	snap := newTestSnapshot(t, 10, 10,
		target(1, 1, "a"),
		target(8, 8, "b"),
		target(4, 5, "c"),
		target(5, 4, "d"),
	)
	l := NewLocator(snap)

	cell, ok := l.NearestTarget(model.NewCoordinate(9, 9, 0))
	require.True(t, ok)
	assert.Equal(t, "b", cell.Name)

	// (8,8) is 4 away across both edges, (1,1) only 2
	cell, ok = l.NearestTarget(model.NewCoordinate(0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, "a", cell.Name)

	// c and d are both 1 away, first in map order wins
	cell, ok = l.NearestTarget(model.NewCoordinate(4, 4, 0))
	require.True(t, ok)
	assert.Equal(t, "c", cell.Name)
}

func TestNearestTargetNone(t *testing.T) {
	snap := newTestSnapshot(t, 4, 4, transportCell(0, 0, "x", "go"))
	_, ok := NewLocator(snap).NearestTarget(model.NewCoordinate(1, 1, 0))
	assert.False(t, ok)
}

func TestNearestTransport(t *testing.T) {
	snap := newTestSnapshot(t, 10, 10,
		transportCell(0, 5, "b", "row"),
		transportCell(5, 5, "a", "walk"),
		transportCell(9, 0, "b", "sail"),
		target(1, 1, "a"),
		target(8, 8, "b"),
	)
	l := NewLocator(snap)

	cell, tr, ok := l.NearestTransport(model.NewCoordinate(0, 0, 0), "b")
	require.True(t, ok)
	assert.Equal(t, model.NewCoordinate(9, 0, 0), cell.Coordinate)
	assert.Equal(t, "sail", tr.MoveCommand)

	cell, tr, ok = l.NearestTransport(model.NewCoordinate(0, 0, 0), "a")
	require.True(t, ok)
	assert.Equal(t, model.NewCoordinate(5, 5, 0), cell.Coordinate)
	assert.Equal(t, "walk", tr.MoveCommand)

	_, _, ok = l.NearestTransport(model.NewCoordinate(0, 0, 0), "nowhere")
	assert.False(t, ok)
}

func TestNearestTransportPicksMatchingEntry(t *testing.T) {
	cell := model.Cell{
		Coordinate: model.NewCoordinate(2, 2, 0),
		Transports: []model.Transport{
			{TargetName: "north", MoveCommand: "climb"},
			{TargetName: "south", MoveCommand: "descend"},
		},
	}
	snap := newTestSnapshot(t, 5, 5, cell, target(0, 0, "south"))

	_, tr, ok := NewLocator(snap).NearestTransport(model.NewCoordinate(0, 0, 0), "south")
	require.True(t, ok)
	assert.Equal(t, "descend", tr.MoveCommand)
}
