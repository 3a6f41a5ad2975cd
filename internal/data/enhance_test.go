package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/buttermap/internal/model"
)

func cell(x, y int, char, color string) model.Cell {
	return model.Cell{Coordinate: model.NewCoordinate(x, y, 0), Char: char, Color: color}
}

func TestGlyphFeatures(t *testing.T) {
	tests := []struct {
		char, color string
		want        model.FeatureSet
	}{
		{"w", "#0033CC", model.NewFeatureSet(model.FeatureWater)},
		{"w", "#0000FF", model.NewFeatureSet(model.FeatureWater)},
		{"R", "#000066", model.NewFeatureSet(model.FeatureWater)},
		{"^", "#847D84", model.NewFeatureSet(model.FeatureMountain)},
		{"#", "#847D84", model.NewFeatureSet(model.FeatureBlocking)},
		{"&", "#847D84", model.NewFeatureSet(model.FeatureBlocking)},
		{"w", "#0033cc", 0},
		{"w", "", 0},
		{".", "#847D84", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GlyphFeatures(tt.char, tt.color), "%s %s", tt.char, tt.color)
	}
}

func TestEnhance(t *testing.T) {
	wall := cell(1, 0, "#", "#847D84")
	wall.Features = model.NewFeatureSet(model.FeatureCastle)

	port := cell(2, 0, "P", "")
	port.Transports = []model.Transport{
		{TargetName: "isle", MoveCommand: "sail"},
		{TargetName: "isle", MoveCommand: "sail"},
		{TargetName: "isle", MoveCommand: "swim"},
	}

	cells := Enhance([]model.Cell{cell(0, 0, "w", "#0000FF"), wall, port})

	assert.Equal(t, model.NewFeatureSet(model.FeatureWater), cells[0].Features)
	assert.Equal(t, model.NewFeatureSet(model.FeatureBlocking, model.FeatureCastle), cells[1].Features)
	assert.Equal(t, []model.Transport{
		{TargetName: "isle", MoveCommand: "sail"},
		{TargetName: "isle", MoveCommand: "swim"},
	}, cells[2].Transports)

	// idempotent
	again := Enhance(cells)
	assert.Equal(t, model.NewFeatureSet(model.FeatureWater), again[0].Features)
	assert.Len(t, again[2].Transports, 2)
}

func TestApplyChanges(t *testing.T) {
	at := func(x, y int) *ChangeTarget { return &ChangeTarget{X: x, Y: y} }

	base := func() []model.Cell {
		water := cell(0, 0, "w", "#0000FF")
		water.Features = model.NewFeatureSet(model.FeatureWater, model.FeatureWet)
		return []model.Cell{water, cell(1, 0, ".", ""), cell(1, 0, "x", "")}
	}

	t.Run("add and remove features", func(t *testing.T) {
		cells := ApplyChanges(base(), []Change{
			{Action: ChangeRemove, Status: ChangeAccepted, Coord: at(0, 0), Features: []model.Feature{model.FeatureWet}},
			{Action: ChangeAdd, Status: ChangeAccepted, Coord: at(0, 0), Features: []model.Feature{model.FeatureMountain}},
		})
		assert.Equal(t, model.NewFeatureSet(model.FeatureWater, model.FeatureMountain), cells[0].Features)
	})

	t.Run("skips pending unknown and uncoordinated", func(t *testing.T) {
		cells := ApplyChanges(base(), []Change{
			{Action: ChangeAdd, Status: ChangePending, Coord: at(0, 0), Features: []model.Feature{model.FeatureBlocking}},
			{Action: ChangeAdd, Status: ChangeAccepted, Coord: at(9, 9), Features: []model.Feature{model.FeatureBlocking}},
			{Action: ChangeAdd, Status: ChangeAccepted, Features: []model.Feature{model.FeatureBlocking}},
		})
		assert.Equal(t, base(), cells)
	})

	t.Run("layer must match", func(t *testing.T) {
		cells := ApplyChanges(base(), []Change{
			{Action: ChangeAdd, Status: ChangeAccepted, Coord: &ChangeTarget{X: 0, Y: 0, Z: 1}, Features: []model.Feature{model.FeatureBlocking}},
		})
		assert.False(t, cells[0].Features.Has(model.FeatureBlocking))
	})

	t.Run("metadata and transports", func(t *testing.T) {
		cells := ApplyChanges(base(), []Change{
			{
				Action:     ChangeAdd,
				Status:     ChangeAccepted,
				Coord:      at(1, 0),
				CharChange: "T",
				Color:      "#FF0000",
				Name:       "dock",
				Transports: []model.Transport{
					{TargetName: "isle", MoveCommand: "sail"},
					{TargetName: "isle", MoveCommand: "sail"},
				},
			},
			{Action: ChangeAdd, Status: ChangeAccepted, Coord: at(1, 0), Name: "  ", Color: ""},
		})

		// first cell at (1,0) in map order receives the change
		dock := cells[1]
		assert.Equal(t, "T", dock.Char)
		assert.Equal(t, "#FF0000", dock.Color)
		assert.Equal(t, "dock", dock.Name)
		assert.Equal(t, []model.Transport{{TargetName: "isle", MoveCommand: "sail"}}, dock.Transports)

		assert.Equal(t, "x", cells[2].Char)
	})
}

func TestLoadChanges(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("2_wall.json", `{"action": "ADD", "status": "ACCEPTED", "coord": {"x": 1, "y": 0, "z": 0}, "features": [0]}`)
	write("1_dock.json", `{"action": "ADD", "status": "PENDING", "coord": {"x": 0, "y": 0, "z": 0}, "name": "dock", "author": "mapper"}`)
	write("notes.txt", `not a change`)

	changes, err := LoadChanges(dir)
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, "dock", changes[0].Name)
	assert.Equal(t, ChangePending, changes[0].Status)
	assert.Equal(t, "mapper", changes[0].Author)

	assert.Equal(t, ChangeAccepted, changes[1].Status)
	assert.Equal(t, []model.Feature{model.FeatureBlocking}, changes[1].Features)
	assert.Equal(t, &ChangeTarget{X: 1}, changes[1].Coord)

	empty, err := LoadChanges(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLoadChangesMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{`), 0o644))

	_, err := LoadChanges(dir)
	assert.Error(t, err)
}
