package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/buttermap/internal/model"
)

func TestParseASCIIMap(t *testing.T) {
	cells, ext, err := ParseASCIIMap([]string{
		"..#",
		" ~. ",
		"^..",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Extents{MaxX: 2, MaxY: 2}, ext)
	require.Len(t, cells, 3)
	assert.Equal(t, model.NewCoordinate(2, 0, 0), cells[0].Coordinate)
	assert.True(t, cells[0].Features.Has(model.FeatureBlocking))
	assert.True(t, cells[1].Features.Has(model.FeatureWater))
	assert.True(t, cells[2].Features.Has(model.FeatureMountain))

	_, _, err = ParseASCIIMap([]string{".x."})
	assert.Error(t, err)

	_, _, err = ParseASCIIMap(nil)
	assert.Error(t, err)
}
