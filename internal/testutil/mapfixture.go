package testutil

import (
	"fmt"
	"strings"

	"github.com/udisondev/buttermap/internal/model"
)

// GlyphFeatures maps ASCII fixture glyphs to terrain. "." is open ground.
var GlyphFeatures = map[rune]model.Feature{
	'#': model.FeatureBlocking,
	'~': model.FeatureWater,
	'^': model.FeatureMountain,
}

// ParseASCIIMap builds cells on layer 0 from rows of glyphs.
// Open cells are not emitted; the extents cover the widest row.
func ParseASCIIMap(rows []string) ([]model.Cell, model.Extents, error) {
	var cells []model.Cell
	width := 0
	for y, row := range rows {
		row = strings.TrimSpace(row)
		width = max(width, len(row))
		for x, glyph := range row {
			if glyph == '.' {
				continue
			}
			f, ok := GlyphFeatures[glyph]
			if !ok {
				return nil, model.Extents{}, fmt.Errorf("unknown glyph %q at %d,%d", glyph, x, y)
			}
			cells = append(cells, model.Cell{
				Coordinate: model.NewCoordinate(x, y, 0),
				Char:       string(glyph),
				Features:   model.NewFeatureSet(f),
			})
		}
	}
	if width == 0 {
		return nil, model.Extents{}, fmt.Errorf("empty map")
	}
	return cells, model.Extents{MaxX: width - 1, MaxY: len(rows) - 1}, nil
}
