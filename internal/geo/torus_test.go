package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/buttermap/internal/model"
)

func TestWrapAxis(t *testing.T) {
	tests := []struct {
		name string
		v    int
		size int
		want int
	}{
		{"inside", 3, 5, 3},
		{"upper edge", 5, 5, 0},
		{"negative", -1, 5, 4},
		{"far negative", -11, 5, 4},
		{"far positive", 12, 5, 2},
		{"degenerate size", 7, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapAxis(tt.v, tt.size))
		})
	}
}

func TestNewTorusFromExtents(t *testing.T) {
	tor := NewTorus(model.Extents{MaxX: 4, MaxY: 2})
	assert.Equal(t, Torus{Width: 5, Height: 3}, tor)
	assert.Equal(t, model.NewCoordinate(4, 1, 7), tor.WrapCoordinate(model.NewCoordinate(-1, 4, 7)))
}

func TestTorusDistanceProperties(t *testing.T) {
	for _, tor := range []Torus{{Width: 5, Height: 5}, {Width: 6, Height: 4}, {Width: 1, Height: 7}} {
		for ax := 0; ax < tor.Width; ax++ {
			for ay := 0; ay < tor.Height; ay++ {
				a := Point{ax, ay}
				assert.Equal(t, 0, tor.Distance(a, a))
				for bx := 0; bx < tor.Width; bx++ {
					for by := 0; by < tor.Height; by++ {
						b := Point{bx, by}
						assert.Equal(t, tor.Distance(a, b), tor.Distance(b, a))
						assert.LessOrEqual(t, AxisDistance(ax, bx, tor.Width), tor.Width/2)
						assert.LessOrEqual(t, AxisDistance(ay, by, tor.Height), tor.Height/2)
					}
				}
			}
		}
	}
}

func TestTorusDistanceWraps(t *testing.T) {
	tor := Torus{Width: 5, Height: 5}
	assert.Equal(t, 1, tor.Distance(Point{0, 0}, Point{4, 0}))
	assert.Equal(t, 2, tor.Distance(Point{0, 0}, Point{4, 4}))
	assert.Equal(t, 4, tor.Distance(Point{0, 0}, Point{2, 2}))
	// unwrapped inputs are folded first
	assert.Equal(t, 0, tor.Distance(Point{-5, 10}, Point{0, 0}))
	assert.Equal(t, 1, tor.CoordinateDistance(model.NewCoordinate(0, 0, 0), model.NewCoordinate(0, 4, 3)))
}

func TestTorusDelta(t *testing.T) {
	tor := Torus{Width: 5, Height: 4}

	dx, dy := tor.Delta(Point{0, 0}, Point{4, 0})
	assert.Equal(t, -1, dx)
	assert.Equal(t, 0, dy)

	dx, dy = tor.Delta(Point{4, 3}, Point{0, 0})
	assert.Equal(t, 1, dx)
	assert.Equal(t, 1, dy)

	dx, dy = tor.Delta(Point{1, 1}, Point{2, 0})
	assert.Equal(t, 1, dx)
	assert.Equal(t, -1, dy)
}
