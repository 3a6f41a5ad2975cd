package geo

import "github.com/udisondev/buttermap/internal/model"

// Point is a horizontal grid position. Layers are not part of the search space.
type Point struct {
	X, Y int
}

// PointOf drops the layer of a map coordinate.
func PointOf(c model.Coordinate) Point {
	return Point{X: c.X, Y: c.Y}
}

// Coordinate lifts p back onto layer z.
func (p Point) Coordinate(z int) model.Coordinate {
	return model.Coordinate{X: p.X, Y: p.Y, Z: z}
}

// Torus is the wrapped metric space of a map: moving past one edge enters from the opposite one.
type Torus struct {
	Width  int
	Height int
}

// NewTorus returns the torus spanned by the map extents.
func NewTorus(ext model.Extents) Torus {
	return Torus{Width: ext.Width(), Height: ext.Height()}
}

// WrapAxis folds v into [0, size) as ((v mod size) + size) mod size.
func WrapAxis(v, size int) int {
	if size <= 0 {
		return 0
	}
	return ((v % size) + size) % size
}

// Wrap folds p onto the map.
func (t Torus) Wrap(p Point) Point {
	return Point{X: WrapAxis(p.X, t.Width), Y: WrapAxis(p.Y, t.Height)}
}

// WrapCoordinate folds c onto the map. Z is left untouched.
func (t Torus) WrapCoordinate(c model.Coordinate) model.Coordinate {
	return c.WithXY(WrapAxis(c.X, t.Width), WrapAxis(c.Y, t.Height))
}

// AxisDistance is the shorter way around one axis: min(|a-b|, size-|a-b|) on wrapped values.
func AxisDistance(a, b, size int) int {
	raw := WrapAxis(a, size) - WrapAxis(b, size)
	if raw < 0 {
		raw = -raw
	}
	if size-raw < raw {
		return size - raw
	}
	return raw
}

// Distance is the wrapped Manhattan distance between a and b.
// Symmetric, zero for equal points, each axis contributes at most size/2.
func (t Torus) Distance(a, b Point) int {
	return AxisDistance(a.X, b.X, t.Width) + AxisDistance(a.Y, b.Y, t.Height)
}

// CoordinateDistance is Distance on map coordinates; Z is ignored.
func (t Torus) CoordinateDistance(a, b model.Coordinate) int {
	return t.Distance(PointOf(a), PointOf(b))
}

// Delta returns the signed shortest step from a to b on each axis,
// so that crossing an edge yields -1/+1 instead of the raw jump.
func (t Torus) Delta(a, b Point) (dx, dy int) {
	return axisDelta(a.X, b.X, t.Width), axisDelta(a.Y, b.Y, t.Height)
}

func axisDelta(a, b, size int) int {
	d := WrapAxis(b-a, size)
	if d > size/2 {
		d -= size
	}
	return d
}
