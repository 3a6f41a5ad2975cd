package model

import "fmt"

// Coordinate is a grid position on the map.
// X and Y wrap around the map edges; Z is a layer index and never wraps.
// Value type, passed by value (immutable).
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// NewCoordinate creates a Coordinate.
func NewCoordinate(x, y, z int) Coordinate {
	return Coordinate{X: x, Y: y, Z: z}
}

// WithXY returns a copy with the horizontal position replaced (immutable pattern).
func (c Coordinate) WithXY(x, y int) Coordinate {
	c.X = x
	c.Y = y
	return c
}

// SameXY reports whether both coordinates share the horizontal position, ignoring Z.
func (c Coordinate) SameXY(other Coordinate) bool {
	return c.X == other.X && c.Y == other.Y
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Extents are the inclusive upper bounds of the map.
// Every cell of a snapshot satisfies 0 <= X <= MaxX and 0 <= Y <= MaxY.
type Extents struct {
	MaxX int
	MaxY int
}

// Width returns the number of columns (MaxX+1).
func (e Extents) Width() int { return e.MaxX + 1 }

// Height returns the number of rows (MaxY+1).
func (e Extents) Height() int { return e.MaxY + 1 }

// Contains reports whether (x, y) lies inside the extents.
func (e Extents) Contains(x, y int) bool {
	return x >= 0 && x <= e.MaxX && y >= 0 && y <= e.MaxY
}

// ComputeExtents scans cells and returns the smallest extents bounding all of them.
// An empty slice yields zero extents (a 1x1 map).
func ComputeExtents(cells []Cell) Extents {
	var ext Extents
	for i := range cells {
		if cells[i].X > ext.MaxX {
			ext.MaxX = cells[i].X
		}
		if cells[i].Y > ext.MaxY {
			ext.MaxY = cells[i].Y
		}
	}
	return ext
}
