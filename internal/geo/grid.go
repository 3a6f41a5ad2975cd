package geo

import "github.com/udisondev/buttermap/internal/model"

// Navigable is the view of a walkability grid a search runs against.
// The wrapped-neighbour operation is part of the grid itself; searches never
// patch neighbour generation from the outside.
type Navigable interface {
	Size() (width, height int)
	Walkable(x, y int) bool
	// Neighbors returns walkable neighbours of p inside the grid bounds.
	Neighbors(p Point, movement Movement) []Point
	// WrappedNeighbors returns walkable neighbours of p, folding steps that
	// leave the grid back onto the opposite edge.
	WrappedNeighbors(p Point, movement Movement) []Point
}

// Grid is a binary walkable/blocked matrix sized to the map extents.
// Row-major, index y*width+x.
type Grid struct {
	width, height int
	blocked       []bool
}

// NewGrid allocates a fully walkable grid.
func NewGrid(width, height int) *Grid {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &Grid{width: width, height: height, blocked: make([]bool, width*height)}
}

// BuildGrid marks every known cell whose features intersect avoid as blocked.
// Unknown cells stay walkable. Layers are not separated: a blocked cell on any
// Z blocks its (x, y) column.
func BuildGrid(snap *model.Snapshot, avoid model.FeatureSet) *Grid {
	ext := snap.Extents()
	g := NewGrid(ext.Width(), ext.Height())
	if avoid.Empty() {
		return g
	}
	snap.Each(func(c *model.Cell) {
		if c.Features.Intersects(avoid) {
			g.SetWalkable(c.X, c.Y, false)
		}
	})
	return g
}

// Size returns the grid dimensions.
func (g *Grid) Size() (int, int) {
	return g.width, g.height
}

// Contains reports whether (x, y) lies inside the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Walkable reports whether (x, y) can be entered. Outside the grid is never walkable.
func (g *Grid) Walkable(x, y int) bool {
	if !g.Contains(x, y) {
		return false
	}
	return !g.blocked[y*g.width+x]
}

// SetWalkable marks (x, y). Out-of-range positions are ignored.
func (g *Grid) SetWalkable(x, y int, walkable bool) {
	if !g.Contains(x, y) {
		return
	}
	g.blocked[y*g.width+x] = !walkable
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, blocked: make([]bool, len(g.blocked))}
	copy(c.blocked, g.blocked)
	return c
}

// Neighbors implements Navigable.
func (g *Grid) Neighbors(p Point, movement Movement) []Point {
	return g.neighbors(p, movement, false)
}

// WrappedNeighbors implements Navigable.
func (g *Grid) WrappedNeighbors(p Point, movement Movement) []Point {
	return g.neighbors(p, movement, true)
}

func (g *Grid) neighbors(p Point, movement Movement, wrap bool) []Point {
	out := make([]Point, 0, 8)

	var open [4]bool // N, E, S, W
	for i, d := range cardinals {
		n, ok := g.step(p, d.dx, d.dy, wrap)
		if !ok {
			continue
		}
		open[i] = true
		out = append(out, n)
	}

	if movement != Diagonal {
		return out
	}

	for _, d := range diagonals {
		if !open[d.adj1] || !open[d.adj2] {
			continue
		}
		if n, ok := g.step(p, d.dx, d.dy, wrap); ok {
			out = append(out, n)
		}
	}
	return out
}

func (g *Grid) step(p Point, dx, dy int, wrap bool) (Point, bool) {
	n := Point{X: p.X + dx, Y: p.Y + dy}
	if wrap {
		n.X = WrapAxis(n.X, g.width)
		n.Y = WrapAxis(n.Y, g.height)
	}
	return n, g.Walkable(n.X, n.Y)
}
