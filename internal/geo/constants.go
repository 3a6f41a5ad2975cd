package geo

import "math"

// Movement selects which neighbours a search may step to.
type Movement int

const (
	// Orthogonal allows north, south, east and west steps only.
	Orthogonal Movement = iota
	// Diagonal adds the four diagonal steps, each allowed only when both
	// adjacent orthogonal cells are walkable (no corner cutting).
	Diagonal
)

func (m Movement) String() string {
	if m == Diagonal {
		return "diagonal"
	}
	return "orthogonal"
}

// NSWE direction bitmask.
// North is -Y: the map's Y axis grows downwards.
const (
	NSWEEast  byte = 1 << 0
	NSWEWest  byte = 1 << 1
	NSWESouth byte = 1 << 2
	NSWENorth byte = 1 << 3
	NSWEAll   byte = 0x0F
)

// Composite NSWE directions.
const (
	NSWENorthEast = NSWENorth | NSWEEast
	NSWENorthWest = NSWENorth | NSWEWest
	NSWESouthEast = NSWESouth | NSWEEast
	NSWESouthWest = NSWESouth | NSWEWest
)

// Step costs.
const (
	WeightOrthogonal = 1.0
	WeightDiagonal   = math.Sqrt2
)

// octileF is the octile heuristic factor √2-1.
const octileF = math.Sqrt2 - 1

type offset struct {
	dx, dy int
	flag   byte
}

// Cardinal offsets in N, E, S, W order; diagonals reference them by index.
var cardinals = [4]offset{
	{0, -1, NSWENorth},
	{1, 0, NSWEEast},
	{0, 1, NSWESouth},
	{-1, 0, NSWEWest},
}

var diagonals = [4]struct {
	offset
	adj1, adj2 int
}{
	{offset{1, -1, NSWENorthEast}, 0, 1},  // NE: need N and E
	{offset{1, 1, NSWESouthEast}, 1, 2},   // SE: need E and S
	{offset{-1, 1, NSWESouthWest}, 2, 3},  // SW: need S and W
	{offset{-1, -1, NSWENorthWest}, 3, 0}, // NW: need W and N
}

// ComputeNSWE returns the direction mask of a unit step (dx, dy).
func ComputeNSWE(dx, dy int) byte {
	var nswe byte
	if dx > 0 {
		nswe |= NSWEEast
	} else if dx < 0 {
		nswe |= NSWEWest
	}
	if dy > 0 {
		nswe |= NSWESouth
	} else if dy < 0 {
		nswe |= NSWENorth
	}
	return nswe
}
