package geo

import (
	"container/heap"
	"math"
)

// Heuristic estimates the remaining cost from a to goal.
type Heuristic func(a, goal Point) float64

// TorusHeuristic is the wrapped Manhattan distance. Admissible for orthogonal
// unit-cost movement on a torus.
func TorusHeuristic(t Torus) Heuristic {
	return func(a, goal Point) float64 {
		return float64(t.Distance(a, goal))
	}
}

// Octile is (√2-1)·min(dx,dy) + max(dx,dy) on unwrapped deltas.
func Octile(a, goal Point) float64 {
	dx := math.Abs(float64(a.X - goal.X))
	dy := math.Abs(float64(a.Y - goal.Y))
	if dx < dy {
		return octileF*dx + dy
	}
	return octileF*dy + dx
}

// Pathfinder finds a route between two grid cells.
// A nil path means the goal is unreachable.
type Pathfinder interface {
	FindPath(grid Navigable, start, goal Point) []Point
}

// SearchStats counts the work done by one search.
type SearchStats struct {
	Expanded int // nodes popped and expanded
	Pushed   int // frontier insertions
}

// Searcher is an A* search parameterised by movement, wrapping and heuristic.
//
// The router uses two configurations that deliberately differ: the direct
// route is orthogonal and wraps around the map edges, transport legs move
// diagonally and stop at the edges.
type Searcher struct {
	movement  Movement
	wrap      bool
	heuristic Heuristic
}

// NewSearcher creates a searcher. A nil heuristic degrades to Dijkstra.
func NewSearcher(movement Movement, wrap bool, heuristic Heuristic) *Searcher {
	if heuristic == nil {
		heuristic = func(Point, Point) float64 { return 0 }
	}
	return &Searcher{movement: movement, wrap: wrap, heuristic: heuristic}
}

// NewDirectSearcher is the orthogonal, wrapping search used for direct routes.
func NewDirectSearcher(t Torus) *Searcher {
	return NewSearcher(Orthogonal, true, TorusHeuristic(t))
}

// NewLegSearcher is the diagonal, non-wrapping octile search used for transport legs.
func NewLegSearcher() *Searcher {
	return NewSearcher(Diagonal, false, Octile)
}

// Movement returns the configured movement model.
func (s *Searcher) Movement() Movement { return s.movement }

// Wraps reports whether the search crosses map edges.
func (s *Searcher) Wraps() bool { return s.wrap }

// FindPath implements Pathfinder.
func (s *Searcher) FindPath(grid Navigable, start, goal Point) []Point {
	path, _ := s.Search(grid, start, goal)
	return path
}

// Search runs A* from start to goal and returns the path including both
// endpoints, or nil when the open set is exhausted.
// Equal-cost paths may be returned in any order; only the cost is optimal.
func (s *Searcher) Search(grid Navigable, start, goal Point) ([]Point, SearchStats) {
	var stats SearchStats

	w, h := grid.Size()
	inside := func(p Point) bool { return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h }
	if !inside(start) || !inside(goal) {
		return nil, stats
	}
	if start == goal {
		return []Point{start}, stats
	}

	index := func(p Point) int { return p.Y*w + p.X }

	gScore := make([]float64, w*h)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	parent := make([]int32, w*h)
	closed := make([]bool, w*h)

	open := &nodeHeap{}
	heap.Init(open)

	var seq uint64
	push := func(p Point, g float64) {
		hCost := s.heuristic(p, goal)
		heap.Push(open, &pathNode{point: p, gCost: g, hCost: hCost, fCost: g + hCost, seq: seq})
		seq++
		stats.Pushed++
	}

	gScore[index(start)] = 0
	parent[index(start)] = -1
	push(start, 0)

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		ci := index(current.point)
		if closed[ci] {
			continue
		}
		closed[ci] = true
		stats.Expanded++

		if current.point == goal {
			return reconstruct(parent, ci, w), stats
		}

		var neighbors []Point
		if s.wrap {
			neighbors = grid.WrappedNeighbors(current.point, s.movement)
		} else {
			neighbors = grid.Neighbors(current.point, s.movement)
		}

		for _, n := range neighbors {
			ni := index(n)
			if closed[ni] {
				continue
			}
			tentative := current.gCost + stepCost(current.point, n)
			if tentative >= gScore[ni] {
				continue
			}
			gScore[ni] = tentative
			parent[ni] = int32(ci)
			push(n, tentative)
		}
	}

	return nil, stats
}

// stepCost is 1 for orthogonal steps and √2 for diagonal ones.
// A wrapped step changes one axis by size-1, still a single orthogonal move.
func stepCost(a, b Point) float64 {
	if a.X != b.X && a.Y != b.Y {
		return WeightDiagonal
	}
	return WeightOrthogonal
}

func reconstruct(parent []int32, goal, width int) []Point {
	path := make([]Point, 0, 32)
	for i := int32(goal); i >= 0; i = parent[i] {
		path = append(path, Point{X: int(i) % width, Y: int(i) / width})
	}
	// Reverse (A* builds path backward)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// pathNode is a frontier entry. Stale entries are skipped on pop via the closed set.
type pathNode struct {
	point Point
	gCost float64 // actual cost from start
	hCost float64 // heuristic cost to goal
	fCost float64 // gCost + hCost
	seq   uint64  // insertion order, last tie-breaker
	index int     // heap index
}

// nodeHeap implements container/heap for the A* open list
// (min-heap by fCost, then hCost, then insertion order).
type nodeHeap []*pathNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].fCost != h[j].fCost {
		return h[i].fCost < h[j].fCost
	}
	if h[i].hCost != h[j].hCost {
		return h[i].hCost < h[j].hCost
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any)   { n := x.(*pathNode); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // GC
	node.index = -1
	*h = old[:n-1]
	return node
}
