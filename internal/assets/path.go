package assets

import (
	"container/heap"
	"image"
	"math"
)

// Walkable reports whether the cell at p holds a tile. Empty cells and
// cells outside the map block movement.
func (tm *TileMap) Walkable(p image.Point) bool {
	return tm.At(p.Y, p.X) >= 0
}

type pathNode struct {
	p      image.Point
	g, f   float64
	parent *pathNode
	index  int
}

type openList []*pathNode

func (o openList) Len() int           { return len(o) }
func (o openList) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openList) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}

func (o *openList) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*o)
	*o = append(*o, n)
}

func (o *openList) Pop() any {
	old := *o
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*o = old[:len(old)-1]
	return n
}

// Straight moves first, then diagonals.
var neighbours = [8]image.Point{
	{0, 1}, {-1, 0}, {0, -1}, {1, 0},
	{-1, 1}, {-1, -1}, {1, -1}, {1, 1},
}

// FindPath returns the cells from start to goal inclusive using A* with
// 8-way movement. Diagonal steps may not cut a blocked corner. Returns nil
// if either end is blocked or no path exists.
func (tm *TileMap) FindPath(start, goal image.Point) []image.Point {
	if !tm.Walkable(start) || !tm.Walkable(goal) {
		return nil
	}

	open := &openList{}
	nodes := map[image.Point]*pathNode{}
	closed := map[image.Point]bool{}

	first := &pathNode{p: start, f: octile(start, goal)}
	heap.Push(open, first)
	nodes[start] = first

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pathNode)
		if cur.p == goal {
			return cur.path()
		}
		closed[cur.p] = true

		for i, d := range neighbours {
			next := cur.p.Add(d)
			if closed[next] || !tm.Walkable(next) {
				continue
			}
			cost := 1.0
			if i >= 4 {
				if !tm.Walkable(image.Pt(cur.p.X+d.X, cur.p.Y)) || !tm.Walkable(image.Pt(cur.p.X, cur.p.Y+d.Y)) {
					continue
				}
				cost = math.Sqrt2
			}

			g := cur.g + cost
			n, seen := nodes[next]
			switch {
			case !seen:
				n = &pathNode{p: next, g: g, f: g + octile(next, goal), parent: cur}
				nodes[next] = n
				heap.Push(open, n)
			case g < n.g:
				n.f -= n.g - g
				n.g = g
				n.parent = cur
				heap.Fix(open, n.index)
			}
		}
	}
	return nil
}

func (n *pathNode) path() []image.Point {
	var out []image.Point
	for ; n != nil; n = n.parent {
		out = append(out, n.p)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// octile is the exact cost between two cells on an open 8-way grid.
func octile(a, b image.Point) float64 {
	dx := math.Abs(float64(b.X - a.X))
	dy := math.Abs(float64(b.Y - a.Y))
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}
