/*package quadtree implements a point quadtree used to find the membrane
vertices near a segment.

Nodes hold up to LeafSize points before splitting. Splitting stops at
MaxDepth so that coincident points cannot cause unbounded recursion.
*/
package quadtree

import (
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	LeafSize = 8
	MaxDepth = 24
)

// Point is a vertex stored in the tree. Cell and Vertex identify where it
// came from.
type Point struct {
	X            r2.Vec
	Cell, Vertex int
}

type node struct {
	box      r2.Box
	points   []Point
	children *[4]node
}

// Tree is an immutable quadtree over a set of points.
type Tree struct {
	root node
	len  int
}

// New builds a tree over points. The points slice is retained by the tree
// and should not be modified afterwards.
func New(points []Point) *Tree {
	t := &Tree{len: len(points)}
	if len(points) == 0 { return t }

	t.root.box = squareBounds(points)
	t.root.points = points
	t.root.split(0)
	return t
}

// Len returns the number of points in the tree.
func (t *Tree) Len() int { return t.len }

// squareBounds returns the smallest square containing every point.
func squareBounds(points []Point) r2.Box {
	b := r2.Box{Min: points[0].X, Max: points[0].X}
	for _, p := range points[1:] {
		if p.X.X < b.Min.X { b.Min.X = p.X.X }
		if p.X.Y < b.Min.Y { b.Min.Y = p.X.Y }
		if p.X.X > b.Max.X { b.Max.X = p.X.X }
		if p.X.Y > b.Max.Y { b.Max.Y = p.X.Y }
	}

	w, h := b.Max.X-b.Min.X, b.Max.Y-b.Min.Y
	if w > h {
		b.Max.Y = b.Min.Y + w
	} else {
		b.Max.X = b.Min.X + h
	}
	return b
}

// quadrant returns the index of the child of a node centered on mid which
// contains x.
func quadrant(mid, x r2.Vec) int {
	q := 0
	if x.X >= mid.X { q |= 1 }
	if x.Y >= mid.Y { q |= 2 }
	return q
}

func (n *node) split(depth int) {
	if len(n.points) <= LeafSize || depth >= MaxDepth { return }

	mid := r2.Scale(0.5, r2.Add(n.box.Min, n.box.Max))
	n.children = &[4]node{}
	for q := range n.children {
		child := &n.children[q]
		child.box = n.box
		if q&1 == 0 {
			child.box.Max.X = mid.X
		} else {
			child.box.Min.X = mid.X
		}
		if q&2 == 0 {
			child.box.Max.Y = mid.Y
		} else {
			child.box.Min.Y = mid.Y
		}
	}

	for _, p := range n.points {
		child := &n.children[quadrant(mid, p.X)]
		child.points = append(child.points, p)
	}
	n.points = nil

	for q := range n.children { n.children[q].split(depth + 1) }
}

func overlaps(a, b r2.Box) bool {
	return a.Min.X <= b.Max.X && b.Min.X <= a.Max.X &&
		a.Min.Y <= b.Max.Y && b.Min.Y <= a.Max.Y
}

func contains(b r2.Box, x r2.Vec) bool {
	return b.Min.X <= x.X && x.X <= b.Max.X &&
		b.Min.Y <= x.Y && x.Y <= b.Max.Y
}

// Visit calls fn on every point within box. Iteration stops early if fn
// returns false.
func (t *Tree) Visit(box r2.Box, fn func(p *Point) bool) {
	if t.len == 0 { return }
	t.root.visit(box, fn)
}

func (n *node) visit(box r2.Box, fn func(p *Point) bool) bool {
	if !overlaps(n.box, box) { return true }

	if n.children == nil {
		for i := range n.points {
			if contains(box, n.points[i].X) && !fn(&n.points[i]) {
				return false
			}
		}
		return true
	}

	for q := range n.children {
		if !n.children[q].visit(box, fn) { return false }
	}
	return true
}
