package cell

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Wall is the Owner of shapes which do not belong to any cell.
const Wall = -1

// Shape is read-only membrane geometry which exerts forces on cells. A
// Shape is either a view of an original cell, a translated ghost of one, or
// a wall. Shapes never receive forces.
type Shape struct {
	// Owner is the Index of the cell this shape was made from, or Wall.
	Owner int
	Ghost bool

	Xs        []r2.Vec
	Nucleus   r2.Vec
	MaxRadius float64
}

// Shape returns a view of the cell. The view shares the cell's vertex
// slice.
func (c *Cell) Shape() Shape {
	return Shape{
		Owner: c.Index, Xs: c.Xs,
		Nucleus: c.Nucleus.X, MaxRadius: c.MaxRadius,
	}
}

// Ghost returns a copy of the cell translated by offset.
func (c *Cell) Ghost(offset r2.Vec) Shape {
	xs := make([]r2.Vec, len(c.Xs))
	for i := range xs { xs[i] = r2.Add(c.Xs[i], offset) }
	return Shape{
		Owner: c.Index, Ghost: true, Xs: xs,
		Nucleus: r2.Add(c.Nucleus.X, offset), MaxRadius: c.MaxRadius,
	}
}

// IsOriginal returns true if the shape is a view of the cell it belongs to.
func (s *Shape) IsOriginal() bool { return !s.Ghost && s.Owner != Wall }

// Segment returns the endpoints of the segment ending at vertex i.
func (s *Shape) Segment(i int) (r0, r1 r2.Vec) {
	n := len(s.Xs)
	return s.Xs[(i+n-1)%n], s.Xs[i]
}

// Bounds returns the bounding box of the shape.
func (s *Shape) Bounds() r2.Box {
	b := r2.Box{Min: s.Xs[0], Max: s.Xs[0]}
	for _, x := range s.Xs[1:] {
		if x.X < b.Min.X { b.Min.X = x.X }
		if x.Y < b.Min.Y { b.Min.Y = x.Y }
		if x.X > b.Max.X { b.Max.X = x.X }
		if x.Y > b.Max.Y { b.Max.Y = x.Y }
	}
	return b
}
