package force

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/phil-mansfield/cellsim/cell"
	"github.com/phil-mansfield/cellsim/geom"
	"github.com/phil-mansfield/cellsim/quadtree"
)

// VertexTree returns a quadtree over every membrane vertex of cells. Points
// refer back to cells by their position in the slice, not their Index.
func VertexTree(cells []*cell.Cell) *quadtree.Tree {
	n := 0
	for _, c := range cells { n += c.Len() }

	pts := make([]quadtree.Point, 0, n)
	for ci, c := range cells {
		for i, x := range c.Xs {
			pts = append(pts, quadtree.Point{X: x, Cell: ci, Vertex: i})
		}
	}
	return quadtree.New(pts)
}

// ApplyIntercell applies membrane repulsion from every segment of every
// shape onto nearby vertices of the original cells. shapes normally
// contains a view of every cell plus any ghosts and walls. A vertex never
// interacts with the two segments it belongs to, and never with its own
// cell at all if SelfInteract is false. Ghosts of a cell do interact with
// it.
func ApplyIntercell(cells []*cell.Cell, shapes []cell.Shape, p *Params) {
	tree := VertexTree(cells)
	rep := &p.Repulsion
	rmax := rep.MaxDistance

	for si := range shapes {
		s := &shapes[si]
		n := len(s.Xs)
		original := s.IsOriginal()

		for i := 0; i < n; i++ {
			r0, r1 := s.Segment(i)
			box := r2.Box{
				Min: r2.Vec{X: math.Min(r0.X, r1.X) - rmax, Y: math.Min(r0.Y, r1.Y) - rmax},
				Max: r2.Vec{X: math.Max(r0.X, r1.X) + rmax, Y: math.Max(r0.Y, r1.Y) + rmax},
			}

			tree.Visit(box, func(pt *quadtree.Point) bool {
				c := cells[pt.Cell]
				if original && c.Index == s.Owner {
					if !p.SelfInteract { return true }
					if pt.Vertex == i || (pt.Vertex+1)%n == i { return true }
				}

				if f, ok := LennardJones(r0, r1, pt.X, rep); ok {
					c.Accumulate(pt.Vertex, cell.LennardJones, f, p.StoreForces)
				}
				return true
			})
		}
	}
}

// ApplyAdhesion links every membrane vertex to the closest point on a
// neighbouring shape and pulls it towards that point with a spring. The
// links are stored in each cell's Links slice.
func ApplyAdhesion(cells []*cell.Cell, shapes []cell.Shape, p *Params) {
	for _, c := range cells {
		if len(c.Links) != c.Len() { c.Links = make([]cell.Link, c.Len()) }

		for i, x := range c.Xs {
			link, ok := closestNeighbourPoint(c, x, shapes, p.AdhesionRange)
			if !ok || geom.Distance(link, x) >= p.AdhesionCutoff {
				c.Links[i] = cell.Link{}
				continue
			}
			c.Links[i] = cell.Link{P: link, Ok: true}

			f, ok := Adhesion(link, x, p.AdhesionConstant, p.AdhesionDistance)
			if ok { c.Accumulate(i, cell.Adhesion, f, p.StoreForces) }
		}
	}
}

func closestNeighbourPoint(
	c *cell.Cell, x r2.Vec, shapes []cell.Shape, rng float64,
) (r2.Vec, bool) {
	minDist2, found := math.Inf(+1), false
	var minPt r2.Vec

	for si := range shapes {
		s := &shapes[si]
		if s.Owner == cell.Wall || (s.IsOriginal() && s.Owner == c.Index) {
			continue
		}
		if geom.Distance(s.Nucleus, c.Nucleus.X) >= rng { continue }

		for j := range s.Xs {
			r0, r1 := s.Segment(j)
			pt := geom.ClosestPointOnSegment(r0, r1, x)
			if d2 := r2.Norm2(r2.Sub(pt, x)); d2 < minDist2 {
				minDist2, minPt, found = d2, pt, true
			}
		}
	}

	return minPt, found
}

// AdvanceMotility rotates each cell's motility heading by a random angle
// drawn from a normal distribution with variance 2 D dt.
func AdvanceMotility(cells []*cell.Cell, dt, D float64, src rand.Source) {
	if D == 0 { return }
	norm := distuv.Normal{Mu: 0, Sigma: math.Sqrt(2 * D * dt), Src: src}
	for _, c := range cells {
		c.Theta += norm.Rand()
	}
}
