/*package tissue builds the initial cells of a simulation: it samples cell
centers, turns tessellation polygons into separated membranes, and assigns
random polarizations and motility headings.
*/
package tissue

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/phil-mansfield/cellsim/cell"
	"github.com/phil-mansfield/cellsim/geom"
)

// Membranes shrinks each polygon towards its center by shrink and resamples
// its perimeter with n equally spaced vertices. The polygons must be
// clockwise and convex with respect to their centers after shrinking (which
// Voronoi cells are). Errors are wrapped with the index of the failing
// polygon.
func Membranes(
	polys [][]r2.Vec, centers []r2.Vec, shrink float64, n int,
) ([][]r2.Vec, error) {
	if len(polys) != len(centers) {
		return nil, fmt.Errorf(
			"tissue: %d polygons but %d centers", len(polys), len(centers),
		)
	}

	out := make([][]r2.Vec, len(polys))
	for i := range polys {
		poly := polys[i]
		if shrink > 0 {
			var err error
			poly, err = geom.Shrink(poly, centers[i], shrink)
			if err != nil { return nil, fmt.Errorf("tissue: polygon %d: %w", i, err) }
		}

		pts, err := geom.PerimeterPoints(poly, n)
		if err != nil { return nil, fmt.Errorf("tissue: polygon %d: %w", i, err) }
		out[i] = pts
	}

	return out, nil
}

// Cells creates one cell per polygon with Membranes.
func Cells(
	polys [][]r2.Vec, centers []r2.Vec, shrink float64, n int,
) ([]*cell.Cell, error) {
	membranes, err := Membranes(polys, centers, shrink, n)
	if err != nil { return nil, err }

	cells := make([]*cell.Cell, len(membranes))
	for i := range cells { cells[i] = cell.New(i, membranes[i]) }
	return cells, nil
}

// Circles returns an n-gon around each center. The radius of each circle is
// capped so that it stays at least gap from the circle around its nearest
// neighbour. If period is non-zero, distances use the nearest periodic
// image in a domain of that size.
func Circles(
	centers []r2.Vec, radius, gap float64, n int, period r2.Vec,
) [][]r2.Vec {
	out := make([][]r2.Vec, len(centers))
	for i, c := range centers {
		r := radius
		if nearest := nearestNeighbour(centers, i, period); nearest > 0 {
			r = math.Min(r, (nearest-gap)/2)
			if r <= 0 { r = nearest / 4 }
		}
		out[i] = geom.Circle(c, r, n)
	}
	return out
}

func nearestNeighbour(centers []r2.Vec, i int, period r2.Vec) float64 {
	min := math.Inf(+1)
	for j := range centers {
		if j == i { continue }
		d := r2.Sub(centers[j], centers[i])
		if period.X > 0 { d.X -= period.X * math.Round(d.X/period.X) }
		if period.Y > 0 { d.Y -= period.Y * math.Round(d.Y/period.Y) }
		min = math.Min(min, r2.Norm(d))
	}
	if math.IsInf(min, +1) { return 0 }
	return min
}

// RandomPolarization points every cell at a uniformly chosen membrane
// vertex.
func RandomPolarization(rng *rand.Rand, cells []*cell.Cell) {
	for _, c := range cells { c.Pole = rng.Intn(c.Len()) }
}

// RandomHeadings gives every cell a uniformly distributed motility heading
// in [0, 2 pi).
func RandomHeadings(rng *rand.Rand, cells []*cell.Cell) {
	for _, c := range cells { c.Theta = 2 * math.Pi * rng.Float64() }
}
