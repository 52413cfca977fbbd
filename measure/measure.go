/*package measure computes summary statistics of a cell population, such as
its shape index and packing fraction.
*/
package measure

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/cellsim/geom"
)

// Measurement summarizes the shapes of a population of cells.
type Measurement struct {
	// Per-cell values.
	Areas, Perimeters, ShapeIndices, ExcessPerimeters []float64

	AverageArea, AveragePerimeter float64
	AreaStdDev                    float64
	// ShapeIndex is AveragePerimeter / sqrt(AverageArea).
	ShapeIndex float64
	// Asphericity is AveragePerimeter^2 / (4 pi AverageArea), which is 1
	// for circles.
	Asphericity float64
	// ExcessPerimeter is the mean difference between each perimeter and
	// the perimeter of its convex hull.
	ExcessPerimeter float64
	// PackingFraction is the total cell area divided by the domain area, or 0
	// if the domain is empty.
	PackingFraction float64
}

// Measure measures the polygons of a width x height domain.
func Measure(polys [][]r2.Vec, width, height float64) *Measurement {
	n := len(polys)
	m := &Measurement{
		Areas:            make([]float64, n),
		Perimeters:       make([]float64, n),
		ShapeIndices:     make([]float64, n),
		ExcessPerimeters: make([]float64, n),
	}
	if n == 0 { return m }

	for i, poly := range polys {
		a, p := geom.Area(poly), geom.Length(poly)
		m.Areas[i], m.Perimeters[i] = a, p
		m.ShapeIndices[i] = p / math.Sqrt(a)
		m.ExcessPerimeters[i] = p - geom.Length(geom.Hull(poly))
	}

	m.AverageArea, m.AreaStdDev = stat.MeanStdDev(m.Areas, nil)
	if n == 1 { m.AreaStdDev = 0 }
	m.AveragePerimeter = stat.Mean(m.Perimeters, nil)
	m.ShapeIndex = m.AveragePerimeter / math.Sqrt(m.AverageArea)
	m.Asphericity = m.AveragePerimeter * m.AveragePerimeter /
		(4 * math.Pi * m.AverageArea)
	m.ExcessPerimeter = stat.Mean(m.ExcessPerimeters, nil)
	if width*height > 0 {
		m.PackingFraction = floats.Sum(m.Areas) / (width * height)
	}

	return m
}

// RadialDistances returns the distance of every point from center.
func RadialDistances(xs []r2.Vec, center r2.Vec) []float64 {
	out := make([]float64, len(xs))
	for i := range xs { out[i] = geom.Distance(xs[i], center) }
	return out
}
