/*package geom contains the planar geometry used to build and measure cell
membranes. Points are gonum r2.Vec values. Polygons are slices of points in
clockwise order (the order Circle produces), for which Area is positive and
Normal points towards the interior.
*/
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Eps is the separation below which two points are treated as coincident.
const Eps = 1e-10

// Distance returns the Euclidean distance between two points.
func Distance(p1, p2 r2.Vec) float64 {
	return r2.Norm(r2.Sub(p2, p1))
}

// Unit returns the unit vector pointing from p1 to p2. The result is not
// finite if the two points coincide.
func Unit(p1, p2 r2.Vec) r2.Vec {
	return r2.Unit(r2.Sub(p2, p1))
}

// Normal returns the unit vector from p1 to p2 rotated by -pi/2. For an edge
// of a clockwise polygon this is the inward-facing normal.
func Normal(p1, p2 r2.Vec) r2.Vec {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	m := math.Sqrt(dx*dx + dy*dy)
	return r2.Vec{X: dy / m, Y: -dx / m}
}

// Rotate rotates v counterclockwise about the origin by theta.
func Rotate(v r2.Vec, theta float64) r2.Vec {
	return r2.Rotate(v, theta, r2.Vec{})
}

// Finite returns true if both components of v are finite.
func Finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Modulo returns x mod d in the range [0, d), unlike the % family of
// operators, which keep the sign of x.
func Modulo(x, d float64) float64 {
	m := math.Mod(x, d)
	if m < 0 { m += d }
	return m
}
