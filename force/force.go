/*package force contains the force laws acting on cells and the functions
which apply them to a population.

Every force law returns a vector and an ok flag. ok is false when the
geometry is too degenerate to give the force a direction (e.g. coincident
points). Such results must not be accumulated.
*/
package force

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/phil-mansfield/cellsim/geom"
)

// Elastic returns the spring force on rj from a spring of constant k and
// rest length l0 connecting it to ri. Elastic(ri, rj, ...) is exactly
// -Elastic(rj, ri, ...).
func Elastic(ri, rj r2.Vec, k, l0 float64) (r2.Vec, bool) {
	d := r2.Sub(rj, ri)
	l := r2.Norm(d)
	if l < geom.Eps { return r2.Vec{}, false }

	f := -k * (l - l0)
	return r2.Scale(f/l, d), true
}

// Damping returns the damping force on rj, moving with velocity vj, from
// ri, moving with velocity vi. Only the component of the relative velocity
// along the separation is damped.
func Damping(ri, rj, vi, vj r2.Vec, gamma float64) (r2.Vec, bool) {
	d := r2.Sub(rj, ri)
	l2 := r2.Norm2(d)
	if l2 < geom.Eps*geom.Eps { return r2.Vec{}, false }

	f := -gamma * r2.Dot(r2.Sub(vj, vi), d)
	return r2.Scale(f/l2, d), true
}

// Osmosis returns the pressure force on the vertex between ri and rk for a
// cell with the given area and target area a0. The force points along the
// inward normal of ri -> rk, so a cell above its target area pulls in and
// one below it pushes out. pol is the cell's polarization vector: the force
// is scaled by 1 - pol.n, making the side facing the pole push harder.
func Osmosis(ri, rk r2.Vec, area, a0, ka float64, pol r2.Vec) (r2.Vec, bool) {
	if r2.Norm2(r2.Sub(rk, ri)) < geom.Eps*geom.Eps { return r2.Vec{}, false }

	n := geom.Normal(ri, rk)
	f := ka * (area - a0) * (1 - r2.Dot(pol, n))
	return r2.Scale(f, n), true
}

// StiffnessMoment returns the bending moment at rj for the turn
// ri -> rj -> rk. It is zero for a straight line and opposes the turn
// otherwise.
func StiffnessMoment(ri, rj, rk r2.Vec, ks float64) float64 {
	t1 := math.Atan2(rj.Y-ri.Y, rj.X-ri.X)
	t2 := math.Atan2(rk.Y-rj.Y, rk.X-rj.X)
	theta := geom.Modulo(t1-t2+3*math.Pi, 2*math.Pi) - math.Pi
	return -theta * ks
}

// Repulsion holds the parameters of the short-range membrane repulsion.
type Repulsion struct {
	// Strength scales the force. The force is repulsive closer than
	// Distance, is capped at MinDistance, and vanishes past MaxDistance.
	Strength, Distance, MinDistance, MaxDistance float64
}

// Scaled returns a copy of rep with a multiplied strength and multiplied
// distances.
func (rep Repulsion) Scaled(strength, distance float64) Repulsion {
	return Repulsion{
		Strength: rep.Strength * strength,
		Distance: rep.Distance * distance,
		MinDistance: rep.MinDistance * distance,
		MaxDistance: rep.MaxDistance * distance,
	}
}

// LennardJones returns the force on p from the closest point of the segment
// [ri, rj]. The magnitude is Strength ((Distance/r)^2 - 1) / r^2 with r
// clamped to at least MinDistance. There is no force past MaxDistance.
func LennardJones(ri, rj, p r2.Vec, rep *Repulsion) (r2.Vec, bool) {
	v := r2.Sub(p, geom.ClosestPointOnSegment(ri, rj, p))
	r := r2.Norm(v)
	if r < geom.Eps || r > rep.MaxDistance { return r2.Vec{}, false }

	u := r2.Scale(1/r, v)
	if r < rep.MinDistance { r = rep.MinDistance }

	d := rep.Distance / r
	lj := rep.Strength * (d*d - 1) / (r * r)
	return r2.Scale(lj, u), true
}

// Adhesion returns the force on p from an adhesion junction at target. It
// is a spring of constant k and rest length l0.
func Adhesion(target, p r2.Vec, k, l0 float64) (r2.Vec, bool) {
	return Elastic(target, p, k, l0)
}

// MotilityVector returns the total self-propulsion force of a cell: a
// vector of magnitude m pointing from the nucleus towards vertex 0, rotated
// by the cell's heading theta.
func MotilityVector(nucleus, ref r2.Vec, theta, m float64) (r2.Vec, bool) {
	d := r2.Sub(ref, nucleus)
	l := r2.Norm(d)
	if l < geom.Eps { return r2.Vec{}, false }
	return r2.Scale(m/l, geom.Rotate(d, theta)), true
}
