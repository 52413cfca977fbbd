/*package integrator advances cells forward in time with a semi-implicit
Euler scheme: velocities are updated from accelerations first, and the new
velocities are used to move the points.
*/
package integrator

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/phil-mansfield/cellsim/cell"
)

// Step advances a single point by dt. The velocity is multiplied by
// 1 - decay before the acceleration is added, and the acceleration is
// zeroed afterwards.
func Step(x, v, a *r2.Vec, dt, decay float64) {
	gamma := 1 - decay
	v.X = v.X*gamma + a.X*dt
	v.Y = v.Y*gamma + a.Y*dt

	x.X += v.X * dt
	x.Y += v.Y * dt

	*a = r2.Vec{}
}

// Advance steps every membrane vertex and nucleus of cells by dt. All
// accelerations are zero when it returns.
func Advance(cells []*cell.Cell, dt, decay float64) {
	for _, c := range cells {
		for i := range c.Xs {
			Step(&c.Xs[i], &c.Vs[i], &c.As[i], dt, decay)
		}
		nuc := &c.Nucleus
		Step(&nuc.X, &nuc.V, &nuc.A, dt, decay)
	}
}
