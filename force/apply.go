package force

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/phil-mansfield/cellsim/cell"
	"github.com/phil-mansfield/cellsim/geom"
)

// forEach calls fn on every cell, splitting the cells between workers
// goroutines. Worker id handles the cells with idx % workers == id, so fn
// must only write to the cell it is given.
func forEach(cells []*cell.Cell, workers int, fn func(c *cell.Cell)) {
	if workers <= 1 || len(cells) < 2 {
		for _, c := range cells { fn(c) }
		return
	}
	if workers > len(cells) { workers = len(cells) }

	out := make(chan int, workers)
	work := func(id int) {
		for i := id; i < len(cells); i += workers { fn(cells[i]) }
		out <- id
	}

	for id := 0; id < workers-1; id++ { go work(id) }
	work(workers - 1)

	for i := 0; i < workers; i++ { <-out }
}

// ApplyMembrane applies the elastic and damping forces between neighbouring
// membrane vertices and the (possibly polarized) osmotic pressure.
func ApplyMembrane(cells []*cell.Cell, p *Params) {
	forEach(cells, p.Threads, func(c *cell.Cell) { applyMembrane(c, p) })
}

func applyMembrane(c *cell.Cell, p *Params) {
	n := c.Len()
	area := c.Area()
	pol := c.Polarization(p.PolarizationFactor)

	for i := 0; i < n; i++ {
		j, k := (i+1)%n, (i+2)%n
		ri, rj, rk := c.Xs[i], c.Xs[j], c.Xs[k]

		if f, ok := Elastic(ri, rj, p.ElasticConstant, p.EquilibriumDistance); ok {
			c.Accumulate(j, cell.Elastic, f, p.StoreForces)
		}
		if f, ok := Elastic(rk, rj, p.ElasticConstant, p.EquilibriumDistance); ok {
			c.Accumulate(j, cell.Elastic, f, p.StoreForces)
		}

		if f, ok := Damping(ri, rj, c.Vs[i], c.Vs[j], p.DampingConstant); ok {
			c.Accumulate(j, cell.Damping, f, p.StoreForces)
		}
		if f, ok := Damping(rk, rj, c.Vs[k], c.Vs[j], p.DampingConstant); ok {
			c.Accumulate(j, cell.Damping, f, p.StoreForces)
		}

		f, ok := Osmosis(ri, rk, area, p.EquilibriumArea, p.OsmosisConstant, pol)
		if ok { c.Accumulate(j, cell.Osmosis, f, p.StoreForces) }
	}
}

// ApplyStiffness applies the bending resistance of the membrane. The moment
// at each vertex is converted into a pair of equal and opposite forces on
// each of its two segments, so the net force on a cell is zero.
func ApplyStiffness(cells []*cell.Cell, p *Params) {
	forEach(cells, p.Threads, func(c *cell.Cell) { applyStiffness(c, p) })
}

func applyStiffness(c *cell.Cell, p *Params) {
	n := c.Len()
	for i := 0; i < n; i++ {
		j, k := (i+1)%n, (i+2)%n
		ri, rj, rk := c.Xs[i], c.Xs[j], c.Xs[k]
		if r2.Norm2(r2.Sub(rj, ri)) == 0 || r2.Norm2(r2.Sub(rk, rj)) == 0 {
			continue
		}

		m := StiffnessMoment(ri, rj, rk, p.StiffnessConstant)

		sij := r2.Scale(-m*r2.Norm(r2.Sub(ri, rj)), geom.Normal(rj, ri))
		sjk := r2.Scale(m*r2.Norm(r2.Sub(rk, rj)), geom.Normal(rj, rk))

		c.Accumulate(k, cell.Stiffness, sjk, p.StoreForces)
		c.Accumulate(j, cell.Stiffness, r2.Scale(-1, sjk), p.StoreForces)
		c.Accumulate(i, cell.Stiffness, sij, p.StoreForces)
		c.Accumulate(j, cell.Stiffness, r2.Scale(-1, sij), p.StoreForces)
	}
}

// ApplyNucleus couples every membrane vertex to the nucleus with a spring
// and a damper, and keeps the nucleus inside the membrane with a stronger,
// shorter-ranged version of the membrane repulsion. MaxRadius is
// recomputed afterwards.
func ApplyNucleus(cells []*cell.Cell, p *Params) {
	rep := p.Repulsion.Scaled(2, 0.5)
	forEach(cells, p.Threads, func(c *cell.Cell) { applyNucleus(c, p, &rep) })
}

func applyNucleus(c *cell.Cell, p *Params, rep *Repulsion) {
	nuc := &c.Nucleus
	k, l0 := p.NucleusElasticConstant, p.NucleusEquilibriumDistance
	gamma := p.NucleusDampingConstant

	for i, x := range c.Xs {
		if f, ok := Elastic(x, nuc.X, k, l0); ok {
			c.AccumulateNucleus(cell.ElasticActin, f, p.StoreForces)
		}
		if f, ok := Elastic(nuc.X, x, k, l0); ok {
			c.Accumulate(i, cell.ElasticActin, f, p.StoreForces)
		}

		if f, ok := Damping(x, nuc.X, c.Vs[i], nuc.V, gamma); ok {
			c.AccumulateNucleus(cell.DampingActin, f, p.StoreForces)
		}
		if f, ok := Damping(nuc.X, x, nuc.V, c.Vs[i], gamma); ok {
			c.Accumulate(i, cell.DampingActin, f, p.StoreForces)
		}
	}

	for i := range c.Xs {
		r0, r1 := c.Segment(i)
		if f, ok := LennardJones(r0, r1, nuc.X, rep); ok {
			c.AccumulateNucleus(cell.LennardJones, f, p.StoreForces)
		}
	}

	c.ComputeMaxRadius()
}

// ApplyCentroidNucleus is the alternative to ApplyNucleus which pins each
// nucleus to the centroid of its membrane instead of simulating it.
func ApplyCentroidNucleus(cells []*cell.Cell, p *Params) {
	forEach(cells, p.Threads, func(c *cell.Cell) { c.CentroidNucleus() })
}

// ApplyMotility spreads each cell's self-propulsion evenly over its
// membrane vertices.
func ApplyMotility(cells []*cell.Cell, p *Params) {
	if p.MotilityConstant == 0 { return }
	forEach(cells, p.Threads, func(c *cell.Cell) {
		vec, ok := MotilityVector(c.Nucleus.X, c.Xs[0], c.Theta, p.MotilityConstant)
		if !ok { return }
		f := r2.Scale(1/float64(c.Len()), vec)
		for i := range c.Xs { c.Accumulate(i, cell.Motility, f, p.StoreForces) }
	})
}
