/*package cell contains the in-memory representation of cells: a cyclic
membrane of vertices and a nucleus, each with its own velocity and
acceleration accumulator.
*/
package cell

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/phil-mansfield/cellsim/geom"
)

// NoPole is the Pole value of an unpolarized cell.
const NoPole = -1

// Kind identifies the physical origin of a force contribution.
type Kind uint8

const (
	Elastic Kind = iota
	Damping
	Osmosis
	Stiffness
	ElasticActin
	DampingActin
	LennardJones
	Adhesion
	Motility
	EndKind
)

var kindNames = [EndKind]string{
	"elastic", "damping", "osmosis", "stiffness", "elastic-actin",
	"damping-actin", "lennard-jones", "adhesion", "motility",
}

func (k Kind) String() string {
	if k >= EndKind { return "unknown" }
	return kindNames[k]
}

// Force is a single recorded contribution to a point's acceleration.
type Force struct {
	Kind Kind
	F    r2.Vec
}

// Point is a single simulated point mass.
type Point struct {
	X, V, A r2.Vec
	Forces  []Force
}

// Link is the adhesion target of a single membrane vertex.
type Link struct {
	P  r2.Vec
	Ok bool
}

// Cell is a single simulated cell. The membrane is stored as parallel
// slices which are owned by the cell: Xs[i], Vs[i], As[i] and Fs[i] all
// refer to vertex i.
type Cell struct {
	// Index is stable over the life of a simulation and is used to refer
	// back to a cell from its ghosts.
	Index int

	Xs, Vs, As []r2.Vec
	Fs         [][]Force

	Nucleus Point

	// MaxRadius is the largest distance between the nucleus and a vertex.
	MaxRadius float64
	// Pole is the index of the vertex the cell is polarized towards, or
	// NoPole.
	Pole int
	// Theta is the heading of the motility force relative to vertex 0.
	Theta float64
	// Links is nil unless adhesion is in use.
	Links []Link
}

// New creates a stationary cell from a polygon. The polygon is copied and
// the nucleus is placed at its centroid.
func New(index int, poly []r2.Vec) *Cell {
	n := len(poly)
	c := &Cell{
		Index: index,
		Xs: make([]r2.Vec, n), Vs: make([]r2.Vec, n), As: make([]r2.Vec, n),
		Fs: make([][]Force, n),
		Pole: NoPole,
	}
	copy(c.Xs, poly)
	c.CentroidNucleus()
	return c
}

// Len returns the number of membrane vertices.
func (c *Cell) Len() int { return len(c.Xs) }

// Segment returns the endpoints of the membrane segment ending at vertex i.
func (c *Cell) Segment(i int) (r0, r1 r2.Vec) {
	n := len(c.Xs)
	return c.Xs[(i+n-1)%n], c.Xs[i]
}

// Accumulate adds f to the acceleration of vertex i. The contribution is
// also recorded if store is true.
func (c *Cell) Accumulate(i int, kind Kind, f r2.Vec, store bool) {
	c.As[i] = r2.Add(c.As[i], f)
	if store { c.Fs[i] = append(c.Fs[i], Force{kind, f}) }
}

// AccumulateNucleus adds f to the acceleration of the nucleus.
func (c *Cell) AccumulateNucleus(kind Kind, f r2.Vec, store bool) {
	c.Nucleus.A = r2.Add(c.Nucleus.A, f)
	if store { c.Nucleus.Forces = append(c.Nucleus.Forces, Force{kind, f}) }
}

// ClearForces empties the recorded force lists. Accelerations are left to
// the integrator, which zeroes them.
func (c *Cell) ClearForces() {
	for i := range c.Fs { c.Fs[i] = c.Fs[i][:0] }
	c.Nucleus.Forces = c.Nucleus.Forces[:0]
}

// ComputeMaxRadius updates MaxRadius from the current geometry.
func (c *Cell) ComputeMaxRadius() {
	r2Max := 0.0
	for _, x := range c.Xs {
		r2Max = math.Max(r2Max, r2.Norm2(r2.Sub(x, c.Nucleus.X)))
	}
	c.MaxRadius = math.Sqrt(r2Max)
}

// CentroidNucleus moves the nucleus to the centroid of the membrane.
func (c *Cell) CentroidNucleus() {
	c.Nucleus.X = geom.Centroid(c.Xs)
	c.ComputeMaxRadius()
}

// Translate moves the entire cell by d.
func (c *Cell) Translate(d r2.Vec) {
	for i := range c.Xs { c.Xs[i] = r2.Add(c.Xs[i], d) }
	c.Nucleus.X = r2.Add(c.Nucleus.X, d)
}

// MoveTo translates the cell so that its nucleus is at p.
func (c *Cell) MoveTo(p r2.Vec) {
	c.Translate(r2.Sub(p, c.Nucleus.X))
}

// Area returns the signed area of the membrane.
func (c *Cell) Area() float64 { return geom.Area(c.Xs) }

// Perimeter returns the length of the membrane.
func (c *Cell) Perimeter() float64 { return geom.Length(c.Xs) }

// Polarization returns the unit vector from the nucleus to the pole vertex
// scaled by factor, or the zero vector for an unpolarized cell.
func (c *Cell) Polarization(factor float64) r2.Vec {
	if c.Pole == NoPole || c.Pole >= len(c.Xs) { return r2.Vec{} }

	d := r2.Sub(c.Xs[c.Pole], c.Nucleus.X)
	m := r2.Norm(d)
	if m < geom.Eps { return r2.Vec{} }
	return r2.Scale(factor/m, d)
}

// Clone returns a deep copy of the cell.
func (c *Cell) Clone() *Cell {
	out := *c
	out.Xs = append([]r2.Vec(nil), c.Xs...)
	out.Vs = append([]r2.Vec(nil), c.Vs...)
	out.As = append([]r2.Vec(nil), c.As...)
	out.Fs = make([][]Force, len(c.Fs))
	for i := range c.Fs {
		out.Fs[i] = append([]Force(nil), c.Fs[i]...)
	}
	out.Nucleus.Forces = append([]Force(nil), c.Nucleus.Forces...)
	if c.Links != nil {
		out.Links = append([]Link(nil), c.Links...)
	}
	return &out
}
