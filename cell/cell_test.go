package cell

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/phil-mansfield/cellsim/geom"
)

func TestNew(t *testing.T) {
	poly := geom.Circle(r2.Vec{X: 5, Y: 4}, 2, 10)
	c := New(3, poly)

	assert.Equal(t, 3, c.Index)
	assert.Equal(t, 10, c.Len())
	assert.Equal(t, NoPole, c.Pole)
	assert.InDelta(t, 5.0, c.Nucleus.X.X, 1e-9)
	assert.InDelta(t, 4.0, c.Nucleus.X.Y, 1e-9)
	assert.InDelta(t, 2.0, c.MaxRadius, 1e-9)

	poly[0] = r2.Vec{X: 100, Y: 100}
	assert.NotEqual(t, poly[0], c.Xs[0], "polygon was copied")
}

func TestAccumulate(t *testing.T) {
	c := New(0, geom.Circle(r2.Vec{}, 1, 4))

	c.Accumulate(1, Elastic, r2.Vec{X: 1, Y: 2}, false)
	c.Accumulate(1, Damping, r2.Vec{X: -3, Y: 1}, true)
	c.AccumulateNucleus(ElasticActin, r2.Vec{X: 0.5}, true)

	assert.Equal(t, r2.Vec{X: -2, Y: 3}, c.As[1])
	assert.Equal(t, []Force{{Damping, r2.Vec{X: -3, Y: 1}}}, c.Fs[1])
	assert.Equal(t, r2.Vec{X: 0.5}, c.Nucleus.A)
	assert.Equal(t, 1, len(c.Nucleus.Forces))

	c.ClearForces()
	assert.Equal(t, 0, len(c.Fs[1]))
	assert.Equal(t, 0, len(c.Nucleus.Forces))
	assert.Equal(t, r2.Vec{X: -2, Y: 3}, c.As[1], "accelerations are kept")
}

func TestMoveTo(t *testing.T) {
	c := New(0, geom.Circle(r2.Vec{X: 1, Y: 1}, 2, 8))
	c.MoveTo(r2.Vec{X: -4, Y: 6})

	assert.InDelta(t, -4.0, c.Nucleus.X.X, 1e-9)
	assert.InDelta(t, 6.0, c.Nucleus.X.Y, 1e-9)
	assert.InDelta(t, -2.0, c.Xs[0].X, 1e-9)
	assert.InDelta(t, 6.0, c.Xs[0].Y, 1e-9)
}

func TestPolarization(t *testing.T) {
	c := New(0, geom.Circle(r2.Vec{}, 2, 4))
	assert.Equal(t, r2.Vec{}, c.Polarization(0.5), "unpolarized")

	c.Pole = 0
	p := c.Polarization(0.5)
	assert.InDelta(t, 0.5, p.X, 1e-9)
	assert.InDelta(t, 0.0, p.Y, 1e-9)
}

func TestGhost(t *testing.T) {
	c := New(7, geom.Circle(r2.Vec{X: 1, Y: 1}, 1, 6))
	g := c.Ghost(r2.Vec{X: 10, Y: -10})

	assert.True(t, g.Ghost)
	assert.False(t, g.IsOriginal())
	assert.Equal(t, 7, g.Owner)
	assert.InDelta(t, 11.0, g.Nucleus.X, 1e-9)
	assert.InDelta(t, c.Xs[2].Y-10, g.Xs[2].Y, 1e-9)

	g.Xs[0] = r2.Vec{}
	assert.NotEqual(t, r2.Vec{}, c.Xs[0], "ghost owns its vertices")

	s := c.Shape()
	assert.True(t, s.IsOriginal())
	b := s.Bounds()
	assert.InDelta(t, 2.0, b.Max.X, 1e-9)
	assert.InDelta(t, 1-math.Sqrt(3)/2, b.Min.Y, 1e-9)
}

func TestClone(t *testing.T) {
	c := New(0, geom.Circle(r2.Vec{}, 1, 5))
	c.Links = make([]Link, 5)
	d := c.Clone()

	d.Xs[0] = r2.Vec{X: 9}
	d.Links[0].Ok = true
	assert.NotEqual(t, d.Xs[0], c.Xs[0])
	assert.False(t, c.Links[0].Ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "lennard-jones", LennardJones.String())
	assert.Equal(t, "unknown", EndKind.String())
}
