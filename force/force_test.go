package force

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/phil-mansfield/cellsim/cell"
	"github.com/phil-mansfield/cellsim/geom"
)

const testEps = 1e-9

func v(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

func assertVecEqual(t *testing.T, expected, actual r2.Vec, eps float64, msg string) {
	assert.InDelta(t, expected.X, actual.X, eps, msg)
	assert.InDelta(t, expected.Y, actual.Y, eps, msg)
}

// jittered returns a circle with randomly displaced vertices and random
// velocities.
func jittered(rng *rand.Rand, index int, center r2.Vec, r float64, n int) *cell.Cell {
	c := cell.New(index, geom.Circle(center, r, n))
	for i := range c.Xs {
		c.Xs[i] = r2.Add(c.Xs[i], v(rng.Float64()-0.5, rng.Float64()-0.5))
		c.Vs[i] = v(rng.Float64()-0.5, rng.Float64()-0.5)
	}
	c.CentroidNucleus()
	return c
}

func netForce(c *cell.Cell) r2.Vec {
	sum := r2.Vec{}
	for _, a := range c.As { sum = r2.Add(sum, a) }
	return sum
}

func TestElastic(t *testing.T) {
	f, ok := Elastic(v(0, 0), v(3, 0), 2, 1)
	require.True(t, ok)
	assertVecEqual(t, v(-4, 0), f, testEps, "stretched spring pulls back")

	f, ok = Elastic(v(0, 0), v(0, 0.5), 2, 1)
	require.True(t, ok)
	assertVecEqual(t, v(0, 1), f, testEps, "compressed spring pushes out")

	_, ok = Elastic(v(1, 1), v(1, 1), 2, 1)
	assert.False(t, ok, "coincident points")
}

func TestElasticAntisymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		a := v(rng.Float64()*10, rng.Float64()*10)
		b := v(rng.Float64()*10, rng.Float64()*10)
		k, l0 := rng.Float64(), rng.Float64()*3

		fab, ok1 := Elastic(a, b, k, l0)
		fba, ok2 := Elastic(b, a, k, l0)
		require.True(t, ok1 && ok2)
		assertVecEqual(t, fab, r2.Scale(-1, fba), 1e-12, "antisymmetric")
	}
}

func TestDamping(t *testing.T) {
	f, ok := Damping(v(0, 0), v(2, 0), v(0, 0), v(1, 1), 5)
	require.True(t, ok)
	assertVecEqual(t, v(-5, 0), f, testEps, "only separating motion is damped")

	_, ok = Damping(v(0, 0), v(0, 0), v(0, 0), v(1, 1), 5)
	assert.False(t, ok)
}

func TestOsmosis(t *testing.T) {
	f, ok := Osmosis(v(0, 1), v(0, -1), 10, 8, 0.5, r2.Vec{})
	require.True(t, ok)
	assertVecEqual(t, v(-1, 0), f, testEps, "oversized cell pulls inwards")

	f, ok = Osmosis(v(0, 1), v(0, -1), 6, 8, 0.5, r2.Vec{})
	require.True(t, ok)
	assertVecEqual(t, v(1, 0), f, testEps, "undersized cell pushes outwards")

	f, ok = Osmosis(v(0, 1), v(0, -1), 10, 8, 0.5, v(0.5, 0))
	require.True(t, ok)
	assertVecEqual(t, v(-1.5, 0), f, testEps, "polarized")
}

func TestStiffnessMoment(t *testing.T) {
	assert.InDelta(t, 0.0, StiffnessMoment(v(0, 0), v(1, 0), v(2, 0), 3), testEps)
	assert.InDelta(t, -math.Pi/2*3, StiffnessMoment(v(0, 0), v(1, 0), v(1, -1), 3), testEps)
	assert.InDelta(t, math.Pi/2*3, StiffnessMoment(v(0, 0), v(1, 0), v(1, 1), 3), testEps)
}

func TestLennardJones(t *testing.T) {
	rep := &Repulsion{Strength: 0.05, Distance: 1, MinDistance: 0.4, MaxDistance: 1.3}
	a, b := v(0, 0), v(2, 0)

	f, ok := LennardJones(a, b, v(1, 0.5), rep)
	require.True(t, ok)
	assertVecEqual(t, v(0, 0.6), f, testEps, "repulsive inside Distance")

	f, ok = LennardJones(a, b, v(1, 1), rep)
	require.True(t, ok)
	assertVecEqual(t, v(0, 0), f, testEps, "zero at Distance")

	f, ok = LennardJones(a, b, v(1, 1.2), rep)
	require.True(t, ok)
	assert.True(t, f.Y < 0, "weakly attractive past Distance")

	f, ok = LennardJones(a, b, v(1, -0.1), rep)
	require.True(t, ok)
	assertVecEqual(t, v(0, -1.640625), f, testEps, "clamped at MinDistance")

	_, ok = LennardJones(a, b, v(1, 1.5), rep)
	assert.False(t, ok, "past MaxDistance")
	_, ok = LennardJones(a, b, v(1, 0), rep)
	assert.False(t, ok, "on the segment")
}

func TestNetInternalForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	c := jittered(rng, 0, v(3, 4), 5, 16)

	p := DefaultParams()
	p.OsmosisConstant = 0
	cells := []*cell.Cell{c}
	ApplyMembrane(cells, &p)
	ApplyStiffness(cells, &p)

	assertVecEqual(t, r2.Vec{}, netForce(c), 1e-12, "membrane forces")

	ApplyNucleus(cells, &p)
	total := r2.Add(netForce(c), c.Nucleus.A)
	assertVecEqual(t, r2.Vec{}, total, 1e-12, "nucleus coupling")
}

func TestStiffnessRegularPolygon(t *testing.T) {
	c := cell.New(0, geom.Circle(v(3, 4), 5, 6))
	p := DefaultParams()
	ApplyStiffness([]*cell.Cell{c}, &p)

	for i, a := range c.As {
		assert.InDelta(t, 0.0, r2.Norm(a), 1e-12, "vertex %d", i)
	}
}

func TestStoreForces(t *testing.T) {
	c := cell.New(0, geom.Circle(v(0, 0), 5, 10))
	p := DefaultParams()
	p.StoreForces = true
	ApplyMembrane([]*cell.Cell{c}, &p)

	for i := range c.Xs {
		sum := r2.Vec{}
		for _, f := range c.Fs[i] { sum = r2.Add(sum, f.F) }
		assertVecEqual(t, c.As[i], sum, 1e-12, "recorded forces add up")
		assert.Equal(t, 5, len(c.Fs[i]))
	}
}

func TestThreadsMatchSerial(t *testing.T) {
	build := func() []*cell.Cell {
		rng := rand.New(rand.NewSource(5))
		cells := make([]*cell.Cell, 7)
		for i := range cells {
			cells[i] = jittered(rng, i, v(float64(12*i), 0), 5, 20)
			cells[i].Pole = i
		}
		return cells
	}

	serial, parallel := build(), build()
	p := DefaultParams()
	ApplyMembrane(serial, &p)
	ApplyStiffness(serial, &p)
	ApplyNucleus(serial, &p)

	p.Threads = 3
	ApplyMembrane(parallel, &p)
	ApplyStiffness(parallel, &p)
	ApplyNucleus(parallel, &p)

	for i := range serial {
		assert.Equal(t, serial[i].As, parallel[i].As, "cell %d", i)
		assert.Equal(t, serial[i].Nucleus.A, parallel[i].Nucleus.A)
	}
}

func TestIntercellRepulsion(t *testing.T) {
	table := []struct {
		r, sep float64
	}{
		{2, 4.5},
		{2, 4.8},
		{3.7, 6}, // overlapping membranes
	}

	for _, test := range table {
		a := cell.New(0, geom.Circle(v(10, 10), test.r, 20))
		b := cell.New(1, geom.Circle(v(10+test.sep, 10), test.r, 20))
		cells := []*cell.Cell{a, b}
		p := DefaultParams()

		ApplyIntercell(cells, []cell.Shape{a.Shape(), b.Shape()}, &p)

		fa, fb := netForce(a), netForce(b)
		assert.True(t, fa.X < 0, "r = %g, sep = %g: a pushed away from b", test.r, test.sep)
		assert.True(t, fb.X > 0, "r = %g, sep = %g: b pushed away from a", test.r, test.sep)
		assert.InDelta(t, 0.0, fa.Y, 1e-9)
		assert.InDelta(t, -fa.X, fb.X, 1e-9)
	}
}

func TestIntercellSelfInteraction(t *testing.T) {
	c := cell.New(0, geom.Circle(v(0, 0), 2, 20))
	cells := []*cell.Cell{c}
	p := DefaultParams()

	ApplyIntercell(cells, []cell.Shape{c.Shape()}, &p)
	assert.True(t, r2.Norm(c.As[0]) > 0, "non-adjacent segments repel")
	assertVecEqual(t, r2.Vec{}, netForce(c), 1e-12, "symmetric")

	c = cell.New(0, geom.Circle(v(0, 0), 2, 20))
	cells = []*cell.Cell{c}
	p.SelfInteract = false
	ApplyIntercell(cells, []cell.Shape{c.Shape()}, &p)
	for i := range c.As {
		assert.Equal(t, r2.Vec{}, c.As[i])
	}
}

func TestIntercellGhost(t *testing.T) {
	c := cell.New(0, geom.Circle(v(10, 10), 2, 20))
	p := DefaultParams()
	p.SelfInteract = false

	shapes := []cell.Shape{c.Shape(), c.Ghost(v(4.8, 0))}
	ApplyIntercell([]*cell.Cell{c}, shapes, &p)

	f := netForce(c)
	assert.InDelta(t, -0.0702417776, f.X, 1e-8, "a ghost repels its own cell")
	assert.InDelta(t, 0.0, f.Y, 1e-12)
}

func TestAdhesion(t *testing.T) {
	a := cell.New(0, geom.Circle(v(10, 10), 2, 20))
	b := cell.New(1, geom.Circle(v(16, 10), 2, 20))
	cells := []*cell.Cell{a, b}

	p := DefaultParams()
	p.AdhesionConstant = 0.5
	p.AdhesionCutoff = 3

	ApplyAdhesion(cells, []cell.Shape{a.Shape(), b.Shape()}, &p)

	require.Equal(t, 20, len(a.Links))
	assert.True(t, a.Links[0].Ok)
	assertVecEqual(t, v(14, 10), a.Links[0].P, 1e-9, "link to closest point")
	assertVecEqual(t, v(0.5, 0), a.As[0], 1e-9, "pulled towards b")

	assert.False(t, a.Links[10].Ok, "far side has no junction")
	assert.Equal(t, r2.Vec{}, a.As[10])
}

func TestMotility(t *testing.T) {
	c := cell.New(0, geom.Circle(v(0, 0), 1, 4))
	c.Theta = math.Pi / 2
	p := DefaultParams()
	p.MotilityConstant = 0.2

	ApplyMotility([]*cell.Cell{c}, &p)
	for i := range c.As {
		assertVecEqual(t, v(0, 0.05), c.As[i], testEps, "even split")
	}

	src := rand.NewSource(3)
	AdvanceMotility([]*cell.Cell{c}, 0.1, 0, src)
	assert.Equal(t, math.Pi/2, c.Theta, "no noise")

	AdvanceMotility([]*cell.Cell{c}, 0.1, 0.1, src)
	assert.NotEqual(t, math.Pi/2, c.Theta)
}

func BenchmarkIntercell(b *testing.B) {
	cells := make([]*cell.Cell, 50)
	for i := range cells {
		x, y := float64(i%10)*11.5, float64(i/10)*11.5
		cells[i] = cell.New(i, geom.Circle(v(x, y), 5.5, 20))
	}
	shapes := make([]cell.Shape, len(cells))
	for i := range cells { shapes[i] = cells[i].Shape() }
	p := DefaultParams()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ApplyIntercell(cells, shapes, &p)
	}
}
