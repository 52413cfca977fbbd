package quadtree

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

func randomPoints(rng *rand.Rand, n int, width float64) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			X:    r2.Vec{X: rng.Float64() * width, Y: rng.Float64() * width},
			Cell: i / 10, Vertex: i % 10,
		}
	}
	return pts
}

func bruteForce(pts []Point, box r2.Box) []int {
	out := []int{}
	for _, p := range pts {
		if contains(box, p.X) { out = append(out, p.Cell*10+p.Vertex) }
	}
	sort.Ints(out)
	return out
}

func TestVisitMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pts := randomPoints(rng, 2000, 100)
	orig := append([]Point(nil), pts...)
	tree := New(pts)
	assert.Equal(t, 2000, tree.Len())

	for i := 0; i < 50; i++ {
		x, y := rng.Float64()*100, rng.Float64()*100
		w, h := rng.Float64()*20, rng.Float64()*20
		box := r2.Box{Min: r2.Vec{X: x, Y: y}, Max: r2.Vec{X: x + w, Y: y + h}}

		found := []int{}
		tree.Visit(box, func(p *Point) bool {
			found = append(found, p.Cell*10+p.Vertex)
			return true
		})
		sort.Ints(found)

		assert.Equal(t, bruteForce(orig, box), found, "box %d", i)
	}
}

func TestCoincidentPoints(t *testing.T) {
	pts := make([]Point, 100)
	for i := range pts {
		pts[i] = Point{X: r2.Vec{X: 3, Y: 3}, Vertex: i}
	}
	tree := New(pts)

	n := 0
	tree.Visit(r2.Box{Min: r2.Vec{X: 2, Y: 2}, Max: r2.Vec{X: 4, Y: 4}},
		func(p *Point) bool { n++; return true })
	assert.Equal(t, 100, n)
}

func TestVisitStops(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	tree := New(randomPoints(rng, 500, 10))

	n := 0
	tree.Visit(r2.Box{Max: r2.Vec{X: 10, Y: 10}}, func(p *Point) bool {
		n++
		return n < 5
	})
	assert.Equal(t, 5, n)
}

func TestEmpty(t *testing.T) {
	tree := New(nil)
	tree.Visit(r2.Box{Max: r2.Vec{X: 1, Y: 1}}, func(p *Point) bool {
		t.Error("visited a point in an empty tree")
		return true
	})
}

func BenchmarkBuild(b *testing.B) {
	rng := rand.New(rand.NewSource(3))
	pts := randomPoints(rng, 1000, 100)
	buf := make([]Point, len(pts))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(buf, pts)
		New(buf)
	}
}

func BenchmarkVisit(b *testing.B) {
	rng := rand.New(rand.NewSource(4))
	tree := New(randomPoints(rng, 1000, 100))
	box := r2.Box{Min: r2.Vec{X: 40, Y: 40}, Max: r2.Vec{X: 45, Y: 45}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Visit(box, func(p *Point) bool { return true })
	}
}
