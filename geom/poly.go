package geom

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrNoConvergence is matched by the errors ConvexSubset returns when
	// edge removal fails to terminate.
	ErrNoConvergence = errors.New("geom: convex subset did not converge")
	// ErrDegenerate is returned for polygons with no usable extent.
	ErrDegenerate = errors.New("geom: degenerate polygon")
)

// ConvergenceError reports a convex repair which was abandoned.
type ConvergenceError struct {
	Vertices, Iterations, Edges int
}

func (err *ConvergenceError) Error() string {
	return fmt.Sprintf(
		"geom: convex subset of %d-vertex polygon did not converge after "+
			"%d iterations (%d edges left)",
		err.Vertices, err.Iterations, err.Edges,
	)
}

func (err *ConvergenceError) Is(target error) bool {
	return target == ErrNoConvergence
}

// Area returns the signed area of a polygon. It is positive for clockwise
// polygons.
func Area(poly []r2.Vec) float64 {
	if len(poly) == 0 { return 0 }

	sum := 0.0
	prev := poly[len(poly)-1]
	for _, p := range poly {
		sum += prev.Y*p.X - prev.X*p.Y
		prev = p
	}
	return sum / 2
}

// Length returns the perimeter of a polygon.
func Length(poly []r2.Vec) float64 {
	if len(poly) == 0 { return 0 }

	sum := 0.0
	b := poly[len(poly)-1]
	for _, a := range poly {
		sum += Distance(a, b)
		b = a
	}
	return sum
}

// Centroid returns the center of mass of a polygon's area. Polygons with
// zero area fall back to the mean of their vertices.
func Centroid(poly []r2.Vec) r2.Vec {
	var x, y, area float64
	b := poly[len(poly)-1]
	for _, a := range poly {
		c := b.X*a.Y - a.X*b.Y
		area += c
		x += (b.X + a.X) * c
		y += (b.Y + a.Y) * c
		b = a
	}

	if area == 0 {
		mean := r2.Vec{}
		for _, p := range poly { mean = r2.Add(mean, p) }
		return r2.Scale(1/float64(len(poly)), mean)
	}

	area *= 3
	return r2.Vec{X: x / area, Y: y / area}
}

// Circle returns a regular n-gon of radius r around center, wound clockwise
// and starting at angle zero.
func Circle(center r2.Vec, r float64, n int) []r2.Vec {
	poly := make([]r2.Vec, n)
	for i := range poly {
		angle := -2 * math.Pi * float64(i) / float64(n)
		poly[i] = r2.Vec{
			X: center.X + math.Cos(angle)*r,
			Y: center.Y + math.Sin(angle)*r,
		}
	}
	return poly
}

// PerimeterPoints resamples a polygon into exactly n points spaced along its
// perimeter. Each edge receives a share of the remaining points proportional
// to its share of the remaining perimeter, so rounding errors never
// accumulate past the final edge.
func PerimeterPoints(poly []r2.Vec, n int) ([]r2.Vec, error) {
	perimeterLeft := Length(poly)
	if n < 1 || !(perimeterLeft > 0) {
		return nil, fmt.Errorf(
			"%w: cannot place %d points on a perimeter of %g",
			ErrDegenerate, n, perimeterLeft,
		)
	}

	out := make([]r2.Vec, 0, n)
	nLeft := n

	p1 := poly[len(poly)-1]
	for i := 0; i < len(poly) && nLeft > 0; i++ {
		p0 := p1
		p1 = poly[i]

		length := Distance(p0, p1)
		if length == 0 { continue }

		lineN := int(math.Round(float64(nLeft) * length / perimeterLeft))
		if i == len(poly)-1 || lineN > nLeft { lineN = nLeft }

		dir := r2.Scale(1/length, r2.Sub(p1, p0))
		for j := 0; j < lineN; j++ {
			step := float64(j) * length / float64(lineN)
			out = append(out, r2.Add(p0, r2.Scale(step, dir)))
		}

		nLeft -= lineN
		perimeterLeft -= length
	}

	// Only reachable when trailing edges have zero length.
	for ; nLeft > 0; nLeft-- { out = append(out, poly[len(poly)-1]) }

	return out, nil
}

// TranslateLines moves every edge of a polygon a distance d along its
// normal (inwards for positive d) and returns the polygon formed by the
// intersections of the shifted edges.
func TranslateLines(poly []r2.Vec, d float64) []r2.Vec {
	n := len(poly)
	out := make([]r2.Vec, n)

	for i := range poly {
		p0, p1, p2 := poly[(i+n-1)%n], poly[i], poly[(i+1)%n]

		n1 := r2.Scale(d, Normal(p0, p1))
		n2 := r2.Scale(d, Normal(p1, p2))

		s2 := r2.Add(p1, n1)
		p, ok := LineIntersection(r2.Add(p0, n1), s2, r2.Add(p1, n2), r2.Add(p2, n2))
		if !ok {
			// Collinear neighbours: the shifted lines coincide.
			p = s2
		}
		out[i] = p
	}

	return out
}

type edge struct{ a, b r2.Vec }

// ConvexSubset removes the edges of a polygon which face away from center
// (which happens when TranslateLines pushes an edge past its neighbours) and
// rebuilds the vertices from the intersections of the remaining edges,
// repeating until every edge faces center. Polygons with three or fewer
// vertices are returned unchanged.
//
// Each pass removes at least one edge, so the repair is bounded by the
// number of vertices. If it is not done by then, or fewer than three edges
// survive, a *ConvergenceError is returned.
func ConvexSubset(poly []r2.Vec, center r2.Vec) ([]r2.Vec, error) {
	if len(poly) <= 3 { return poly, nil }

	nVertices := len(poly)
	edges := make([]edge, 0, len(poly))

	for iter := 0; iter <= nVertices; iter++ {
		if len(poly) <= 3 { return poly, nil }

		edges = edges[:0]
		p1 := poly[len(poly)-1]
		for _, p := range poly {
			p0 := p1
			p1 = p
			if SignedProjectedDistance(p0, p1, center) >= 0 {
				edges = append(edges, edge{p0, p1})
			}
		}

		if len(edges) == len(poly) {
			out := make([]r2.Vec, len(poly))
			copy(out, poly)
			return out, nil
		} else if len(edges) < 3 {
			return nil, &ConvergenceError{nVertices, iter + 1, len(edges)}
		}

		next := make([]r2.Vec, len(edges))
		for i := range edges {
			e0, e1 := edges[i], edges[(i+1)%len(edges)]
			p, ok := LineIntersection(e0.a, e0.b, e1.a, e1.b)
			if !ok { p = e0.b }
			next[i] = p
		}
		poly = next
	}

	return nil, &ConvergenceError{nVertices, nVertices + 1, len(edges)}
}

// Shrink moves the edges of poly inwards by d and repairs the result so that
// it is convex with respect to center.
func Shrink(poly []r2.Vec, center r2.Vec, d float64) ([]r2.Vec, error) {
	return ConvexSubset(TranslateLines(poly, d), center)
}
