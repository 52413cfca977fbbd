package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// SignedProjectedDistance returns the distance from o to the infinite line
// through p1 and p2. The sign is positive when o lies on the side that
// Normal(p1, p2) points towards.
func SignedProjectedDistance(p1, p2, o r2.Vec) float64 {
	num := (p2.Y-p1.Y)*o.X - (p2.X-p1.X)*o.Y + p2.X*p1.Y - p2.Y*p1.X
	return num / Distance(p1, p2)
}

// segmentParameter returns the parameter k of the projection of p onto the
// line a + k (b - a).
func segmentParameter(a, b, p r2.Vec) float64 {
	ab := r2.Sub(b, a)
	return r2.Dot(r2.Sub(p, a), ab) / r2.Norm2(ab)
}

// ClosestPointOnSegment returns the point on the segment [a, b] closest to
// p. A degenerate segment returns a.
func ClosestPointOnSegment(a, b, p r2.Vec) r2.Vec {
	if r2.Norm2(r2.Sub(b, a)) == 0 { return a }

	k := segmentParameter(a, b, p)
	if k < 0 {
		k = 0
	} else if k > 1 {
		k = 1
	}
	return r2.Add(a, r2.Scale(k, r2.Sub(b, a)))
}

// ProjectedPointOnSegment returns the orthogonal projection of p onto the
// line through a and b, and true if that projection falls within the segment.
func ProjectedPointOnSegment(a, b, p r2.Vec) (r2.Vec, bool) {
	if r2.Norm2(r2.Sub(b, a)) == 0 { return a, false }

	k := segmentParameter(a, b, p)
	proj := r2.Add(a, r2.Scale(k, r2.Sub(b, a)))
	return proj, k >= 0 && k <= 1
}

// LineIntersection returns the intersection of the line through p1 and p2
// with the line through p3 and p4. If the lines are parallel, the returned
// point is not finite and ok is false.
func LineIntersection(p1, p2, p3, p4 r2.Vec) (pt r2.Vec, ok bool) {
	denom := (p1.X-p2.X)*(p3.Y-p4.Y) - (p1.Y-p2.Y)*(p3.X-p4.X)

	c12 := p1.X*p2.Y - p1.Y*p2.X
	c34 := p3.X*p4.Y - p3.Y*p4.X
	pt = r2.Vec{
		X: (c12*(p3.X-p4.X) - (p1.X-p2.X)*c34) / denom,
		Y: (c12*(p3.Y-p4.Y) - (p1.Y-p2.Y)*c34) / denom,
	}

	if denom == 0 || !Finite(pt) {
		return r2.Vec{X: math.NaN(), Y: math.NaN()}, false
	}
	return pt, true
}
