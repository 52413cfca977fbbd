package geom

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Hull returns the convex hull of a set of points using Andrew's monotone
// chain. The hull is wound clockwise, like every other polygon in this
// package, and contains no collinear points.
func Hull(pts []r2.Vec) []r2.Vec {
	if len(pts) < 3 {
		out := make([]r2.Vec, len(pts))
		copy(out, pts)
		return out
	}

	sorted := make([]r2.Vec, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X { return sorted[i].X < sorted[j].X }
		return sorted[i].Y < sorted[j].Y
	})

	// turn > 0 for a counterclockwise turn o -> a -> b.
	turn := func(o, a, b r2.Vec) float64 {
		return r2.Cross(r2.Sub(a, o), r2.Sub(b, o))
	}

	hull := make([]r2.Vec, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]

	// The chain is counterclockwise.
	for i, j := 0, len(hull)-1; i < j; i, j = i+1, j-1 {
		hull[i], hull[j] = hull[j], hull[i]
	}
	return hull
}
