/*package io handles the configuration files and input tables used by the
cellsim command.
*/
package io

import (
	"fmt"

	"github.com/phil-mansfield/table"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/phil-mansfield/cellsim/geom"
)

// ReadPolygons reads a table of polygons. Each row is a single vertex with
// the columns (polygon id, x, y), and consecutive rows with the same id
// belong to the same polygon. If centers is true, the fourth and fifth
// columns give the center of each polygon. Otherwise the centroid is used.
func ReadPolygons(fname string, centers bool) (
	polys [][]r2.Vec, cs []r2.Vec, err error,
) {
	colIdxs := []int{0, 1, 2}
	if centers { colIdxs = append(colIdxs, 3, 4) }

	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil { return nil, nil, err }

	ids, xs, ys := cols[0], cols[1], cols[2]
	if len(ids) == 0 {
		return nil, nil, fmt.Errorf("Polygon file '%s' is empty.", fname)
	}

	start := 0
	for i := 1; i <= len(ids); i++ {
		if i < len(ids) && ids[i] == ids[start] { continue }

		if i-start < 3 {
			return nil, nil, fmt.Errorf(
				"Polygon %g in '%s' has %d vertices, but needs at least 3.",
				ids[start], fname, i-start,
			)
		}

		poly := make([]r2.Vec, i-start)
		for j := range poly {
			poly[j] = r2.Vec{X: xs[start+j], Y: ys[start+j]}
		}
		if geom.Area(poly) < 0 { reverse(poly) }
		polys = append(polys, poly)

		if centers {
			cs = append(cs, r2.Vec{X: cols[3][start], Y: cols[4][start]})
		} else {
			cs = append(cs, geom.Centroid(poly))
		}

		start = i
	}

	return polys, cs, nil
}

func reverse(poly []r2.Vec) {
	for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
		poly[i], poly[j] = poly[j], poly[i]
	}
}
