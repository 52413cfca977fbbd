package tissue

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// PoissonPacking is the packing density of a maximal Poisson-disc
	// sample with radius 1.
	PoissonPacking = 0.6967
	// poissonCandidates is the number of candidates tried around a sample
	// before it is retired.
	poissonCandidates = 30
)

var ErrSamplingExhausted = errors.New("tissue: center sampling exhausted")

// SamplingError is returned when a sampler runs out of attempts before
// placing the requested number of centers.
type SamplingError struct {
	Requested, Placed, Attempts int
}

func (err *SamplingError) Error() string {
	return fmt.Sprintf(
		"tissue: placed %d of %d requested centers after %d attempts",
		err.Placed, err.Requested, err.Attempts,
	)
}

func (err *SamplingError) Is(target error) bool {
	return target == ErrSamplingExhausted
}

// RandomCenters places n centers uniformly at random inside a
// width x height domain. Every center is at least sep from the domain edges
// and from every other center. Candidates are drawn until n are placed or
// attempts candidates have been rejected.
func RandomCenters(
	rng *rand.Rand, width, height, sep float64, n, attempts int,
) ([]r2.Vec, error) {
	if width <= 2*sep || height <= 2*sep {
		return nil, &SamplingError{n, 0, 0}
	}

	sep2 := sep * sep
	pts := make([]r2.Vec, 0, n)
	tries := 0

Outer:
	for len(pts) < n {
		if tries >= attempts {
			return nil, &SamplingError{n, len(pts), tries}
		}
		tries++

		p := r2.Vec{
			X: sep + rng.Float64()*(width-2*sep),
			Y: sep + rng.Float64()*(height-2*sep),
		}
		for _, q := range pts {
			if r2.Norm2(r2.Sub(p, q)) < sep2 { continue Outer }
		}
		pts = append(pts, p)
	}

	return pts, nil
}

// PoissonDisc samples centers with Bridson's algorithm. The disc radius is
// chosen from the packing density so that a maximal sample of the domain
// has roughly Cells points. Samples are redrawn until the count is within
// Tolerance (a fraction of Cells) of Cells.
type PoissonDisc struct {
	Width, Height float64
	// Separation is the margin kept between samples and the domain edges.
	Separation float64
	Cells      int
	Tolerance  float64
	Attempts   int
}

// NewPoissonDisc returns a sampler with a 1% tolerance and 10000 attempts.
func NewPoissonDisc(width, height, sep float64, cells int) *PoissonDisc {
	return &PoissonDisc{
		Width: width, Height: height, Separation: sep, Cells: cells,
		Tolerance: 0.01, Attempts: 10000,
	}
}

// Radius returns the minimum distance between samples.
func (pd *PoissonDisc) Radius() float64 {
	w, h := pd.Width-2*pd.Separation, pd.Height-2*pd.Separation
	return math.Sqrt(w * h * PoissonPacking / float64(pd.Cells))
}

// Centers draws samples until one has an acceptable number of points.
func (pd *PoissonDisc) Centers(rng *rand.Rand) ([]r2.Vec, error) {
	w, h := pd.Width-2*pd.Separation, pd.Height-2*pd.Separation
	if pd.Cells <= 0 || w <= 0 || h <= 0 {
		return nil, &SamplingError{pd.Cells, 0, 0}
	}
	radius := pd.Radius()

	placed := 0
	for i := 0; i < pd.Attempts; i++ {
		pts := bridson(rng, w, h, radius)
		placed = len(pts)

		diff := math.Abs(float64(len(pts)-pd.Cells)) / float64(pd.Cells)
		if diff < pd.Tolerance {
			offset := r2.Vec{X: pd.Separation, Y: pd.Separation}
			for j := range pts { pts[j] = r2.Add(pts[j], offset) }
			return pts, nil
		}
	}

	return nil, &SamplingError{pd.Cells, placed, pd.Attempts}
}

// bridson returns a maximal Poisson-disc sample of [0, w) x [0, h) where no
// two points are closer than radius.
func bridson(rng *rand.Rand, w, h, radius float64) []r2.Vec {
	radius2 := radius * radius
	cellSize := radius / math.Sqrt2
	gw, gh := int(math.Ceil(w/cellSize)), int(math.Ceil(h/cellSize))
	grid := make([]int, gw*gh)
	for i := range grid { grid[i] = -1 }

	pts := []r2.Vec{}
	queue := []int{}

	add := func(p r2.Vec) {
		grid[int(p.Y/cellSize)*gw+int(p.X/cellSize)] = len(pts)
		queue = append(queue, len(pts))
		pts = append(pts, p)
	}

	far := func(p r2.Vec) bool {
		i, j := int(p.X/cellSize), int(p.Y/cellSize)
		i0, j0 := maxInt(i-2, 0), maxInt(j-2, 0)
		i1, j1 := minInt(i+3, gw), minInt(j+3, gh)
		for y := j0; y < j1; y++ {
			for x := i0; x < i1; x++ {
				k := grid[y*gw+x]
				if k >= 0 && r2.Norm2(r2.Sub(pts[k], p)) < radius2 {
					return false
				}
			}
		}
		return true
	}

	add(r2.Vec{X: rng.Float64() * w, Y: rng.Float64() * h})

	for len(queue) > 0 {
		qi := rng.Intn(len(queue))
		s := pts[queue[qi]]

		found := false
		for j := 0; j < poissonCandidates; j++ {
			a := 2 * math.Pi * rng.Float64()
			r := math.Sqrt(rng.Float64()*3*radius2 + radius2)
			p := r2.Vec{X: s.X + r*math.Cos(a), Y: s.Y + r*math.Sin(a)}

			if p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h && far(p) {
				add(p)
				found = true
				break
			}
		}

		if !found {
			queue[qi] = queue[len(queue)-1]
			queue = queue[:len(queue)-1]
		}
	}

	return pts
}

func minInt(x, y int) int {
	if x < y { return x }
	return y
}

func maxInt(x, y int) int {
	if x > y { return x }
	return y
}
