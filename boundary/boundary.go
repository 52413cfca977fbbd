/*package boundary implements the edges of the simulated domain. A Boundary
turns the population into the set of shapes that membranes interact with
each tick.
*/
package boundary

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/phil-mansfield/cellsim/cell"
	"github.com/phil-mansfield/cellsim/geom"
)

// Mode selects a Boundary implementation.
type Mode uint8

const (
	Periodic Mode = iota
	Fixed
	None
	EndMode
)

var modeNames = [EndMode]string{"periodic", "fixed", "none"}

func (m Mode) String() string {
	if m >= EndMode { return "unknown" }
	return modeNames[m]
}

// ParseMode returns the Mode with the given (case-insensitive) name.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m := Mode(0); m < EndMode; m++ {
		if modeNames[m] == name { return m, nil }
	}
	return EndMode, fmt.Errorf(
		"Boundary mode '%s' not recognized. Must be one of [%s].",
		name, strings.Join(modeNames[:], " | "),
	)
}

// Boundary builds the interaction set for a tick. Apply may move cells
// (e.g. wrap them around a periodic domain). The returned shapes start
// with a view of every cell, in order, followed by any ghosts or walls.
type Boundary interface {
	Apply(cells []*cell.Cell, cutoff float64) []cell.Shape
}

// New returns the Boundary for a mode over a width x height domain with
// its lower corner at the origin. wallDistance is only used by Fixed.
func New(mode Mode, width, height, wallDistance float64) (Boundary, error) {
	switch mode {
	case Periodic:
		return &PeriodicBoundary{Width: width, Height: height}, nil
	case Fixed:
		return NewFixedBoundary(width, height, wallDistance), nil
	case None:
		return NoBoundary{}, nil
	}
	return nil, fmt.Errorf("Unrecognized boundary mode %d.", mode)
}

func views(cells []*cell.Cell, extra int) []cell.Shape {
	shapes := make([]cell.Shape, len(cells), len(cells)+extra)
	for i, c := range cells { shapes[i] = c.Shape() }
	return shapes
}

// NoBoundary is an open domain.
type NoBoundary struct{}

func (NoBoundary) Apply(cells []*cell.Cell, cutoff float64) []cell.Shape {
	return views(cells, 0)
}

// FixedBoundary surrounds the domain with a rectangular wall which repels
// membranes.
type FixedBoundary struct {
	Wall cell.Shape
}

// NewFixedBoundary places the walls wallDistance outside the domain.
func NewFixedBoundary(width, height, wallDistance float64) *FixedBoundary {
	d := wallDistance
	xs := []r2.Vec{
		{X: -d, Y: -d}, {X: -d, Y: height + d},
		{X: width + d, Y: height + d}, {X: width + d, Y: -d},
	}
	return &FixedBoundary{cell.Shape{
		Owner: cell.Wall, Xs: xs,
		Nucleus: r2.Vec{X: width / 2, Y: height / 2},
		MaxRadius: geom.Distance(xs[0], r2.Vec{X: width / 2, Y: height / 2}),
	}}
}

func (b *FixedBoundary) Apply(cells []*cell.Cell, cutoff float64) []cell.Shape {
	return append(views(cells, 1), b.Wall)
}

// PeriodicBoundary wraps the domain into a torus.
type PeriodicBoundary struct {
	Width, Height float64
}

// Offsets returns the displacements of the eight neighbouring images of
// the domain.
func (b *PeriodicBoundary) Offsets() [8]r2.Vec {
	w, h := b.Width, b.Height
	return [8]r2.Vec{
		{X: -w, Y: +h}, {X: 0, Y: +h}, {X: +w, Y: +h},
		{X: -w, Y: 0}, {X: +w, Y: 0},
		{X: -w, Y: -h}, {X: 0, Y: -h}, {X: +w, Y: -h},
	}
}

// Wrap moves every cell whose nucleus has left the domain back into it.
// The whole cell moves with its nucleus.
func (b *PeriodicBoundary) Wrap(cells []*cell.Cell) {
	for _, c := range cells {
		x := c.Nucleus.X
		if x.X < 0 || x.X > b.Width || x.Y < 0 || x.Y > b.Height {
			c.MoveTo(r2.Vec{X: geom.Modulo(x.X, b.Width), Y: geom.Modulo(x.Y, b.Height)})
		}
	}
}

// extent returns the bounding box of the domain and every cell.
func (b *PeriodicBoundary) extent(cells []*cell.Cell) r2.Box {
	box := r2.Box{Max: r2.Vec{X: b.Width, Y: b.Height}}
	for _, c := range cells {
		x, r := c.Nucleus.X, c.MaxRadius
		if x.X-r < box.Min.X { box.Min.X = x.X - r }
		if x.X+r > box.Max.X { box.Max.X = x.X + r }
		if x.Y-r < box.Min.Y { box.Min.Y = x.Y - r }
		if x.Y+r > box.Max.Y { box.Max.Y = x.Y + r }
	}
	return box
}

// Apply wraps the cells and adds a ghost for every image of a cell which
// comes within cutoff of the occupied region.
func (b *PeriodicBoundary) Apply(cells []*cell.Cell, cutoff float64) []cell.Shape {
	b.Wrap(cells)
	ext := b.extent(cells)

	interacts := func(center r2.Vec, r float64) bool {
		r += cutoff
		return !(center.X+r < ext.Min.X || center.X-r > ext.Max.X ||
			center.Y+r < ext.Min.Y || center.Y-r > ext.Max.Y)
	}

	shapes := views(cells, 0)
	for _, offset := range b.Offsets() {
		for _, c := range cells {
			if interacts(r2.Add(c.Nucleus.X, offset), c.MaxRadius) {
				shapes = append(shapes, c.Ghost(offset))
			}
		}
	}
	return shapes
}
