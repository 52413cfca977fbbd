package sim

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/phil-mansfield/cellsim/cell"
)

// CellState is a copy of the observable state of one cell.
type CellState struct {
	Index             int
	Xs, Vs            []r2.Vec
	Nucleus, NucleusV r2.Vec
	Area, Perimeter   float64
	Pole              int
	Theta             float64
}

// Snapshot is a deep copy of a simulation which later ticks do not modify.
type Snapshot struct {
	Cells []CellState
	// Ghosts holds the ghost and wall shapes of the last tick.
	Ghosts []cell.Shape

	Phase              Phase
	PhaseTime, Elapsed float64
	Ticks              int
}

// Snapshot copies the current state of the simulation.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Cells: make([]CellState, len(s.cells)),
		Phase: s.phase, PhaseTime: s.phaseTime, Elapsed: s.elapsed,
		Ticks: s.ticks,
	}

	for i, c := range s.cells {
		snap.Cells[i] = CellState{
			Index:     c.Index,
			Xs:        append([]r2.Vec(nil), c.Xs...),
			Vs:        append([]r2.Vec(nil), c.Vs...),
			Nucleus:   c.Nucleus.X,
			NucleusV:  c.Nucleus.V,
			Area:      c.Area(),
			Perimeter: c.Perimeter(),
			Pole:      c.Pole,
			Theta:     c.Theta,
		}
	}

	for _, sh := range s.shapes {
		if sh.IsOriginal() { continue }
		sh.Xs = append([]r2.Vec(nil), sh.Xs...)
		snap.Ghosts = append(snap.Ghosts, sh)
	}

	return snap
}

// Polygons returns the membrane of every cell.
func (snap *Snapshot) Polygons() [][]r2.Vec {
	polys := make([][]r2.Vec, len(snap.Cells))
	for i := range snap.Cells { polys[i] = snap.Cells[i].Xs }
	return polys
}

// Nuclei returns the nucleus position of every cell.
func (snap *Snapshot) Nuclei() []r2.Vec {
	xs := make([]r2.Vec, len(snap.Cells))
	for i := range snap.Cells { xs[i] = snap.Cells[i].Nucleus }
	return xs
}
