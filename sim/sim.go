/*package sim drives a simulation forward one tick at a time. A tick
replicates the cells across the boundary, applies every force, integrates,
and advances the relax/press phase machine.
*/
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/exp/rand"

	"github.com/phil-mansfield/cellsim/boundary"
	"github.com/phil-mansfield/cellsim/cell"
	"github.com/phil-mansfield/cellsim/force"
	"github.com/phil-mansfield/cellsim/geom"
	"github.com/phil-mansfield/cellsim/integrator"
	"github.com/phil-mansfield/cellsim/io"
)

var (
	// ErrNonFinite is returned by Step when a position or velocity stops
	// being finite. The simulation is stopped afterwards.
	ErrNonFinite = errors.New("sim: non-finite cell state")
	ErrStopped   = errors.New("sim: simulation has been stopped")
)

type Phase uint8

const (
	Relax Phase = iota
	Press
	Done
	Paused
	EndPhase
)

var phaseNames = [EndPhase]string{"relax", "press", "done", "paused"}

func (p Phase) String() string {
	if p >= EndPhase { return fmt.Sprintf("Phase(%d)", p) }
	return phaseNames[p]
}

// Simulation owns a population of cells and the state of the phase
// machine. It is not safe for concurrent use.
type Simulation struct {
	// OnDone is called once when a single-pass run finishes its press
	// phase.
	OnDone func(Snapshot)
	// Logger receives phase transitions. Defaults to slog.Default().
	Logger *slog.Logger

	con          *io.SimulationConfig
	relax, press force.Params
	bound        boundary.Boundary

	initial []*cell.Cell
	cells   []*cell.Cell
	shapes  []cell.Shape
	src     rand.Source

	phase, resume      Phase
	phaseTime, elapsed float64
	ticks              int
	stopped            bool
}

// New creates a simulation of copies of cells using a validated config.
func New(con *io.SimulationConfig, cells []*cell.Cell) (*Simulation, error) {
	for i, c := range cells {
		if c.Len() < 3 {
			return nil, fmt.Errorf(
				"Cell %d has %d membrane vertices, but needs at least 3.",
				i, c.Len(),
			)
		}
	}

	bound, err := boundary.New(
		con.BoundaryMode, con.Width, con.Height, con.WallDistance,
	)
	if err != nil { return nil, err }

	s := &Simulation{
		Logger: slog.Default(),
		con:    con,
		relax:  con.PhaseParams(false),
		press:  con.PhaseParams(true),
		bound:  bound,
	}

	s.initial = make([]*cell.Cell, len(cells))
	for i, c := range cells {
		s.initial[i] = c.Clone()
		if con.Nucleus == io.CentroidNucleus {
			s.initial[i].CentroidNucleus()
		} else {
			s.initial[i].ComputeMaxRadius()
		}
	}
	s.Reset()

	return s, nil
}

// Reset returns the simulation to the state it was created in. This also
// undoes Stop.
func (s *Simulation) Reset() {
	s.cells = make([]*cell.Cell, len(s.initial))
	for i, c := range s.initial { s.cells[i] = c.Clone() }
	s.shapes = nil
	s.src = rand.NewSource(uint64(s.con.Seed))

	s.phase, s.resume = Relax, Relax
	s.phaseTime, s.elapsed = 0, 0
	s.ticks = 0
	s.stopped = false
}

// Stop ends the run. Every later call to Step returns ErrStopped.
func (s *Simulation) Stop() { s.stopped = true }

// Pause suspends a running simulation. Step does nothing while paused.
func (s *Simulation) Pause() {
	if s.phase == Relax || s.phase == Press {
		s.resume, s.phase = s.phase, Paused
	}
}

// Resume continues a paused simulation in the phase it was paused in.
func (s *Simulation) Resume() {
	if s.phase == Paused { s.phase = s.resume }
}

func (s *Simulation) Phase() Phase { return s.phase }
func (s *Simulation) PhaseTime() float64 { return s.phaseTime }
func (s *Simulation) Elapsed() float64 { return s.elapsed }
func (s *Simulation) Ticks() int { return s.ticks }
func (s *Simulation) Stopped() bool { return s.stopped }
func (s *Simulation) Cells() []*cell.Cell { return s.cells }

// Shapes returns the interaction set built during the last tick. Views of
// the cells are kept up to date with them; ghosts and walls are as they were
// when that tick's forces were applied.
func (s *Simulation) Shapes() []cell.Shape { return s.shapes }

// Params returns the force parameters of the current phase.
func (s *Simulation) Params() *force.Params {
	phase := s.phase
	if phase == Paused { phase = s.resume }
	if phase == Press { return &s.press }
	return &s.relax
}

// Step advances the simulation by dt. It does nothing once the run is Done
// or while it is Paused.
func (s *Simulation) Step(dt float64) error {
	if s.stopped { return ErrStopped }
	if s.phase == Done || s.phase == Paused { return nil }

	p := s.Params()
	cutoff := p.Repulsion.MaxDistance
	if s.con.Adhesion { cutoff = math.Max(cutoff, p.AdhesionCutoff) }

	for _, c := range s.cells { c.ClearForces() }
	s.shapes = s.bound.Apply(s.cells, cutoff)

	force.ApplyMembrane(s.cells, p)
	force.ApplyStiffness(s.cells, p)
	force.ApplyMotility(s.cells, p)
	if s.con.Nucleus == io.CentroidNucleus {
		force.ApplyCentroidNucleus(s.cells, p)
	} else {
		force.ApplyNucleus(s.cells, p)
	}
	force.ApplyIntercell(s.cells, s.shapes, p)
	if s.con.Adhesion { force.ApplyAdhesion(s.cells, s.shapes, p) }

	integrator.Advance(s.cells, dt, s.con.VelocityDecay)
	s.refresh()
	force.AdvanceMotility(s.cells, dt, s.con.AngularNoise, s.src)

	if err := s.checkFinite(); err != nil {
		s.stopped = true
		return err
	}

	s.advanceTime(dt)
	return nil
}

// refresh brings the derived state of each cell, and the views of the cells
// at the front of s.shapes, up to date with their new positions.
func (s *Simulation) refresh() {
	for i, c := range s.cells {
		if s.con.Nucleus == io.CentroidNucleus {
			c.CentroidNucleus()
		} else {
			c.ComputeMaxRadius()
		}
		if i < len(s.shapes) { s.shapes[i] = c.Shape() }
	}
}

func (s *Simulation) checkFinite() error {
	for _, c := range s.cells {
		for i := range c.Xs {
			if !geom.Finite(c.Xs[i]) || !geom.Finite(c.Vs[i]) {
				return fmt.Errorf(
					"%w: vertex %d of cell %d on tick %d",
					ErrNonFinite, i, c.Index, s.ticks,
				)
			}
		}
		if !geom.Finite(c.Nucleus.X) || !geom.Finite(c.Nucleus.V) {
			return fmt.Errorf(
				"%w: nucleus of cell %d on tick %d",
				ErrNonFinite, c.Index, s.ticks,
			)
		}
	}
	return nil
}

func (s *Simulation) advanceTime(dt float64) {
	s.ticks++
	s.elapsed += dt
	s.phaseTime += dt

	switch s.phase {
	case Relax:
		if s.phaseTime > s.con.RelaxDuration { s.transition(Press) }
	case Press:
		if s.phaseTime <= s.con.PressDuration { break }
		if s.con.Cyclic {
			s.transition(Relax)
		} else {
			s.transition(Done)
			if s.OnDone != nil { s.OnDone(s.Snapshot()) }
		}
	}
}

func (s *Simulation) transition(to Phase) {
	if s.Logger != nil {
		s.Logger.Info("phase transition",
			"from", s.phase.String(), "to", to.String(),
			"elapsed", s.elapsed, "tick", s.ticks,
		)
	}
	s.phase, s.phaseTime = to, 0
}
