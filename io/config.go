package io

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/cellsim/boundary"
	"github.com/phil-mansfield/cellsim/force"
)

const (
	ExampleSimulationFile = `[Simulation]

#######################
# Required Parameters #
#######################

# Number of cells to simulate. Ignored if PolygonFile is set.
Cells = 50

# Number of vertices on each cell membrane.
Points = 20

# Length of a single tick in seconds.
TickDuration = 0.0833333

# Number of ticks to run. If Cyclic is false the run also ends when the
# press phase does.
Ticks = 10000

#######################
# Optional Parameters #
#######################

# Size of the periodic domain. If not set, it is chosen so that the domain
# is twice as wide as it is tall and has an area of Cells * EquilibriumArea.
# Must be set if PolygonFile is set.
# Width = 100
# Height = 50

# A whitespace-separated table of starting polygons with the columns
# (polygon id, x, y). The polygons must be convex with respect to their
# centroids (e.g. Voronoi cells). If PolygonCenters is set, two further
# columns give the center each polygon is shrunk towards. If PolygonFile is
# not set, cells start as circles around randomly sampled centers.
# PolygonFile = path/to/polygons.txt
# PolygonCenters = false

# Distance each polygon edge is moved inwards before resampling. Defaults to
# half of LennardJonesDistance. Set to 0 to skip shrinking.
# ShrinkDistance = 0.5

# Seed for every random choice made by the simulation.
# Seed = 0

# Phase controls. The simulation relaxes for RelaxDuration seconds, presses
# for PressDuration seconds, and then either repeats or stops.
# Cyclic = true
# RelaxDuration = 60
# PressDuration = 120

# Equilibrium area of a cell. The target area of every cell is this
# multiplied by the current phase's compression.
# EquilibriumArea = 100
# RelaxCompression = 1.1
# PressCompression = 3.0

# Polarization of the osmotic force in each phase. Only used if Polarized is
# set, in which case each cell is polarized towards a random vertex.
# Polarized = false
# RelaxPolarizationFactor = 0.0
# PressPolarizationFactor = 0.5

# Membrane constants. EquilibriumDistance defaults to the spacing of Points
# vertices around a circle of area EquilibriumArea.
# ElasticConstant = 0.25
# EquilibriumDistance = 1.772
# DampingConstant = 5.0
# OsmosisConstant = 0.001
# StiffnessConstant = 0.02

# NucleusMode must be one of [ Springs | Centroid ]. Springs simulates the
# nucleus as a point mass tied to the membrane; Centroid pins it to the
# membrane's centroid. NucleusEquilibriumDistance defaults to the radius of a
# circle of area EquilibriumArea.
# NucleusMode = Springs
# NucleusElasticConstant = 0.025
# NucleusEquilibriumDistance = 5.64
# NucleusDampingConstant = 0.5

# Membrane repulsion. Strength, MinDistance and MaxDistance default to
# 0.05 d^2, 0.4 d and 1.3 d for a LennardJonesDistance of d. A Strength of 0
# turns repulsion off.
# LennardJonesDistance = 1.0
# LennardJonesStrength = 0.05
# LennardJonesMinDistance = 0.4
# LennardJonesMaxDistance = 1.3
# SelfInteract = true

# Cell-cell adhesion junctions.
# Adhesion = false
# AdhesionConstant = 0.48
# AdhesionDistance = 1.0
# AdhesionRange = 22.57
# AdhesionCutoff = 5.64

# Self-propulsion in each phase and the rotational noise of its heading.
# RelaxMotilityConstant = 0.0
# PressMotilityConstant = 0.0
# AngularNoise = 0.1

# VelocityDecay = 0.001

# Boundary must be one of [ Periodic | Fixed | None ]. Fixed walls are placed
# WallDistance outside the domain, defaulting to LennardJonesDistance.
# Boundary = Periodic
# WallDistance = 1.0

# Record every force contribution. Slow.
# StoreForces = false

# Number of goroutines used for per-cell forces.
# Threads = 1

# Log measurements every ReportEvery ticks.
# ReportEvery = 120

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`
)

// NucleusMode selects how the nucleus is moved.
type NucleusMode uint8

const (
	SpringNucleus NucleusMode = iota
	CentroidNucleus
)

type SharedConfig struct {
	// Optional
	LogFile, ProfileFile string
}

func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

type SimulationConfig struct {
	SharedConfig

	// Required
	Cells, Points int
	TickDuration  float64
	Ticks         int

	// Optional
	Width, Height  float64
	PolygonFile    string
	PolygonCenters bool
	ShrinkDistance float64
	Seed           int

	Cyclic                       bool
	RelaxDuration, PressDuration float64

	EquilibriumArea                    float64
	RelaxCompression, PressCompression float64

	Polarized                                        bool
	RelaxPolarizationFactor, PressPolarizationFactor float64

	ElasticConstant, EquilibriumDistance float64
	DampingConstant, OsmosisConstant     float64
	StiffnessConstant                    float64

	NucleusMode                                        string
	NucleusElasticConstant, NucleusEquilibriumDistance float64
	NucleusDampingConstant                             float64

	LennardJonesDistance, LennardJonesStrength       float64
	LennardJonesMinDistance, LennardJonesMaxDistance float64
	SelfInteract                                     bool

	Adhesion                           bool
	AdhesionConstant, AdhesionDistance float64
	AdhesionRange, AdhesionCutoff      float64

	RelaxMotilityConstant, PressMotilityConstant float64
	AngularNoise                                 float64

	VelocityDecay float64

	Boundary     string
	WallDistance float64

	StoreForces bool
	Threads     int
	ReportEvery int

	// Set by CheckInit.
	BoundaryMode boundary.Mode
	Nucleus      NucleusMode
}

// unset marks derived parameters which CheckInit fills in. Explicit zeros
// are kept.
const unset = -1

type SimulationWrapper struct {
	Simulation SimulationConfig
}

func DefaultSimulationWrapper() *SimulationWrapper {
	p := force.DefaultParams()

	con := SimulationConfig{}
	con.Points = 20
	con.TickDuration = 5.0 / 60
	con.Cyclic = true
	con.RelaxDuration, con.PressDuration = 60, 120

	con.EquilibriumArea = p.EquilibriumArea
	con.RelaxCompression, con.PressCompression = 1.1, 3.0
	con.RelaxPolarizationFactor = 0.0
	con.PressPolarizationFactor = p.PolarizationFactor

	con.ElasticConstant = p.ElasticConstant
	con.DampingConstant = p.DampingConstant
	con.OsmosisConstant = p.OsmosisConstant
	con.StiffnessConstant = p.StiffnessConstant

	con.NucleusMode = "Springs"
	con.NucleusElasticConstant = p.NucleusElasticConstant
	con.NucleusDampingConstant = p.NucleusDampingConstant

	con.LennardJonesDistance = p.Repulsion.Distance
	con.SelfInteract = true

	con.AdhesionConstant = p.AdhesionConstant

	con.AngularNoise = 0.1
	con.VelocityDecay = 1e-3

	for _, x := range con.derived() { *x = unset }

	con.Boundary = "Periodic"
	con.Threads = 1
	con.ReportEvery = 120

	return &SimulationWrapper{con}
}

// DefaultSimulationConfig returns a validated configuration with every
// default filled in.
func DefaultSimulationConfig(cells int) *SimulationConfig {
	con := &DefaultSimulationWrapper().Simulation
	con.Cells = cells
	con.Ticks = 1
	if err := con.CheckInit(); err != nil { panic(err.Error()) }
	return con
}

// ReadSimulationConfig reads and validates a [Simulation] config file.
func ReadSimulationConfig(fname string) (*SimulationConfig, error) {
	wrap := DefaultSimulationWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil { return nil, err }

	con := &wrap.Simulation
	if err := con.CheckInit(); err != nil { return nil, err }
	return con, nil
}

// ReadSimulationString is identical to ReadSimulationConfig, but reads
// the config from a string.
func ReadSimulationString(text string) (*SimulationConfig, error) {
	wrap := DefaultSimulationWrapper()
	if err := gcfg.ReadStringInto(wrap, text); err != nil { return nil, err }

	con := &wrap.Simulation
	if err := con.CheckInit(); err != nil { return nil, err }
	return con, nil
}

func (con *SimulationConfig) ValidCells() bool {
	return con.Cells > 0 || con.PolygonFile != ""
}
func (con *SimulationConfig) ValidPoints() bool {
	return con.Points >= 3
}
func (con *SimulationConfig) ValidTickDuration() bool {
	return con.TickDuration > 0
}
func (con *SimulationConfig) ValidTicks() bool {
	return con.Ticks > 0
}
func (con *SimulationConfig) ValidDomain() bool {
	return (con.Width > 0) == (con.Height > 0) &&
		con.Width >= 0 && con.Height >= 0
}
func (con *SimulationConfig) ValidDurations() bool {
	return con.RelaxDuration > 0 && con.PressDuration > 0
}
func (con *SimulationConfig) ValidEquilibriumArea() bool {
	return con.EquilibriumArea > 0
}
func (con *SimulationConfig) ValidCompression() bool {
	return con.RelaxCompression > 0 && con.PressCompression > 0
}
func (con *SimulationConfig) ValidVelocityDecay() bool {
	return con.VelocityDecay >= 0 && con.VelocityDecay < 1
}
func (con *SimulationConfig) ValidLennardJones() bool {
	return con.LennardJonesDistance > 0 &&
		con.LennardJonesMinDistance <= con.LennardJonesDistance &&
		con.LennardJonesMaxDistance >= con.LennardJonesDistance
}
func (con *SimulationConfig) ValidDerived() bool {
	for _, x := range con.derived() {
		if *x < 0 { return false }
	}
	return true
}
func (con *SimulationConfig) ValidThreads() bool {
	return con.Threads > 0
}

// EnvironmentSize returns the size of a domain with the given aspect ratio
// and area.
func EnvironmentSize(area, ratio float64) (width, height float64) {
	height = math.Sqrt(area / ratio)
	return height * ratio, height
}

// CheckInit validates the config and fills in every derived default.
func (con *SimulationConfig) CheckInit() error {
	switch {
	case !con.ValidCells():
		return fmt.Errorf("Need to specify a positive 'Cells' or a 'PolygonFile'.")
	case !con.ValidPoints():
		return fmt.Errorf("'Points' must be at least 3, but is %d.", con.Points)
	case !con.ValidTickDuration():
		return fmt.Errorf("'TickDuration' must be positive, but is %g.", con.TickDuration)
	case !con.ValidTicks():
		return fmt.Errorf("Need to specify a positive 'Ticks' value.")
	case !con.ValidDomain():
		return fmt.Errorf(
			"'Width' and 'Height' must both be positive or both be unset, "+
				"but are %g and %g.", con.Width, con.Height,
		)
	case !con.ValidDurations():
		return fmt.Errorf("'RelaxDuration' and 'PressDuration' must be positive.")
	case !con.ValidEquilibriumArea():
		return fmt.Errorf("'EquilibriumArea' must be positive, but is %g.", con.EquilibriumArea)
	case !con.ValidCompression():
		return fmt.Errorf("'RelaxCompression' and 'PressCompression' must be positive.")
	case !con.ValidVelocityDecay():
		return fmt.Errorf("'VelocityDecay' must be in range [0, 1), but is %g.", con.VelocityDecay)
	case !con.ValidThreads():
		return fmt.Errorf("'Threads' must be positive, but is %d.", con.Threads)
	case con.PolygonFile != "" && con.Width == 0:
		return fmt.Errorf("'Width' and 'Height' must be set if 'PolygonFile' is.")
	}

	mode, err := boundary.ParseMode(con.Boundary)
	if err != nil { return err }
	con.BoundaryMode = mode

	switch strings.ToLower(strings.TrimSpace(con.NucleusMode)) {
	case "springs":
		con.Nucleus = SpringNucleus
	case "centroid":
		con.Nucleus = CentroidNucleus
	default:
		return fmt.Errorf(
			"'NucleusMode' must be one of [Springs | Centroid]. '%s' is "+
				"not recognized.", con.NucleusMode,
		)
	}

	diam := force.EquilibriumDiameter(con.EquilibriumArea)
	d := con.LennardJonesDistance
	if d <= 0 {
		return fmt.Errorf("'LennardJonesDistance' must be positive, but is %g.", d)
	}

	if con.Width == 0 && con.Cells > 0 {
		con.Width, con.Height = EnvironmentSize(float64(con.Cells)*con.EquilibriumArea, 2)
	}
	setDefault(&con.EquilibriumDistance, math.Pi*diam/float64(con.Points))
	setDefault(&con.NucleusEquilibriumDistance, diam/2)
	setDefault(&con.LennardJonesStrength, 0.05*d*d)
	setDefault(&con.LennardJonesMinDistance, 0.4*d)
	setDefault(&con.LennardJonesMaxDistance, 1.3*d)
	setDefault(&con.ShrinkDistance, d/2)
	setDefault(&con.AdhesionDistance, 2*con.ShrinkDistance)
	setDefault(&con.AdhesionRange, 2*diam)
	setDefault(&con.AdhesionCutoff, diam/2)
	setDefault(&con.WallDistance, d)
	if con.ReportEvery <= 0 { con.ReportEvery = con.Ticks }

	if !con.ValidDerived() {
		return fmt.Errorf("Derived distances and strengths cannot be negative.")
	}

	if !con.ValidLennardJones() {
		return fmt.Errorf(
			"Lennard-Jones distances must satisfy MinDistance <= Distance <= "+
				"MaxDistance, but are %g, %g and %g.",
			con.LennardJonesMinDistance, con.LennardJonesDistance,
			con.LennardJonesMaxDistance,
		)
	}

	return nil
}

// derived returns the parameters whose defaults depend on other
// parameters.
func (con *SimulationConfig) derived() []*float64 {
	return []*float64{
		&con.EquilibriumDistance, &con.NucleusEquilibriumDistance,
		&con.LennardJonesStrength, &con.LennardJonesMinDistance,
		&con.LennardJonesMaxDistance, &con.ShrinkDistance,
		&con.AdhesionDistance, &con.AdhesionRange, &con.AdhesionCutoff,
		&con.WallDistance,
	}
}

func setDefault(x *float64, val float64) {
	if *x == unset { *x = val }
}

// Params returns the force parameters of the relax phase.
func (con *SimulationConfig) Params() force.Params {
	return force.Params{
		ElasticConstant:     con.ElasticConstant,
		EquilibriumDistance: con.EquilibriumDistance,
		DampingConstant:     con.DampingConstant,
		OsmosisConstant:     con.OsmosisConstant,
		EquilibriumArea:     con.EquilibriumArea * con.RelaxCompression,
		PolarizationFactor:  con.RelaxPolarizationFactor,
		StiffnessConstant:   con.StiffnessConstant,

		NucleusElasticConstant:     con.NucleusElasticConstant,
		NucleusEquilibriumDistance: con.NucleusEquilibriumDistance,
		NucleusDampingConstant:     con.NucleusDampingConstant,

		Repulsion: force.Repulsion{
			Strength:    con.LennardJonesStrength,
			Distance:    con.LennardJonesDistance,
			MinDistance: con.LennardJonesMinDistance,
			MaxDistance: con.LennardJonesMaxDistance,
		},
		SelfInteract: con.SelfInteract,

		AdhesionConstant: con.AdhesionConstant,
		AdhesionDistance: con.AdhesionDistance,
		AdhesionRange:    con.AdhesionRange,
		AdhesionCutoff:   con.AdhesionCutoff,

		MotilityConstant: con.RelaxMotilityConstant,

		StoreForces: con.StoreForces,
		Threads:     con.Threads,
	}
}

// PhaseParams returns the force parameters for the press phase if press is
// true and the relax phase otherwise.
func (con *SimulationConfig) PhaseParams(press bool) force.Params {
	p := con.Params()
	if press {
		p.EquilibriumArea = con.EquilibriumArea * con.PressCompression
		p.PolarizationFactor = con.PressPolarizationFactor
		p.MotilityConstant = con.PressMotilityConstant
	}
	return p
}
