package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime/pprof"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/phil-mansfield/cellsim/boundary"
	"github.com/phil-mansfield/cellsim/cell"
	"github.com/phil-mansfield/cellsim/force"
	"github.com/phil-mansfield/cellsim/io"
	"github.com/phil-mansfield/cellsim/measure"
	"github.com/phil-mansfield/cellsim/sim"
	"github.com/phil-mansfield/cellsim/tissue"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil { log.Fatal(err.Error()) }
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil { log.Fatal(err.Error()) }
	}
}

func main() {
	var simulate, exampleConfig string
	vars := map[string]*string{
		"Simulate":      &simulate,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&simulate, "Simulate", "",
		"Configuration file for [Simulation] mode.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Simulation'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil { log.Fatal(err.Error()) }

	switch modeName {
	case "Simulate":
		con, err := io.ReadSimulationConfig(simulate)
		if err != nil { log.Fatal(err.Error()) }
		simulateMain(con)
	case "ExampleConfig":
		switch exampleConfig {
		case "Simulation":
			fmt.Println(io.ExampleSimulationFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only recognized " +
					"argument is 'Simulation'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" { setNames = append(setNames, name) }
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but cellsim only accepts "+
				"one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func simulateMain(con *io.SimulationConfig) {
	fg, logger := setupIO(con)
	defer fg.Close()

	rng := rand.New(rand.NewSource(uint64(con.Seed)))

	cells, err := initialCells(con, rng)
	if err != nil { log.Fatal(err.Error()) }
	if con.Polarized { tissue.RandomPolarization(rng, cells) }
	tissue.RandomHeadings(rng, cells)

	logger.Info("initialized cells",
		"cells", len(cells), "points", con.Points,
		"width", con.Width, "height", con.Height,
		"boundary", con.BoundaryMode.String(),
	)

	s, err := sim.New(con, cells)
	if err != nil { log.Fatal(err.Error()) }
	s.Logger = logger
	s.OnDone = func(snap sim.Snapshot) { report(logger, con, &snap) }

	for i := 0; i < con.Ticks && s.Phase() != sim.Done; i++ {
		if err := s.Step(con.TickDuration); err != nil { log.Fatal(err.Error()) }

		if s.Ticks()%con.ReportEvery == 0 && s.Phase() != sim.Done {
			snap := s.Snapshot()
			report(logger, con, &snap)
		}
	}
}

func setupIO(con *io.SimulationConfig) (*FileGroup, *slog.Logger) {
	fg := &FileGroup{}
	out := os.Stderr

	var err error
	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil { log.Fatal(err.Error()) }
		log.SetOutput(fg.log)
		out = fg.log
	}

	log.Println("Running Simulate main.")

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil { log.Fatal(err.Error()) }
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil { log.Fatal(err.Error()) }
	}

	return fg, slog.New(slog.NewTextHandler(out, nil))
}

// initialCells reads the starting polygons from con.PolygonFile if it is
// set. Otherwise cells start as circles around Poisson-disc sampled
// centers.
func initialCells(con *io.SimulationConfig, rng *rand.Rand) ([]*cell.Cell, error) {
	if con.PolygonFile != "" {
		polys, centers, err := io.ReadPolygons(con.PolygonFile, con.PolygonCenters)
		if err != nil { return nil, err }
		return tissue.Cells(polys, centers, con.ShrinkDistance, con.Points)
	}

	sep := 2 * con.LennardJonesDistance
	centers, err := tissue.NewPoissonDisc(
		con.Width, con.Height, sep, con.Cells,
	).Centers(rng)
	if err != nil { return nil, err }

	period := r2.Vec{}
	if con.BoundaryMode == boundary.Periodic {
		period = r2.Vec{X: con.Width, Y: con.Height}
	}

	radius := force.EquilibriumDiameter(con.EquilibriumArea) / 2
	polys := tissue.Circles(centers, radius, 2*con.ShrinkDistance, con.Points, period)
	return tissue.Cells(polys, centers, 0, con.Points)
}

func report(logger *slog.Logger, con *io.SimulationConfig, snap *sim.Snapshot) {
	m := measure.Measure(snap.Polygons(), con.Width, con.Height)
	logger.Info("measurement",
		"tick", snap.Ticks, "elapsed", snap.Elapsed,
		"phase", snap.Phase.String(),
		"area", m.AverageArea, "area_std", m.AreaStdDev,
		"perimeter", m.AveragePerimeter,
		"shape_index", m.ShapeIndex, "asphericity", m.Asphericity,
		"excess_perimeter", m.ExcessPerimeter, "phi", m.PackingFraction,
	)
}
