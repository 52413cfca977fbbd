package force

import (
	"math"
)

// Params holds every constant used by the appliers. It is treated as
// immutable once built, so a single value may be shared between goroutines.
type Params struct {
	ElasticConstant, EquilibriumDistance float64
	DampingConstant                      float64
	OsmosisConstant, EquilibriumArea     float64
	PolarizationFactor                   float64
	StiffnessConstant                    float64

	NucleusElasticConstant, NucleusEquilibriumDistance float64
	NucleusDampingConstant                             float64

	Repulsion    Repulsion
	SelfInteract bool

	// AdhesionConstant and AdhesionDistance describe the junction spring.
	// Junctions only form with shapes whose nuclei are closer than
	// AdhesionRange and with points closer than AdhesionCutoff.
	AdhesionConstant, AdhesionDistance float64
	AdhesionRange, AdhesionCutoff      float64

	MotilityConstant float64

	StoreForces bool
	// Threads is the number of goroutines used by the per-cell appliers.
	Threads int
}

// EquilibriumDiameter returns the diameter of a circle with the given area.
func EquilibriumDiameter(area float64) float64 {
	return 2 * math.Sqrt(area/math.Pi)
}

// DefaultParams returns the parameters of a 20-vertex cell with an
// equilibrium area of 100.
func DefaultParams() Params {
	const (
		area    = 100.0
		nPoints = 20
		ljDist  = 1.0
	)
	diam := EquilibriumDiameter(area)

	return Params{
		ElasticConstant:     0.25,
		EquilibriumDistance: math.Pi * diam / nPoints,
		DampingConstant:     5.0,
		OsmosisConstant:     1e-3,
		EquilibriumArea:     area,
		PolarizationFactor:  0.5,
		StiffnessConstant:   0.02,

		NucleusElasticConstant:     0.025,
		NucleusEquilibriumDistance: diam / 2,
		NucleusDampingConstant:     0.5,

		Repulsion: Repulsion{
			Strength: 0.05 * ljDist * ljDist, Distance: ljDist,
			MinDistance: 0.4 * ljDist, MaxDistance: 1.3 * ljDist,
		},
		SelfInteract: true,

		AdhesionConstant: 0.48,
		AdhesionDistance: ljDist,
		AdhesionRange:    2 * diam,
		AdhesionCutoff:   diam / 2,

		MotilityConstant: 0.2,

		Threads: 1,
	}
}
