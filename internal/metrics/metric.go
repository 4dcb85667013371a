package metrics

import (
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/sim"
)

// Metric reduces a published tick to a scalar. Value reports the metric as
// of the most recent Observe.
type Metric interface {
	Name() string
	Observe(ps []particle.Particle, st sim.TickStats)
	Value() float64
	Reset()
}

// Default returns the metrics recorded by the run and live commands.
func Default(b particle.Bounds, maxSpeed float64) []Metric {
	return []Metric{
		NewMeanSpeed(),
		NewKineticEnergy(),
		NewCollisions(),
		NewColorSpread(),
		NewContainment(b, maxSpeed),
	}
}
