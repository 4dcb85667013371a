package metrics

import (
	"math"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/sim"
)

// ColorSpread is the standard deviation of particle luminance. Diffusion
// drives it toward zero.
type ColorSpread struct {
	name  string
	value float64
}

func NewColorSpread() *ColorSpread {
	return &ColorSpread{name: "color_spread"}
}

func (c *ColorSpread) Name() string { return c.name }

func (c *ColorSpread) Observe(ps []particle.Particle, st sim.TickStats) {
	if len(ps) == 0 {
		c.value = 0
		return
	}
	mean := 0.0
	for i := range ps {
		mean += ps[i].Color.Luminance()
	}
	mean /= float64(len(ps))

	variance := 0.0
	for i := range ps {
		d := ps[i].Color.Luminance() - mean
		variance += d * d
	}
	c.value = math.Sqrt(variance / float64(len(ps)))
}

func (c *ColorSpread) Value() float64 { return c.value }
func (c *ColorSpread) Reset()         { c.value = 0 }
