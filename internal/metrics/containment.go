package metrics

import (
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/sim"
)

// Containment is the fraction of observed ticks in which every particle lay
// inside the domain, allowing slack for the one-tick overshoot a reflection
// permits.
type Containment struct {
	name       string
	bounds     particle.Bounds
	slack      float64
	violations int
	samples    int
	escaped    int
}

func NewContainment(b particle.Bounds, slack float64) *Containment {
	return &Containment{
		name:   "containment",
		bounds: b,
		slack:  slack,
	}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(ps []particle.Particle, st sim.TickStats) {
	c.samples++
	c.escaped = 0
	for i := range ps {
		if !c.bounds.Contains(ps[i].Pos, ps[i].Radius, c.slack) {
			c.escaped++
		}
	}
	if c.escaped > 0 {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

// Escaped is the number of particles outside the domain at the last tick.
func (c *Containment) Escaped() int { return c.escaped }

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
	c.escaped = 0
}
