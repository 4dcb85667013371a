package metrics

import (
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/sim"
)

type MeanSpeed struct {
	name  string
	value float64
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(ps []particle.Particle, st sim.TickStats) {
	if len(ps) == 0 {
		m.value = 0
		return
	}
	sum := 0.0
	for i := range ps {
		sum += ps[i].Vel.Len()
	}
	m.value = sum / float64(len(ps))
}

func (m *MeanSpeed) Value() float64 { return m.value }
func (m *MeanSpeed) Reset()         { m.value = 0 }

// KineticEnergy weights each particle by its disk area, r^2.
type KineticEnergy struct {
	name  string
	value float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(ps []particle.Particle, st sim.TickStats) {
	sum := 0.0
	for i := range ps {
		mass := ps[i].Radius * ps[i].Radius
		sum += 0.5 * mass * ps[i].Vel.LenSq()
	}
	k.value = sum
}

func (k *KineticEnergy) Value() float64 { return k.value }
func (k *KineticEnergy) Reset()         { k.value = 0 }

type Collisions struct {
	name  string
	value float64
	total int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(ps []particle.Particle, st sim.TickStats) {
	c.value = float64(st.Collisions)
	c.total += st.Collisions
}

func (c *Collisions) Value() float64 { return c.value }

// Total is the number of contacts seen since the last Reset.
func (c *Collisions) Total() int { return c.total }

func (c *Collisions) Reset() {
	c.value = 0
	c.total = 0
}
