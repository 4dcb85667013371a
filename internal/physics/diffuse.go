package physics

import "github.com/san-kum/partsim/internal/particle"

// DefaultDiffusionRadius is the neighbor radius of the color-diffusion variant.
const DefaultDiffusionRadius = 30.0

// Diffuse replaces each particle's color with the mean color of the other
// particles closer than Radius. A particle without neighbors keeps its color.
//
// Its Prepare step advances the recolor timer and, past the threshold, draws
// a new random color. Prepare runs before the neighbor scan, so a recolored
// particle that has neighbors is overwritten by their mean in the same tick,
// while its new color already feeds its neighbors' means.
type Diffuse struct {
	Radius float64
}

func (d Diffuse) Name() string { return "diffuse" }

func (d Diffuse) Prepare(i int, p *particle.Particle, env Env, t *Tally) {
	p.ColorTimer += env.Dt
	if p.ColorTimer <= p.ColorThreshold || env.Recolor == nil {
		return
	}
	env.Recolor.Recolor(p, env.Worker, env.Key(i))
	t.Recolored++
}

func (d Diffuse) Interact(prev, next []particle.Particle, start, end int, t *Tally) {
	rSq := d.Radius * d.Radius
	for i := start; i < end; i++ {
		pos := prev[i].Pos
		var sum particle.Color
		n := 0

		for j := range prev {
			if j == i {
				continue
			}
			if pos.DistSq(prev[j].Pos) < rSq {
				sum = sum.Add(prev[j].Color)
				n++
			}
		}

		if n == 0 {
			continue
		}
		next[i].Color = sum.Scale(1 / float64(n))
		t.Blended++
	}
}
