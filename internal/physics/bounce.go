package physics

import (
	"math"

	"github.com/san-kum/partsim/internal/particle"
)

// Bounce inverts velocities of touching particles. Every unordered pair
// closer than the sum of radii inverts both velocity vectors, so a particle
// with k contacts ends the tick with (-1)^k times its velocity. An axis the
// boundary reflector flipped this tick is left alone.
//
// With Separate set, each overlapping partner also pushes the particle back
// along the line of centers by half the overlap. A non-zero Bounds caps that
// push per axis at the inset wall, so separation never carries a particle
// further outside the domain than it already was.
type Bounce struct {
	Separate bool
	Bounds   particle.Bounds
}

func (b Bounce) Name() string { return "bounce" }

func (b Bounce) Interact(prev, next []particle.Particle, start, end int, t *Tally) {
	for i := start; i < end; i++ {
		pi := &prev[i]
		contacts := 0
		var push particle.Vec2

		for j := range prev {
			if j == i {
				continue
			}
			d := prev[j].Pos.Sub(pi.Pos)
			reach := pi.Radius + prev[j].Radius
			distSq := d.LenSq()
			if distSq >= reach*reach {
				continue
			}
			contacts++

			if b.Separate && distSq > 0 {
				dist := math.Sqrt(distSq)
				push = push.Sub(d.Scale((reach - dist) / 2 / dist))
			}
		}

		if contacts == 0 {
			continue
		}
		t.Contacts += contacts

		out := &next[i]
		if contacts%2 == 1 {
			if !pi.Reflected.Has(particle.AxisX) {
				out.Vel.X = -out.Vel.X
			}
			if !pi.Reflected.Has(particle.AxisY) {
				out.Vel.Y = -out.Vel.Y
			}
		}
		out.Pos = b.separate(out.Pos, push, pi.Radius)
	}
}

func (b Bounce) separate(pos, push particle.Vec2, radius float64) particle.Vec2 {
	if b.Bounds == (particle.Bounds{}) {
		return pos.Add(push)
	}
	minX, maxX, minY, maxY := b.Bounds.Inset(radius)
	return particle.Vec2{
		X: shift(pos.X, push.X, minX, maxX),
		Y: shift(pos.Y, push.Y, minY, maxY),
	}
}

// shift moves x by d, stopping at the wall it moves toward. A coordinate
// already past that wall stays where it is.
func shift(x, d, lo, hi float64) float64 {
	switch {
	case d > 0:
		return math.Min(x+d, math.Max(x, hi))
	case d < 0:
		return math.Max(x+d, math.Min(x, lo))
	}
	return x
}
