package physics

import (
	"math"

	"github.com/san-kum/partsim/internal/particle"
)

// Seek pulls every non-alpha particle toward its nearest alpha.
//
// The nearest alpha is the one at minimum distance no farther than
// MaxDistance (MaxDistance <= 0 means unbounded); on ties the lowest index
// wins. When one is found the particle's velocity changes by
// -Strength * (pos - alphaPos) / distance and is then scaled by Friction. A
// particle sitting exactly on its alpha gets no pull, only the friction.
// Alphas never move under this kernel.
type Seek struct {
	MaxDistance float64
	Strength    float64
	Friction    float64

	// MatchClass restricts the search to alphas of the particle's class.
	MatchClass bool
}

func DefaultSeek() Seek {
	return Seek{MaxDistance: 400, Strength: 0.5, Friction: 0.98}
}

func (s Seek) Name() string { return "seek" }

func (s Seek) Interact(prev, next []particle.Particle, start, end int, t *Tally) {
	for i := start; i < end; i++ {
		pi := &prev[i]
		if pi.Role == particle.Alpha {
			continue
		}

		target, distSq := s.nearestAlpha(prev, pi)
		if target < 0 {
			continue
		}

		out := &next[i]
		if distSq > 0 {
			dist := math.Sqrt(distSq)
			d := pi.Pos.Sub(prev[target].Pos)
			out.Vel = out.Vel.Sub(d.Scale(s.Strength / dist))
		}
		out.Vel = out.Vel.Scale(s.Friction)
		t.Attracted++
	}
}

// nearestAlpha scans alphas in index order and returns the index and squared
// distance of the closest one in range, or -1.
func (s Seek) nearestAlpha(prev []particle.Particle, pi *particle.Particle) (int, float64) {
	best := -1
	bestSq := math.Inf(1)
	limitSq := math.Inf(1)
	if s.MaxDistance > 0 {
		limitSq = s.MaxDistance * s.MaxDistance
	}

	for j := range prev {
		pj := &prev[j]
		if pj.Role != particle.Alpha || pj == pi {
			continue
		}
		if s.MatchClass && pj.Class != pi.Class {
			continue
		}
		dSq := pi.Pos.DistSq(pj.Pos)
		if dSq > limitSq {
			continue
		}
		if dSq < bestSq {
			best, bestSq = j, dSq
		}
	}
	return best, bestSq
}
