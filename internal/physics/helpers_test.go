package physics_test

import (
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/physics"
)

// interact runs k over prev split into the given number of contiguous
// partitions, the way the scheduler does.
func interact(k physics.Kernel, prev []particle.Particle, partitions int) ([]particle.Particle, physics.Tally) {
	next := make([]particle.Particle, len(prev))
	copy(next, prev)

	var total physics.Tally
	size := (len(prev) + partitions - 1) / partitions
	for start := 0; start < len(prev); start += size {
		end := min(start+size, len(prev))
		var t physics.Tally
		k.Interact(prev, next, start, end, &t)
		total.Merge(t)
	}
	return next, total
}

func at(x, y, vx, vy, radius float64) particle.Particle {
	return particle.Particle{
		Pos:    particle.Vec2{X: x, Y: y},
		Vel:    particle.Vec2{X: vx, Y: vy},
		Radius: radius,
	}
}
