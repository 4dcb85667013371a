package physics

import "github.com/san-kum/partsim/internal/particle"

// Reflect negates each velocity component whose position coordinate lies
// outside the inset domain for radius. Position is left untouched, so a
// particle may sit past the wall for one tick. It must run at most once per
// axis per tick: a second application would flip the component back.
func Reflect(pos, vel particle.Vec2, radius float64, b particle.Bounds) (particle.Vec2, particle.Axes) {
	minX, maxX, minY, maxY := b.Inset(radius)
	var flipped particle.Axes
	if pos.X < minX || pos.X > maxX {
		vel.X = -vel.X
		flipped |= particle.AxisX
	}
	if pos.Y < minY || pos.Y > maxY {
		vel.Y = -vel.Y
		flipped |= particle.AxisY
	}
	return vel, flipped
}
