package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/physics"
)

var _ = Describe("Reflect", func() {
	bounds := particle.NewBounds(200, 100)

	It("leaves a particle inside the inset domain untouched", func() {
		vel, axes := physics.Reflect(particle.Vec2{X: 0, Y: 0}, particle.Vec2{X: 3, Y: -2}, 5, bounds)
		Expect(vel).To(Equal(particle.Vec2{X: 3, Y: -2}))
		Expect(axes).To(BeZero())
	})

	It("flips only the axis that crossed the wall", func() {
		vel, axes := physics.Reflect(particle.Vec2{X: 96, Y: 0}, particle.Vec2{X: 3, Y: -2}, 5, bounds)
		Expect(vel).To(Equal(particle.Vec2{X: -3, Y: -2}))
		Expect(axes.Has(particle.AxisX)).To(BeTrue())
		Expect(axes.Has(particle.AxisY)).To(BeFalse())
	})

	It("flips both axes in a corner", func() {
		vel, axes := physics.Reflect(particle.Vec2{X: -99, Y: 47}, particle.Vec2{X: -1, Y: 1}, 5, bounds)
		Expect(vel).To(Equal(particle.Vec2{X: 1, Y: -1}))
		Expect(axes).To(Equal(particle.AxisX | particle.AxisY))
	})

	It("accounts for the radius", func() {
		_, axes := physics.Reflect(particle.Vec2{X: 91, Y: 0}, particle.Vec2{X: 1}, 10, bounds)
		Expect(axes.Has(particle.AxisX)).To(BeTrue())

		_, axes = physics.Reflect(particle.Vec2{X: 91, Y: 0}, particle.Vec2{X: 1}, 5, bounds)
		Expect(axes).To(BeZero())
	})

	It("does not move the particle", func() {
		pos := particle.Vec2{X: 150, Y: 0}
		physics.Reflect(pos, particle.Vec2{X: 1}, 5, bounds)
		Expect(pos.X).To(Equal(150.0))
	})

	It("keeps a free particle within one step of the wall", func() {
		p := particle.Particle{Pos: particle.Vec2{X: 80, Y: 30}, Vel: particle.Vec2{X: 7, Y: 4}, Radius: 5}
		for i := 0; i < 500; i++ {
			p.Pos = p.Pos.Add(p.Vel)
			p.Vel, _ = physics.Reflect(p.Pos, p.Vel, p.Radius, bounds)
			Expect(bounds.Contains(p.Pos, p.Radius, 7)).To(BeTrue(), "escaped at step %d: %v", i, p.Pos)
		}
	})
})
