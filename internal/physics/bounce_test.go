package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/physics"
)

var _ = Describe("Bounce", func() {
	kernel := physics.Bounce{}

	It("inverts both velocities of a touching pair", func() {
		prev := []particle.Particle{at(0, 0, 1, 2, 5), at(8, 0, -3, 4, 5)}
		next, tally := interact(kernel, prev, 1)

		Expect(next[0].Vel).To(Equal(particle.Vec2{X: -1, Y: -2}))
		Expect(next[1].Vel).To(Equal(particle.Vec2{X: 3, Y: -4}))
		Expect(tally.Contacts).To(Equal(2))
	})

	It("ignores particles exactly at the sum of radii", func() {
		prev := []particle.Particle{at(0, 0, 1, 0, 5), at(10, 0, -1, 0, 5)}
		next, tally := interact(kernel, prev, 1)

		Expect(next).To(Equal(prev))
		Expect(tally.Contacts).To(BeZero())
	})

	It("is symmetric within a pair", func() {
		prev := []particle.Particle{at(0, 0, 2, 1, 4), at(3, 3, -1, 5, 2), at(100, 100, 1, 1, 1)}
		next, _ := interact(kernel, prev, 1)

		Expect(next[0].Vel).To(Equal(prev[0].Vel.Neg()))
		Expect(next[1].Vel).To(Equal(prev[1].Vel.Neg()))
		Expect(next[2]).To(Equal(prev[2]))
	})

	It("applies one inversion per contact", func() {
		// particle 0 touches both 1 and 2; 1 and 2 are apart.
		prev := []particle.Particle{at(0, 0, 1, 1, 5), at(-8, 0, 2, 0, 5), at(8, 0, 0, 3, 5)}
		next, tally := interact(kernel, prev, 1)

		Expect(next[0].Vel).To(Equal(prev[0].Vel))
		Expect(next[1].Vel).To(Equal(prev[1].Vel.Neg()))
		Expect(next[2].Vel).To(Equal(prev[2].Vel.Neg()))
		Expect(tally.Contacts).To(Equal(4))
	})

	It("leaves an axis flipped by the wall alone", func() {
		a := at(0, 0, -4, 2, 5)
		a.Reflected = particle.AxisX
		prev := []particle.Particle{a, at(6, 0, 1, 1, 5)}
		next, _ := interact(kernel, prev, 1)

		Expect(next[0].Vel).To(Equal(particle.Vec2{X: -4, Y: -2}))
		Expect(next[1].Vel).To(Equal(particle.Vec2{X: -1, Y: -1}))
	})

	It("does not depend on the partitioning", func() {
		prev := make([]particle.Particle, 0, 60)
		for i := 0; i < 60; i++ {
			prev = append(prev, at(float64(i%10)*7, float64(i/10)*7, float64(i), -float64(i), 4))
		}
		one, t1 := interact(kernel, prev, 1)
		four, t4 := interact(kernel, prev, 4)
		seven, t7 := interact(kernel, prev, 7)

		Expect(four).To(Equal(one))
		Expect(seven).To(Equal(one))
		Expect(t4).To(Equal(t1))
		Expect(t7).To(Equal(t1))
	})

	It("does not mutate its input", func() {
		prev := []particle.Particle{at(0, 0, 1, 2, 5), at(8, 0, -3, 4, 5)}
		orig := append([]particle.Particle(nil), prev...)
		interact(kernel, prev, 2)
		Expect(prev).To(Equal(orig))
	})

	Context("with separation", func() {
		sep := physics.Bounce{Separate: true}

		It("pushes an overlapping pair apart by the overlap", func() {
			prev := []particle.Particle{at(0, 0, 0, 0, 5), at(6, 0, 0, 0, 5)}
			next, _ := interact(sep, prev, 1)

			Expect(next[0].Pos.X).To(BeNumerically("~", -2, 1e-12))
			Expect(next[1].Pos.X).To(BeNumerically("~", 8, 1e-12))
			Expect(next[1].Pos.X - next[0].Pos.X).To(BeNumerically("~", 10, 1e-12))
		})

		It("leaves coincident particles in place", func() {
			prev := []particle.Particle{at(1, 1, 1, 0, 5), at(1, 1, 0, 1, 5)}
			next, _ := interact(sep, prev, 1)

			Expect(next[0].Pos).To(Equal(prev[0].Pos))
			Expect(next[0].Vel).To(Equal(particle.Vec2{X: -1, Y: 0}))
		})

		Context("inside bounds", func() {
			// inset for radius 5 is x in [-95, 95], y in [-45, 45].
			walled := physics.Bounce{Separate: true, Bounds: particle.NewBounds(200, 100)}

			It("stops the push at the inset wall", func() {
				prev := []particle.Particle{at(94, 0, 0, 0, 5), at(88, 0, 0, 0, 5)}
				next, _ := interact(walled, prev, 1)

				Expect(next[0].Pos.X).To(Equal(95.0))
				Expect(next[1].Pos.X).To(BeNumerically("~", 86, 1e-12))
			})

			It("does not push a particle further past the wall", func() {
				prev := []particle.Particle{at(0, 47, 0, -3, 5), at(0, 41, 0, 1, 5)}
				prev[0].Reflected = particle.AxisY
				next, _ := interact(walled, prev, 1)

				Expect(next[0].Pos.Y).To(Equal(47.0))
				Expect(next[0].Vel).To(Equal(particle.Vec2{X: 0, Y: -3}))
				Expect(next[1].Pos.Y).To(BeNumerically("~", 39, 1e-12))
			})

			It("still pushes a particle outside the wall back inward", func() {
				prev := []particle.Particle{at(-97, 0, 2, 0, 5), at(-102, 0, 1, 0, 5)}
				next, _ := interact(walled, prev, 1)

				Expect(next[0].Pos.X).To(BeNumerically("~", -94.5, 1e-12))
				Expect(next[1].Pos.X).To(Equal(-102.0))
			})

			It("matches the unbounded push away from the walls", func() {
				prev := []particle.Particle{at(0, 0, 0, 0, 5), at(6, 0, 0, 0, 5)}
				free, _ := interact(sep, prev, 1)
				capped, _ := interact(walled, prev, 1)

				Expect(capped).To(Equal(free))
			})
		})
	})
})
