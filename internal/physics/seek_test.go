package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/physics"
)

func alpha(x, y float64, class int) particle.Particle {
	p := at(x, y, 0, 0, 1)
	p.Role = particle.Alpha
	p.Class = class
	return p
}

func beta(x, y float64, class int) particle.Particle {
	p := at(x, y, 0, 0, 1)
	p.Role = particle.Beta
	p.Class = class
	return p
}

var _ = Describe("Seek", func() {
	kernel := physics.Seek{Strength: 1, Friction: 1}

	It("pulls a beta toward the alpha with unit strength", func() {
		prev := []particle.Particle{alpha(10, 0, 0), beta(0, 0, 0)}
		next, tally := interact(kernel, prev, 1)

		Expect(next[1].Vel.X).To(BeNumerically("~", 1, 1e-12))
		Expect(next[1].Vel.Y).To(BeNumerically("~", 0, 1e-12))
		Expect(tally.Attracted).To(Equal(1))
	})

	It("never moves alphas", func() {
		prev := []particle.Particle{alpha(0, 0, 0), alpha(5, 5, 0), beta(1, 1, 0)}
		next, _ := interact(kernel, prev, 1)

		Expect(next[0]).To(Equal(prev[0]))
		Expect(next[1]).To(Equal(prev[1]))
	})

	It("picks the nearest alpha", func() {
		prev := []particle.Particle{alpha(100, 0, 0), alpha(0, -3, 0), beta(0, 0, 0)}
		next, _ := interact(kernel, prev, 1)

		Expect(next[2].Vel.X).To(BeNumerically("~", 0, 1e-12))
		Expect(next[2].Vel.Y).To(BeNumerically("~", -1, 1e-12))
	})

	It("breaks ties by lowest index", func() {
		prev := []particle.Particle{beta(0, 0, 0), alpha(0, 4, 0), alpha(4, 0, 0)}
		next, _ := interact(kernel, prev, 1)

		Expect(next[0].Vel.Y).To(BeNumerically("~", 1, 1e-12))
		Expect(next[0].Vel.X).To(BeNumerically("~", 0, 1e-12))
	})

	It("ignores alphas beyond MaxDistance", func() {
		k := kernel
		k.MaxDistance = 50
		prev := []particle.Particle{alpha(60, 0, 0), beta(0, 0, 0)}
		next, tally := interact(k, prev, 1)

		Expect(next[1].Vel).To(Equal(particle.Vec2{}))
		Expect(tally.Attracted).To(BeZero())
	})

	It("leaves a beta on top of its alpha unchanged", func() {
		prev := []particle.Particle{alpha(2, 2, 0), beta(2, 2, 0)}
		next, _ := interact(kernel, prev, 1)
		Expect(next[1]).To(Equal(prev[1]))
	})

	It("still applies friction to a beta on top of its alpha", func() {
		k := physics.Seek{Strength: 2, Friction: 0.5}
		b := beta(2, 2, 0)
		b.Vel = particle.Vec2{X: 4, Y: -6}
		prev := []particle.Particle{alpha(2, 2, 0), b}
		next, tally := interact(k, prev, 1)

		Expect(next[1].Vel).To(Equal(particle.Vec2{X: 2, Y: -3}))
		Expect(next[1].Pos).To(Equal(prev[1].Pos))
		Expect(tally.Attracted).To(Equal(1))
	})

	It("applies friction after the pull", func() {
		k := physics.Seek{Strength: 2, Friction: 0.5}
		b := beta(0, 0, 0)
		b.Vel = particle.Vec2{X: 4, Y: 4}
		prev := []particle.Particle{alpha(0, 10, 0), b}
		next, _ := interact(k, prev, 1)

		Expect(next[1].Vel.X).To(BeNumerically("~", 2, 1e-12))
		Expect(next[1].Vel.Y).To(BeNumerically("~", 3, 1e-12))
	})

	It("only seeks alphas of the same class when asked", func() {
		k := kernel
		k.MatchClass = true
		prev := []particle.Particle{alpha(1, 0, 1), alpha(0, 10, 2), beta(0, 0, 2)}
		next, _ := interact(k, prev, 1)

		Expect(next[2].Vel.X).To(BeNumerically("~", 0, 1e-12))
		Expect(next[2].Vel.Y).To(BeNumerically("~", 1, 1e-12))
	})

	It("does not depend on the partitioning", func() {
		prev := make([]particle.Particle, 0, 40)
		for i := 0; i < 40; i++ {
			if i%9 == 0 {
				prev = append(prev, alpha(float64(i*3), float64(40-i), 0))
			} else {
				prev = append(prev, beta(float64(i), float64(i*i%17), 0))
			}
		}
		one, _ := interact(physics.DefaultSeek(), prev, 1)
		five, _ := interact(physics.DefaultSeek(), prev, 5)
		Expect(five).To(Equal(one))
	})
})
