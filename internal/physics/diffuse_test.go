package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/physics"
)

type fixedRecolor struct {
	color particle.Color
	keys  []uint64
}

func (f *fixedRecolor) Recolor(p *particle.Particle, worker int, key uint64) {
	f.keys = append(f.keys, key)
	p.Color = f.color
	p.ColorTimer = 0
	p.ColorThreshold = 1
}

func colored(x, y float64, c particle.Color) particle.Particle {
	p := at(x, y, 0, 0, 1)
	p.Color = c
	return p
}

var _ = Describe("Diffuse", func() {
	kernel := physics.Diffuse{Radius: 10}

	It("replaces a color with the mean of its neighbors", func() {
		prev := []particle.Particle{
			colored(0, 0, particle.Color{R: 1}),
			colored(3, 0, particle.Color{G: 1}),
			colored(0, 4, particle.Color{B: 1}),
		}
		next, tally := interact(kernel, prev, 1)

		Expect(next[0].Color.R).To(BeNumerically("~", 0, 1e-12))
		Expect(next[0].Color.G).To(BeNumerically("~", 0.5, 1e-12))
		Expect(next[0].Color.B).To(BeNumerically("~", 0.5, 1e-12))
		Expect(tally.Blended).To(Equal(3))
	})

	It("keeps the color of an isolated particle", func() {
		prev := []particle.Particle{colored(0, 0, particle.Color{R: 1}), colored(50, 50, particle.Color{G: 1})}
		next, tally := interact(kernel, prev, 1)

		Expect(next).To(Equal(prev))
		Expect(tally.Blended).To(BeZero())
	})

	It("excludes neighbors exactly at the radius", func() {
		prev := []particle.Particle{colored(0, 0, particle.Color{R: 1}), colored(10, 0, particle.Color{G: 1})}
		next, _ := interact(kernel, prev, 1)
		Expect(next).To(Equal(prev))
	})

	It("leaves positions and velocities alone", func() {
		prev := []particle.Particle{at(0, 0, 1, 2, 3), at(1, 1, -1, 0, 3)}
		next, _ := interact(kernel, prev, 1)
		Expect(next[0].Pos).To(Equal(prev[0].Pos))
		Expect(next[0].Vel).To(Equal(prev[0].Vel))
	})

	It("gives the same colors for any partitioning", func() {
		prev := make([]particle.Particle, 0, 80)
		for i := 0; i < 80; i++ {
			c := particle.Color{R: float64(i%7) / 7, G: float64(i%5) / 5, B: float64(i%3) / 3}
			prev = append(prev, colored(float64(i%9)*6, float64(i/9)*6, c))
		}

		one, _ := interact(kernel, prev, 1)
		for _, parts := range []int{2, 3, 8, 80} {
			many, _ := interact(kernel, prev, parts)
			Expect(many).To(Equal(one), "partitions=%d", parts)
		}
	})

	Describe("Prepare", func() {
		It("advances the timer without recoloring below the threshold", func() {
			rc := &fixedRecolor{color: particle.Color{R: 1, G: 1, B: 1}}
			p := colored(0, 0, particle.Color{})
			p.ColorThreshold = 1

			var t physics.Tally
			kernel.Prepare(0, &p, physics.Env{Dt: 0.5, Recolor: rc}, &t)

			Expect(p.ColorTimer).To(Equal(0.5))
			Expect(p.Color).To(Equal(particle.Color{}))
			Expect(t.Recolored).To(BeZero())
		})

		It("recolors past the threshold with a key unique to tick and index", func() {
			rc := &fixedRecolor{color: particle.Color{R: 1}}
			p := colored(0, 0, particle.Color{})
			p.ColorTimer = 0.9
			p.ColorThreshold = 1

			var t physics.Tally
			env := physics.Env{Dt: 0.2, Tick: 3, Recolor: rc}
			kernel.Prepare(7, &p, env, &t)

			Expect(p.Color).To(Equal(particle.Color{R: 1}))
			Expect(p.ColorTimer).To(BeZero())
			Expect(t.Recolored).To(Equal(1))
			Expect(rc.keys).To(ConsistOf(env.Key(7)))
			Expect(env.Key(7)).NotTo(Equal(env.Key(8)))
			Expect(env.Key(7)).NotTo(Equal(physics.Env{Tick: 4}.Key(7)))
		})

		It("overwrites a fresh color with the neighbor mean in the same tick", func() {
			rc := &fixedRecolor{color: particle.Color{R: 1}}
			a := colored(0, 0, particle.Color{})
			a.ColorTimer, a.ColorThreshold = 5, 1
			b := colored(2, 0, particle.Color{B: 1})
			b.ColorThreshold = 100

			prev := []particle.Particle{a, b}
			var t physics.Tally
			for i := range prev {
				kernel.Prepare(i, &prev[i], physics.Env{Dt: 0.1, Recolor: rc}, &t)
			}
			next, _ := interact(kernel, prev, 1)

			Expect(next[0].Color).To(Equal(particle.Color{B: 1}))
			Expect(next[1].Color).To(Equal(particle.Color{R: 1}))
		})
	})
})
