package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/physics"
)

var _ = Describe("Registry", func() {
	reg := physics.NewRegistry()

	It("lists kernels in sorted order", func() {
		Expect(reg.Names()).To(Equal([]string{"bounce", "diffuse", "none", "seek"}))
	})

	It("builds each kernel under its own name", func() {
		for _, name := range reg.Names() {
			k, err := reg.Get(name, physics.DefaultParams())
			Expect(err).NotTo(HaveOccurred())
			Expect(k.Name()).To(Equal(name))
		}
	})

	It("passes parameters through", func() {
		p := physics.DefaultParams()
		p.Separate = true
		p.Bounds = particle.NewBounds(200, 100)
		p.DiffusionRadius = 12

		k, err := reg.Get("bounce", p)
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(physics.Bounce{Separate: true, Bounds: particle.NewBounds(200, 100)}))

		k, err = reg.Get("diffuse", p)
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(physics.Diffuse{Radius: 12}))
	})

	It("falls back to the default diffusion radius", func() {
		k, err := reg.Get("diffuse", physics.Params{})
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(physics.Diffuse{Radius: physics.DefaultDiffusionRadius}))
	})

	It("only the diffusion kernel has a prepare step", func() {
		for _, name := range reg.Names() {
			k, _ := reg.Get(name, physics.DefaultParams())
			_, ok := k.(physics.Preparer)
			Expect(ok).To(Equal(name == "diffuse"), name)
		}
	})

	It("rejects unknown names", func() {
		_, err := reg.Get("gravity", physics.DefaultParams())
		Expect(err).To(MatchError(physics.ErrUnknownKernel))
	})
})
