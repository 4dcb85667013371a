package physics

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/partsim/internal/particle"
)

// ErrUnknownKernel indicates a kernel name the registry does not know.
var ErrUnknownKernel = errors.New("physics: unknown kernel")

// Params carries the tunables of every kernel; each constructor reads the
// fields it needs.
type Params struct {
	Separate        bool
	Bounds          particle.Bounds
	Seek            Seek
	DiffusionRadius float64
}

func DefaultParams() Params {
	return Params{
		Seek:            DefaultSeek(),
		DiffusionRadius: DefaultDiffusionRadius,
	}
}

type Registry struct {
	kernels map[string]func(Params) Kernel
}

func NewRegistry() *Registry {
	r := &Registry{kernels: make(map[string]func(Params) Kernel)}

	r.kernels["none"] = func(Params) Kernel { return None{} }
	r.kernels["bounce"] = func(p Params) Kernel { return Bounce{Separate: p.Separate, Bounds: p.Bounds} }
	r.kernels["seek"] = func(p Params) Kernel { return p.Seek }
	r.kernels["diffuse"] = func(p Params) Kernel {
		radius := p.DiffusionRadius
		if radius <= 0 {
			radius = DefaultDiffusionRadius
		}
		return Diffuse{Radius: radius}
	}

	return r
}

func (r *Registry) Get(name string, p Params) (Kernel, error) {
	fn, ok := r.kernels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownKernel, name, r.Names())
	}
	return fn(p), nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.kernels))
	for name := range r.kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
