package spawn

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/san-kum/partsim/internal/compute"
	"github.com/san-kum/partsim/internal/particle"
)

// MaxParticles is the upper sanity bound on a population.
const MaxParticles = 15000

var (
	// ErrInvalidParticleCount indicates a count outside [1, MaxParticles].
	ErrInvalidParticleCount = errors.New("spawn: invalid particle count")

	// ErrInvalidRanges indicates attribute ranges that cannot produce a valid particle.
	ErrInvalidRanges = errors.New("spawn: invalid attribute ranges")
)

// Ranges bounds the independent uniform draws of the factory.
type Ranges struct {
	MaxSpeed      float64
	RadiusMin     float64
	RadiusMax     float64
	AlphaFraction float64
	Classes       int
	RecolorMin    float64
	RecolorMax    float64
}

func DefaultRanges() Ranges {
	return Ranges{
		MaxSpeed:   10,
		RadiusMin:  10,
		RadiusMax:  10,
		RecolorMin: 1,
		RecolorMax: 5,
	}
}

// Validate checks the ranges against a domain.
func (r Ranges) Validate(b particle.Bounds) error {
	switch {
	case r.RadiusMin <= 0:
		return fmt.Errorf("%w: radius min %.3f must be positive", ErrInvalidRanges, r.RadiusMin)
	case r.RadiusMax < r.RadiusMin:
		return fmt.Errorf("%w: radius max %.3f below min %.3f", ErrInvalidRanges, r.RadiusMax, r.RadiusMin)
	case r.RadiusMax >= b.HalfWidth || r.RadiusMax >= b.HalfHeight:
		return fmt.Errorf("%w: radius %.3f does not fit domain %.0fx%.0f", ErrInvalidRanges, r.RadiusMax, b.Width(), b.Height())
	case r.MaxSpeed < 0:
		return fmt.Errorf("%w: max speed %.3f is negative", ErrInvalidRanges, r.MaxSpeed)
	case r.AlphaFraction < 0 || r.AlphaFraction > 1:
		return fmt.Errorf("%w: alpha fraction %.3f outside [0,1]", ErrInvalidRanges, r.AlphaFraction)
	case r.Classes < 0:
		return fmt.Errorf("%w: negative class count %d", ErrInvalidRanges, r.Classes)
	case r.RecolorMin < 0 || r.RecolorMax < r.RecolorMin:
		return fmt.Errorf("%w: recolor thresholds [%.3f, %.3f]", ErrInvalidRanges, r.RecolorMin, r.RecolorMax)
	}
	return nil
}

// ValidateCount rejects counts outside [1, MaxParticles].
func ValidateCount(n int) error {
	if n < 1 || n > MaxParticles {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidParticleCount, n, MaxParticles)
	}
	return nil
}

// Factory produces particles from independent uniform draws. Particle i is a
// pure function of (seed, i), so generation on any number of workers yields
// the same population.
type Factory struct {
	ranges Ranges
	bounds particle.Bounds
	pool   *compute.Pool
	arena  *Arena
}

func New(ranges Ranges, bounds particle.Bounds, seed uint64, pool *compute.Pool) (*Factory, error) {
	if err := ranges.Validate(bounds); err != nil {
		return nil, err
	}
	if pool == nil {
		pool = compute.NewPool(1)
	}
	return &Factory{
		ranges: ranges,
		bounds: bounds,
		pool:   pool,
		arena:  NewArena(seed, pool.Workers()),
	}, nil
}

func (f *Factory) Ranges() Ranges { return f.ranges }

// Generate returns n particles, drawn in parallel on the factory's pool.
// Invalid counts are rejected before anything is allocated.
func (f *Factory) Generate(n int) ([]particle.Particle, error) {
	if err := ValidateCount(n); err != nil {
		return nil, err
	}
	ps := make([]particle.Particle, n)
	err := f.pool.For(n, func(worker, start, end int) error {
		for i := start; i < end; i++ {
			ps[i] = f.draw(f.arena.Reseed(worker, uint64(i)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// Spawn returns particle i alone. It must not run concurrently with Generate
// or another Spawn, since it borrows worker 0's generator.
func (f *Factory) Spawn(i int) particle.Particle {
	return f.draw(f.arena.Reseed(0, uint64(i)))
}

// Recolor gives p a fresh random color and recolor threshold using the
// stream keyed by key on the given worker.
func (f *Factory) Recolor(p *particle.Particle, worker int, key uint64) {
	r := f.arena.Reseed(worker, key)
	p.Color = randomColor(r)
	p.ColorTimer = 0
	p.ColorThreshold = Uniform(r, f.ranges.RecolorMin, f.ranges.RecolorMax)
}

func (f *Factory) draw(r *rand.Rand) particle.Particle {
	rg := f.ranges
	radius := Uniform(r, rg.RadiusMin, rg.RadiusMax)
	minX, maxX, minY, maxY := f.bounds.Inset(radius)

	p := particle.Particle{
		Radius: radius,
		Pos: particle.Vec2{
			X: Uniform(r, minX, maxX),
			Y: Uniform(r, minY, maxY),
		},
		Vel: particle.Vec2{
			X: Uniform(r, -rg.MaxSpeed, rg.MaxSpeed),
			Y: Uniform(r, -rg.MaxSpeed, rg.MaxSpeed),
		},
		Color: randomColor(r),
	}

	switch {
	case rg.AlphaFraction > 0 && r.Float64() < rg.AlphaFraction:
		p.Role = particle.Alpha
	case rg.AlphaFraction > 0 || rg.Classes > 0:
		p.Role = particle.Beta
	}
	if rg.Classes > 0 {
		p.Class = r.Intn(rg.Classes)
	}

	p.ColorThreshold = Uniform(r, rg.RecolorMin, rg.RecolorMax)
	return p
}

func randomColor(r *rand.Rand) particle.Color {
	return particle.Color{R: r.Float64(), G: r.Float64(), B: r.Float64()}
}
