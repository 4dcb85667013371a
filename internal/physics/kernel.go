package physics

import "github.com/san-kum/partsim/internal/particle"

// Kernel is a neighbor interaction policy.
//
// Interact reads prev, which is frozen for the whole tick, and writes
// next[start:end], which the caller has pre-filled with prev[start:end] and
// which belongs to one worker exclusively. Implementations must not write
// outside that range or mutate prev.
type Kernel interface {
	Name() string
	Interact(prev, next []particle.Particle, start, end int, t *Tally)
}

// Preparer is implemented by kernels with a per-particle sub-step that runs
// before the neighbor scan, after integration and reflection.
type Preparer interface {
	Prepare(i int, p *particle.Particle, env Env, t *Tally)
}

// Recolorer gives a particle a fresh random color and threshold from the
// generator stream keyed by key on the given worker.
type Recolorer interface {
	Recolor(p *particle.Particle, worker int, key uint64)
}

// Env carries the per-tick inputs of a Prepare call.
type Env struct {
	Dt      float64
	Tick    uint64
	Worker  int
	Recolor Recolorer
}

// Key returns the generator key for particle i on this tick. Keys never
// collide with the factory's spawn keys (tick+1 > 0 in the high word).
func (e Env) Key(i int) uint64 {
	return (e.Tick+1)<<32 | uint64(uint32(i))
}

// Tally is a worker-private counter set. The scheduler keeps one per worker
// and folds them after the barrier.
type Tally struct {
	Contacts  int // ordered (i, j) contacts; each colliding pair counts twice
	Attracted int
	Blended   int
	Recolored int
}

func (t *Tally) Merge(o Tally) {
	t.Contacts += o.Contacts
	t.Attracted += o.Attracted
	t.Blended += o.Blended
	t.Recolored += o.Recolored
}

// None only lets particles move and reflect.
type None struct{}

func (None) Name() string { return "none" }

func (None) Interact(prev, next []particle.Particle, start, end int, t *Tally) {}
