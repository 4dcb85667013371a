package spawn

import "golang.org/x/exp/rand"

// Arena holds one generator per worker. A generator is never shared between
// workers; Reseed rewinds a worker's generator to a stream derived from the
// base seed and a key, so results depend on the key and not on which worker
// happened to process it.
type Arena struct {
	seed uint64
	srcs []*rand.PCGSource
	rngs []*rand.Rand
}

func NewArena(seed uint64, workers int) *Arena {
	if workers < 1 {
		workers = 1
	}
	a := &Arena{
		seed: seed,
		srcs: make([]*rand.PCGSource, workers),
		rngs: make([]*rand.Rand, workers),
	}
	for w := range a.srcs {
		a.srcs[w] = &rand.PCGSource{}
		a.srcs[w].Seed(Mix(seed, uint64(w)))
		a.rngs[w] = rand.New(a.srcs[w])
	}
	return a
}

func (a *Arena) Workers() int { return len(a.rngs) }

// Reseed positions worker w's generator at the stream for key and returns it.
func (a *Arena) Reseed(w int, key uint64) *rand.Rand {
	a.srcs[w].Seed(Mix(a.seed, key))
	return a.rngs[w]
}

// Mix combines a base seed and a key into a well-spread 64-bit seed
// (splitmix64 finalizer).
func Mix(seed, key uint64) uint64 {
	z := seed + 0x9e3779b97f4a7c15*(key+1)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Uniform draws from [lo, hi).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
