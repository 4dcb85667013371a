package sim

import (
	"time"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/spawn"
)

// Phase is the scheduler state.
type Phase int

const (
	Bootstrapping Phase = iota
	Running
)

func (p Phase) String() string {
	switch p {
	case Bootstrapping:
		return "bootstrapping"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// BootstrapMode selects how the population is created.
type BootstrapMode string

const (
	// BootstrapBatch generates the whole population on the first step.
	BootstrapBatch BootstrapMode = "batch"
	// BootstrapIncremental appends one particle per step until the target.
	BootstrapIncremental BootstrapMode = "incremental"
)

type Config struct {
	Count     int
	Workers   int
	Seed      uint64
	Bounds    particle.Bounds
	Ranges    spawn.Ranges
	Bootstrap BootstrapMode

	// TimeScaled integrates pos += vel*dt instead of pos += vel per tick.
	TimeScaled bool

	// ValidateState fails a tick that produces a NaN or Inf particle.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Count:         DefaultCount,
		Workers:       0,
		Seed:          1,
		Bounds:        particle.NewBounds(1920, 1080),
		Ranges:        spawn.DefaultRanges(),
		Bootstrap:     BootstrapBatch,
		ValidateState: true,
	}
}

// DefaultCount is the population used when no valid count is supplied.
const DefaultCount = 10

// TickStats summarizes one committed tick.
type TickStats struct {
	Tick      uint64
	Time      float64
	Particles int
	Phase     Phase

	// Collisions counts unordered touching pairs.
	Collisions int
	Attracted  int
	Blended    int
	Recolored  int

	Elapsed time.Duration
}

// Observer is notified after every committed tick. The slice is the
// published buffer: read it, never write it or keep it. Observers run inside
// the tick's critical section and must not call back into the Engine.
type Observer interface {
	OnTick(ps []particle.Particle, st TickStats)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ps []particle.Particle, st TickStats)

func (f ObserverFunc) OnTick(ps []particle.Particle, st TickStats) { f(ps, st) }
