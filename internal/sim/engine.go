package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/partsim/internal/compute"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/physics"
	"github.com/san-kum/partsim/internal/spawn"
)

// Engine is the tick scheduler. It owns the particle store and advances it
// one tick per Step: integrate and reflect every particle into a stage
// buffer, run the kernel's prepare sub-step, then run the neighbor kernel
// with the stage buffer as the frozen input and the store's back buffer as
// output, and publish.
//
// Step and Snapshot may be called from different goroutines; a Snapshot
// never observes a partially computed tick.
type Engine struct {
	mu sync.RWMutex

	cfg     Config
	kernel  physics.Kernel
	prep    physics.Preparer
	pool    *compute.Pool
	factory *spawn.Factory
	store   *particle.Store
	stage   []particle.Particle
	tallies []physics.Tally

	phase     Phase
	ticks     uint64
	time      float64
	bootStart time.Time
	bootTime  time.Duration

	observers []Observer
	log       Logger
}

type Option func(*Engine)

func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// New validates cfg and returns an engine in the Bootstrapping phase. No
// particle exists until the first Bootstrap or Step.
func New(cfg Config, kernel physics.Kernel, opts ...Option) (*Engine, error) {
	if err := validateConfig(cfg, kernel); err != nil {
		return nil, err
	}

	pool := compute.NewPool(cfg.Workers)
	factory, err := spawn.New(cfg.Ranges, cfg.Bounds, cfg.Seed, pool)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	e := &Engine{
		cfg:     cfg,
		kernel:  kernel,
		pool:    pool,
		factory: factory,
		store:   particle.NewStore(cfg.Count),
		stage:   make([]particle.Particle, 0, cfg.Count),
		tallies: make([]physics.Tally, pool.Workers()),
		phase:   Bootstrapping,
		log:     nopLogger{},
	}
	if p, ok := kernel.(physics.Preparer); ok {
		e.prep = p
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func validateConfig(cfg Config, kernel physics.Kernel) error {
	if kernel == nil {
		return fmt.Errorf("%w: nil kernel", ErrInvalidConfig)
	}
	if err := spawn.ValidateCount(cfg.Count); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.Bounds.HalfWidth <= 0 || cfg.Bounds.HalfHeight <= 0 {
		return fmt.Errorf("%w: domain %.1fx%.1f must be positive", ErrInvalidConfig, cfg.Bounds.Width(), cfg.Bounds.Height())
	}
	switch cfg.Bootstrap {
	case BootstrapBatch, BootstrapIncremental, "":
	default:
		return fmt.Errorf("%w: unknown bootstrap mode %q", ErrInvalidConfig, cfg.Bootstrap)
	}
	return nil
}

func (e *Engine) AddObserver(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

// Bootstrap runs one bootstrap step: the whole population in batch mode, a
// single particle in incremental mode. It is a no-op once Running.
func (e *Engine) Bootstrap() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bootstrapLocked()
}

func (e *Engine) bootstrapLocked() error {
	if e.phase != Bootstrapping {
		return nil
	}
	if e.bootStart.IsZero() {
		e.bootStart = time.Now()
	}

	if e.cfg.Bootstrap == BootstrapIncremental {
		e.store.Append(e.factory.Spawn(e.store.Len()))
	} else {
		start := time.Now()
		ps, err := e.factory.Generate(e.cfg.Count)
		if err != nil {
			return err
		}
		e.store.Reset(ps)
		e.log.Debugf("generated %d particles on %d workers in %v", len(ps), e.pool.Chunks(len(ps)), time.Since(start))
	}

	if e.store.Len() >= e.cfg.Count {
		e.phase = Running
		e.bootTime = time.Since(e.bootStart)
		e.log.Infof("bootstrap complete: %d particles in %v", e.store.Len(), e.bootTime)
	}
	return nil
}

// Step runs a bootstrap step while Bootstrapping and then advances the
// population by one tick. dt is the elapsed time in seconds; it drives the
// recolor timers and, when TimeScaled is set, integration. On error the
// published snapshot is left at the previous tick.
func (e *Engine) Step(dt float64) (TickStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.bootstrapLocked(); err != nil {
		return TickStats{}, err
	}

	start := time.Now()
	tally, err := e.tickLocked(dt)
	if err != nil {
		e.log.Errorf("tick %d: %v", e.ticks, err)
		return TickStats{}, err
	}

	e.ticks++
	e.time += dt

	st := TickStats{
		Tick:       e.ticks,
		Time:       e.time,
		Particles:  e.store.Len(),
		Phase:      e.phase,
		Collisions: tally.Contacts / 2,
		Attracted:  tally.Attracted,
		Blended:    tally.Blended,
		Recolored:  tally.Recolored,
		Elapsed:    time.Since(start),
	}

	front := e.store.Front()
	for _, o := range e.observers {
		o.OnTick(front, st)
	}
	return st, nil
}

func (e *Engine) tickLocked(dt float64) (physics.Tally, error) {
	var total physics.Tally

	prev := e.store.Front()
	n := len(prev)
	if n == 0 {
		return total, nil
	}

	if cap(e.stage) < n {
		e.stage = make([]particle.Particle, n)
	}
	stage := e.stage[:n]
	next := e.store.Back()
	for w := range e.tallies {
		e.tallies[w] = physics.Tally{}
	}

	env := physics.Env{Dt: dt, Tick: e.ticks, Recolor: e.factory}

	// Phase A: per-particle work, each slot reads only its own input.
	err := e.pool.For(n, func(worker, start, end int) error {
		t := &e.tallies[worker]
		wenv := env
		wenv.Worker = worker
		for i := start; i < end; i++ {
			p := prev[i]
			e.advance(&p, dt)
			if e.prep != nil {
				e.prep.Prepare(i, &p, wenv, t)
			}
			stage[i] = p
		}
		return nil
	})
	if err != nil {
		return total, err
	}

	// Phase B: neighbor scan over the frozen stage buffer.
	err = e.pool.For(n, func(worker, start, end int) error {
		copy(next[start:end], stage[start:end])
		e.kernel.Interact(stage, next, start, end, &e.tallies[worker])

		if !e.cfg.ValidateState {
			return nil
		}
		for i := start; i < end; i++ {
			if !next[i].IsValid() {
				return &StateError{Tick: e.ticks + 1, Index: i}
			}
		}
		return nil
	})
	if err != nil {
		return total, err
	}

	for _, t := range e.tallies {
		total.Merge(t)
	}
	e.store.Commit()
	return total, nil
}

func (e *Engine) advance(p *particle.Particle, dt float64) {
	step := p.Vel
	if e.cfg.TimeScaled {
		step = step.Scale(dt)
	}
	p.Pos = p.Pos.Add(step)
	p.Vel, p.Reflected = physics.Reflect(p.Pos, p.Vel, p.Radius, e.cfg.Bounds)
}

// Snapshot returns a copy of the last published tick.
func (e *Engine) Snapshot() []particle.Particle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Snapshot()
}

func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Len()
}

func (e *Engine) Phase() Phase {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.phase
}

func (e *Engine) Ticks() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ticks
}

// Time returns the accumulated dt of all committed ticks.
func (e *Engine) Time() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.time
}

// BootstrapTime returns how long population creation took, or zero while
// still Bootstrapping.
func (e *Engine) BootstrapTime() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bootTime
}

func (e *Engine) Config() Config         { return e.cfg }
func (e *Engine) Kernel() physics.Kernel { return e.kernel }
func (e *Engine) Workers() int           { return e.pool.Workers() }
