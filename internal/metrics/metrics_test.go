package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/physics"
	"github.com/san-kum/partsim/internal/sim"
)

func disk(x, y, vx, vy float64) particle.Particle {
	return particle.Particle{
		Pos:    particle.Vec2{X: x, Y: y},
		Vel:    particle.Vec2{X: vx, Y: vy},
		Radius: 10,
		Color:  particle.Color{R: 0.5, G: 0.5, B: 0.5},
	}
}

func TestMeanSpeed(t *testing.T) {
	m := NewMeanSpeed()
	ps := []particle.Particle{disk(0, 0, 3, 4), disk(0, 0, 0, 1)}

	m.Observe(ps, sim.TickStats{})
	if math.Abs(m.Value()-3) > 1e-12 {
		t.Errorf("expected mean speed 3, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestKineticEnergy(t *testing.T) {
	k := NewKineticEnergy()
	k.Observe([]particle.Particle{disk(0, 0, 1, 0)}, sim.TickStats{})

	want := 0.5 * 100 * 1
	if math.Abs(k.Value()-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, k.Value())
	}
}

func TestCollisionsTotal(t *testing.T) {
	c := NewCollisions()
	c.Observe(nil, sim.TickStats{Collisions: 2})
	c.Observe(nil, sim.TickStats{Collisions: 3})

	if c.Value() != 3 {
		t.Errorf("expected last value 3, got %f", c.Value())
	}
	if c.Total() != 5 {
		t.Errorf("expected total 5, got %d", c.Total())
	}
}

func TestContainment(t *testing.T) {
	b := particle.NewBounds(200, 100)
	c := NewContainment(b, 5)

	if c.Value() != 1 {
		t.Error("expected full containment before any sample")
	}

	c.Observe([]particle.Particle{disk(0, 0, 0, 0)}, sim.TickStats{})
	c.Observe([]particle.Particle{disk(94, 0, 0, 0)}, sim.TickStats{})
	if c.Escaped() != 0 {
		t.Errorf("overshoot within slack counted as escape")
	}

	c.Observe([]particle.Particle{disk(0, 0, 0, 0), disk(120, 0, 0, 0)}, sim.TickStats{})
	if c.Escaped() != 1 {
		t.Errorf("expected 1 escaped particle, got %d", c.Escaped())
	}
	if math.Abs(c.Value()-2.0/3.0) > 1e-12 {
		t.Errorf("expected containment 2/3, got %f", c.Value())
	}
}

func TestColorSpread(t *testing.T) {
	s := NewColorSpread()

	same := []particle.Particle{disk(0, 0, 0, 0), disk(0, 0, 0, 0)}
	s.Observe(same, sim.TickStats{})
	if s.Value() != 0 {
		t.Errorf("expected zero spread for uniform colors, got %f", s.Value())
	}

	mixed := same
	mixed[1].Color = particle.Color{R: 1, G: 1, B: 1}
	s.Observe(mixed, sim.TickStats{})
	if s.Value() <= 0 {
		t.Error("expected positive spread for mixed colors")
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(3, NewMeanSpeed(), NewCollisions())
	ps := []particle.Particle{disk(0, 0, 1, 0)}

	for i := 1; i <= 5; i++ {
		r.OnTick(ps, sim.TickStats{Tick: uint64(i), Time: float64(i), Collisions: i})
	}

	times := r.Times()
	if len(times) != 3 || times[0] != 3 || times[2] != 5 {
		t.Errorf("expected last three times, got %v", times)
	}

	col := r.Series("collisions")
	if len(col) != 3 || col[2] != 5 {
		t.Errorf("unexpected collision series %v", col)
	}
	if r.Series("missing") != nil {
		t.Error("expected nil series for unknown metric")
	}
	if r.Last().Tick != 5 {
		t.Errorf("expected last tick 5, got %d", r.Last().Tick)
	}
	if got := r.Summary()["mean_speed"]; got != 1 {
		t.Errorf("expected mean speed 1, got %f", got)
	}

	r.Reset()
	if len(r.Times()) != 0 || r.Series("collisions") != nil {
		t.Error("expected empty recorder after reset")
	}
}

func TestRecorderAsObserver(t *testing.T) {
	var _ sim.Observer = (*Recorder)(nil)

	cfg := sim.DefaultConfig()
	cfg.Count = 20
	cfg.Workers = 2
	b := cfg.Bounds

	r := NewRecorder(0, Default(b, cfg.Ranges.MaxSpeed)...)
	e, err := sim.New(cfg, physics.None{}, sim.WithObserver(r))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		if _, err := e.Step(1.0 / 60); err != nil {
			t.Fatal(err)
		}
	}

	if len(r.Times()) != 50 {
		t.Errorf("expected 50 samples, got %d", len(r.Times()))
	}
	if got := r.Summary()["containment"]; got != 1 {
		t.Errorf("expected full containment, got %f", got)
	}
}
