package automation

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/sim"
	"github.com/san-kum/partsim/internal/spawn"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep selects a kernel and preset, then overrides a few fields.
// Zero values keep the preset's setting.
type ScenarioStep struct {
	Name    string  `yaml:"name"`
	Kernel  string  `yaml:"kernel"`
	Preset  string  `yaml:"preset"`
	Count   int     `yaml:"count"`
	Workers int     `yaml:"workers"`
	Seed    uint64  `yaml:"seed"`
	Ticks   int     `yaml:"ticks"`
	Dt      float64 `yaml:"dt"`
}

// Result summarizes one run of a scenario, sweep or Monte Carlo trial.
type Result struct {
	Label   string
	Param   float64
	Seed    uint64
	Ticks   int
	Escaped int
	Metrics map[string]float64
}

const (
	defaultTicks = 500
	defaultDt    = 1.0 / 60
)

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

func (s ScenarioStep) config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Kernel != "" {
		cfg.Kernel = s.Kernel
	}
	if s.Preset != "" {
		p, err := config.LookupPreset(cfg.Kernel, s.Preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if s.Count != 0 {
		cfg.Count = s.Count
	}
	if s.Workers != 0 {
		cfg.Workers = s.Workers
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	return cfg, nil
}

// RunScenario executes the steps in order and stops at the first failure.
func RunScenario(ctx context.Context, scenario *Scenario, log sim.Logger) ([]Result, error) {
	results := make([]Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		label := step.Name
		if label == "" {
			label = fmt.Sprintf("%s/%s", cfg.Kernel, step.Preset)
		}
		log.Infof("step %d/%d: %s", i+1, len(scenario.Steps), label)

		res, err := runOne(ctx, cfg, step.Ticks, step.Dt)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		res.Label = label
		results = append(results, res)
	}

	return results, nil
}

// runOne runs cfg for ticks ticks and collects the default metrics.
func runOne(ctx context.Context, cfg *config.Config, ticks int, dt float64) (Result, error) {
	if ticks <= 0 {
		ticks = defaultTicks
	}
	if dt <= 0 {
		dt = defaultDt
	}

	ms := metrics.Default(cfg.Engine().Bounds, cfg.Spawn.MaxSpeed)
	rec := metrics.NewRecorder(1, ms...)
	e, err := cfg.NewEngine(sim.WithObserver(rec))
	if err != nil {
		return Result{}, err
	}

	done, err := sim.Run(ctx, e, sim.RunConfig{Ticks: ticks, Dt: dt})
	if err != nil {
		return Result{}, err
	}

	escaped := 0
	for _, m := range ms {
		if c, ok := m.(*metrics.Containment); ok {
			escaped = c.Escaped()
		}
	}

	return Result{
		Seed:    cfg.Seed,
		Ticks:   done,
		Escaped: escaped,
		Metrics: rec.Summary(),
	}, nil
}

// ParameterSweep runs Base once per evenly spaced value of Param.
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min, Max float64
	NumSteps int
	Ticks    int
	Parallel int
}

// SweepParams lists the names ParameterSweep accepts.
var SweepParams = []string{"count", "max_speed", "radius", "diffuse_radius", "seek_strength", "seek_friction"}

func setParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "count":
		cfg.Count = int(v + 0.5)
	case "max_speed":
		cfg.Spawn.MaxSpeed = v
	case "radius":
		cfg.Spawn.RadiusMin, cfg.Spawn.RadiusMax = v, v
	case "diffuse_radius":
		cfg.Diffuse.Radius = v
	case "seek_strength":
		cfg.Seek.Strength = v
	case "seek_friction":
		cfg.Seek.Friction = v
	default:
		return fmt.Errorf("unknown sweep parameter %q (available: %v)", name, SweepParams)
	}
	return nil
}

// RunSweep runs every step, up to Parallel at a time. Results are in
// parameter order.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]Result, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if err := setParam(sweep.Base.Clone(), sweep.Param, sweep.Min); err != nil {
		return nil, err
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	results := make([]Result, sweep.NumSteps)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(sweep.Parallel, 1))

	for i := 0; i < sweep.NumSteps; i++ {
		val := sweep.Min + float64(i)*paramStep
		cfg := sweep.Base.Clone()
		if err := setParam(cfg, sweep.Param, val); err != nil {
			return nil, err
		}

		g.Go(func() error {
			res, err := runOne(ctx, cfg, sweep.Ticks, 0)
			if err != nil {
				return fmt.Errorf("%s=%g: %w", sweep.Param, val, err)
			}
			res.Label = fmt.Sprintf("%s=%g", sweep.Param, val)
			res.Param = val
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MonteCarloConfig reruns Base with NumTrials seeds derived from Seed.
type MonteCarloConfig struct {
	Base      *config.Config
	NumTrials int
	Seed      uint64
	Ticks     int
	Parallel  int
}

func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]Result, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least one trial, got %d", cfg.NumTrials)
	}

	results := make([]Result, cfg.NumTrials)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Parallel, 1))

	for trial := 0; trial < cfg.NumTrials; trial++ {
		c := cfg.Base.Clone()
		c.Seed = spawn.Mix(cfg.Seed, uint64(trial))

		g.Go(func() error {
			res, err := runOne(ctx, c, cfg.Ticks, 0)
			if err != nil {
				return fmt.Errorf("trial %d: %w", trial, err)
			}
			res.Label = fmt.Sprintf("trial %d", trial)
			res.Param = float64(trial)
			results[trial] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MonteCarloStats counts trials that ended with every particle inside the
// domain against those that did not.
func MonteCarloStats(results []Result) (contained int, escaped int) {
	for _, r := range results {
		if r.Escaped == 0 {
			contained++
		} else {
			escaped++
		}
	}
	return
}
