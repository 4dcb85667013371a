package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/physics"
	"github.com/san-kum/partsim/internal/sim"
	"github.com/san-kum/partsim/internal/spawn"
)

const (
	DefaultKernel     = "bounce"
	DefaultWidth      = 1920.0
	DefaultHeight     = 1080.0
	DefaultRadius     = 10.0
	DefaultSpeed      = 10.0
	DefaultIntervalMs = 16
	DefaultSeed       = 1
)

// ErrUnknownPreset indicates a preset name that does not exist for a kernel.
var ErrUnknownPreset = errors.New("config: unknown preset")

type Config struct {
	Kernel        string        `yaml:"kernel"`
	Count         int           `yaml:"count"`
	Workers       int           `yaml:"workers"`
	Seed          uint64        `yaml:"seed"`
	Width         float64       `yaml:"width"`
	Height        float64       `yaml:"height"`
	Bootstrap     string        `yaml:"bootstrap"`
	TimeScaled    bool          `yaml:"time_scaled"`
	ValidateState bool          `yaml:"validate_state"`
	Ticks         int           `yaml:"ticks"`
	IntervalMs    int           `yaml:"interval_ms"`
	Spawn         SpawnConfig   `yaml:"spawn"`
	Bounce        BounceConfig  `yaml:"bounce"`
	Seek          SeekConfig    `yaml:"seek"`
	Diffuse       DiffuseConfig `yaml:"diffuse"`
}

type SpawnConfig struct {
	MaxSpeed      float64 `yaml:"max_speed"`
	RadiusMin     float64 `yaml:"radius_min"`
	RadiusMax     float64 `yaml:"radius_max"`
	AlphaFraction float64 `yaml:"alpha_fraction"`
	Classes       int     `yaml:"classes"`
	RecolorMin    float64 `yaml:"recolor_min"`
	RecolorMax    float64 `yaml:"recolor_max"`
}

type BounceConfig struct {
	Separate bool `yaml:"separate"`
}

type SeekConfig struct {
	MaxDistance float64 `yaml:"max_distance"`
	Strength    float64 `yaml:"strength"`
	Friction    float64 `yaml:"friction"`
	MatchClass  bool    `yaml:"match_class"`
}

type DiffuseConfig struct {
	Radius float64 `yaml:"radius"`
}

func DefaultConfig() *Config {
	ranges := spawn.DefaultRanges()
	seek := physics.DefaultSeek()
	return &Config{
		Kernel:        DefaultKernel,
		Count:         sim.DefaultCount,
		Seed:          DefaultSeed,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Bootstrap:     string(sim.BootstrapBatch),
		ValidateState: true,
		IntervalMs:    DefaultIntervalMs,
		Spawn: SpawnConfig{
			MaxSpeed:   ranges.MaxSpeed,
			RadiusMin:  ranges.RadiusMin,
			RadiusMax:  ranges.RadiusMax,
			RecolorMin: ranges.RecolorMin,
			RecolorMax: ranges.RecolorMax,
		},
		Seek: SeekConfig{
			MaxDistance: seek.MaxDistance,
			Strength:    seek.Strength,
			Friction:    seek.Friction,
		},
		Diffuse: DiffuseConfig{Radius: physics.DefaultDiffusionRadius},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over a copy of base; keys absent from the file
// keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy; Config holds no reference types.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Engine() sim.Config {
	return sim.Config{
		Count:   c.Count,
		Workers: c.Workers,
		Seed:    c.Seed,
		Bounds:  particle.NewBounds(c.Width, c.Height),
		Ranges: spawn.Ranges{
			MaxSpeed:      c.Spawn.MaxSpeed,
			RadiusMin:     c.Spawn.RadiusMin,
			RadiusMax:     c.Spawn.RadiusMax,
			AlphaFraction: c.Spawn.AlphaFraction,
			Classes:       c.Spawn.Classes,
			RecolorMin:    c.Spawn.RecolorMin,
			RecolorMax:    c.Spawn.RecolorMax,
		},
		Bootstrap:     sim.BootstrapMode(c.Bootstrap),
		TimeScaled:    c.TimeScaled,
		ValidateState: c.ValidateState,
	}
}

func (c *Config) Params() physics.Params {
	return physics.Params{
		Separate: c.Bounce.Separate,
		Bounds:   particle.NewBounds(c.Width, c.Height),
		Seek: physics.Seek{
			MaxDistance: c.Seek.MaxDistance,
			Strength:    c.Seek.Strength,
			Friction:    c.Seek.Friction,
			MatchClass:  c.Seek.MatchClass,
		},
		DiffusionRadius: c.Diffuse.Radius,
	}
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// NewEngine builds the kernel named by c.Kernel and an engine around it.
func (c *Config) NewEngine(opts ...sim.Option) (*sim.Engine, error) {
	kernel, err := physics.NewRegistry().Get(c.Kernel, c.Params())
	if err != nil {
		return nil, err
	}
	return sim.New(c.Engine(), kernel, opts...)
}
