package config

import (
	"fmt"
	"sort"
)

func preset(kernel string, mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	cfg.Kernel = kernel
	mutate(cfg)
	return cfg
}

var Presets = map[string]map[string]*Config{
	"bounce": {
		"classic": preset("bounce", func(c *Config) {
			c.Count = 100
		}),
		"separate": preset("bounce", func(c *Config) {
			c.Count = 100
			c.Bounce.Separate = true
		}),
		"crowd": preset("bounce", func(c *Config) {
			c.Count = 2000
			c.Spawn.RadiusMin = 2
			c.Spawn.RadiusMax = 6
			c.Spawn.MaxSpeed = 4
			c.Bounce.Separate = true
		}),
	},
	"none": {
		"lazy": preset("none", func(c *Config) {
			c.Count = 500
			c.Bootstrap = "incremental"
			c.Spawn.RadiusMin = 20
			c.Spawn.RadiusMax = 20
		}),
		"drift": preset("none", func(c *Config) {
			c.Count = 1000
			c.Spawn.RadiusMin = 1
			c.Spawn.RadiusMax = 3
			c.Spawn.MaxSpeed = 2
		}),
	},
	"seek": {
		"flock": preset("seek", func(c *Config) {
			c.Count = 400
			c.Spawn.AlphaFraction = 0.05
			c.Spawn.RadiusMin = 3
			c.Spawn.RadiusMax = 5
		}),
		"tribes": preset("seek", func(c *Config) {
			c.Count = 600
			c.Spawn.AlphaFraction = 0.02
			c.Spawn.Classes = 3
			c.Spawn.RadiusMin = 3
			c.Spawn.RadiusMax = 5
			c.Seek.MatchClass = true
		}),
	},
	"diffuse": {
		"classic": preset("diffuse", func(c *Config) {
			c.Count = 300
			c.Spawn.RadiusMin = 5
			c.Spawn.RadiusMax = 8
		}),
		"wide": preset("diffuse", func(c *Config) {
			c.Count = 300
			c.Spawn.RadiusMin = 5
			c.Spawn.RadiusMax = 8
			c.Diffuse.Radius = 80
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(kernel, name string) *Config {
	kernelPresets, ok := Presets[kernel]
	if !ok {
		return nil
	}
	cfg, ok := kernelPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// LookupPreset is GetPreset with an error for command-line callers.
func LookupPreset(kernel, name string) (*Config, error) {
	cfg := GetPreset(kernel, name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s/%s (available: %v)", ErrUnknownPreset, kernel, name, ListPresets(kernel))
	}
	return cfg, nil
}

func ListPresets(kernel string) []string {
	kernelPresets, ok := Presets[kernel]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kernelPresets))
	for name := range kernelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
