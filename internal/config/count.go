package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/partsim/internal/sim"
	"github.com/san-kum/partsim/internal/spawn"
)

// ParseCount validates a particle count from the command line. Anything
// that is not an integer in [1, spawn.MaxParticles] yields sim.DefaultCount
// and an error wrapping spawn.ErrInvalidParticleCount; callers log it and
// continue with the returned value.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return sim.DefaultCount, fmt.Errorf("%w: empty", spawn.ErrInvalidParticleCount)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return sim.DefaultCount, fmt.Errorf("%w: %q is not a number", spawn.ErrInvalidParticleCount, s)
	}
	if err := spawn.ValidateCount(n); err != nil {
		return sim.DefaultCount, err
	}
	return n, nil
}
