package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates an engine configuration that cannot run.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrInvalidState indicates a tick produced a NaN or Inf particle.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")
)

// StateError reports the first invalid particle found in a tick. The tick is
// discarded; the published snapshot stays at the previous tick.
type StateError struct {
	Tick  uint64
	Index int
}

func (e *StateError) Error() string {
	return fmt.Sprintf("tick %d particle %d: %v", e.Tick, e.Index, ErrInvalidState)
}

func (e *StateError) Unwrap() error {
	return ErrInvalidState
}
