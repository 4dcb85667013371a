package sim

import (
	"context"
	"time"
)

// RunConfig drives Run.
type RunConfig struct {
	// Ticks is the number of ticks to run; 0 runs until ctx is done.
	Ticks int

	// Interval is the tick cadence; 0 runs as fast as possible.
	Interval time.Duration

	// Dt is the time passed to each Step; 0 passes the measured wall time
	// since the previous tick.
	Dt float64
}

// Run steps e until cfg.Ticks ticks have run or ctx is done. Cancellation is
// only checked between ticks, so the in-flight tick always completes and is
// published. It returns the number of ticks run and ctx.Err() on
// cancellation.
func Run(ctx context.Context, e *Engine, cfg RunConfig) (int, error) {
	var ticker *time.Ticker
	if cfg.Interval > 0 {
		ticker = time.NewTicker(cfg.Interval)
		defer ticker.Stop()
	}

	last := time.Now()
	done := 0
	for cfg.Ticks == 0 || done < cfg.Ticks {
		select {
		case <-ctx.Done():
			return done, ctx.Err()
		default:
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return done, ctx.Err()
			case <-ticker.C:
			}
		}

		dt := cfg.Dt
		now := time.Now()
		if dt <= 0 {
			dt = now.Sub(last).Seconds()
		}
		last = now

		if _, err := e.Step(dt); err != nil {
			return done, err
		}
		done++
	}
	return done, nil
}
