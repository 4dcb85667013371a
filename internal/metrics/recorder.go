package metrics

import (
	"sync"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/sim"
)

// Recorder is a sim.Observer that samples every metric once per tick. It
// keeps at most limit samples per series; limit <= 0 keeps everything.
type Recorder struct {
	mu      sync.Mutex
	metrics []Metric
	limit   int
	times   []float64
	series  map[string][]float64
	last    sim.TickStats
}

func NewRecorder(limit int, ms ...Metric) *Recorder {
	r := &Recorder{
		metrics: ms,
		limit:   limit,
		series:  make(map[string][]float64, len(ms)),
	}
	return r
}

func (r *Recorder) OnTick(ps []particle.Particle, st sim.TickStats) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last = st
	r.times = r.push(r.times, st.Time)
	for _, m := range r.metrics {
		m.Observe(ps, st)
		r.series[m.Name()] = r.push(r.series[m.Name()], m.Value())
	}
}

func (r *Recorder) push(s []float64, v float64) []float64 {
	s = append(s, v)
	if r.limit > 0 && len(s) > r.limit {
		s = s[len(s)-r.limit:]
	}
	return s
}

func (r *Recorder) Names() []string {
	names := make([]string, len(r.metrics))
	for i, m := range r.metrics {
		names[i] = m.Name()
	}
	return names
}

func (r *Recorder) Times() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.times...)
}

// Series returns a copy of the samples for name, or nil.
func (r *Recorder) Series(name string) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.series[name]
	if !ok {
		return nil
	}
	return append([]float64(nil), s...)
}

// Summary returns the current value of every metric.
func (r *Recorder) Summary() map[string]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (r *Recorder) Last() sim.TickStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.metrics {
		m.Reset()
	}
	r.times = nil
	r.series = make(map[string][]float64, len(r.metrics))
	r.last = sim.TickStats{}
}
