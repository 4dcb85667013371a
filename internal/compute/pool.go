package compute

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool splits an index range into contiguous chunks and runs one chunk per
// worker. Chunk k is always handed to worker id k, so per-worker resources
// (generators, tallies) can be indexed by the id without locking.
type Pool struct {
	workers int
}

// NewPool returns a pool with the given number of workers; n <= 0 selects
// runtime.NumCPU().
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return &Pool{workers: n}
}

func (p *Pool) Workers() int { return p.workers }

// Chunks returns how many workers For would use for n items.
func (p *Pool) Chunks(n int) int {
	if n <= 0 {
		return 0
	}
	if n < p.workers {
		return n
	}
	return p.workers
}

// For runs fn over [0, n) and blocks until every chunk has returned. The
// first non-nil error is returned after all chunks finish.
func (p *Pool) For(n int, fn func(worker, start, end int) error) error {
	chunks := p.Chunks(n)
	if chunks == 0 {
		return nil
	}
	if chunks == 1 {
		return fn(0, 0, n)
	}

	size := (n + chunks - 1) / chunks

	var g errgroup.Group
	for w := 0; w < chunks; w++ {
		start := w * size
		end := start + size
		if end > n {
			end = n
		}
		if start >= end {
			break
		}
		worker := w
		g.Go(func() error {
			return fn(worker, start, end)
		})
	}
	return g.Wait()
}
