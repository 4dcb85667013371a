// Package compute provides the fixed-size worker pool that runs the
// per-tick kernels.
//
// A [Pool] partitions an index range into one contiguous chunk per worker:
//
//	pool := compute.NewPool(0) // runtime.NumCPU() workers
//	err := pool.For(len(ps), func(worker, start, end int) error {
//	    for i := start; i < end; i++ {
//	        out[i] = step(ps[i])
//	    }
//	    return nil
//	})
//
// Chunk k always runs on worker id k. Callers keep per-worker scratch space
// (random generators, counters) in slices indexed by that id and fold them
// after For returns.
package compute
