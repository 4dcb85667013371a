// Package physics provides the per-tick particle rules: the boundary
// reflector and the neighbor interaction kernels.
//
//   - [Reflect]: velocity sign flip at the domain wall
//   - [Bounce]: velocity inversion on contact, optional overlap separation
//   - [Seek]: beta particles pulled toward the nearest alpha
//   - [Diffuse]: color averaging over a neighbor radius, with random recolor
//   - [None]: movement only
//
// Every kernel is a plain O(n²) scan. Kernels read a frozen snapshot and
// write only their own output partition, so the result of a tick does not
// depend on how the index range was split across workers.
//
// # Recolor ordering
//
// [Diffuse] implements [Preparer]. The recolor sub-step always runs before
// the neighbor average of the same tick.
package physics
