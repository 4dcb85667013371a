// Package analysis inspects recorded runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: periodicity of a metric series
//   - [Density] and [DensityToASCII]: where particles gather
//   - [VelocityPortraitToASCII]: the spread of particle velocities
//
// A bouncing population in a box shows its wall-crossing period as a peak in
// the spectrum of its kinetic energy:
//
//	freq, _ := analysis.DominantFrequency(series["kinetic_energy"], 60)
package analysis
