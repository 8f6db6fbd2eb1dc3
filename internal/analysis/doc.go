// Package analysis characterizes integrated orbits.
//
//   - [OrbitalPeriods]: radial and vertical periods from FFT spectra, azimuthal
//     period from the unwrapped angle
//   - [LyapunovExponent]: largest exponent via companion-orbit separation
//   - [Section]: surface of section at upward midplane crossings
//   - [SectionSweep]: crossing radii as a model parameter varies
//
// # Chaos Detection
//
// Orbits in triaxial potentials can be chaotic. A positive largest Lyapunov
// exponent, or a surface of section that fills an area rather than a curve,
// indicates it:
//
//	lambda := analysis.LyapunovExponent(sys, integ, x0, dt, duration, 1e-8)
//	if lambda > 0.05 {
//	    // chaotic on the sampled time scale
//	}
package analysis
