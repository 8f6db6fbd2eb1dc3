// Package potential implements gravitational potentials of galactic mass
// models and the quantities derived from them.
//
// All values are in natural units: lengths in units of R0 = 8 kpc,
// velocities in units of V0 = 220 km/s and G = 1, so that a potential
// normalized with [Normalize](p, 1) has a circular velocity of 1 at R = 1.
// Conversion to physical units lives in package units.
//
// Spherical models (Kepler, Plummer, PowerSpherical, HomogeneousSphere,
// SphericalShell, NFW, TwoPowerSpherical, PowerSphericalCutoff) have closed
// form or special-function forces. The DoubleExponentialDisk evaluates
// Hankel integrals; triaxial models evaluate ellipsoidal integrals with
// Gauss-Legendre quadrature; SpiralArms differentiates numerically.
//
// Constructors validate their parameters and wrap [ErrDomain] when a value
// lies outside the model's domain.
package potential
