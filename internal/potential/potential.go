package potential

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is returned by constructors whose parameters fall outside the
// model's physical domain.
var ErrDomain = errors.New("potential: parameter outside model domain")

// Potential is a gravitational potential in natural units (G = 1, lengths
// in R0, velocities in V0). Positions are galactocentric Cartesian.
// Implementations are immutable after construction and safe for
// concurrent use.
type Potential interface {
	Name() string
	Phi(x, y, z, t float64) float64
	Force(x, y, z, t float64) (fx, fy, fz float64)
}

func domainErr(model, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", model, fmt.Sprintf(format, args...), ErrDomain)
}

// spherical is a potential that depends only on r.
type spherical struct {
	name string
	phi  func(r float64) float64
	// dphi is dPhi/dr, i.e. M(<r)/r^2.
	dphi func(r float64) float64
}

func (s *spherical) Name() string { return s.name }

func (s *spherical) Phi(x, y, z, t float64) float64 {
	return s.phi(math.Sqrt(x*x + y*y + z*z))
}

func (s *spherical) Force(x, y, z, t float64) (float64, float64, float64) {
	r := math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return 0, 0, 0
	}
	f := -s.dphi(r) / r
	return f * x, f * y, f * z
}

// axisymmetric is a potential that depends on (R, z).
type axisymmetric struct {
	name string
	phi  func(R, z float64) float64
	// force returns (F_R, F_z).
	force func(R, z float64) (float64, float64)
}

func (a *axisymmetric) Name() string { return a.name }

func (a *axisymmetric) Phi(x, y, z, t float64) float64 {
	return a.phi(math.Hypot(x, y), z)
}

func (a *axisymmetric) Force(x, y, z, t float64) (float64, float64, float64) {
	R := math.Hypot(x, y)
	fR, fz := a.force(R, z)
	if R == 0 {
		return 0, 0, fz
	}
	return fR * x / R, fR * y / R, fz
}
