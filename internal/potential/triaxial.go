package potential

import "math"

const ellipsoidalNodes = 50

// ellipsoidal is a potential whose density is stratified on ellipsoids
// m^2 = x^2 + y^2/b^2 + z^2/c^2. psi is int_0^{m^2} rho dm^2 up to a constant.
type ellipsoidal struct {
	name       string
	b2, c2, bc float64
	psi        func(m float64) float64
	dens       func(m2 float64) float64
	nodes, wts []float64
}

func newEllipsoidal(name string, b, c float64, psi func(float64) float64, dens func(float64) float64) *ellipsoidal {
	nodes, wts := legendre(ellipsoidalNodes, 0, 1)
	return &ellipsoidal{
		name:  name,
		b2:    b * b,
		c2:    c * c,
		bc:    b * c,
		psi:   psi,
		dens:  dens,
		nodes: nodes,
		wts:   wts,
	}
}

func (e *ellipsoidal) Name() string { return e.name }

// The integrals below use s in [0, 1] with tau = 1/s^2 - 1.

func (e *ellipsoidal) Phi(x, y, z, t float64) float64 {
	sum := 0.0
	for i, s := range e.nodes {
		s2 := s * s
		pb := 1 + (e.b2-1)*s2
		pc := 1 + (e.c2-1)*s2
		m := s * math.Sqrt(x*x+y*y/pb+z*z/pc)
		sum += e.wts[i] * e.psi(m) / math.Sqrt(pb*pc)
	}
	return 2 * math.Pi * e.bc * sum
}

func (e *ellipsoidal) Force(x, y, z, t float64) (float64, float64, float64) {
	var sx, sy, sz float64
	for i, s := range e.nodes {
		s2 := s * s
		pb := 1 + (e.b2-1)*s2
		pc := 1 + (e.c2-1)*s2
		m2 := s2 * (x*x + y*y/pb + z*z/pc)
		if m2 == 0 {
			continue
		}
		w := e.wts[i] * e.dens(m2) * s2 / math.Sqrt(pb*pc)
		sx += w
		sy += w / pb
		sz += w / pc
	}
	k := -4 * math.Pi * e.bc
	return k * x * sx, k * y * sy, k * z * sz
}

// NewPowerTriaxial has density amp m^-alpha.
func NewPowerTriaxial(amp, alpha, b, c float64) (Potential, error) {
	switch {
	case alpha >= 3:
		return nil, domainErr("power triaxial", "alpha %g must be below 3", alpha)
	case b <= 0 || c <= 0:
		return nil, domainErr("power triaxial", "axis ratios (%g, %g) must be positive", b, c)
	}
	psi := func(m float64) float64 { return 2 * amp * math.Pow(m, 2-alpha) / (2 - alpha) }
	if alpha == 2 {
		psi = func(m float64) float64 { return 2 * amp * math.Log(m) }
	}
	return newEllipsoidal("Power Triaxial", b, c, psi, func(m2 float64) float64 {
		return amp * math.Pow(m2, -alpha/2)
	}), nil
}

// NewTwoPowerTriaxial has density amp/(4 pi a^3) x^-alpha (1+x)^(alpha-beta)
// with x = m/a.
func NewTwoPowerTriaxial(amp, a, alpha, beta, b, c float64) (Potential, error) {
	switch {
	case a <= 0:
		return nil, domainErr("two power triaxial", "scale %g must be positive", a)
	case alpha >= 2:
		return nil, domainErr("two power triaxial", "inner slope %g must be below 2", alpha)
	case beta <= 2:
		return nil, domainErr("two power triaxial", "outer slope %g must exceed 2", beta)
	case b <= 0 || c <= 0:
		return nil, domainErr("two power triaxial", "axis ratios (%g, %g) must be positive", b, c)
	}
	norm := amp / (4 * math.Pi * a * a * a)
	return newEllipsoidal("Two Power Triaxial", b, c,
		func(m float64) float64 {
			x := m / a
			return amp / (2 * math.Pi * a) * incBeta(2-alpha, beta-2, x/(1+x))
		},
		func(m2 float64) float64 {
			x := math.Sqrt(m2) / a
			return norm * math.Pow(x, -alpha) * math.Pow(1+x, alpha-beta)
		}), nil
}
