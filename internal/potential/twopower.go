package potential

import "math"

// NewTwoPowerSpherical has density
// amp / (4 pi a^3) x^-alpha (1+x)^(alpha-beta), x = r/a.
// alpha = 1, beta = 3 is NFW; alpha = 1, beta = 4 is Hernquist.
func NewTwoPowerSpherical(amp, a, alpha, beta float64) (Potential, error) {
	switch {
	case a <= 0:
		return nil, domainErr("two power spherical", "scale %g must be positive", a)
	case alpha >= 3:
		return nil, domainErr("two power spherical", "inner slope %g must be below 3", alpha)
	case beta <= 2:
		return nil, domainErr("two power spherical", "outer slope %g must exceed 2", beta)
	}

	// In t = x/(1+x) both the enclosed mass and the outer part of the
	// potential are incomplete beta functions.
	mass := func(s float64) float64 {
		return amp * incBeta(3-alpha, beta-3, s/(1+s))
	}
	return &spherical{
		name: "Two Power Spherical",
		phi: func(r float64) float64 {
			s := r / a
			outer := incBeta(beta-2, 2-alpha, 1/(1+s))
			if s == 0 {
				return -amp / a * outer
			}
			return -amp / a * (mass(s)/amp/s + outer)
		},
		dphi: func(r float64) float64 {
			if r == 0 {
				return 0
			}
			return mass(r/a) / (r * r)
		},
	}, nil
}

// NewHernquist is the alpha = 1, beta = 4 member of the two-power family in
// closed form.
func NewHernquist(amp, a float64) (Potential, error) {
	if a <= 0 {
		return nil, domainErr("hernquist", "scale %g must be positive", a)
	}
	return &spherical{
		name: "Hernquist",
		phi:  func(r float64) float64 { return -amp / 2 / (r + a) },
		dphi: func(r float64) float64 { return amp / 2 / math.Pow(r+a, 2) },
	}, nil
}
