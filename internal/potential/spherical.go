package potential

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// NewKepler is a point mass of mass amp.
func NewKepler(amp float64) (Potential, error) {
	if amp < 0 {
		return nil, domainErr("kepler", "negative mass %g", amp)
	}
	return &spherical{
		name: "Kepler",
		phi:  func(r float64) float64 { return -amp / r },
		dphi: func(r float64) float64 { return amp / (r * r) },
	}, nil
}

// NewPlummer has Phi = -amp / sqrt(r^2 + b^2).
func NewPlummer(amp, b float64) (Potential, error) {
	if b < 0 {
		return nil, domainErr("plummer", "negative scale %g", b)
	}
	b2 := b * b
	return &spherical{
		name: "Plummer",
		phi:  func(r float64) float64 { return -amp / math.Sqrt(r*r+b2) },
		dphi: func(r float64) float64 { return amp * r / math.Pow(r*r+b2, 1.5) },
	}, nil
}

// NewPowerSpherical has density amp (r1/r)^alpha with r1 = 1.
func NewPowerSpherical(amp, alpha float64) (Potential, error) {
	if alpha >= 3 {
		return nil, domainErr("power spherical", "alpha %g >= 3 has infinite mass at the centre", alpha)
	}
	k := 4 * math.Pi * amp / (3 - alpha)
	phi := func(r float64) float64 { return k * math.Pow(r, 2-alpha) / (2 - alpha) }
	if alpha == 2 {
		phi = func(r float64) float64 { return k * math.Log(r) }
	}
	return &spherical{
		name: "Power Spherical",
		phi:  phi,
		dphi: func(r float64) float64 { return k * math.Pow(r, 1-alpha) },
	}, nil
}

// NewHomogeneousSphere is a sphere of radius R and density amp.
func NewHomogeneousSphere(amp, R float64) (Potential, error) {
	if R <= 0 {
		return nil, domainErr("homogeneous sphere", "radius %g must be positive", R)
	}
	R2, R3 := R*R, R*R*R
	return &spherical{
		name: "Homogeneous Sphere",
		phi: func(r float64) float64 {
			if r < R {
				return 2 * math.Pi * amp * (r*r/3 - R2)
			}
			return -4 * math.Pi * amp * R3 / (3 * r)
		},
		dphi: func(r float64) float64 {
			if r < R {
				return 4 * math.Pi * amp * r / 3
			}
			return 4 * math.Pi * amp * R3 / (3 * r * r)
		},
	}, nil
}

// NewSphericalShell is an infinitely thin shell of radius a and mass amp.
func NewSphericalShell(amp, a float64) (Potential, error) {
	if a <= 0 {
		return nil, domainErr("spherical shell", "radius %g must be positive", a)
	}
	return &spherical{
		name: "Spherical Shell",
		phi: func(r float64) float64 {
			if r <= a {
				return -amp / a
			}
			return -amp / r
		},
		dphi: func(r float64) float64 {
			if r <= a {
				return 0
			}
			return amp / (r * r)
		},
	}, nil
}

// NewNFW has density amp / (4 pi a^3) / (x (1+x)^2) with x = r/a.
func NewNFW(amp, a float64) (Potential, error) {
	if a <= 0 {
		return nil, domainErr("nfw", "scale %g must be positive", a)
	}
	return &spherical{
		name: "NFW",
		phi: func(r float64) float64 {
			if r == 0 {
				return -amp / a
			}
			return -amp * math.Log1p(r/a) / r
		},
		dphi: func(r float64) float64 {
			s := r / a
			return amp * (math.Log1p(s) - s/(1+s)) / (r * r)
		},
	}, nil
}

// NewPowerSphericalCutoff has density amp r^-alpha exp(-(r/rc)^2). Phi
// vanishes at infinity.
func NewPowerSphericalCutoff(amp, alpha, rc float64) (Potential, error) {
	if alpha >= 2 {
		return nil, domainErr("power spherical cutoff", "alpha %g must be below 2", alpha)
	}
	if rc <= 0 {
		return nil, domainErr("power spherical cutoff", "cutoff radius %g must be positive", rc)
	}
	a1 := 1.5 - alpha/2
	a2 := 1 - alpha/2
	mk := 2 * math.Pi * amp * math.Pow(rc, 3-alpha) * math.Gamma(a1)
	pk := 2 * math.Pi * amp * math.Pow(rc, 2-alpha) * math.Gamma(a2)
	mass := func(r float64) float64 {
		return mk * mathext.GammaIncReg(a1, r*r/(rc*rc))
	}
	return &spherical{
		name: "Power Spherical with Cutoff",
		phi: func(r float64) float64 {
			outer := pk * mathext.GammaIncRegComp(a2, r*r/(rc*rc))
			if r == 0 {
				return -outer
			}
			return -mass(r)/r - outer
		},
		dphi: func(r float64) float64 { return mass(r) / (r * r) },
	}, nil
}
