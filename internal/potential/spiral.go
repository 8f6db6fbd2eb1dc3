package potential

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// SpiralArms is the logarithmic spiral perturbation of Cox & Gomez (2002).
type SpiralArms struct {
	amp      float64
	arms     int
	alpha    float64
	rRef     float64
	phiRef   float64
	rs       float64
	h        float64
	omega    float64
	cs       []float64
	tanAlpha float64
	sinAlpha float64
	gradient *fd.Settings
}

// NewSpiralArms returns arms logarithmic arms with pitch angle 0.2 rad,
// reference radius 1, scale length 0.3 and scale height 0.125.
func NewSpiralArms(arms int) (*SpiralArms, error) {
	if arms < 1 {
		return nil, domainErr("spiral arms", "arm count %d must be at least 1", arms)
	}
	alpha := 0.2
	return &SpiralArms{
		amp:      1,
		arms:     arms,
		alpha:    alpha,
		rRef:     1,
		rs:       0.3,
		h:        0.125,
		cs:       []float64{1},
		tanAlpha: math.Tan(alpha),
		sinAlpha: math.Sin(alpha),
		gradient: &fd.Settings{Formula: fd.Central},
	}, nil
}

func (s *SpiralArms) Name() string { return "Spiral Arms" }

func (s *SpiralArms) Arms() int { return s.arms }

func (s *SpiralArms) phiCyl(R, z, phi, t float64) float64 {
	if R <= 0 {
		return 0
	}
	N := float64(s.arms)
	gamma := N * (phi - s.phiRef - math.Log(R/s.rRef)/s.tanAlpha + s.omega*t)

	sum := 0.0
	for i, c := range s.cs {
		n := float64(i + 1)
		k := n * N / (R * s.sinAlpha)
		kh := k * s.h
		b := kh * (1 + 0.4*kh)
		d := (1 + kh + 0.3*kh*kh) / (1 + 0.3*kh)
		sum += c / (k * d) * math.Cos(n*gamma) * sechPow(k*z/b, b)
	}
	return -s.amp * s.h * math.Exp(-(R-s.rRef)/s.rs) * sum
}

// sechPow returns sech(u)^p without overflowing cosh.
func sechPow(u, p float64) float64 {
	u = math.Abs(u)
	// sech u = 2 e^-u / (1 + e^-2u)
	return math.Exp(p * (math.Ln2 - u - math.Log1p(math.Exp(-2*u))))
}

func (s *SpiralArms) Phi(x, y, z, t float64) float64 {
	return s.phiCyl(math.Hypot(x, y), z, math.Atan2(y, x), t)
}

func (s *SpiralArms) Force(x, y, z, t float64) (float64, float64, float64) {
	var grad [3]float64
	fd.Gradient(grad[:], func(p []float64) float64 {
		return s.Phi(p[0], p[1], p[2], t)
	}, []float64{x, y, z}, s.gradient)
	return -grad[0], -grad[1], -grad[2]
}
