package analysis

import (
	"math"

	"github.com/san-kum/vipor/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent by following a
// companion trajectory offset by d0 and pulling it back to distance d0 after
// every step. A clearly positive value marks a chaotic orbit.
//
// The result is in inverse time units of dt.
func LyapunovExponent(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	d0 float64,
) float64 {
	if len(x0) == 0 {
		return 0
	}
	xp := x0.Clone()
	xp[0] += d0
	return separationRate(dyn, integ, x0, xp, dt, duration, d0)
}

// LyapunovSpectrum returns finite-time exponents for an initial offset along
// each state coordinate in turn. For long runs every entry converges to the
// largest exponent; the spread over short runs shows which directions
// separate first.
func LyapunovSpectrum(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	d0 float64,
) []float64 {
	spectrum := make([]float64, len(x0))
	for i := range x0 {
		xp := x0.Clone()
		xp[i] += d0
		spectrum[i] = separationRate(dyn, integ, x0, xp, dt, duration, d0)
	}
	return spectrum
}

func separationRate(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0, x0p dynamo.State,
	dt, duration, d0 float64,
) float64 {
	if d0 <= 0 || dt <= 0 {
		return 0
	}
	x := x0.Clone()
	xp := x0p.Clone()

	t := 0.0
	sumLog := 0.0
	for t+0.5*dt < duration {
		x = integ.Step(dyn, x, t, dt)
		xp = integ.Step(dyn, xp, t, dt)
		t += dt
		if !x.IsValid() || !xp.IsValid() {
			break
		}

		sep := xp.Sub(x).Norm()
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}

	if t == 0 {
		return 0
	}
	return sumLog / t
}
