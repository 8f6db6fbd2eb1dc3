package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/vipor/internal/orbit"
)

// PowerSpectrum returns the amplitude of the first n/2 Fourier modes of the
// mean-subtracted series.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := stat.Mean(data, nil)
	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantPeriod returns the period of the strongest oscillation in a series
// sampled every dt, refined by a parabola through the peak bin. A series
// without oscillation gives 0.
func DominantPeriod(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 3 || dt <= 0 {
		return 0
	}
	k := floats.MaxIdx(ps[1:]) + 1
	if ps[k] <= quietLevel*float64(len(data))*scaleOf(data) {
		return 0
	}

	offset := 0.0
	if k+1 < len(ps) {
		l, c, r := ps[k-1], ps[k], ps[k+1]
		if den := l - 2*c + r; den != 0 {
			offset = 0.5 * (l - r) / den
		}
	}
	freq := (float64(k) + offset) / (float64(len(data)) * dt)
	if freq <= 0 {
		return 0
	}
	return 1 / freq
}

// quietLevel is the relative amplitude below which a spectrum counts as
// numerical noise.
const quietLevel = 1e-7

func scaleOf(data []float64) float64 {
	return math.Max(floats.Max(data)-floats.Min(data), math.Max(math.Abs(floats.Max(data)), math.Abs(floats.Min(data))))
}

// Periods of an orbit in Gyr. Zero means no oscillation was found in that
// direction.
type Periods struct {
	Radial    float64 `json:"radial_gyr"`
	Vertical  float64 `json:"vertical_gyr"`
	Azimuthal float64 `json:"azimuthal_gyr"`
}

// OrbitalPeriods measures the radial and vertical periods from the spectra
// of R(t) and z(t), and the azimuthal period from the mean rate of the
// unwrapped azimuth.
func OrbitalPeriods(tr *orbit.Trajectory) Periods {
	n := tr.Len()
	if n < 4 {
		return Periods{}
	}
	span := tr.Times[n-1] - tr.Times[0]
	if span <= 0 {
		return Periods{}
	}
	dt := span / float64(n-1)

	p := Periods{
		Radial:   DominantPeriod(tr.R(), dt),
		Vertical: DominantPeriod(tr.Z(), dt),
	}
	if turn := math.Abs(unwrap(tr.Phi())); turn > 0 {
		p.Azimuthal = 2 * math.Pi * span / turn
	}
	return p
}

// unwrap returns the total azimuth swept, removing 2π jumps.
func unwrap(phi []float64) float64 {
	total := 0.0
	for i := 1; i < len(phi); i++ {
		d := phi[i] - phi[i-1]
		d -= 2 * math.Pi * math.Round(d/(2*math.Pi))
		total += d
	}
	return total
}
