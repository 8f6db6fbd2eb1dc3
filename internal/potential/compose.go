package potential

import (
	"fmt"
	"math"
	"strings"
)

// Sum is the superposition of its components.
type Sum []Potential

func (s Sum) Name() string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.Name()
	}
	return strings.Join(names, " + ")
}

func (s Sum) Phi(x, y, z, t float64) float64 {
	total := 0.0
	for _, p := range s {
		total += p.Phi(x, y, z, t)
	}
	return total
}

func (s Sum) Force(x, y, z, t float64) (float64, float64, float64) {
	var fx, fy, fz float64
	for _, p := range s {
		ax, ay, az := p.Force(x, y, z, t)
		fx += ax
		fy += ay
		fz += az
	}
	return fx, fy, fz
}

// Combine flattens nested sums and returns the single component unchanged.
func Combine(parts ...Potential) Potential {
	var flat Sum
	for _, p := range parts {
		if s, ok := p.(Sum); ok {
			flat = append(flat, s...)
		} else if p != nil {
			flat = append(flat, p)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return flat
}

// Scaled multiplies a potential by a constant amplitude.
type Scaled struct {
	Potential
	Factor float64
}

func (s Scaled) Phi(x, y, z, t float64) float64 {
	return s.Factor * s.Potential.Phi(x, y, z, t)
}

func (s Scaled) Force(x, y, z, t float64) (float64, float64, float64) {
	fx, fy, fz := s.Potential.Force(x, y, z, t)
	return s.Factor * fx, s.Factor * fy, s.Factor * fz
}

// Normalize rescales p so that it contributes frac of vc^2 at R = 1, z = 0.
func Normalize(p Potential, frac float64) (Potential, error) {
	vc2 := Vc2(p, 1, 0)
	if !(vc2 > 0) || math.IsInf(vc2, 0) {
		return nil, fmt.Errorf("normalize %s: circular velocity at R0 is %g: %w", p.Name(), vc2, ErrDomain)
	}
	return Scaled{Potential: p, Factor: frac / vc2}, nil
}
