package catalog

import (
	"github.com/san-kum/vipor/internal/units"
)

type Family string

const (
	Spherical    Family = "spherical"
	Axisymmetric Family = "axisymmetric"
	Triaxial     Family = "triaxial"
	Component    Family = "component"
)

// Param describes one tunable parameter and its slider.
type Param struct {
	Label   string
	Symbol  string
	Min     float64
	Max     float64
	Step    float64
	Default float64
	Unit    units.Unit
}

// Quantity tags v with the parameter's unit.
func (p Param) Quantity(v float64) units.Quantity {
	return units.Quantity{Value: v, Unit: p.Unit}
}

// Spec is the display record of a potential model.
type Spec struct {
	Name          string
	Family        Family
	Params        []Param
	EquationIntro string
	Equation      string
	ParamSummary  string
}

// Defaults returns the default value of every parameter.
func (s Spec) Defaults() []float64 {
	out := make([]float64, len(s.Params))
	for i, p := range s.Params {
		out[i] = p.Default
	}
	return out
}

const (
	densityIntro   = "The equation for the density of this distribution is:"
	potentialIntro = "This potential is characterized by the equation:"
)
