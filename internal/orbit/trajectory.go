package orbit

import (
	"math"

	"github.com/san-kum/vipor/internal/coords"
	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/potential"
	"github.com/san-kum/vipor/internal/units"
)

// Trajectory is a sampled orbit. States are natural-unit Cartesian; the
// accessors return physical units (Gyr, kpc, km/s, degrees).
type Trajectory struct {
	Times  []float64
	States []dynamo.State
}

func NewTrajectory(res *dynamo.Result) *Trajectory {
	times := make([]float64, len(res.States))
	for i := range times {
		times[i] = units.NaturalToGyr(res.Times[i])
	}
	return &Trajectory{Times: times, States: res.States}
}

func (tr *Trajectory) Len() int { return len(tr.States) }

func (tr *Trajectory) project(f func(x dynamo.State) float64) []float64 {
	out := make([]float64, len(tr.States))
	for i, x := range tr.States {
		out[i] = f(x)
	}
	return out
}

func (tr *Trajectory) X() []float64 {
	return tr.project(func(x dynamo.State) float64 { return units.NaturalToKpc(x[0]) })
}

func (tr *Trajectory) Y() []float64 {
	return tr.project(func(x dynamo.State) float64 { return units.NaturalToKpc(x[1]) })
}

func (tr *Trajectory) Z() []float64 {
	return tr.project(func(x dynamo.State) float64 { return units.NaturalToKpc(x[2]) })
}

func (tr *Trajectory) R() []float64 {
	return tr.project(func(x dynamo.State) float64 { return units.NaturalToKpc(math.Hypot(x[0], x[1])) })
}

// Phi is the azimuth in radians.
func (tr *Trajectory) Phi() []float64 {
	return tr.project(func(x dynamo.State) float64 { return math.Atan2(x[1], x[0]) })
}

func (tr *Trajectory) VR() []float64 {
	return tr.project(func(x dynamo.State) float64 {
		vR, _ := coords.RectVelToCyl(x[3], x[4], math.Atan2(x[1], x[0]))
		return units.NaturalToKms(vR)
	})
}

func (tr *Trajectory) VT() []float64 {
	return tr.project(func(x dynamo.State) float64 {
		_, vT := coords.RectVelToCyl(x[3], x[4], math.Atan2(x[1], x[0]))
		return units.NaturalToKms(vT)
	})
}

func (tr *Trajectory) VZ() []float64 {
	return tr.project(func(x dynamo.State) float64 { return units.NaturalToKms(x[5]) })
}

// Sky returns right ascension and declination in degrees as seen from the
// Sun.
func (tr *Trajectory) Sky() (ra, dec []float64) {
	ra = make([]float64, len(tr.States))
	dec = make([]float64, len(tr.States))
	for i, x := range tr.States {
		ra[i], dec[i] = coords.GalactocentricToSky(units.NaturalToKpc(x[0]), units.NaturalToKpc(x[1]), units.NaturalToKpc(x[2]))
	}
	return ra, dec
}

// Energy is the specific energy in natural units.
func (tr *Trajectory) Energy(pot potential.Potential) []float64 {
	sys := NewSystem(pot)
	out := make([]float64, len(tr.States))
	for i, x := range tr.States {
		out[i] = sys.Energy(x, units.GyrToNatural(tr.Times[i]))
	}
	return out
}

// MaxRadius is the largest galactocentric distance reached, in kpc.
func (tr *Trajectory) MaxRadius() float64 {
	m := 0.0
	for _, x := range tr.States {
		m = math.Max(m, radius(x))
	}
	return units.NaturalToKpc(m)
}
