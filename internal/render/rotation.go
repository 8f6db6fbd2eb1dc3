package render

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/vipor/internal/config"
	"github.com/san-kum/vipor/internal/figure"
	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/potential"
	"github.com/san-kum/vipor/internal/units"
)

// Curve is a labelled potential for a rotation-curve figure.
type Curve struct {
	Label     string
	Potential potential.Potential
}

// RotationFigure plots vc(R) in the midplane for every curve over n radii
// in [rMin, rMax] kpc. Radii where vc² < 0 are NaN and left out of the plot.
func RotationFigure(title string, curves []Curve, rMin, rMax float64, n int) figure.Figure {
	rs := floats.Span(make([]float64, n), rMin, rMax)
	radii := make([]float64, n)
	for i, r := range rs {
		radii[i] = units.KpcToNatural(r)
	}

	fig := figure.Figure{
		Name:   "rotation",
		Title:  title,
		XLabel: "R [kpc]",
		YLabel: "vc [km/s]",
	}
	for _, c := range curves {
		vc := potential.RotationCurve(c.Potential, radii)
		kms := make([]float64, len(vc))
		for i, v := range vc {
			kms[i] = units.NaturalToKms(v)
		}
		fig.Series = append(fig.Series, figure.Series{Label: c.Label, Style: figure.Line, X: rs, Y: kms})
	}
	return fig
}

// Ensemble integrates profile.Ensemble orbits that start at rest in the
// midplane at random radii in [0, profile.EnsembleMaxR) kpc.
func Ensemble(ctx context.Context, pot potential.Potential, years float64, profile config.Profile) (*Result, []orbit.Member, error) {
	if err := profile.Validate(); err != nil {
		return nil, nil, err
	}
	if profile.Ensemble < 1 {
		return nil, nil, fmt.Errorf("profile %s has no ensemble size", profile.Name)
	}

	radii := orbit.RandomRadii(profile.Ensemble, profile.EnsembleMaxR, profile.Seed)
	ics := make([]orbit.InitialConditions, len(radii))
	for i, r := range radii {
		ics[i] = orbit.InitialConditions{R: r}
	}

	members, err := orbit.IntegrateEnsemble(ctx, pot, ics, years, orbitOptions(profile))
	if err != nil {
		return nil, nil, Classify(err)
	}

	out := &Result{Metrics: map[string]float64{"orbits": float64(len(members))}}
	for _, proj := range profile.Projections {
		var fig figure.Figure
		for i, m := range members {
			one := Project(m.Trajectory, proj, profile.Limit)
			if i == 0 {
				fig = one
				fig.Series = nil
			}
			for _, s := range one.Series {
				s.Label = fmt.Sprintf("R0 = %.1f kpc", m.Initial.R)
				fig.Series = append(fig.Series, s)
			}
		}
		if proj.Is3D() {
			out.Figures3D = append(out.Figures3D, fig)
		} else {
			out.Figures2D = append(out.Figures2D, fig)
		}
	}
	return out, members, nil
}
