package pages

import (
	"context"

	"github.com/san-kum/vipor/internal/config"
	"github.com/san-kum/vipor/internal/potential"
	"github.com/san-kum/vipor/internal/render"
	"github.com/san-kum/vipor/internal/units"
)

const blackHoleMsun = 4e6

// Component is one part of the Milky Way model.
type Component struct {
	Key   string
	Label string
	Build func() (potential.Potential, error)
}

// MilkyWayComponents returns the bulge, disk, halo and black hole. The first
// three are normalized to 5%, 60% and 35% of vc² at R0.
func MilkyWayComponents() []Component {
	return []Component{
		{"bulge", "Bulge Potential", func() (potential.Potential, error) {
			p, err := potential.NewPowerSphericalCutoff(1, 1.8, 1.9/units.R0Kpc)
			if err != nil {
				return nil, err
			}
			return potential.Normalize(p, 0.05)
		}},
		{"disk", "Disk Potential", func() (potential.Potential, error) {
			p, err := potential.NewMiyamotoNagai(1, 3/units.R0Kpc, 0.28/units.R0Kpc)
			if err != nil {
				return nil, err
			}
			return potential.Normalize(p, 0.6)
		}},
		{"halo", "Dark Matter, NFW Potential", func() (potential.Potential, error) {
			p, err := potential.NewNFW(1, 16/units.R0Kpc)
			if err != nil {
				return nil, err
			}
			return potential.Normalize(p, 0.35)
		}},
		{"bh", "Black Hole Potential", func() (potential.Potential, error) {
			return potential.NewKepler(units.MsunToNatural(blackHoleMsun))
		}},
	}
}

// MilkyWay sums the components whose keys are set in on. It returns the
// curves of the chosen components alongside the sum; both are empty when
// nothing is chosen.
func MilkyWay(on func(key string) bool) (potential.Potential, []render.Curve, error) {
	var parts []potential.Potential
	var curves []render.Curve
	for _, c := range MilkyWayComponents() {
		if !on(c.Key) {
			continue
		}
		p, err := c.Build()
		if err != nil {
			return nil, nil, err
		}
		parts = append(parts, p)
		curves = append(curves, render.Curve{Label: c.Label, Potential: p})
	}
	if len(parts) == 0 {
		return nil, nil, nil
	}
	return potential.Combine(parts...), curves, nil
}

type milkyWay struct {
	cfg *config.Config
}

func (*milkyWay) Slug() string  { return "milkyway" }
func (*milkyWay) Title() string { return "Understanding the Milky Way Potential" }

func (*milkyWay) Controls(Values) []Control {
	return []Control{
		{Key: "bulge", Label: "Add bulge?", Kind: Checkbox},
		{Key: "disk", Label: "Add disk?", Kind: Checkbox},
		{Key: "halo", Label: "Add dark matter?", Kind: Checkbox},
		{Key: "bh", Label: "Add black hole?", Kind: Checkbox},
	}
}

func (m *milkyWay) Run(ctx context.Context, v Values) (*Output, error) {
	out := &Output{}
	out.Markdown("## Understanding the Milky Way Potential")
	out.Markdown("The Milky Way can be broken down into four components: a **bulge**, a **disk**, a **halo** " +
		"and a **black hole**. Potentials are scalars, so they add:")
	out.LaTeX(`\Phi_{\text{MW}} = \Phi_{\text{disk}} + \Phi_{\text{bulge}} + \Phi_{\text{halo}} + \Phi_{\text{black hole}}`)
	out.Markdown("The disk is a Miyamoto-Nagai potential, the bulge a power-law sphere with a cutoff " +
		"and the halo an NFW profile. The black hole is a point mass with a Keplerian potential. " +
		"Check the boxes to see how the rotation curves and the orbit change.")

	total, curves, err := MilkyWay(func(key string) bool { return v.Bool(key, false) })
	if err != nil {
		return nil, err
	}
	if total == nil {
		return out, nil
	}

	rMin, rMax := units.NaturalToKpc(0.01), units.NaturalToKpc(10)
	out.Markdown("Here are the rotation curves for each individual component of the Milky Way:")
	out.Figure(render.RotationFigure("Rotation Curves of Components of the Milky Way Galaxy", curves, rMin, rMax, rotationSamples))
	out.Markdown("Here is the rotation curve for the sum of the components of the Milky Way:")
	out.Figure(render.RotationFigure("Total Rotation Curve of the Milky Way Galaxy",
		[]render.Curve{{Label: "Total", Potential: total}}, rMin, rMax, rotationSamples))

	profile, err := m.cfg.Profile("milkyway")
	if err != nil {
		return nil, err
	}
	ic := fixedInitial(profile)
	res, err := render.Render(ctx, total, profile.Years, ic, profile)
	if err != nil {
		if recoverable(err) {
			out.Warn(err)
			return out, nil
		}
		return nil, err
	}
	if res.Contour != nil {
		out.Markdown("The potential of the chosen components over R and z. " +
			"It grows deeper toward the centre.")
		out.Contour(res.Contour)
	}
	out.Markdownf("The orbit of the Sun over %g Gyr:", profile.Years)
	for _, f := range res.Figures2D {
		out.Figure(f)
	}
	for _, f := range res.Figures3D {
		out.Figure(f)
	}
	for _, a := range res.Animations {
		out.Animation(a)
	}
	return out, nil
}
