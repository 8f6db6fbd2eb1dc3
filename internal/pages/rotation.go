package pages

import (
	"context"
	"errors"

	"github.com/san-kum/vipor/internal/catalog"
	"github.com/san-kum/vipor/internal/config"
	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/potential"
	"github.com/san-kum/vipor/internal/render"
	"github.com/san-kum/vipor/internal/units"
)

const (
	rotationRMinKpc  = 0.01
	rotationRMaxKpc  = 50
	rotationSamples  = 1000
	nfwEquation      = `\rho(r)= \frac{\text{amp}}{4\pi a^3} \frac{1}{(r/a)(1 + r/a)^{2}}`
	rotationFigTitle = "Rotation Curves of Various Potentials"
)

// rotationModel is one checkbox of the rotation page.
type rotationModel struct {
	key   string
	label string
	build func() (potential.Potential, error)
}

var rotationModels = []rotationModel{
	{"hsp", catalog.HomogeneousSphere, func() (potential.Potential, error) {
		return potential.NewHomogeneousSphere(1, 1.1)
	}},
	{"psp", catalog.PowerSpherical, func() (potential.Potential, error) {
		return potential.NewPowerSpherical(1, 1)
	}},
	{"pspc", catalog.PowerCutoff, func() (potential.Potential, error) {
		return potential.NewPowerSphericalCutoff(1, 1, 1)
	}},
	{"ssp", catalog.SphericalShell, func() (potential.Potential, error) {
		return potential.NewSphericalShell(1, 0.75)
	}},
	{"dedp", catalog.DoubleExpDisk, func() (potential.Potential, error) {
		d, err := potential.NewDoubleExponentialDisk(1, 1.0/3, 1.0/16)
		if err != nil {
			return nil, err
		}
		return d, nil
	}},
	{"tptp", catalog.TwoPowerTriaxial, func() (potential.Potential, error) {
		return potential.NewTwoPowerTriaxial(1, 1, 1, 3, 4, 16)
	}},
}

type rotation struct {
	cfg *config.Config
}

func (*rotation) Slug() string  { return "rotation" }
func (*rotation) Title() string { return "Rotation Curves" }

func (*rotation) Controls(v Values) []Control {
	controls := make([]Control, 0, len(rotationModels)+5)
	for i, m := range rotationModels {
		controls = append(controls, Control{Key: m.key, Label: m.label, Kind: Checkbox, On: i == 0})
	}
	controls = append(controls,
		Control{Key: "spiral", Label: "Add spiral arms", Kind: Checkbox},
		Control{Key: "arms", Label: "How many arms?", Kind: Slider, Min: 1, Max: 5, Step: 1, Default: 2},
		Control{Key: "dark_matter", Label: "Add dark matter", Kind: Checkbox},
		Control{Key: "halo", Label: "Dark Matter Halo", Kind: Checkbox},
		Control{Key: "orbit", Label: "Show an orbit in the combined potential", Kind: Checkbox},
	)
	return controls
}

func (r *rotation) Run(ctx context.Context, v Values) (*Output, error) {
	v = Merge(r.Controls(v), v)
	out := &Output{}
	out.Markdown("# Rotation Curves")
	out.Markdown("The circular velocity $v_c(R) = \\sqrt{R \\, \\partial\\Phi/\\partial R}$ is the speed " +
		"of a star on a circular orbit in the midplane. Select potentials to compare their rotation curves.")

	darkMatter := v.Bool("dark_matter", false)
	if darkMatter {
		out.Markdown("The dark matter halo is an NFW profile:")
		out.LaTeX(nfwEquation)
	}

	opts := catalog.Options{DarkMatter: darkMatter}
	if v.Bool("spiral", false) {
		opts.SpiralArms = int(v.Float("arms", 2))
	}
	extras, err := extraComponents(opts)
	if err != nil {
		out.Warn(err)
		return out, nil
	}

	var curves []render.Curve
	var parts []potential.Potential
	for _, m := range rotationModels {
		if !v.Bool(m.key, false) {
			continue
		}
		p, err := m.build()
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
		curves = append(curves, render.Curve{Label: m.label, Potential: potential.Combine(append([]potential.Potential{p}, extras...)...)})
	}
	if darkMatter && v.Bool("halo", false) {
		halo, err := catalog.DarkMatterHalo()
		if err != nil {
			return nil, err
		}
		curves = append(curves, render.Curve{Label: "Dark Matter Halo", Potential: halo})
	}
	if len(curves) == 0 {
		out.Markdown("Check a box to plot a rotation curve.")
		return out, nil
	}
	out.Figure(render.RotationFigure(rotationFigTitle, curves, rotationRMinKpc, rotationRMaxKpc, rotationSamples))

	if !v.Bool("orbit", false) || len(parts) == 0 {
		return out, nil
	}
	profile, err := r.cfg.Profile("rotation")
	if err != nil {
		return nil, err
	}
	ic := fixedInitial(profile)
	out.Markdownf("An orbit of %g Gyr in the sum of the selected potentials, starting from %s.", profile.Years, ic)
	res, err := render.Render(ctx, potential.Combine(append(parts, extras...)...), profile.Years, ic, profile)
	if err != nil {
		if recoverable(err) {
			out.Warn(err)
			return out, nil
		}
		return nil, err
	}
	for _, f := range res.Figures2D {
		out.Figure(f)
	}
	for _, f := range res.Figures3D {
		out.Figure(f)
	}
	return out, nil
}

// extraComponents builds the spiral arms and halo asked for by opts.
func extraComponents(opts catalog.Options) ([]potential.Potential, error) {
	var parts []potential.Potential
	if opts.SpiralArms > 0 {
		arms, err := potential.NewSpiralArms(opts.SpiralArms)
		if err != nil {
			return nil, err
		}
		parts = append(parts, arms)
	}
	if opts.DarkMatter {
		halo, err := catalog.DarkMatterHalo()
		if err != nil {
			return nil, err
		}
		parts = append(parts, halo)
	}
	return parts, nil
}

// fixedInitial is the profile's starting point, or rest at R0.
func fixedInitial(profile config.Profile) orbit.InitialConditions {
	if profile.Initial != nil {
		return *profile.Initial
	}
	return orbit.InitialConditions{R: units.R0Kpc}
}

// recoverable reports whether err comes from the chosen values rather than
// from the host, so the page shows a warning instead of failing.
func recoverable(err error) bool {
	return errors.Is(err, potential.ErrDomain) ||
		errors.Is(err, render.ErrOrbit) ||
		errors.Is(err, dynamo.ErrParameterBounds)
}
