package pages

import (
	"context"

	"github.com/san-kum/vipor/internal/catalog"
	"github.com/san-kum/vipor/internal/config"
	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/render"
)

// Orbit sliders: integration time in Gyr, start radius and height in kpc,
// tangential velocity in km/s.
var orbitSliders = []Control{
	{Key: "years", Label: "Integration time [Gyr]", Kind: Slider, Min: 0, Max: 14, Step: 1, Default: 1},
	{Key: "radius", Label: "Initial radius R [kpc]", Kind: Slider, Min: 0, Max: 50, Step: 1, Default: 10},
	{Key: "height", Label: "Initial height z [kpc]", Kind: Slider, Min: 0, Max: 50, Step: 1, Default: 5},
	{Key: "vt", Label: "Initial tangential velocity [km/s]", Kind: Slider, Min: 0, Max: 400, Step: 10, Default: 0},
}

var projectionNotes = map[config.Projection]string{
	config.ProjRZ: "The orbit in the meridional plane: galactocentric radius $R$ against height $z$. " +
		"In a spherical or axisymmetric potential the angular momentum about the z axis is conserved " +
		"and the star stays inside a bounded region of this plane.",
	config.ProjRVR: "Radius against radial velocity $v_R$. A regular orbit traces a closed band; " +
		"the turning points of the orbit are where $v_R = 0$.",
	config.ProjRaDec: "The orbit as seen from the Sun in equatorial coordinates, right ascension against declination.",
	config.ProjXY:    "The orbit seen from above the galactic plane.",
	config.ProjXYZ:   "The orbit in three dimensions. Use the camera keys or the animation to turn it.",
	config.ProjRVRZ:  "Radius, radial velocity and height together, a three dimensional slice of phase space.",
	config.ProjRVRVZ: "Radius with radial and vertical velocity.",
}

// orbitPage shows the orbit of one star in a model chosen from the catalog.
type orbitPage struct {
	cfg      *config.Config
	slug     string
	title    string
	intro    string
	profile  string
	families []catalog.Family
}

func sphericalPage(cfg *config.Config, slug, title string) *orbitPage {
	return &orbitPage{
		cfg:   cfg,
		slug:  slug,
		title: title,
		intro: "In a spherically symmetric potential the force always points to the centre, " +
			"so energy and the full angular momentum vector are conserved and every orbit lies in a plane.",
		profile:  slug,
		families: []catalog.Family{catalog.Spherical},
	}
}

func axisymmetricPage(cfg *config.Config) *orbitPage {
	return &orbitPage{
		cfg:   cfg,
		slug:  "axisymmetric",
		title: "Axisymmetric Potentials",
		intro: "An axisymmetric potential is unchanged by rotation about the z axis. " +
			"Energy and the z component of angular momentum are conserved, and orbits fill a torus.",
		profile:  "axisymmetric",
		families: []catalog.Family{catalog.Axisymmetric},
	}
}

func triaxialPage(cfg *config.Config) *orbitPage {
	return &orbitPage{
		cfg:   cfg,
		slug:  "triaxial",
		title: "Triaxial Potentials",
		intro: "A triaxial potential has no rotational symmetry. Only the energy is conserved, " +
			"and orbits can be boxes, tubes or chaotic.",
		profile:  "triaxial",
		families: []catalog.Family{catalog.Triaxial},
	}
}

func (p *orbitPage) Slug() string  { return p.slug }
func (p *orbitPage) Title() string { return p.title }

func (p *orbitPage) models() []string {
	var names []string
	for _, f := range p.families {
		names = append(names, catalog.Names(f)...)
	}
	return names
}

func (p *orbitPage) Controls(v Values) []Control {
	models := p.models()
	def := ""
	if len(models) > 0 {
		def = models[0]
	}
	controls := []Control{{Key: "model", Label: "Potential", Kind: Select, Options: models, Choice: def}}
	if spec, err := catalog.Lookup(v.String("model", def)); err == nil {
		for _, prm := range spec.Params {
			controls = append(controls, Control{
				Key: prm.Symbol, Label: prm.Label, Kind: Slider,
				Min: prm.Min, Max: prm.Max, Step: prm.Step, Default: prm.Default,
			})
		}
	}
	return append(controls, orbitSliders...)
}

func (p *orbitPage) Run(ctx context.Context, v Values) (*Output, error) {
	v = Merge(p.Controls(v), v)
	name := v.String("model", "")
	spec, err := catalog.Lookup(name)
	if err != nil {
		return nil, err
	}

	out := &Output{}
	out.Markdownf("# %s", p.title)
	out.Markdown(p.intro)
	out.Markdownf("You've selected the **%s**.", spec.Name)
	out.Markdown(spec.EquationIntro)
	out.LaTeX(spec.Equation)
	out.Markdownf("The parameters of this model are %s.", spec.ParamSummary)
	out.Markdown("Use the sliders to choose the parameters and the starting point of the orbit. " +
		"Some combinations are not allowed; the page says so when that happens.")

	values := make([]float64, len(spec.Params))
	for i, prm := range spec.Params {
		values[i] = v.Float(prm.Symbol, prm.Default)
	}
	pot, err := catalog.Build(spec.Name, values, catalog.Options{})
	if err != nil {
		if recoverable(err) {
			out.Warn(err)
			return out, nil
		}
		return nil, err
	}

	profile, err := p.cfg.Profile(p.profile)
	if err != nil {
		return nil, err
	}
	years := v.Float("years", 1)
	ic := orbit.InitialConditions{R: v.Float("radius", 10), Z: v.Float("height", 5), VT: v.Float("vt", 0)}

	res, err := render.Render(ctx, pot, years, ic, profile)
	if err != nil {
		if recoverable(err) {
			out.Warn(err)
			return out, nil
		}
		return nil, err
	}

	if res.Contour != nil {
		out.Markdown("The potential in the meridional plane. Each contour joins points of equal $\\Phi(R, z)$, in (km/s)².")
		out.Contour(res.Contour)
	}
	out.Markdownf("The star starts at %s and is followed for %g Gyr.", ic, years)
	for _, f := range append(res.Figures2D, res.Figures3D...) {
		if note, ok := projectionNotes[config.Projection(f.Name)]; ok {
			out.Markdown(note)
		}
		out.Figure(f)
	}
	for _, a := range res.Animations {
		out.Animation(a)
	}
	if period := res.Metrics["radial_period_gyr"]; period > 0 {
		out.Markdownf("Radial period: %.3g Gyr.", period)
	}
	return out, nil
}
