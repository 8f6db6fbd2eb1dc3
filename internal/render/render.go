package render

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/vipor/internal/analysis"
	"github.com/san-kum/vipor/internal/config"
	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/figure"
	"github.com/san-kum/vipor/internal/metrics"
	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/potential"
	"github.com/san-kum/vipor/internal/units"
)

// ErrOrbit wraps integration failures that depend on the chosen model and
// initial conditions, such as an orbit falling into a singular centre.
var ErrOrbit = errors.New("render: orbit could not be integrated")

// boundRadiusKpc marks an orbit as escaped in the bound_fraction metric.
const boundRadiusKpc = 200.0

type Result struct {
	Figures2D  []figure.Figure
	Figures3D  []figure.Figure
	Animations []figure.Animation
	Contour    *figure.Contour
	Trajectory *orbit.Trajectory
	Metrics    map[string]float64
}

// Render integrates one orbit for years Gyr from ic and projects it as the
// profile asks.
func Render(ctx context.Context, pot potential.Potential, years float64, ic orbit.InitialConditions, profile config.Profile) (*Result, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	sys := orbit.NewSystem(pot)
	tr, res, err := orbit.Integrate(ctx, pot, ic, years, orbitOptions(profile),
		metrics.Standard(sys, units.KpcToNatural(boundRadiusKpc))...)
	if err != nil {
		return nil, Classify(err)
	}

	out := &Result{Trajectory: tr, Metrics: orbitMetrics(tr, res)}
	for _, proj := range profile.Projections {
		fig := Project(tr, proj, profile.Limit)
		if proj.Is3D() {
			out.Figures3D = append(out.Figures3D, fig)
		} else {
			out.Figures2D = append(out.Figures2D, fig)
		}
	}
	for _, kind := range profile.Animations {
		out.Animations = append(out.Animations, Animate(tr, kind, profile.Frames, profile.Limit))
	}
	if profile.Contour {
		out.Contour = Contour(pot, profile.Grid)
	}

	log.WithFields(log.Fields{
		"potential": pot.Name(),
		"profile":   profile.Name,
		"years":     years,
		"samples":   tr.Len(),
		"elapsed":   time.Since(start).Round(time.Millisecond),
	}).Debug("render complete")
	return out, nil
}

func orbitOptions(profile config.Profile) orbit.Options {
	cfg := dynamo.DefaultConfig()
	cfg.Samples = profile.Samples
	return orbit.Options{Integrator: profile.Integrator, Config: cfg}
}

// Classify wraps failures caused by the orbit itself in ErrOrbit. Parameter
// errors and cancellation pass through unchanged.
func Classify(err error) error {
	for _, target := range []error{dynamo.ErrStepTooSmall, dynamo.ErrInvalidState, dynamo.ErrTooManySteps, dynamo.ErrStepRejected} {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %w", ErrOrbit, err)
		}
	}
	return err
}

func orbitMetrics(tr *orbit.Trajectory, res *dynamo.Result) map[string]float64 {
	m := make(map[string]float64, len(res.Metrics)+4)
	for k, v := range res.Metrics {
		m[k] = v
	}
	m["max_radius_kpc"] = tr.MaxRadius()
	m["steps"] = float64(res.StepsTaken)

	p := analysis.OrbitalPeriods(tr)
	m["radial_period_gyr"] = p.Radial
	m["vertical_period_gyr"] = p.Vertical
	m["azimuthal_period_gyr"] = p.Azimuthal
	return m
}

// Project builds the figure for one projection. limit bounds the xyz view
// in kpc.
func Project(tr *orbit.Trajectory, proj config.Projection, limit float64) figure.Figure {
	switch proj {
	case config.ProjRZ:
		return figure.Figure{
			Name: string(proj), Title: "Orbit in the meridional plane", XLabel: "R [kpc]", YLabel: "z [kpc]",
			Series: []figure.Series{{Style: figure.Line, X: tr.R(), Y: tr.Z()}},
		}
	case config.ProjRaDec:
		ra, dec := tr.Sky()
		return figure.Figure{
			Name: string(proj), Title: "Orbit on the sky", XLabel: "RA [deg]", YLabel: "Dec [deg]",
			Series: []figure.Series{{Style: figure.Scatter, X: ra, Y: dec}},
		}
	case config.ProjRVR:
		return figure.Figure{
			Name: string(proj), Title: "Radial phase space", XLabel: "R [kpc]", YLabel: "vR [km/s]",
			Series: []figure.Series{{Style: figure.Line, X: tr.R(), Y: tr.VR()}},
		}
	case config.ProjXY:
		return figure.Figure{
			Name: string(proj), Title: "Orbit in the plane", XLabel: "x [kpc]", YLabel: "y [kpc]",
			Series: []figure.Series{{Style: figure.Scatter, X: tr.X(), Y: tr.Y()}},
		}
	case config.ProjXYZ:
		lim := figure.Range{Min: -limit, Max: limit}
		return figure.Figure{
			Name: string(proj), Title: "Orbit in 3D", XLabel: "x [kpc]", YLabel: "y [kpc]", ZLabel: "z [kpc]",
			Series: []figure.Series{{Style: figure.Line, X: tr.X(), Y: tr.Y(), Z: tr.Z()}},
			XRange: lim, YRange: lim, ZRange: lim,
		}
	case config.ProjRVRZ:
		return figure.Figure{
			Name: string(proj), Title: "R, vR and z", XLabel: "R [kpc]", YLabel: "vR [km/s]", ZLabel: "z [kpc]",
			Series: []figure.Series{{Style: figure.Line, X: tr.R(), Y: tr.VR(), Z: tr.Z()}},
		}
	case config.ProjRVRVZ:
		return figure.Figure{
			Name: string(proj), Title: "R, vR and vz", XLabel: "R [kpc]", YLabel: "vR [km/s]", ZLabel: "vz [km/s]",
			Series: []figure.Series{{Style: figure.Line, X: tr.R(), Y: tr.VR(), Z: tr.VZ()}},
		}
	}
	return figure.Figure{Name: string(proj)}
}

// Animate builds a replay of the trajectory with frames evenly spread over
// the samples.
func Animate(tr *orbit.Trajectory, kind config.Animation, frames int, limit float64) figure.Animation {
	idx := figure.FrameIndices(tr.Len(), frames)
	switch kind {
	case config.AnimOrbit3D:
		az := make([]float64, len(idx))
		for i := range az {
			az[i] = 360 * float64(i) / float64(len(idx))
		}
		return figure.Animation{
			Name:    string(kind),
			Title:   "Orbit in 3D",
			Kind:    figure.Orbit3D,
			Panels:  []figure.Figure{Project(tr, config.ProjXYZ, limit)},
			Frames:  idx,
			Azimuth: az,
		}
	default:
		xy := Project(tr, config.ProjXY, limit)
		xy.Series[0].Style = figure.Line
		return figure.Animation{
			Name:   string(kind),
			Title:  "Orbit",
			Kind:   figure.Orbit2D,
			Panels: []figure.Figure{xy, Project(tr, config.ProjRZ, limit)},
			Frames: idx,
		}
	}
}

// Contour samples Φ(R, z) at φ = 0 on the grid, in (km/s)^2. Non-finite
// values, such as the centre of a point mass, are clamped to the finite
// extremes so that level selection stays well defined.
func Contour(pot potential.Potential, grid config.Grid) *figure.Contour {
	rs := floats.Span(make([]float64, grid.NR), grid.RMin, grid.RMax)
	zs := floats.Span(make([]float64, grid.NZ), grid.ZMin, grid.ZMax)

	radii := make([]float64, len(rs))
	heights := make([]float64, len(zs))
	for i, r := range rs {
		radii[i] = units.KpcToNatural(r)
	}
	for i, z := range zs {
		heights[i] = units.KpcToNatural(z)
	}

	values := potential.PhiGrid(pot, radii, heights, 0, 0)
	scale := units.V0Kms * units.V0Kms
	for _, row := range values {
		for i := range row {
			row[i] *= scale
		}
	}
	clampNonFinite(values)

	return &figure.Contour{
		Name:   "contour",
		Title:  pot.Name() + " potential at φ = 0 [(km/s)²]",
		XLabel: "R [kpc]",
		YLabel: "z [kpc]",
		X:      rs,
		Y:      zs,
		Values: values,
		Levels: 12,
	}
}

func clampNonFinite(values [][]float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range values {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 0
	}
	for _, row := range values {
		for i, v := range row {
			switch {
			case math.IsInf(v, -1):
				row[i] = lo
			case math.IsInf(v, 1), math.IsNaN(v):
				row[i] = hi
			}
		}
	}
}
