package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/vipor/internal/catalog"
	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/metrics"
	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/potential"
	"github.com/san-kum/vipor/internal/storage"
	"github.com/san-kum/vipor/internal/units"
)

// BoundRadiusKpc is the radius beyond which an orbit counts as escaped.
const BoundRadiusKpc = 200.0

// Scenario is a scripted sequence of orbit integrations.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
	Sweeps      []SweepSpec    `yaml:"sweeps"`
}

type ScenarioStep struct {
	Model      string                  `yaml:"model"`
	Values     []float64               `yaml:"values"`
	SpiralArms int                     `yaml:"spiral_arms"`
	DarkMatter bool                    `yaml:"dark_matter"`
	Integrator string                  `yaml:"integrator"`
	Years      float64                 `yaml:"years"`
	Samples    int                     `yaml:"samples"`
	Initial    orbit.InitialConditions `yaml:"initial"`
	SaveAs     string                  `yaml:"save_as"`
}

func (s ScenarioStep) options() catalog.Options {
	return catalog.Options{SpiralArms: s.SpiralArms, DarkMatter: s.DarkMatter}
}

func orbitOptions(integrator string, samples int) orbit.Options {
	opts := orbit.Options{Integrator: integrator}
	if samples > 0 {
		opts.Config = dynamo.DefaultConfig()
		opts.Config.Samples = samples
	}
	return opts
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Step       ScenarioStep
	Trajectory *orbit.Trajectory
	Metrics    map[string]float64
	RunID      string
}

// integrate builds the potential and follows one orbit with the standard
// metrics attached.
func integrate(ctx context.Context, pot potential.Potential, ic orbit.InitialConditions, years float64, opts orbit.Options) (*orbit.Trajectory, map[string]float64, error) {
	sys := orbit.NewSystem(pot)
	tr, res, err := orbit.Integrate(ctx, pot, ic, years, opts, metrics.Standard(sys, units.KpcToNatural(BoundRadiusKpc))...)
	if err != nil {
		return nil, nil, err
	}
	return tr, res.Metrics, nil
}

// RunScenario executes the steps in order. Steps with a SaveAs name are
// written to st when st is not nil.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.WithFields(log.Fields{
			"scenario": scenario.Name,
			"step":     fmt.Sprintf("%d/%d", i+1, len(scenario.Steps)),
			"model":    step.Model,
		}).Info("running step")

		pot, err := catalog.Build(step.Model, step.Values, step.options())
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		tr, m, err := integrate(ctx, pot, step.Initial, step.Years, orbitOptions(step.Integrator, step.Samples))
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		r := StepResult{Step: step, Trajectory: tr, Metrics: m}
		if step.SaveAs != "" && st != nil {
			r.RunID, err = st.Save(storage.RunMetadata{
				Model:      step.Model,
				Values:     step.Values,
				SpiralArms: step.SpiralArms,
				DarkMatter: step.DarkMatter,
				Years:      step.Years,
				Initial:    step.Initial,
				Integrator: step.Integrator,
				Profile:    step.SaveAs,
				Metrics:    m,
			}, tr)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, r)
	}

	return results, nil
}

// SweepSpec varies one slider of a model over [Min, Max] and integrates the
// same orbit at every value.
type SweepSpec struct {
	Model      string                  `yaml:"model"`
	Values     []float64               `yaml:"values"`
	ParamIndex int                     `yaml:"param_index"`
	Min        float64                 `yaml:"min"`
	Max        float64                 `yaml:"max"`
	NumSteps   int                     `yaml:"num_steps"`
	Years      float64                 `yaml:"years"`
	Samples    int                     `yaml:"samples"`
	Integrator string                  `yaml:"integrator"`
	Initial    orbit.InitialConditions `yaml:"initial"`
}

// SweepResult holds one sweep point. Err is set when the value is outside
// the model's domain or the orbit could not be integrated.
type SweepResult struct {
	ParamValue  float64
	MaxRadius   float64
	EnergyDrift float64
	MinEnergy   float64
	MaxEnergy   float64
	Err         error
}

// RunSweep executes a parameter sweep. Out-of-domain values and failed
// orbits are recorded and skipped; cancellation stops the sweep.
func RunSweep(ctx context.Context, sweep *SweepSpec) ([]SweepResult, error) {
	spec, err := catalog.Lookup(sweep.Model)
	if err != nil {
		return nil, err
	}
	if sweep.ParamIndex < 0 || sweep.ParamIndex >= len(spec.Params) {
		return nil, fmt.Errorf("%s: parameter index %d: %w", sweep.Model, sweep.ParamIndex, catalog.ErrArity)
	}
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d: %w", sweep.NumSteps, dynamo.ErrParameterBounds)
	}

	values := spec.Defaults()
	copy(values, sweep.Values)

	grid := floats.Span(make([]float64, sweep.NumSteps), sweep.Min, sweep.Max)
	results := make([]SweepResult, 0, len(grid))
	for i, v := range grid {
		values[sweep.ParamIndex] = v
		r := SweepResult{ParamValue: v}

		pot, err := catalog.Build(sweep.Model, values, catalog.Options{})
		if err == nil {
			var tr *orbit.Trajectory
			var m map[string]float64
			tr, m, err = integrate(ctx, pot, sweep.Initial, sweep.Years, orbitOptions(sweep.Integrator, sweep.Samples))
			if err == nil {
				energy := tr.Energy(pot)
				r.MaxRadius = tr.MaxRadius()
				r.EnergyDrift = m["energy_drift"]
				r.MinEnergy = floats.Min(energy)
				r.MaxEnergy = floats.Max(energy)
			}
		}
		if ctx.Err() != nil {
			return results, fmt.Errorf("sweep interrupted at %g: %w", v, dynamo.ErrContextCanceled)
		}
		r.Err = err

		results = append(results, r)
		log.WithFields(log.Fields{
			"model": sweep.Model,
			"param": spec.Params[sweep.ParamIndex].Symbol,
			"value": v,
			"ok":    err == nil,
		}).Infof("sweep %d/%d", i+1, len(grid))
	}

	return results, nil
}

// MonteCarloConfig perturbs a base orbit. Positions move by up to
// PositionKpc and velocities by up to VelocityKms in each component.
type MonteCarloConfig struct {
	Model       string
	Values      []float64
	Options     catalog.Options
	Integrator  string
	Base        orbit.InitialConditions
	PositionKpc float64
	VelocityKms float64
	NumTrials   int
	Years       float64
	Samples     int
	Seed        int64
}

type MonteCarloResult struct {
	TrialID   int
	Initial   orbit.InitialConditions
	MaxRadius float64
	// Stable reports whether the orbit stayed within BoundRadiusKpc.
	Stable bool
}

// RunMonteCarlo integrates the perturbed trials concurrently.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	pot, err := catalog.Build(cfg.Model, cfg.Values, cfg.Options)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	jitter := func(scale float64) float64 { return (rng.Float64() - 0.5) * 2 * scale }

	ics := make([]orbit.InitialConditions, cfg.NumTrials)
	for i := range ics {
		ic := cfg.Base
		ic.R = math.Abs(ic.R + jitter(cfg.PositionKpc))
		ic.Z += jitter(cfg.PositionKpc)
		ic.VR += jitter(cfg.VelocityKms)
		ic.VT += jitter(cfg.VelocityKms)
		ic.VZ += jitter(cfg.VelocityKms)
		ics[i] = ic
	}

	members, err := orbit.IntegrateEnsemble(ctx, pot, ics, cfg.Years, orbitOptions(cfg.Integrator, cfg.Samples))
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(members))
	for i, m := range members {
		maxR := m.Trajectory.MaxRadius()
		results[i] = MonteCarloResult{
			TrialID:   i,
			Initial:   m.Initial,
			MaxRadius: maxR,
			Stable:    maxR <= BoundRadiusKpc,
		}
	}
	log.WithFields(log.Fields{
		"model":  cfg.Model,
		"trials": cfg.NumTrials,
		"seed":   seed,
	}).Info("monte carlo complete")
	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
