package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/vipor/internal/catalog"
	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/potential"
	"github.com/san-kum/vipor/internal/storage"
)

const scenarioYAML = `
name: demo
description: two plummer orbits
steps:
  - model: Plummer Potential
    values: [2]
    years: 0.5
    samples: 101
    initial: {r: 8, vt: 150}
    save_as: plummer-demo
  - model: Plummer Potential
    values: [4]
    dark_matter: true
    years: 0.5
    samples: 101
    initial: {r: 8, z: 1, vt: 150}
sweeps:
  - model: Plummer Potential
    param_index: 0
    min: 1
    max: 3
    num_steps: 3
    years: 0.5
    samples: 101
    initial: {r: 10, vt: 100}
`

func TestLoadAndRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Steps) != 2 || len(sc.Sweeps) != 1 {
		t.Fatalf("steps = %d sweeps = %d", len(sc.Steps), len(sc.Sweeps))
	}
	if sc.Steps[1].Initial.Z != 1 || !sc.Steps[1].DarkMatter {
		t.Errorf("step 2 not decoded: %+v", sc.Steps[1])
	}

	st := storage.New(t.TempDir())
	results, err := RunScenario(context.Background(), sc, st)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].RunID == "" || results[1].RunID != "" {
		t.Errorf("run ids = %q %q, want only the first saved", results[0].RunID, results[1].RunID)
	}
	if results[0].Trajectory.Len() != 101 {
		t.Errorf("samples = %d, want 101", results[0].Trajectory.Len())
	}
	if _, ok := results[0].Metrics["energy_drift"]; !ok {
		t.Error("standard metrics missing")
	}

	runs, err := st.List()
	if err != nil || len(runs) != 1 {
		t.Fatalf("saved runs = %v, %v", runs, err)
	}
	if runs[0].Profile != "plummer-demo" {
		t.Errorf("saved profile = %q", runs[0].Profile)
	}
}

func TestRunScenarioUnknownModel(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Model: "Nope", Years: 1}}}
	if _, err := RunScenario(context.Background(), sc, nil); !errors.Is(err, catalog.ErrInvalidModel) {
		t.Errorf("err = %v, want ErrInvalidModel", err)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &SweepSpec{
		Model:    catalog.Plummer,
		Min:      1,
		Max:      3,
		NumSteps: 3,
		Years:    0.5,
		Samples:  101,
		Initial:  orbit.InitialConditions{R: 10, VT: 100},
	}
	results, err := RunSweep(context.Background(), sweep)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("b = %v: %v", r.ParamValue, r.Err)
		}
		if r.MaxRadius < 10-1e-6 || r.MinEnergy > r.MaxEnergy {
			t.Errorf("b = %v: implausible result %+v", r.ParamValue, r)
		}
	}
}

func TestRunSweepRecordsDomainErrors(t *testing.T) {
	sweep := &SweepSpec{
		Model:    catalog.PowerSpherical,
		Min:      1,
		Max:      3,
		NumSteps: 2,
		Years:    0.5,
		Samples:  51,
		Initial:  orbit.InitialConditions{R: 10, VT: 100},
	}
	results, err := RunSweep(context.Background(), sweep)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err != nil {
		t.Errorf("alpha = 1 failed: %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, potential.ErrDomain) {
		t.Errorf("alpha = 3 err = %v, want ErrDomain", results[1].Err)
	}
}

func TestRunSweepValidation(t *testing.T) {
	tests := []struct {
		name  string
		sweep SweepSpec
		want  error
	}{
		{"model", SweepSpec{Model: "Nope", NumSteps: 2}, catalog.ErrInvalidModel},
		{"index", SweepSpec{Model: catalog.Plummer, ParamIndex: 3, NumSteps: 2}, catalog.ErrArity},
		{"steps", SweepSpec{Model: catalog.Plummer, NumSteps: 1}, dynamo.ErrParameterBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RunSweep(context.Background(), &tt.sweep); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunSweepCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sweep := &SweepSpec{Model: catalog.Plummer, Min: 1, Max: 2, NumSteps: 2, Years: 1, Initial: orbit.InitialConditions{R: 10, VT: 100}}
	if _, err := RunSweep(ctx, sweep); !errors.Is(err, dynamo.ErrContextCanceled) {
		t.Errorf("err = %v, want ErrContextCanceled", err)
	}
}

func TestRunMonteCarlo(t *testing.T) {
	cfg := &MonteCarloConfig{
		Model:       catalog.Plummer,
		Values:      []float64{2},
		Base:        orbit.InitialConditions{R: 8, VT: 150},
		PositionKpc: 1,
		VelocityKms: 10,
		NumTrials:   4,
		Years:       0.5,
		Samples:     101,
		Seed:        7,
	}
	results, err := RunMonteCarlo(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	stable, unstable := MonteCarloStats(results)
	if stable != 4 || unstable != 0 {
		t.Errorf("stable/unstable = %d/%d, want 4/0", stable, unstable)
	}

	again, err := RunMonteCarlo(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range results {
		if results[i].Initial != again[i].Initial {
			t.Errorf("trial %d not reproducible with a fixed seed", i)
		}
	}

	cfg.Base.VT = 2000
	cfg.Years = 2
	escaped, err := RunMonteCarlo(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, unstable := MonteCarloStats(escaped); unstable != 4 {
		t.Errorf("unstable = %d, want 4 for 2000 km/s orbits", unstable)
	}
}
