package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/vipor/internal/analysis"
	"github.com/san-kum/vipor/internal/automation"
	"github.com/san-kum/vipor/internal/catalog"
	"github.com/san-kum/vipor/internal/optim"
	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/potential"
	"github.com/san-kum/vipor/internal/storage"
)

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(ctx, scenario, st)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	if len(results) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STEP\tMODEL\tYEARS\tMAX R [kpc]\tDRIFT\tRUN")
		for i, r := range results {
			run := r.RunID
			if run == "" {
				run = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%g\t%.2f\t%.2e\t%s\n",
				i+1, r.Step.Model, r.Step.Years, r.Trajectory.MaxRadius(), r.Metrics["energy_drift"], run)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	for i := range scenario.Sweeps {
		sweep := &scenario.Sweeps[i]
		sweepResults, err := automation.RunSweep(ctx, sweep)
		if err != nil {
			return fmt.Errorf("sweep %d: %w", i+1, err)
		}

		fmt.Printf("\nsweep: %s, parameter %d over [%g, %g]\n", sweep.Model, sweep.ParamIndex, sweep.Min, sweep.Max)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VALUE\tMAX R [kpc]\tDRIFT\tE MIN\tE MAX")
		for _, r := range sweepResults {
			if r.Err != nil {
				fmt.Fprintf(w, "%g\t%s\t\t\t\n", r.ParamValue, shortError(r.Err))
				continue
			}
			fmt.Fprintf(w, "%g\t%.2f\t%.2e\t%.4f\t%.4f\n", r.ParamValue, r.MaxRadius, r.EnergyDrift, r.MinEnergy, r.MaxEnergy)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func shortError(err error) string {
	if errors.Is(err, potential.ErrDomain) {
		return "out of domain"
	}
	return err.Error()
}

func scanModel(cmd *cobra.Command, args []string) error {
	spec, err := resolveModel(args[0])
	if err != nil {
		return err
	}
	if len(spec.Params) == 0 {
		return fmt.Errorf("%s has no sliders to scan", spec.Name)
	}

	ctx, cancel := signalContext()
	defer cancel()

	probe := orbit.InitialConditions{R: radius, Z: height, VR: vr, VT: vt, VZ: vz}
	fmt.Printf("scanning %s: up to %d values per slider, probe %s for %g Gyr\n\n", spec.Name, maxPoints, probe, duration)

	start := time.Now()
	res, err := optim.ScanDomain(ctx, spec.Name, maxPoints, probe, duration, orbitOptions())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLIDER\tVALUES")
	for _, p := range spec.Params {
		fmt.Fprintf(w, "%s\t%v\n", p.Symbol, optim.SliderRange(p, maxPoints))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nevaluations:  %d in %v\n", len(res.Evaluations), time.Since(start).Round(time.Millisecond))
	fmt.Printf("in domain:    %d\n", res.InDomain())
	fmt.Printf("out of domain: %d\n", res.OutOfDomain())
	if res.Best != nil {
		fmt.Printf("best:         %s (energy drift %.2e)\n", formatValues(spec, res.Best), res.BestDrift)
	}
	return nil
}

func plotSections(cmd *cobra.Command, args []string) error {
	setup, err := setupOrbit(cmd, args[0])
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	if paramIndex < 0 {
		pot, err := setup.build()
		if err != nil {
			return fmt.Errorf("build model: %w", err)
		}
		tr, _, err := orbit.Integrate(ctx, pot, setup.initial, setup.years, orbitOptions())
		if err != nil {
			return fmt.Errorf("integrate: %w", err)
		}
		sec := analysis.Section(tr)
		if len(sec.Points) == 0 {
			fmt.Println("the orbit never crosses the midplane upwards")
			return nil
		}
		fmt.Printf("%s: %d upward midplane crossings\n", setup.spec.Name, len(sec.Points))
		fmt.Println(analysis.SectionToASCII(sec, width, chartRows))
		return nil
	}

	if paramIndex >= len(setup.spec.Params) {
		return fmt.Errorf("%s has %d sliders: %w", setup.spec.Name, len(setup.spec.Params), catalog.ErrArity)
	}
	slider := setup.spec.Params[paramIndex]
	lo, hi := paramMin, paramMax
	if !cmd.Flags().Changed("min") && !cmd.Flags().Changed("max") {
		lo, hi = slider.Min, slider.Max
	}
	if numSteps < 2 {
		return fmt.Errorf("need at least 2 steps, got %d", numSteps)
	}
	grid := floats.Span(make([]float64, numSteps), lo, hi)

	opts := catalog.Options{SpiralArms: spiralArms, DarkMatter: darkMatter}
	build := func(v float64) (potential.Potential, error) {
		values := append([]float64(nil), setup.values...)
		values[paramIndex] = v
		return catalog.Build(setup.spec.Name, values, opts)
	}

	data, err := analysis.SectionSweep(ctx, grid, build, setup.initial, setup.years, orbitOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "sweep stopped: %v\n", err)
		if len(data) == 0 {
			return err
		}
	}
	fmt.Printf("%s: crossing radius against %s over [%g, %g]\n", setup.spec.Name, slider.Symbol, lo, hi)
	fmt.Println(analysis.SweepToASCII(data, width, chartRows))
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	setup, err := setupOrbit(cmd, args[0])
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Model:       setup.spec.Name,
		Values:      setup.values,
		Options:     catalog.Options{SpiralArms: spiralArms, DarkMatter: darkMatter},
		Integrator:  integrator,
		Base:        setup.initial,
		PositionKpc: jitterPos,
		VelocityKms: jitterVel,
		NumTrials:   trials,
		Years:       setup.years,
		Samples:     samples,
		Seed:        seed,
	})
	if err != nil {
		return fmt.Errorf("monte carlo: %w", err)
	}

	stable, unstable := automation.MonteCarloStats(results)
	radii := make([]float64, len(results))
	for i, r := range results {
		radii[i] = r.MaxRadius
	}

	fmt.Printf("%s, base %s, %d trials\n", setup.spec.Name, setup.initial, len(results))
	fmt.Printf("bound (max R <= %g kpc): %d\n", automation.BoundRadiusKpc, stable)
	fmt.Printf("escaped:                %d\n", unstable)
	if len(radii) > 0 {
		fmt.Printf("max R: min %.2f, max %.2f kpc\n", floats.Min(radii), floats.Max(radii))
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	setup, err := setupOrbit(cmd, args[0])
	if err != nil {
		return err
	}
	pot, err := setup.build()
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("comparing integrators for %s (%s, %g Gyr)\n\n", setup.spec.Name, setup.initial, setup.years)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "integrator", "max_r_kpc", "energy_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 54))

	for _, name := range args[1:] {
		opts := orbitOptions()
		opts.Integrator = name

		start := time.Now()
		tr, _, err := orbit.Integrate(ctx, pot, setup.initial, setup.years, opts)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		drift := 0.0
		if energy := tr.Energy(pot); len(energy) > 0 {
			for _, e := range energy {
				drift = math.Max(drift, math.Abs(e-energy[0]))
			}
			if energy[0] != 0 {
				drift /= math.Abs(energy[0])
			}
		}
		fmt.Printf("%-12s  %12.4f  %12.2e  %12.2f\n", name, tr.MaxRadius(), drift, float64(elapsed.Microseconds())/1000)
	}
	return nil
}
