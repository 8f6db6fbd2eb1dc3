package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/vipor/internal/analysis"
	"github.com/san-kum/vipor/internal/catalog"
	"github.com/san-kum/vipor/internal/integrators"
	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/storage"
	"github.com/san-kum/vipor/internal/units"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tYEARS\tINTEG\tSAMPLES\tINITIAL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f Gyr\t%s\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Years,
			run.Integrator,
			run.Samples,
			run.Initial,
		)
	}

	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(os.Stdout, tr)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, tr)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if tr.Len() < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("orbit analysis: %s\n", meta.ID)
	fmt.Printf("model: %s %v\n", meta.Model, meta.Values)
	fmt.Printf("initial: %s for %g Gyr\n\n", meta.Initial, meta.Years)

	data := tr.R()
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	ps := analysis.PowerSpectrum(padded)
	if len(ps) > 8 {
		graph := asciigraph.Plot(ps[1:len(ps)/4],
			asciigraph.Height(15),
			asciigraph.Width(width),
			asciigraph.Caption("power spectrum (R)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	p := analysis.OrbitalPeriods(tr)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PERIOD\tGYR")
	fmt.Fprintf(w, "radial\t%.4f\n", p.Radial)
	fmt.Fprintf(w, "vertical\t%.4f\n", p.Vertical)
	fmt.Fprintf(w, "azimuthal\t%.4f\n", p.Azimuthal)
	if err := w.Flush(); err != nil {
		return err
	}

	portrait := analysis.RadialPortrait(tr)
	fmt.Println()
	fmt.Printf("phase portrait (%s, %s)\n", portrait.XLabel, portrait.YLabel)
	fmt.Println(analysis.PhasePortraitToASCII(portrait, width, chartRows))

	if sec := analysis.Section(tr); len(sec.Points) > 0 {
		fmt.Printf("surface of section: %d midplane crossings\n", len(sec.Points))
		fmt.Println(analysis.SectionToASCII(sec, width, chartRows))
	}

	if lyapunovDt <= 0 {
		return nil
	}
	pot, err := catalog.Build(meta.Model, meta.Values, catalog.Options{SpiralArms: meta.SpiralArms, DarkMatter: meta.DarkMatter})
	if err != nil {
		return fmt.Errorf("rebuild %s: %w", meta.Model, err)
	}
	// Adaptive runs are re-stepped with fixed-step rk4.
	name := meta.Integrator
	if name == "" || name == "rk45" {
		name = "rk4"
	}
	integ, err := integrators.New(name)
	if err != nil {
		return err
	}
	lambda := analysis.LyapunovExponent(orbit.NewSystem(pot), integ, meta.Initial.State(),
		lyapunovDt, units.GyrToNatural(meta.Years), 1e-8)
	fmt.Printf("largest lyapunov exponent: %.4g / Gyr (%s, dt=%g)\n", lambda/units.TimeGyr, name, lyapunovDt)
	return nil
}
