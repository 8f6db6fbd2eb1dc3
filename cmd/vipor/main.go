package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/vipor/internal/config"
	"github.com/san-kum/vipor/internal/logging"
	"github.com/san-kum/vipor/internal/pages"
	"github.com/san-kum/vipor/internal/server"
	"github.com/san-kum/vipor/internal/tui"
)

var (
	dataDir      string
	profilesFile string
	logLevel     string
	logJSON      bool
	snapDir      string

	// orbit
	duration   float64
	radius     float64
	height     float64
	vt         float64
	vr         float64
	vz         float64
	integrator string
	samples    int

	// model
	params      []float64
	preset      string
	spiralArms  int
	darkMatter  bool
	profileName string

	// output
	outDir    string
	renderOut string
	format    string
	saveRun   bool
	width     int
	chartRows int

	// milky way components
	withBulge bool
	withDisk  bool
	withHalo  bool
	withBH    bool

	pageValues map[string]string
	serverFile string

	// batch
	maxPoints  int
	paramIndex int
	paramMin   float64
	paramMax   float64
	numSteps   int
	trials     int
	orbits     int
	years      float64
	seed       int64
	jitterPos  float64
	jitterVel  float64
	writeFile  string
	lyapunovDt float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vipor",
		Short: "visualizing potentials and orbits",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(logLevel, logJSON)
		},
		RunE: runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".vipor", "data directory for saved runs")
	rootCmd.PersistentFlags().StringVar(&profilesFile, "profiles", "", "render profiles file (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as json")
	rootCmd.Flags().StringVar(&snapDir, "snapshots", "snapshots", "directory for terminal snapshots")

	catalogCmd := &cobra.Command{
		Use:   "catalog [family]",
		Short: "list potential models",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listCatalog,
	}

	renderCmd := &cobra.Command{
		Use:   "render [model]",
		Short: "integrate an orbit and write its figures",
		Args:  cobra.ExactArgs(1),
		RunE:  renderModel,
	}
	orbitFlags(renderCmd)
	modelFlags(renderCmd)
	renderCmd.Flags().StringVar(&profileName, "profile", "spherical-2d", "render profile")
	renderCmd.Flags().StringVar(&renderOut, "out", "out", "output directory")
	renderCmd.Flags().StringVar(&format, "format", "svg", "figure format (svg, png, pdf)")
	renderCmd.Flags().BoolVar(&saveRun, "save", false, "save the trajectory as a run")

	rotcurveCmd := &cobra.Command{
		Use:   "rotcurve [model...]",
		Short: "plot rotation curves at default parameters",
		Args:  cobra.MinimumNArgs(1),
		RunE:  plotRotationCurves,
	}
	rotcurveCmd.Flags().IntVar(&spiralArms, "spiral", 0, "add spiral arms with this many arms")
	rotcurveCmd.Flags().BoolVar(&darkMatter, "dark-matter", false, "add the dark matter halo")
	rotcurveCmd.Flags().StringVar(&outDir, "out", "", "also write the figure to this directory")
	chartFlags(rotcurveCmd)

	milkywayCmd := &cobra.Command{
		Use:   "milkyway",
		Short: "rotation curve of the Milky Way model",
		RunE:  plotMilkyWay,
	}
	milkywayCmd.Flags().BoolVar(&withBulge, "bulge", true, "include the bulge")
	milkywayCmd.Flags().BoolVar(&withDisk, "disk", true, "include the disk")
	milkywayCmd.Flags().BoolVar(&withHalo, "halo", true, "include the halo")
	milkywayCmd.Flags().BoolVar(&withBH, "bh", false, "include the central black hole")
	milkywayCmd.Flags().StringVar(&outDir, "out", "", "also write the figures to this directory")
	chartFlags(milkywayCmd)

	pageCmd := &cobra.Command{
		Use:   "page [slug]",
		Short: "print a page in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printPage,
	}
	pageCmd.Flags().StringToStringVar(&pageValues, "set", nil, "control values, key=value")
	chartFlags(pageCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the pages over http",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&serverFile, "config", "", "server config (ini)")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [model]",
		Short: "integrate orbits starting at rest at random radii",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	modelFlags(ensembleCmd)
	ensembleCmd.Flags().Float64Var(&years, "time", 1, "duration [Gyr]")
	ensembleCmd.Flags().IntVar(&orbits, "orbits", 0, "number of orbits (profile default when 0)")
	ensembleCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (profile default when 0)")
	ensembleCmd.Flags().StringVar(&outDir, "out", "", "also write the figures to this directory")
	chartFlags(ensembleCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario.yaml]",
		Short: "run a scenario of orbits and parameter sweeps",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [model]",
		Short: "grid search over the slider values of a model",
		Args:  cobra.ExactArgs(1),
		RunE:  scanModel,
	}
	orbitFlags(scanCmd)
	scanCmd.Flags().IntVar(&maxPoints, "points", 5, "values per slider")

	sectionsCmd := &cobra.Command{
		Use:   "sections [model]",
		Short: "midplane crossings of an orbit, or of a slider sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSections,
	}
	orbitFlags(sectionsCmd)
	modelFlags(sectionsCmd)
	sectionsCmd.Flags().IntVar(&paramIndex, "param-index", -1, "slider to sweep; -1 plots one section")
	sectionsCmd.Flags().Float64Var(&paramMin, "min", 0, "sweep start")
	sectionsCmd.Flags().Float64Var(&paramMax, "max", 0, "sweep end")
	sectionsCmd.Flags().IntVar(&numSteps, "steps", 20, "sweep steps")
	chartFlags(sectionsCmd)

	montecarloCmd := &cobra.Command{
		Use:   "montecarlo [model]",
		Short: "perturb an orbit and count the trials that stay bound",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	orbitFlags(montecarloCmd)
	modelFlags(montecarloCmd)
	montecarloCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	montecarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (time when 0)")
	montecarloCmd.Flags().Float64Var(&jitterPos, "dpos", 1, "position jitter [kpc]")
	montecarloCmd.Flags().Float64Var(&jitterVel, "dvel", 20, "velocity jitter [km/s]")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [integrators...]",
		Short: "compare integrators on one orbit",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	orbitFlags(compareCmd)
	modelFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run's trajectory as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "orbital periods and chaos indicators of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&lyapunovDt, "lyapunov-dt", 1e-2, "step of the Lyapunov estimate, natural units; 0 skips it")
	chartFlags(analyzeCmd)

	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "list render profiles",
		RunE:  listProfiles,
	}
	profilesCmd.Flags().StringVar(&writeFile, "write", "", "write the profiles to this yaml file")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(
		catalogCmd, renderCmd, rotcurveCmd, milkywayCmd, pageCmd, serveCmd,
		ensembleCmd, sweepCmd, scanCmd, sectionsCmd, montecarloCmd, compareCmd,
		listCmd, exportCSVCmd, exportJSONCmd, analyzeCmd, profilesCmd, presetsCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func orbitFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&duration, "time", 14, "duration [Gyr]")
	cmd.Flags().Float64Var(&radius, "radius", 10, "initial R [kpc]")
	cmd.Flags().Float64Var(&height, "height", 5, "initial z [kpc]")
	cmd.Flags().Float64Var(&vt, "vt", 0, "initial tangential velocity [km/s]")
	cmd.Flags().Float64Var(&vr, "vr", 0, "initial radial velocity [km/s]")
	cmd.Flags().Float64Var(&vz, "vz", 0, "initial vertical velocity [km/s]")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "output samples")
}

func modelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64SliceVar(&params, "param", nil, "slider values in catalog order")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	cmd.Flags().IntVar(&spiralArms, "spiral", 0, "add spiral arms with this many arms")
	cmd.Flags().BoolVar(&darkMatter, "dark-matter", false, "add the dark matter halo")
}

func chartFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", 80, "chart width")
	cmd.Flags().IntVar(&chartRows, "height-rows", 20, "chart height")
}

// signalContext is cancelled on interrupt so long integrations stop.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func loadProfiles() (*config.Config, error) {
	if profilesFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(profilesFile)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	return cfg, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadProfiles()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return tui.Run(ctx, pages.NewBook(cfg), snapDir)
}

func serve(cmd *cobra.Command, args []string) error {
	srvCfg := config.DefaultServerConfig()
	if serverFile != "" {
		var err error
		if srvCfg, err = config.LoadServer(serverFile); err != nil {
			return fmt.Errorf("server config: %w", err)
		}
		if !cmd.Flags().Changed("log-level") && !cmd.Flags().Changed("log-json") {
			if err := logging.Setup(srvCfg.LogLevel, srvCfg.LogJSON); err != nil {
				return err
			}
		}
	}
	if profilesFile == "" {
		profilesFile = srvCfg.Profiles
	}
	cfg, err := loadProfiles()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	fmt.Printf("serving on %s\n", srvCfg.Addr)
	return server.New(srvCfg, pages.NewBook(cfg)).Serve(ctx)
}
