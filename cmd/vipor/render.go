package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/vipor/internal/catalog"
	"github.com/san-kum/vipor/internal/export"
	"github.com/san-kum/vipor/internal/figure"
	"github.com/san-kum/vipor/internal/pages"
	"github.com/san-kum/vipor/internal/render"
	"github.com/san-kum/vipor/internal/storage"
	"github.com/san-kum/vipor/internal/viz"
)

func renderModel(cmd *cobra.Command, args []string) error {
	setup, err := setupOrbit(cmd, args[0])
	if err != nil {
		return err
	}
	if setup.profile != "" && !cmd.Flags().Changed("profile") {
		profileName = setup.profile
	}

	cfg, err := loadProfiles()
	if err != nil {
		return err
	}
	profile, err := cfg.Profile(profileName)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("integrator") || profile.Integrator == "" {
		profile.Integrator = integrator
	}
	if cmd.Flags().Changed("samples") {
		profile.Samples = samples
	}

	pot, err := setup.build()
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("%s  %s\n", setup.spec.Name, formatValues(setup.spec, setup.values))
	fmt.Printf("orbit: %s for %g Gyr (%s, %s)\n", setup.initial, setup.years, profile.Name, profile.Integrator)

	start := time.Now()
	res, err := render.Render(ctx, pot, setup.years, setup.initial, profile)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fmt.Printf("integrated %d samples in %v\n\n", res.Trajectory.Len(), time.Since(start).Round(time.Millisecond))

	dir := filepath.Join(renderOut, storage.Slug(setup.spec.Name))
	files, err := writeResult(dir, res)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Println("  " + f)
	}
	fmt.Println()
	printMetrics(res.Metrics)

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(storage.RunMetadata{
			Model:      setup.spec.Name,
			Values:     setup.values,
			SpiralArms: spiralArms,
			DarkMatter: darkMatter,
			Timestamp:  time.Now(),
			Years:      setup.years,
			Initial:    setup.initial,
			Integrator: profile.Integrator,
			Profile:    profile.Name,
			Samples:    profile.Samples,
			Metrics:    res.Metrics,
		}, res.Trajectory)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("\nsaved: %s\n", id)
	}
	return nil
}

// writeResult writes the figures in the chosen format, animations as GIF
// plus an HTML fragment, and the contour as SVG.
func writeResult(dir string, res *render.Result) ([]string, error) {
	var files []string
	figs := append(append([]figure.Figure{}, res.Figures2D...), res.Figures3D...)
	for i := range figs {
		path := filepath.Join(dir, export.FileName(figs[i].Name, format))
		if err := export.SaveFigure(&figs[i], path); err != nil {
			return files, err
		}
		files = append(files, path)
	}

	for i := range res.Animations {
		anim := &res.Animations[i]
		path := filepath.Join(dir, export.FileName(anim.Name, "gif"))
		if err := export.SaveGIF(anim, path); err != nil {
			return files, err
		}
		files = append(files, path)

		path = filepath.Join(dir, export.FileName(anim.Name, "html"))
		f, err := os.Create(path)
		if err != nil {
			return files, err
		}
		err = export.WriteHTML(f, anim)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return files, fmt.Errorf("animation %s: %w", anim.Name, err)
		}
		files = append(files, path)
	}

	if res.Contour != nil {
		path := filepath.Join(dir, export.FileName("contour", "svg"))
		if err := export.SaveContour(res.Contour, path); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

func printMetrics(m map[string]float64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%.6g\n", k, m[k])
	}
	w.Flush()
}

func plotRotationCurves(cmd *cobra.Command, args []string) error {
	opts := catalog.Options{SpiralArms: spiralArms}
	var curves []render.Curve
	for _, name := range args {
		spec, err := resolveModel(name)
		if err != nil {
			return err
		}
		pot, err := catalog.Build(spec.Name, nil, opts)
		if err != nil {
			return fmt.Errorf("build %s: %w", spec.Name, err)
		}
		curves = append(curves, render.Curve{Label: spec.Name, Potential: pot})
	}
	if darkMatter {
		halo, err := catalog.DarkMatterHalo()
		if err != nil {
			return err
		}
		curves = append(curves, render.Curve{Label: "Dark Matter Halo", Potential: halo})
	}

	fig := render.RotationFigure("Rotation curves", curves, 0.01, 50, width)
	return showFigure(&fig, "rotation")
}

func plotMilkyWay(cmd *cobra.Command, args []string) error {
	on := map[string]bool{"bulge": withBulge, "disk": withDisk, "halo": withHalo, "bh": withBH}
	total, curves, err := pages.MilkyWay(func(key string) bool { return on[key] })
	if err != nil {
		return err
	}
	if total == nil {
		return fmt.Errorf("no components selected")
	}

	fig := render.RotationFigure("Milky Way components", curves, 0.08, 80, width)
	if err := showFigure(&fig, "milkyway_components"); err != nil {
		return err
	}
	fmt.Println()
	fig = render.RotationFigure("Milky Way", []render.Curve{{Label: "Total", Potential: total}}, 0.08, 80, width)
	return showFigure(&fig, "milkyway_total")
}

// showFigure prints fig as a line chart and writes it to outDir when set.
func showFigure(fig *figure.Figure, name string) error {
	chart := viz.LineChart(fig, width, chartRows)
	if chart == "" {
		return fmt.Errorf("%s: nothing to plot", fig.Title)
	}
	fmt.Println(fig.Title)
	fmt.Println(chart)

	if outDir != "" {
		path := filepath.Join(outDir, export.FileName(name, "svg"))
		if err := export.SaveFigure(fig, path); err != nil {
			return err
		}
		fmt.Printf("written to %s\n", path)
	}
	return nil
}

func printPage(cmd *cobra.Command, args []string) error {
	cfg, err := loadProfiles()
	if err != nil {
		return err
	}
	book := pages.NewBook(cfg)
	if len(args) == 0 {
		for _, p := range book.Pages() {
			fmt.Printf("%-14s %s\n", p.Slug(), p.Title())
		}
		return nil
	}

	page, err := book.Lookup(args[0])
	if err != nil {
		return err
	}
	values := pages.Values{}
	for k, v := range pageValues {
		values[k] = v
	}

	ctx, cancel := signalContext()
	defer cancel()
	out, err := page.Run(ctx, values)
	if err != nil {
		return fmt.Errorf("%s: %w", page.Slug(), err)
	}

	styles := viz.NewStyles(viz.GetTheme(""))
	cam := viz.NewCamera()
	fmt.Println(styles.Title.Render(page.Title()))
	for _, b := range out.Blocks {
		switch b.Kind {
		case pages.MarkdownBlock:
			fmt.Println(b.Text)
		case pages.LaTeXBlock:
			fmt.Println(styles.Math.Render("  " + b.Text))
		case pages.WarningBlock:
			fmt.Println(styles.Warning.Render(b.Text))
		case pages.FigureBlock:
			switch {
			case b.Contour != nil:
				fmt.Println(viz.DrawContour(b.Contour))
			case b.Figure != nil && b.Figure.Name == "rotation":
				fmt.Println(viz.LineChart(b.Figure, width, chartRows))
			case b.Figure != nil:
				fmt.Println(viz.DrawFigure(b.Figure, width, chartRows, cam))
			}
		case pages.AnimationBlock:
			last := len(b.Animation.Frames) - 1
			fmt.Println(styles.Muted.Render(b.Animation.Title + " (last frame)"))
			fmt.Println(viz.DrawFrame(b.Animation, last, width, chartRows/2, cam))
		}
		fmt.Println()
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	setup, err := setupOrbit(cmd, args[0])
	if err != nil {
		return err
	}
	cfg, err := loadProfiles()
	if err != nil {
		return err
	}
	profile, err := cfg.Profile("ensemble")
	if err != nil {
		return err
	}
	if orbits > 0 {
		profile.Ensemble = orbits
	}
	if seed != 0 {
		profile.Seed = seed
	}

	pot, err := setup.build()
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()
	res, members, err := render.Ensemble(ctx, pot, years, profile)
	if err != nil {
		return fmt.Errorf("ensemble: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORBIT\tR0 [kpc]\tMAX R [kpc]\tSAMPLES")
	for i, m := range members {
		fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%d\n", i, m.Initial.R, m.Trajectory.MaxRadius(), m.Trajectory.Len())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	cam := viz.NewCamera()
	for i := range res.Figures2D {
		fmt.Println()
		fmt.Println(viz.DrawFigure(&res.Figures2D[i], width, chartRows, cam))
	}
	if outDir != "" {
		files, err := writeResult(filepath.Join(outDir, "ensemble_"+storage.Slug(setup.spec.Name)), res)
		if err != nil {
			return err
		}
		fmt.Printf("\nwritten %d files\n", len(files))
	}
	return nil
}
