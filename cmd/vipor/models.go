package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/vipor/internal/catalog"
	"github.com/san-kum/vipor/internal/config"
	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/potential"
)

// resolveModel accepts a catalog name or an unambiguous case-insensitive
// prefix of one, so "plummer" finds "Plummer Potential".
func resolveModel(name string) (catalog.Spec, error) {
	if spec, err := catalog.Lookup(name); err == nil {
		return spec, nil
	}
	var matches []string
	for _, n := range catalog.Names("") {
		if strings.HasPrefix(strings.ToLower(n), strings.ToLower(name)) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 0:
		return catalog.Spec{}, fmt.Errorf("%w: %q", catalog.ErrInvalidModel, name)
	case 1:
		return catalog.Lookup(matches[0])
	}
	return catalog.Spec{}, fmt.Errorf("%q is ambiguous: %s", name, strings.Join(matches, ", "))
}

// orbitSetup is a model with slider values and an orbit, taken from a
// preset and then from the flags the user set.
type orbitSetup struct {
	spec    catalog.Spec
	values  []float64
	initial orbit.InitialConditions
	years   float64
	profile string
}

func setupOrbit(cmd *cobra.Command, model string) (orbitSetup, error) {
	spec, err := resolveModel(model)
	if err != nil {
		return orbitSetup{}, err
	}
	s := orbitSetup{
		spec:    spec,
		values:  spec.Defaults(),
		initial: orbit.InitialConditions{R: radius, Z: height, VR: vr, VT: vt, VZ: vz},
		years:   duration,
	}

	if preset != "" {
		p, ok := config.GetPreset(spec.Name, preset)
		if !ok {
			return s, fmt.Errorf("no preset %q for %s (have: %s)", preset, spec.Name, strings.Join(config.ListPresets(spec.Name), ", "))
		}
		copy(s.values, p.Values)
		s.profile = p.Profile
		if !cmd.Flags().Changed("time") {
			s.years = p.Years
		}
		ic := p.Initial
		if cmd.Flags().Changed("radius") {
			ic.R = radius
		}
		if cmd.Flags().Changed("height") {
			ic.Z = height
		}
		if cmd.Flags().Changed("vr") {
			ic.VR = vr
		}
		if cmd.Flags().Changed("vt") {
			ic.VT = vt
		}
		if cmd.Flags().Changed("vz") {
			ic.VZ = vz
		}
		s.initial = ic
	}

	if len(params) > len(s.values) {
		return s, fmt.Errorf("%s takes %d values, got %d: %w", spec.Name, len(s.values), len(params), catalog.ErrArity)
	}
	copy(s.values, params)
	return s, nil
}

func (s orbitSetup) build() (potential.Potential, error) {
	return catalog.Build(s.spec.Name, s.values, catalog.Options{SpiralArms: spiralArms, DarkMatter: darkMatter})
}

func orbitOptions() orbit.Options {
	cfg := dynamo.DefaultConfig()
	cfg.Samples = samples
	return orbit.Options{Integrator: integrator, Config: cfg}
}

func formatValues(spec catalog.Spec, values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%s=%s", spec.Params[i].Symbol, spec.Params[i].Quantity(v))
	}
	return strings.Join(parts, " ")
}

func listCatalog(cmd *cobra.Command, args []string) error {
	var family catalog.Family
	if len(args) == 1 {
		family = catalog.Family(args[0])
	}
	names := catalog.Names(family)
	if len(names) == 0 {
		return fmt.Errorf("no models in family %q", family)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tFAMILY\tPARAM\tMIN\tMAX\tSTEP\tDEFAULT\tUNIT")
	for _, name := range names {
		spec, err := catalog.Lookup(name)
		if err != nil {
			return err
		}
		if len(spec.Params) == 0 {
			fmt.Fprintf(w, "%s\t%s\t-\t\t\t\t\t\n", spec.Name, spec.Family)
		}
		for i, p := range spec.Params {
			model, fam := spec.Name, string(spec.Family)
			if i > 0 {
				model, fam = "", ""
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%g\t%g\t%s\n", model, fam, p.Symbol, p.Min, p.Max, p.Step, p.Default, p.Unit)
		}
	}
	return w.Flush()
}

func listProfiles(cmd *cobra.Command, args []string) error {
	cfg, err := loadProfiles()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tINTEG\tSAMPLES\tPROJECTIONS\tANIMATIONS\tCONTOUR\tFRAMES")
	for _, name := range cfg.Names() {
		p, err := cfg.Profile(name)
		if err != nil {
			return err
		}
		projs := make([]string, len(p.Projections))
		for i, proj := range p.Projections {
			projs[i] = string(proj)
		}
		anims := make([]string, len(p.Animations))
		for i, a := range p.Animations {
			anims[i] = string(a)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%t\t%d\n",
			name, p.Integrator, p.Samples, strings.Join(projs, ","), strings.Join(anims, ","), p.Contour, p.Frames)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if writeFile != "" {
		if err := config.Save(writeFile, cfg); err != nil {
			return fmt.Errorf("write profiles: %w", err)
		}
		fmt.Printf("\nwritten to %s\n", writeFile)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	models := catalog.Names("")
	if len(args) == 1 {
		spec, err := resolveModel(args[0])
		if err != nil {
			return err
		}
		models = []string{spec.Name}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tPRESET\tPROFILE\tVALUES\tYEARS\tINITIAL")
	for _, model := range models {
		for _, name := range config.ListPresets(model) {
			p, _ := config.GetPreset(model, name)
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%g\t%s\n", model, name, p.Profile, p.Values, p.Years, p.Initial)
		}
	}
	return w.Flush()
}
