package catalog

import (
	"errors"
	"fmt"

	"github.com/san-kum/vipor/internal/potential"
	"github.com/san-kum/vipor/internal/units"
)

var (
	// ErrInvalidModel is returned for a model name the catalog does not know.
	ErrInvalidModel = errors.New("catalog: unknown model")

	// ErrArity is returned when more values are given than the model has
	// parameters.
	ErrArity = errors.New("catalog: too many parameter values")
)

// Display names of the selectable and component models.
const (
	PowerSpherical    = "Power Spherical Potential"
	SphericalShell    = "Spherical Shell Potential"
	HomogeneousSphere = "Homogeneous Sphere Potential"
	Plummer           = "Plummer Potential"
	DoubleExpDisk     = "Double Exponential Disk Potential"
	PowerTriaxial     = "Power Triaxial Potential"

	TwoPowerSpherical = "Two Power Spherical Potential"
	NFW               = "NFW Potential"
	PowerCutoff       = "Power Spherical Potential with Cutoff"
	TwoPowerTriaxial  = "Two Power Triaxial Potential"
	MiyamotoNagai     = "Miyamoto-Nagai Potential"
	Kepler            = "Kepler Potential"
	SpiralArms        = "Spiral Arms Potential"
)

// builder receives parameter values already converted to natural units.
type builder func(v []float64) (potential.Potential, error)

type entry struct {
	spec  Spec
	build builder
}

type Registry struct {
	entries map[string]*entry
	order   []string
}

func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]*entry)}
	for _, e := range builtin() {
		r.Register(e.spec, e.build)
	}
	return r
}

// Register adds or replaces a model. Models list in registration order.
func (r *Registry) Register(spec Spec, build func(v []float64) (potential.Potential, error)) {
	if _, ok := r.entries[spec.Name]; !ok {
		r.order = append(r.order, spec.Name)
	}
	r.entries[spec.Name] = &entry{spec: spec, build: build}
}

func (r *Registry) Lookup(name string) (Spec, error) {
	e, ok := r.entries[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidModel, name)
	}
	return e.spec, nil
}

// Names lists the models of a family in display order; an empty family
// lists every model.
func (r *Registry) Names(family Family) []string {
	var names []string
	for _, name := range r.order {
		if family == "" || r.entries[name].spec.Family == family {
			names = append(names, name)
		}
	}
	return names
}

// Options adds components on top of the selected model.
type Options struct {
	// SpiralArms adds a spiral-arm perturbation with this many arms.
	SpiralArms int
	// DarkMatter adds an NFW halo of 6e11 Msun with a = R0.
	DarkMatter bool
}

// Build constructs the named model. values are in slider units; missing
// trailing values take the parameter default.
func (r *Registry) Build(name string, values []float64, opts Options) (potential.Potential, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidModel, name)
	}
	params := e.spec.Params
	if len(values) > len(params) {
		return nil, fmt.Errorf("%s: got %d values for %d parameters: %w", name, len(values), len(params), ErrArity)
	}

	natural := make([]float64, len(params))
	for i, p := range params {
		v := p.Default
		if i < len(values) {
			v = values[i]
		}
		n, err := p.Quantity(v).Natural()
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", name, p.Label, err)
		}
		natural[i] = n
	}

	base, err := e.build(natural)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}

	parts := []potential.Potential{base}
	if opts.SpiralArms > 0 {
		arms, err := potential.NewSpiralArms(opts.SpiralArms)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", name, err)
		}
		parts = append(parts, arms)
	}
	if opts.DarkMatter {
		halo, err := DarkMatterHalo()
		if err != nil {
			return nil, err
		}
		parts = append(parts, halo)
	}
	return potential.Combine(parts...), nil
}

// DarkMatterHalo is the NFW halo added by Options.DarkMatter.
func DarkMatterHalo() (potential.Potential, error) {
	return potential.NewNFW(units.MsunToNatural(HaloMassMsun), 1)
}

const HaloMassMsun = 6e11

var defaultRegistry = NewRegistry()

func Lookup(name string) (Spec, error) { return defaultRegistry.Lookup(name) }

func Names(family Family) []string { return defaultRegistry.Names(family) }

func Build(name string, values []float64, opts Options) (potential.Potential, error) {
	return defaultRegistry.Build(name, values, opts)
}
