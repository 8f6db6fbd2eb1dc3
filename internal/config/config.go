package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/units"
)

const (
	DefaultSamples    = 3001
	DefaultIntegrator = "rk45"
	DefaultFrames     = 60
	DefaultGridNodes  = 21
	DefaultLimit      = 100.0
)

var ErrUnknownProfile = errors.New("config: unknown profile")

// Projection names a 2D or 3D view of a trajectory.
type Projection string

const (
	ProjRZ    Projection = "rz"
	ProjRaDec Projection = "radec"
	ProjRVR   Projection = "rvr"
	ProjXY    Projection = "xy"
	ProjXYZ   Projection = "xyz"
	ProjRVRZ  Projection = "rvrz"
	ProjRVRVZ Projection = "rvrvz"
)

// Is3D reports whether the projection has three axes.
func (p Projection) Is3D() bool {
	return p == ProjXYZ || p == ProjRVRZ || p == ProjRVRVZ
}

type Animation string

const (
	AnimOrbit2D Animation = "orbit2d"
	AnimOrbit3D Animation = "orbit3d"
)

// Grid is the contour grid in kpc.
type Grid struct {
	RMin float64 `yaml:"r_min"`
	RMax float64 `yaml:"r_max"`
	ZMin float64 `yaml:"z_min"`
	ZMax float64 `yaml:"z_max"`
	NR   int     `yaml:"nr"`
	NZ   int     `yaml:"nz"`
}

// Profile controls what a render pass produces.
type Profile struct {
	Name        string       `yaml:"name"`
	Integrator  string       `yaml:"integrator"`
	Samples     int          `yaml:"samples"`
	Projections []Projection `yaml:"projections"`
	Animations  []Animation  `yaml:"animations"`
	Contour     bool         `yaml:"contour"`
	Grid        Grid         `yaml:"grid"`
	Frames      int          `yaml:"frames"`
	Limit       float64      `yaml:"limit_kpc"`

	// Fixed orbit for pages without orbit sliders. Years <= 0 means the
	// caller chooses.
	Years   float64                  `yaml:"years,omitempty"`
	Initial *orbit.InitialConditions `yaml:"initial,omitempty"`

	Ensemble     int     `yaml:"ensemble,omitempty"`
	EnsembleMaxR float64 `yaml:"ensemble_max_r,omitempty"`
	Seed         int64   `yaml:"seed,omitempty"`
}

// Config is the set of named render profiles.
type Config struct {
	Profiles map[string]*Profile `yaml:"profiles"`
}

func defaultGrid() Grid {
	return Grid{
		RMin: 0,
		RMax: 1.5 * units.R0Kpc,
		ZMin: -0.5 * units.R0Kpc,
		ZMax: 0.5 * units.R0Kpc,
		NR:   DefaultGridNodes,
		NZ:   DefaultGridNodes,
	}
}

func base(name string) *Profile {
	return &Profile{
		Name:       name,
		Integrator: DefaultIntegrator,
		Samples:    DefaultSamples,
		Grid:       defaultGrid(),
		Frames:     DefaultFrames,
		Limit:      DefaultLimit,
	}
}

// DefaultConfig returns the built-in profiles.
func DefaultConfig() *Config {
	twoD := []Projection{ProjRZ, ProjRaDec, ProjRVR, ProjXY}
	threeD := []Projection{ProjXYZ, ProjRVRZ, ProjRVRVZ}
	both := append(append([]Projection{}, twoD...), threeD...)

	s2 := base("spherical-2d")
	s2.Projections = twoD
	s2.Animations = []Animation{AnimOrbit2D, AnimOrbit3D}
	s2.Contour = true

	s3 := base("spherical-3d")
	s3.Projections = threeD
	s3.Animations = []Animation{AnimOrbit3D}
	s3.Contour = true

	axi := base("axisymmetric")
	axi.Projections = both
	axi.Animations = []Animation{AnimOrbit2D, AnimOrbit3D}
	axi.Contour = true

	tri := base("triaxial")
	tri.Projections = both
	tri.Animations = []Animation{AnimOrbit2D, AnimOrbit3D}
	tri.Contour = true

	rot := base("rotation")
	rot.Projections = []Projection{ProjRZ, ProjXYZ}
	rot.Years = 14
	rot.Initial = &orbit.InitialConditions{R: 10, Z: 5}

	sun := orbit.Sun()
	mw := base("milkyway")
	mw.Projections = []Projection{ProjRZ, ProjXY}
	mw.Animations = []Animation{AnimOrbit2D, AnimOrbit3D}
	mw.Contour = true
	mw.Years = 13.6
	mw.Initial = &sun

	ens := base("ensemble")
	ens.Samples = 1001
	ens.Projections = []Projection{ProjXY, ProjRZ}
	ens.Years = 14
	ens.Ensemble = 10
	ens.EnsembleMaxR = 100

	cfg := &Config{Profiles: map[string]*Profile{}}
	for _, p := range []*Profile{s2, s3, axi, tri, rot, mw, ens} {
		cfg.Profiles[p.Name] = p
	}
	return cfg
}

// Profile returns a copy of the named profile.
func (c *Config) Profile(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	return p.clone(), nil
}

func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Profile) clone() Profile {
	cp := *p
	cp.Projections = append([]Projection(nil), p.Projections...)
	cp.Animations = append([]Animation(nil), p.Animations...)
	if p.Initial != nil {
		ic := *p.Initial
		cp.Initial = &ic
	}
	return cp
}

// Validate checks the fields a render pass depends on.
func (p Profile) Validate() error {
	if p.Samples < 1 {
		return fmt.Errorf("profile %s: samples %d < 1", p.Name, p.Samples)
	}
	if p.Contour && (p.Grid.NR < 2 || p.Grid.NZ < 2 || p.Grid.RMax <= p.Grid.RMin || p.Grid.ZMax <= p.Grid.ZMin) {
		return fmt.Errorf("profile %s: degenerate contour grid", p.Name)
	}
	for _, proj := range p.Projections {
		switch proj {
		case ProjRZ, ProjRaDec, ProjRVR, ProjXY, ProjXYZ, ProjRVRZ, ProjRVRVZ:
		default:
			return fmt.Errorf("profile %s: unknown projection %q", p.Name, proj)
		}
	}
	for _, a := range p.Animations {
		if a != AnimOrbit2D && a != AnimOrbit3D {
			return fmt.Errorf("profile %s: unknown animation %q", p.Name, a)
		}
	}
	return nil
}

// Load reads profiles from a YAML file on top of the defaults. A profile in
// the file overrides only the fields it sets.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var raw struct {
		Profiles map[string]yaml.Node `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	for name, node := range raw.Profiles {
		p, ok := cfg.Profiles[name]
		if !ok {
			p = base(name)
		}
		if err := node.Decode(p); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
		p.Name = name
		if err := p.Validate(); err != nil {
			return nil, err
		}
		cfg.Profiles[name] = p
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
