package catalog

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/vipor/internal/potential"
)

func TestParamBounds(t *testing.T) {
	for _, name := range Names("") {
		spec, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range spec.Params {
			if p.Min > p.Max {
				t.Errorf("%s %s: min %g > max %g", name, p.Symbol, p.Min, p.Max)
			}
			if p.Step <= 0 {
				t.Errorf("%s %s: step %g", name, p.Symbol, p.Step)
			}
			if p.Default < p.Min || p.Default > p.Max {
				t.Errorf("%s %s: default %g outside [%g, %g]", name, p.Symbol, p.Default, p.Min, p.Max)
			}
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("Jaffe Potential"); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("expected ErrInvalidModel, got %v", err)
	}
	if _, err := Build("Jaffe Potential", nil, Options{}); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("expected ErrInvalidModel, got %v", err)
	}
}

func TestNamesByFamily(t *testing.T) {
	got := Names(Spherical)
	want := []string{PowerSpherical, SphericalShell, HomogeneousSphere, Plummer}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
	if n := len(Names(Triaxial)); n != 1 {
		t.Errorf("expected one triaxial model, got %d", n)
	}
}

// Slider values that lie outside the model's domain.
var domainEdges = map[string]map[int]float64{
	PowerSpherical: {0: 6},
	PowerTriaxial:  {0: 5},
}

func TestBuildAtBounds(t *testing.T) {
	for _, name := range Names("") {
		spec, _ := Lookup(name)
		t.Run(name, func(t *testing.T) {
			if _, err := Build(name, nil, Options{}); err != nil {
				t.Fatalf("defaults: %v", err)
			}
			for i, p := range spec.Params {
				for _, v := range []float64{p.Min, p.Max} {
					values := spec.Defaults()
					values[i] = v
					_, err := Build(name, values, Options{})
					if edge, ok := domainEdges[name][i]; ok && edge == v {
						if !errors.Is(err, potential.ErrDomain) {
							t.Errorf("%s=%g: expected ErrDomain, got %v", p.Symbol, v, err)
						}
						continue
					}
					if err != nil {
						t.Errorf("%s=%g: %v", p.Symbol, v, err)
					}
				}
			}
		})
	}
}

func TestBuildNegativeShell(t *testing.T) {
	_, err := Build(SphericalShell, []float64{-1}, Options{})
	if !errors.Is(err, potential.ErrDomain) {
		t.Errorf("expected ErrDomain, got %v", err)
	}
}

func TestBuildArity(t *testing.T) {
	_, err := Build(Plummer, []float64{1, 2}, Options{})
	if !errors.Is(err, ErrArity) {
		t.Errorf("expected ErrArity, got %v", err)
	}
}

func TestBuildOptions(t *testing.T) {
	p, err := Build(HomogeneousSphere, []float64{10}, Options{SpiralArms: 3, DarkMatter: true})
	if err != nil {
		t.Fatal(err)
	}
	sum, ok := p.(potential.Sum)
	if !ok || len(sum) != 3 {
		t.Fatalf("expected 3 components, got %T %v", p, p.Name())
	}
	arms, ok := sum[1].(*potential.SpiralArms)
	if !ok || arms.Arms() != 3 {
		t.Errorf("second component should be 3 spiral arms, got %s", sum[1].Name())
	}
	if sum[2].Name() != "NFW" {
		t.Errorf("third component should be the halo, got %s", sum[2].Name())
	}

	if _, err := Build(HomogeneousSphere, nil, Options{SpiralArms: -1}); err != nil {
		t.Errorf("negative arm count means no arms: %v", err)
	}
}

func TestKiloparsecConversion(t *testing.T) {
	// A sphere of radius 8 kpc has radius 1 in natural units, so its edge
	// potential is -4 pi / 3.
	p, err := Build(HomogeneousSphere, []float64{8}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := p.Phi(1, 0, 0, 0), -4*math.Pi/3; math.Abs(got-want) > 1e-12 {
		t.Errorf("Phi at the edge = %g, want %g", got, want)
	}
}
