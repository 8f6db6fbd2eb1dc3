package potential

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"
)

func mustPot(t *testing.T, p Potential, err error) Potential {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func relErr(got, want float64) float64 {
	if want == 0 {
		return math.Abs(got)
	}
	return math.Abs((got - want) / want)
}

func TestClosedForms(t *testing.T) {
	kepler, _ := NewKepler(2)
	plummer, _ := NewPlummer(1, 0.5)
	nfw, _ := NewNFW(3, 2)
	sphere, _ := NewHomogeneousSphere(1, 2)
	shell, _ := NewSphericalShell(1, 2)
	power, _ := NewPowerSpherical(1, 1.5)
	iso, _ := NewPowerSpherical(1, 2)

	tests := []struct {
		name string
		pot  Potential
		r    float64
		want float64
	}{
		{"kepler", kepler, 4, -0.5},
		{"plummer", plummer, 1.2, -1 / 1.3},
		{"nfw", nfw, 2, -3 * math.Log(2) / 2},
		{"sphere inside", sphere, 1, 2 * math.Pi * (1.0/3 - 4)},
		{"sphere outside", sphere, 4, -4 * math.Pi * 8 / 12},
		{"shell inside", shell, 1, -0.5},
		{"shell outside", shell, 4, -0.25},
		{"power", power, 4, 4 * math.Pi * 2 / (1.5 * 0.5)},
		{"power isothermal", iso, math.E, 4 * math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Evaluate along an arbitrary direction to exercise the
			// Cartesian wrapper.
			x, y, z := tt.r*0.48, tt.r*0.6, tt.r*0.64
			if got := tt.pot.Phi(x, y, z, 0); relErr(got, tt.want) > 1e-12 {
				t.Errorf("Phi = %.10g, want %.10g", got, tt.want)
			}
		})
	}
}

func TestTwoPowerMatchesNFW(t *testing.T) {
	nfw, err := NewNFW(1.7, 0.8)
	nfw = mustPot(t, nfw, err)
	tp, err := NewTwoPowerSpherical(1.7, 0.8, 1, 3)
	tp = mustPot(t, tp, err)

	for _, r := range []float64{0.01, 0.3, 1, 4, 25} {
		if got, want := tp.Phi(r, 0, 0, 0), nfw.Phi(r, 0, 0, 0); relErr(got, want) > 1e-8 {
			t.Errorf("r=%g: Phi %.10g, want %.10g", r, got, want)
		}
		got, _, _ := tp.Force(0, 0, r, 0)
		_, _, want := nfw.Force(0, 0, r, 0)
		if relErr(got, want) > 1e-8 {
			t.Errorf("r=%g: F %.10g, want %.10g", r, got, want)
		}
	}
}

func TestTwoPowerMatchesHernquist(t *testing.T) {
	h, err := NewHernquist(1, 0.5)
	h = mustPot(t, h, err)
	tp, err := NewTwoPowerSpherical(1, 0.5, 1, 4)
	tp = mustPot(t, tp, err)

	for _, r := range []float64{0.05, 0.5, 2, 10} {
		if got, want := tp.Phi(r, 0, 0, 0), h.Phi(r, 0, 0, 0); relErr(got, want) > 1e-8 {
			t.Errorf("r=%g: Phi %.10g, want %.10g", r, got, want)
		}
	}
}

func TestForceMatchesGradient(t *testing.T) {
	build := map[string]func() (Potential, error){
		"plummer":        func() (Potential, error) { return NewPlummer(1, 0.7) },
		"nfw":            func() (Potential, error) { return NewNFW(2, 1) },
		"power":          func() (Potential, error) { return NewPowerSpherical(1, 1.25) },
		"cutoff":         func() (Potential, error) { return NewPowerSphericalCutoff(1, 1.8, 1.9/8) },
		"two power":      func() (Potential, error) { return NewTwoPowerSpherical(1, 5, 1.5, 3.5) },
		"miyamoto-nagai": func() (Potential, error) { return NewMiyamotoNagai(1, 3.0/8, 0.28/8) },
		"power triaxial": func() (Potential, error) { return NewPowerTriaxial(1, 1, 1.5, 0.8) },
		"two power triaxial": func() (Potential, error) {
			return NewTwoPowerTriaxial(1, 5, 1.5, 3.5, 4, 16)
		},
	}
	point := []float64{0.6, 0.35, 0.2}

	for name, ctor := range build {
		t.Run(name, func(t *testing.T) {
			p, err := ctor()
			p = mustPot(t, p, err)
			grad := fd.Gradient(nil, func(q []float64) float64 {
				return p.Phi(q[0], q[1], q[2], 0)
			}, point, &fd.Settings{Formula: fd.Central, Step: 1e-5})
			fx, fy, fz := p.Force(point[0], point[1], point[2], 0)
			for i, f := range []float64{fx, fy, fz} {
				if math.Abs(f+grad[i]) > 1e-5*(1+math.Abs(grad[i])) {
					t.Errorf("component %d: force %.8g, -grad %.8g", i, f, -grad[i])
				}
			}
		})
	}
}

func TestPowerTriaxialSphericalLimit(t *testing.T) {
	tri, err := NewPowerTriaxial(1, 1, 1, 1)
	tri = mustPot(t, tri, err)
	sph, err := NewPowerSpherical(1, 1)
	sph = mustPot(t, sph, err)

	x, y, z := 0.3, -0.4, 1.2
	if got, want := tri.Phi(x, y, z, 0), sph.Phi(x, y, z, 0); relErr(got, want) > 1e-10 {
		t.Errorf("Phi %.10g, want %.10g", got, want)
	}
	gx, _, gz := tri.Force(x, y, z, 0)
	wx, _, wz := sph.Force(x, y, z, 0)
	if relErr(gx, wx) > 1e-10 || relErr(gz, wz) > 1e-10 {
		t.Errorf("force (%g, %g), want (%g, %g)", gx, gz, wx, wz)
	}
}

func TestDoubleExponentialDisk(t *testing.T) {
	d, err := NewDoubleExponentialDisk(1, 1.0/3, 1.0/16)
	if err != nil {
		t.Fatal(err)
	}
	m := d.Mass()

	t.Run("far field", func(t *testing.T) {
		for _, pos := range [][2]float64{{10, 0}, {0, 10}} {
			r := math.Hypot(pos[0], pos[1])
			phi, _, _ := d.direct(pos[0], pos[1])
			if relErr(phi, -m/r) > 0.01 {
				t.Errorf("(R, z)=%v: Phi %.6g, monopole %.6g", pos, phi, -m/r)
			}
		}
	})

	t.Run("direct forces", func(t *testing.T) {
		R, z, h := 1.0, 0.3, 1e-4
		_, fR, fz := d.direct(R, z)
		pR1, _, _ := d.direct(R+h, z)
		pR0, _, _ := d.direct(R-h, z)
		pz1, _, _ := d.direct(R, z+h)
		pz0, _, _ := d.direct(R, z-h)
		if want := -(pR1 - pR0) / (2 * h); relErr(fR, want) > 1e-5 {
			t.Errorf("F_R %.8g, want %.8g", fR, want)
		}
		if want := -(pz1 - pz0) / (2 * h); relErr(fz, want) > 1e-5 {
			t.Errorf("F_z %.8g, want %.8g", fz, want)
		}
		_, _, fzBelow := d.direct(R, -z)
		if fzBelow != -fz {
			t.Errorf("F_z not odd in z: %g vs %g", fzBelow, fz)
		}
	})

	t.Run("table", func(t *testing.T) {
		for _, pos := range [][2]float64{{1, 0.3}, {0.4, -0.05}, {2.5, 1}} {
			want, _, _ := d.direct(pos[0], pos[1])
			if got := d.Phi(pos[0], 0, pos[1], 0); relErr(got, want) > 5e-3 {
				t.Errorf("(R, z)=%v: table %.6g, direct %.6g", pos, got, want)
			}
		}
	})
}

func TestSpiralArms(t *testing.T) {
	s, err := NewSpiralArms(2)
	if err != nil {
		t.Fatal(err)
	}
	// Two arms: rotating by pi maps the pattern onto itself.
	a := s.Phi(1.1, 0.3, 0.05, 0)
	b := s.Phi(-1.1, -0.3, 0.05, 0)
	if relErr(a, b) > 1e-12 {
		t.Errorf("Phi not two-fold symmetric: %g vs %g", a, b)
	}
	if got := s.Phi(0, 0, 0, 0); got != 0 {
		t.Errorf("Phi at the centre = %g", got)
	}
	if _, err := NewSpiralArms(0); !errors.Is(err, ErrDomain) {
		t.Errorf("expected ErrDomain, got %v", err)
	}
}

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"shell negative radius", func() error { _, err := NewSphericalShell(1, -1); return err }()},
		{"sphere zero radius", func() error { _, err := NewHomogeneousSphere(1, 0); return err }()},
		{"power alpha 3", func() error { _, err := NewPowerSpherical(1, 3); return err }()},
		{"cutoff alpha 2", func() error { _, err := NewPowerSphericalCutoff(1, 2, 1); return err }()},
		{"two power beta 2", func() error { _, err := NewTwoPowerSpherical(1, 1, 1, 2); return err }()},
		{"triaxial c 0", func() error { _, err := NewPowerTriaxial(1, 1, 1, 0); return err }()},
		{"disk zero height", func() error { _, err := NewDoubleExponentialDisk(1, 1, 0); return err }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrDomain) {
				t.Errorf("expected ErrDomain, got %v", tt.err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	mn, err := NewMiyamotoNagai(1, 3.0/8, 0.28/8)
	mn = mustPot(t, mn, err)
	p, err := Normalize(mn, 0.6)
	if err != nil {
		t.Fatal(err)
	}
	if got := Vc2(p, 1, 0); relErr(got, 0.6) > 1e-12 {
		t.Errorf("vc^2 at R0 = %g, want 0.6", got)
	}
}

func TestRotationCurveAdditivity(t *testing.T) {
	base, err := NewHomogeneousSphere(1, 1.25)
	base = mustPot(t, base, err)
	halo, err := NewNFW(6.665, 1)
	halo = mustPot(t, halo, err)
	sum := Combine(base, halo)

	radii := []float64{0.01, 0.3, 1, 2.5, 6}
	vb := RotationCurve(base, radii)
	vh := RotationCurve(halo, radii)
	vs := RotationCurve(sum, radii)
	for i := range radii {
		if want := vb[i]*vb[i] + vh[i]*vh[i]; relErr(vs[i]*vs[i], want) > 1e-12 {
			t.Errorf("R=%g: vc^2 %g, want %g", radii[i], vs[i]*vs[i], want)
		}
	}
}

func TestCombineFlattens(t *testing.T) {
	a, err := NewKepler(1)
	a = mustPot(t, a, err)
	b, err := NewPlummer(1, 1)
	b = mustPot(t, b, err)
	c, err := NewNFW(1, 1)
	c = mustPot(t, c, err)

	if got := Combine(a); got != a {
		t.Error("single component should be returned unchanged")
	}
	s, ok := Combine(Combine(a, b), c).(Sum)
	if !ok || len(s) != 3 {
		t.Fatalf("expected flat sum of 3, got %#v", s)
	}
	if s.Name() != "Kepler + Plummer + NFW" {
		t.Errorf("name %q", s.Name())
	}
}

func TestPhiGrid(t *testing.T) {
	p, err := NewPlummer(1, 1)
	p = mustPot(t, p, err)
	grid := PhiGrid(p, []float64{0, 1, 2}, []float64{-1, 0, 1}, 0, 0)
	if len(grid) != 3 || len(grid[0]) != 3 {
		t.Fatalf("grid shape %dx%d", len(grid), len(grid[0]))
	}
	if grid[1][0] != -1 {
		t.Errorf("Phi(0, 0) = %g", grid[1][0])
	}
	if grid[0][2] != grid[2][2] {
		t.Error("grid not symmetric in z")
	}
}
