package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/integrators"
	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/potential"
	"github.com/san-kum/vipor/internal/units"
)

type oscillator struct{}

func (oscillator) StateDim() int { return 2 }

func (oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

type growth struct{}

func (growth) StateDim() int { return 1 }

func (growth) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[0]}
}

func TestDominantPeriod(t *testing.T) {
	n, dt := 1024, 0.01
	series := func(period float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = 3 + math.Sin(2*math.Pi*float64(i)*dt/period)
		}
		return out
	}

	if got := DominantPeriod(series(1.28), dt); math.Abs(got-1.28) > 1e-6 {
		t.Errorf("on-bin period = %v, want 1.28", got)
	}
	if got := DominantPeriod(series(1.0), dt); math.Abs(got-1.0) > 0.05 {
		t.Errorf("off-bin period = %v, want 1.0 within 5%%", got)
	}

	flat := make([]float64, n)
	for i := range flat {
		flat[i] = 10
	}
	if got := DominantPeriod(flat, dt); got != 0 {
		t.Errorf("constant series period = %v, want 0", got)
	}
}

func TestPowerSpectrumRemovesMean(t *testing.T) {
	ps := PowerSpectrum([]float64{5, 5, 5, 5, 5, 5, 5, 5})
	for i, v := range ps {
		if v > 1e-12 {
			t.Fatalf("mode %d = %v, want 0", i, v)
		}
	}
	if PowerSpectrum([]float64{1}) != nil {
		t.Error("single sample should give no spectrum")
	}
}

func TestOrbitalPeriodsKepler(t *testing.T) {
	pot, err := potential.NewKepler(1)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("circular", func(t *testing.T) {
		tr, _, err := orbit.Integrate(context.Background(), pot, orbit.InitialConditions{R: 8, VT: 220}, 2, orbit.Options{})
		if err != nil {
			t.Fatal(err)
		}
		want := 2 * math.Pi * units.TimeGyr
		if got := OrbitalPeriods(tr).Azimuthal; math.Abs(got-want)/want > 1e-3 {
			t.Errorf("azimuthal period = %v Gyr, want %v", got, want)
		}
	})

	t.Run("eccentric", func(t *testing.T) {
		// Starts at apocentre with vT = 0.8 vc, so E = -0.68 and a = 1/1.36.
		tr, _, err := orbit.Integrate(context.Background(), pot, orbit.InitialConditions{R: 8, VT: 176}, 3, orbit.Options{})
		if err != nil {
			t.Fatal(err)
		}
		a := 1 / 1.36
		want := 2 * math.Pi * math.Pow(a, 1.5) * units.TimeGyr
		p := OrbitalPeriods(tr)
		if math.Abs(p.Radial-want)/want > 0.03 {
			t.Errorf("radial period = %v Gyr, want %v", p.Radial, want)
		}
		if p.Vertical != 0 {
			t.Errorf("planar orbit vertical period = %v, want 0", p.Vertical)
		}
	})
}

func TestLyapunovExponent(t *testing.T) {
	rk4 := integrators.NewRK4()

	if got := LyapunovExponent(growth{}, rk4, dynamo.State{1}, 0.01, 5, 1e-8); math.Abs(got-1) > 1e-3 {
		t.Errorf("exponential growth exponent = %v, want 1", got)
	}
	if got := LyapunovExponent(oscillator{}, rk4, dynamo.State{1, 0}, 0.01, 50, 1e-8); math.Abs(got) > 1e-3 {
		t.Errorf("oscillator exponent = %v, want 0", got)
	}

	spectrum := LyapunovSpectrum(oscillator{}, rk4, dynamo.State{1, 0}, 0.01, 50, 1e-8)
	if len(spectrum) != 2 {
		t.Fatalf("spectrum length = %d, want 2", len(spectrum))
	}
	for i, v := range spectrum {
		if math.Abs(v) > 1e-3 {
			t.Errorf("spectrum[%d] = %v, want 0", i, v)
		}
	}

	if got := LyapunovExponent(growth{}, rk4, dynamo.State{}, 0.01, 5, 1e-8); got != 0 {
		t.Errorf("empty state exponent = %v, want 0", got)
	}
}

func TestSection(t *testing.T) {
	tr := &orbit.Trajectory{
		Times: []float64{0, 1, 2, 3},
		States: []dynamo.State{
			{1, 0, -1, 0, 0, 0},
			{2, 0, 1, 0, 0, 0},
			{3, 0, -1, 0, 0, 0},
			{4, 0, 1, 0, 0, 0},
		},
	}
	sec := Section(tr)
	if len(sec.Points) != 2 {
		t.Fatalf("crossings = %d, want 2", len(sec.Points))
	}
	wantR := []float64{12, 28}
	wantT := []float64{0.5, 2.5}
	for i := range wantR {
		if math.Abs(sec.Points[i].X-wantR[i]) > 1e-9 {
			t.Errorf("crossing %d R = %v, want %v", i, sec.Points[i].X, wantR[i])
		}
		if math.Abs(sec.Times[i]-wantT[i]) > 1e-9 {
			t.Errorf("crossing %d time = %v, want %v", i, sec.Times[i], wantT[i])
		}
	}

	if out := SectionToASCII(&SurfaceOfSection{}, 20, 10); out != "No midplane crossings" {
		t.Errorf("empty section text = %q", out)
	}
	out := SectionToASCII(sec, 20, 10)
	if strings.Count(out, "\n") != 10 || !strings.Contains(out, "•") {
		t.Errorf("section plot malformed:\n%s", out)
	}
}

func TestSectionSweep(t *testing.T) {
	params := []float64{5, 10}
	build := func(p float64) (potential.Potential, error) {
		return potential.NewPlummer(1, p/units.R0Kpc)
	}
	ic := orbit.InitialConditions{R: 10, Z: 2, VT: 150}
	opts := orbit.Options{Config: dynamo.DefaultConfig()}
	opts.Config.Samples = 501

	points, err := SectionSweep(context.Background(), params, build, ic, 2, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != len(params) {
		t.Fatalf("points = %d, want %d", len(points), len(params))
	}
	for _, p := range points {
		if len(p.Radii) == 0 {
			t.Errorf("parameter %v: no midplane crossings", p.Param)
		}
	}
	if SweepToASCII(points, 30, 8) == "" {
		t.Error("empty sweep plot")
	}

	if _, err := SectionSweep(context.Background(), []float64{-1}, build, ic, 2, opts); err == nil {
		t.Error("expected a domain error for a negative scale")
	}
}
