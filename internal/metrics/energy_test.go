package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/vipor/internal/dynamo"
)

// harmonic is a 3D isotropic oscillator with unit frequency.
type harmonic struct{}

func (h *harmonic) StateDim() int { return 6 }

func (h *harmonic) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[3], x[4], x[5], -x[0], -x[1], -x[2]}
}

func (h *harmonic) Energy(x dynamo.State, t float64) float64 {
	e := 0.0
	for _, v := range x {
		e += 0.5 * v * v
	}
	return e
}

func TestEnergy(t *testing.T) {
	m := NewEnergy(&harmonic{})

	x := dynamo.State{1, 0, 0, 0, 1, 0}
	m.Observe(x, 0)
	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("expected energy 1, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(&harmonic{})
	m.Observe(dynamo.State{1, 0, 0, 0, 0, 0}, 0)
	m.Observe(dynamo.State{1.1, 0, 0, 0, 0, 0}, 1)
	m.Observe(dynamo.State{1, 0, 0, 0, 0, 0}, 2)

	if want := 0.21; math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected max drift %g, got %g", want, m.Value())
	}
}

func TestLzDrift(t *testing.T) {
	m := NewLzDrift()
	m.Observe(dynamo.State{1, 0, 0, 0, 1, 0}, 0)
	m.Observe(dynamo.State{0, 1, 0, -1, 0, 0}, 1)
	if m.Value() > 1e-12 {
		t.Errorf("rotation should conserve Lz, drift %g", m.Value())
	}
	m.Observe(dynamo.State{0, 1, 0, -0.5, 0, 0}, 2)
	if math.Abs(m.Value()-0.5) > 1e-9 {
		t.Errorf("expected drift 0.5, got %g", m.Value())
	}
}

func TestBound(t *testing.T) {
	tests := []struct {
		name   string
		states []dynamo.State
		want   float64
	}{
		{"empty", nil, 1},
		{"inside", []dynamo.State{{1, 0, 0, 0, 0, 0}, {0, 2, 0, 0, 0, 0}}, 1},
		{"escaping", []dynamo.State{{1, 0, 0, 0, 0, 0}, {0, 0, 20, 0, 0, 0}}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewBound(10)
			for i, x := range tt.states {
				m.Observe(x, float64(i))
			}
			if m.Value() != tt.want {
				t.Errorf("got %g, want %g", m.Value(), tt.want)
			}
		})
	}
}

func TestStandard(t *testing.T) {
	ms := Standard(&harmonic{}, 10)
	names := map[string]bool{}
	for _, m := range ms {
		names[m.Name()] = true
	}
	for _, want := range []string{"energy", "energy_drift", "lz_drift", "bound_fraction", "max_radius"} {
		if !names[want] {
			t.Errorf("missing metric %s", want)
		}
	}
}
