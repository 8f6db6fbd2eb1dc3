package units

import (
	"errors"
	"math"
	"testing"
)

func TestScales(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"time", TimeGyr, 0.035556, 1e-5},
		{"mass", MassMsun, 9.0027e10, 1e7},
		{"14 Gyr", GyrToNatural(14), 393.74, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > tt.tol {
				t.Errorf("got %g, want %g", tt.got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, q := range []Quantity{Length(10), Velocity(232.24), Time(13.6), Mass(6e11), Density(1e7), Angle(45)} {
		v, err := q.Natural()
		if err != nil {
			t.Fatalf("%v: %v", q, err)
		}
		back, err := FromNatural(v, q.Unit)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(back.Value-q.Value) > 1e-9*math.Abs(q.Value) {
			t.Errorf("round trip of %v gave %v", q, back)
		}
	}
}

func TestIn(t *testing.T) {
	q, err := Angle(180).In(Rad)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(q.Value-math.Pi) > 1e-12 {
		t.Errorf("180 deg = %g rad", q.Value)
	}

	if _, err := Length(1).In(Gyr); !errors.Is(err, ErrIncompatible) {
		t.Errorf("expected ErrIncompatible, got %v", err)
	}
}

func TestUnknownUnit(t *testing.T) {
	if _, err := (Quantity{1, Unit(99)}).Natural(); !errors.Is(err, ErrIncompatible) {
		t.Errorf("expected ErrIncompatible, got %v", err)
	}
}
