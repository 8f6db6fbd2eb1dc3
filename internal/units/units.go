// Package units converts between physical quantities and the natural units
// the potential and orbit code work in: lengths in units of R0 = 8 kpc,
// velocities in units of V0 = 220 km/s and G = 1.
package units

import (
	"errors"
	"fmt"
	"math"
)

const (
	R0Kpc = 8.0
	V0Kms = 220.0

	// GKpcKms2PerMsun is Newton's constant in kpc (km/s)^2 / Msun.
	GKpcKms2PerMsun = 4.300917e-6

	// kpc per (km/s) expressed in Gyr.
	kpcPerKmsGyr = 0.9777922216807891
)

var ErrIncompatible = errors.New("units: incompatible unit")

// Scales of one natural unit.
var (
	TimeGyr         = R0Kpc / V0Kms * kpcPerKmsGyr
	MassMsun        = V0Kms * V0Kms * R0Kpc / GKpcKms2PerMsun
	DensityMsunKpc3 = MassMsun / (R0Kpc * R0Kpc * R0Kpc)
)

type Unit int

const (
	Natural Unit = iota
	Kpc
	KmPerS
	Gyr
	Msun
	MsunPerKpc3
	Rad
	Deg
)

var unitNames = map[Unit]string{
	Natural:     "",
	Kpc:         "kpc",
	KmPerS:      "km/s",
	Gyr:         "Gyr",
	Msun:        "Msun",
	MsunPerKpc3: "Msun/kpc^3",
	Rad:         "rad",
	Deg:         "deg",
}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Quantity is a value tagged with its unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

func Length(kpc float64) Quantity      { return Quantity{kpc, Kpc} }
func Velocity(kms float64) Quantity    { return Quantity{kms, KmPerS} }
func Time(gyr float64) Quantity        { return Quantity{gyr, Gyr} }
func Mass(msun float64) Quantity       { return Quantity{msun, Msun} }
func Density(rho float64) Quantity     { return Quantity{rho, MsunPerKpc3} }
func Angle(deg float64) Quantity       { return Quantity{deg, Deg} }
func Dimensionless(v float64) Quantity { return Quantity{v, Natural} }

func (q Quantity) String() string {
	if q.Unit == Natural {
		return fmt.Sprintf("%g", q.Value)
	}
	return fmt.Sprintf("%g %s", q.Value, q.Unit)
}

// Natural returns the value in natural units. Angles come back in radians.
func (q Quantity) Natural() (float64, error) {
	switch q.Unit {
	case Natural, Rad:
		return q.Value, nil
	case Kpc:
		return q.Value / R0Kpc, nil
	case KmPerS:
		return q.Value / V0Kms, nil
	case Gyr:
		return q.Value / TimeGyr, nil
	case Msun:
		return q.Value / MassMsun, nil
	case MsunPerKpc3:
		return q.Value / DensityMsunKpc3, nil
	case Deg:
		return q.Value * math.Pi / 180, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrIncompatible, q.Unit)
}

// In converts q to unit u. Both units must measure the same dimension.
func (q Quantity) In(u Unit) (Quantity, error) {
	if q.Unit == u {
		return q, nil
	}
	if dimension(q.Unit) != dimension(u) || dimension(u) == "" {
		return Quantity{}, fmt.Errorf("%w: %v to %v", ErrIncompatible, q.Unit, u)
	}
	v, err := q.Natural()
	if err != nil {
		return Quantity{}, err
	}
	return FromNatural(v, u)
}

func dimension(u Unit) string {
	switch u {
	case Rad, Deg:
		return "angle"
	case Kpc:
		return "length"
	case KmPerS:
		return "velocity"
	case Gyr:
		return "time"
	case Msun:
		return "mass"
	case MsunPerKpc3:
		return "density"
	}
	return ""
}

// FromNatural tags a natural-unit value with a physical unit.
func FromNatural(v float64, u Unit) (Quantity, error) {
	switch u {
	case Natural, Rad:
		return Quantity{v, u}, nil
	case Kpc:
		return Quantity{v * R0Kpc, u}, nil
	case KmPerS:
		return Quantity{v * V0Kms, u}, nil
	case Gyr:
		return Quantity{v * TimeGyr, u}, nil
	case Msun:
		return Quantity{v * MassMsun, u}, nil
	case MsunPerKpc3:
		return Quantity{v * DensityMsunKpc3, u}, nil
	case Deg:
		return Quantity{v * 180 / math.Pi, u}, nil
	}
	return Quantity{}, fmt.Errorf("%w: %v", ErrIncompatible, u)
}

// Shorthands for the hot paths where the unit is known statically.

func KpcToNatural(kpc float64) float64   { return kpc / R0Kpc }
func NaturalToKpc(v float64) float64     { return v * R0Kpc }
func KmsToNatural(kms float64) float64   { return kms / V0Kms }
func NaturalToKms(v float64) float64     { return v * V0Kms }
func GyrToNatural(gyr float64) float64   { return gyr / TimeGyr }
func NaturalToGyr(v float64) float64     { return v * TimeGyr }
func MsunToNatural(msun float64) float64 { return msun / MassMsun }
