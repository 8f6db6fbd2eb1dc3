package orbit

import (
	"fmt"

	"github.com/san-kum/vipor/internal/coords"
	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/units"
)

// InitialConditions are in galactocentric cylindrical coordinates: R and Z
// in kpc, Phi in radians and velocities in km/s.
type InitialConditions struct {
	R   float64 `yaml:"r" json:"r"`
	Z   float64 `yaml:"z" json:"z"`
	Phi float64 `yaml:"phi" json:"phi"`
	VR  float64 `yaml:"vr" json:"vr"`
	VT  float64 `yaml:"vt" json:"vt"`
	VZ  float64 `yaml:"vz" json:"vz"`
}

// Sun returns the solar position and velocity.
func Sun() InitialConditions {
	return InitialConditions{
		R:  units.R0Kpc,
		Z:  coords.SunZKpc,
		VR: -11.1,
		VT: 232.24,
		VZ: 7.25,
	}
}

func (ic InitialConditions) String() string {
	return fmt.Sprintf("R=%g kpc z=%g kpc phi=%g vR=%g vT=%g vz=%g km/s", ic.R, ic.Z, ic.Phi, ic.VR, ic.VT, ic.VZ)
}

// State converts to a Cartesian state in natural units.
func (ic InitialConditions) State() dynamo.State {
	R := units.KpcToNatural(ic.R)
	z := units.KpcToNatural(ic.Z)
	x, y, _ := coords.CylToRect(R, ic.Phi, z)
	vx, vy := coords.CylVelToRect(units.KmsToNatural(ic.VR), units.KmsToNatural(ic.VT), ic.Phi)
	return dynamo.State{x, y, z, vx, vy, units.KmsToNatural(ic.VZ)}
}
