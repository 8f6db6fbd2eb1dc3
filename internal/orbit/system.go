package orbit

import (
	"math"

	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/potential"
)

// System is a test particle in a potential. The state is
// (x, y, z, vx, vy, vz) in natural units.
type System struct {
	pot potential.Potential
}

func NewSystem(pot potential.Potential) *System {
	return &System{pot: pot}
}

func (s *System) Potential() potential.Potential { return s.pot }

func (s *System) StateDim() int { return 6 }

func (s *System) Derive(x dynamo.State, t float64) dynamo.State {
	fx, fy, fz := s.pot.Force(x[0], x[1], x[2], t)
	return dynamo.State{x[3], x[4], x[5], fx, fy, fz}
}

// Energy is the specific energy. It is conserved for static potentials.
func (s *System) Energy(x dynamo.State, t float64) float64 {
	return 0.5*(x[3]*x[3]+x[4]*x[4]+x[5]*x[5]) + s.pot.Phi(x[0], x[1], x[2], t)
}

// Lz is the specific angular momentum about the z axis.
func Lz(x dynamo.State) float64 {
	return x[0]*x[4] - x[1]*x[3]
}

func radius(x dynamo.State) float64 {
	return math.Sqrt(x[0]*x[0] + x[1]*x[1] + x[2]*x[2])
}
