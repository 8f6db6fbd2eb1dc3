package metrics

import "github.com/san-kum/vipor/internal/dynamo"

// Standard returns the metrics recorded for every rendered orbit. The bound
// threshold is in natural units.
func Standard(sys dynamo.System, boundRadius float64) []dynamo.Metric {
	out := []dynamo.Metric{
		NewEnergyDrift(sys),
		NewLzDrift(),
		NewBound(boundRadius),
		NewMaxRadius(),
	}
	if h, ok := sys.(dynamo.Hamiltonian); ok {
		out = append(out, NewEnergy(h))
	}
	return out
}
