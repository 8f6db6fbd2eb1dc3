package orbit

import (
	"context"
	"math/rand"
	"time"

	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/potential"
)

// RandomRadii draws n starting radii uniformly in [0, maxR) kpc. A zero seed
// draws from the clock.
func RandomRadii(n int, maxR float64, seed int64) []float64 {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	radii := make([]float64, n)
	for i := range radii {
		radii[i] = rng.Float64() * maxR
	}
	return radii
}

// Member is one orbit of an ensemble.
type Member struct {
	Initial    InitialConditions
	Trajectory *Trajectory
}

// IntegrateEnsemble integrates one orbit per initial condition
// concurrently.
func IntegrateEnsemble(ctx context.Context, pot potential.Potential, ics []InitialConditions, years float64, opts Options) ([]Member, error) {
	trajectories := make([]*Trajectory, len(ics))
	ens := dynamo.NewEnsemble(len(ics), func(ctx context.Context, idx int) (*dynamo.Result, error) {
		tr, res, err := Integrate(ctx, pot, ics[idx], years, opts)
		trajectories[idx] = tr
		return res, err
	})
	if _, err := ens.Run(ctx); err != nil {
		return nil, err
	}

	members := make([]Member, len(ics))
	for i := range ics {
		members[i] = Member{Initial: ics[i], Trajectory: trajectories[i]}
	}
	return members, nil
}
