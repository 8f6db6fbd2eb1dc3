package orbit

import (
	"context"
	"fmt"

	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/integrators"
	"github.com/san-kum/vipor/internal/potential"
	"github.com/san-kum/vipor/internal/units"
)

// Options select the integrator and sampling. Zero fields take the values
// of dynamo.DefaultConfig and the rk45 integrator.
type Options struct {
	Integrator string
	Config     dynamo.Config
}

func (o Options) resolve(years float64) (dynamo.Integrator, dynamo.Config, error) {
	cfg := dynamo.DefaultConfig()
	if o.Config.Samples > 0 {
		cfg = o.Config
	}
	cfg.Duration = units.GyrToNatural(years)

	name := o.Integrator
	if name == "" {
		name = "rk45"
	}
	integ, err := integrators.New(name)
	if err != nil {
		return nil, cfg, err
	}
	return integ, cfg, nil
}

// Integrate follows a particle from ic for years Gyr.
func Integrate(ctx context.Context, pot potential.Potential, ic InitialConditions, years float64, opts Options, metrics ...dynamo.Metric) (*Trajectory, *dynamo.Result, error) {
	if years < 0 {
		return nil, nil, fmt.Errorf("integration time %g Gyr: %w", years, dynamo.ErrParameterBounds)
	}
	integ, cfg, err := opts.resolve(years)
	if err != nil {
		return nil, nil, err
	}

	o := New(pot, integ)
	for _, m := range metrics {
		o.AddMetric(m)
	}
	res, err := o.Run(ctx, ic.State(), cfg)
	if err != nil {
		return nil, res, err
	}
	return NewTrajectory(res), res, nil
}
