package orbit

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/potential"
)

// Orbit integrates a test particle and reports it at uniformly spaced
// sample times.
type Orbit struct {
	sys        *System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

func New(pot potential.Potential, integrator dynamo.Integrator) *Orbit {
	return &Orbit{
		sys:        NewSystem(pot),
		integrator: integrator,
	}
}

func (o *Orbit) AddMetric(m dynamo.Metric)     { o.metrics = append(o.metrics, m) }
func (o *Orbit) AddObserver(x dynamo.Observer) { o.observers = append(o.observers, x) }

func (o *Orbit) System() *System { return o.sys }

// Run integrates from x0 over [0, cfg.Duration] in natural time units.
func (o *Orbit) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != o.sys.StateDim() {
		return nil, fmt.Errorf("state has %d components: %w", len(x0), dynamo.ErrDimensionMismatch)
	}

	times := make([]float64, cfg.Samples)
	floats.Span(times, 0, cfg.Duration)

	result := &dynamo.Result{
		States:  make([]dynamo.State, 0, cfg.Samples),
		Times:   times,
		Metrics: make(map[string]float64),
	}
	for _, m := range o.metrics {
		m.Reset()
	}

	x := x0.Clone()
	dt := cfg.Dt
	e0 := o.sys.Energy(x, 0)

	for i, t := range times {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %v", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		if i > 0 {
			var err error
			x, dt, err = o.advance(x, times[i-1], t, dt, cfg, &result.StepsTaken)
			if err != nil {
				return result, err
			}
		}

		result.States = append(result.States, x.Clone())
		for _, m := range o.metrics {
			m.Observe(x, t)
		}
		for _, obs := range o.observers {
			obs.OnStep(x, t)
		}
	}

	if e0 != 0 {
		result.EnergyDrift = math.Abs(o.sys.Energy(x, cfg.Duration)-e0) / math.Abs(e0)
	}
	for _, m := range o.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// advance moves x from t0 to t1 and returns the step size to try next.
func (o *Orbit) advance(x dynamo.State, t0, t1, dt float64, cfg dynamo.Config, steps *int) (dynamo.State, float64, error) {
	adaptive, ok := o.integrator.(dynamo.AdaptiveIntegrator)
	if !cfg.Adaptive || !ok {
		n := int(math.Ceil((t1 - t0) / cfg.Dt))
		if n < 1 {
			n = 1
		}
		h := (t1 - t0) / float64(n)
		for k := 0; k < n; k++ {
			x = o.integrator.Step(o.sys, x, t0+float64(k)*h, h)
			*steps++
			if cfg.ValidateState && !x.IsValid() {
				return x, dt, &dynamo.SimulationError{Step: *steps, Time: t0 + float64(k+1)*h, State: x, Wrapped: dynamo.ErrInvalidState}
			}
		}
		return x, dt, nil
	}

	t := t0
	for t < t1 {
		if *steps >= cfg.MaxSteps {
			return x, dt, &dynamo.SimulationError{Step: *steps, Time: t, State: x, Wrapped: dynamo.ErrTooManySteps}
		}
		h := math.Min(dt, t1-t)
		next, dtNew, err := adaptive.StepAdaptive(o.sys, x, t, h, cfg.Tolerance)
		*steps++
		if errors.Is(err, dynamo.ErrStepRejected) {
			dt = dtNew
			if dt < cfg.MinDt {
				return x, dt, &dynamo.SimulationError{Step: *steps, Time: t, State: x, Wrapped: dynamo.ErrStepTooSmall}
			}
			continue
		}
		if err != nil {
			return x, dt, &dynamo.SimulationError{Step: *steps, Time: t, State: x, Wrapped: err}
		}
		if cfg.ValidateState && !next.IsValid() {
			return x, dt, &dynamo.SimulationError{Step: *steps, Time: t + h, State: next, Wrapped: dynamo.ErrInvalidState}
		}
		x = next
		t += h
		// A step shortened to land on the sample does not say much about
		// the next one.
		if h == dt || dtNew < dt {
			dt = dtNew
		}
	}
	return x, dt, nil
}

func validateConfig(cfg dynamo.Config) error {
	switch {
	case cfg.Samples < 2:
		return fmt.Errorf("need at least 2 samples, got %d: %w", cfg.Samples, dynamo.ErrParameterBounds)
	case cfg.Duration < 0 || math.IsNaN(cfg.Duration):
		return fmt.Errorf("duration must be non-negative, got %g: %w", cfg.Duration, dynamo.ErrParameterBounds)
	case cfg.Dt <= 0:
		return fmt.Errorf("dt must be positive, got %g: %w", cfg.Dt, dynamo.ErrParameterBounds)
	case cfg.Adaptive && cfg.Tolerance <= 0:
		return fmt.Errorf("tolerance must be positive for adaptive stepping: %w", dynamo.ErrParameterBounds)
	case cfg.Adaptive && cfg.MaxSteps <= 0:
		return fmt.Errorf("max steps must be positive for adaptive stepping: %w", dynamo.ErrParameterBounds)
	}
	return nil
}
