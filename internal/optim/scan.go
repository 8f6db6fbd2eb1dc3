package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/vipor/internal/catalog"
	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/potential"
)

// SliderRange lists the values a slider can take, thinned to at most
// maxPoints while keeping both ends.
func SliderRange(p catalog.Param, maxPoints int) []float64 {
	n := int(math.Floor((p.Max-p.Min)/p.Step+1e-9)) + 1
	if maxPoints < 2 {
		maxPoints = 2
	}
	stride := 1
	if n > maxPoints {
		stride = int(math.Ceil(float64(n-1) / float64(maxPoints-1)))
	}

	vals := make([]float64, 0, maxPoints)
	for i := 0; i < n; i += stride {
		vals = append(vals, p.Min+float64(i)*p.Step)
	}
	if last := p.Min + float64(n-1)*p.Step; vals[len(vals)-1] != last {
		vals = append(vals, last)
	}
	return vals
}

// ScanResult summarizes a domain scan of one model.
type ScanResult struct {
	Spec        catalog.Spec
	Evaluations []Evaluation
	// Best minimizes the relative energy drift of the probe orbit.
	Best      []float64
	BestDrift float64
}

// InDomain counts evaluations whose model could be built and integrated.
func (s *ScanResult) InDomain() int {
	n := 0
	for _, e := range s.Evaluations {
		if e.Err == nil {
			n++
		}
	}
	return n
}

// OutOfDomain counts evaluations rejected with potential.ErrDomain.
func (s *ScanResult) OutOfDomain() int {
	n := 0
	for _, e := range s.Evaluations {
		if errors.Is(e.Err, potential.ErrDomain) {
			n++
		}
	}
	return n
}

// ScanDomain builds the model at every slider combination and integrates
// the probe orbit in each one that builds.
func ScanDomain(ctx context.Context, model string, maxPoints int, probe orbit.InitialConditions, years float64, opts orbit.Options) (*ScanResult, error) {
	spec, err := catalog.Lookup(model)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(spec.Params))
	ranges := make([][]float64, len(spec.Params))
	for i, p := range spec.Params {
		names[i] = p.Symbol
		ranges[i] = SliderRange(p, maxPoints)
	}

	objective := func(ctx context.Context, values []float64) (float64, error) {
		pot, err := catalog.Build(model, values, catalog.Options{})
		if err != nil {
			return 0, err
		}
		tr, _, err := orbit.Integrate(ctx, pot, probe, years, opts)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			return 0, err
		}
		return relativeDrift(tr.Energy(pot)), nil
	}

	best, bestVal, evals, err := NewGridSearch(names, ranges).Search(ctx, objective)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", model, err)
	}
	return &ScanResult{Spec: spec, Evaluations: evals, Best: best, BestDrift: bestVal}, nil
}

func relativeDrift(energy []float64) float64 {
	if len(energy) == 0 {
		return 0
	}
	e0 := energy[0]
	worst := 0.0
	for _, e := range energy {
		worst = math.Max(worst, math.Abs(e-e0))
	}
	if e0 != 0 {
		worst /= math.Abs(e0)
	}
	return worst
}
