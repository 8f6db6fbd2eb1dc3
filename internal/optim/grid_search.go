package optim

import (
	"context"
	"errors"
	"math"
)

// Evaluation is one grid point. Err is set when the objective rejected the
// point.
type Evaluation struct {
	Params []float64
	Value  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

func (g *GridSearch) Names() []string { return g.paramNames }

// Search evaluates objective at every point of the grid and returns the
// point with the smallest value together with every evaluation in grid
// order. Points where the objective fails are recorded and skipped. If no
// point succeeds, best is nil and bestVal is +Inf.
func (g *GridSearch) Search(
	ctx context.Context,
	objective func(ctx context.Context, params []float64) (float64, error),
) (best []float64, bestVal float64, evals []Evaluation, err error) {
	bestVal = math.Inf(1)
	err = g.searchRecursive(ctx, 0, make([]float64, 0, len(g.ranges)), objective, &best, &bestVal, &evals)
	return best, bestVal, evals, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current []float64,
	objective func(context.Context, []float64) (float64, error),
	best *[]float64,
	bestVal *float64,
	evals *[]Evaluation,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.ranges) {
		params := append([]float64(nil), current...)
		val, err := objective(ctx, params)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		*evals = append(*evals, Evaluation{Params: params, Value: val, Err: err})
		if err == nil && val < *bestVal {
			*bestVal = val
			*best = params
		}
		return nil
	}

	for _, val := range g.ranges[depth] {
		if err := g.searchRecursive(ctx, depth+1, append(current, val), objective, best, bestVal, evals); err != nil {
			return err
		}
	}
	return nil
}
