package dynamo

import (
	"context"
	"runtime"
	"sync"
)

// RunFunc integrates member idx of an ensemble.
type RunFunc func(ctx context.Context, idx int) (*Result, error)

// Ensemble runs independent integrations concurrently. Members share nothing
// but the context; the first error cancels the rest.
type Ensemble struct {
	numRuns int
	run     RunFunc
}

func NewEnsemble(numRuns int, run RunFunc) *Ensemble {
	return &Ensemble{numRuns: numRuns, run: run}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = e.run(ctx, idx)
			if errs[idx] != nil {
				cancel()
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// ParallelFor executes a function in parallel over a range [0, n)
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := runtime.GOMAXPROCS(0)
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
