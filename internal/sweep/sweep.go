// Package sweep runs batches of independent simulations: seed
// replicates for noise averaging and parameter grids for exploring the
// force-law space.
package sweep

import (
	"context"
	"sync"

	"github.com/san-kum/cellsim/internal/engine"
)

// RunnerFactory builds a fresh runner and initial ensemble for one run.
// Each replicate gets its own runner so metric state is never shared
// across goroutines.
type RunnerFactory func() (*engine.Runner, engine.Ensemble, error)

// Replicates executes numRuns copies of the same simulation with
// consecutive seeds starting at seedStart.
type Replicates struct {
	build     RunnerFactory
	numRuns   int
	seedStart int64
}

func NewReplicates(build RunnerFactory, numRuns int, seedStart int64) *Replicates {
	return &Replicates{build: build, numRuns: numRuns, seedStart: seedStart}
}

// Run launches all replicates concurrently and waits for them. The
// first error encountered is returned; results are ordered by seed.
func (r *Replicates) Run(ctx context.Context, cfg engine.Config) ([]*engine.Result, error) {
	results := make([]*engine.Result, r.numRuns)
	errs := make([]error, r.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < r.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = r.seedStart + int64(idx)

			runner, ens, err := r.build()
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = runner.Run(ctx, ens, cfgCopy)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// MeanMetric averages a named metric over a replicate batch. Runs that
// did not record the metric contribute nothing.
func MeanMetric(results []*engine.Result, name string) float64 {
	sum := 0.0
	n := 0
	for _, res := range results {
		if v, ok := res.Metrics[name]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
