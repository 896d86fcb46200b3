package sim

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/san-kum/powerpendulum/internal/config"
)

// Ensemble runs independent simulations of one config side by side, each
// with its own seed.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
	log       logr.Logger

	// Metrics builds a fresh metric set for each run. Metrics carry state,
	// so runs never share instances.
	Metrics func() []Metric
}

// NewEnsemble seeds run i with seedStart+i. A zero seedStart is replaced
// by the current time, so every run still gets an explicit seed.
func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64, log logr.Logger) *Ensemble {
	if seedStart == 0 {
		seedStart = time.Now().UnixNano()
	}
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, log: log}
}

// Seed returns the seed of run i.
func (e *Ensemble) Seed(i int) int64 { return e.seedStart + int64(i) }

// Run returns one result per seed, in seed order. The first error wins;
// results of runs that failed are still filled in as far as they got.
func (e *Ensemble) Run(ctx context.Context, ticks int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := *e.cfg
			cfgCopy.Seed = e.Seed(idx)

			s, err := New(&cfgCopy, e.log.WithValues("run", idx))
			if err != nil {
				errs[idx] = err
				return
			}
			if e.Metrics != nil {
				for _, m := range e.Metrics() {
					s.AddMetric(m)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, ticks)
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
