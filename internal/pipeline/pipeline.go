package pipeline

import (
	"context"
	"sync"

	"tesscross-core/catalog"
	"tesscross-core/match"
	"tesscross-core/sector"
)

// Matcher is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Matcher interface {
	MatchOne(ctx context.Context, idx int, f catalog.FlareRecord, candidates sector.Set) ([]int, []match.Diagnostic)
}

// Config controls the matching pipeline.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// Result is one flare's outcome, tagged with its catalog index.
type Result struct {
	Index       int
	Matched     []int
	Diagnostics []match.Diagnostic
}

// ForEachFlare runs the matcher over every flare with cfg.Threads workers
// and calls visit once per flare, serialized in completion order (visit
// needs no locking). Flares are independent, so completion order is not
// catalog order; Result.Index identifies the flare. It returns the first
// error encountered (including context cancellation).
func ForEachFlare(
	ctx context.Context,
	cfg Config,
	flares []catalog.FlareRecord,
	candidates sector.Set,
	m Matcher,
	visit func(Result) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	jobs := make(chan int, cfg.Threads*2)
	results := make(chan Result, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-jobs:
					if !ok {
						return
					}
					matched, diags := m.MatchOne(ctx, idx, flares[idx], candidates)
					select {
					case results <- Result{Index: idx, Matched: matched, Diagnostics: diags}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for r := range results {
			if cerr != nil {
				continue
			}
			if err := visit(r); err != nil {
				cerr = err
			}
		}
	}()

	// Feed work
feed:
	for idx := range flares {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- idx:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return cerr
}
