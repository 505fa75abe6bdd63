// internal/batch/batch.go
package batch

import (
	"context"
	"sync"
)

// Config controls the worker pool.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// Outcome is the result of processing one input.
type Outcome[T any] struct {
	Index int // position in the input list
	Path  string
	Value T
	Err   error
}

// Run calls work for every path on cfg.Threads goroutines and passes each
// outcome to visit, serially, in completion order. It returns the first
// visit error, or ctx.Err() if the context was cancelled before all paths
// were processed.
func Run[T any](
	ctx context.Context,
	cfg Config,
	paths []string,
	work func(ctx context.Context, path string) (T, error),
	visit func(Outcome[T]) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Threads > len(paths) && len(paths) > 0 {
		cfg.Threads = len(paths)
	}

	type job struct {
		idx  int
		path string
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan Outcome[T], cfg.Threads*2)

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
				case j, ok := <-jobs:
					if !ok {
						return
					}
					v, err := work(ctx, j.path)
					select {
					case results <- Outcome[T]{Index: j.idx, Path: j.path, Value: v, Err: err}:
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
		for o := range results {
			if cerr != nil {
				continue
			}
			cerr = visit(o)
		}
	}()

	// Feed work
feed:
	for i, p := range paths {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: i, path: p}:
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
