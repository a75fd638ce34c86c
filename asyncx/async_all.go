package asyncx

import (
	"context"
	"sync"
)

// AsyncAll runs fn for every item concurrently and returns the results in
// item order. The first error wins; the other calls still run to completion.
func AsyncAll[T any, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	type outcome struct {
		index  int
		result R
		err    error
	}

	outcomes := make(chan outcome, len(items))
	for i, item := range items {
		go func(i int, item T) {
			result, err := fn(ctx, item)
			outcomes <- outcome{index: i, result: result, err: err}
		}(i, item)
	}

	collected := make([]R, len(items))
	for range items {
		select {
		case o := <-outcomes:
			if o.err != nil {
				return nil, o.err
			}
			collected[o.index] = o.result
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return collected, nil
}

// MapLimit calls fn for every item with at most limit calls in flight and
// returns the results in item order. fn must not fail; encode failures in R.
func MapLimit[T any, R any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, item T) R) []R {
	if limit <= 0 {
		limit = 1
	}

	results := make([]R, len(items))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, item := range items {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, item T) {
			defer func() {
				<-sem
				wg.Done()
			}()
			results[i] = fn(ctx, item)
		}(i, item)
	}

	wg.Wait()
	return results
}
