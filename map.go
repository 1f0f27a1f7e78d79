package asyncmap

import (
	"context"
	"sync"
)

// Map applies fn to every element of items with at most limit transforms
// executing concurrently and returns the results in input order.
//
// Semantics:
//   - Results are written into a pre-allocated slice indexed by input
//     position; completion order never affects output order.
//   - On the first transform failure the engine stops admitting further items
//     but still joins every launched transform before returning, so no work
//     keeps running in the background after the call. The first error is
//     returned verbatim, not wrapped.
//   - External cancellation is observed at the admission gate and inside fn
//     (via the forwarded context); Map then joins launched work and returns
//     ctx's error.
//   - A nil items slice is treated as empty: Map returns (nil, nil) without
//     scheduling anything.
func Map[T, R any](
	ctx context.Context, items []T, fn Transform[T, R], limit int, opts ...Option,
) ([]R, error) {
	r, runCtx, err := newRun[T, R](ctx, fn, limit, opts)
	if err != nil {
		return nil, err
	}
	defer r.cancel()

	if len(items) == 0 {
		return nil, nil
	}

	results := make([]R, len(items))

	var (
		failOnce sync.Once
		firstErr error
	)

	for i := range items {
		if err := r.gate.Acquire(runCtx); err != nil {
			// Cancelled: externally, or by a failed transform. Launched work
			// is still joined below.
			break
		}
		r.inst.admitted.Add(1)
		r.inflight.Add(1)

		pos, item := i, items[i]
		go r.exec(runCtx, item, func(val R, err error) {
			if err != nil {
				failOnce.Do(func() { firstErr = err })
				return
			}
			results[pos] = val
		})
	}

	r.inflight.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
