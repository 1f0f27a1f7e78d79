package asyncmap

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"
)

// MapStream applies fn to every element of items with at most limit
// transforms executing concurrently and returns a lazy sequence that yields
// results in input order, each as soon as it is both complete and next in
// line. Invalid arguments are reported synchronously; nothing is scheduled
// until the returned sequence is iterated.
//
// Semantics:
//   - Dispatch runs as an independent producer: it pulls items, acquires an
//     admission slot, enqueues a pending-result handle, and launches the
//     transform. The handle channel's capacity (limit × WithBufferMultiplier)
//     bounds how far dispatch may run ahead of consumption.
//   - A transform failure is yielded as (zero, err) exactly at the failing
//     item's position; results at earlier positions are unaffected and have
//     already been yielded. The error stops both iteration and admission.
//   - Cancellation of ctx is yielded as (zero, ctx.Err()) at the current
//     await point.
//   - Breaking out of the range loop tears the engine down before the loop
//     exits: admission stops, the producer is joined, then all launched
//     transforms are joined.
//   - The sequence is forward-only and single-use; iterating it a second time
//     panics.
func MapStream[T, R any](
	ctx context.Context, items iter.Seq[T], fn Transform[T, R], limit int, opts ...Option,
) (iter.Seq2[R, error], error) {
	if items == nil {
		return nil, ErrNilInput
	}
	r, runCtx, err := newRun[T, R](ctx, fn, limit, opts)
	if err != nil {
		return nil, err
	}

	handles := make(chan *handle[R], channelCapacity(limit, r.cfg.bufferMultiplier))

	var (
		producer sync.WaitGroup
		// admitErr carries external cancellation observed by the producer;
		// it stays nil when the trip was internal (transform failure or
		// consumer break), because those surface elsewhere or not at all.
		admitErr error
		consumed atomic.Bool
	)

	dispatch := func() {
		defer producer.Done()
		defer close(handles)

		for item := range items {
			if err := r.gate.Acquire(runCtx); err != nil {
				admitErr = ctx.Err()
				return
			}
			r.inst.admitted.Add(1)

			h := newHandle[R]()
			// Enqueue before launching so every launched transform has its
			// handle delivered; a failure can then never vanish between
			// dispatch and consumption.
			select {
			case handles <- h:
			case <-runCtx.Done():
				r.gate.Release()
				admitErr = ctx.Err()
				return
			}

			r.inflight.Add(1)
			go r.exec(runCtx, item, h.resolve)
		}
	}

	seq := func(yield func(R, error) bool) {
		if !consumed.CompareAndSwap(false, true) {
			panic(Namespace + ": stream iterated more than once")
		}

		producer.Add(1)
		go dispatch()

		defer func() {
			// Teardown order matters: stop admission first, then join the
			// producer so nothing new can launch, then join in-flight work
			// so no transform can outlive the loop or touch the gate after
			// we return.
			r.cancel()
			producer.Wait()
			r.inflight.Wait()
		}()

		var zero R
		for {
			var (
				h  *handle[R]
				ok bool
			)
			select {
			case h, ok = <-handles:
			case <-ctx.Done():
				yield(zero, ctx.Err())
				return
			}
			if !ok {
				break
			}

			select {
			case <-h.done:
			case <-ctx.Done():
				yield(zero, ctx.Err())
				return
			}
			if h.err != nil {
				yield(zero, h.err)
				return
			}
			if !yield(h.val, nil) {
				return
			}
		}
		if admitErr != nil {
			yield(zero, admitErr)
		}
	}
	return seq, nil
}
