// Package gate provides a counting admission gate bounding how many units of
// work may execute concurrently. A Gate is owned by a single invocation of the
// engine; it is not meant to be shared across unrelated calls.
package gate

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrInvalidCapacity is returned by New for a non-positive capacity.
var ErrInvalidCapacity = errors.New("gate: capacity must be positive")

// Gate limits concurrently executing work to a fixed capacity.
// Acquire and Release are safe for concurrent use from arbitrary goroutines.
type Gate struct {
	sem      *semaphore.Weighted
	held     atomic.Int64
	capacity int64
}

// New creates a gate issuing at most capacity slots.
func New(capacity int) (*Gate, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Gate{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: int64(capacity),
	}, nil
}

// Acquire blocks until a slot is free or ctx is done, in which case it returns
// ctx's error without consuming a slot.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	g.held.Add(1)
	return nil
}

// Release returns a previously acquired slot. Releasing more slots than were
// acquired is a programming error; excess releases are dropped rather than
// letting a cleanup path panic.
func (g *Gate) Release() {
	for {
		h := g.held.Load()
		if h <= 0 {
			return
		}
		if g.held.CompareAndSwap(h, h-1) {
			g.sem.Release(1)
			return
		}
	}
}

// Held reports the number of currently held slots.
func (g *Gate) Held() int { return int(g.held.Load()) }

// Capacity reports the gate's fixed capacity.
func (g *Gate) Capacity() int { return int(g.capacity) }
