package gate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNew_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100} {
		if _, err := New(capacity); !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("New(%d) error = %v, want ErrInvalidCapacity", capacity, err)
		}
	}
}

func TestAcquireRelease_Basic(t *testing.T) {
	g, err := New(2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("second Acquire failed: %v", err)
	}
	if got := g.Held(); got != 2 {
		t.Fatalf("Held = %d, want 2", got)
	}

	g.Release()
	g.Release()
	if got := g.Held(); got != 0 {
		t.Fatalf("Held after releases = %d, want 0", got)
	}
}

func TestAcquire_BlocksAtCapacity(t *testing.T) {
	g, err := New(1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	acquired := make(chan struct{})
	go func() {
		_ = g.Acquire(ctx)
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("Acquire succeeded while gate was at capacity")
	case <-time.After(30 * time.Millisecond):
	}

	g.Release()

	select {
	case <-acquired:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Acquire did not proceed after Release")
	}
}

func TestAcquire_CancelledContext(t *testing.T) {
	g, err := New(1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := g.Acquire(cctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Acquire on cancelled ctx = %v, want context.Canceled", err)
	}
	if got := g.Held(); got != 1 {
		t.Fatalf("Held = %d, want 1 (failed Acquire must not consume a slot)", got)
	}
}

func TestRelease_ExcessIsDropped(t *testing.T) {
	g, err := New(1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// No acquisition outstanding; these must be no-ops, not panics.
	g.Release()
	g.Release()
	if got := g.Held(); got != 0 {
		t.Fatalf("Held = %d, want 0", got)
	}

	// The gate must still function normally afterwards.
	ctx := context.Background()
	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("Acquire after excess releases failed: %v", err)
	}
	g.Release()
}

func TestGate_ConcurrentBound(t *testing.T) {
	const capacity = 3
	const workers = 20

	g, err := New(capacity)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	var (
		mu      sync.Mutex
		current int
		maxSeen int
		wg      sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := g.Acquire(ctx); err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			defer g.Release()

			mu.Lock()
			current++
			if current > maxSeen {
				maxSeen = current
			}
			mu.Unlock()

			time.Sleep(2 * time.Millisecond)

			mu.Lock()
			current--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen > capacity {
		t.Fatalf("observed %d concurrent holders, capacity is %d", maxSeen, capacity)
	}
}
