package asyncmap

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ygrebnov/asyncmap/gate"
	"github.com/ygrebnov/asyncmap/metrics"
)

// instruments bundles the engine's metric handles. All of them are cheap
// no-ops unless WithMetrics installs a real provider.
type instruments struct {
	admitted  metrics.Counter
	executing metrics.UpDownCounter
	duration  metrics.Histogram
	failures  metrics.Counter
}

func newInstruments(p metrics.Provider) instruments {
	return instruments{
		admitted:  p.Counter("asyncmap_items_admitted_total"),
		executing: p.UpDownCounter("asyncmap_transforms_executing"),
		duration:  p.Histogram("asyncmap_transform_duration_seconds"),
		failures:  p.Counter("asyncmap_transform_errors_total"),
	}
}

// run owns the shared state of one invocation: the admission gate, the derived
// cancellation context's trip function, and the in-flight join group. A run is
// single-use and must not be shared across unrelated calls.
type run[T, R any] struct {
	cfg      config
	fn       Transform[T, R]
	gate     *gate.Gate
	cancel   context.CancelFunc
	inflight sync.WaitGroup
	inst     instruments
}

// newRun validates arguments, builds the configuration, and derives the shared
// cancellation context. All validation failures happen here, before any work
// is scheduled.
func newRun[T, R any](
	ctx context.Context, fn Transform[T, R], limit int, opts []Option,
) (*run[T, R], context.Context, error) {
	if fn == nil {
		return nil, nil, ErrNilTransform
	}
	if limit <= 0 {
		return nil, nil, ErrInvalidLimit
	}
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	g, err := gate.New(limit)
	if err != nil {
		return nil, nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	r := &run[T, R]{
		cfg:    cfg,
		fn:     fn,
		gate:   g,
		cancel: cancel,
		inst:   newInstruments(cfg.metrics),
	}
	return r, runCtx, nil
}

// exec runs the transform for one admitted item and delivers its outcome.
// The admission slot is released and the join group decremented on every exit
// path, including a transform panic. On failure it trips the shared
// cancellation context so no further items are admitted; already-running
// transforms are left to finish or honor the context themselves.
func (r *run[T, R]) exec(ctx context.Context, item T, deliver func(R, error)) {
	defer r.inflight.Done()
	defer r.gate.Release()

	r.inst.executing.Add(1)
	defer r.inst.executing.Add(-1)

	var (
		val R
		err error
	)
	start := time.Now()
	func() {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("%w: %v", ErrTransformPanicked, p)
			}
		}()
		val, err = r.fn(ctx, item)
	}()
	r.inst.duration.Record(time.Since(start).Seconds())

	if err != nil {
		r.inst.failures.Add(1)
		r.cancel()
	}
	deliver(val, err)
}

// channelCapacity computes limit*multiplier for the ordering channel,
// clamping instead of wrapping when the product overflows.
func channelCapacity(limit, multiplier int) int {
	c := limit * multiplier
	if c/multiplier != limit {
		return math.MaxInt32
	}
	return c
}
