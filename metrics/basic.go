package metrics

import (
	"math"
	"sync"
	"sync/atomic"
)

// BasicProvider is a simple in-memory implementation of Provider.
// It is concurrency-safe and intended for tests, examples, and lightweight
// applications that want to inspect engine activity without an external
// metrics backend. Instruments are created on demand by name and reused.
type BasicProvider struct {
	mu         sync.RWMutex
	counters   map[string]*BasicCounter
	updowns    map[string]*BasicUpDownCounter
	histograms map[string]*BasicHistogram
}

// NewBasicProvider constructs a new BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		counters:   make(map[string]*BasicCounter),
		updowns:    make(map[string]*BasicUpDownCounter),
		histograms: make(map[string]*BasicHistogram),
	}
}

// Counter returns the monotonic counter registered under name, creating it once.
func (p *BasicProvider) Counter(name string) Counter {
	p.mu.RLock()
	c, ok := p.counters[name]
	p.mu.RUnlock()
	if ok {
		return c
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok = p.counters[name]; ok {
		return c
	}
	c = &BasicCounter{}
	p.counters[name] = c
	return c
}

// UpDownCounter returns the up/down counter registered under name, creating it once.
func (p *BasicProvider) UpDownCounter(name string) UpDownCounter {
	p.mu.RLock()
	u, ok := p.updowns[name]
	p.mu.RUnlock()
	if ok {
		return u
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if u, ok = p.updowns[name]; ok {
		return u
	}
	u = &BasicUpDownCounter{}
	p.updowns[name] = u
	return u
}

// Histogram returns the histogram registered under name, creating it once.
func (p *BasicProvider) Histogram(name string) Histogram {
	p.mu.RLock()
	h, ok := p.histograms[name]
	p.mu.RUnlock()
	if ok {
		return h
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok = p.histograms[name]; ok {
		return h
	}
	h = newBasicHistogram()
	p.histograms[name] = h
	return h
}

// BasicCounter is an atomic monotonic counter.
type BasicCounter struct {
	v atomic.Int64
}

// Add increments the counter. Negative increments are ignored to keep the
// counter monotonic.
func (c *BasicCounter) Add(n int64) {
	if n < 0 {
		return
	}
	c.v.Add(n)
}

// Snapshot returns the current counter value.
func (c *BasicCounter) Snapshot() int64 { return c.v.Load() }

// BasicUpDownCounter is an atomic counter that may move in both directions.
// It additionally tracks the maximum value observed, which makes it useful for
// asserting concurrency bounds in tests.
type BasicUpDownCounter struct {
	mu  sync.Mutex
	v   int64
	max int64
}

// Add applies the delta.
func (u *BasicUpDownCounter) Add(n int64) {
	u.mu.Lock()
	u.v += n
	if u.v > u.max {
		u.max = u.v
	}
	u.mu.Unlock()
}

// Snapshot returns the current value and the maximum value observed so far.
func (u *BasicUpDownCounter) Snapshot() (current, max int64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.v, u.max
}

// BasicHistogram records count, sum, min, and max of observed measurements.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

func newBasicHistogram() *BasicHistogram {
	return &BasicHistogram{min: math.Inf(1), max: math.Inf(-1)}
}

// Record adds one measurement.
func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	h.count++
	h.sum += v
	if v < h.min {
		h.min = v
	}
	if v > h.max {
		h.max = v
	}
	h.mu.Unlock()
}

// HistogramSnapshot is an immutable copy of a histogram's state.
type HistogramSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
}

// Snapshot returns a copy of the histogram's current state.
// Min and Max are +Inf/-Inf respectively while Count is zero.
func (h *BasicHistogram) Snapshot() HistogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HistogramSnapshot{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
}
