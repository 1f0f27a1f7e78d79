// Package metrics defines the observability seam of the engine: a minimal
// Provider interface the engine records into, a no-op default, and a basic
// in-memory implementation suitable for tests and lightweight applications.
package metrics

// Provider constructs instruments used to record measurements.
// Implementations must be safe for concurrent use. Instruments are looked up
// by name; repeated calls with the same name must return the same instrument.
//
// Keep this interface minimal and stable. New capabilities should be added as
// separate optional interfaces rather than by expanding this surface.
type Provider interface {
	Counter(name string) Counter
	UpDownCounter(name string) UpDownCounter
	Histogram(name string) Histogram
}

// Counter records monotonic counts.
// Methods must be safe for concurrent use.
type Counter interface {
	Add(n int64)
}

// UpDownCounter records values that can move up or down (e.g., current in-flight work).
// Methods must be safe for concurrent use.
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution of float64 measurements (e.g., durations in seconds).
// Methods must be safe for concurrent use.
type Histogram interface {
	Record(v float64)
}
