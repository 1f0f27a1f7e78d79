package asyncmap

import "context"

// Transform is the canonical per-item function shape used throughout the
// package. It always receives the engine's cancellation context; transforms
// that block should honor it.
type Transform[T, R any] func(ctx context.Context, item T) (R, error)

// Apply is the result-free counterpart of Transform, used by ForEach and
// ForEachStream.
type Apply[T any] func(ctx context.Context, item T) error

// Plain adapts a context-unaware function to Transform. The adapted transform
// cannot observe cancellation itself; only the engine's own suspension points
// (admission, channel write, result await) react to it.
func Plain[T, R any](fn func(T) (R, error)) Transform[T, R] {
	if fn == nil {
		return nil
	}
	return func(_ context.Context, item T) (R, error) { return fn(item) }
}

// PlainApply adapts a context-unaware function to Apply. See Plain for the
// cancellation caveat.
func PlainApply[T any](fn func(T) error) Apply[T] {
	if fn == nil {
		return nil
	}
	return func(_ context.Context, item T) error { return fn(item) }
}
