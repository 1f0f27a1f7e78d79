package asyncmap

import (
	"context"
	"iter"
)

// ForEach applies fn to every element of items with at most limit concurrent
// applications. It returns the first error encountered, after joining all
// launched work, or nil when every application succeeds.
func ForEach[T any](ctx context.Context, items []T, fn Apply[T], limit int, opts ...Option) error {
	if fn == nil {
		return ErrNilTransform
	}
	_, err := Map(ctx, items, applyTransform(fn), limit, opts...)
	return err
}

// ForEachStream applies fn to every element of items with at most limit
// concurrent applications, consuming the stream to completion. It returns the
// error of the first failing item, or nil.
func ForEachStream[T any](ctx context.Context, items iter.Seq[T], fn Apply[T], limit int, opts ...Option) error {
	if fn == nil {
		return ErrNilTransform
	}
	seq, err := MapStream(ctx, items, applyTransform(fn), limit, opts...)
	if err != nil {
		return err
	}
	for _, err := range seq {
		if err != nil {
			return err
		}
	}
	return nil
}

func applyTransform[T any](fn Apply[T]) Transform[T, struct{}] {
	return func(ctx context.Context, item T) (struct{}, error) {
		return struct{}{}, fn(ctx, item)
	}
}
