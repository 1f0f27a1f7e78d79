package asyncmap_test

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/asyncmap"
)

func TestForEach_AppliesToAll(t *testing.T) {
	ctx := context.Background()
	items := []int{1, 2, 3, 4, 5}

	var sum atomic.Int64
	err := asyncmap.ForEach(ctx, items, func(_ context.Context, x int) error {
		sum.Add(int64(x))
		return nil
	}, 2)
	require.NoError(t, err)
	require.EqualValues(t, 15, sum.Load())
}

func TestForEach_FirstErrorPropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := asyncmap.ForEach(ctx, []int{1, 2, 3}, func(_ context.Context, x int) error {
		if x == 2 {
			return boom
		}
		return nil
	}, 1)
	require.ErrorIs(t, err, boom)
}

func TestForEach_NilApply(t *testing.T) {
	err := asyncmap.ForEach[int](context.Background(), []int{1}, nil, 1)
	require.ErrorIs(t, err, asyncmap.ErrNilTransform)
}

func TestForEachStream_AppliesInOrderBoundedConcurrency(t *testing.T) {
	ctx := context.Background()
	items := make([]int, 40)
	for i := range items {
		items[i] = i
	}

	var applied atomic.Int64
	err := asyncmap.ForEachStream(ctx, slices.Values(items), func(_ context.Context, _ int) error {
		applied.Add(1)
		return nil
	}, 4)
	require.NoError(t, err)
	require.EqualValues(t, len(items), applied.Load())
}

func TestForEachStream_StopsOnError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	var applied atomic.Int64
	err := asyncmap.ForEachStream(ctx, slices.Values(items), func(_ context.Context, x int) error {
		applied.Add(1)
		if x == 10 {
			return boom
		}
		return nil
	}, 2)
	require.ErrorIs(t, err, boom)
	require.Less(t, applied.Load(), int64(len(items)))
}

func TestForEachStream_NilApply(t *testing.T) {
	err := asyncmap.ForEachStream[int](context.Background(), slices.Values([]int{1}), nil, 1)
	require.ErrorIs(t, err, asyncmap.ErrNilTransform)
}
