package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowvault/flowvault/pkg/async"
)

func TestAsync_Await(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})

	result, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.True(t, f.IsComplete())
}

func TestAsync_PreCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var invoked atomic.Bool
	f := async.Async(ctx, 0, func(context.Context, int) (int, error) {
		invoked.Store(true)
		return 1, nil
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, invoked.Load())
}

func TestFuture_AwaitWithTimeout(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		time.Sleep(time.Second)
		return 1, nil
	})

	_, err := f.AwaitWithTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)
}

func TestSettleAll(t *testing.T) {
	t.Parallel()

	t.Run("collects every result and error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		ok := async.Async(context.Background(), 1, func(_ context.Context, n int) (int, error) {
			return n, nil
		})
		fail := async.Async(context.Background(), 2, func(_ context.Context, n int) (int, error) {
			return 0, boom
		})
		slow := async.Async(context.Background(), 3, func(_ context.Context, n int) (int, error) {
			time.Sleep(20 * time.Millisecond)
			return n, nil
		})

		results, errs := async.SettleAll(ok, fail, slow)
		require.Len(t, results, 3)
		require.Len(t, errs, 3)

		assert.Equal(t, 1, results[0])
		assert.NoError(t, errs[0])
		assert.ErrorIs(t, errs[1], boom)
		assert.Equal(t, 3, results[2])
		assert.NoError(t, errs[2], "a failure must not suppress later results")
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		results, errs := async.SettleAll[int]()
		assert.Empty(t, results)
		assert.Empty(t, errs)
	})
}

func TestWaitAll_StopsOnFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	fail := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		return 0, boom
	})
	ok := async.Async(context.Background(), 5, func(_ context.Context, n int) (int, error) {
		return n, nil
	})

	_, err := async.WaitAll(fail, ok)
	assert.ErrorIs(t, err, boom)
}
