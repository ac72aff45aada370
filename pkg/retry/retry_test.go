package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavodinniz/loan-flow/pkg/retry"
)

var errTransient = errors.New("transient failure")

func fastOpts(extra ...retry.Option) []retry.Option {
	opts := []retry.Option{retry.WithInitialDelay(time.Millisecond)}
	return append(opts, extra...)
}

func TestDo(t *testing.T) {
	t.Run("returns immediately on success", func(t *testing.T) {
		calls := 0
		err := retry.Do(context.Background(), func(context.Context) error {
			calls++
			return nil
		}, fastOpts()...)

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := retry.Do(context.Background(), func(context.Context) error {
			calls++
			if calls < 3 {
				return errTransient
			}
			return nil
		}, fastOpts()...)

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns the last error after exhausting attempts", func(t *testing.T) {
		calls := 0
		err := retry.Do(context.Background(), func(context.Context) error {
			calls++
			return errTransient
		}, fastOpts(retry.WithMaxAttempts(5))...)

		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 5, calls)
	})

	t.Run("permanent errors stop retrying and unwrap", func(t *testing.T) {
		calls := 0
		err := retry.Do(context.Background(), func(context.Context) error {
			calls++
			return retry.Permanent(errTransient)
		}, fastOpts(retry.WithMaxAttempts(5))...)

		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context stops before the first attempt", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		err := retry.Do(ctx, func(context.Context) error {
			calls++
			return errTransient
		}, fastOpts()...)

		require.Error(t, err)
		assert.Zero(t, calls)
	})

	t.Run("reports each retry with the growing delay", func(t *testing.T) {
		var delays []time.Duration
		_ = retry.Do(context.Background(), func(context.Context) error {
			return errTransient
		},
			retry.WithInitialDelay(time.Millisecond),
			retry.WithMultiplier(2),
			retry.WithMaxAttempts(3),
			retry.WithOnRetry(func(_ int, _ error, delay time.Duration) {
				delays = append(delays, delay)
			}),
		)

		require.Len(t, delays, 2)
		assert.Equal(t, time.Millisecond, delays[0])
		assert.Equal(t, 2*time.Millisecond, delays[1])
	})
}

func TestDoWithData(t *testing.T) {
	t.Run("returns the value of the successful attempt", func(t *testing.T) {
		calls := 0
		v, err := retry.DoWithData(context.Background(), func(context.Context) (int, error) {
			calls++
			if calls < 2 {
				return 0, errTransient
			}
			return 42, nil
		}, fastOpts()...)

		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.Equal(t, 2, calls)
	})

	t.Run("returns the error after exhausting attempts", func(t *testing.T) {
		_, err := retry.DoWithData(context.Background(), func(context.Context) (int, error) {
			return 0, errTransient
		}, fastOpts(retry.WithMaxAttempts(2))...)

		assert.ErrorIs(t, err, errTransient)
	})
}
