package common

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryPolicy {
	return RetryPolicy{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestRetryPolicy_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := fastRetry(5).Do(ctx, func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		calls := 0
		badRequest := errors.New("bad request")
		err := fastRetry(5).Do(ctx, func(context.Context) error {
			calls++
			return Permanent(badRequest)
		})

		assert.ErrorIs(t, err, badRequest)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		stillFailing := errors.New("still failing")
		err := fastRetry(2).Do(ctx, func(context.Context) error {
			calls++
			return stillFailing
		})

		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.ErrorIs(t, err, stillFailing)
		assert.Equal(t, 2, calls)
	})

	t.Run("honors cancellation between attempts", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		policy := fastRetry(3)
		policy.InitialDelay = time.Second
		policy.MaxDelay = time.Second
		err := policy.Do(cancelled, func(context.Context) error {
			return errors.New("fails")
		})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryPolicy_Delay(t *testing.T) {
	p := RetryPolicy{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second}.withDefaults()

	tests := []struct {
		name    string
		attempt int
		err     error
		want    time.Duration
	}{
		{name: "first", attempt: 1, err: errors.New("x"), want: 100 * time.Millisecond},
		{name: "second doubles", attempt: 2, err: errors.New("x"), want: 200 * time.Millisecond},
		{name: "capped", attempt: 6, err: errors.New("x"), want: time.Second},
		{name: "rate limited waits longest", attempt: 1, err: ErrRateLimit, want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.delay(tt.attempt, tt.err))
		})
	}
}

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))
	assert.False(t, IsRetryable(Permanent(errors.New("no"))))
	assert.True(t, IsRetryable(ErrRateLimit))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("record added", "id", 42)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"id":42`)

	_, err = NewLogger(&buf, slog.LevelInfo, "xml")
	assert.Error(t, err)
}
