package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrRateLimit marks a failure caused by the remote side throttling us.
	// The next attempt waits the longest allowed delay.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries is returned once every attempt has failed.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError marks whether a failure is worth another attempt.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Permanent wraps err so that a RetryPolicy gives up on it immediately.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err, Retryable: false}
}

// RetryPolicy is an exponential backoff schedule. Zero fields take the
// defaults: 3 attempts starting at 100ms, doubling up to 30s.
type RetryPolicy struct {
	Logger       *slog.Logger
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = 100 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 30 * time.Second
	}
	if p.Multiplier <= 0 {
		p.Multiplier = 2.0
	}
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	return p
}

// delay is the wait after the given failed attempt, counting from 1.
func (p RetryPolicy) delay(attempt int, err error) time.Duration {
	if errors.Is(err, ErrRateLimit) {
		return p.MaxDelay
	}
	d := float64(p.InitialDelay)
	for i := 1; i < attempt; i++ {
		d *= p.Multiplier
		if d >= float64(p.MaxDelay) {
			return p.MaxDelay
		}
	}
	return time.Duration(d)
}

// Do runs op until it succeeds, fails permanently, runs out of attempts or
// ctx is done.
func (p RetryPolicy) Do(ctx context.Context, op func(context.Context) error) error {
	p = p.withDefaults()

	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}

		var retryErr *RetryableError
		if errors.As(err, &retryErr) && !retryErr.Retryable {
			return err
		}
		if attempt >= p.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, p.MaxAttempts, err)
		}

		wait := p.delay(attempt, err)
		p.Logger.Warn("Operation failed, retrying",
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"delay", wait,
			"error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
