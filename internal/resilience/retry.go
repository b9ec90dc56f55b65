// Package resilience implements the bounded-retry discipline used when
// talking to rate-limited public APIs. Waits grow linearly with the attempt
// number rather than exponentially: the upstream usage policies this client
// targets ask for fixed courtesy pauses, not congestion backoff.
package resilience

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryConfig controls the bounded retry loop.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts (including the first try).
	// A value of 1 means no retries. Default: 2.
	MaxAttempts int

	// RateLimitWait is the base pause after a rate-limited response. The
	// actual wait is RateLimitWait × attempt number. Default: 10s.
	RateLimitWait time.Duration

	// TransientWait is the base pause after a transient network failure,
	// scaled the same way. No pause follows the final attempt. Default: 3s.
	TransientWait time.Duration

	// Sleep is the wait implementation. Tests inject a recorder here;
	// nil means a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error

	// OnRetry is called before each wait with the 1-based attempt number
	// that just failed and its error.
	OnRetry func(attempt int, err error)
}

// DefaultRetryConfig returns the retry configuration used against the
// public Overpass instances.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   2,
		RateLimitWait: 10 * time.Second,
		TransientWait: 3 * time.Second,
	}
}

func applyDefaults(cfg RetryConfig) RetryConfig {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 2
	}
	if cfg.RateLimitWait <= 0 {
		cfg.RateLimitWait = 10 * time.Second
	}
	if cfg.TransientWait <= 0 {
		cfg.TransientWait = 3 * time.Second
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleepCtx
	}
	return cfg
}

// DoVal executes fn up to cfg.MaxAttempts times and returns the first
// successful value. Rate-limited attempts pause RateLimitWait × attempt;
// transient network failures pause TransientWait × attempt except after the
// final attempt; any other error aborts the loop immediately. Context
// cancellation stops retries at the next wait.
func DoVal[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	cfg = applyDefaults(cfg)

	var zero T
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, lastErr
		}

		// Unclassified failures are not worth hammering the service over.
		if !IsTransient(lastErr) {
			return zero, lastErr
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, lastErr)
		}

		switch {
		case IsRateLimit(lastErr):
			// The courtesy pause applies even after the final attempt:
			// the caller is expected to come back later either way.
			if err := cfg.Sleep(ctx, cfg.RateLimitWait*time.Duration(attempt)); err != nil {
				return zero, lastErr
			}
		case attempt < cfg.MaxAttempts:
			if err := cfg.Sleep(ctx, cfg.TransientWait*time.Duration(attempt)); err != nil {
				return zero, lastErr
			}
		}
	}

	return zero, lastErr
}

// Do is DoVal for functions without a return value.
func Do(ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) error) error {
	_, err := DoVal(ctx, cfg, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryLogger returns an OnRetry callback that logs each failed attempt.
func RetryLogger(service, operation string) func(int, error) {
	return func(attempt int, err error) {
		zap.L().Warn("retrying operation",
			zap.String("service", service),
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}
