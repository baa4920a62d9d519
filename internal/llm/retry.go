package llm

import (
	"context"
	"time"
)

// RetryConfig controls the retry envelope wrapped around external calls.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// Base is the delay before the first retry; it doubles each attempt.
	Base time.Duration
	// Cap bounds the backoff delay.
	Cap time.Duration
	// OnRetry is called before each retry sleep with the attempt number
	// (1-based) and the error that triggered it.
	OnRetry func(attempt int, err error)
}

// DefaultRetryConfig matches the stage contract: 3 attempts, exponential
// backoff starting at 2s and capped at 10s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 3, Base: 2 * time.Second, Cap: 10 * time.Second}
}

// Retry executes fn up to cfg.MaxAttempts times with exponential backoff.
// Context cancellation stops further attempts immediately and returns the
// last error seen.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Base <= 0 {
		cfg.Base = 2 * time.Second
	}
	if cfg.Cap <= 0 {
		cfg.Cap = 10 * time.Second
	}

	var zero T
	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt >= cfg.MaxAttempts-1 {
			break
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, err)
		}

		delay := cfg.Base << uint(attempt)
		if delay > cfg.Cap {
			delay = cfg.Cap
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}
	return zero, lastErr
}
