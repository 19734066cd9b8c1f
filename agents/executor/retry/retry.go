/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/chainguard-dev/clog"
)

// RetryConfig configures retry behavior for calls to external model services.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts after the first call (default: 2).
	// 0 means do not retry at all.
	MaxRetries int
	// BaseBackoff is the initial backoff duration (default: 1s)
	BaseBackoff time.Duration
	// MaxBackoff is the maximum backoff duration (default: 30s)
	MaxBackoff time.Duration
	// MaxJitter is the maximum random jitter added to backoff (default: 500ms)
	MaxJitter time.Duration
}

// Validate checks that the retry configuration has valid values.
func (c RetryConfig) Validate() error {
	if c.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}
	if c.BaseBackoff < 0 {
		return errors.New("base backoff cannot be negative")
	}
	if c.MaxBackoff < 0 {
		return errors.New("max backoff cannot be negative")
	}
	if c.MaxJitter < 0 {
		return errors.New("max jitter cannot be negative")
	}
	return nil
}

// Attempts returns the total number of calls the configuration allows.
func (c RetryConfig) Attempts() int {
	return c.MaxRetries + 1
}

// DefaultRetryConfig returns a configuration that makes at most three calls
// before surfacing the last failure.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:  2,
		BaseBackoff: 1 * time.Second,
		MaxBackoff:  30 * time.Second,
		MaxJitter:   500 * time.Millisecond,
	}
}

// WithAttempts returns a copy of the configuration allowing attempts total calls.
func (c RetryConfig) WithAttempts(attempts int) (RetryConfig, error) {
	if attempts < 1 {
		return c, fmt.Errorf("attempts must be at least 1, got %d", attempts)
	}
	c.MaxRetries = attempts - 1
	return c, nil
}

// RetryWithBackoff executes the given function with exponential backoff retry.
// It only retries on errors that are classified as retryable by the provided isRetryable function.
func RetryWithBackoff[T any](ctx context.Context, cfg RetryConfig, operation string, isRetryable func(error) bool, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}

		if !isRetryable(lastErr) {
			return result, lastErr
		}

		if attempt >= cfg.MaxRetries {
			break
		}

		// BaseBackoff * 2^attempt, capped at MaxBackoff
		backoff := min(cfg.BaseBackoff<<attempt, cfg.MaxBackoff)

		var jitter time.Duration
		if cfg.MaxJitter > 0 {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(cfg.MaxJitter)))
			if err == nil {
				jitter = time.Duration(n.Int64())
			}
		}

		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt+1).
			With("max_retries", cfg.MaxRetries).
			With("backoff", backoff+jitter).
			With("error", lastErr.Error()).
			Warn("External call failed, retrying")

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(backoff + jitter):
		}
	}

	return result, fmt.Errorf("%s failed after %d retries: %w", operation, cfg.MaxRetries, lastErr)
}

// Func is an external call with a single input.
type Func[In, Out any] func(ctx context.Context, in In) (Out, error)

// Wrap decorates fn so that every invocation goes through RetryWithBackoff.
// Executors apply it uniformly to chat and embedding calls.
func Wrap[In, Out any](cfg RetryConfig, operation string, isRetryable func(error) bool, fn Func[In, Out]) Func[In, Out] {
	return func(ctx context.Context, in In) (Out, error) {
		return RetryWithBackoff(ctx, cfg, operation, isRetryable, func() (Out, error) {
			return fn(ctx, in)
		})
	}
}
