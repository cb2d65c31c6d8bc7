package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// RetryOptions bounds the external call: each attempt gets its own timeout,
// and failed attempts back off exponentially before retrying.
type RetryOptions struct {
	MaxAttempts int           // total attempts, including the first
	Timeout     time.Duration // per-attempt timeout
	BaseBackoff time.Duration // doubled after each failed attempt
}

type retryClient struct {
	inner Client
	opts  RetryOptions
}

// WithRetry wraps a Client with per-attempt timeouts and bounded
// retry-with-backoff. Context cancellation aborts between attempts.
func WithRetry(inner Client, opts RetryOptions) Client {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = 500 * time.Millisecond
	}
	return &retryClient{inner: inner, opts: opts}
}

func (c *retryClient) Complete(ctx context.Context, system, user string) (string, error) {
	var lastErr error
	backoff := c.opts.BaseBackoff

	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
		content, err := c.inner.Complete(attemptCtx, system, user)
		cancel()

		if err == nil {
			return content, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if attempt < c.opts.MaxAttempts {
			slog.WarnContext(ctx, "completion attempt failed, retrying",
				"attempt", attempt,
				"max_attempts", c.opts.MaxAttempts,
				"backoff", backoff,
				"error", err)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			backoff *= 2
		}
	}

	if errors.Is(lastErr, context.DeadlineExceeded) {
		return "", fmt.Errorf("completion timed out after %d attempts: %w", c.opts.MaxAttempts, lastErr)
	}
	return "", fmt.Errorf("completion failed after %d attempts: %w", c.opts.MaxAttempts, lastErr)
}

func (c *retryClient) Model() string {
	return c.inner.Model()
}
