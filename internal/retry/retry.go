package retry

import (
	"context"
	"fmt"
	"time"
)

// Config controls attempt count and spacing.
type Config struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     bool // linear backoff when set
}

// WithRetry runs fn until it succeeds, attempts are exhausted, or the context
// is canceled.
func WithRetry(ctx context.Context, config Config, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err

			if attempt == config.MaxAttempts {
				return fmt.Errorf("failed after %d attempts: %w", config.MaxAttempts, err)
			}

			delay := config.Delay
			if config.Backoff {
				delay = time.Duration(attempt) * config.Delay
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				continue
			}
		}
		return nil
	}

	return lastErr
}
