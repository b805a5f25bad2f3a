package personnel

import (
	"context"
	"log/slog"
	"time"

	"handover/internal/core/ports"
)

// RetryConfig describes the retry behavior of RetryingDirectory.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingDirectory decorates a PersonnelDirectory with bounded retries and
// exponential backoff. The directory is an external system; transient
// failures during an assignment should not immediately surface to the caller.
type RetryingDirectory struct {
	next   ports.PersonnelDirectory
	logger *slog.Logger
	cfg    RetryConfig
}

// NewRetryingDirectory wraps the given directory with retry behavior.
func NewRetryingDirectory(next ports.PersonnelDirectory, logger *slog.Logger, cfg RetryConfig) *RetryingDirectory {
	if next == nil {
		return nil
	}
	return &RetryingDirectory{
		next:   next,
		logger: logger.With("component", "personnel_directory"),
		cfg:    cfg,
	}
}

// ListActiveByCapability retries the lookup until it succeeds, the attempts
// are exhausted, or the context is canceled.
func (d *RetryingDirectory) ListActiveByCapability(ctx context.Context, capability string) ([]ports.Person, error) {
	var lastErr error
	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		people, err := d.next.ListActiveByCapability(ctx, capability)
		if err == nil {
			return people, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == d.cfg.MaxAttempts {
			break
		}

		delay := backoff(d.cfg.BaseDelay, d.cfg.MaxDelay, attempt)
		d.logger.WarnContext(ctx, "personnel directory retry",
			"capability", capability,
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return nil, lastErr
}

// backoff computes the delay before the next attempt.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
