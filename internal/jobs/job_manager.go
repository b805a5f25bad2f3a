package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"handover/internal/core/application/usecases/queries"
	"handover/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleDeliveryJob *StaleDeliveryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the query handler and notifier as dependencies to wire up job execution.
func NewJobManager(
	staleHandler queries.ListStaleDeliveriesQueryHandler,
	notifier ports.NotificationHook,
	staleThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleDeliveryJob: NewStaleDeliveryJob(staleHandler, notifier, staleThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleDeliveryJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale delivery job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleDeliveryJob.Stop()
}
