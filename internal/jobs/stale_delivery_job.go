package jobs

import (
	"context"
	"log/slog"
	"time"

	"handover/internal/core/application/usecases/queries"
	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// StaleDeliveryJob periodically re-notifies about open deliveries without
// recent progress. It only reads and notifies; deliveries are never mutated
// from the scheduler, and a failed run simply waits for the next tick.
type StaleDeliveryJob struct {
	handler   queries.ListStaleDeliveriesQueryHandler
	notifier  ports.NotificationHook
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleDeliveryJob creates a reminder job. Threshold is how long a
// delivery may sit without a status change before it is re-notified.
func NewStaleDeliveryJob(
	handler queries.ListStaleDeliveriesQueryHandler,
	notifier ports.NotificationHook,
	threshold time.Duration,
	logger *slog.Logger,
) *StaleDeliveryJob {
	return &StaleDeliveryJob{
		handler:   handler,
		notifier:  notifier,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "stale_delivery_job"),
	}
}

// Start begins the reminder job, running every minute.
func (j *StaleDeliveryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale delivery job started (running every minute)",
		"threshold", j.threshold)
	return nil
}

// Stop stops the reminder job.
func (j *StaleDeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale delivery job stopped")
}

func (j *StaleDeliveryJob) run() {
	ctx := context.Background()

	query, err := queries.NewListStaleDeliveriesQuery(time.Now().Add(-j.threshold))
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale delivery job failed to build query", "error", err)
		return
	}

	stale, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale delivery job failed", "error", err)
		return
	}

	for _, item := range stale {
		// Pending deliveries have no courier yet; nudge the managers instead
		recipient := delivery.RoleDriver
		if item.CourierID == nil {
			recipient = delivery.RoleManager
		}
		j.notifier.Notify(ctx, item.ID.String(), ports.EventDeliveryStale, recipient.String())
	}

	if len(stale) > 0 {
		j.logger.InfoContext(ctx, "Stale delivery reminders sent", "count", len(stale))
	}
}
