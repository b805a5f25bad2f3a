// Package jobs provides scheduled background tasks for the handover service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the service.
//
// # Available Jobs
//
// 1. StaleDeliveryJob - Runs every minute and re-notifies about open
// deliveries whose last status change is older than the configured threshold.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(staleHandler, notifier, threshold, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The reminder job never mutates deliveries; a failed run is logged and the
// job waits for its next tick. Notification loss is acceptable by contract.
package jobs
