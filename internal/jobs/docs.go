// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules are six-field expressions (seconds first).
//
// # Available Jobs
//
// 1. OutboxPublisherJob - Publishes committed domain events from the outbox table to the event log
// 2. AssignmentRetryJob - Retries courier assignment for orders the saga left unassigned (opt-in)
//
// # Usage
//
//	scheduled := []jobs.Job{jobs.NewOutboxPublisherJob(publishHandler, jobs.DefaultOutboxSchedule, 100, logger)}
//	if retryEnabled {
//		scheduled = append(scheduled, jobs.NewAssignmentRetryJob(retryHandler, jobs.DefaultAssignmentRetrySchedule, 50, logger))
//	}
//	jobManager := jobs.NewJobManager(scheduled...)
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatalf("Failed to start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failing tick is logged and the next tick tries again. Overlapping ticks are skipped.
package jobs
