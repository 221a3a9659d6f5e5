// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order lifecycle.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes pending outbox events to the message broker
// 2. WeeklyResetJob - zeroes every deliveryman's weekly view counter
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	relay, err := jobs.NewOutboxRelayJob(relayHandler, 100, "*/5 * * * * *", metrics, logger)
//	reset := jobs.NewWeeklyResetJob(resetHandler, "0 0 3 * * MON", logger)
//	jobManager := jobs.NewJobManager(relay, reset)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions, seconds first. A run that is still
// going when the next tick fires makes that tick skip.
//
// # Error Handling
//
// - Failed runs are logged; the next tick tries again
// - Failed job starts will stop any already running jobs
package jobs
