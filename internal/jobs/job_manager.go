package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
	weeklyResetJob *WeeklyResetJob
}

// NewJobManager takes the relay job and an optional weekly reset job; a nil
// weeklyResetJob disables the scheduled reset.
func NewJobManager(outboxRelayJob *OutboxRelayJob, weeklyResetJob *WeeklyResetJob) *JobManager {
	return &JobManager{
		outboxRelayJob: outboxRelayJob,
		weeklyResetJob: weeklyResetJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if jm.weeklyResetJob == nil {
		return nil
	}

	if err := jm.weeklyResetJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start weekly reset job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.weeklyResetJob != nil {
		jm.weeklyResetJob.Stop()
	}
	jm.outboxRelayJob.Stop()
}
