package jobs

import (
	"context"
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start(ctx context.Context) error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []Job
	started []Job
}

// NewJobManager creates a job manager for the given jobs.
func NewJobManager(jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts all scheduled jobs in order.
// If one fails, the already started jobs are stopped and the error is returned.
func (jm *JobManager) StartAll(ctx context.Context) error {
	for _, job := range jm.jobs {
		if err := job.Start(ctx); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %T: %w", job, err)
		}
		jm.started = append(jm.started, job)
	}
	return nil
}

// StopAll stops the started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
