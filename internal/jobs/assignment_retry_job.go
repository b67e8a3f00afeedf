package jobs

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultAssignmentRetrySchedule retries unassigned orders every thirty seconds.
const DefaultAssignmentRetrySchedule = "*/30 * * * * *"

// PendingAssignmentRetrier retries courier assignment for unassigned orders.
type PendingAssignmentRetrier interface {
	Handle(ctx context.Context, cmd commands.RetryPendingAssignmentsCommand) (int, error)
}

// AssignmentRetryJob periodically gives orders left without a courier
// another assignment attempt.
type AssignmentRetryJob struct {
	handler  PendingAssignmentRetrier
	schedule string
	limit    int
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewAssignmentRetryJob(handler PendingAssignmentRetrier, schedule string, limit int, logger *slog.Logger) *AssignmentRetryJob {
	return &AssignmentRetryJob{
		handler:  handler,
		schedule: schedule,
		limit:    limit,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "assignment_retry_job"),
	}
}

// Start schedules the job. ctx is passed to every run.
func (j *AssignmentRetryJob) Start(ctx context.Context) error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Assignment retry job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running tick to finish.
func (j *AssignmentRetryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Assignment retry job stopped")
}

func (j *AssignmentRetryJob) run(ctx context.Context) {
	cmd, err := commands.NewRetryPendingAssignmentsCommand(j.limit)
	if err != nil {
		j.logger.ErrorContext(ctx, "Assignment retry job misconfigured", "error", err)
		return
	}

	assigned, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Assignment retry job failed", "error", err)
		return
	}
	if assigned > 0 {
		j.logger.InfoContext(ctx, "Assignment retry job assigned couriers", "count", assigned)
	}
}
