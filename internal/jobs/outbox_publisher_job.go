package jobs

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxSchedule publishes the event log every five seconds.
const DefaultOutboxSchedule = "*/5 * * * * *"

// OutboxPublisher publishes one batch of outbox messages.
type OutboxPublisher interface {
	Handle(ctx context.Context, cmd commands.PublishOutboxEventsCommand) (int, error)
}

// OutboxPublisherJob drains the outbox into the event log on a schedule.
// A tick that is still running when the next one fires is skipped.
type OutboxPublisherJob struct {
	handler   OutboxPublisher
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxPublisherJob creates the job. schedule is a six-field cron
// expression (with seconds).
func NewOutboxPublisherJob(handler OutboxPublisher, schedule string, batchSize int, logger *slog.Logger) *OutboxPublisherJob {
	return &OutboxPublisherJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_publisher_job"),
	}
}

// Start schedules the job. ctx is passed to every run.
func (j *OutboxPublisherJob) Start(ctx context.Context) error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Outbox publisher job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running tick to finish.
func (j *OutboxPublisherJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox publisher job stopped")
}

// run publishes batches until the outbox is drained or a batch fails.
func (j *OutboxPublisherJob) run(ctx context.Context) {
	cmd, err := commands.NewPublishOutboxEventsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox publisher job misconfigured", "error", err)
		return
	}

	for ctx.Err() == nil {
		published, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox publisher job failed", "error", err)
			return
		}
		if published > 0 {
			j.logger.DebugContext(ctx, "Outbox batch published", "count", published)
		}
		if published < j.batchSize {
			return
		}
	}
}
