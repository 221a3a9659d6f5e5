package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type ResetWeekHandler interface {
	Handle(ctx context.Context, cmd commands.ResetDeliverymenWeekCommand) (int64, error)
}

// WeeklyResetJob closes the deliverymen's working week on a schedule, the
// same operation as POST /api/v1/deliverymen/week/reset.
type WeeklyResetJob struct {
	handler  ResetWeekHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewWeeklyResetJob takes a six-field cron expression (with seconds).
func NewWeeklyResetJob(handler ResetWeekHandler, schedule string, logger *slog.Logger) *WeeklyResetJob {
	logger = logger.With("component", "weekly_reset_job")
	return &WeeklyResetJob{
		handler:  handler,
		schedule: schedule,
		cron:     newCron(logger),
		logger:   logger,
	}
}

// Run executes one reset.
func (j *WeeklyResetJob) Run(ctx context.Context) {
	n, err := j.handler.Handle(ctx, commands.NewResetDeliverymenWeekCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Weekly reset job failed", "error", err)
		return
	}
	j.logger.InfoContext(ctx, "Weekly counters reset", "deliverymen", n)
}

func (j *WeeklyResetJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Weekly reset job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running reset to finish.
func (j *WeeklyResetJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Weekly reset job stopped")
}
