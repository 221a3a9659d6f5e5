package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type RelayOutboxHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// RelayObserver is told how many messages each run published.
type RelayObserver interface {
	Relayed(n int)
}

// OutboxRelayJob publishes pending outbox messages in batches. A run keeps
// relaying while full batches come back, so a backlog drains within one tick.
type OutboxRelayJob struct {
	handler  RelayOutboxHandler
	cmd      commands.RelayOutboxCommand
	observer RelayObserver
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOutboxRelayJob(
	handler RelayOutboxHandler,
	batchSize int,
	schedule string,
	observer RelayObserver,
	logger *slog.Logger,
) (*OutboxRelayJob, error) {
	cmd, err := commands.NewRelayOutboxCommand(batchSize)
	if err != nil {
		return nil, err
	}
	logger = logger.With("component", "outbox_relay_job")
	return &OutboxRelayJob{
		handler:  handler,
		cmd:      cmd,
		observer: observer,
		schedule: schedule,
		cron:     newCron(logger),
		logger:   logger,
	}, nil
}

// Run relays until a batch comes back short or fails. It returns the number
// of messages published.
func (j *OutboxRelayJob) Run(ctx context.Context) int {
	total := 0
	for ctx.Err() == nil {
		n, err := j.handler.Handle(ctx, j.cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err, "relayed", total)
			break
		}
		total += n
		if n < j.cmd.BatchSize() {
			break
		}
	}

	if total > 0 {
		if j.observer != nil {
			j.observer.Relayed(total)
		}
		j.logger.DebugContext(ctx, "Outbox relayed", "messages", total)
	}
	return total
}

func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
