package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxRelayJob runs the outbox relay every ten seconds, publishing pending
// messages to the broker in batches.
type OutboxRelayJob struct {
	handler commands.RelayOutboxCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOutboxRelayJob creates the outbox relay job.
func NewOutboxRelayJob(handler commands.RelayOutboxCommandHandler, logger *slog.Logger) *OutboxRelayJob {
	logger = logger.With(slog.String("component", "outbox_relay_job"))
	return &OutboxRelayJob{
		handler: handler,
		cron:    newJobCron(logger),
		logger:  logger,
	}
}

// Start begins running the relay every ten seconds.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRelayOutboxCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "outbox relay run failed", slog.Any("error", err))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("outbox relay job started")
	return nil
}

// Stop stops the job and waits for an in-flight run to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("outbox relay job stopped")
}
