package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CourierMovementJob runs the movement tick every second, advancing couriers
// toward their destinations and completing arrived deliveries.
type CourierMovementJob struct {
	handler commands.MoveCouriersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCourierMovementJob creates the movement tick job.
func NewCourierMovementJob(handler commands.MoveCouriersCommandHandler, logger *slog.Logger) *CourierMovementJob {
	logger = logger.With(slog.String("component", "courier_movement_job"))
	return &CourierMovementJob{
		handler: handler,
		cron:    newJobCron(logger),
		logger:  logger,
	}
}

// Start begins running the movement tick every second.
func (j *CourierMovementJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewMoveCouriersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "movement tick failed", slog.Any("error", err))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("courier movement job started")
	return nil
}

// Stop stops the job and waits for an in-flight tick to finish.
func (j *CourierMovementJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("courier movement job stopped")
}
