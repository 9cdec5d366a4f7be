package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderAssignmentJob runs the dispatch tick every second, matching pending
// orders with free couriers.
type OrderAssignmentJob struct {
	handler commands.AssignOrderCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderAssignmentJob creates the dispatch tick job.
func NewOrderAssignmentJob(handler commands.AssignOrderCommandHandler, logger *slog.Logger) *OrderAssignmentJob {
	logger = logger.With(slog.String("component", "order_assignment_job"))
	return &OrderAssignmentJob{
		handler: handler,
		cron:    newJobCron(logger),
		logger:  logger,
	}
}

// Start begins running the dispatch tick every second.
func (j *OrderAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAssignOrderCommand()

		err := j.handler.Handle(ctx, cmd)
		switch {
		case err == nil:
		case errors.Is(err, commands.ErrNoOrderFound), errors.Is(err, commands.ErrNoFreeCouriersFound):
			// Expected steady state, nothing to dispatch right now
			j.logger.DebugContext(ctx, "nothing to dispatch", slog.Any("reason", err))
		default:
			j.logger.ErrorContext(ctx, "dispatch tick failed", slog.Any("error", err))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("order assignment job started")
	return nil
}

// Stop stops the job and waits for an in-flight tick to finish.
func (j *OrderAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("order assignment job stopped")
}
