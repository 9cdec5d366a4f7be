package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager owns all scheduled jobs and starts and stops them as a unit.
type JobManager struct {
	orderAssignmentJob *OrderAssignmentJob
	courierMovementJob *CourierMovementJob
	outboxRelayJob     *OutboxRelayJob
}

// NewJobManager creates a job manager wired to the given command handlers.
func NewJobManager(
	moveCouriersHandler commands.MoveCouriersCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	relayOutboxHandler commands.RelayOutboxCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderAssignmentJob: NewOrderAssignmentJob(assignOrderHandler, logger),
		courierMovementJob: NewCourierMovementJob(moveCouriersHandler, logger),
		outboxRelayJob:     NewOutboxRelayJob(relayOutboxHandler, logger),
	}
}

// StartAll starts all scheduled jobs. If one fails to start, the jobs
// already running are stopped again.
func (jm *JobManager) StartAll() error {
	if err := jm.orderAssignmentJob.Start(); err != nil {
		return fmt.Errorf("start order assignment job: %w", err)
	}

	if err := jm.courierMovementJob.Start(); err != nil {
		jm.orderAssignmentJob.Stop()
		return fmt.Errorf("start courier movement job: %w", err)
	}

	if err := jm.outboxRelayJob.Start(); err != nil {
		jm.courierMovementJob.Stop()
		jm.orderAssignmentJob.Stop()
		return fmt.Errorf("start outbox relay job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for in-flight ticks to finish.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
	jm.courierMovementJob.Stop()
	jm.orderAssignmentJob.Stop()
}
