package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

// MoveCouriersCommandHandler runs one movement tick over all active
// deliveries: each assigned courier advances toward its order's destination,
// and arriving completes the order and frees the courier's storage.
//
// The loop is lenient only before a delivery is written: a missing courier or
// a domain failure on one delivery is logged and skipped so the rest of the
// fleet still moves. Once writes for a delivery start, any failure aborts the
// whole tick and the transaction rolls back, so a completed order can never
// commit without its outbox row. Everything that did succeed commits as one
// transaction.
type MoveCouriersCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewMoveCouriersCommandHandler creates a handler for movement ticks.
func NewMoveCouriersCommandHandler(uowFactory UoWFactory, logger *slog.Logger) MoveCouriersCommandHandler {
	return MoveCouriersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With(slog.String("component", "move_couriers")),
	}
}

// Handle processes one movement tick across all orders in Assigned status.
func (h *MoveCouriersCommandHandler) Handle(ctx context.Context, cmd MoveCouriersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	orders, err := ordersRepo.GetAllInAssignedStatus(ctx)
	if err != nil {
		return err
	}

	for _, orderAggregate := range orders {
		courierAggregate, err := h.advanceOrder(ctx, uow, orderAggregate)
		if err != nil {
			h.logger.WarnContext(ctx, "skipping order",
				slog.String("order_id", orderAggregate.ID().String()),
				slog.Any("error", err))
			continue
		}

		if err = h.persistDelivery(ctx, uow, orderAggregate, courierAggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// advanceOrder loads the order's courier and mutates both aggregates in
// memory: one movement step, plus completion when the courier arrives.
// Nothing is written yet, so a failure here leaves this delivery for the
// next tick without touching the others.
func (h *MoveCouriersCommandHandler) advanceOrder(
	ctx context.Context,
	uow UoW,
	orderAggregate *order.Order,
) (*courier.Courier, error) {
	courierAggregate, err := uow.CourierRepository().Get(ctx, *orderAggregate.Courier())
	if err != nil {
		return nil, err
	}

	if err = courierAggregate.Move(orderAggregate.Location()); err != nil {
		return nil, err
	}

	arrived, err := courierAggregate.Location().IsEqual(orderAggregate.Location())
	if err != nil {
		return nil, err
	}
	if !arrived {
		return courierAggregate, nil
	}

	if err = orderAggregate.Complete(); err != nil {
		return nil, err
	}

	if err = courierAggregate.CompleteOrder(orderAggregate.ID()); err != nil {
		return nil, err
	}

	return courierAggregate, nil
}

// persistDelivery writes one advanced delivery: both aggregates and the
// outbox rows for the events the order raised. A failure here is fatal to
// the tick. Events drained from a completed order exist only in memory, so
// committing the status change without its outbox row would lose the event
// for good.
func (h *MoveCouriersCommandHandler) persistDelivery(
	ctx context.Context,
	uow UoW,
	orderAggregate *order.Order,
	courierAggregate *courier.Courier,
) error {
	if err := uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err := uow.CourierRepository().Update(ctx, courierAggregate); err != nil {
		return err
	}

	return recordEvents(ctx, uow.OutboxRepository(), orderAggregate.TakeEvents())
}
