package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// CreateOrderCommandHandler handles order creation.
// The delivery street is resolved to grid coordinates through the geo
// service; the order and its Created event's outbox row are persisted in the
// same transaction, so the event never outlives a rolled-back order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	geoService ports.GeoService
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, geoService ports.GeoService) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		geoService: geoService,
	}
}

// Handle resolves the destination, creates the order in Created status and
// persists it together with its outbox row. Geo failures abort before the
// transaction starts.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	location, err := h.geoService.GetLocation(ctx, cmd.Street())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderAggregate, err := order.NewOrder(cmd.OrderID(), location, cmd.Volume())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, orderAggregate); err != nil {
		return err
	}

	if err = recordEvents(ctx, uow.OutboxRepository(), orderAggregate.TakeEvents()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
