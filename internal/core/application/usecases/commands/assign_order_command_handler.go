package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrNoOrderFound is the steady-state outcome of a dispatch tick with an
	// empty backlog. Callers log it at low severity instead of failing.
	ErrNoOrderFound = errors.New("no order found")

	// ErrNoFreeCouriersFound is the steady-state outcome of a dispatch tick
	// when every courier is busy.
	ErrNoFreeCouriersFound = errors.New("no free couriers found")
)

// AssignOrderCommandHandler runs one dispatch tick: load the oldest Created
// order and the free couriers, let the dispatcher pick the winner, and
// persist both aggregates in one transaction.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignOrderCommandHandler creates a handler for dispatch ticks.
func NewAssignOrderCommandHandler(uowFactory UoWFactory) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one dispatch tick. An empty backlog surfaces as
// ErrNoOrderFound and busy couriers as ErrNoFreeCouriersFound; both leave
// the store untouched. Dispatch failures roll the transaction back.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, command AssignOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	ordersRepo := uow.OrderRepository()

	orderAggregate, err := ordersRepo.GetFirstInCreatedStatus(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoOrderFound
	}
	if err != nil {
		return err
	}

	couriers, err := courierRepo.GetAllFree(ctx)
	if err != nil {
		return err
	}
	if len(couriers) == 0 {
		return ErrNoFreeCouriersFound
	}

	assignedCourier, err := services.NewOrderDispatcher().Dispatch(orderAggregate, couriers)
	if errors.Is(err, services.ErrCourierNotFound) {
		return ErrNoFreeCouriersFound
	}
	if err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, assignedCourier); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
