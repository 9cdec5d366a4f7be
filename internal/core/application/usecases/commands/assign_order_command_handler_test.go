package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T, volume int) *order.Order {
	t.Helper()
	location, err := kernel.NewLocation(5, 5)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), location, volume)
	require.NoError(t, err)
	return o
}

func createTestCourier(t *testing.T, name string, speed int) *courier.Courier {
	t.Helper()
	location, err := kernel.NewLocation(1, 1)
	require.NoError(t, err)
	c, err := courier.NewCourier(kernel.NewUUID(), name, speed, location)
	require.NoError(t, err)
	return c
}

func TestAssignOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := commands.NewAssignOrderCommand()

	pendingOrder := createTestOrder(t, 5)
	freeCourier := createTestCourier(t, "Free", 2)

	mockCourierRepo := new(MockCourierRepository)
	mockOrderRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CourierRepository").Return(mockCourierRepo).Once()
	mockUoW.On("OrderRepository").Return(mockOrderRepo).Once()
	mock.InOrder(
		mockOrderRepo.On("GetFirstInCreatedStatus", ctx).Return(pendingOrder, nil).Once(),
		mockCourierRepo.On("GetAllFree", ctx).Return([]*courier.Courier{freeCourier}, nil).Once(),
		mockOrderRepo.On("Update", ctx, pendingOrder).Return(nil).Once(),
		mockCourierRepo.On("Update", ctx, freeCourier).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewAssignOrderCommandHandler(mockFactory)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.Assigned, pendingOrder.Status())
	require.NotNil(t, pendingOrder.Courier())
	assert.True(t, pendingOrder.Courier().IsEqual(freeCourier.ID()))
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockOrderRepo.AssertExpectations(t)
	mockCourierRepo.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_NoOrder(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := commands.NewAssignOrderCommand()

	mockCourierRepo := new(MockCourierRepository)
	mockOrderRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CourierRepository").Return(mockCourierRepo).Once()
	mockUoW.On("OrderRepository").Return(mockOrderRepo).Once()
	mockOrderRepo.On("GetFirstInCreatedStatus", ctx).
		Return(nil, errs.NewObjectNotFoundError("order", nil)).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewAssignOrderCommandHandler(mockFactory)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, commands.ErrNoOrderFound)
	mockUoW.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_NoFreeCouriers(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := commands.NewAssignOrderCommand()
	pendingOrder := createTestOrder(t, 5)

	mockCourierRepo := new(MockCourierRepository)
	mockOrderRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CourierRepository").Return(mockCourierRepo).Once()
	mockUoW.On("OrderRepository").Return(mockOrderRepo).Once()
	mockOrderRepo.On("GetFirstInCreatedStatus", ctx).Return(pendingOrder, nil).Once()
	mockCourierRepo.On("GetAllFree", ctx).Return([]*courier.Courier{}, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewAssignOrderCommandHandler(mockFactory)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, commands.ErrNoFreeCouriersFound)
	assert.Equal(t, order.Created, pendingOrder.Status())
	mockUoW.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_NoCourierWithCapacity(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := commands.NewAssignOrderCommand()
	bigOrder := createTestOrder(t, 11) // default bag volume is 10
	busyCourier := createTestCourier(t, "Busy", 2)

	mockCourierRepo := new(MockCourierRepository)
	mockOrderRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CourierRepository").Return(mockCourierRepo).Once()
	mockUoW.On("OrderRepository").Return(mockOrderRepo).Once()
	mockOrderRepo.On("GetFirstInCreatedStatus", ctx).Return(bigOrder, nil).Once()
	mockCourierRepo.On("GetAllFree", ctx).Return([]*courier.Courier{busyCourier}, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewAssignOrderCommandHandler(mockFactory)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, commands.ErrNoFreeCouriersFound)
	assert.Equal(t, order.Created, bigOrder.Status())
	mockUoW.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_UpdateError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := commands.NewAssignOrderCommand()
	pendingOrder := createTestOrder(t, 5)
	freeCourier := createTestCourier(t, "Free", 2)

	expectedError := errors.New("update failed")
	mockCourierRepo := new(MockCourierRepository)
	mockOrderRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CourierRepository").Return(mockCourierRepo).Once()
	mockUoW.On("OrderRepository").Return(mockOrderRepo).Once()
	mockOrderRepo.On("GetFirstInCreatedStatus", ctx).Return(pendingOrder, nil).Once()
	mockCourierRepo.On("GetAllFree", ctx).Return([]*courier.Courier{freeCourier}, nil).Once()
	mockOrderRepo.On("Update", ctx, pendingOrder).Return(expectedError).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewAssignOrderCommandHandler(mockFactory)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.Equal(t, expectedError, err)
	mockUoW.AssertExpectations(t) // commit never ran
}

func TestAssignOrderCommandHandler_Handle_InvalidCommand(t *testing.T) {
	// Arrange
	ctx := t.Context()
	var invalidCmd commands.AssignOrderCommand

	mockFactory := new(MockUoWFactory)
	handler := commands.NewAssignOrderCommandHandler(mockFactory)

	// Act
	err := handler.Handle(ctx, invalidCmd)

	// Assert
	require.ErrorIs(t, err, commands.ErrAssignOrderCommandIsNotConstructed)
	mockFactory.AssertExpectations(t)
}
