package kafka

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	commands []commands.CreateOrderCommand
	err      error
}

func (h *recordingHandler) Handle(_ context.Context, cmd commands.CreateOrderCommand) error {
	h.commands = append(h.commands, cmd)
	return h.err
}

func newTestConsumer(handler createOrderHandler) *BasketEventsConsumer {
	return &BasketEventsConsumer{
		handler: handler,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestBasketEventsConsumer_HandleMessage_CreatesOrder(t *testing.T) {
	// Arrange
	ctx := t.Context()
	basketID := kernel.NewUUID()
	payload := fmt.Sprintf(
		`{"eventId":"evt-1","basketId":"%s","address":{"street":"Baker Street"},"volume":5}`,
		basketID.String())

	handler := &recordingHandler{}
	consumer := newTestConsumer(handler)

	// Act
	consumer.handleMessage(ctx, []byte(payload))

	// Assert: the basket id becomes the order id
	require.Len(t, handler.commands, 1)
	cmd := handler.commands[0]
	assert.True(t, basketID.IsEqual(cmd.OrderID()))
	assert.Equal(t, "Baker Street", cmd.Street())
	assert.Equal(t, 5, cmd.Volume())
}

func TestBasketEventsConsumer_HandleMessage_SkipsMalformedEvents(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "invalid json",
			payload: `{"basketId":`,
		},
		{
			name:    "basket id is not a uuid",
			payload: `{"basketId":"not-a-uuid","address":{"street":"Baker Street"},"volume":5}`,
		},
		{
			name:    "missing street",
			payload: fmt.Sprintf(`{"basketId":"%s","address":{},"volume":5}`, kernel.NewUUID()),
		},
		{
			name:    "zero volume",
			payload: fmt.Sprintf(`{"basketId":"%s","address":{"street":"Baker Street"},"volume":0}`, kernel.NewUUID()),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			handler := &recordingHandler{}
			consumer := newTestConsumer(handler)

			// Act
			consumer.handleMessage(t.Context(), []byte(test.payload))

			// Assert
			assert.Empty(t, handler.commands)
		})
	}
}

func TestBasketEventsConsumer_HandleMessage_HandlerFailureDoesNotStallStream(t *testing.T) {
	// Arrange
	ctx := t.Context()
	handler := &recordingHandler{err: assert.AnError}
	consumer := newTestConsumer(handler)
	payload := fmt.Sprintf(
		`{"basketId":"%s","address":{"street":"Baker Street"},"volume":5}`,
		kernel.NewUUID())

	// Act: a failing command is logged and dropped, the next message is
	// still processed
	consumer.handleMessage(ctx, []byte(payload))
	consumer.handleMessage(ctx, []byte(payload))

	// Assert
	assert.Len(t, handler.commands, 2)
}
