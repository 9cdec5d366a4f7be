// Package outboxrepo persists outbox messages alongside the aggregates that
// produced them, so event rows commit in the same transaction.
package outboxrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO represents the database structure for persisting outbox messages.
type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Payload     []byte `gorm:"type:bytea"`
	OccurredAt  time.Time
	ProcessedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(message *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          message.ID().Bytes(),
		Name:        message.Name(),
		Payload:     message.Payload(),
		OccurredAt:  message.OccurredAt(),
		ProcessedAt: message.ProcessedAt(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(id, dto.Name, dto.Payload, dto.OccurredAt, dto.ProcessedAt)
}
