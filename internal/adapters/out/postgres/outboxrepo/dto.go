// Package outboxrepo stores domain events in the outbox table inside the
// transaction of the change that raised them.
package outboxrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OutboxDTO is the outbox row. DedupKey is NULL for events that may repeat; the
// unique index only constrains non-NULL keys.
type OutboxDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID      `gorm:"type:uuid;not null;index"`
	DedupKey    *string        `gorm:"type:varchar(128);uniqueIndex"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time      `gorm:"not null"`
	SentAt      *time.Time     `gorm:"index"`
}

func (OutboxDTO) TableName() string {
	return "outbox"
}

func fromEvent(e kernel.DomainEvent) (OutboxDTO, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return OutboxDTO{}, fmt.Errorf("marshal %s event: %w", e.EventName(), err)
	}

	var dedupKey *string
	if key := e.DedupKey(); key != "" {
		dedupKey = &key
	}

	return OutboxDTO{
		ID:          e.EventID().Google(),
		Name:        e.EventName(),
		AggregateID: e.AggregateID().Google(),
		DedupKey:    dedupKey,
		Payload:     datatypes.JSON(payload),
		OccurredAt:  e.OccurredAt(),
	}, nil
}

func toMessage(dto OutboxDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromGoogle(dto.AggregateID)
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	msg := ports.OutboxMessage{
		ID:          id,
		Name:        dto.Name,
		AggregateID: aggregateID,
		Payload:     []byte(dto.Payload),
		OccurredAt:  dto.OccurredAt,
	}
	if dto.DedupKey != nil {
		msg.DedupKey = *dto.DedupKey
	}
	return msg, nil
}
