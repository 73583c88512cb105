package usecase

import (
	"time"

	"github.com/google/uuid"
)

// OutboxStatus — статус события в транзакционном outbox.
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "PENDING"
	OutboxProcessing OutboxStatus = "PROCESSING"
	OutboxProcessed  OutboxStatus = "PROCESSED"
)

// OutboxEventType — тип доменного события.
type OutboxEventType string

const (
	EventRefreshEnqueued OutboxEventType = "refresh.enqueued"
)

// OutboxEvent — событие, записываемое в одной транзакции с изменением
// очереди регенерации и публикуемое в брокер фоновым воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	SKU         string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

func NewOutboxEvent(eventType OutboxEventType, sku string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		SKU:       sku,
		Payload:   payload,
		Status:    OutboxPending,
	}
}
