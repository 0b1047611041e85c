package entities

import (
	"time"

	"github.com/google/uuid"
)

// EventHeader is embedded in every published event. The idempotency key
// lets handlers deduplicate redeliveries; downstream propagation derives
// per-consumer keys from it.
type EventHeader struct {
	Id             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

// NewEventHeader returns a header with a freshly generated idempotency key.
func NewEventHeader() EventHeader {
	return EventHeader{
		Id:             uuid.NewString(),
		PublishedAt:    time.Now(),
		IdempotencyKey: uuid.NewString(),
	}
}

// NewEventHeaderWithIdempotencyKey returns a header carrying the given
// idempotency key, so retried requests publish identical events.
func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		Id:             uuid.NewString(),
		PublishedAt:    time.Now(),
		IdempotencyKey: idempotencyKey,
	}
}
