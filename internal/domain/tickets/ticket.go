package tickets

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNumberTaken is returned by the persistence layer when a generated
// ticket number collides with an existing one. The generator retries with
// a fresh number.
var ErrNumberTaken = errors.New("ticket number already taken")

// Ticket is one redeemable unit of a booking. IsUsed is flipped by the
// redemption flow, everything else is immutable after creation.
type Ticket struct {
	ID           uuid.UUID `json:"id"`
	BookingID    uuid.UUID `json:"booking_id"`
	UserID       string    `json:"user_id"`
	TicketNumber string    `json:"ticket_number"`
	ArtifactURL  string    `json:"artifact_url"`
	IsUsed       bool      `json:"is_used"`
	CreatedAt    time.Time `json:"created_at"`
}
