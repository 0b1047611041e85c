package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingSummary carries the human-facing details both email templates need.
type BookingSummary struct {
	Title        string          `json:"title"`
	TravelDate   time.Time       `json:"travel_date"`
	Location     string          `json:"location"`
	BusinessName string          `json:"business_name,omitempty"`
	Quantity     int             `json:"quantity"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
}

type ConfirmationEmail struct {
	To        string         `json:"to"`
	Name      string         `json:"name"`
	BookingID uuid.UUID      `json:"booking_id"`
	Summary   BookingSummary `json:"summary"`
}

// TicketEmail is sent once per issued ticket and carries the scannable
// artifact. Each ticket admits one person, so Summary.Quantity is 1 and
// Summary.Amount is the unit price.
type TicketEmail struct {
	To           string         `json:"to"`
	Name         string         `json:"name"`
	TicketNumber string         `json:"ticket_number"`
	ArtifactURL  string         `json:"artifact_url"`
	Summary      BookingSummary `json:"summary"`
}
