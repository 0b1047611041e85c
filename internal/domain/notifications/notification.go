package notifications

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBookingConfirmation Type = "booking_confirmation"
	TypeTicketIssued        Type = "ticket_issued"
	TypeItineraryRSVP       Type = "itinerary_rsvp"
	TypePromotionApproved   Type = "promotion_approved"
	TypeAffiliateConversion Type = "affiliate_conversion"
	TypeSystemMessage       Type = "system_message"
)

// Notification is an append-only record; only IsRead/ReadAt are mutated,
// by the notification-center flow.
type Notification struct {
	ID        uuid.UUID      `json:"id"`
	UserID    string         `json:"user_id"`
	Type      Type           `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	LinkURL   string         `json:"link_url,omitempty"`
	ImageURL  string         `json:"image_url,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
}

// ListOptions filters a user's notification feed.
type ListOptions struct {
	Limit      int
	Offset     int
	Types      []Type
	UnreadOnly bool
}
