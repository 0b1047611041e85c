package entities

import (
	"time"

	"github.com/google/uuid"
)

type Event interface {
	IsInternal() bool
}

// BookingConfirmed_v1 is published in the same transaction as the booking
// row, through the outbox, so a confirmed booking always gets its
// confirmation fan-out.
type BookingConfirmed_v1 struct {
	Header EventHeader `json:"header"`

	BookingID      uuid.UUID `json:"booking_id"`
	UserID         string    `json:"user_id"`
	UserEmail      string    `json:"user_email"`
	UserName       string    `json:"user_name"`
	PromotionID    uuid.UUID `json:"promotion_id"`
	PromotionTitle string    `json:"promotion_title"`
	Location       string    `json:"location"`
	CoverImageURL  string    `json:"cover_image_url"`
	Quantity       int       `json:"quantity"`
	TotalAmount    Money     `json:"total_amount"`
	TravelDate     time.Time `json:"travel_date"`
}

func (e BookingConfirmed_v1) IsInternal() bool {
	return false
}

// TicketBatchIssued_v1 reports how many tickets actually materialized for a
// booking. Issued may be less than Requested when artifact generation or
// persistence failed for some units.
type TicketBatchIssued_v1 struct {
	Header EventHeader `json:"header"`

	BookingID      uuid.UUID   `json:"booking_id"`
	UserID         string      `json:"user_id"`
	PromotionID    uuid.UUID   `json:"promotion_id"`
	PromotionTitle string      `json:"promotion_title"`
	Requested      int         `json:"requested"`
	Issued         int         `json:"issued"`
	TicketIDs      []uuid.UUID `json:"ticket_ids"`
	ArtifactURL    string      `json:"artifact_url"`
}

func (e TicketBatchIssued_v1) IsInternal() bool {
	return false
}

type AffiliateConverted_v1 struct {
	Header EventHeader `json:"header"`

	AffiliateLinkID uuid.UUID `json:"affiliate_link_id"`
	AffiliateUserID string    `json:"affiliate_user_id"`
	BookingID       uuid.UUID `json:"booking_id"`
	PromotionID     uuid.UUID `json:"promotion_id"`
	PromotionTitle  string    `json:"promotion_title"`
	Amount          Money     `json:"amount"`
	Commission      Money     `json:"commission"`
}

func (e AffiliateConverted_v1) IsInternal() bool {
	return false
}
