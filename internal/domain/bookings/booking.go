package bookings

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

var (
	ErrUnauthenticated = errors.New("caller is not authenticated")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrPaymentDeclined = errors.New("payment declined")
	ErrNotFound        = errors.New("booking not found")
)

// Booking is a confirmed purchase of N units of a promotion. Monetary
// fields are computed once at creation and never recomputed.
type Booking struct {
	ID                  uuid.UUID       `json:"id"`
	PromotionID         uuid.UUID       `json:"promotion_id"`
	UserID              string          `json:"user_id"`
	AffiliateLinkID     *uuid.UUID      `json:"affiliate_link_id,omitempty"`
	Quantity            int             `json:"quantity"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	CommissionAmount    decimal.Decimal `json:"commission_amount"`
	AffiliateCommission decimal.Decimal `json:"affiliate_commission"`
	Currency            string          `json:"currency"`
	Status              Status          `json:"status"`
	PaymentReference    string          `json:"payment_reference"`
	PaymentStatus       string          `json:"payment_status"`
	BookingDate         time.Time       `json:"booking_date"`
	TravelDate          time.Time       `json:"travel_date"`
}

// ChargeRequest is the contract the saga hands to the payment gateway.
type ChargeRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	IdempotencyKey string          `json:"idempotency_key"`
}

const PaymentStatusSucceeded = "succeeded"

// Payment is the gateway's answer to a charge.
type Payment struct {
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

// InconsistencyError marks the one failure class that must not be logged
// and forgotten: money was captured but the booking row could not be
// written. It needs manual reconciliation.
type InconsistencyError struct {
	BookingID        uuid.UUID
	PaymentReference string
	Err              error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf(
		"booking %s not persisted after successful charge %s: %v",
		e.BookingID, e.PaymentReference, e.Err,
	)
}

func (e *InconsistencyError) Unwrap() error {
	return e.Err
}
