package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	domain "promobook/internal/domain/bookings"
)

type bookingRow struct {
	ID                  uuid.UUID       `db:"id"`
	PromotionID         uuid.UUID       `db:"promotion_id"`
	UserID              string          `db:"user_id"`
	AffiliateLinkID     uuid.NullUUID   `db:"affiliate_link_id"`
	Quantity            int             `db:"quantity"`
	TotalAmount         decimal.Decimal `db:"total_amount"`
	CommissionAmount    decimal.Decimal `db:"commission_amount"`
	AffiliateCommission decimal.Decimal `db:"affiliate_commission"`
	Currency            string          `db:"currency"`
	Status              string          `db:"status"`
	PaymentReference    string          `db:"payment_reference"`
	PaymentStatus       string          `db:"payment_status"`
	BookingDate         time.Time       `db:"booking_date"`
	TravelDate          time.Time       `db:"travel_date"`
}

type BookingsRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewBookingsRepo(db *sqlx.DB, getter *trmsqlx.CtxGetter) *BookingsRepo {
	return &BookingsRepo{db: db, getter: getter}
}

// CreateBooking runs on the transaction from the context when the saga
// opened one, so the booking row and its outbox event commit together.
func (r *BookingsRepo) CreateBooking(ctx context.Context, booking domain.Booking) error {
	query := `
		INSERT INTO bookings (
			id, promotion_id, user_id, affiliate_link_id, quantity,
			total_amount, commission_amount, affiliate_commission, currency,
			status, payment_reference, payment_status, booking_date, travel_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)`

	affiliateLinkID := uuid.NullUUID{}
	if booking.AffiliateLinkID != nil {
		affiliateLinkID = uuid.NullUUID{UUID: *booking.AffiliateLinkID, Valid: true}
	}

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		booking.ID,
		booking.PromotionID,
		booking.UserID,
		affiliateLinkID,
		booking.Quantity,
		booking.TotalAmount,
		booking.CommissionAmount,
		booking.AffiliateCommission,
		booking.Currency,
		booking.Status,
		booking.PaymentReference,
		booking.PaymentStatus,
		booking.BookingDate,
		booking.TravelDate,
	)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *BookingsRepo) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var row bookingRow

	query := `
		SELECT id, promotion_id, user_id, affiliate_link_id, quantity,
			total_amount, commission_amount, affiliate_commission, currency,
			status, payment_reference, payment_status, booking_date, travel_date
		FROM bookings
		WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	booking := &domain.Booking{
		ID:                  row.ID,
		PromotionID:         row.PromotionID,
		UserID:              row.UserID,
		Quantity:            row.Quantity,
		TotalAmount:         row.TotalAmount,
		CommissionAmount:    row.CommissionAmount,
		AffiliateCommission: row.AffiliateCommission,
		Currency:            row.Currency,
		Status:              domain.Status(row.Status),
		PaymentReference:    row.PaymentReference,
		PaymentStatus:       row.PaymentStatus,
		BookingDate:         row.BookingDate,
		TravelDate:          row.TravelDate,
	}

	if row.AffiliateLinkID.Valid {
		id := row.AffiliateLinkID.UUID
		booking.AffiliateLinkID = &id
	}

	return booking, nil
}
