package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	domain "promobook/internal/domain/promotions"
)

type promotionRow struct {
	ID              uuid.UUID           `db:"id"`
	Title           string              `db:"title"`
	Price           decimal.Decimal     `db:"price"`
	DiscountedPrice decimal.NullDecimal `db:"discounted_price"`
	Currency        string              `db:"currency"`
	CommissionRate  decimal.Decimal     `db:"commission_rate"`
	MaxBookings     sql.NullInt64       `db:"max_bookings"`
	CurrentBookings int                 `db:"current_bookings"`
	Location        string              `db:"location"`
	BusinessName    string              `db:"business_name"`
	CoverImageURL   string              `db:"cover_image_url"`
	StartDate       time.Time           `db:"start_date"`
	EndDate         time.Time           `db:"end_date"`
}

type PromotionsRepo struct {
	db *sqlx.DB
}

func NewPromotionsRepo(db *sqlx.DB) *PromotionsRepo {
	return &PromotionsRepo{db: db}
}

func (r *PromotionsRepo) GetPromotion(ctx context.Context, id uuid.UUID) (*domain.Promotion, error) {
	var row promotionRow

	query := `
		SELECT id, title, price, discounted_price, currency, commission_rate,
			max_bookings, current_bookings, location, business_name,
			cover_image_url, start_date, end_date
		FROM promotions
		WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get promotion: %w", err)
	}

	return rowToPromotion(row), nil
}

// IncrementBookings bumps the capacity counter with a single atomic
// update, so concurrent sagas against the same promotion never lose an
// increment.
func (r *PromotionsRepo) IncrementBookings(ctx context.Context, id uuid.UUID, by int) error {
	query := `
		UPDATE promotions
		SET current_bookings = current_bookings + $2
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, by)
	if err != nil {
		return fmt.Errorf("increment promotion bookings: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func rowToPromotion(row promotionRow) *domain.Promotion {
	p := &domain.Promotion{
		ID:              row.ID,
		Title:           row.Title,
		Price:           row.Price,
		Currency:        row.Currency,
		CommissionRate:  row.CommissionRate,
		CurrentBookings: row.CurrentBookings,
		Location:        row.Location,
		BusinessName:    row.BusinessName,
		CoverImageURL:   row.CoverImageURL,
		StartDate:       row.StartDate,
		EndDate:         row.EndDate,
	}

	if row.DiscountedPrice.Valid {
		price := row.DiscountedPrice.Decimal
		p.DiscountedPrice = &price
	}

	if row.MaxBookings.Valid {
		max := int(row.MaxBookings.Int64)
		p.MaxBookings = &max
	}

	return p
}
