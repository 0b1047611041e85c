package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	domain "promobook/internal/domain/affiliates"
)

type affiliateLinkRow struct {
	ID             uuid.UUID       `db:"id"`
	ShortCode      string          `db:"short_code"`
	UserID         string          `db:"user_id"`
	CommissionRate decimal.Decimal `db:"commission_rate"`
}

type AffiliatesRepo struct {
	db *sqlx.DB
}

func NewAffiliatesRepo(db *sqlx.DB) *AffiliatesRepo {
	return &AffiliatesRepo{db: db}
}

func (r *AffiliatesRepo) GetByShortCode(ctx context.Context, code string) (*domain.AffiliateLink, error) {
	var row affiliateLinkRow

	query := `
		SELECT id, short_code, user_id, commission_rate
		FROM affiliate_links
		WHERE short_code = $1`

	err := r.db.GetContext(ctx, &row, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get affiliate link: %w", err)
	}

	return &domain.AffiliateLink{
		ID:             row.ID,
		ShortCode:      row.ShortCode,
		UserID:         row.UserID,
		CommissionRate: row.CommissionRate,
	}, nil
}
