package affiliates

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("affiliate link not found")

// AffiliateLink maps a short referral code to its owning user. Immutable
// once created, the saga only reads it.
type AffiliateLink struct {
	ID             uuid.UUID       `json:"id"`
	ShortCode      string          `json:"short_code"`
	UserID         string          `json:"user_id"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}
