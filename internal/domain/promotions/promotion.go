package promotions

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("promotion not found")
	ErrCapacityExceeded = errors.New("promotion capacity exceeded")
)

// Promotion is a bookable offer. Definitions are owned by an external
// promotion-management flow; the booking saga only reads them and bumps
// CurrentBookings.
type Promotion struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	Currency        string           `json:"currency"`
	CommissionRate  decimal.Decimal  `json:"commission_rate"`
	MaxBookings     *int             `json:"max_bookings,omitempty"`
	CurrentBookings int              `json:"current_bookings"`
	Location        string           `json:"location"`
	BusinessName    string           `json:"business_name"`
	CoverImageURL   string           `json:"cover_image_url"`
	StartDate       time.Time        `json:"start_date"`
	EndDate         time.Time        `json:"end_date"`
}

// EffectiveUnitPrice is the discounted price when one is set.
func (p *Promotion) EffectiveUnitPrice() decimal.Decimal {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}

	return p.Price
}

// HasCapacity checks admission against max_bookings. The check is best
// effort: concurrent sagas may still overbook near the limit, the counter
// increment itself is atomic.
func (p *Promotion) HasCapacity(quantity int) bool {
	if p.MaxBookings == nil {
		return true
	}

	return p.CurrentBookings+quantity <= *p.MaxBookings
}

func (p *Promotion) CurrencyOrDefault() string {
	if p.Currency == "" {
		return "USD"
	}

	return p.Currency
}
