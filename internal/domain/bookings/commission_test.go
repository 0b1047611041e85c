package bookings_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"promobook/internal/domain/bookings"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateCommissions(t *testing.T) {
	tests := []struct {
		name             string
		totalAmount      decimal.Decimal
		promotionRate    decimal.Decimal
		affiliateRate    *decimal.Decimal
		wantCommission   decimal.Decimal
		wantAffiliateCut decimal.Decimal
	}{
		{
			name:             "defaults with affiliate",
			totalAmount:      dec("240"),
			promotionRate:    decimal.Zero,
			affiliateRate:    ptr(decimal.Zero),
			wantCommission:   dec("24"),
			wantAffiliateCut: dec("12"),
		},
		{
			name:             "no affiliate",
			totalAmount:      dec("240"),
			promotionRate:    decimal.Zero,
			affiliateRate:    nil,
			wantCommission:   dec("24"),
			wantAffiliateCut: decimal.Zero,
		},
		{
			name:             "explicit rates",
			totalAmount:      dec("1000"),
			promotionRate:    dec("0.15"),
			affiliateRate:    ptr(dec("0.08")),
			wantCommission:   dec("150"),
			wantAffiliateCut: dec("80"),
		},
		{
			name:             "zero affiliate rate falls back to default",
			totalAmount:      dec("100"),
			promotionRate:    dec("0.10"),
			affiliateRate:    ptr(decimal.Zero),
			wantCommission:   dec("10"),
			wantAffiliateCut: dec("5"),
		},
		{
			name:             "fractional total stays exact",
			totalAmount:      dec("79.99"),
			promotionRate:    dec("0.10"),
			affiliateRate:    ptr(dec("0.05")),
			wantCommission:   dec("7.999"),
			wantAffiliateCut: dec("3.9995"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bookings.CalculateCommissions(tt.totalAmount, tt.promotionRate, tt.affiliateRate)

			assert.True(t, got.CommissionAmount.Equal(tt.wantCommission),
				"commission: got %s, want %s", got.CommissionAmount, tt.wantCommission)
			assert.True(t, got.AffiliateCommission.Equal(tt.wantAffiliateCut),
				"affiliate: got %s, want %s", got.AffiliateCommission, tt.wantAffiliateCut)
		})
	}
}

// The cuts are independent percentages of the total: the affiliate's share
// is not carved out of the platform's.
func TestCalculateCommissions_Independent(t *testing.T) {
	rate := dec("0.05")
	got := bookings.CalculateCommissions(dec("200"), dec("0.10"), &rate)

	assert.True(t, got.CommissionAmount.Equal(dec("20")))
	assert.True(t, got.AffiliateCommission.Equal(dec("10")))
}

func TestCalculateCommissions_LargeQuantityExact(t *testing.T) {
	// 10000 units at 33.33 each: float math would drift here
	total := dec("33.33").Mul(decimal.NewFromInt(10000))
	got := bookings.CalculateCommissions(total, dec("0.10"), nil)

	assert.True(t, got.CommissionAmount.Equal(dec("33330")),
		"got %s", got.CommissionAmount)
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }
