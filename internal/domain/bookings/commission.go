package bookings

import "github.com/shopspring/decimal"

var (
	DefaultPlatformRate  = decimal.New(10, -2) // 0.10
	DefaultAffiliateRate = decimal.New(5, -2)  // 0.05
)

type CommissionBreakdown struct {
	CommissionAmount    decimal.Decimal
	AffiliateCommission decimal.Decimal
}

// CalculateCommissions derives the platform and affiliate cuts from the
// booking total. Both are independent percentages of totalAmount: the
// affiliate's share is not carved out of the platform's. A nil
// affiliateRate means no affiliate participated; a zero rate falls back to
// the default, matching how promotion records with an unset rate behave.
//
// This is the only commission computation path in the system.
func CalculateCommissions(
	totalAmount decimal.Decimal,
	promotionRate decimal.Decimal,
	affiliateRate *decimal.Decimal,
) CommissionBreakdown {
	if promotionRate.IsZero() {
		promotionRate = DefaultPlatformRate
	}

	affiliateCommission := decimal.Zero
	if affiliateRate != nil {
		rate := *affiliateRate
		if rate.IsZero() {
			rate = DefaultAffiliateRate
		}
		affiliateCommission = totalAmount.Mul(rate)
	}

	return CommissionBreakdown{
		CommissionAmount:    totalAmount.Mul(promotionRate),
		AffiliateCommission: affiliateCommission,
	}
}
