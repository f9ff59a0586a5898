package calculation

import "github.com/shopspring/decimal"

// CalcPenalty returns the prepayment penalty on base. The rate-based and the
// fixed fee are alternatives: the larger one applies, not their sum. No
// penalty is due once paidMonths reaches the penalty-free window.
func CalcPenalty(base, penaltyRatePercent, penaltyFixed decimal.Decimal, paidMonths int, penaltyFreeMonths *int) decimal.Decimal {
	if penaltyFreeMonths != nil && paidMonths >= *penaltyFreeMonths {
		return decimal.Zero
	}
	byRate := decimal.Zero
	if penaltyRatePercent.IsPositive() {
		byRate = mul(base, div(penaltyRatePercent, hundred))
	}
	byFixed := decimal.Zero
	if penaltyFixed.IsPositive() {
		byFixed = penaltyFixed
	}
	return decimal.Max(byRate, byFixed)
}
