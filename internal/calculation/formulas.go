package calculation

import (
	"github.com/prepaylab/prepay-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places kept by intermediate results.
// Products are rounded to it so repeated multiplication does not grow the
// operands without bound.
const Scale = 20

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)

	// maxAnnuityFactor bounds (1+r)^n. Beyond it the rate is so high that the
	// payment is indistinguishable from the interest.
	maxAnnuityFactor = decimal.New(1, 308)
)

func mul(a, b decimal.Decimal) decimal.Decimal { return a.Mul(b).Round(Scale) }

func div(a, b decimal.Decimal) decimal.Decimal { return a.DivRound(b, Scale) }

// clampZero treats values within Epsilon of zero as zero.
func clampZero(v decimal.Decimal) decimal.Decimal {
	if v.Abs().LessThanOrEqual(domain.Epsilon) {
		return decimal.Zero
	}
	return v
}

// growthFactor returns (1+rate)^periods by repeated squaring, failing once the
// factor leaves the representable range. rate is never negative, so every
// intermediate product only grows.
func growthFactor(rate decimal.Decimal, periods int) (decimal.Decimal, error) {
	base := one.Add(rate)
	result := one
	for n := periods; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = mul(result, base)
			if result.GreaterThan(maxAnnuityFactor) {
				return decimal.Zero, &domain.ArithmeticError{Message: "利率过高，年金系数超出可计算范围"}
			}
		}
		if n > 1 {
			base = mul(base, base)
			if base.GreaterThan(maxAnnuityFactor) {
				return decimal.Zero, &domain.ArithmeticError{Message: "利率过高，年金系数超出可计算范围"}
			}
		}
	}
	return result, nil
}

// MonthlyRate converts an annual percentage rate into a monthly decimal rate.
func MonthlyRate(annualRatePercent decimal.Decimal) (decimal.Decimal, error) {
	if annualRatePercent.IsNegative() {
		return decimal.Zero, domain.NewValidationError("annual_rate", "年利率必须 >= 0")
	}
	return div(div(annualRatePercent, hundred), twelve), nil
}

// EPIPayment returns the fixed total payment that amortizes principal over
// months periods (等额本息). A zero rate degrades to straight-line repayment.
func EPIPayment(principal, monthlyRate decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, domain.NewValidationError("term_months", "总期数必须 > 0")
	}
	if monthlyRate.IsZero() {
		return div(principal, decimal.NewFromInt(int64(months))), nil
	}
	factor, err := growthFactor(monthlyRate, months)
	if err != nil {
		return decimal.Zero, err
	}
	return div(mul(principal, mul(monthlyRate, factor)), factor.Sub(one)), nil
}

// EPIRemainingPrincipal returns the balance left after paidMonths equal
// payments, using the future value of an annuity.
func EPIRemainingPrincipal(principal, monthlyRate decimal.Decimal, months, paidMonths int, payment decimal.Decimal) (decimal.Decimal, error) {
	if paidMonths <= 0 {
		return principal, nil
	}
	if paidMonths >= months {
		return decimal.Zero, nil
	}
	paid := decimal.NewFromInt(int64(paidMonths))
	if monthlyRate.IsZero() {
		return nonNegative(clampZero(principal.Sub(payment.Mul(paid)))), nil
	}
	factor, err := growthFactor(monthlyRate, paidMonths)
	if err != nil {
		return decimal.Zero, err
	}
	remaining := mul(principal, factor).Sub(div(mul(payment, factor.Sub(one)), monthlyRate))
	return nonNegative(clampZero(remaining)), nil
}

// EPPrincipalPayment returns the fixed principal portion of each period for
// equal-principal repayment (等额本金).
func EPPrincipalPayment(principal decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, domain.NewValidationError("term_months", "总期数必须 > 0")
	}
	return div(principal, decimal.NewFromInt(int64(months))), nil
}

// EPRemainingPrincipal returns the balance left after paidMonths fixed
// principal payments.
func EPRemainingPrincipal(principal, principalPayment decimal.Decimal, paidMonths int) decimal.Decimal {
	if paidMonths <= 0 {
		return principal
	}
	remaining := principal.Sub(principalPayment.Mul(decimal.NewFromInt(int64(paidMonths))))
	return nonNegative(clampZero(remaining))
}

// EPTotalInterest sums the interest of an equal-principal loan in closed form.
// The balances form an arithmetic series: n*P - p*(n-1)*n/2.
func EPTotalInterest(principal, monthlyRate decimal.Decimal, months int) (decimal.Decimal, error) {
	if monthlyRate.IsZero() {
		return decimal.Zero, nil
	}
	p, err := EPPrincipalPayment(principal, months)
	if err != nil {
		return decimal.Zero, err
	}
	n := decimal.NewFromInt(int64(months))
	sumOfBalances := n.Mul(principal).Sub(div(p.Mul(n.Sub(one)).Mul(n), decimal.NewFromInt(2)))
	return mul(sumOfBalances, monthlyRate), nil
}

func nonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
