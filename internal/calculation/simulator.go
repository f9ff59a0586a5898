package calculation

import (
	"errors"
	"fmt"

	"github.com/prepaylab/prepay-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// OpenEnded as a period cap simulates until the balance is repaid.
const OpenEnded = 0

// PaymentPolicy decides how much principal a period repays.
type PaymentPolicy interface {
	// Split returns the principal portion and total payment for a period that
	// accrues interest, before the final-period correction is applied.
	Split(interest decimal.Decimal) (principal, payment decimal.Decimal, err error)
	Name() string
}

// EPIPolicy pays a fixed total amount each period; principal is what is left
// after interest.
type EPIPolicy struct {
	Payment decimal.Decimal
}

func (p EPIPolicy) Name() string { return string(domain.RepaymentEPI) }

func (p EPIPolicy) Split(interest decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	principal := p.Payment.Sub(interest)
	if !principal.IsPositive() {
		return decimal.Zero, decimal.Zero, &domain.ArithmeticError{Message: "月供不足以覆盖利息"}
	}
	return principal, p.Payment, nil
}

// EPPolicy repays a fixed principal amount each period; the payment declines
// with the interest.
type EPPolicy struct {
	PrincipalPayment decimal.Decimal
}

func (p EPPolicy) Name() string { return string(domain.RepaymentEP) }

func (p EPPolicy) Split(interest decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if !p.PrincipalPayment.IsPositive() {
		return decimal.Zero, decimal.Zero, &domain.ArithmeticError{Message: "每期还款本金必须 > 0"}
	}
	return p.PrincipalPayment, p.PrincipalPayment.Add(interest), nil
}

// SimulationResult summarizes a simulated repayment run.
type SimulationResult struct {
	Periods       int
	TotalInterest decimal.Decimal
	// FirstPayment is the payment of period 1, recorded even when rows are not.
	FirstPayment decimal.Decimal
	Rows         []domain.PeriodRow
}

// Simulate amortizes balance month by month under policy. A periodCap of
// OpenEnded runs until the balance is exhausted; otherwise the run stops after
// periodCap periods and the last period repays whatever is left.
func Simulate(balance, monthlyRate decimal.Decimal, policy PaymentPolicy, periodCap int, recordRows bool) (SimulationResult, error) {
	if periodCap < 0 {
		return SimulationResult{}, domain.NewValidationError("term_months", fmt.Sprintf("期数上限不合法: %d", periodCap))
	}
	res := SimulationResult{TotalInterest: decimal.Zero, FirstPayment: decimal.Zero}
	for balance.GreaterThan(domain.Epsilon) && (periodCap == OpenEnded || res.Periods < periodCap) {
		if periodCap == OpenEnded && res.Periods >= domain.MaxTermMonths {
			return SimulationResult{}, &domain.ArithmeticError{
				Message: fmt.Sprintf("按当前还款方式无法在 %d 期内还清", domain.MaxTermMonths),
			}
		}

		interest := mul(balance, monthlyRate)
		principal, payment, err := policy.Split(interest)
		if err != nil {
			var ae *domain.ArithmeticError
			if errors.As(err, &ae) {
				ae.Period = res.Periods + 1
			}
			return SimulationResult{}, err
		}

		isLast := periodCap != OpenEnded && res.Periods+1 >= periodCap
		if principal.GreaterThan(balance) || isLast {
			principal = balance
			payment = principal.Add(interest)
		}

		balance = nonNegative(clampZero(balance.Sub(principal)))
		res.Periods++
		res.TotalInterest = res.TotalInterest.Add(interest)
		if res.Periods == 1 {
			res.FirstPayment = payment
		}

		if recordRows {
			res.Rows = append(res.Rows, domain.PeriodRow{
				Period:        res.Periods,
				Payment:       payment,
				PrincipalPaid: principal,
				InterestPaid:  interest,
				Balance:       balance,
			})
		}
	}
	return res, nil
}
