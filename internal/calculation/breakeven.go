package calculation

import (
	"github.com/prepaylab/prepay-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculatePenaltyBreakEven finds the first period after the prepayment in
// which the cumulative interest saved covers the penalty. The comparison runs
// the original schedule from the prepayment date against the new one.
func (ce *CalculationEngine) CalculatePenaltyBreakEven(in domain.LoanInputs) (*domain.PenaltyBreakEven, error) {
	in.IncludeSchedule = true
	result, err := ce.Calculate(in)
	if err != nil {
		return nil, err
	}
	penalty := result.Summary.PrepayPenalty
	if !penalty.IsPositive() {
		return &domain.PenaltyBreakEven{Reached: true}, nil
	}

	rate, err := MonthlyRate(in.AnnualRatePercent)
	if err != nil {
		return nil, err
	}
	pos, err := ce.position(in, rate)
	if err != nil {
		return nil, err
	}
	var policy PaymentPolicy = EPIPolicy{Payment: pos.originalMonthlyPayment}
	if in.RepaymentType == domain.RepaymentEP {
		policy = EPPolicy{PrincipalPayment: pos.originalPrincipalPayment}
	}
	original, err := Simulate(pos.remainingPrincipalBefore, rate, policy, in.RemainingTerm(), true)
	if err != nil {
		return nil, err
	}

	be := CumulativeBreakEven(original.Rows, result.ScheduleAfter, penalty)
	if be.Reached {
		ce.Logger.Debugf("penalty %s recovered in period %d after prepayment", penalty.StringFixed(2), be.Month)
	} else {
		ce.Logger.Debugf("penalty %s not recovered within the remaining term", penalty.StringFixed(2))
	}
	return be, nil
}

// CumulativeBreakEven compares the interest of two schedules period by period
// and returns the first period where the cumulative saving reaches penalty.
// Periods missing from after (the loan is already repaid) save all interest.
func CumulativeBreakEven(before, after []domain.PeriodRow, penalty decimal.Decimal) *domain.PenaltyBreakEven {
	if !penalty.IsPositive() {
		return &domain.PenaltyBreakEven{Reached: true}
	}
	saved := decimal.Zero
	for i, row := range before {
		saved = saved.Add(row.InterestPaid)
		if i < len(after) {
			saved = saved.Sub(after[i].InterestPaid)
		}
		if saved.GreaterThanOrEqual(penalty.Sub(domain.Epsilon)) {
			return &domain.PenaltyBreakEven{Month: i + 1, Reached: true}
		}
	}
	return &domain.PenaltyBreakEven{}
}
