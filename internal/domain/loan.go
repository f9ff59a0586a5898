package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Epsilon is the balance below which a loan is considered repaid.
var Epsilon = decimal.New(1, -8)

// MaxTermMonths bounds the contractual term and any open-ended simulation.
const MaxTermMonths = 1200

// RepaymentType selects the amortization method of the loan
type RepaymentType string

const (
	// RepaymentEPI is equal total payment per period (等额本息)
	RepaymentEPI RepaymentType = "EPI"
	// RepaymentEP is equal principal payment per period (等额本金)
	RepaymentEP RepaymentType = "EP"
)

// ParseRepaymentType accepts EPI/EP in any case.
func ParseRepaymentType(s string) (RepaymentType, error) {
	switch RepaymentType(strings.ToUpper(strings.TrimSpace(s))) {
	case RepaymentEPI:
		return RepaymentEPI, nil
	case RepaymentEP:
		return RepaymentEP, nil
	}
	return "", fmt.Errorf("unknown repayment type %q", s)
}

// PrepayType is the stated intent of the prepayment request
type PrepayType string

const (
	PrepayPartial PrepayType = "partial"
	PrepayFull    PrepayType = "full"
)

// ParsePrepayType accepts partial/full in any case.
func ParsePrepayType(s string) (PrepayType, error) {
	switch PrepayType(strings.ToLower(strings.TrimSpace(s))) {
	case PrepayPartial:
		return PrepayPartial, nil
	case PrepayFull:
		return PrepayFull, nil
	}
	return "", fmt.Errorf("unknown prepay type %q", s)
}

// Strategy decides what a partial prepayment shortens: the term or the payment
type Strategy string

const (
	StrategyReduceTerm    Strategy = "reduce_term"
	StrategyReducePayment Strategy = "reduce_payment"
)

// ParseStrategy accepts reduce_term/reduce_payment in any case.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyReduceTerm:
		return StrategyReduceTerm, nil
	case StrategyReducePayment:
		return StrategyReducePayment, nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// LoanInputs is the validated input of a single calculation.
// Optional numeric fields are pointers: nil means the field was not supplied,
// which is different from an explicit zero.
type LoanInputs struct {
	Principal          decimal.Decimal  `json:"principal"`
	AnnualRatePercent  decimal.Decimal  `json:"annual_rate"`
	TermMonths         int              `json:"term_months"`
	RepaymentType      RepaymentType    `json:"repayment_type"`
	PaidMonths         int              `json:"paid_months"`
	PrepayType         PrepayType       `json:"prepay_type"`
	Strategy           Strategy         `json:"strategy"`
	PrepayAmount       decimal.Decimal  `json:"prepay_amount"`
	PenaltyRatePercent decimal.Decimal  `json:"penalty_rate"`
	PenaltyFixed       decimal.Decimal  `json:"penalty_fixed"`
	PenaltyFreeMonths  *int             `json:"penalty_free_months,omitempty"`
	MinPrepayAmount    *decimal.Decimal `json:"min_prepay_amount,omitempty"`
	IncludeSchedule    bool             `json:"include_schedule"`
}

// RemainingTerm returns the number of contractual periods not yet paid.
func (in LoanInputs) RemainingTerm() int {
	return in.TermMonths - in.PaidMonths
}

// PeriodRow is one simulated month of a repayment schedule
type PeriodRow struct {
	Period        int             `json:"period"`
	Payment       decimal.Decimal `json:"payment"`
	PrincipalPaid decimal.Decimal `json:"principal_paid"`
	InterestPaid  decimal.Decimal `json:"interest_paid"`
	Balance       decimal.Decimal `json:"balance"`
}

// Summary holds the headline figures of a prepayment calculation.
// Values keep full precision; rounding happens when the summary is rendered.
type Summary struct {
	OriginalMonthlyPayment   decimal.Decimal `json:"original_monthly_payment"`
	OriginalTotalInterest    decimal.Decimal `json:"original_total_interest"`
	RemainingPrincipalBefore decimal.Decimal `json:"remaining_principal_before"`
	InterestRemainingBefore  decimal.Decimal `json:"interest_remaining_before"`
	PrepayPenalty            decimal.Decimal `json:"prepay_penalty"`
	RemainingPrincipalAfter  decimal.Decimal `json:"remaining_principal_after"`
	NewMonthlyPayment        decimal.Decimal `json:"new_monthly_payment"`
	NewTermMonthsRemaining   int             `json:"new_term_months_remaining"`
	InterestRemainingAfter   decimal.Decimal `json:"interest_remaining_after"`
	InterestSavedGross       decimal.Decimal `json:"interest_saved_gross"`
	InterestSavedNet         decimal.Decimal `json:"interest_saved_net"`
	SettlementAmount         decimal.Decimal `json:"settlement_amount"`
	EffectivePrepayType      PrepayType      `json:"effective_prepay_type"`
}

// CalculationResult is the complete outcome of one calculation
type CalculationResult struct {
	Summary       Summary     `json:"summary"`
	Warnings      []string    `json:"warnings"`
	ScheduleAfter []PeriodRow `json:"schedule_after"`
}

// PenaltyBreakEven tells when the interest a prepayment saves has repaid
// its penalty. Month counts periods after the prepayment; it is 0 when no
// penalty is due.
type PenaltyBreakEven struct {
	Month   int  `json:"month"`
	Reached bool `json:"reached"`
}

// ScenarioResult pairs a named prepayment proposal with its outcome
type ScenarioResult struct {
	Name   string            `json:"name"`
	Inputs LoanInputs        `json:"inputs"`
	Result CalculationResult `json:"result"`
	// FirstPaymentDate dates the schedule rows when known (YYYY-MM-DD).
	FirstPaymentDate string            `json:"first_payment_date,omitempty"`
	BreakEven        *PenaltyBreakEven `json:"break_even,omitempty"`
}

// ScenarioComparison collects the outcomes of every scenario of a configuration
type ScenarioComparison struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Notes     []string         `json:"notes"`
}
