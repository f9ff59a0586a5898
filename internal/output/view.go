package output

import (
	"github.com/prepaylab/prepay-calculator/internal/domain"
	"github.com/prepaylab/prepay-calculator/pkg/dateutil"
	"github.com/prepaylab/prepay-calculator/pkg/decimal"
	stddec "github.com/shopspring/decimal"
)

// SummaryView is the rendered form of domain.Summary: every amount is rounded
// to cents and serialized as a decimal string.
type SummaryView struct {
	OriginalMonthlyPayment   decimal.Money     `json:"original_monthly_payment" yaml:"original_monthly_payment"`
	OriginalTotalInterest    decimal.Money     `json:"original_total_interest" yaml:"original_total_interest"`
	RemainingPrincipalBefore decimal.Money     `json:"remaining_principal_before" yaml:"remaining_principal_before"`
	InterestRemainingBefore  decimal.Money     `json:"interest_remaining_before" yaml:"interest_remaining_before"`
	PrepayPenalty            decimal.Money     `json:"prepay_penalty" yaml:"prepay_penalty"`
	RemainingPrincipalAfter  decimal.Money     `json:"remaining_principal_after" yaml:"remaining_principal_after"`
	NewMonthlyPayment        decimal.Money     `json:"new_monthly_payment" yaml:"new_monthly_payment"`
	NewTermMonthsRemaining   int               `json:"new_term_months_remaining" yaml:"new_term_months_remaining"`
	InterestRemainingAfter   decimal.Money     `json:"interest_remaining_after" yaml:"interest_remaining_after"`
	InterestSavedGross       decimal.Money     `json:"interest_saved_gross" yaml:"interest_saved_gross"`
	InterestSavedNet         decimal.Money     `json:"interest_saved_net" yaml:"interest_saved_net"`
	SettlementAmount         decimal.Money     `json:"settlement_amount" yaml:"settlement_amount"`
	EffectivePrepayType      domain.PrepayType `json:"effective_prepay_type" yaml:"effective_prepay_type"`
}

// RowView is one rendered schedule row. DueDate is set when the loan's first
// payment date is known.
type RowView struct {
	Period        int           `json:"period"`
	DueDate       string        `json:"due_date,omitempty"`
	Payment       decimal.Money `json:"payment"`
	PrincipalPaid decimal.Money `json:"principal_paid"`
	InterestPaid  decimal.Money `json:"interest_paid"`
	Balance       decimal.Money `json:"balance"`
}

// ResultView is the rendered form of a single calculation, together with
// the normalized inputs it ran on.
type ResultView struct {
	Inputs        domain.LoanInputs `json:"inputs"`
	Summary       SummaryView       `json:"summary"`
	Warnings      []string          `json:"warnings"`
	ScheduleAfter []RowView         `json:"schedule_after"`
}

// ScenarioView is a rendered scenario of a comparison.
type ScenarioView struct {
	Name      string                   `json:"name"`
	BreakEven *domain.PenaltyBreakEven `json:"penalty_break_even,omitempty"`
	ResultView
}

// ComparisonView is the rendered form of a scenario comparison.
type ComparisonView struct {
	Scenarios      []ScenarioView  `json:"scenarios"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
	Notes          []string        `json:"notes"`
}

// NewSummaryView rounds a summary for presentation.
func NewSummaryView(s domain.Summary) SummaryView {
	return SummaryView{
		OriginalMonthlyPayment:   money(s.OriginalMonthlyPayment),
		OriginalTotalInterest:    money(s.OriginalTotalInterest),
		RemainingPrincipalBefore: money(s.RemainingPrincipalBefore),
		InterestRemainingBefore:  money(s.InterestRemainingBefore),
		PrepayPenalty:            money(s.PrepayPenalty),
		RemainingPrincipalAfter:  money(s.RemainingPrincipalAfter),
		NewMonthlyPayment:        money(s.NewMonthlyPayment),
		NewTermMonthsRemaining:   s.NewTermMonthsRemaining,
		InterestRemainingAfter:   money(s.InterestRemainingAfter),
		InterestSavedGross:       money(s.InterestSavedGross),
		InterestSavedNet:         money(s.InterestSavedNet),
		SettlementAmount:         money(s.SettlementAmount),
		EffectivePrepayType:      s.EffectivePrepayType,
	}
}

// NewResultView renders a calculation result. Rows are dated when
// firstPaymentDate (YYYY-MM-DD) is given, counting from the installments
// already paid.
func NewResultView(result *domain.CalculationResult, in domain.LoanInputs, firstPaymentDate string) ResultView {
	view := ResultView{
		Inputs:        in,
		Summary:       NewSummaryView(result.Summary),
		Warnings:      append([]string{}, result.Warnings...),
		ScheduleAfter: make([]RowView, 0, len(result.ScheduleAfter)),
	}
	first, err := dateutil.ParseDate(firstPaymentDate)
	dated := firstPaymentDate != "" && err == nil
	for _, row := range result.ScheduleAfter {
		rv := RowView{
			Period:        row.Period,
			Payment:       money(row.Payment),
			PrincipalPaid: money(row.PrincipalPaid),
			InterestPaid:  money(row.InterestPaid),
			Balance:       money(row.Balance),
		}
		if dated {
			rv.DueDate = dateutil.DueDate(first, in.PaidMonths+row.Period).Format(dateutil.DateLayout)
		}
		view.ScheduleAfter = append(view.ScheduleAfter, rv)
	}
	return view
}

// NewScenarioView renders one scenario of a comparison.
func NewScenarioView(sc domain.ScenarioResult) ScenarioView {
	return ScenarioView{
		Name:       sc.Name,
		BreakEven:  sc.BreakEven,
		ResultView: NewResultView(&sc.Result, sc.Inputs, sc.FirstPaymentDate),
	}
}

// NewComparisonView renders a comparison with its recommendation.
func NewComparisonView(results *domain.ScenarioComparison) ComparisonView {
	view := ComparisonView{
		Scenarios: make([]ScenarioView, 0, len(results.Scenarios)),
		Notes:     NotesFor(results),
	}
	for _, sc := range results.Scenarios {
		view.Scenarios = append(view.Scenarios, NewScenarioView(sc))
	}
	if rec := AnalyzeScenarios(results); rec.ScenarioName != "" {
		view.Recommendation = &rec
	}
	return view
}

func money(v stddec.Decimal) decimal.Money {
	return decimal.NewMoney(v).Round()
}
