package calculation

import (
	"fmt"

	"github.com/prepaylab/prepay-calculator/internal/config"
	"github.com/prepaylab/prepay-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Warnings emitted by the engine. They are advisory and never indicate failure.
const (
	WarnTreatedAsSettlement  = "提前还款金额 >= 剩余本金，按提前结清处理"
	WarnEPReduceTermKeeps    = "等额本金缩短期限默认保持原每期固定本金不变"
	WarnEPReducePaymentKeeps = "等额本金减少月供仍按每期固定本金还款，仅按剩余期数重新摊分本金"
)

// CalculationEngine answers "what happens if I prepay X under strategy Y".
// It holds no per-call state; one engine may serve concurrent calls.
type CalculationEngine struct {
	Parser *config.InputParser
	Debug  bool // Log the intermediate figures of every calculation
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Parser: config.NewInputParser(),
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// loanPosition is the state of the loan on the prepayment date
type loanPosition struct {
	originalMonthlyPayment   decimal.Decimal
	originalTotalInterest    decimal.Decimal
	remainingPrincipalBefore decimal.Decimal
	interestRemainingBefore  decimal.Decimal
	// originalPrincipalPayment is only meaningful for EP loans.
	originalPrincipalPayment decimal.Decimal
}

// Calculate runs a single prepayment calculation. It fails fast on the first
// error and never returns a partial result.
func (ce *CalculationEngine) Calculate(in domain.LoanInputs) (*domain.CalculationResult, error) {
	if err := config.ValidateInputs(in); err != nil {
		return nil, err
	}
	var warnings []string

	rate, err := MonthlyRate(in.AnnualRatePercent)
	if err != nil {
		return nil, err
	}

	pos, err := ce.position(in, rate)
	if err != nil {
		return nil, err
	}

	effective := in.PrepayType
	if in.PrepayAmount.GreaterThanOrEqual(pos.remainingPrincipalBefore) && pos.remainingPrincipalBefore.IsPositive() {
		effective = domain.PrepayFull
		warnings = append(warnings, WarnTreatedAsSettlement)
	}

	if in.RepaymentType == domain.RepaymentEP {
		switch in.Strategy {
		case domain.StrategyReduceTerm:
			warnings = append(warnings, WarnEPReduceTermKeeps)
		case domain.StrategyReducePayment:
			warnings = append(warnings, WarnEPReducePaymentKeeps)
		}
	}

	penaltyBase := in.PrepayAmount
	if effective == domain.PrepayFull {
		penaltyBase = pos.remainingPrincipalBefore
	}
	penalty := CalcPenalty(penaltyBase, in.PenaltyRatePercent, in.PenaltyFixed, in.PaidMonths, in.PenaltyFreeMonths)

	summary := domain.Summary{
		OriginalMonthlyPayment:   pos.originalMonthlyPayment,
		OriginalTotalInterest:    pos.originalTotalInterest,
		RemainingPrincipalBefore: pos.remainingPrincipalBefore,
		InterestRemainingBefore:  pos.interestRemainingBefore,
		PrepayPenalty:            penalty,
		RemainingPrincipalAfter:  decimal.Zero,
		NewMonthlyPayment:        decimal.Zero,
		InterestRemainingAfter:   decimal.Zero,
		SettlementAmount:         decimal.Zero,
		EffectivePrepayType:      effective,
	}
	var rows []domain.PeriodRow

	if effective == domain.PrepayFull {
		summary.SettlementAmount = pos.remainingPrincipalBefore
	} else {
		if in.RemainingTerm() <= 0 {
			return nil, domain.NewValidationError("paid_months", "贷款已还清，无法部分提前还款")
		}
		summary.RemainingPrincipalAfter = nonNegative(clampZero(pos.remainingPrincipalBefore.Sub(in.PrepayAmount)))

		sim, newPayment, err := ce.simulateAfter(in, rate, pos, summary.RemainingPrincipalAfter)
		if err != nil {
			return nil, err
		}
		summary.NewMonthlyPayment = newPayment
		summary.NewTermMonthsRemaining = sim.Periods
		summary.InterestRemainingAfter = sim.TotalInterest
		rows = sim.Rows
	}

	summary.InterestSavedGross = summary.InterestRemainingBefore.Sub(summary.InterestRemainingAfter)
	summary.InterestSavedNet = summary.InterestSavedGross.Sub(penalty)

	if ce.Debug {
		ce.logSummary(in, summary)
	}

	if rows == nil {
		rows = []domain.PeriodRow{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return &domain.CalculationResult{
		Summary:       summary,
		Warnings:      warnings,
		ScheduleAfter: rows,
	}, nil
}

// position derives the original schedule figures and the loan state after
// PaidMonths periods.
func (ce *CalculationEngine) position(in domain.LoanInputs, rate decimal.Decimal) (loanPosition, error) {
	pos := loanPosition{interestRemainingBefore: decimal.Zero, originalPrincipalPayment: decimal.Zero}
	switch in.RepaymentType {
	case domain.RepaymentEPI:
		payment, err := EPIPayment(in.Principal, rate, in.TermMonths)
		if err != nil {
			return pos, err
		}
		pos.originalMonthlyPayment = payment
		if pos.remainingPrincipalBefore, err = EPIRemainingPrincipal(in.Principal, rate, in.TermMonths, in.PaidMonths, payment); err != nil {
			return pos, err
		}
		pos.interestRemainingBefore = payment.Mul(decimal.NewFromInt(int64(in.RemainingTerm()))).Sub(pos.remainingPrincipalBefore)
		pos.originalTotalInterest = payment.Mul(decimal.NewFromInt(int64(in.TermMonths))).Sub(in.Principal)

	case domain.RepaymentEP:
		principalPayment, err := EPPrincipalPayment(in.Principal, in.TermMonths)
		if err != nil {
			return pos, err
		}
		pos.originalPrincipalPayment = principalPayment
		pos.remainingPrincipalBefore = EPRemainingPrincipal(in.Principal, principalPayment, in.PaidMonths)
		pos.originalMonthlyPayment = principalPayment.Add(mul(in.Principal, rate))
		if pos.originalTotalInterest, err = EPTotalInterest(in.Principal, rate, in.TermMonths); err != nil {
			return pos, err
		}
		// No closed form is used for the remaining interest; simulate the rest of the original term.
		if in.RemainingTerm() > 0 {
			sim, err := Simulate(pos.remainingPrincipalBefore, rate, EPPolicy{PrincipalPayment: principalPayment}, in.RemainingTerm(), false)
			if err != nil {
				return pos, err
			}
			pos.interestRemainingBefore = sim.TotalInterest
		}

	default:
		return pos, domain.NewValidationError("repayment_type", "还款方式必须是 EPI 或 EP")
	}

	if pos.remainingPrincipalBefore.LessThan(domain.Epsilon) {
		pos.remainingPrincipalBefore = decimal.Zero
	}
	ce.Logger.Debugf("loan position after %d/%d periods: remaining principal %s, remaining interest %s",
		in.PaidMonths, in.TermMonths, pos.remainingPrincipalBefore.StringFixed(2), pos.interestRemainingBefore.StringFixed(2))
	return pos, nil
}

// simulateAfter runs the post-prepayment schedule for a partial prepayment and
// returns it with the new periodic payment.
func (ce *CalculationEngine) simulateAfter(in domain.LoanInputs, rate decimal.Decimal, pos loanPosition, balance decimal.Decimal) (SimulationResult, decimal.Decimal, error) {
	remainingTerm := in.RemainingTerm()

	switch {
	case in.Strategy == domain.StrategyReducePayment && in.RepaymentType == domain.RepaymentEPI:
		payment, err := EPIPayment(balance, rate, remainingTerm)
		if err != nil {
			return SimulationResult{}, decimal.Zero, err
		}
		sim, err := Simulate(balance, rate, EPIPolicy{Payment: payment}, remainingTerm, in.IncludeSchedule)
		return sim, payment, err

	case in.Strategy == domain.StrategyReducePayment && in.RepaymentType == domain.RepaymentEP:
		principalPayment := div(balance, decimal.NewFromInt(int64(remainingTerm)))
		sim, err := Simulate(balance, rate, EPPolicy{PrincipalPayment: principalPayment}, remainingTerm, in.IncludeSchedule)
		return sim, sim.FirstPayment, err

	case in.Strategy == domain.StrategyReduceTerm && in.RepaymentType == domain.RepaymentEPI:
		sim, err := Simulate(balance, rate, EPIPolicy{Payment: pos.originalMonthlyPayment}, OpenEnded, in.IncludeSchedule)
		return sim, pos.originalMonthlyPayment, err

	case in.Strategy == domain.StrategyReduceTerm && in.RepaymentType == domain.RepaymentEP:
		sim, err := Simulate(balance, rate, EPPolicy{PrincipalPayment: pos.originalPrincipalPayment}, OpenEnded, in.IncludeSchedule)
		return sim, sim.FirstPayment, err
	}
	return SimulationResult{}, decimal.Zero, domain.NewValidationError("strategy", fmt.Sprintf("不支持的提前还款方式: %s", in.Strategy))
}

func (ce *CalculationEngine) logSummary(in domain.LoanInputs, s domain.Summary) {
	ce.Logger.Debugf("PREPAYMENT CALCULATION BREAKDOWN (%s, %s, %s)", in.RepaymentType, s.EffectivePrepayType, in.Strategy)
	ce.Logger.Debugf("  Original payment:        %s", s.OriginalMonthlyPayment.StringFixed(2))
	ce.Logger.Debugf("  Original total interest: %s", s.OriginalTotalInterest.StringFixed(2))
	ce.Logger.Debugf("  Remaining principal:     %s -> %s", s.RemainingPrincipalBefore.StringFixed(2), s.RemainingPrincipalAfter.StringFixed(2))
	ce.Logger.Debugf("  Remaining interest:      %s -> %s", s.InterestRemainingBefore.StringFixed(2), s.InterestRemainingAfter.StringFixed(2))
	ce.Logger.Debugf("  New payment / term:      %s / %d", s.NewMonthlyPayment.StringFixed(2), s.NewTermMonthsRemaining)
	ce.Logger.Debugf("  Penalty:                 %s", s.PrepayPenalty.StringFixed(2))
	ce.Logger.Debugf("  Interest saved (net):    %s", s.InterestSavedNet.StringFixed(2))
}

// RunScenarios runs the configuration's base proposal and every alternative
// scenario and returns them for comparison.
func (ce *CalculationEngine) RunScenarios(cfg *domain.Configuration) (*domain.ScenarioComparison, error) {
	requests := make([]namedRequest, 0, len(cfg.Scenarios)+1)
	requests = append(requests, namedRequest{name: cfg.BaseScenarioName(), req: cfg.LoanRequest})
	for _, sc := range cfg.Scenarios {
		requests = append(requests, namedRequest{name: sc.Name, req: sc.Apply(cfg.LoanRequest)})
	}

	comparison := &domain.ScenarioComparison{Scenarios: make([]domain.ScenarioResult, 0, len(requests))}
	for _, r := range requests {
		result, err := ce.Run(r.req)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", r.name, err)
		}
		breakEven, err := ce.CalculatePenaltyBreakEven(result.Inputs)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", r.name, err)
		}
		comparison.Scenarios = append(comparison.Scenarios, domain.ScenarioResult{
			Name:             r.name,
			Inputs:           result.Inputs,
			Result:           *result.Result,
			FirstPaymentDate: r.req.FirstPaymentDate,
			BreakEven:        breakEven,
		})
	}
	if len(comparison.Scenarios) > 0 {
		comparison.Notes = GenerateNotes(comparison.Scenarios[0].Inputs)
	}
	ce.Logger.Infof("compared %d prepayment scenarios", len(comparison.Scenarios))
	return comparison, nil
}

type namedRequest struct {
	name string
	req  domain.LoanRequest
}

// RunResult is a calculation together with the normalized inputs it ran on.
type RunResult struct {
	Inputs domain.LoanInputs
	Result *domain.CalculationResult
}

// Run normalizes a raw request and calculates it. Normalization warnings come
// first in the result's warning list.
func (ce *CalculationEngine) Run(req domain.LoanRequest) (*RunResult, error) {
	in, warnings, err := ce.Parser.Normalize(req)
	if err != nil {
		return nil, err
	}
	result, err := ce.Calculate(in)
	if err != nil {
		return nil, err
	}
	merged := make([]string, 0, len(warnings)+len(result.Warnings))
	merged = append(merged, warnings...)
	result.Warnings = append(merged, result.Warnings...)
	return &RunResult{Inputs: in, Result: result}, nil
}
