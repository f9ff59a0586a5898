package output

import (
	"github.com/prepaylab/prepay-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildTestComparison() *domain.ScenarioComparison {
	free := 36
	return &domain.ScenarioComparison{
		Scenarios: []domain.ScenarioResult{
			{
				Name: "B-base",
				Inputs: domain.LoanInputs{
					Principal: dec("1000000"), AnnualRatePercent: dec("4.9"), TermMonths: 360, RepaymentType: domain.RepaymentEPI,
					PaidMonths: 24, PrepayType: domain.PrepayPartial, Strategy: domain.StrategyReduceTerm,
					PrepayAmount: dec("200000"), PenaltyFreeMonths: &free, IncludeSchedule: true,
				},
				FirstPaymentDate: "2024-01-31",
				BreakEven:        &domain.PenaltyBreakEven{Month: 3, Reached: true},
				Result: domain.CalculationResult{
					Summary: domain.Summary{
						OriginalMonthlyPayment:   dec("5307.267206228052"),
						OriginalTotalInterest:    dec("910616.1942420986"),
						RemainingPrincipalBefore: dec("969000.125"),
						InterestRemainingBefore:  dec("400000"),
						PrepayPenalty:            dec("2000"),
						RemainingPrincipalAfter:  dec("769000.125"),
						NewMonthlyPayment:        dec("5307.267206228052"),
						NewTermMonthsRemaining:   2,
						InterestRemainingAfter:   dec("250000"),
						InterestSavedGross:       dec("150000"),
						InterestSavedNet:         dec("148000"),
						EffectivePrepayType:      domain.PrepayPartial,
					},
					Warnings: []string{},
					ScheduleAfter: []domain.PeriodRow{
						{Period: 1, Payment: dec("5307.267"), PrincipalPaid: dec("2000.004"), InterestPaid: dec("3307.263"), Balance: dec("767000.121")},
						{Period: 2, Payment: dec("770000.5"), PrincipalPaid: dec("767000.121"), InterestPaid: dec("3000.379"), Balance: dec("0")},
					},
				},
			},
			{
				Name: "A-lower-payment",
				Inputs: domain.LoanInputs{
					Principal: dec("1000000"), AnnualRatePercent: dec("4.9"), TermMonths: 360, RepaymentType: domain.RepaymentEPI,
					PaidMonths: 24, PrepayType: domain.PrepayPartial, Strategy: domain.StrategyReducePayment,
					PrepayAmount: dec("200000"),
				},
				Result: domain.CalculationResult{
					Summary: domain.Summary{
						OriginalMonthlyPayment: dec("5307.27"),
						NewMonthlyPayment:      dec("4200"),
						NewTermMonthsRemaining: 336,
						InterestSavedGross:     dec("100000"),
						InterestSavedNet:       dec("98000"),
						EffectivePrepayType:    domain.PrepayPartial,
					},
					Warnings:      []string{"注意"},
					ScheduleAfter: []domain.PeriodRow{},
				},
			},
		},
		Notes: []string{"note one"},
	}
}
