package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/prepaylab/prepay-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "RepaymentType", "PaidMonths", "PrepayType", "Strategy", "PrepayAmount",
		"OriginalMonthlyPayment", "OriginalTotalInterest", "RemainingPrincipalBefore", "InterestRemainingBefore",
		"PrepayPenalty", "RemainingPrincipalAfter", "NewMonthlyPayment", "NewTermMonthsRemaining",
		"InterestRemainingAfter", "InterestSavedGross", "InterestSavedNet", "SettlementAmount", "EffectivePrepayType"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioResult(nil), results.Scenarios...)
	sort.SliceStable(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		in, s := sc.Inputs, sc.Result.Summary
		row := []string{
			sc.Name,
			string(in.RepaymentType),
			intToString(in.PaidMonths),
			string(in.PrepayType),
			string(in.Strategy),
			FormatAmount(in.PrepayAmount),
			FormatAmount(s.OriginalMonthlyPayment),
			FormatAmount(s.OriginalTotalInterest),
			FormatAmount(s.RemainingPrincipalBefore),
			FormatAmount(s.InterestRemainingBefore),
			FormatAmount(s.PrepayPenalty),
			FormatAmount(s.RemainingPrincipalAfter),
			FormatAmount(s.NewMonthlyPayment),
			intToString(s.NewTermMonthsRemaining),
			FormatAmount(s.InterestRemainingAfter),
			FormatAmount(s.InterestSavedGross),
			FormatAmount(s.InterestSavedNet),
			FormatAmount(s.SettlementAmount),
			string(s.EffectivePrepayType),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
