package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/prepaylab/prepay-calculator/internal/domain"
)

// CSVScheduleExporter writes the post-prepayment schedule, one row per
// scenario and period. Scenarios calculated without a schedule contribute no rows.
type CSVScheduleExporter struct{}

func (c CSVScheduleExporter) Name() string { return "schedule-csv" }

func (c CSVScheduleExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Period", "DueDate", "Payment", "PrincipalPaid", "InterestPaid", "Balance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioResult(nil), results.Scenarios...)
	sort.SliceStable(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		view := NewScenarioView(sc)
		for _, row := range view.ScheduleAfter {
			record := []string{
				sc.Name,
				intToString(row.Period),
				row.DueDate,
				row.Payment.String(),
				row.PrincipalPaid.String(),
				row.InterestPaid.String(),
				row.Balance.String(),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
