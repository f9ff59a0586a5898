package output

import (
	"bytes"
	"fmt"

	"github.com/prepaylab/prepay-calculator/internal/domain"
	"github.com/prepaylab/prepay-calculator/pkg/decimal"
)

// summaryLabels renders the summary fields in display order.
var summaryLabels = []struct {
	label string
	value func(SummaryView) string
}{
	{"原月供/首期月供", func(s SummaryView) string { return s.OriginalMonthlyPayment.Format() }},
	{"原计划总利息", func(s SummaryView) string { return s.OriginalTotalInterest.Format() }},
	{"提前还前剩余本金", func(s SummaryView) string { return s.RemainingPrincipalBefore.Format() }},
	{"提前还前剩余利息", func(s SummaryView) string { return s.InterestRemainingBefore.Format() }},
	{"违约金/手续费", func(s SummaryView) string { return s.PrepayPenalty.Format() }},
	{"提前还后剩余本金", func(s SummaryView) string { return s.RemainingPrincipalAfter.Format() }},
	{"新月供", func(s SummaryView) string { return s.NewMonthlyPayment.Format() }},
	{"剩余期数", func(s SummaryView) string { return intToString(s.NewTermMonthsRemaining) }},
	{"提前还后剩余利息", func(s SummaryView) string { return s.InterestRemainingAfter.Format() }},
	{"节省利息（未扣费用）", func(s SummaryView) string { return s.InterestSavedGross.Format() }},
	{"净节省利息", func(s SummaryView) string { return s.InterestSavedNet.Format() }},
	{"提前结清金额", func(s SummaryView) string { return s.SettlementAmount.Format() }},
	{"实际提前还类型", func(s SummaryView) string { return string(s.EffectivePrepayType) }},
}

// ConsoleFormatter renders a human readable report, one block per scenario.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "提前还款测算结果")
	fmt.Fprintln(&buf, "================================")
	for _, sc := range results.Scenarios {
		fmt.Fprintln(&buf)
		writeScenario(&buf, NewScenarioView(sc))
	}

	if len(results.Scenarios) > 1 {
		if rec := AnalyzeScenarios(results); rec.ScenarioName != "" {
			fmt.Fprintln(&buf)
			fmt.Fprintf(&buf, "推荐方案: %s (净节省利息 %s，较基准 %s / %s)\n",
				rec.ScenarioName,
				rec.InterestSavedNet.Format(),
				rec.AdvantageOverBase.Format(),
				FormatPercentage(rec.PercentageChange))
		}
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "测算假设:")
	for _, note := range NotesFor(results) {
		fmt.Fprintf(&buf, "  - %s\n", note)
	}
	return buf.Bytes(), nil
}

func writeScenario(buf *bytes.Buffer, sc ScenarioView) {
	in := sc.Inputs
	fmt.Fprintf(buf, "[%s] %s / %s / %s，已还 %d/%d 期，提前还款 %s\n",
		sc.Name, in.RepaymentType, in.PrepayType, in.Strategy, in.PaidMonths, in.TermMonths, FormatCurrency(in.PrepayAmount))
	for _, f := range summaryLabels {
		fmt.Fprintf(buf, "  %s: %s\n", f.label, f.value(sc.Summary))
	}
	if be := sc.BreakEven; be != nil && sc.Summary.PrepayPenalty.GreaterThan(decimal.Zero()) {
		if be.Reached {
			fmt.Fprintf(buf, "  违约金回本: 提前还款后第 %d 期\n", be.Month)
		} else {
			fmt.Fprintln(buf, "  违约金回本: 剩余期限内无法回本")
		}
	}
	if len(sc.Warnings) > 0 {
		fmt.Fprintln(buf, "  提示:")
		for _, w := range sc.Warnings {
			fmt.Fprintf(buf, "    - %s\n", w)
		}
	}
	if len(sc.ScheduleAfter) > 0 {
		fmt.Fprintln(buf, "  还款计划:")
		fmt.Fprintf(buf, "  %6s  %-10s  %14s  %14s  %14s  %16s\n", "期数", "还款日", "月供", "本金", "利息", "剩余本金")
		for _, row := range sc.ScheduleAfter {
			due := row.DueDate
			if due == "" {
				due = "-"
			}
			fmt.Fprintf(buf, "  %6d  %-10s  %14s  %14s  %14s  %16s\n",
				row.Period, due, row.Payment.Format(), row.PrincipalPaid.Format(), row.InterestPaid.Format(), row.Balance.Format())
		}
	}
}
