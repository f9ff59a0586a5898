package output

import (
	"sort"

	"github.com/prepaylab/prepay-calculator/internal/domain"
	"github.com/prepaylab/prepay-calculator/pkg/decimal"
	stddec "github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName     string        `json:"scenario_name"`
	InterestSavedNet decimal.Money `json:"interest_saved_net"`
	// AdvantageOverBase compares against the first (base) scenario.
	AdvantageOverBase decimal.Money  `json:"advantage_over_base"`
	PercentageChange  stddec.Decimal `json:"percentage_change"`
}

// AnalyzeScenarios picks the scenario with the highest net interest saving.
// Ties keep the earlier scenario so the base proposal wins over equal alternatives.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	if results == nil || len(results.Scenarios) == 0 {
		return Recommendation{}
	}
	type ranked struct {
		name  string
		saved decimal.Money
	}
	ranks := make([]ranked, 0, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		saved := decimal.NewMoney(sc.Result.Summary.InterestSavedNet).Round()
		ranks = append(ranks, ranked{sc.Name, saved})
	}
	baseline := ranks[0].saved
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].saved.GreaterThan(ranks[j].saved) })
	best := ranks[0]
	delta := best.saved.Sub(baseline)
	pct := stddec.Zero
	if !baseline.IsZero() {
		pct = delta.Decimal.Div(baseline.Decimal.Abs()).Mul(stddec.NewFromInt(100)).Round(2)
	}
	return Recommendation{ScenarioName: best.name, InterestSavedNet: best.saved, AdvantageOverBase: delta, PercentageChange: pct}
}
