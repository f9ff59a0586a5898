package output

import (
	"github.com/prepaylab/prepay-calculator/internal/calculation"
	"github.com/prepaylab/prepay-calculator/internal/domain"
)

// NotesFor returns the assumptions rendered with a comparison: its own notes
// when the engine attached them, otherwise those of its first scenario.
func NotesFor(results *domain.ScenarioComparison) []string {
	if len(results.Notes) > 0 {
		return results.Notes
	}
	if len(results.Scenarios) == 0 {
		return []string{}
	}
	return calculation.GenerateNotes(results.Scenarios[0].Inputs)
}
