package output

import (
	"encoding/json"

	"github.com/prepaylab/prepay-calculator/internal/domain"
)

// JSONFormatter serializes results with amounts as 2-dp decimal strings.
// A comparison holding a single scenario renders as that scenario's bare
// result ({inputs, summary, warnings, schedule_after}), the shape of a
// calculation.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string {
	if j.Pretty {
		return "json-pretty"
	}
	return "json"
}

func (j JSONFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var v any
	if len(results.Scenarios) == 1 {
		sc := NewScenarioView(results.Scenarios[0])
		v = sc.ResultView
	} else {
		v = NewComparisonView(results)
	}
	return j.marshal(v)
}

func (j JSONFormatter) marshal(v any) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if j.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
