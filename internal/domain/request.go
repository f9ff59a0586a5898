package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is a scalar input value kept exactly as written, whether it arrived as
// a number or a string ("4.9%", " 200000 ", ""). Parsing and validation happen
// later in the config package so that error messages can name the field.
type Field struct {
	Raw string
	Set bool
}

// NewField returns a present field holding raw.
func NewField(raw string) Field {
	return Field{Raw: raw, Set: true}
}

// IsBlank reports whether the field is absent or holds only whitespace.
func (f Field) IsBlank() bool {
	return !f.Set || strings.TrimSpace(f.Raw) == ""
}

// UnmarshalYAML accepts any scalar except booleans; null leaves the field unset.
func (f *Field) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", value.Line)
	}
	switch value.Tag {
	case "!!null":
		*f = Field{}
		return nil
	case "!!bool":
		return fmt.Errorf("line %d: expected a number, got bool", value.Line)
	}
	*f = NewField(value.Value)
	return nil
}

// UnmarshalJSON accepts numbers and strings; null leaves the field unset.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = Field{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = NewField(s)
		return nil
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		return fmt.Errorf("expected a number, got bool")
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a number or string: %w", err)
	}
	*f = NewField(n.String())
	return nil
}

// MarshalYAML writes the raw text back, unquoted when it is a plain number;
// unset fields become null.
func (f Field) MarshalYAML() (interface{}, error) {
	if !f.Set {
		return nil, nil
	}
	if _, err := strconv.ParseFloat(f.Raw, 64); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: f.Raw}, nil
	}
	return f.Raw, nil
}

// MarshalJSON writes the raw text as a JSON string; unset fields become null.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Raw)
}

// LoanRequest is a calculation request as supplied by a caller (file, stdin or
// HTTP body) before normalization.
type LoanRequest struct {
	Principal     Field  `yaml:"principal" json:"principal"`
	AnnualRate    Field  `yaml:"annual_rate" json:"annual_rate"`
	TermMonths    Field  `yaml:"term_months" json:"term_months"`
	RepaymentType string `yaml:"repayment_type,omitempty" json:"repayment_type,omitempty"`
	PaidMonths    Field  `yaml:"paid_months,omitempty" json:"paid_months,omitempty"`
	// PrepayMonthIndex is an alias of PaidMonths kept for older inputs.
	PrepayMonthIndex  Field  `yaml:"prepay_month_index,omitempty" json:"prepay_month_index,omitempty"`
	PrepayType        string `yaml:"prepay_type,omitempty" json:"prepay_type,omitempty"`
	Strategy          string `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	PrepayAmount      Field  `yaml:"prepay_amount,omitempty" json:"prepay_amount,omitempty"`
	PenaltyRate       Field  `yaml:"penalty_rate,omitempty" json:"penalty_rate,omitempty"`
	PenaltyFixed      Field  `yaml:"penalty_fixed,omitempty" json:"penalty_fixed,omitempty"`
	PenaltyFreeMonths Field  `yaml:"penalty_free_months,omitempty" json:"penalty_free_months,omitempty"`
	MinPrepayAmount   Field  `yaml:"min_prepay_amount,omitempty" json:"min_prepay_amount,omitempty"`
	IncludeSchedule   bool   `yaml:"include_schedule,omitempty" json:"include_schedule,omitempty"`

	// Optional calendar anchors (YYYY-MM-DD).
	FirstPaymentDate string `yaml:"first_payment_date,omitempty" json:"first_payment_date,omitempty"`
	AsOfDate         string `yaml:"as_of_date,omitempty" json:"as_of_date,omitempty"`
}

// Scenario is a named alternative prepayment proposal for the same loan.
// Unset fields inherit the base request's values.
type Scenario struct {
	Name              string `yaml:"name" json:"name"`
	PaidMonths        Field  `yaml:"paid_months,omitempty" json:"paid_months,omitempty"`
	PrepayType        string `yaml:"prepay_type,omitempty" json:"prepay_type,omitempty"`
	Strategy          string `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	PrepayAmount      Field  `yaml:"prepay_amount,omitempty" json:"prepay_amount,omitempty"`
	PenaltyRate       Field  `yaml:"penalty_rate,omitempty" json:"penalty_rate,omitempty"`
	PenaltyFixed      Field  `yaml:"penalty_fixed,omitempty" json:"penalty_fixed,omitempty"`
	PenaltyFreeMonths Field  `yaml:"penalty_free_months,omitempty" json:"penalty_free_months,omitempty"`
	AsOfDate          string `yaml:"as_of_date,omitempty" json:"as_of_date,omitempty"`
}

// Apply overlays the scenario onto base and returns the merged request.
func (s Scenario) Apply(base LoanRequest) LoanRequest {
	out := base
	if s.PaidMonths.Set {
		out.PaidMonths = s.PaidMonths
		out.PrepayMonthIndex = Field{}
	}
	if s.PrepayType != "" {
		out.PrepayType = s.PrepayType
	}
	if s.Strategy != "" {
		out.Strategy = s.Strategy
	}
	if s.PrepayAmount.Set {
		out.PrepayAmount = s.PrepayAmount
	}
	if s.PenaltyRate.Set {
		out.PenaltyRate = s.PenaltyRate
	}
	if s.PenaltyFixed.Set {
		out.PenaltyFixed = s.PenaltyFixed
	}
	if s.PenaltyFreeMonths.Set {
		out.PenaltyFreeMonths = s.PenaltyFreeMonths
	}
	if s.AsOfDate != "" {
		out.AsOfDate = s.AsOfDate
	}
	return out
}

// Configuration is the complete input file: the loan with its primary
// prepayment proposal, plus optional alternative scenarios to compare.
type Configuration struct {
	LoanRequest `yaml:",inline"`
	Name        string     `yaml:"name,omitempty" json:"name,omitempty"`
	Scenarios   []Scenario `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}

// BaseScenarioName labels the configuration's own prepayment proposal.
func (c *Configuration) BaseScenarioName() string {
	if c.Name != "" {
		return c.Name
	}
	return "base"
}
