package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestField_UnmarshalYAML(t *testing.T) {
	testCases := []struct {
		desc    string
		doc     string
		want    Field
		wantErr bool
	}{
		{desc: "integer", doc: "v: 1000000", want: NewField("1000000")},
		{desc: "float", doc: "v: 4.9", want: NewField("4.9")},
		{desc: "percent string", doc: `v: "4.9%"`, want: NewField("4.9%")},
		{desc: "empty string", doc: `v: ""`, want: NewField("")},
		{desc: "null", doc: "v: null", want: Field{}},
		{desc: "missing", doc: "other: 1", want: Field{}},
		{desc: "bool", doc: "v: true", wantErr: true},
		{desc: "sequence", doc: "v: [1, 2]", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			var doc struct {
				V Field `yaml:"v"`
			}
			err := yaml.Unmarshal([]byte(tc.doc), &doc)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, doc.V)
		})
	}
}

func TestField_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		desc    string
		doc     string
		want    Field
		wantErr bool
	}{
		{desc: "number", doc: `{"v": 200000}`, want: NewField("200000")},
		{desc: "exponent", doc: `{"v": 1e6}`, want: NewField("1e6")},
		{desc: "string", doc: `{"v": "3%"}`, want: NewField("3%")},
		{desc: "null", doc: `{"v": null}`, want: Field{}},
		{desc: "bool", doc: `{"v": false}`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			var doc struct {
				V Field `json:"v"`
			}
			err := json.Unmarshal([]byte(tc.doc), &doc)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, doc.V)
		})
	}
}

func TestField_IsBlank(t *testing.T) {
	assert.True(t, Field{}.IsBlank())
	assert.True(t, NewField("  ").IsBlank())
	assert.False(t, NewField("0").IsBlank())
}

func TestConfiguration_InlineRequest(t *testing.T) {
	doc := `
name: 提前还20万
principal: 1000000
annual_rate: "4.9%"
term_months: 360
prepay_amount: 200000
scenarios:
  - name: 缩短期限
    strategy: reduce_term
  - name: 减少月供
    strategy: reduce_payment
    prepay_amount: 300000
`
	var cfg Configuration
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))
	assert.Equal(t, "提前还20万", cfg.BaseScenarioName())
	assert.Equal(t, NewField("4.9%"), cfg.AnnualRate)
	require.Len(t, cfg.Scenarios, 2)

	merged := cfg.Scenarios[1].Apply(cfg.LoanRequest)
	assert.Equal(t, "reduce_payment", merged.Strategy)
	assert.Equal(t, NewField("300000"), merged.PrepayAmount)
	assert.Equal(t, NewField("1000000"), merged.Principal)

	// the base request is left untouched
	assert.Equal(t, NewField("200000"), cfg.PrepayAmount)
	assert.Equal(t, "", cfg.Strategy)
}

func TestConfiguration_JSONPromotesRequestFields(t *testing.T) {
	doc := `{"principal": 500000, "annual_rate": 3.1, "term_months": 240, "scenarios": [{"name": "a", "paid_months": 12}]}`
	var cfg Configuration
	require.NoError(t, json.Unmarshal([]byte(doc), &cfg))
	assert.Equal(t, NewField("500000"), cfg.Principal)
	assert.Equal(t, "base", cfg.BaseScenarioName())

	cfg.PrepayMonthIndex = NewField("6")
	merged := cfg.Scenarios[0].Apply(cfg.LoanRequest)
	assert.Equal(t, NewField("12"), merged.PaidMonths)
	assert.False(t, merged.PrepayMonthIndex.Set, "scenario paid_months replaces the alias")
}

func TestParseEnums(t *testing.T) {
	rt, err := ParseRepaymentType("ep")
	require.NoError(t, err)
	assert.Equal(t, RepaymentEP, rt)

	pt, err := ParsePrepayType(" FULL ")
	require.NoError(t, err)
	assert.Equal(t, PrepayFull, pt)

	st, err := ParseStrategy("Reduce_Payment")
	require.NoError(t, err)
	assert.Equal(t, StrategyReducePayment, st)

	_, err = ParseRepaymentType("balloon")
	assert.Error(t, err)
	_, err = ParsePrepayType("some")
	assert.Error(t, err)
	_, err = ParseStrategy("reduce_both")
	assert.Error(t, err)
}

func TestErrors(t *testing.T) {
	err := fmt.Errorf("scenario x: %w", NewValidationError("principal", "贷款总额必须 > 0"))
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrArithmetic))
	assert.Equal(t, "principal", FieldOf(err))
	assert.Equal(t, "scenario x: 贷款总额必须 > 0", err.Error())

	ae := &ArithmeticError{Message: "月供不足以覆盖利息", Period: 3}
	assert.True(t, errors.Is(ae, ErrArithmetic))
	assert.Equal(t, "月供不足以覆盖利息 (第 3 期)", ae.Error())
	assert.Equal(t, "", FieldOf(ae))
}
