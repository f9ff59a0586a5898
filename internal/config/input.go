package config

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/prepaylab/prepay-calculator/internal/domain"
	"github.com/prepaylab/prepay-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Field labels used in user-facing messages
var fieldLabels = map[string]string{
	"principal":           "贷款总额",
	"annual_rate":         "年利率",
	"term_months":         "总期数",
	"repayment_type":      "还款方式",
	"paid_months":         "已还期数",
	"prepay_month_index":  "提前还款期次",
	"prepay_type":         "提前还款类型",
	"strategy":            "提前还款方式",
	"prepay_amount":       "提前还款金额",
	"penalty_rate":        "违约金比例",
	"penalty_fixed":       "固定违约金",
	"penalty_free_months": "免违约金窗口",
	"min_prepay_amount":   "最低提前还金额",
	"first_payment_date":  "首次还款日",
	"as_of_date":          "计算日",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// InputParser handles parsing of calculation requests and input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.LoadFromBytes(data)
}

// LoadFromReader loads configuration from r (e.g. stdin)
func (ip *InputParser) LoadFromReader(r io.Reader) (*domain.Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return ip.LoadFromBytes(data)
}

// LoadFromBytes parses and validates a YAML or JSON document
func (ip *InputParser) LoadFromBytes(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration normalizes the base request and every scenario so that
// input errors surface before any calculation runs.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if _, _, err := ip.Normalize(config.LoanRequest); err != nil {
		return err
	}

	seen := map[string]bool{config.BaseScenarioName(): true}
	for i, scenario := range config.Scenarios {
		if strings.TrimSpace(scenario.Name) == "" {
			return domain.NewValidationError("scenarios", fmt.Sprintf("scenario %d: scenario name is required", i))
		}
		if seen[scenario.Name] {
			return domain.NewValidationError("scenarios", fmt.Sprintf("scenario %d: duplicate scenario name %q", i, scenario.Name))
		}
		seen[scenario.Name] = true
		if _, _, err := ip.Normalize(scenario.Apply(config.LoanRequest)); err != nil {
			return fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
	}
	return nil
}

// Normalize turns a raw request into validated LoanInputs. The returned
// warnings describe adjustments made to the request.
func (ip *InputParser) Normalize(req domain.LoanRequest) (domain.LoanInputs, []string, error) {
	var in domain.LoanInputs
	var warnings []string

	principal, err := parseNumber(req.Principal, "principal", false)
	if err != nil {
		return in, nil, err
	}
	annualRate, err := parseNumber(req.AnnualRate, "annual_rate", false)
	if err != nil {
		return in, nil, err
	}
	termMonths, err := parseInt(req.TermMonths, "term_months", false)
	if err != nil {
		return in, nil, err
	}
	in.Principal = *principal
	in.AnnualRatePercent = *annualRate
	in.TermMonths = *termMonths

	if in.RepaymentType, err = enumOrDefault(req.RepaymentType, domain.RepaymentEPI, domain.ParseRepaymentType); err != nil {
		return in, nil, domain.NewValidationError("repayment_type", "还款方式必须是 EPI 或 EP")
	}
	if in.PrepayType, err = enumOrDefault(req.PrepayType, domain.PrepayPartial, domain.ParsePrepayType); err != nil {
		return in, nil, domain.NewValidationError("prepay_type", "提前还款类型必须是 partial 或 full")
	}
	if in.Strategy, err = enumOrDefault(req.Strategy, domain.StrategyReduceTerm, domain.ParseStrategy); err != nil {
		return in, nil, domain.NewValidationError("strategy", "提前还款方式必须是 reduce_term 或 reduce_payment")
	}

	paidMonths, paidWarnings, err := resolvePaidMonths(req)
	if err != nil {
		return in, nil, err
	}
	warnings = append(warnings, paidWarnings...)
	if paidMonths != nil {
		in.PaidMonths = *paidMonths
	}

	if v, err := parseNumber(req.PrepayAmount, "prepay_amount", true); err != nil {
		return in, nil, err
	} else if v != nil {
		in.PrepayAmount = *v
	}
	if v, err := parseNumber(req.PenaltyRate, "penalty_rate", true); err != nil {
		return in, nil, err
	} else if v != nil {
		in.PenaltyRatePercent = *v
	}
	if v, err := parseNumber(req.PenaltyFixed, "penalty_fixed", true); err != nil {
		return in, nil, err
	} else if v != nil {
		in.PenaltyFixed = *v
	}
	if in.PenaltyFreeMonths, err = parseInt(req.PenaltyFreeMonths, "penalty_free_months", true); err != nil {
		return in, nil, err
	}
	if in.MinPrepayAmount, err = parseNumber(req.MinPrepayAmount, "min_prepay_amount", true); err != nil {
		return in, nil, err
	}
	in.IncludeSchedule = req.IncludeSchedule

	if err := ValidateInputs(in); err != nil {
		return in, nil, err
	}
	return in, warnings, nil
}

// ValidateInputs checks the range rules of already-typed inputs.
func ValidateInputs(in domain.LoanInputs) error {
	switch {
	case !finite(in.Principal):
		return domain.NewValidationError("principal", label("principal")+" 不是有效数字")
	case !finite(in.AnnualRatePercent):
		return domain.NewValidationError("annual_rate", label("annual_rate")+" 不是有效数字")
	case !finite(in.PrepayAmount):
		return domain.NewValidationError("prepay_amount", label("prepay_amount")+" 不是有效数字")
	case !finite(in.PenaltyRatePercent):
		return domain.NewValidationError("penalty_rate", label("penalty_rate")+" 不是有效数字")
	case !finite(in.PenaltyFixed):
		return domain.NewValidationError("penalty_fixed", label("penalty_fixed")+" 不是有效数字")
	case in.MinPrepayAmount != nil && !finite(*in.MinPrepayAmount):
		return domain.NewValidationError("min_prepay_amount", label("min_prepay_amount")+" 不是有效数字")
	case !in.Principal.IsPositive():
		return domain.NewValidationError("principal", "贷款总额必须 > 0")
	case in.TermMonths <= 0:
		return domain.NewValidationError("term_months", "总期数必须 > 0")
	case in.TermMonths > domain.MaxTermMonths:
		return domain.NewValidationError("term_months", fmt.Sprintf("总期数不能超过 %d", domain.MaxTermMonths))
	case in.PaidMonths < 0 || in.PaidMonths > in.TermMonths:
		return domain.NewValidationError("paid_months", "已还期数不合法")
	case in.AnnualRatePercent.IsNegative():
		return domain.NewValidationError("annual_rate", "年利率必须 >= 0")
	case in.PrepayAmount.IsNegative():
		return domain.NewValidationError("prepay_amount", "提前还款金额必须 >= 0")
	case in.PenaltyRatePercent.IsNegative():
		return domain.NewValidationError("penalty_rate", "违约金比例必须 >= 0")
	case in.PenaltyFixed.IsNegative():
		return domain.NewValidationError("penalty_fixed", "固定违约金必须 >= 0")
	case in.PenaltyFreeMonths != nil && *in.PenaltyFreeMonths < 0:
		return domain.NewValidationError("penalty_free_months", "免违约金窗口必须 >= 0")
	case in.MinPrepayAmount != nil && !in.MinPrepayAmount.IsPositive():
		return domain.NewValidationError("min_prepay_amount", "最低提前还金额必须 > 0")
	case in.PrepayType == domain.PrepayPartial && !in.PrepayAmount.IsPositive():
		return domain.NewValidationError("prepay_amount", "部分提前还款需填写金额")
	case in.MinPrepayAmount != nil && in.PrepayAmount.IsPositive() && in.PrepayAmount.LessThan(*in.MinPrepayAmount):
		return domain.NewValidationError("prepay_amount", "提前还款金额低于最低要求")
	}
	return nil
}

// finite reports whether v is within the range of a float64, the range the
// web front end accepts.
func finite(v decimal.Decimal) bool {
	return !math.IsInf(v.InexactFloat64(), 0)
}

// resolvePaidMonths reconciles paid_months, its prepay_month_index alias and
// the optional calendar anchors.
func resolvePaidMonths(req domain.LoanRequest) (*int, []string, error) {
	var warnings []string

	paid, err := parseInt(req.PaidMonths, "paid_months", true)
	if err != nil {
		return nil, nil, err
	}
	index, err := parseInt(req.PrepayMonthIndex, "prepay_month_index", true)
	if err != nil {
		return nil, nil, err
	}
	if index != nil {
		if paid != nil && *paid != *index {
			warnings = append(warnings, fmt.Sprintf("已还期数(%d)与提前还款期次(%d)不一致，以提前还款期次为准", *paid, *index))
		}
		paid = index
	}

	if req.FirstPaymentDate == "" {
		if req.AsOfDate != "" {
			warnings = append(warnings, "未提供首次还款日，计算日被忽略，按已还期数计算")
		}
		return paid, warnings, nil
	}

	first, err := dateutil.ParseDate(req.FirstPaymentDate)
	if err != nil {
		return nil, nil, domain.NewValidationError("first_payment_date", label("first_payment_date")+"格式必须为 YYYY-MM-DD")
	}
	if req.AsOfDate == "" {
		return paid, warnings, nil
	}
	asOf, err := dateutil.ParseDate(req.AsOfDate)
	if err != nil {
		return nil, nil, domain.NewValidationError("as_of_date", label("as_of_date")+"格式必须为 YYYY-MM-DD")
	}

	derived := dateutil.InstallmentsDue(first, asOf)
	switch {
	case paid == nil:
		paid = &derived
	case *paid != derived:
		warnings = append(warnings, fmt.Sprintf("按日期推算已还 %d 期，与已还期数(%d)不一致，以已还期数为准", derived, *paid))
	}
	return paid, warnings, nil
}

// parseNumber parses a numeric field, stripping a trailing "%". Blank optional
// fields return nil so callers can tell "absent" from zero. Values beyond the
// float64 range ("1e400") are rejected.
func parseNumber(f domain.Field, field string, allowEmpty bool) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(f.Raw)
	if !f.Set || raw == "" {
		if allowEmpty {
			return nil, nil
		}
		return nil, domain.NewValidationError(field, label(field)+" 不能为空")
	}
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "%"))
	d, err := decimal.NewFromString(raw)
	if err != nil || !finite(d) {
		return nil, domain.NewValidationError(field, label(field)+" 不是有效数字")
	}
	return &d, nil
}

// parseInt parses an integral field. "12" and "12.0" are accepted, "12.5" is not.
func parseInt(f domain.Field, field string, allowEmpty bool) (*int, error) {
	raw := strings.TrimSpace(f.Raw)
	if !f.Set || raw == "" {
		if allowEmpty {
			return nil, nil
		}
		return nil, domain.NewValidationError(field, label(field)+" 不能为空")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsInteger() {
		return nil, domain.NewValidationError(field, label(field)+" 必须是整数")
	}
	if d.Abs().GreaterThan(decimal.NewFromInt(1_000_000_000)) {
		return nil, domain.NewValidationError(field, label(field)+" 超出范围")
	}
	v := int(d.IntPart())
	return &v, nil
}

func enumOrDefault[T ~string](raw string, def T, parse func(string) (T, error)) (T, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	return parse(raw)
}

// CreateExampleConfiguration creates an example configuration for testing
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Name: "prepay 200k",
		LoanRequest: domain.LoanRequest{
			Principal:        domain.NewField("1000000"),
			AnnualRate:       domain.NewField("4.9"),
			TermMonths:       domain.NewField("360"),
			RepaymentType:    string(domain.RepaymentEPI),
			PaidMonths:       domain.NewField("24"),
			PrepayType:       string(domain.PrepayPartial),
			Strategy:         string(domain.StrategyReduceTerm),
			PrepayAmount:     domain.NewField("200000"),
			PenaltyRate:      domain.NewField("1"),
			PenaltyFixed:     domain.NewField("0"),
			FirstPaymentDate: "2024-01-20",
		},
		Scenarios: []domain.Scenario{
			{
				Name:     "prepay 200k, lower payment",
				Strategy: string(domain.StrategyReducePayment),
			},
			{
				Name:       "settle after penalty window",
				PaidMonths: domain.NewField("36"),
				PrepayType: string(domain.PrepayFull),
			},
		},
	}
}
