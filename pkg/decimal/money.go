package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes amounts rendered by Format.
const CurrencySymbol = "¥"

// Money is a monetary amount at the presentation boundary. Calculations keep
// full precision; Money fixes how those figures are rounded, compared and
// printed.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal amount.
func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds to cents, half away from zero (2.345 -> 2.35).
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// GreaterThan checks if this amount is greater than another
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount rounded to cents without grouping, e.g. "1234.50".
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount with the currency symbol and thousands
// separators, e.g. "¥1,234.50" or "-¥12.00".
func (m Money) Format() string {
	s := m.Decimal.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	if m.Decimal.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(CurrencySymbol)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// MarshalJSON writes the amount as a quoted decimal string rounded to cents,
// so clients never see binary floating point artifacts.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// MarshalYAML writes the amount as a decimal string rounded to cents.
func (m Money) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}
