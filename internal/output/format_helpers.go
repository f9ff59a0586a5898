package output

import (
	"strconv"

	"github.com/prepaylab/prepay-calculator/pkg/decimal"
	stddec "github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as yuan with thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount stddec.Decimal) string { return decimal.NewMoney(amount).Format() }

// FormatAmount formats an amount rounded to cents without grouping, for
// machine-readable outputs.
func FormatAmount(amount stddec.Decimal) string { return decimal.NewMoney(amount).String() }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount stddec.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(v int) string { return strconv.Itoa(v) }
