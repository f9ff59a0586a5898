package calculation

import "github.com/shopspring/decimal"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func n(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func intPtr(v int) *int { return &v }

// rate49 is the monthly rate of a 4.9% annual loan.
var rate49 = d("4.9").DivRound(d("1200"), Scale)
