package payroll

import "github.com/shopspring/decimal"

var daysPerMonth = decimal.NewFromInt(DaysPerMonth)

// RoundPeso rounds half away from zero to a whole peso. For the non-negative
// amounts a settlement produces that is half-up.
func RoundPeso(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// ProrateDays returns monthly * days / 30 rounded to the peso. Multiplying
// first keeps a full month exact.
func ProrateDays(monthly decimal.Decimal, days int) decimal.Decimal {
	return RoundPeso(monthly.Mul(decimal.NewFromInt(int64(days))).Div(daysPerMonth))
}
