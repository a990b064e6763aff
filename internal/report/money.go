package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	grouping = message.NewPrinter(language.English)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// FormatMoney renders an amount with two decimals, comma thousands separators
// and a dot decimal point: 1,160,000.00.
func FormatMoney(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s%s.%02d", sign, groupWhole(whole), cents)
}

// groupWhole separates thousands of a non-negative integer. The printer only
// takes machine integers, so larger amounts are grouped from their digits.
func groupWhole(whole decimal.Decimal) string {
	if whole.LessThanOrEqual(maxInt64) {
		return grouping.Sprintf("%d", whole.IntPart())
	}
	digits := whole.String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func FormatPercent(rate decimal.Decimal) string {
	return rate.Shift(2).StringFixed(1) + "%"
}
