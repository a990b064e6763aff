package payroll

import "github.com/shopspring/decimal"

// SolidarityFundPercentage returns the Fondo de Solidaridad Pensional rate for
// a contribution base. Each bracket starts at a multiple of the minimum wage,
// inclusive, and ends at the next bracket's start, exclusive.
func (s Statute) SolidarityFundPercentage(contributionBase decimal.Decimal) decimal.Decimal {
	rate := decimal.Zero
	for _, b := range s.SolidarityFundBrackets {
		if contributionBase.LessThan(s.MinimumWage.Mul(b.FromMultiple)) {
			break
		}
		rate = b.Rate
	}
	return rate
}

func (s Statute) TaxUnits(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(s.TaxValueUnit)
}

func (s Statute) withholdingBracket(taxBase decimal.Decimal) WithholdingBracket {
	for _, b := range s.WithholdingTaxBrackets {
		if !b.UpToUnits.Valid || taxBase.LessThanOrEqual(b.UpToUnits.Decimal.Mul(s.TaxValueUnit)) {
			return b
		}
	}
	return s.WithholdingTaxBrackets[len(s.WithholdingTaxBrackets)-1]
}

// WithholdingTax applies the single bracket containing the tax base to the
// excess over that bracket's lower bound. Brackets do not accumulate. The tax
// is capped at WithholdingTaxCapUnits tax units.
//
// Bounds are compared in pesos (units * UVT) so that no division result is
// ever rounded before the final peso rounding.
func (s Statute) WithholdingTax(taxBase decimal.Decimal) decimal.Decimal {
	if !taxBase.IsPositive() {
		return decimal.Zero
	}
	b := s.withholdingBracket(taxBase)
	excess := taxBase.Sub(b.AboveUnits.Mul(s.TaxValueUnit))
	tax := excess.Mul(b.Rate)
	if limit := s.WithholdingTaxCapUnits.Mul(s.TaxValueUnit); tax.GreaterThan(limit) {
		tax = limit
	}
	return RoundPeso(tax)
}
