package payroll

import (
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

const (
	DefaultYear        = 2023
	DefaultPaymentDays = 30
	DaysPerMonth       = 30
)

type SolidarityBracket struct {
	FromMultiple decimal.Decimal `json:"fromMultiple"`
	Rate         decimal.Decimal `json:"rate"`
}

// WithholdingBracket covers tax units in (AboveUnits, UpToUnits]. An invalid
// UpToUnits leaves the bracket open.
type WithholdingBracket struct {
	AboveUnits decimal.Decimal     `json:"aboveUnits"`
	UpToUnits  decimal.NullDecimal `json:"upToUnits"`
	Rate       decimal.Decimal     `json:"rate"`
}

// Statute holds the legal constants of one fiscal year. Values are read-only
// once registered; StatuteFor hands out copies.
type Statute struct {
	Year                           int                  `json:"year"`
	MinimumWage                    decimal.Decimal      `json:"minimumWage"`
	TransportationSubsidy          decimal.Decimal      `json:"transportationSubsidy"`
	TransportationCeilingMultiple  decimal.Decimal      `json:"transportationCeilingMultiple"`
	HealthRate                     decimal.Decimal      `json:"healthRate"`
	PensionRate                    decimal.Decimal      `json:"pensionRate"`
	ComprehensiveSalaryFactor      decimal.Decimal      `json:"comprehensiveSalaryFactor"`
	ComprehensiveContributionShare decimal.Decimal      `json:"comprehensiveContributionShare"`
	TaxValueUnit                   decimal.Decimal      `json:"taxValueUnit"`
	VoluntaryPensionExemptUnits    decimal.Decimal      `json:"voluntaryPensionExemptUnits"`
	SolidarityFundBrackets         []SolidarityBracket  `json:"solidarityFundBrackets"`
	WithholdingTaxBrackets         []WithholdingBracket `json:"withholdingTaxBrackets"`
	WithholdingTaxCapUnits         decimal.Decimal      `json:"withholdingTaxCapUnits"`
}

// Decreto 2613 de 2022 (minimum wage, transportation subsidy) and DIAN
// Resolución 001264 de 2022 (UVT).
func statute2023() Statute {
	return Statute{
		Year:                           2023,
		MinimumWage:                    decimal.NewFromInt(1160000),
		TransportationSubsidy:          decimal.NewFromInt(140606),
		TransportationCeilingMultiple:  decimal.NewFromInt(2),
		HealthRate:                     decimal.RequireFromString("0.04"),
		PensionRate:                    decimal.RequireFromString("0.04"),
		ComprehensiveSalaryFactor:      decimal.NewFromInt(13),
		ComprehensiveContributionShare: decimal.RequireFromString("0.70"),
		TaxValueUnit:                   decimal.NewFromInt(42412),
		VoluntaryPensionExemptUnits:    decimal.NewFromInt(1340),
		SolidarityFundBrackets: []SolidarityBracket{
			{FromMultiple: decimal.Zero, Rate: decimal.Zero},
			{FromMultiple: decimal.NewFromInt(4), Rate: decimal.RequireFromString("0.01")},
			{FromMultiple: decimal.NewFromInt(16), Rate: decimal.RequireFromString("0.012")},
			{FromMultiple: decimal.NewFromInt(17), Rate: decimal.RequireFromString("0.014")},
			{FromMultiple: decimal.NewFromInt(18), Rate: decimal.RequireFromString("0.016")},
			{FromMultiple: decimal.NewFromInt(19), Rate: decimal.RequireFromString("0.018")},
			{FromMultiple: decimal.NewFromInt(20), Rate: decimal.RequireFromString("0.02")},
		},
		// Estatuto Tributario art. 383.
		WithholdingTaxBrackets: []WithholdingBracket{
			{AboveUnits: decimal.Zero, UpToUnits: units(95), Rate: decimal.Zero},
			{AboveUnits: decimal.NewFromInt(95), UpToUnits: units(150), Rate: decimal.RequireFromString("0.19")},
			{AboveUnits: decimal.NewFromInt(150), UpToUnits: units(360), Rate: decimal.RequireFromString("0.28")},
			{AboveUnits: decimal.NewFromInt(360), UpToUnits: units(640), Rate: decimal.RequireFromString("0.33")},
			{AboveUnits: decimal.NewFromInt(640), UpToUnits: units(945), Rate: decimal.RequireFromString("0.35")},
			{AboveUnits: decimal.NewFromInt(945), UpToUnits: units(2300), Rate: decimal.RequireFromString("0.37")},
			{AboveUnits: decimal.NewFromInt(2300), Rate: decimal.RequireFromString("0.39")},
		},
		WithholdingTaxCapUnits: decimal.NewFromInt(790),
	}
}

func units(n int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(n))
}

var statutes = map[int]Statute{
	2023: statute2023(),
}

func StatuteFor(year int) (Statute, error) {
	s, ok := statutes[year]
	if !ok {
		return Statute{}, fmt.Errorf("%w: %d", ErrUnknownStatuteYear, year)
	}
	return s.clone(), nil
}

func StatuteYears() []int {
	return slices.Sorted(maps.Keys(statutes))
}

func (s Statute) clone() Statute {
	s.SolidarityFundBrackets = slices.Clone(s.SolidarityFundBrackets)
	s.WithholdingTaxBrackets = slices.Clone(s.WithholdingTaxBrackets)
	return s
}

func (s Statute) TransportationSubsidyCeiling() decimal.Decimal {
	return s.MinimumWage.Mul(s.TransportationCeilingMultiple)
}

// ComprehensiveSalaryMin is ten minimum wages plus the 30% benefits load
// (three more), CST art. 132.
func (s Statute) ComprehensiveSalaryMin() decimal.Decimal {
	return s.MinimumWage.Mul(s.ComprehensiveSalaryFactor)
}

func (s Statute) VoluntaryPensionExemptMax() decimal.Decimal {
	return s.TaxValueUnit.Mul(s.VoluntaryPensionExemptUnits)
}

func (s Statute) Validate() error {
	if !s.MinimumWage.IsPositive() {
		return fmt.Errorf("%w: minimum wage must be positive", ErrInvalidStatute)
	}
	if !s.TaxValueUnit.IsPositive() {
		return fmt.Errorf("%w: tax value unit must be positive", ErrInvalidStatute)
	}
	if len(s.SolidarityFundBrackets) == 0 || !s.SolidarityFundBrackets[0].FromMultiple.IsZero() {
		return fmt.Errorf("%w: solidarity brackets must start at zero", ErrInvalidStatute)
	}
	for i := 1; i < len(s.SolidarityFundBrackets); i++ {
		if !s.SolidarityFundBrackets[i].FromMultiple.GreaterThan(s.SolidarityFundBrackets[i-1].FromMultiple) {
			return fmt.Errorf("%w: solidarity brackets out of order at %d", ErrInvalidStatute, i)
		}
	}
	brackets := s.WithholdingTaxBrackets
	if len(brackets) == 0 || !brackets[0].AboveUnits.IsZero() {
		return fmt.Errorf("%w: withholding brackets must start at zero", ErrInvalidStatute)
	}
	for i, b := range brackets {
		last := i == len(brackets)-1
		if last != !b.UpToUnits.Valid {
			return fmt.Errorf("%w: only the last withholding bracket may be open", ErrInvalidStatute)
		}
		if !last && !b.UpToUnits.Decimal.Equal(brackets[i+1].AboveUnits) {
			return fmt.Errorf("%w: withholding brackets not contiguous at %d", ErrInvalidStatute, i)
		}
	}
	return nil
}
