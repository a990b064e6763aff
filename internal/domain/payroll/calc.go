package payroll

import "github.com/shopspring/decimal"

type Calculator struct {
	statute  Statute
	overtime OvertimePolicy
	sickPay  SickPayPolicy
}

type Option func(*Calculator)

func WithOvertimePolicy(p OvertimePolicy) Option {
	return func(c *Calculator) {
		if p != nil {
			c.overtime = p
		}
	}
}

func WithSickPayPolicy(p SickPayPolicy) Option {
	return func(c *Calculator) {
		if p != nil {
			c.sickPay = p
		}
	}
}

func NewCalculator(statute Statute, opts ...Option) *Calculator {
	c := &Calculator{
		statute:  statute.clone(),
		overtime: NoOvertime{},
		sickPay:  NoSickPay{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Calculator) Statute() Statute {
	return c.statute.clone()
}

func (c *Calculator) IsComprehensiveSalary(salaryBase decimal.Decimal) bool {
	return salaryBase.GreaterThanOrEqual(c.statute.ComprehensiveSalaryMin())
}

func (c *Calculator) TransportationSubsidy(salaryBase decimal.Decimal) decimal.Decimal {
	if salaryBase.LessThanOrEqual(c.statute.TransportationSubsidyCeiling()) {
		return c.statute.TransportationSubsidy
	}
	return decimal.Zero
}

// ContributionBaseIncome is the IBC: everything earned except the
// transportation subsidy, which the law keeps out of social security.
func ContributionBaseIncome(wagesEarned, transportationSubsidy decimal.Decimal) decimal.Decimal {
	return wagesEarned.Sub(transportationSubsidy)
}

// contribution applies rate to the IBC, or to 70% of it for a comprehensive
// salary.
func (c *Calculator) contribution(contributionBase, rate decimal.Decimal, comprehensive bool) decimal.Decimal {
	base := contributionBase
	if comprehensive {
		base = base.Mul(c.statute.ComprehensiveContributionShare)
	}
	return RoundPeso(base.Mul(rate))
}

func (c *Calculator) HealthBenefit(contributionBase decimal.Decimal, comprehensive bool) decimal.Decimal {
	return c.contribution(contributionBase, c.statute.HealthRate, comprehensive)
}

func (c *Calculator) PensionBenefit(contributionBase decimal.Decimal, comprehensive bool) decimal.Decimal {
	return c.contribution(contributionBase, c.statute.PensionRate, comprehensive)
}

// Compute settles one month. The steps run in a fixed order because each one
// feeds the next.
func (c *Calculator) Compute(in Input) Result {
	s := c.statute
	r := Result{
		Year:                   s.Year,
		SalaryBase:             in.SalaryBase,
		PaymentDays:            in.PaymentDays,
		ExtralegalVacationDays: in.ExtralegalVacationDays,
	}

	r.DailyRate = RoundPeso(in.SalaryBase.Div(daysPerMonth))
	r.Wage = ProrateDays(in.SalaryBase, in.PaymentDays)
	r.ExtralegalVacationWage = ProrateDays(in.SalaryBase, in.ExtralegalVacationDays)
	r.ComprehensiveSalary = c.IsComprehensiveSalary(in.SalaryBase)
	r.OvertimePayment = RoundPeso(c.overtime.Overtime(in, s))
	r.TransportationSubsidy = c.TransportationSubsidy(in.SalaryBase)

	r.WagesEarned = r.Wage.Add(r.OvertimePayment).Add(r.TransportationSubsidy).Add(r.ExtralegalVacationWage)
	r.ContributionBaseIncome = ContributionBaseIncome(r.WagesEarned, r.TransportationSubsidy)

	r.HealthBenefit = c.HealthBenefit(r.ContributionBaseIncome, r.ComprehensiveSalary)
	r.PensionBenefit = c.PensionBenefit(r.ContributionBaseIncome, r.ComprehensiveSalary)

	r.SolidarityFundPercentage = s.SolidarityFundPercentage(r.ContributionBaseIncome)
	// Levied on the wage, not on the IBC the bracket was picked with.
	r.SolidarityFundValue = RoundPeso(r.Wage.Mul(r.SolidarityFundPercentage))

	r.SickPayDeduction = RoundPeso(c.sickPay.SickPay(in, s))

	r.TaxBase = r.ContributionBaseIncome.Sub(r.HealthBenefit).Sub(r.PensionBenefit)
	r.WithholdingTax = s.WithholdingTax(r.TaxBase)

	r.Deductions = r.HealthBenefit.
		Add(r.PensionBenefit).
		Add(r.SolidarityFundValue).
		Add(r.SickPayDeduction).
		Add(r.WithholdingTax)
	r.WagesPaid = r.WagesEarned.Sub(r.Deductions)
	return r
}
