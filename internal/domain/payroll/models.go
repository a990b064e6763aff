package payroll

import "github.com/shopspring/decimal"

// MaxSalaryBase bounds the monthly salary the calculator accepts. It keeps
// every derived amount within machine integers.
const MaxSalaryBase = 1_000_000_000_000

// Input is one settlement request. Zero payment days with vacation days is a
// vacation-only settlement.
type Input struct {
	SalaryBase             decimal.Decimal `json:"salaryBase" validate:"gt=0,lte=1000000000000"`
	PaymentDays            int             `json:"paymentDays" validate:"gte=0,lte=30"`
	ExtralegalVacationDays int             `json:"extralegalVacationDays" validate:"gte=0,lte=360"`
}

func NewInput(salaryBase decimal.Decimal) Input {
	return Input{SalaryBase: salaryBase, PaymentDays: DefaultPaymentDays}
}

// Result is the full settlement breakdown. Every monetary field is rounded to
// the peso.
type Result struct {
	Year                     int             `json:"year"`
	SalaryBase               decimal.Decimal `json:"salaryBase"`
	PaymentDays              int             `json:"paymentDays"`
	ExtralegalVacationDays   int             `json:"extralegalVacationDays"`
	DailyRate                decimal.Decimal `json:"dailyRate"`
	Wage                     decimal.Decimal `json:"wage"`
	ExtralegalVacationWage   decimal.Decimal `json:"extralegalVacationWage"`
	ComprehensiveSalary      bool            `json:"comprehensiveSalary"`
	OvertimePayment          decimal.Decimal `json:"overtimePayment"`
	TransportationSubsidy    decimal.Decimal `json:"transportationSubsidy"`
	WagesEarned              decimal.Decimal `json:"wagesEarned"`
	ContributionBaseIncome   decimal.Decimal `json:"contributionBaseIncome"`
	HealthBenefit            decimal.Decimal `json:"healthBenefit"`
	PensionBenefit           decimal.Decimal `json:"pensionBenefit"`
	SolidarityFundPercentage decimal.Decimal `json:"solidarityFundPercentage"`
	SolidarityFundValue      decimal.Decimal `json:"solidarityFundValue"`
	SickPayDeduction         decimal.Decimal `json:"sickPayDeduction"`
	TaxBase                  decimal.Decimal `json:"taxBase"`
	WithholdingTax           decimal.Decimal `json:"withholdingTax"`
	Deductions               decimal.Decimal `json:"deductions"`
	WagesPaid                decimal.Decimal `json:"wagesPaid"`
}
