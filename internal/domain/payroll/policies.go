package payroll

import "github.com/shopspring/decimal"

// OvertimePolicy prices overtime and surcharges (horas extras y recargos,
// including night surcharge) for a period.
type OvertimePolicy interface {
	Overtime(in Input, s Statute) decimal.Decimal
}

// SickPayPolicy computes the deduction for sick leave taken in the period.
type SickPayPolicy interface {
	SickPay(in Input, s Statute) decimal.Decimal
}

type OvertimeFunc func(in Input, s Statute) decimal.Decimal

func (f OvertimeFunc) Overtime(in Input, s Statute) decimal.Decimal { return f(in, s) }

type SickPayFunc func(in Input, s Statute) decimal.Decimal

func (f SickPayFunc) SickPay(in Input, s Statute) decimal.Decimal { return f(in, s) }

// NoOvertime is used until overtime hours are part of Input.
type NoOvertime struct{}

func (NoOvertime) Overtime(Input, Statute) decimal.Decimal { return decimal.Zero }

// NoSickPay is used until incapacity days are part of Input. The rule to
// implement: for common-origin incapacity the employer pays the first two
// days and from the third day 66.66% (the EPS covers the rest); work
// accidents are paid 100% by the ARL.
type NoSickPay struct{}

func (NoSickPay) SickPay(Input, Statute) decimal.Decimal { return decimal.Zero }
