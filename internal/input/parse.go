package input

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"nomina/internal/domain/payroll"
)

// ParseInput builds a validated payroll.Input from raw strings. An empty days
// value means a full month and an empty vacation value means none.
func ParseInput(salary, days, vacationDays string) (payroll.Input, error) {
	salaryBase, err := ParseSalary(salary)
	if err != nil {
		return payroll.Input{}, err
	}
	paymentDays, err := parseDays("paymentDays", days, payroll.DefaultPaymentDays)
	if err != nil {
		return payroll.Input{}, err
	}
	vacation, err := parseDays("extralegalVacationDays", vacationDays, 0)
	if err != nil {
		return payroll.Input{}, err
	}
	in := payroll.Input{
		SalaryBase:             salaryBase,
		PaymentDays:            paymentDays,
		ExtralegalVacationDays: vacation,
	}
	if err := Validate(in); err != nil {
		return payroll.Input{}, err
	}
	return in, nil
}

// ParseSalary accepts plain pesos without thousands separators.
func ParseSalary(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, invalidField("salaryBase", "is required")
	}
	if strings.ContainsAny(raw, ",eE_ ") {
		return decimal.Decimal{}, invalidField("salaryBase", "must be written in pesos without separators")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, invalidField("salaryBase", "must be a decimal number")
	}
	return d, nil
}

func parseDays(field, raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidField(field, "must be a whole number")
	}
	return n, nil
}
