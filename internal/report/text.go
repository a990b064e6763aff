package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"nomina/internal/domain/payroll"
)

type line struct {
	label string
	value string
}

func summaryLines(r payroll.Result) [][]line {
	return [][]line{
		{
			{"Gnómina del salario base mensual", FormatMoney(r.SalaryBase)},
		},
		{
			{"Días a pagar", fmt.Sprintf("%d días", r.PaymentDays)},
			{"Salario", FormatMoney(r.Wage)},
		},
		{
			{"Días de las vacaciones extralegales", fmt.Sprintf("%d", r.ExtralegalVacationDays)},
			{"Vacaciones extralegales", FormatMoney(r.ExtralegalVacationWage)},
		},
		{
			{"Horas Extras y Recargos", FormatMoney(r.OvertimePayment)},
			{"Auxilio transporte (si aplica)", FormatMoney(r.TransportationSubsidy)},
			{"Sueldo", FormatMoney(r.Wage)},
			{"= Total devengado", FormatMoney(r.WagesEarned)},
		},
		{
			{"Ingreso base de cotización", FormatMoney(r.ContributionBaseIncome)},
			{"Salud obligatoria", FormatMoney(r.HealthBenefit)},
			{"Pensión obligatoria", FormatMoney(r.PensionBenefit)},
			{"Fondo de solidaridad (" + FormatPercent(r.SolidarityFundPercentage) + ")", FormatMoney(r.SolidarityFundValue)},
			{"Incapacidades", FormatMoney(r.SickPayDeduction)},
			{"Base gravable", FormatMoney(r.TaxBase)},
			{"Retención en la fuente", FormatMoney(r.WithholdingTax)},
			{"= Total deducido", FormatMoney(r.Deductions)},
		},
		{
			{fmt.Sprintf("Compensación neta por %d días", r.PaymentDays), FormatMoney(r.WagesPaid)},
		},
	}
}

// WriteText prints the settlement summary in the layout of a Colombian
// payroll sheet.
func WriteText(w io.Writer, r payroll.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, group := range summaryLines(r) {
		if i > 0 {
			if _, err := fmt.Fprintln(tw, "\t\t"); err != nil {
				return err
			}
		}
		for _, l := range group {
			if _, err := fmt.Fprintf(tw, "%s:\t%s\t\n", l.label, l.value); err != nil {
				return err
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if r.ComprehensiveSalary {
		_, err := fmt.Fprintln(w, "\nSalario integral: salud y pensión sobre el 70% del IBC")
		return err
	}
	return nil
}

func WriteJSON(w io.Writer, r payroll.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
