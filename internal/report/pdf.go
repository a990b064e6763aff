package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"nomina/internal/domain/payroll"
)

type PayslipMeta struct {
	EmployeeName string
	Period       string
}

func payslipRows(r payroll.Result) (earnings, deductions []line) {
	earnings = []line{
		{fmt.Sprintf("Salario (%d días)", r.PaymentDays), FormatMoney(r.Wage)},
		{fmt.Sprintf("Vacaciones extralegales (%d días)", r.ExtralegalVacationDays), FormatMoney(r.ExtralegalVacationWage)},
		{"Horas extras y recargos", FormatMoney(r.OvertimePayment)},
		{"Auxilio de transporte", FormatMoney(r.TransportationSubsidy)},
	}
	deductions = []line{
		{"Salud obligatoria", FormatMoney(r.HealthBenefit)},
		{"Pensión obligatoria", FormatMoney(r.PensionBenefit)},
		{"Fondo de solidaridad pensional (" + FormatPercent(r.SolidarityFundPercentage) + ")", FormatMoney(r.SolidarityFundValue)},
		{"Incapacidades", FormatMoney(r.SickPayDeduction)},
		{"Retención en la fuente", FormatMoney(r.WithholdingTax)},
	}
	return earnings, deductions
}

// RenderPayslipPDF lays out one settlement as an A4 payslip.
func RenderPayslipPDF(r payroll.Result, meta PayslipMeta) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Comprobante de nómina", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Comprobante de nómina"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if name := strings.TrimSpace(meta.EmployeeName); name != "" {
		pdf.Cell(0, 7, tr("Empleado: "+name))
		pdf.Ln(6)
	}
	if period := strings.TrimSpace(meta.Period); period != "" {
		pdf.Cell(0, 7, tr("Periodo: "+period))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, tr(fmt.Sprintf("Salario base mensual: %s (año %d)", FormatMoney(r.SalaryBase), r.Year)))
	pdf.Ln(6)
	if r.ComprehensiveSalary {
		pdf.Cell(0, 7, tr("Salario integral: aportes sobre el 70% del IBC"))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	earnings, deductions := payslipRows(r)
	section := func(title string, rows []line, total string, amount decimal.Decimal) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, row := range rows {
			pdf.CellFormat(130, 7, tr(row.label), "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, row.value, "", 1, "R", false, 0, "")
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(130, 8, tr(total), "T", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, FormatMoney(amount), "T", 1, "R", false, 0, "")
		pdf.Ln(4)
	}
	section("Devengado", earnings, "Total devengado", r.WagesEarned)
	section("Deducciones", deductions, "Total deducido", r.Deductions)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(130, 7, tr("Ingreso base de cotización"), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, FormatMoney(r.ContributionBaseIncome), "", 1, "R", false, 0, "")
	pdf.CellFormat(130, 7, "Base gravable", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, FormatMoney(r.TaxBase), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(130, 10, tr("Neto a pagar"), "TB", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, FormatMoney(r.WagesPaid), "TB", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
