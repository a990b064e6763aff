package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"nomina/internal/domain/payroll"
	"nomina/internal/platform/config"
	"nomina/internal/report"
)

type InputResolver interface {
	Resolve() (payroll.Input, error)
}

// Runner performs one settlement per invocation: resolve the input, compute,
// print and optionally save a PDF payslip. Nothing is printed when any step
// fails.
type Runner struct {
	Config    config.Config
	Logger    *zap.Logger
	Resolver  InputResolver
	Stdout    io.Writer
	WriteFile func(name string, data []byte, perm os.FileMode) error
}

func (r *Runner) Run() error {
	statute, err := payroll.StatuteFor(r.Config.PayrollYear)
	if err != nil {
		return err
	}
	if err := statute.Validate(); err != nil {
		return err
	}
	logStatute(r.Logger, statute)

	in, err := r.Resolver.Resolve()
	if err != nil {
		return err
	}

	result := payroll.NewCalculator(statute).Compute(in)
	r.Logger.Info("porcentaje FSP", zap.String("percentage", report.FormatPercent(result.SolidarityFundPercentage)))

	var out bytes.Buffer
	switch r.Config.OutputFormat {
	case config.OutputJSON:
		err = report.WriteJSON(&out, result)
	default:
		err = report.WriteText(&out, result)
	}
	if err != nil {
		return fmt.Errorf("format result: %w", err)
	}

	var pdf []byte
	if r.Config.PayslipPath != "" {
		pdf, err = report.RenderPayslipPDF(result, report.PayslipMeta{EmployeeName: r.Config.EmployeeName})
		if err != nil {
			return err
		}
	}

	if _, err := r.Stdout.Write(out.Bytes()); err != nil {
		return err
	}
	if pdf != nil {
		writeFile := r.WriteFile
		if writeFile == nil {
			writeFile = os.WriteFile
		}
		if err := writeFile(r.Config.PayslipPath, pdf, 0o600); err != nil {
			return fmt.Errorf("write payslip: %w", err)
		}
		r.Logger.Info("payslip written", zap.String("path", r.Config.PayslipPath))
	}
	return nil
}

func logStatute(logger *zap.Logger, s payroll.Statute) {
	logger.Info("salario mínimo integral vigente", zap.Int("year", s.Year), zap.String("amount", report.FormatMoney(s.ComprehensiveSalaryMin())))
	logger.Info("subsidio de transporte", zap.String("amount", report.FormatMoney(s.TransportationSubsidy)))
	logger.Info("subsidio de transporte aplica hasta", zap.String("amount", report.FormatMoney(s.TransportationSubsidyCeiling())))
	logger.Info("unidad de valor tributario (UVT)", zap.String("amount", report.FormatMoney(s.TaxValueUnit)))
	logger.Info("aporte FVP máximo exento", zap.String("amount", report.FormatMoney(s.VoluntaryPensionExemptMax())))
}
