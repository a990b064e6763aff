package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomina/internal/domain/payroll"
)

func computeFor(t *testing.T, salary string) payroll.Result {
	t.Helper()
	statute, err := payroll.StatuteFor(payroll.DefaultYear)
	require.NoError(t, err)
	return payroll.NewCalculator(statute).Compute(payroll.NewInput(decimal.RequireFromString(salary)))
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0.00"},
		{in: "7", want: "7.00"},
		{in: "999", want: "999.00"},
		{in: "1000", want: "1,000.00"},
		{in: "1160000", want: "1,160,000.00"},
		{in: "1234567.891", want: "1,234,567.89"},
		{in: "0.005", want: "0.01"},
		{in: "-140606.5", want: "-140,606.50"},
		{in: "-0.5", want: "-0.50"},
		{in: "9223372036854775807", want: "9,223,372,036,854,775,807.00"},
		{in: "12345678901234567890", want: "12,345,678,901,234,567,890.00"},
		{in: "99999999999999999999999.999", want: "100,000,000,000,000,000,000,000.00"},
		{in: "-12345678901234567890.25", want: "-12,345,678,901,234,567,890.25"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0.0%", FormatPercent(decimal.Zero))
	assert.Equal(t, "1.2%", FormatPercent(decimal.RequireFromString("0.012")))
	assert.Equal(t, "2.0%", FormatPercent(decimal.RequireFromString("0.02")))
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, computeFor(t, "1160000")))

	out := buf.String()
	assert.Contains(t, out, "Gnómina del salario base mensual:")
	assert.Contains(t, out, "1,160,000.00")
	assert.Contains(t, out, "140,606.00")
	assert.Contains(t, out, "1,300,606.00")
	assert.Contains(t, out, "46,400.00")
	assert.Contains(t, out, "Compensación neta por 30 días:")
	assert.Contains(t, out, "1,207,806.00")
	assert.NotContains(t, out, "Salario integral")
}

func TestWriteTextComprehensive(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, computeFor(t, "20000000")))

	assert.Contains(t, buf.String(), "Salario integral")
	assert.Contains(t, buf.String(), "Fondo de solidaridad (1.4%)")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, computeFor(t, "5000000")))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "5000000", decoded["wagesEarned"])
	assert.Equal(t, "108463", decoded["withholdingTax"])
	assert.Equal(t, "4441537", decoded["wagesPaid"])
	assert.Equal(t, float64(30), decoded["paymentDays"])
	assert.Equal(t, false, decoded["comprehensiveSalary"])
}

func TestRenderPayslipPDF(t *testing.T) {
	data, err := RenderPayslipPDF(computeFor(t, "5000000"), PayslipMeta{EmployeeName: "Ana Muñoz", Period: "2023-05"})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Greater(t, len(data), 200)
}
