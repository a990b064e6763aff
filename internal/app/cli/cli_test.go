package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"nomina/internal/domain/payroll"
	"nomina/internal/input"
	"nomina/internal/platform/config"
)

type resolverFunc func() (payroll.Input, error)

func (f resolverFunc) Resolve() (payroll.Input, error) { return f() }

func fixedInput(salary string) resolverFunc {
	return func() (payroll.Input, error) {
		return payroll.NewInput(decimal.RequireFromString(salary)), nil
	}
}

func TestRunPrintsText(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var stdout bytes.Buffer
	runner := Runner{
		Config:   config.Config{PayrollYear: 2023, OutputFormat: config.OutputText},
		Logger:   zap.New(core),
		Resolver: fixedInput("1160000"),
		Stdout:   &stdout,
	}

	require.NoError(t, runner.Run())

	assert.Contains(t, stdout.String(), "1,207,806.00")
	assert.Equal(t, 1, logs.FilterMessage("salario mínimo integral vigente").Len())
	entry := logs.FilterMessage("aporte FVP máximo exento").All()
	require.Len(t, entry, 1)
	assert.Equal(t, "56,832,080.00", entry[0].ContextMap()["amount"])
}

func TestRunPrintsJSON(t *testing.T) {
	var stdout bytes.Buffer
	runner := Runner{
		Config:   config.Config{PayrollYear: 2023, OutputFormat: config.OutputJSON},
		Logger:   zap.NewNop(),
		Resolver: fixedInput("5000000"),
		Stdout:   &stdout,
	}

	require.NoError(t, runner.Run())

	var result payroll.Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, "4441537", result.WagesPaid.String())
}

func TestRunWritesPayslip(t *testing.T) {
	var written string
	var data []byte
	runner := Runner{
		Config:   config.Config{PayrollYear: 2023, OutputFormat: config.OutputText, PayslipPath: "out/nomina.pdf"},
		Logger:   zap.NewNop(),
		Resolver: fixedInput("5000000"),
		Stdout:   &bytes.Buffer{},
		WriteFile: func(name string, b []byte, perm os.FileMode) error {
			written = name
			data = b
			return nil
		},
	}

	require.NoError(t, runner.Run())

	assert.Equal(t, "out/nomina.pdf", written)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRunInvalidInputPrintsNothing(t *testing.T) {
	var stdout bytes.Buffer
	runner := Runner{
		Config: config.Config{PayrollYear: 2023, OutputFormat: config.OutputText},
		Logger: zap.NewNop(),
		Resolver: resolverFunc(func() (payroll.Input, error) {
			return input.ParseInput("abc", "", "")
		}),
		Stdout: &stdout,
	}

	err := runner.Run()

	assert.True(t, input.IsInvalidInput(err))
	assert.Empty(t, stdout.String())
}

func TestRunUnknownYear(t *testing.T) {
	runner := Runner{
		Config:   config.Config{PayrollYear: 2001},
		Logger:   zap.NewNop(),
		Resolver: fixedInput("1"),
		Stdout:   &bytes.Buffer{},
	}

	assert.True(t, errors.Is(runner.Run(), payroll.ErrUnknownStatuteYear))
}
