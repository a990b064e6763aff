package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"nomina/internal/domain/payroll"
)

const (
	EnvSalary                 = "SALARY"
	EnvDays                   = "DAYS"
	EnvExtralegalVacationDays = "EXTRALEGAL_VACATION_DAYS"
)

const (
	salaryPrompt = "¿Cuál es tu salario base mensual? " +
		"(es el acuerdo del contrato laboral; escríbelo en pesos colombianos sin puntos o comas)\n"
	daysPrompt = "¿Cuántos días vas a liquidar? (30 para el mes completo)\n"
)

// Resolver collects the settlement input from the environment and falls back
// to asking on Prompt for anything missing. Vacation days are only read from
// the environment.
type Resolver struct {
	LookupEnv func(string) (string, bool)
	Prompt    io.Reader
	Out       io.Writer
	Logger    *zap.Logger

	scanner *bufio.Scanner
}

func NewResolver(prompt io.Reader, out io.Writer, logger *zap.Logger) *Resolver {
	return &Resolver{
		LookupEnv: os.LookupEnv,
		Prompt:    prompt,
		Out:       out,
		Logger:    logger,
	}
}

func (r *Resolver) Resolve() (payroll.Input, error) {
	salary, err := r.value(EnvSalary, salaryPrompt)
	if err != nil {
		return payroll.Input{}, err
	}
	days, err := r.value(EnvDays, daysPrompt)
	if err != nil {
		return payroll.Input{}, err
	}
	vacation, _ := r.lookup(EnvExtralegalVacationDays)
	return ParseInput(salary, days, vacation)
}

func (r *Resolver) lookup(key string) (string, bool) {
	lookup := r.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	value, ok := lookup(key)
	if ok {
		r.logger().Info("value found in environment", zap.String("key", key))
	}
	return value, ok
}

func (r *Resolver) value(key, prompt string) (string, error) {
	if value, ok := r.lookup(key); ok {
		return value, nil
	}
	return r.ask(prompt)
}

func (r *Resolver) ask(prompt string) (string, error) {
	if r.Prompt == nil {
		return "", fmt.Errorf("%w: no value provided and no prompt available", ErrInvalidInput)
	}
	if r.Out != nil {
		if _, err := io.WriteString(r.Out, prompt); err != nil {
			return "", err
		}
	}
	if r.scanner == nil {
		r.scanner = bufio.NewScanner(r.Prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, io.ErrUnexpectedEOF)
	}
	return strings.TrimSpace(r.scanner.Text()), nil
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// IsInvalidInput reports whether err came from bad user input rather than
// from I/O.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
