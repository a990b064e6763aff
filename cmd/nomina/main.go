package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"nomina/internal/app/cli"
	"nomina/internal/input"
	"nomina/internal/platform/config"
	"nomina/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return 1
	}

	runner := cli.Runner{
		Config:   cfg,
		Logger:   logger,
		Resolver: input.NewResolver(os.Stdin, os.Stdout, logger),
		Stdout:   os.Stdout,
	}
	if err := runner.Run(); err != nil {
		if input.IsInvalidInput(err) {
			fmt.Fprintf(os.Stderr, "Entrada inválida: %v\n", err)
			return 1
		}
		logger.Error("payroll run failed", zap.Error(err))
		return 1
	}
	return 0
}
