package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"nomina/internal/domain/payroll"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

type Config struct {
	Environment        string
	Addr               string
	LogLevel           string
	PayrollYear        int
	OutputFormat       string
	PayslipPath        string
	EmployeeName       string
	MaxBodyBytes       int64
	RateLimitPerMinute int
	TrustProxyHeaders  bool
	MetricsEnabled     bool
	ShutdownTimeout    time.Duration
}

// Load reads the process environment. Callers that want a .env file load it
// first with godotenv.
func Load() Config {
	return Config{
		Environment:        getEnv("APP_ENV", "development"),
		Addr:               getEnv("APP_ADDR", ":8080"),
		LogLevel:           getEnv("LOG_LEVEL", ""),
		PayrollYear:        getEnvInt("PAYROLL_YEAR", payroll.DefaultYear),
		OutputFormat:       strings.ToLower(getEnv("OUTPUT_FORMAT", OutputText)),
		PayslipPath:        getEnv("PAYSLIP_PATH", ""),
		EmployeeName:       getEnv("EMPLOYEE_NAME", ""),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 65536)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		TrustProxyHeaders:  getEnvBool("TRUST_PROXY_HEADERS", false),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if _, err := payroll.StatuteFor(c.PayrollYear); err != nil {
		return fmt.Errorf("PAYROLL_YEAR: %w", err)
	}
	if c.OutputFormat != OutputText && c.OutputFormat != OutputJSON {
		return fmt.Errorf("OUTPUT_FORMAT must be %q or %q", OutputText, OutputJSON)
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
