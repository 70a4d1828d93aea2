package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Storage  StorageConfig
	Payroll  PayrollConfig
	Leave    LeaveConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds token verification configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

type StorageConfig struct {
	BasePath    string
	BaseURL     string
	PayslipDir  string
	ReportDir   string
	UploadDir   string
	MaxUploadMB int64
}

// PayrollConfig holds calculation policy knobs
type PayrollConfig struct {
	// Workers bounds the calculation fan-out per cycle.
	Workers int
	// WeekendDays are non-working weekdays.
	WeekendDays []time.Weekday
	// ProrateDeductions applies attendance proration to deduction components
	// not individually flagged proratable. Default off: deductions are fixed
	// per period.
	ProrateDeductions bool
}

type LeaveConfig struct {
	DefaultPaidLeavesPerYear int
	DefaultMaxCarryForward   int
	RolloverInterval         time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using process environment")
	}

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "aurora_payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION", "15m"),
	}
	if config.App.Env == "production" && config.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	maxUpload, err := strconv.ParseInt(getEnv("STORAGE_MAX_UPLOAD_MB", "10"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_MAX_UPLOAD_MB: %w", err)
	}

	config.Storage = StorageConfig{
		BasePath:    getEnv("STORAGE_BASE_PATH", "storage"),
		BaseURL:     getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
		PayslipDir:  getEnv("STORAGE_PAYSLIP_DIR", "payslips"),
		ReportDir:   getEnv("STORAGE_REPORT_DIR", "reports"),
		UploadDir:   getEnv("STORAGE_UPLOAD_DIR", "uploads"),
		MaxUploadMB: maxUpload,
	}

	workers, err := strconv.Atoi(getEnv("PAYROLL_WORKERS", "8"))
	if err != nil || workers < 1 {
		return nil, fmt.Errorf("invalid PAYROLL_WORKERS: %q", getEnv("PAYROLL_WORKERS", "8"))
	}

	weekendDays, err := parseWeekendDays(getEnv("PAYROLL_WEEKEND_DAYS", "Saturday,Sunday"))
	if err != nil {
		return nil, err
	}

	config.Payroll = PayrollConfig{
		Workers:           workers,
		WeekendDays:       weekendDays,
		ProrateDeductions: getEnv("PAYROLL_PRORATE_DEDUCTIONS", "false") == "true",
	}

	paidLeaves, err := strconv.Atoi(getEnv("LEAVE_DEFAULT_PAID_PER_YEAR", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAVE_DEFAULT_PAID_PER_YEAR: %w", err)
	}
	carryForward, err := strconv.Atoi(getEnv("LEAVE_DEFAULT_MAX_CARRY_FORWARD", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAVE_DEFAULT_MAX_CARRY_FORWARD: %w", err)
	}
	rollover, err := time.ParseDuration(getEnv("LEAVE_ROLLOVER_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAVE_ROLLOVER_INTERVAL: %w", err)
	}

	config.Leave = LeaveConfig{
		DefaultPaidLeavesPerYear: paidLeaves,
		DefaultMaxCarryForward:   carryForward,
		RolloverInterval:         rollover,
	}

	return config, nil
}

// DatabaseURL constructs the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func parseWeekendDays(raw string) ([]time.Weekday, error) {
	names := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}
	var days []time.Weekday
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		day, ok := names[part]
		if !ok {
			return nil, fmt.Errorf("invalid PAYROLL_WEEKEND_DAYS entry: %q", part)
		}
		days = append(days, day)
	}
	return days, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
