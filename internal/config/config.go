package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Workforce WorkforceConfig
	Payroll   PayrollConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
	MaxConns    int32
	MinConns    int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// WorkforceConfig drives the puantaj calendar: the business time zone used to bucket
// timestamps into calendar days and the weekly rest days.
type WorkforceConfig struct {
	Timezone       string
	Location       *time.Location
	OffDays        []time.Weekday
	BranchOffDays  map[string][]time.Weekday
	DefaultSalary  decimal.Decimal
	MaxConcurrency int
}

type PayrollConfig struct {
	ExpenseAccountID string
	CronEnabled      bool
}

func Load() (*Config, error) {
	// .env is optional; real deployments inject the environment directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "workforce"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		MaxConns:    int32(maxConns),
		MinConns:    int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Workforce configuration
	workforce, err := loadWorkforce()
	if err != nil {
		return nil, err
	}
	config.Workforce = workforce

	config.Payroll = PayrollConfig{
		ExpenseAccountID: getEnv("PAYROLL_EXPENSE_ACCOUNT_ID", ""),
		CronEnabled:      getEnvBool("PAYROLL_CRON_ENABLED", true),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadWorkforce() (WorkforceConfig, error) {
	tz := getEnv("WORKFORCE_TIMEZONE", "Europe/Istanbul")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return WorkforceConfig{}, fmt.Errorf("invalid WORKFORCE_TIMEZONE: %w", err)
	}

	offDays, err := ParseWeekdays(getEnv("WORKFORCE_OFF_DAYS", "Sunday"))
	if err != nil {
		return WorkforceConfig{}, fmt.Errorf("invalid WORKFORCE_OFF_DAYS: %w", err)
	}

	branchOffDays, err := ParseBranchOffDays(getEnv("WORKFORCE_BRANCH_OFF_DAYS", ""))
	if err != nil {
		return WorkforceConfig{}, fmt.Errorf("invalid WORKFORCE_BRANCH_OFF_DAYS: %w", err)
	}

	defaultSalary, err := decimal.NewFromString(getEnv("WORKFORCE_DEFAULT_SALARY", "17002"))
	if err != nil {
		return WorkforceConfig{}, fmt.Errorf("invalid WORKFORCE_DEFAULT_SALARY: %w", err)
	}

	concurrency, err := strconv.Atoi(getEnv("WORKFORCE_MAX_CONCURRENCY", "8"))
	if err != nil {
		return WorkforceConfig{}, fmt.Errorf("invalid WORKFORCE_MAX_CONCURRENCY: %w", err)
	}

	return WorkforceConfig{
		Timezone:       tz,
		Location:       loc,
		OffDays:        offDays,
		BranchOffDays:  branchOffDays,
		DefaultSalary:  defaultSalary,
		MaxConcurrency: concurrency,
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is not a valid duration: %w", err)
	}
	if c.Workforce.MaxConcurrency < 1 {
		return fmt.Errorf("WORKFORCE_MAX_CONCURRENCY must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
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

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseWeekdays parses a comma separated list of English weekday names.
func ParseWeekdays(value string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range strings.Split(value, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		day, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}

// ParseBranchOffDays parses "Merkez:Sunday;Kadikoy:Monday,Tuesday".
func ParseBranchOffDays(value string) (map[string][]time.Weekday, error) {
	result := make(map[string][]time.Weekday)
	for _, entry := range strings.Split(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		branch, days, found := strings.Cut(entry, ":")
		if !found || strings.TrimSpace(branch) == "" {
			return nil, fmt.Errorf("malformed entry %q", entry)
		}
		parsed, err := ParseWeekdays(days)
		if err != nil {
			return nil, err
		}
		result[strings.TrimSpace(branch)] = parsed
	}
	return result, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
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

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
