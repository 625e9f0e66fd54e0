package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aburakt/staffy/internal/domain/attendance"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Calendar CalendarConfig
	Cron     CronConfig
	Shift    attendance.ShiftPolicy
	Leave    staff.Policy
}

type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       slog.Level
	Timezone       *time.Location
	AllowedOrigins []string
	SeedDemoData   bool
}

type CalendarConfig struct {
	HolidaysFile string
}

type CronConfig struct {
	CarryoverInterval time.Duration
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	config := &Config{}
	var errs []error

	intEnv := func(key string, fallback int) int {
		v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return v
	}
	boolEnv := func(key string, fallback bool) bool {
		v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return v
	}
	durationEnv := func(key, fallback string) time.Duration {
		v, err := time.ParseDuration(getEnv(key, fallback))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return v
	}
	clockEnv := func(key, fallback string) time.Duration {
		v, err := attendance.ParseClock(getEnv(key, fallback))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return v
	}

	// Database configuration
	config.Database = DatabaseConfig{
		Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        intEnv("DB_PORT", 5432),
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "staffy"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		AutoMigrate: boolEnv("DB_AUTO_MIGRATE", false),
	}

	// Application configuration
	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL: %w", err))
	}
	location := time.Local
	if name := getEnv("APP_TIMEZONE", "Local"); name != "Local" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid APP_TIMEZONE: %w", err))
		} else {
			location = loc
		}
	}
	config.App = AppConfig{
		Port:           intEnv("APP_PORT", 8080),
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       level,
		Timezone:       location,
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
		SeedDemoData:   boolEnv("SEED_DEMO_DATA", false),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: durationEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Calendar = CalendarConfig{
		HolidaysFile: getEnv("HOLIDAYS_FILE", "config/holidays.yaml"),
	}

	config.Cron = CronConfig{
		CarryoverInterval: durationEnv("CARRYOVER_CRON_INTERVAL", "24h"),
	}

	// Shift and leave policy
	config.Shift = attendance.ShiftPolicy{
		Start:               clockEnv("SHIFT_START", "09:00"),
		End:                 clockEnv("SHIFT_END", "18:00"),
		Grace:               time.Duration(intEnv("SHIFT_GRACE_MINUTES", 15)) * time.Minute,
		StandardWorkMinutes: intEnv("STANDARD_WORK_MINUTES", 480),
		HalfDayMinutes:      intEnv("HALF_DAY_MINUTES", 240),
	}
	config.Leave = staff.Policy{
		DefaultAnnualLeaveDays: intEnv("DEFAULT_ANNUAL_LEAVE_DAYS", staff.DefaultAnnualLeaveDays),
		MaxCarryoverDays:       intEnv("MAX_CARRYOVER_DAYS", staff.MaxCarryoverDays),
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case StorageDriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageDriverPostgres, StorageDriverMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	if c.Cron.CarryoverInterval <= 0 {
		return fmt.Errorf("CARRYOVER_CRON_INTERVAL must be positive")
	}
	if c.Shift.End <= c.Shift.Start {
		return fmt.Errorf("SHIFT_END must be after SHIFT_START")
	}
	if c.Shift.Grace < 0 || c.Shift.StandardWorkMinutes <= 0 || c.Shift.HalfDayMinutes <= 0 {
		return fmt.Errorf("shift minutes must be positive")
	}
	if c.Leave.DefaultAnnualLeaveDays < 0 || c.Leave.MaxCarryoverDays < 0 {
		return fmt.Errorf("leave policy days cannot be negative")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
