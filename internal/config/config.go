// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type BookingConfig struct {
	PricePerHourCents  int64  `yaml:"price_per_hour_cents"`
	DefaultPhoneRegion string `yaml:"default_phone_region"`
	Timezone           string `yaml:"timezone"`
}

type EmailConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Region          string `yaml:"region"`
	Sender          string `yaml:"sender"`
	AccessKeyID     string `yaml:"-"` // Loaded from environment
	SecretAccessKey string `yaml:"-"` // Loaded from environment
}

type SchedulerConfig struct {
	ReminderCron        string `yaml:"reminder_cron"`
	CleanupCron         string `yaml:"cleanup_cron"`
	ReminderHoursBefore int    `yaml:"reminder_hours_before"`
	RetentionDays       int    `yaml:"retention_days"`
}

type RateLimitConfig struct {
	APIRequestsPerSecond float64 `yaml:"api_requests_per_second"`
	APIBurst             int     `yaml:"api_burst"`
	LoginMaxAttempts     int     `yaml:"login_max_attempts"`
	LoginWindowMinutes   int     `yaml:"login_window_minutes"`
	LoginLockoutMinutes  int     `yaml:"login_lockout_minutes"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		MediaDir    string `yaml:"media_dir"`
		StaticDir   string `yaml:"static_dir"`
		SecretKey   string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database  DatabaseConfig  `yaml:"database"`
	Booking   BookingConfig   `yaml:"booking"`
	Email     EmailConfig     `yaml:"email"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`

	Features struct {
		EnableMetrics bool `yaml:"enable_metrics"`
		EnableDebug   bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")
	cfg.Email.AccessKeyID = os.Getenv("SES_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("SES_SECRET_ACCESS_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML on top of the defaults without validating.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// Default returns the values used for keys missing from config.yaml.
func Default() *Config {
	cfg := &Config{}
	cfg.App.Name = "canchas"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.App.MediaDir = "media"
	cfg.App.StaticDir = "static"
	cfg.Database.Driver = "sqlite"
	cfg.Database.Filename = "data/canchas.db"
	cfg.Booking.PricePerHourCents = 10000
	cfg.Booking.DefaultPhoneRegion = "PE"
	cfg.Booking.Timezone = "America/Lima"
	cfg.Scheduler.ReminderCron = "*/15 * * * *"
	cfg.Scheduler.CleanupCron = "0 3 * * *"
	cfg.Scheduler.ReminderHoursBefore = 24
	cfg.Scheduler.RetentionDays = 30
	cfg.RateLimit.APIRequestsPerSecond = 10
	cfg.RateLimit.APIBurst = 20
	cfg.RateLimit.LoginMaxAttempts = 5
	cfg.RateLimit.LoginWindowMinutes = 15
	cfg.RateLimit.LoginLockoutMinutes = 15
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Environment, "development")
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app port must be between 1 and 65535")
	}
	if c.App.MediaDir == "" {
		return fmt.Errorf("app media_dir is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Booking.PricePerHourCents < 0 {
		return fmt.Errorf("booking price_per_hour_cents must not be negative")
	}
	if len(c.Booking.DefaultPhoneRegion) != 2 {
		return fmt.Errorf("booking default_phone_region must be a two letter region code")
	}
	if c.Booking.Timezone != "" {
		if _, err := c.Location(); err != nil {
			return fmt.Errorf("booking timezone: %w", err)
		}
	}

	if c.Email.Enabled {
		if c.Email.Sender == "" {
			return fmt.Errorf("email sender is required when email is enabled")
		}
		if c.Email.Region == "" {
			return fmt.Errorf("email region is required when email is enabled")
		}
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, expr := range map[string]string{
		"reminder_cron": c.Scheduler.ReminderCron,
		"cleanup_cron":  c.Scheduler.CleanupCron,
	} {
		if expr == "" {
			continue
		}
		if _, err := parser.Parse(expr); err != nil {
			return fmt.Errorf("scheduler %s %q: %w", name, expr, err)
		}
	}
	if c.Scheduler.ReminderHoursBefore < 0 {
		return fmt.Errorf("scheduler reminder_hours_before must not be negative")
	}
	if c.Scheduler.RetentionDays < 0 {
		return fmt.Errorf("scheduler retention_days must not be negative")
	}

	if c.RateLimit.APIRequestsPerSecond < 0 || c.RateLimit.APIBurst < 0 {
		return fmt.Errorf("ratelimit api values must not be negative")
	}
	if c.RateLimit.LoginMaxAttempts < 0 || c.RateLimit.LoginWindowMinutes < 0 || c.RateLimit.LoginLockoutMinutes < 0 {
		return fmt.Errorf("ratelimit login values must not be negative")
	}

	return nil
}

// Location resolves the booking timezone, defaulting to local time.
func (c *Config) Location() (*time.Location, error) {
	if c.Booking.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Booking.Timezone)
}
