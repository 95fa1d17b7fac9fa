package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("app:\n  name: test\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.App.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.App.Port)
	}
	if cfg.Booking.PricePerHourCents != 10000 {
		t.Fatalf("expected default price 10000, got %d", cfg.Booking.PricePerHourCents)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "missing_name", mutate: func(c *Config) { c.App.Name = "" }, wantErr: "app name"},
		{name: "bad_port", mutate: func(c *Config) { c.App.Port = 70000 }, wantErr: "port"},
		{name: "bad_driver", mutate: func(c *Config) { c.Database.Driver = "postgres" }, wantErr: "unsupported database driver"},
		{name: "missing_filename", mutate: func(c *Config) { c.Database.Filename = "" }, wantErr: "filename"},
		{name: "negative_price", mutate: func(c *Config) { c.Booking.PricePerHourCents = -1 }, wantErr: "price_per_hour_cents"},
		{name: "bad_region", mutate: func(c *Config) { c.Booking.DefaultPhoneRegion = "PER" }, wantErr: "default_phone_region"},
		{name: "bad_timezone", mutate: func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }, wantErr: "timezone"},
		{name: "email_without_sender", mutate: func(c *Config) { c.Email.Enabled = true; c.Email.Region = "us-east-1" }, wantErr: "sender"},
		{name: "bad_cron", mutate: func(c *Config) { c.Scheduler.ReminderCron = "every minute" }, wantErr: "reminder_cron"},
		{name: "negative_retention", mutate: func(c *Config) { c.Scheduler.RetentionDays = -1 }, wantErr: "retention_days"},
		{name: "negative_burst", mutate: func(c *Config) { c.RateLimit.APIBurst = -1 }, wantErr: "ratelimit"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q", test.wantErr)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("expected error containing %q, got %v", test.wantErr, err)
			}
		})
	}
}

func TestValidateAcceptsCronDescriptors(t *testing.T) {
	cfg := Default()
	cfg.Scheduler.CleanupCron = "@daily"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected @daily to validate: %v", err)
	}
}

func TestLoadReadsSecretsFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("app:\n  name: canchas\n  port: 9090\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_SECRET_KEY=from-env-file\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("APP_SECRET_KEY", "")
	os.Unsetenv("APP_SECRET_KEY")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.App.Port)
	}
	if cfg.App.SecretKey != "from-env-file" {
		t.Fatalf("expected secret from .env, got %q", cfg.App.SecretKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
