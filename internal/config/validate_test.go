package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8787, LogLevel: "info"},
		Overseerr: ServiceConfig{
			URL:    "http://overseerr:5055",
			APIKey: "ovr-key",
		},
		Radarr: ServiceConfig{
			URL:    "http://radarr:7878",
			APIKey: "rad-key",
		},
		Sonarr: ServiceConfig{
			URL:    "http://sonarr:8989",
			APIKey: "son-key",
		},
		Retention: RetentionConfig{
			RetentionDays: 30,
			ReminderDays:  7,
			ExtensionDays: 14,
			Schedule:      "0 2 * * *",
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	errs := validConfig().Validate()
	assert.Empty(t, errs, "expected no errors for valid config")
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 99999
	assert.True(t, containsError(cfg.Validate(), "server.port"))
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Server.LogLevel = "verbose"
	assert.True(t, containsError(cfg.Validate(), "server.log_level"))
}

func TestValidate_MissingServiceCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Overseerr.APIKey = ""
	cfg.Sonarr.URL = ""

	errs := cfg.Validate()
	assert.True(t, containsError(errs, "overseerr.api_key"))
	assert.True(t, containsError(errs, "sonarr.url"))
	assert.False(t, containsError(errs, "radarr"))
}

func TestValidate_ReminderMustPrecedeRetention(t *testing.T) {
	cfg := validConfig()
	cfg.Retention.ReminderDays = 30
	assert.True(t, containsError(cfg.Validate(), "reminder_days"))
}

func TestValidate_NonPositiveRetention(t *testing.T) {
	cfg := validConfig()
	cfg.Retention.RetentionDays = 0
	cfg.Retention.ExtensionDays = -1
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "retention.retention_days"))
	assert.True(t, containsError(errs, "retention.extension_days"))
}

func TestValidate_BadCronSchedule(t *testing.T) {
	cfg := validConfig()
	cfg.Retention.Schedule = "every tuesday"
	assert.True(t, containsError(cfg.Validate(), "retention.schedule"))
}

func TestValidate_EmptyScheduleDisablesScheduler(t *testing.T) {
	cfg := validConfig()
	cfg.Retention.Schedule = ""
	assert.Empty(t, cfg.Validate())
}

func TestValidate_IncompleteSMTP(t *testing.T) {
	cfg := validConfig()
	cfg.Notifications.SMTP = &SMTPConfig{Host: "mail.example.com"}
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "notifications.smtp.from"))
	assert.False(t, containsError(errs, "notifications.smtp.host"))
}

func TestConfigError_Format(t *testing.T) {
	err := &ConfigError{
		Path:   "/etc/janitarr/config.toml",
		Errors: []string{"overseerr.url: required", "retention.retention_days: must be positive, got 0"},
	}
	assert.True(t, err.HasErrors())
	assert.Contains(t, err.Error(), "validation failed:")
	assert.Contains(t, err.Error(), "overseerr.url")
}
