// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Upstream services
	errs = append(errs, c.Overseerr.validate("overseerr")...)
	errs = append(errs, c.Radarr.validate("radarr")...)
	errs = append(errs, c.Sonarr.validate("sonarr")...)

	// Retention validation
	if c.Retention.RetentionDays < 1 {
		errs = append(errs, fmt.Sprintf("retention.retention_days: must be positive, got %d", c.Retention.RetentionDays))
	}
	if c.Retention.ReminderDays < 1 {
		errs = append(errs, fmt.Sprintf("retention.reminder_days: must be positive, got %d", c.Retention.ReminderDays))
	}
	if c.Retention.ExtensionDays < 1 {
		errs = append(errs, fmt.Sprintf("retention.extension_days: must be positive, got %d", c.Retention.ExtensionDays))
	}
	if c.Retention.ReminderDays >= c.Retention.RetentionDays {
		errs = append(errs, fmt.Sprintf("retention.reminder_days: must be less than retention_days (%d >= %d)",
			c.Retention.ReminderDays, c.Retention.RetentionDays))
	}
	if c.Retention.Schedule != "" {
		if _, err := cron.ParseStandard(c.Retention.Schedule); err != nil {
			errs = append(errs, fmt.Sprintf("retention.schedule: invalid cron expression %q: %v", c.Retention.Schedule, err))
		}
	}

	// SMTP validation
	if smtp := c.Notifications.SMTP; smtp != nil {
		if smtp.Host == "" {
			errs = append(errs, "notifications.smtp.host: required when smtp is configured")
		}
		if smtp.From == "" {
			errs = append(errs, "notifications.smtp.from: required when smtp is configured")
		}
	}

	return errs
}

func (s *ServiceConfig) validate(name string) []string {
	var errs []string
	if s.URL == "" {
		errs = append(errs, fmt.Sprintf("%s.url: required", name))
	}
	if s.APIKey == "" {
		errs = append(errs, fmt.Sprintf("%s.api_key: required", name))
	}
	return errs
}
