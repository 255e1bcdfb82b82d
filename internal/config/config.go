// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Overseerr     ServiceConfig       `toml:"overseerr"`
	Radarr        ServiceConfig       `toml:"radarr"`
	Sonarr        ServiceConfig       `toml:"sonarr"`
	Retention     RetentionConfig     `toml:"retention"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	APIKey   string `toml:"api_key"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ServiceConfig is the connection configuration shared by Overseerr,
// Radarr and Sonarr.
type ServiceConfig struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
}

type RetentionConfig struct {
	RetentionDays int    `toml:"retention_days"`
	ReminderDays  int    `toml:"reminder_days"`
	ExtensionDays int    `toml:"extension_days"`
	Schedule      string `toml:"schedule"` // cron expression; empty disables the scheduler
	Parallelism   int    `toml:"parallelism"`
}

type NotificationsConfig struct {
	SMTP *SMTPConfig `toml:"smtp"`
}

type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	From     string `toml:"from"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8787
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/janitarr.db"
	}
	if cfg.Retention.RetentionDays == 0 {
		cfg.Retention.RetentionDays = 30
	}
	if cfg.Retention.ReminderDays == 0 {
		cfg.Retention.ReminderDays = 7
	}
	if cfg.Retention.ExtensionDays == 0 {
		cfg.Retention.ExtensionDays = 14
	}
	if cfg.Retention.Parallelism == 0 {
		cfg.Retention.Parallelism = 4
	}
	if cfg.Notifications.SMTP != nil && cfg.Notifications.SMTP.Port == 0 {
		cfg.Notifications.SMTP.Port = 587
	}

	return &cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
