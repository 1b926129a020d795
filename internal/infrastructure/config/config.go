// Package config loads application configuration from a TOML file and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Storage   StorageConfig
	Assistant AssistantConfig
	Mail      MailConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
}

// StorageConfig holds the durable envelope slot configuration
type StorageConfig struct {
	Driver            string // sqlite or postgres
	Path              string // sqlite database file
	Host              string // postgres settings
	Port              int
	User              string
	Password          string
	DBName            string
	SSLMode           string
	EnvelopeKey       string        // fixed key the envelope is stored under
	ReadDelay         time.Duration // simulated latency on store reads, zero in tests
	ImportSettleDelay time.Duration // pause between bulk import and refresh
}

// AssistantConfig holds the conversational assistant settings
type AssistantConfig struct {
	Enabled bool
	APIKey  string
	Model   string
}

// MailConfig holds the external mail proxy settings
type MailConfig struct {
	Enabled bool
	BaseURL string
	Timeout time.Duration
}

// DSN builds the postgres connection string
func (c *StorageConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Load loads configuration from config.toml and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with CRM_ prefix (e.g., CRM_STORAGE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("CRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults and env cover everything.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "starterbox-crm"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "sqlite"
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "crm.db"
	}
	if cfg.Storage.Host == "" {
		cfg.Storage.Host = "localhost"
	}
	if cfg.Storage.Port == 0 {
		cfg.Storage.Port = 5432
	}
	if cfg.Storage.User == "" {
		cfg.Storage.User = "postgres"
	}
	if cfg.Storage.DBName == "" {
		cfg.Storage.DBName = "crm"
	}
	if cfg.Storage.SSLMode == "" {
		cfg.Storage.SSLMode = "disable"
	}
	if cfg.Storage.EnvelopeKey == "" {
		cfg.Storage.EnvelopeKey = "starter_box_crm_data_v1"
	}
	if cfg.Storage.ImportSettleDelay == 0 {
		cfg.Storage.ImportSettleDelay = 500 * time.Millisecond
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = "gemini-2.5-flash"
	}
	if cfg.Mail.Timeout == 0 {
		cfg.Mail.Timeout = 15 * time.Second
	}
}

func validate(cfg *Config) error {
	switch cfg.Storage.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
	if cfg.Assistant.Enabled && cfg.Assistant.APIKey == "" {
		return errors.New("assistant is enabled but no API key is configured")
	}
	if cfg.Mail.Enabled && cfg.Mail.BaseURL == "" {
		return errors.New("mail proxy is enabled but no base URL is configured")
	}
	return nil
}
