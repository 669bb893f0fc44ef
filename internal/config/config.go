package config

import (
	"path/filepath"
	"strings"
	"time"

	"task-manager/internal/logging"
	"task-manager/internal/repository"
)

const (
	// EnvPrefix prefixes every environment variable read by the loader.
	EnvPrefix = "TM_"

	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
	EnvironmentTesting     = "testing"

	ProviderMemory   = "memory"
	ProviderSQLite   = "sqlite"
	ProviderPostgres = "postgres"
)

// Config holds all configuration options for the task manager service
type Config struct {
	App      AppConfig      `koanf:"app"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name        string `koanf:"name"`
	Environment string `koanf:"environment"`
	// Timezone is an IANA name used to stamp createDate/updateDate.
	Timezone string `koanf:"timezone"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr              string        `koanf:"addr"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	EnableSwagger     bool          `koanf:"enable_swagger"`
	EnableMetrics     bool          `koanf:"enable_metrics"`
}

// DatabaseConfig holds store configuration
type DatabaseConfig struct {
	Provider        string        `koanf:"provider"`
	DSN             string        `koanf:"dsn"`
	Dir             string        `koanf:"dir"`
	Filename        string        `koanf:"filename"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level     string `koanf:"level"`
	JSON      bool   `koanf:"json"`
	AddSource bool   `koanf:"add_source"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "task-manager",
			Environment: EnvironmentDevelopment,
			Timezone:    "Local",
		},
		Server: ServerConfig{
			Addr:              ":8080",
			RequestTimeout:    10 * time.Second,
			ShutdownTimeout:   15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			EnableSwagger:     true,
			EnableMetrics:     true,
		},
		Database: DatabaseConfig{
			Provider:        ProviderSQLite,
			Dir:             "data",
			Filename:        "tasks.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: string(logging.InfoLevel),
		},
	}
}

// GetDatabasePath returns the full path to the sqlite database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// IsTesting reports whether the testing environment is active.
func (c *Config) IsTesting() bool {
	return c.App.Environment == EnvironmentTesting
}

// Location resolves App.Timezone. "Local" and "" map to time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" || c.App.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.App.Timezone)
}

// LoggingConfig converts the log section into a logging.Config.
func (c *Config) LoggingConfig() *logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.LogLevel(strings.ToLower(c.Log.Level))
	cfg.JSON = c.Log.JSON
	cfg.AddSource = c.Log.AddSource
	return cfg
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	switch c.App.Environment {
	case EnvironmentDevelopment, EnvironmentProduction, EnvironmentTesting:
	default:
		return &ConfigError{Field: "app.environment", Message: "environment must be one of development, production, testing"}
	}
	if _, err := c.Location(); err != nil {
		return &ConfigError{Field: "app.timezone", Message: "unknown timezone " + c.App.Timezone}
	}

	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.RequestTimeout <= 0 {
		return &ConfigError{Field: "server.request_timeout", Message: "request timeout must be positive"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	switch c.Database.Provider {
	case ProviderMemory:
	case ProviderSQLite:
		if c.Database.DSN == "" && (c.Database.Dir == "" || c.Database.Filename == "") {
			return &ConfigError{Field: "database.filename", Message: "sqlite needs a dsn or a dir and filename"}
		}
	case ProviderPostgres:
		if c.Database.DSN == "" {
			return &ConfigError{Field: "database.dsn", Message: "postgres requires a connection string"}
		}
	default:
		return &ConfigError{Field: "database.provider", Message: "provider must be one of memory, sqlite, postgres"}
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return &ConfigError{Field: "database.max_open_conns", Message: "connection limits cannot be negative"}
	}

	if !logging.LogLevel(strings.ToLower(c.Log.Level)).IsValid() {
		return &ConfigError{Field: "log.level", Message: "log level must be one of debug, info, warn, error"}
	}

	return nil
}

// dialect maps a SQL provider to its repository dialect.
func (c *Config) dialect() (repository.Dialect, error) {
	return repository.ParseDialect(c.Database.Provider)
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
