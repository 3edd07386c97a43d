package database

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config represents database configuration
type Config struct {
	Driver             string
	Path               string
	Synchronous        string
	BusyTimeout        time.Duration
	Host               string
	Port               int
	Username           string
	Password           string
	Database           string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	QueryTimeout       time.Duration
	SlowQueryThreshold time.Duration
	LogLevel           string
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config for a local SQLite ledger file
func DefaultConfig() *Config {
	return &Config{
		Driver:             DriverSQLite,
		Path:               "data/ledger.db",
		Synchronous:        "FULL",
		BusyTimeout:        5 * time.Second,
		Port:               5432,
		SSLMode:            "disable",
		MaxOpenConns:       25,
		MaxIdleConns:       25,
		ConnMaxLifetime:    30 * time.Minute,
		ConnMaxIdleTime:    15 * time.Minute,
		QueryTimeout:       5 * time.Second,
		SlowQueryThreshold: 200 * time.Millisecond,
		LogLevel:           "warn",
		RetryAttempts:      3,
		RetryDelay:         time.Second,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Path) == "" {
			return errors.New("database path is required for sqlite")
		}
		validSync := map[string]bool{"OFF": true, "NORMAL": true, "FULL": true, "EXTRA": true}
		if !validSync[strings.ToUpper(c.Synchronous)] {
			return fmt.Errorf("invalid sqlite synchronous mode: %s", c.Synchronous)
		}
	case DriverPostgres:
		if c.Host == "" {
			return errors.New("database host is required")
		}
		if c.Port <= 0 || c.Port > 65535 {
			return fmt.Errorf("invalid port number: %d", c.Port)
		}
		if c.Username == "" {
			return errors.New("database username is required")
		}
		if c.Database == "" {
			return errors.New("database name is required")
		}
		validSSLModes := map[string]bool{
			"disable":     true,
			"require":     true,
			"verify-ca":   true,
			"verify-full": true,
			"prefer":      true,
		}
		if !validSSLModes[c.SSLMode] {
			return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}

	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns < 0 {
		return fmt.Errorf("max idle connections must be non-negative, got: %d", c.MaxIdleConns)
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got: %d", c.RetryAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must be non-negative, got: %s", c.RetryDelay)
	}

	validLogLevels := map[string]bool{
		"silent": true,
		"debug":  true,
		"info":   true,
		"warn":   true,
		"error":  true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// DSN returns the connection string for the configured driver
func (c *Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// IsSQLite reports whether the ledger lives in a SQLite file
func (c *Config) IsSQLite() bool {
	return c.Driver == DriverSQLite
}

// WithPath returns a copy of the config pointing at another SQLite file
func (c *Config) WithPath(path string) *Config {
	newConfig := *c
	newConfig.Path = path
	return &newConfig
}
