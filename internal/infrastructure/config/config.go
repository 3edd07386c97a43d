package config

import (
	"time"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/dedup"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/logger"
)

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment" validate:"required,oneof=development production test"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Quota       QuotaConfig    `mapstructure:"quota"`
	Query       QueryConfig    `mapstructure:"query"`
	Emoji       EmojiConfig    `mapstructure:"emoji"`
	Unit        UnitConfig     `mapstructure:"unit"`
	Reaction    ReactionConfig `mapstructure:"reaction"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout" validate:"gt=0"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout" validate:"gt=0"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout" validate:"gt=0"`
}

// DatabaseConfig contains ledger storage settings
type DatabaseConfig struct {
	Driver             string        `mapstructure:"driver" validate:"oneof=sqlite postgres"`
	Path               string        `mapstructure:"path" validate:"required_if=Driver sqlite"`
	Synchronous        string        `mapstructure:"synchronous" validate:"omitempty,oneof=OFF NORMAL FULL EXTRA off normal full extra"`
	BusyTimeout        time.Duration `mapstructure:"busyTimeout"`
	Host               string        `mapstructure:"host" validate:"required_if=Driver postgres"`
	Port               int           `mapstructure:"port"`
	Username           string        `mapstructure:"username" validate:"required_if=Driver postgres"`
	Password           string        `mapstructure:"password"`
	Database           string        `mapstructure:"database" validate:"required_if=Driver postgres"`
	SSLMode            string        `mapstructure:"sslMode"`
	MaxOpenConns       int           `mapstructure:"maxOpenConns"`
	MaxIdleConns       int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime    time.Duration `mapstructure:"connMaxLifetime"`
	ConnMaxIdleTime    time.Duration `mapstructure:"connMaxIdleTime"`
	QueryTimeout       time.Duration `mapstructure:"queryTimeout" validate:"gt=0"`
	SlowQueryThreshold time.Duration `mapstructure:"slowQueryThreshold"`
	LogLevel           string        `mapstructure:"logLevel" validate:"oneof=silent error warn info"`
	RetryAttempts      int           `mapstructure:"retryAttempts" validate:"min=1"`
	RetryDelay         time.Duration `mapstructure:"retryDelay"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format     string `mapstructure:"format" validate:"omitempty,oneof=json console"`
	Output     string `mapstructure:"output"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// QuotaConfig contains the rolling window limit
type QuotaConfig struct {
	DailyLimit int64 `mapstructure:"dailyLimit" validate:"gt=0"`
}

// QueryConfig contains read-side defaults
type QueryConfig struct {
	DefaultHistoryLines int `mapstructure:"defaultHistoryLines" validate:"min=1,max=50"`
	LeaderboardLimit    int `mapstructure:"leaderboardLimit" validate:"min=1,max=100"`
}

// EmojiConfig points at the emoji value table
// Inline values are merged over the ones read from File
type EmojiConfig struct {
	File       string           `mapstructure:"file"`
	Primary    string           `mapstructure:"primary"`
	Alternates []string         `mapstructure:"alternates"`
	Values     map[string]int64 `mapstructure:"values"`

	// Rejected holds inline entries whose values were not integers
	Rejected []entity.DroppedEmoji `mapstructure:"-"`
}

// UnitConfig names the granted unit
type UnitConfig struct {
	Name       string `mapstructure:"name" validate:"required"`
	NamePlural string `mapstructure:"namePlural" validate:"required"`
}

// ReactionConfig contains reaction dedup settings
type ReactionConfig struct {
	DedupBackend  string        `mapstructure:"dedupBackend" validate:"oneof=memory badger"`
	DedupCapacity int           `mapstructure:"dedupCapacity" validate:"min=0"`
	DedupTTL      time.Duration `mapstructure:"dedupTTL"`
	BadgerPath    string        `mapstructure:"badgerPath" validate:"required_if=DedupBackend badger"`
	WarmupWindow  time.Duration `mapstructure:"warmupWindow" validate:"min=0"`
	NameCacheSize int           `mapstructure:"nameCacheSize" validate:"min=0"`
}

// IsProduction reports whether the production environment is configured
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// DatabaseManagerConfig converts the loaded settings into the database adapter's config
func (c *Config) DatabaseManagerConfig() *database.Config {
	return &database.Config{
		Driver:             c.Database.Driver,
		Path:               c.Database.Path,
		Synchronous:        c.Database.Synchronous,
		BusyTimeout:        c.Database.BusyTimeout,
		Host:               c.Database.Host,
		Port:               c.Database.Port,
		Username:           c.Database.Username,
		Password:           c.Database.Password,
		Database:           c.Database.Database,
		SSLMode:            c.Database.SSLMode,
		MaxOpenConns:       c.Database.MaxOpenConns,
		MaxIdleConns:       c.Database.MaxIdleConns,
		ConnMaxLifetime:    c.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    c.Database.ConnMaxIdleTime,
		QueryTimeout:       c.Database.QueryTimeout,
		SlowQueryThreshold: c.Database.SlowQueryThreshold,
		LogLevel:           c.Database.LogLevel,
		RetryAttempts:      c.Database.RetryAttempts,
		RetryDelay:         c.Database.RetryDelay,
	}
}

// DedupConfig converts the reaction settings into the dedup adapter's config
func (c *Config) DedupConfig() dedup.Config {
	return dedup.Config{
		Backend:  c.Reaction.DedupBackend,
		Capacity: c.Reaction.DedupCapacity,
		Path:     c.Reaction.BadgerPath,
		TTL:      c.Reaction.DedupTTL,
	}
}

// LoggerOptions converts the logger settings into the zap adapter's options
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Production: c.IsProduction(),
		Level:      c.Logger.Level,
		Format:     c.Logger.Format,
		Output:     c.Logger.Output,
		CallerInfo: c.Logger.CallerInfo,
	}
}
