package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// DefaultPrimaryEmoji is used when neither the settings nor an emoji file name one
const DefaultPrimaryEmoji = "taco"

// EnvPrefix is prepended to every environment override, e.g. KL_QUOTA_DAILYLIMIT
const EnvPrefix = "KL"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// legacyEnv maps config keys to the bare environment names the bot has always read
var legacyEnv = map[string][]string{
	"quota.dailyLimit":          {"DAILY_UNIT_LIMIT", "DAILY_TACO_LIMIT"},
	"query.defaultHistoryLines": {"DEFAULT_HISTORY_LINES"},
	"query.leaderboardLimit":    {"LEADERBOARD_LIMIT"},
	"database.path":             {"DATABASE_FILE"},
	"emoji.primary":             {"PRIMARY_EMOJI"},
	"logger.level":              {"LOG_LEVEL"},
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	ConfigPaths []string
	DotEnvPaths []string
}

// LoadConfig loads configuration for the environment named by KL_ENV
func LoadConfig() (*Config, error) {
	return Load(LoadOptions{ConfigPaths: ConfigPaths, DotEnvPaths: DotEnvPaths})
}

// Load reads .env, the environment's YAML file and environment overrides, then validates the result
// A missing YAML file is not an error; defaults and the environment still apply
func Load(opts LoadOptions) (*Config, error) {
	loadDotEnvFile(opts.DotEnvPaths)

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range opts.ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	var rejected []entity.DroppedEmoji
	if raw := v.GetStringMap("emoji.values"); len(raw) > 0 {
		values, dropped := EmojiValues(raw)
		v.Set("emoji.values", values)
		rejected = append(rejected, dropped...)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env

	// An emoji file may name its own primary
	if config.Emoji.Primary == "" && config.Emoji.File == "" {
		config.Emoji.Primary = DefaultPrimaryEmoji
	}

	if raw := os.Getenv("EMOJI_VALUES"); raw != "" {
		values, dropped, err := ParseEmojiValues(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid EMOJI_VALUES: %w", err)
		}
		config.Emoji.Values = values
		rejected = append(rejected, dropped...)
	}
	config.Emoji.Rejected = rejected

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the assembled configuration
func Validate(config *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(config); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			problems := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				problems = append(problems, fmt.Sprintf("%s (%s=%s)", fe.Namespace(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ParseEmojiValues decodes an inline emoji value mapping such as {taco: 1, fire: 2}
// Only a value that is not a mapping at all is an error; entries that are not integers are returned as dropped
func ParseEmojiValues(raw string) (map[string]int64, []entity.DroppedEmoji, error) {
	var decoded map[string]any
	if err := yaml.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, nil, err
	}
	values, dropped := EmojiValues(decoded)
	return values, dropped, nil
}

// loadDotEnvFile loads the first .env file found; existing variables are not overridden
func loadDotEnvFile(paths []string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return
		}
	}
}

// bindLegacyEnv lets the prefixed name and the legacy names all set the same key
func bindLegacyEnv(v *viper.Viper) error {
	for key, names := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		args := append([]string{key, prefixed}, names...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}

// setDefaults sets default values for every recognized key
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15*time.Second)
	v.SetDefault("server.writeTimeout", 15*time.Second)
	v.SetDefault("server.idleTimeout", 60*time.Second)
	v.SetDefault("server.readHeaderTimeout", 10*time.Second)
	v.SetDefault("server.shutdownTimeout", 10*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/ledger.db")
	v.SetDefault("database.synchronous", "FULL")
	v.SetDefault("database.busyTimeout", 5*time.Second)
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30*time.Minute)
	v.SetDefault("database.connMaxIdleTime", 15*time.Minute)
	v.SetDefault("database.queryTimeout", 5*time.Second)
	v.SetDefault("database.slowQueryThreshold", 200*time.Millisecond)
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", time.Second)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("quota.dailyLimit", 5)

	v.SetDefault("query.defaultHistoryLines", 10)
	v.SetDefault("query.leaderboardLimit", 10)

	v.SetDefault("emoji.file", "")
	v.SetDefault("emoji.primary", "")

	v.SetDefault("unit.name", "taco")
	v.SetDefault("unit.namePlural", "tacos")

	v.SetDefault("reaction.dedupBackend", "memory")
	v.SetDefault("reaction.dedupCapacity", 100000)
	v.SetDefault("reaction.dedupTTL", 0)
	v.SetDefault("reaction.badgerPath", "data/dedup")
	v.SetDefault("reaction.warmupWindow", 72*time.Hour)
	v.SetDefault("reaction.nameCacheSize", 4096)
}

// getEnvironment determines the environment to use based on the KL_ENV variable
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}
