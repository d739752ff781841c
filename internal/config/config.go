package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when the loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// ShellConfig holds shell integration configuration.
type ShellConfig struct {
	CacheTTL    string `mapstructure:"cache_ttl"`
	TodayIcon   string `mapstructure:"today_icon"`
	NoTodayIcon string `mapstructure:"no_today_icon"`
	StreakIcon  string `mapstructure:"streak_icon"`
	ShowMood    bool   `mapstructure:"show_mood"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=pretty json"`
}

// GeneratorConfig configures the draft and tag generator.
type GeneratorConfig struct {
	BaseURL   string `mapstructure:"base_url" validate:"omitempty,url"`
	Model     string `mapstructure:"model"`
	APIKeyEnv string `mapstructure:"api_key_env" validate:"required"`
	Style     string `mapstructure:"style" validate:"oneof=realistic delicate philosophical lyrical humorous"`
	Prompt    string `mapstructure:"prompt"`
}

// S3Config configures the optional off-site copy of backups.
type S3Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Bucket    string `mapstructure:"bucket" validate:"required_if=Enabled true"`
	Prefix    string `mapstructure:"prefix"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint" validate:"omitempty,url"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// BackupConfig configures backup files.
type BackupConfig struct {
	Dir string   `mapstructure:"dir"`
	S3  S3Config `mapstructure:"s3"`
}

// Config holds the application configuration.
type Config struct {
	Storage     string          `mapstructure:"storage" validate:"oneof=markdown sqlite"`
	DataDir     string          `mapstructure:"data_dir" validate:"required"`
	Editor      string          `mapstructure:"editor"`
	Timezone    string          `mapstructure:"timezone" validate:"omitempty,timezone"`
	DefaultMood int             `mapstructure:"default_mood" validate:"min=1,max=5"`
	Theme       string          `mapstructure:"theme" validate:"oneof=dark light"`
	Log         LogConfig       `mapstructure:"log"`
	Generator   GeneratorConfig `mapstructure:"generator"`
	Backup      BackupConfig    `mapstructure:"backup"`
	Shell       ShellConfig     `mapstructure:"shell"`
}

// DefaultDataDir returns the default data directory (~/.moodiary/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".moodiary")
	}
	return filepath.Join(home, ".moodiary")
}

// Location returns the configured time zone, or time.Local.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// BackupDir returns the backup directory, defaulting to <data_dir>/backups.
func (c *Config) BackupDir() string {
	if c.Backup.Dir != "" {
		return c.Backup.Dir
	}
	return filepath.Join(c.DataDir, "backups")
}

// APIKey reads the generator API key from the configured environment variable.
func (c *Config) APIKey() string {
	return os.Getenv(c.Generator.APIKeyEnv)
}

// Load reads configuration from file, environment variables, and defaults.
// It does not validate; callers apply their overrides and then call Validate.
// A .env file in the default data directory is loaded first; variables
// already set in the environment win.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(DefaultDataDir(), ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()

	// Defaults
	v.SetDefault("storage", "markdown")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("editor", "")
	v.SetDefault("timezone", "")
	v.SetDefault("default_mood", 3)
	v.SetDefault("theme", "dark")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "pretty")
	v.SetDefault("generator.base_url", "https://api.openai.com/v1")
	v.SetDefault("generator.model", "gpt-4o-mini")
	v.SetDefault("generator.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("generator.style", "realistic")
	v.SetDefault("generator.prompt", "")
	v.SetDefault("backup.dir", "")
	v.SetDefault("backup.s3.enabled", false)
	v.SetDefault("backup.s3.bucket", "")
	v.SetDefault("backup.s3.prefix", "moodiary")
	v.SetDefault("backup.s3.region", "us-east-1")
	v.SetDefault("backup.s3.endpoint", "")
	v.SetDefault("backup.s3.access_key", "")
	v.SetDefault("backup.s3.secret_key", "")
	v.SetDefault("shell.cache_ttl", "5m")
	v.SetDefault("shell.today_icon", "✓")
	v.SetDefault("shell.no_today_icon", "✗")
	v.SetDefault("shell.streak_icon", "🔥")
	v.SetDefault("shell.show_mood", true)

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "moodiary"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: MOODIARY_STORAGE, MOODIARY_BACKUP_S3_BUCKET, etc.
	v.SetEnvPrefix("MOODIARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks field constraints and reports every failing key.
func Validate(cfg *Config) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("mapstructure"); name != "" {
			return name
		}
		return fld.Name
	})

	err := v.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s %s", configKey(fe.Namespace()), friendlyMessage(fe)))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// configKey turns "Config.backup.s3.bucket" into "backup.s3.bucket".
func configKey(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "timezone":
		return "must be an IANA time zone name"
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}
