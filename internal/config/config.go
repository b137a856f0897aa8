// Package config loads lvshrink CLI settings from a YAML file and LVSHRINK_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidIterations  = errors.New("config: iterations must be positive")
	ErrInvalidMaxAttempts = errors.New("config: max attempts must not be negative")
	ErrInvalidFormat      = errors.New("config: unknown output format")
	ErrInvalidLogLevel    = errors.New("config: unknown log level")
	ErrInvalidLogFormat   = errors.New("config: unknown log format")
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Default configuration values.
const (
	DefaultIterations  = 100
	DefaultSeed        = 1
	DefaultMaxAttempts = 0
	DefaultFormat      = FormatText
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
)

// Config holds all lvshrink CLI configuration.
type Config struct {
	Check   CheckConfig   `mapstructure:"check"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CheckConfig controls the property run and the shrinker.
type CheckConfig struct {
	Seed        int64 `mapstructure:"seed"`
	Iterations  int   `mapstructure:"iterations"`
	MaxAttempts int   `mapstructure:"max_attempts"`
}

// OutputConfig controls the report.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	Color   bool   `mapstructure:"color"`
	Metrics bool   `mapstructure:"metrics"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance with defaults, environment binding and config
// file discovery set up. Callers may bind flags before calling Load.
func New(configPath string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".lvshrink")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("LVSHRINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file (a missing file is not an error when no path
// was given), unmarshals and validates.
func Load(v *viper.Viper) (*Config, error) {
	readErr := v.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadConfig is New followed by Load.
func LoadConfig(configPath string) (*Config, error) {
	return Load(New(configPath))
}

func setDefaults(v *viper.Viper) {
	// Check defaults.
	v.SetDefault("check.seed", DefaultSeed)
	v.SetDefault("check.iterations", DefaultIterations)
	v.SetDefault("check.max_attempts", DefaultMaxAttempts)

	// Output defaults.
	v.SetDefault("output.format", DefaultFormat)
	v.SetDefault("output.color", true)
	v.SetDefault("output.metrics", false)

	// Logging defaults.
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

func validate(cfg *Config) error {
	if cfg.Check.Iterations <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIterations, cfg.Check.Iterations)
	}

	if cfg.Check.MaxAttempts < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxAttempts, cfg.Check.MaxAttempts)
	}

	switch cfg.Output.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Output.Format)
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, cfg.Logging.Format)
	}

	return nil
}
