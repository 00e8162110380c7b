// Package config provides configuration loading for the convent application.
// Settings come from defaults, then an optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/MyCarrier-DevOps/convent-commits/internal/domain"
)

// Environment variable names.
const (
	// EnvPrefix prefixes every convent setting. Double underscore separates nesting
	// levels: CONVENT_GIT__AUTHOR_NAME -> git.author_name.
	EnvPrefix = "CONVENT_"

	// EnvConfigFile is the path to an optional YAML configuration file.
	EnvConfigFile = "CONVENT_CONFIG"

	// EnvLogLevel is the log level (debug, info, error).
	EnvLogLevel = "LOG_LEVEL"

	// EnvLogAppName is the application name for log context.
	EnvLogAppName = "LOG_APP_NAME"
)

// Default values.
const (
	DefaultLogLevel    = "info"
	DefaultLogAppName  = "convent"
	DefaultConfigFile  = "convent.yaml"
	DefaultCount       = 1
	DefaultFormat      = "text"
	DefaultSeparator   = "\n---\n"
	DefaultAuthorName  = "Convent Fixtures"
	DefaultAuthorEmail = "fixtures@convent.invalid"
)

// Configuration errors.
var (
	// ErrConfigFileInvalid indicates the configuration file could not be read or parsed.
	ErrConfigFileInvalid = errors.New("configuration file could not be loaded")

	// ErrInvalidConfig indicates a configuration value failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

var validate = validator.New()

// Config holds all application configuration.
type Config struct {
	// Seed fixes the random sequence. Zero draws a random seed.
	Seed uint64 `koanf:"seed"`

	// Count is the number of messages to generate.
	Count int `koanf:"count" validate:"gte=0,lte=10000"`

	// Format is the output format (text, json, yaml).
	Format string `koanf:"format" validate:"oneof=text json yaml"`

	// Separator separates messages in text output.
	Separator string `koanf:"separator"`

	// Types are the commit type names picked from when no type is requested.
	Types []string `koanf:"types" validate:"min=1,dive,required"`

	// Probabilities drive random option selection.
	Probabilities domain.OptionProbabilities `koanf:"probabilities"`

	// Git holds settings for fixture repositories.
	Git GitConfig `koanf:"git"`

	// LogLevel is the logging level (debug, info, error).
	LogLevel string `koanf:"-"`

	// LogAppName is the application name for log context.
	LogAppName string `koanf:"-"`
}

// GitConfig holds the author of fixture commits.
type GitConfig struct {
	AuthorName  string `koanf:"author_name" validate:"required"`
	AuthorEmail string `koanf:"author_email" validate:"required,email"`
}

// Defaults returns a Config with default values.
func Defaults() *Config {
	return &Config{
		Count:     DefaultCount,
		Format:    DefaultFormat,
		Separator: DefaultSeparator,
		Types:     []string{"feat", "fix", "chore"},
		Probabilities: domain.OptionProbabilities{
			Scope:    0.5,
			Body:     0.3,
			Issue:    0.3,
			Breaking: 0.1,
		},
		Git: GitConfig{
			AuthorName:  DefaultAuthorName,
			AuthorEmail: DefaultAuthorEmail,
		},
		LogLevel:   DefaultLogLevel,
		LogAppName: DefaultLogAppName,
	}
}

// Load loads configuration using the file named by CONVENT_CONFIG, if set.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv(EnvConfigFile))
}

// LoadFrom reads configuration from defaults, the YAML file at configPath and
// environment variables, later sources overriding earlier ones.
//
// An explicit configPath must exist. With an empty configPath, convent.yaml in
// the working directory is used when present.
func LoadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")
	cfg := Defaults()
	// Unmarshal writes list elements by index over existing ones, so the
	// default types are applied afterwards rather than preloaded.
	defaultTypes := cfg.Types
	cfg.Types = nil

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfigFileInvalid, configPath, err)
		}
	} else if _, err := os.Stat(DefaultConfigFile); err == nil {
		if err := k.Load(file.Provider(DefaultConfigFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfigFileInvalid, DefaultConfigFile, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFileInvalid, err)
	}

	cfg.Types = splitTypes(cfg.Types)
	if len(cfg.Types) == 0 {
		cfg.Types = defaultTypes
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogAppName); v != "" {
		cfg.LogAppName = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// CommitTypes converts the configured type names into commit types.
func (c *Config) CommitTypes() ([]domain.CommitType, error) {
	types := make([]domain.CommitType, 0, len(c.Types))
	for _, name := range c.Types {
		ct, err := domain.ParseCommitType(name)
		if err != nil {
			return nil, fmt.Errorf("%w: types: %w", ErrInvalidConfig, err)
		}
		types = append(types, ct)
	}
	return types, nil
}

// splitTypes accepts both list entries and comma-separated values, as
// environment variables can only carry the latter.
func splitTypes(entries []string) []string {
	var types []string
	for _, entry := range entries {
		for _, name := range strings.Split(entry, ",") {
			if name = strings.TrimSpace(name); name != "" {
				types = append(types, name)
			}
		}
	}
	return types
}
