// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Archive struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"archive" yaml:"archive"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Seed struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"seed" yaml:"seed"`

	Import struct {
		Target string `mapstructure:"target" yaml:"target"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"import" yaml:"import"`

	Categorization struct {
		Regex bool `mapstructure:"regex" yaml:"regex"`
	} `mapstructure:"categorization" yaml:"categorization"`
}

// DelimiterRune returns the configured CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
// When configFile is set it is read instead of searching the default
// locations, and failing to read it is an error.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.budget-ledger")
		v.AddConfigPath(".budget-ledger")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("BUDGET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("archive.path", "budget.zip")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("seed.file", "")

	v.SetDefault("import.target", "imports")
	v.SetDefault("import.format", "auto")

	v.SetDefault("categorization.regex", false)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.TrimSpace(config.Archive.Path) == "" {
		return fmt.Errorf("archive.path must not be empty")
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}
	switch config.CSV.Delimiter {
	case "\"", "\n", "\r":
		return fmt.Errorf("CSV delimiter cannot be %q", config.CSV.Delimiter)
	}

	switch strings.ToLower(config.Import.Target) {
	case "imports", "ledger":
	default:
		return fmt.Errorf("import.target must be 'imports' or 'ledger', got: %s", config.Import.Target)
	}

	switch strings.ToLower(config.Import.Format) {
	case "auto", "csv", "ofx", "qfx":
	default:
		return fmt.Errorf("import.format must be 'auto', 'csv' or 'ofx', got: %s", config.Import.Format)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
