// Package config loads widgetcond settings from YAML with environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all widgetcond configuration.
type Config struct {
	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Static analysis
	Lint LintConfig `yaml:"lint"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// LintConfig configures the lint command.
type LintConfig struct {
	// Strict makes warnings fail the run, e.g. selections missing from a widget's options.
	Strict bool `yaml:"strict"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Lint: LintConfig{
			Strict: false,
		},
	}
}

// Load reads the YAML file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("WIDGETCOND_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("WIDGETCOND_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("WIDGETCOND_STRICT_LINT"); v != "" {
		if strict, err := strconv.ParseBool(v); err == nil {
			c.Lint.Strict = strict
		}
	}
}

// Validate rejects unknown logging settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level '%s'", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format '%s'", c.Logging.Format)
	}
	return nil
}
