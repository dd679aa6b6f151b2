// Package config loads gsbook settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendGoogle = "google"
	BackendXLSX   = "xlsx"
)

// DefaultScope is the Sheets read/write scope.
const DefaultScope = "https://www.googleapis.com/auth/spreadsheets"

// ErrInvalid indicates a configuration that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all gsbook settings.
type Config struct {
	// Backend selects the spreadsheet service: google or xlsx.
	Backend string `yaml:"backend"`

	// Google service-account settings.
	Google GoogleConfig `yaml:"google"`

	// RoundNumbers rounds numeric cells to integers on write.
	RoundNumbers bool `yaml:"round_numbers"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// GoogleConfig configures the Sheets API client.
type GoogleConfig struct {
	CredentialsFile string   `yaml:"credentials_file"`
	Scopes          []string `yaml:"scopes"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendGoogle,
		Google: GoogleConfig{
			CredentialsFile: "gsbook-oauth.json",
			Scopes:          []string{DefaultScope},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, then applies .env and environment
// overrides. A missing config file or .env file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// .env never overrides variables already set in the process
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("GSBOOK_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("GSBOOK_CREDENTIALS"); v != "" {
		c.Google.CredentialsFile = v
	}
	if v := os.Getenv("GSBOOK_SCOPES"); v != "" {
		c.Google.Scopes = splitList(v)
	}
	if v := os.Getenv("GSBOOK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("GSBOOK_ROUND_NUMBERS"); v != "" {
		round, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: GSBOOK_ROUND_NUMBERS=%q", ErrInvalid, v)
		}
		c.RoundNumbers = round
	}
	return nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendGoogle:
		if c.Google.CredentialsFile == "" {
			return fmt.Errorf("%w: google backend requires a credentials file", ErrInvalid)
		}
		if len(c.Google.Scopes) == 0 {
			return fmt.Errorf("%w: google backend requires at least one scope", ErrInvalid)
		}
	case BackendXLSX:
	default:
		return fmt.Errorf("%w: unknown backend %q (must be %s or %s)", ErrInvalid, c.Backend, BackendGoogle, BackendXLSX)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
