// Package config resolves runtime configuration from defaults, YAML
// config files, an optional dotenv file, and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names for WhatsApp Cloud API credentials.
const (
	EnvToken         = "WHATSAPP_TOKEN"
	EnvPhoneNumberID = "WHATSAPP_PHONE_NUMBER_ID"
	EnvAPIVersion    = "WHATSAPP_API_VERSION"
)

// DefaultAPIVersion is used when WHATSAPP_API_VERSION is unset everywhere.
const DefaultAPIVersion = "v21.0"

// ErrMissingCredentials is returned when a required credential is absent
// for a non-dry run.
var ErrMissingCredentials = errors.New("missing credentials")

// Config is the resolved runtime configuration.
type Config struct {
	// Credentials come from the environment only (optionally seeded
	// from a dotenv file), never from YAML config.
	Token         string `yaml:"-"`
	PhoneNumberID string `yaml:"-"`

	APIVersion     string  `yaml:"api_version"`
	LogLevel       string  `yaml:"log_level"`
	DelaySeconds   float64 `yaml:"delay_seconds"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

func defaults() *Config {
	return &Config{
		APIVersion:     DefaultAPIVersion,
		LogLevel:       "info",
		DelaySeconds:   1.0,
		TimeoutSeconds: 30,
	}
}

// Load resolves config with precedence defaults < user file < project
// file < dotenv-seeded environment < pre-existing environment.
//
// dotenvPath names a key=value file loaded into the process environment
// before env lookup; keys already set in the environment are never
// overwritten, and a missing file is not an error.
func Load(dotenvPath string) (*Config, error) {
	cfg := defaults()

	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".reaper", "config.yaml")
		if err := mergeFile(cfg, userPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	projectPath := filepath.Join(".reaper", "config.yaml")
	if err := mergeFile(cfg, projectPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if dotenvPath != "" {
		if _, err := os.Stat(dotenvPath); err == nil {
			// godotenv.Load never overwrites variables that are
			// already set in the environment.
			if err := godotenv.Load(dotenvPath); err != nil {
				return nil, fmt.Errorf("loading dotenv %s: %w", dotenvPath, err)
			}
		}
	}

	cfg.Token = strings.TrimSpace(os.Getenv(EnvToken))
	cfg.PhoneNumberID = strings.TrimSpace(os.Getenv(EnvPhoneNumberID))
	if v := strings.TrimSpace(os.Getenv(EnvAPIVersion)); v != "" {
		cfg.APIVersion = v
	}

	return cfg, nil
}

// Validate checks that required credentials are present. Dry runs never
// contact the API, so they skip the check.
func (c *Config) Validate(dryRun bool) error {
	if dryRun {
		return nil
	}
	if c.Token == "" {
		return fmt.Errorf("%w: %s is not set", ErrMissingCredentials, EnvToken)
	}
	if c.PhoneNumberID == "" {
		return fmt.Errorf("%w: %s is not set", ErrMissingCredentials, EnvPhoneNumberID)
	}
	return nil
}

func mergeFile(dst *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
