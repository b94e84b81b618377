package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DatabaseURLEnvVar overrides database.url when set
const DatabaseURLEnvVar = "ELYON_DATABASE_URL"

// DatabaseConfig selects the store backend
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=postgres sqlite"`
	URL    string `yaml:"url" validate:"required"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// StaffingConfig tunes eligibility evaluation and slot editing
type StaffingConfig struct {
	// Timezone task times are converted to before weekday and time-of-day checks
	Timezone             string              `yaml:"timezone" validate:"required"`
	PreserveSlotIdentity bool                `yaml:"preserveSlotIdentity"`
	RoleSynonyms         map[string][]string `yaml:"roleSynonyms,omitempty" validate:"dive,keys,required,endkeys,min=1"`
}

// LoggingConfig configures log file output
type LoggingConfig struct {
	Dir string `yaml:"dir"`
}

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Staffing StaffingConfig `yaml:"staffing"`
	Logging  LoggingConfig  `yaml:"logging"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from elyon_config.yaml
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads and validates the configuration for an environment.
// For example, env="test" looks for "elyon_config.test.yaml" before "elyon_config.yaml".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if url := os.Getenv(DatabaseURLEnvVar); url != "" {
		cfg.Database.URL = url
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and checks the timezone name
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Staffing.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Staffing.Timezone, err)
	}

	return nil
}

// Location returns the configured staffing timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Staffing.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Staffing.Timezone, err)
	}
	return loc, nil
}

func defaults() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "postgres"},
		Server:   ServerConfig{Addr: ":8080"},
		Staffing: StaffingConfig{Timezone: "UTC"},
		Logging:  LoggingConfig{Dir: "logs"},
	}
}

// findConfigFile searches the current directory and then the home directory.
// An env-specific file wins over the plain one in each location.
func findConfigFile(env string) (string, error) {
	var names []string
	if env != "" {
		names = append(names, "elyon_config."+env+".yaml")
	}
	names = append(names, "elyon_config.yaml")

	// Check current directory
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	for _, name := range names {
		homeConfigPath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homeConfigPath); err == nil {
			return homeConfigPath, nil
		}
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
