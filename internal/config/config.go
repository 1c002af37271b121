package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level openbooks.yaml configuration.
type Config struct {
	Business    BusinessConfig    `yaml:"business"`
	Fiscal      FiscalConfig      `yaml:"fiscal"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Git         GitConfig         `yaml:"git"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email,omitempty"`
	GSTIN string `yaml:"gstin,omitempty"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// PreferencesConfig holds display preferences.
type PreferencesConfig struct {
	Currency   string `yaml:"currency"`
	DateFormat string `yaml:"date_format"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads an openbooks.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new books dir.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Preferences: PreferencesConfig{
			Currency:   "USD",
			DateFormat: "2006-01-02",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Openbooks",
			AuthorEmail: "books@openbooks.dev",
		},
	}
}
