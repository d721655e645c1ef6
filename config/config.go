// Package config loads stylecheck settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Checks toggles the optional APA checks.
type Checks struct {
	Tables      bool `yaml:"tables"`
	Figures     bool `yaml:"figures"`
	RunningHead bool `yaml:"running_head"`
	PageNumbers bool `yaml:"page_numbers"`
}

// Config is the complete configuration.
type Config struct {
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	Style        string `yaml:"style"`
	OutputDir    string `yaml:"output_dir"`
	LockDir      string `yaml:"lock_dir"`
	ReportFormat string `yaml:"report_format"`
	Checks       Checks `yaml:"checks"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Style:        "APA",
		OutputDir:    "stylecheck-output",
		LockDir:      filepath.Join(os.TempDir(), "stylecheck-locks"),
		ReportFormat: "json",
	}
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format %q, must be text or json", c.LogFormat)
	}
	if c.Style == "" {
		return fmt.Errorf("style cannot be empty")
	}
	switch c.ReportFormat {
	case "json", "yaml", "markdown", "html":
	default:
		return fmt.Errorf("invalid report_format %q, must be one of: json, yaml, markdown, html", c.ReportFormat)
	}
	return nil
}
