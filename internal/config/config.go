package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/claimmap/internal/logging"
)

// Config holds all runtime configuration for a claimmap run.
type Config struct {
	FilePath     string
	OutPath      string
	ConfigPath   string
	OutputFormat string // "jsonl" or "parquet"
	LogFormat    string // "text" or "json"
	FailFast     bool   // abort on the first rejected record
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	OutputFormat string `yaml:"output_format"`
	LogFormat    string `yaml:"log_format"`
	FailFast     *bool  `yaml:"fail_fast"`
}

var (
	outputFormats = map[string]bool{"jsonl": true, "parquet": true}
	logFormats    = map[string]bool{logging.FormatText: true, logging.FormatJSON: true}
)

// LoadFromFile reads a YAML config file. Its values only fill settings that
// were not already given on the command line.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if c.OutputFormat == "" {
		c.OutputFormat = yc.OutputFormat
	}
	if c.LogFormat == "" {
		c.LogFormat = yc.LogFormat
	}
	if !c.FailFast && yc.FailFast != nil {
		c.FailFast = *yc.FailFast
	}
	return c.validateFormats()
}

// applyDefaults fills unset formats.
func (c *Config) applyDefaults() {
	if c.OutputFormat == "" {
		c.OutputFormat = "jsonl"
	}
	if c.LogFormat == "" {
		c.LogFormat = logging.FormatText
	}
}

// validateFormats checks the output and log formats against the known names.
// Empty values are allowed and later defaulted.
func (c *Config) validateFormats() error {
	if c.OutputFormat != "" && !outputFormats[c.OutputFormat] {
		return fmt.Errorf("unknown output format %q", c.OutputFormat)
	}
	if c.LogFormat != "" && !logFormats[c.LogFormat] {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	c.applyDefaults()
	if err := c.validateFormats(); err != nil {
		return err
	}
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateWithOutput checks the input file and the output path.
func (c *Config) ValidateWithOutput() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OutPath == "" {
		return fmt.Errorf("--out is required")
	}
	return nil
}
