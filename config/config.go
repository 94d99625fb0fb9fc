// Package config provides configuration loading and management for semvocab.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semvocab/export"
)

// Config represents the complete semvocab configuration
type Config struct {
	Output OutputConfig `yaml:"output"`
	Build  BuildConfig  `yaml:"build"`
	Watch  WatchConfig  `yaml:"watch"`
	Log    LogConfig    `yaml:"log"`
	NATS   NATSConfig   `yaml:"nats"`
}

// OutputConfig configures where and what the build writes
type OutputConfig struct {
	// Dir is the output directory (empty = next to each input file)
	Dir string `yaml:"dir"`
	// Formats lists the output formats (turtle, jsonld, html, context; empty = all)
	Formats []string `yaml:"formats"`
}

// BuildConfig configures vocabulary construction
type BuildConfig struct {
	// Date fixes the synthesized dc:date as YYYY-MM-DD (empty = today)
	Date string `yaml:"date"`
}

// WatchConfig configures the rebuild loop
type WatchConfig struct {
	// Debounce is how long to wait for more changes before rebuilding
	Debounce time.Duration `yaml:"debounce"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// NATSConfig configures the NATS connection used by serve
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:     "",
			Formats: []string{"turtle", "jsonld", "html", "context"},
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
		NATS: NATSConfig{
			URL: "nats://localhost:4222",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	for _, f := range c.Output.Formats {
		if _, err := export.ParseFormat(f); err != nil {
			return fmt.Errorf("output.formats: %w", err)
		}
	}
	if _, err := c.BuildDate(); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// OutputFormats returns the configured formats, defaulting to all of them.
func (c *Config) OutputFormats() ([]export.Format, error) {
	if len(c.Output.Formats) == 0 {
		return export.AllFormats, nil
	}
	out := make([]export.Format, 0, len(c.Output.Formats))
	for _, name := range c.Output.Formats {
		f, err := export.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// BuildDate parses build.date. The zero time means today.
func (c *Config) BuildDate() (time.Time, error) {
	if c.Build.Date == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(time.DateOnly, c.Build.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("build.date must be YYYY-MM-DD: %w", err)
	}
	return d, nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Output
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
	if len(other.Output.Formats) > 0 {
		c.Output.Formats = other.Output.Formats
	}

	// Build
	if other.Build.Date != "" {
		c.Build.Date = other.Build.Date
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
}
