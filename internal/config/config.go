// Package config provides the tool configuration, loaded from an optional
// YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jot
type Config struct {
	Format FormatConfig `yaml:"format"`
	Server ServerConfig `yaml:"server"`
}

// FormatConfig controls default rendering options
type FormatConfig struct {
	// Indent is the default number of spaces per level, 0 to minify.
	Indent int `yaml:"indent"`
	// SortKeys renders object keys sorted instead of in document order.
	SortKeys bool `yaml:"sort_keys"`
}

// ServerConfig controls the HTTP service
type ServerConfig struct {
	ListenAddr          string `yaml:"listen_addr"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format: FormatConfig{
			Indent:   2,
			SortKeys: false,
		},
		Server: ServerConfig{
			ListenAddr:          ":8080",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 15,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration values for consistency
func (c *Config) Validate() error {
	if c.Format.Indent < 0 || c.Format.Indent > 8 {
		return fmt.Errorf("format.indent must be between 0 and 8, got %d", c.Format.Indent)
	}
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr must not be empty")
	}
	if c.Server.ReadTimeoutSeconds <= 0 {
		return fmt.Errorf("server.read_timeout_seconds must be positive, got %d", c.Server.ReadTimeoutSeconds)
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		return fmt.Errorf("server.write_timeout_seconds must be positive, got %d", c.Server.WriteTimeoutSeconds)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jot.yml", ".jot.yaml", "jot.yml", "jot.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}
