// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "LOOTFORGE_CONFIG"

// Output formats accepted by output.format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// Config is the lootforge configuration.
type Config struct {
	// PlayerID is the numeric account id that keys save encryption.
	// Commands taking --player-id fall back to it.
	PlayerID string `yaml:"player_id"`

	// PartsDatabase is a parts lookup table: a JSON file, a TSV file,
	// or a directory of per-category TSV files. Empty disables part
	// names.
	PartsDatabase string `yaml:"parts_database"`

	// Batch configures bulk serial decoding.
	Batch BatchConfig `yaml:"batch"`

	// Output configures command output.
	Output OutputConfig `yaml:"output"`

	// Save configures writing save files.
	Save SaveConfig `yaml:"save"`
}

// BatchConfig configures bulk serial decoding.
type BatchConfig struct {
	// Workers is the number of concurrent decoders.
	// Default: 0 (one per CPU)
	Workers int `yaml:"workers"`
}

// OutputConfig configures command output.
type OutputConfig struct {
	// Format is the default output format: text, json or cbor.
	// Default: text
	Format string `yaml:"format"`
}

// SaveConfig configures writing save files.
type SaveConfig struct {
	// CompressionLevel is the zlib level for re-encrypted saves, -1
	// (default) or 0-9.
	// Default: -1
	CompressionLevel int `yaml:"compression_level"`

	// Backup keeps a copy of a save as <file>.bak before it is
	// rewritten in place.
	// Default: true
	Backup bool `yaml:"backup"`
}

// Default returns the default configuration. Values from a config
// file are merged over it.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatText,
		},
		Save: SaveConfig{
			CompressionLevel: -1,
			Backup:           true,
		},
	}
}

// Load loads configuration from the file named by LOOTFORGE_CONFIG.
// It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your lootforge.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

// Resolve loads path when it is set, otherwise the file named by
// LOOTFORGE_CONFIG, otherwise returns [Default].
func Resolve(path string) (*Config, error) {
	switch {
	case path != "":
		return LoadFile(path)
	case os.Getenv(EnvironmentVariable) != "":
		return Load()
	default:
		return Default(), nil
	}
}

// loadFile merges a single configuration file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.PartsDatabase = expandVars(c.PartsDatabase, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Provided vars first, then the environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.PlayerID != "" && strings.Trim(c.PlayerID, "0123456789") != "" {
		errs = append(errs, fmt.Errorf("player_id must be numeric, got %q", c.PlayerID))
	}

	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers))
	}

	formats := []string{FormatText, FormatJSON, FormatCBOR}
	if !slices.Contains(formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %v", formats))
	}

	if c.Save.CompressionLevel < -1 || c.Save.CompressionLevel > 9 {
		errs = append(errs, fmt.Errorf("save.compression_level must be -1 or 0-9, got %d", c.Save.CompressionLevel))
	}

	if c.PartsDatabase != "" {
		if _, err := os.Stat(c.PartsDatabase); err != nil {
			errs = append(errs, fmt.Errorf("parts_database: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
