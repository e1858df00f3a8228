// Package config provides configuration loading and defaults for sigread.
//
// Configuration is read from a TOML file, by default config.toml in the
// data directory. Every field has a default, so a missing file is not an
// error.
package config

//go:generate go run ../../cmd/genconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// CurrentVersion is the config schema version written by this build.
const CurrentVersion = 1

// MaxBufferSize bounds read.buffer_size.
const MaxBufferSize = 64 * 1024

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level application configuration.
type Config struct {
	// Version is the config schema version.
	Version int `toml:"version"`
	// Read holds the interruptible read settings.
	Read ReadConfig `toml:"read"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
}

// ReadConfig holds settings for the single read and its interrupt handler.
type ReadConfig struct {
	// BufferSize is the capacity in bytes of the read buffer.
	BufferSize int `toml:"buffer_size"`
	// Signal names the signal that interrupts the read (e.g. "SIGINT").
	Signal string `toml:"signal"`
	// Message is the line the handler prints each time the signal arrives.
	Message string `toml:"message"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `toml:"level"`
	// File is the log file path, relative to the data directory unless
	// absolute. Empty disables logging.
	File string `toml:"file"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// ///////////////////////////////////////////////
// Default Configuration
// ///////////////////////////////////////////////

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Read: ReadConfig{
			BufferSize: 256,
			Signal:     "SIGINT",
			Message:    "interrupt handled",
		},
		Log: LogConfig{
			Level:     "info",
			File:      "",
			MaxSizeMB: 10,
		},
	}
}

// ExampleConfig returns a Config suitable for generating config.default.toml.
func ExampleConfig() *Config {
	return DefaultConfig()
}

// ///////////////////////////////////////////////
// PeekVersion
// ///////////////////////////////////////////////

// PeekVersion reads just the version field from raw TOML bytes.
// Returns 1 if the version field is missing or zero.
func PeekVersion(data []byte) int {
	var v struct {
		Version int `toml:"version"`
	}
	if err := toml.Unmarshal(data, &v); err != nil {
		return 1
	}
	if v.Version == 0 {
		return 1
	}
	return v.Version
}

// ///////////////////////////////////////////////
// Loading
// ///////////////////////////////////////////////

// Load reads and parses the configuration file at path.
// If the file doesn't exist, returns DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if v := PeekVersion(data); v > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", v, CurrentVersion)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Version = CurrentVersion

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// validLogLevels is the set of accepted log level strings.
var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks that all configuration values are within acceptable ranges.
// The signal name is only checked for presence here; whether it names a
// catchable signal is decided when the handler is registered.
func (c *Config) Validate() error {
	if c.Read.BufferSize <= 0 || c.Read.BufferSize > MaxBufferSize {
		return fmt.Errorf("read.buffer_size must be in 1..%d, got %d", MaxBufferSize, c.Read.BufferSize)
	}

	if strings.TrimSpace(c.Read.Signal) == "" {
		return fmt.Errorf("read.signal must not be empty")
	}

	if c.Read.Message == "" {
		return fmt.Errorf("read.message must not be empty")
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be trace, debug, info, warn, or error", c.Log.Level)
	}

	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be > 0, got %d", c.Log.MaxSizeMB)
	}

	return nil
}
