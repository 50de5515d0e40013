// Package config provides configuration management for the leaprecord CLI.
//
// This package layers CLI-specific fields on top of the shared database and
// server configuration types from internal/config, which are re-exported
// here via type aliases for convenience.
package config

import (
	sharedcfg "github.com/leapstack-labs/leaprecord/internal/config"
)

// DatabaseConfig is an alias for the shared database configuration.
type DatabaseConfig = sharedcfg.DatabaseConfig

// ServerConfig is an alias for the shared HTTP server configuration.
type ServerConfig = sharedcfg.ServerConfig

// Config holds all CLI configuration options.
type Config struct {
	Database     *DatabaseConfig `koanf:"database"`
	Server       *ServerConfig   `koanf:"server"`
	Verbose      bool            `koanf:"verbose"`
	OutputFormat string          `koanf:"output"`
	LogLevel     string          `koanf:"log_level"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel = "warn"
)

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	db := &DatabaseConfig{}
	db.ApplyDefaults()
	return &Config{
		Database:     db,
		Server:       sharedcfg.DefaultServerConfig(),
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
	}
}
