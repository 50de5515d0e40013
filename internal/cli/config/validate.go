package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Database == nil {
		return fmt.Errorf("database configuration is required")
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	if !output.IsValidMode(c.OutputFormat) {
		return fmt.Errorf("invalid output format %q\nHint: Use one of auto, text, markdown, json", c.OutputFormat)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel converts a configured level name to a slog.Level.
// An empty name means the default level.
func ParseLogLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		s = DefaultLogLevel
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q\nHint: Use one of debug, info, warn, error", s)
	}
	return level, nil
}
