package cli

import (
	"io"
	"log/slog"

	"github.com/leapstack-labs/leaprecord/internal/cli/config"
)

// NewLogger builds the CLI logger from the loaded configuration.
// Verbose forces debug level; otherwise log_level applies.
func NewLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", "leaprecord")), nil
}
