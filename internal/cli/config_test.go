package cli

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaprecord/internal/cli/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		verbose   bool
		wantDebug bool
		wantInfo  bool
		wantErr   bool
	}{
		{name: "default warn", logLevel: "warn"},
		{name: "info", logLevel: "info", wantInfo: true},
		{name: "debug", logLevel: "debug", wantDebug: true, wantInfo: true},
		{name: "verbose forces debug", logLevel: "error", verbose: true, wantDebug: true, wantInfo: true},
		{name: "invalid level", logLevel: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.LogLevel = tt.logLevel
			cfg.Verbose = tt.verbose

			buf := new(bytes.Buffer)
			logger, err := NewLogger(buf, cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			logger.Debug("debug message")
			logger.Info("info message")
			logger.Warn("warn message")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug message")))
			assert.Equal(t, tt.wantInfo, bytes.Contains(buf.Bytes(), []byte("info message")))
			assert.Contains(t, out, "warn message")
			assert.Contains(t, out, "app=leaprecord")
		})
	}
}

func TestNewLoggerEnabled(t *testing.T) {
	cfg := config.DefaultConfig()
	logger, err := NewLogger(new(bytes.Buffer), cfg)
	require.NoError(t, err)

	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelWarn))
}
