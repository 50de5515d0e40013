package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/cli/config"
	"github.com/leapstack-labs/leaprecord/internal/cli/output"
	"github.com/leapstack-labs/leaprecord/internal/orm"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Records  *orm.Records
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with an open database and renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutDB(cmd)

	records, err := openRecords(cmd.Context(), cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Records = records

	cleanup := func() {
		_ = records.Close()
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutDB creates a CommandContext without a database.
// Useful for commands that don't need database access.
func NewCommandContextWithoutDB(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// RequireTables fails with a hint when the entity tables have not been created.
func (c *CommandContext) RequireTables(ctx context.Context) error {
	missing, err := c.Records.MissingTables(ctx)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing tables: %s\nHint: Run 'leaprecord init' first", strings.Join(missing, ", "))
	}
	return nil
}

// Helper functions shared across commands

// getConfig returns the current configuration, or defaults when the command
// runs without the root command having loaded one.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

func openRecords(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*orm.Records, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Ensure the SQLite file's directory exists
	if path := cfg.Database.Path; path != "" && path != orm.MemoryPath {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := orm.Open(ctx, cfg.Database.ORMConfig(logger))
	if err != nil {
		return nil, err
	}
	return orm.NewRecords(db), nil
}

// parseID parses a positive primary key argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", arg)
	}
	return id, nil
}

func formatID(id int64) string {
	if id == 0 {
		return "-"
	}
	return strconv.FormatInt(id, 10)
}
