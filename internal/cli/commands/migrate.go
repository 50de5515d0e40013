package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
)

// NewMigrateCommand creates the migrate command and its status subcommand.
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long: `Apply the embedded goose migrations for the configured driver.

Migrations are idempotent: running them twice leaves the schema unchanged.`,
		Example: `  # Apply migrations
  leaprecord migrate

  # Show the current schema version
  leaprecord migrate status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, true)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, false)
		},
	})

	return cmd
}

func runMigrate(cmd *cobra.Command, apply bool) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	db := cmdCtx.Records.DB
	if apply {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	}

	version, err := db.MigrationVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(map[string]any{"driver": db.Dialect().Name, "version": version})
	}
	r.KeyValue("Driver", db.Dialect().Name)
	r.KeyValue("Migration Version", fmt.Sprintf("%d", version))
	return nil
}
