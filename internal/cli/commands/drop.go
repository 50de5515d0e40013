package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
)

// NewDropCommand creates the drop command.
func NewDropCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop the employees and reviews tables",
		Long: `Drop the reviews and employees tables with DROP TABLE IF EXISTS.

Every row is lost. Pass --yes to confirm.`,
		Example: `  leaprecord drop --yes`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to drop tables without --yes")
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			records := cmdCtx.Records
			if err := records.DropTables(cmd.Context()); err != nil {
				return err
			}

			tables := []string{records.Reviews.Table().Name, records.Employees.Table().Name}
			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(map[string][]string{"dropped": tables})
			}
			for _, table := range tables {
				r.StatusLine(table, "success", "dropped")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm dropping every table")
	return cmd
}
