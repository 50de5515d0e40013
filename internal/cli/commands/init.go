package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
	intconfig "github.com/leapstack-labs/leaprecord/internal/config"
)

const configTemplate = `# leaprecord configuration
database:
  driver: sqlite
  path: leaprecord.db
  foreign_keys: false
  busy_timeout: 5s

  # PostgreSQL:
  # driver: postgres
  # host: localhost
  # port: 5432
  # name: leaprecord
  # user: ${PGUSER}
  # password: ${PGPASSWORD}

server:
  addr: 127.0.0.1:8080

output: auto
log_level: warn
`

// InitOutput is the JSON output for the init command.
type InitOutput struct {
	Database         string   `json:"database"`
	Tables           []string `json:"tables"`
	Migrated         bool     `json:"migrated"`
	MigrationVersion int64    `json:"migration_version,omitempty"`
	ConfigWritten    string   `json:"config_written,omitempty"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var migrate, writeConfig, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the employees and reviews tables",
		Long: `Create the employees and reviews tables in the configured database.

By default the tables are created directly with CREATE TABLE IF NOT EXISTS.
Use --migrate to create them through the embedded goose migrations instead,
which also records a schema version.

Use --write-config to also write a starter leaprecord.yaml.`,
		Example: `  # Create tables in ./leaprecord.db
  leaprecord init

  # Create tables through migrations
  leaprecord init --migrate

  # Write leaprecord.yaml and create tables in a specific file
  leaprecord init --write-config --database data/hr.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, migrate, writeConfig, force)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Create tables by running migrations")
	cmd.Flags().BoolVar(&writeConfig, "write-config", false, "Write a starter leaprecord.yaml in the current directory")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing leaprecord.yaml")

	return cmd
}

func runInit(cmd *cobra.Command, migrate, writeConfig, force bool) error {
	out := InitOutput{}

	if writeConfig {
		path, err := writeConfigFile(".", force)
		if err != nil {
			return err
		}
		out.ConfigWritten = path
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	records := cmdCtx.Records
	r := cmdCtx.Renderer
	out.Database = describeDatabase(cmdCtx.Cfg.Database)

	if migrate {
		if err := records.DB.Migrate(ctx); err != nil {
			return err
		}
		version, err := records.DB.MigrationVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read migration version: %w", err)
		}
		out.Migrated = true
		out.MigrationVersion = version
	} else if err := records.CreateTables(ctx); err != nil {
		return err
	}
	out.Tables = []string{records.Employees.Table().Name, records.Reviews.Table().Name}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	if out.ConfigWritten != "" {
		r.StatusLine(out.ConfigWritten, "success", "written")
	}
	for _, table := range out.Tables {
		r.StatusLine(table, "success", "")
	}
	if out.Migrated {
		r.Muted(fmt.Sprintf("Schema at migration version %d", out.MigrationVersion))
	}
	r.Println("")
	r.Success("Database initialized: " + out.Database)
	return nil
}

func writeConfigFile(dir string, force bool) (string, error) {
	path := filepath.Join(dir, intconfig.ConfigFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", intconfig.ConfigFileName)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", intconfig.ConfigFileName, err)
	}
	return path, nil
}

// describeDatabase renders the target without credentials.
func describeDatabase(d *intconfig.DatabaseConfig) string {
	switch d.Driver {
	case "postgres", "postgresql", "pgx":
		if d.DSN != "" {
			return "postgres (dsn)"
		}
		return fmt.Sprintf("postgres://%s:%d/%s", d.Host, d.Port, d.Name)
	default:
		return "sqlite:" + d.Path
	}
}
