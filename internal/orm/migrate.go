package orm

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// Migrate runs all pending database migrations for the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	if db.conn == nil {
		return ErrNoConnection
	}

	dir, err := db.prepareGoose()
	if err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db.conn, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// MigrationVersion returns the current migration version.
func (db *DB) MigrationVersion(ctx context.Context) (int64, error) {
	if db.conn == nil {
		return 0, ErrNoConnection
	}

	if _, err := db.prepareGoose(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db.conn)
}

// prepareGoose configures goose for embedded migrations and returns the
// directory holding this dialect's files.
func (db *DB) prepareGoose() (string, error) {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{logger: db.logger})

	if err := goose.SetDialect(db.dialect.GooseDialect); err != nil {
		return "", fmt.Errorf("failed to set dialect: %w", err)
	}
	return "migrations/" + db.dialect.Name, nil
}

// gooseLogger routes goose's printf-style output to slog.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
