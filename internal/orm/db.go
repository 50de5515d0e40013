// Package orm maps leaprecord entities to rows using literal SQL over database/sql.
package orm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

// ErrNoConnection is returned when a statement runs before Open or after Close.
var ErrNoConnection = errors.New("database not opened")

// Config describes how to reach the backing store.
type Config struct {
	Driver string

	// SQLite
	Path        string
	ForeignKeys bool
	BusyTimeout time.Duration

	// PostgreSQL: DSN wins when set, otherwise it is built from the fields.
	DSN      string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string

	Logger *slog.Logger
}

// DB is the shared connection every mapper runs its statements through.
type DB struct {
	conn    *sql.DB
	dialect *Dialect
	logger  *slog.Logger
}

// Open connects to the configured store and verifies the connection.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	d, err := LookupDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dsn := buildDSN(d, cfg)
	logger.Debug("opening database", slog.String("driver", d.Name), slog.String("path", cfg.Path), slog.String("host", cfg.Host))

	conn, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d.Name, err)
	}

	// Every connection to :memory: is a separate database.
	if d == SQLite && (cfg.Path == "" || cfg.Path == MemoryPath) {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", d.Name, err)
	}

	return &DB{conn: conn, dialect: d, logger: logger}, nil
}

// NewDB wraps an existing connection. Useful for tests and embedding.
func NewDB(conn *sql.DB, d *Dialect, logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DB{conn: conn, dialect: d, logger: logger}
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	db.logger.Debug("closing database connection")
	err := db.conn.Close()
	db.conn = nil
	return err
}

// Dialect returns the engine dialect in use.
func (db *DB) Dialect() *Dialect {
	return db.dialect
}

// Conn exposes the underlying pool for callers that need raw access.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Logger returns the logger statements are traced to.
func (db *DB) Logger() *slog.Logger {
	return db.logger
}

// Ping verifies the connection is still usable.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return ErrNoConnection
	}
	return db.conn.PingContext(ctx)
}

func (db *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if db.conn == nil {
		return nil, ErrNoConnection
	}
	query = db.dialect.Rebind(query)
	db.logger.Debug("exec", slog.String("sql", query), slog.Any("args", args))
	return db.conn.ExecContext(ctx, query, args...)
}

func (db *DB) queryRow(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	if db.conn == nil {
		return nil, ErrNoConnection
	}
	query = db.dialect.Rebind(query)
	db.logger.Debug("query", slog.String("sql", query), slog.Any("args", args))
	return db.conn.QueryRowContext(ctx, query, args...), nil
}

func (db *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if db.conn == nil {
		return nil, ErrNoConnection
	}
	query = db.dialect.Rebind(query)
	db.logger.Debug("query", slog.String("sql", query), slog.Any("args", args))
	return db.conn.QueryContext(ctx, query, args...)
}

// insert runs an INSERT and returns the generated primary key.
func (db *DB) insert(ctx context.Context, query string, args ...any) (int64, error) {
	if db.dialect.Returning {
		row, err := db.queryRow(ctx, query+" RETURNING id", args...)
		if err != nil {
			return 0, err
		}
		var id int64
		if err := row.Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	result, err := db.exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// TableExists reports whether a table is present in the current schema.
func (db *DB) TableExists(ctx context.Context, name string) (bool, error) {
	q := `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	if db.dialect == Postgres {
		q = `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?`
	}

	row, err := db.queryRow(ctx, q, name)
	if err != nil {
		return false, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", name, err)
	}
	return n > 0, nil
}

func buildDSN(d *Dialect, cfg Config) string {
	if d == Postgres {
		return buildPostgresDSN(cfg)
	}
	return buildSQLiteDSN(cfg)
}

func buildSQLiteDSN(cfg Config) string {
	path := cfg.Path
	if path == "" {
		path = MemoryPath
	}

	params := url.Values{}
	if cfg.ForeignKeys {
		params.Add("_pragma", "foreign_keys(1)")
	} else {
		params.Add("_pragma", "foreign_keys(0)")
	}
	if cfg.BusyTimeout > 0 {
		params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()))
	}
	if path != MemoryPath {
		params.Add("_pragma", "journal_mode(WAL)")
	}
	return path + "?" + params.Encode()
}

func buildPostgresDSN(cfg Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}

	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	// URL form so credentials with spaces or quotes survive escaping.
	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(host, strconv.Itoa(port)),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
	}
	switch {
	case cfg.Password != "":
		u.User = url.UserPassword(cfg.User, cfg.Password)
	case cfg.User != "":
		u.User = url.User(cfg.User)
	}
	return u.String()
}
