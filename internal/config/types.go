// Package config provides shared configuration types for leaprecord.
// It is decoupled from CLI concerns so the HTTP server, seed loader and
// tests can describe a database without going through cobra.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/leaprecord/internal/orm"
)

// DatabaseConfig holds the backing store configuration.
type DatabaseConfig struct {
	Driver string `koanf:"driver"` // sqlite, postgres

	// SQLite
	Path        string        `koanf:"path"` // file path or :memory:
	ForeignKeys bool          `koanf:"foreign_keys"`
	BusyTimeout time.Duration `koanf:"busy_timeout"`

	// PostgreSQL
	DSN      string `koanf:"dsn"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Name     string `koanf:"name"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`
}

// Validate checks that the driver is known and has what it needs to connect.
func (d *DatabaseConfig) Validate() error {
	if d.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	dialect, err := orm.LookupDialect(d.Driver)
	if err != nil {
		return err
	}

	if dialect == orm.Postgres && d.DSN == "" && d.Name == "" {
		return fmt.Errorf("database.name or database.dsn is required for postgres")
	}
	return nil
}

// ORMConfig converts the configuration to the form orm.Open expects.
func (d *DatabaseConfig) ORMConfig(logger *slog.Logger) orm.Config {
	return orm.Config{
		Driver:      d.Driver,
		Path:        d.Path,
		ForeignKeys: d.ForeignKeys,
		BusyTimeout: d.BusyTimeout,
		DSN:         d.DSN,
		Host:        d.Host,
		Port:        d.Port,
		Name:        d.Name,
		User:        d.User,
		Password:    d.Password,
		SSLMode:     d.SSLMode,
		Logger:      logger,
	}
}

// ServerConfig holds configuration for the HTTP API.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}
