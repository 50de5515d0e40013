package config

import "time"

// Default configuration values.
const (
	DefaultDriver          = "sqlite"
	DefaultDatabasePath    = "leaprecord.db"
	DefaultBusyTimeout     = 5 * time.Second
	DefaultPostgresPort    = 5432
	DefaultSSLMode         = "disable"
	DefaultServerAddr      = "127.0.0.1:8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// ApplyDefaults fills unset database fields based on the driver.
func (d *DatabaseConfig) ApplyDefaults() {
	if d == nil {
		return
	}
	if d.Driver == "" {
		d.Driver = DefaultDriver
	}

	switch d.Driver {
	case "postgres", "postgresql", "pgx":
		if d.Port == 0 {
			d.Port = DefaultPostgresPort
		}
		if d.SSLMode == "" {
			d.SSLMode = DefaultSSLMode
		}
	default:
		if d.Path == "" {
			d.Path = DefaultDatabasePath
		}
		if d.BusyTimeout == 0 {
			d.BusyTimeout = DefaultBusyTimeout
		}
	}
}

// DefaultServerConfig returns a ServerConfig with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            DefaultServerAddr,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// ApplyDefaults fills unset server fields.
func (s *ServerConfig) ApplyDefaults() {
	if s == nil {
		return
	}
	def := DefaultServerConfig()
	if s.Addr == "" {
		s.Addr = def.Addr
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = def.ReadTimeout
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = def.WriteTimeout
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = def.ShutdownTimeout
	}
}

// DefaultsMap returns the defaults keyed the way koanf flattens them.
func DefaultsMap() map[string]interface{} {
	return map[string]interface{}{
		"database.driver":         DefaultDriver,
		"server.addr":             DefaultServerAddr,
		"server.read_timeout":     DefaultReadTimeout.String(),
		"server.write_timeout":    DefaultWriteTimeout.String(),
		"server.shutdown_timeout": DefaultShutdownTimeout.String(),
	}
}
