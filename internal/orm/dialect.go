package orm

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Dialect captures the differences between the SQL engines leaprecord can target.
type Dialect struct {
	// Name is the value accepted in configuration ("sqlite", "postgres").
	Name string
	// Driver is the database/sql driver name registered by the engine's package.
	Driver string
	// GooseDialect is the dialect name understood by goose.
	GooseDialect string
	// Returning reports whether generated keys are read back with RETURNING
	// instead of sql.Result.LastInsertId.
	Returning bool
	// Numbered reports whether placeholders are $1, $2, ... instead of ?.
	Numbered bool
}

// SQLite is the embedded engine backed by modernc.org/sqlite.
var SQLite = &Dialect{
	Name:         "sqlite",
	Driver:       "sqlite",
	GooseDialect: "sqlite3",
}

// Postgres is the server engine backed by the pgx stdlib driver.
var Postgres = &Dialect{
	Name:         "postgres",
	Driver:       "pgx",
	GooseDialect: "postgres",
	Returning:    true,
	Numbered:     true,
}

var dialects = map[string]*Dialect{
	SQLite.Name:   SQLite,
	"sqlite3":     SQLite,
	Postgres.Name: Postgres,
	"postgresql":  Postgres,
	"pgx":         Postgres,
}

// LookupDialect resolves a configured driver name.
func LookupDialect(name string) (*Dialect, error) {
	if d, ok := dialects[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d, nil
	}
	return nil, &UnknownDialectError{Name: name, Available: DialectNames()}
}

// DialectNames returns the canonical dialect names (sorted).
func DialectNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, d := range dialects {
		if !seen[d.Name] {
			seen[d.Name] = true
			names = append(names, d.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Rebind rewrites ? placeholders for dialects that number their parameters.
// Statements in this package never contain literal question marks.
func (d *Dialect) Rebind(query string) string {
	if !d.Numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// UnknownDialectError is returned when an unsupported driver is configured.
type UnknownDialectError struct {
	Name      string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown database driver %q\nAvailable drivers: %v\nHint: Check database.driver in leaprecord.yaml", e.Name, e.Available)
}
