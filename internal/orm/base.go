package orm

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// Base provides the schema management shared by every mapper.
// Embed it in concrete mappers to get Table, CreateTable and DropTable.
type Base struct {
	DB    *DB
	table core.Table
}

// NewBase binds a table definition to a connection.
func NewBase(db *DB, table core.Table) Base {
	return Base{DB: db, table: table}
}

// Table returns the table definition for the mapper's dialect.
func (b *Base) Table() core.Table {
	return b.table
}

// CreateTable creates the table that persists instances.
func (b *Base) CreateTable(ctx context.Context) error {
	if _, err := b.DB.exec(ctx, b.table.CreateSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", b.table.Name, err)
	}
	b.DB.logger.Info("created table", "table", b.table.Name)
	return nil
}

// DropTable drops the table that persists instances.
func (b *Base) DropTable(ctx context.Context) error {
	if _, err := b.DB.exec(ctx, b.table.DropSQL); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", b.table.Name, err)
	}
	b.DB.logger.Info("dropped table", "table", b.table.Name)
	return nil
}

// Create initializes a new instance with build and saves it.
// build is where assignment-time validation happens, so nothing is written
// when it fails.
func Create[E core.Entity](ctx context.Context, m core.Mapper[E], build func() (E, error)) (E, error) {
	var zero E
	e, err := build()
	if err != nil {
		return zero, err
	}
	if err := m.Save(ctx, e); err != nil {
		return zero, err
	}
	return e, nil
}
