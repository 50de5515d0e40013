package core

import "context"

// Entity is a record type persisted as one row of a table.
// A zero PrimaryKey means the record has not been saved.
type Entity interface {
	PrimaryKey() int64
}

// Table describes the relational table backing one entity type.
type Table struct {
	Name      string
	CreateSQL string
	DropSQL   string
}

// Mapper is the base contract for persisting one entity type.
//
// CreateTable and DropTable manage the schema for the whole type. Save,
// Update and Delete act on a single instance and keep the mapper's
// id-keyed cache in step with the rows they touch.
type Mapper[E Entity] interface {
	Table() Table
	CreateTable(ctx context.Context) error
	DropTable(ctx context.Context) error

	// Save inserts a new row and assigns the generated primary key to e.
	Save(ctx context.Context, e E) error
	// Update writes e's current field values to its existing row.
	Update(ctx context.Context, e E) error
	// Delete removes e's row and clears its primary key.
	Delete(ctx context.Context, e E) error
}
