package orm

import (
	"context"
	"fmt"
)

// Records bundles the mappers that share one connection.
type Records struct {
	DB        *DB
	Employees *EmployeeMapper
	Reviews   *ReviewMapper
}

// NewRecords wires a mapper for every entity type to db.
func NewRecords(db *DB) *Records {
	reviews := NewReviewMapper(db)
	return &Records{
		DB:        db,
		Employees: NewEmployeeMapper(db, reviews),
		Reviews:   reviews,
	}
}

// CreateTables creates every entity table, referenced tables first.
func (r *Records) CreateTables(ctx context.Context) error {
	if err := r.Employees.CreateTable(ctx); err != nil {
		return err
	}
	return r.Reviews.CreateTable(ctx)
}

// DropTables drops every entity table, referencing tables first.
func (r *Records) DropTables(ctx context.Context) error {
	if err := r.Reviews.DropTable(ctx); err != nil {
		return err
	}
	return r.Employees.DropTable(ctx)
}

// Close closes the shared connection.
func (r *Records) Close() error {
	return r.DB.Close()
}

// OrphanedReviews returns the ids of reviews whose employee_id points at no
// employee row.
func (r *Records) OrphanedReviews(ctx context.Context) ([]int64, error) {
	rows, err := r.DB.query(ctx, `
		SELECT r.id FROM reviews r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE r.employee_id IS NOT NULL AND e.id IS NULL
		ORDER BY r.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to find orphaned reviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan review id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MissingTables returns the entity tables that do not exist yet.
func (r *Records) MissingTables(ctx context.Context) ([]string, error) {
	var missing []string
	for _, name := range []string{r.Employees.Table().Name, r.Reviews.Table().Name} {
		ok, err := r.DB.TableExists(ctx, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
