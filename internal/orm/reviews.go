package orm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// ReviewsTable is the name of the table reviews persist to.
const ReviewsTable = "reviews"

const reviewColumns = `id, employee_id, year, text`

// ReviewsTableFor returns the reviews table definition for a dialect.
func ReviewsTableFor(d *Dialect) core.Table {
	create := `
		CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY,
		employee_id INTEGER,
		year INTEGER,
		text TEXT,
		FOREIGN KEY (employee_id) REFERENCES employees(id))`
	if d == Postgres {
		create = `
		CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		employee_id INTEGER,
		year INTEGER,
		text TEXT,
		FOREIGN KEY (employee_id) REFERENCES employees(id))`
	}
	return core.Table{
		Name:      ReviewsTable,
		CreateSQL: create,
		DropSQL:   `DROP TABLE IF EXISTS reviews`,
	}
}

// ReviewMapper persists core.Review instances to the reviews table.
type ReviewMapper struct {
	Base
	all *IdentityMap[*core.Review]
}

// NewReviewMapper creates a mapper with an empty identity map.
func NewReviewMapper(db *DB) *ReviewMapper {
	return &ReviewMapper{
		Base: NewBase(db, ReviewsTableFor(db.Dialect())),
		all:  NewIdentityMap[*core.Review](),
	}
}

// Cache exposes the id-keyed map of saved and loaded reviews.
func (m *ReviewMapper) Cache() *IdentityMap[*core.Review] {
	return m.all
}

// Create builds a validated review and saves it.
func (m *ReviewMapper) Create(ctx context.Context, employeeID int64, year int, text string) (*core.Review, error) {
	return Create[*core.Review](ctx, m, func() (*core.Review, error) {
		return core.NewReview(employeeID, year, text)
	})
}

// Save inserts a new row with the review's employee_id, year and text,
// assigns the new row's primary key to r.ID and caches r under it.
func (m *ReviewMapper) Save(ctx context.Context, r *core.Review) error {
	if r == nil {
		return fmt.Errorf("failed to save review: nil review")
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}

	id, err := m.DB.insert(ctx,
		`INSERT INTO reviews (employee_id, year, text) VALUES (?, ?, ?)`,
		nullableID(r.EmployeeID), r.Year(), r.Text(),
	)
	if err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}

	// A re-saved instance is a new row; drop the entry for its old id.
	if r.ID != 0 {
		if cached, ok := m.all.Get(r.ID); ok && cached == r {
			m.all.Remove(r.ID)
		}
	}

	r.ID = id
	m.all.Put(id, r)
	m.DB.logger.Debug("saved review", slog.Int64("id", id), slog.Int64("employee_id", r.EmployeeID))
	return nil
}

// Update writes the review's current field values to its row.
func (m *ReviewMapper) Update(ctx context.Context, r *core.Review) error {
	if r == nil || !r.Persisted() {
		return fmt.Errorf("failed to update review: %w", core.ErrNotPersisted)
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("failed to update review %d: %w", r.ID, err)
	}

	result, err := m.DB.exec(ctx,
		`UPDATE reviews SET employee_id = ?, year = ?, text = ? WHERE id = ?`,
		nullableID(r.EmployeeID), r.Year(), r.Text(), r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("failed to update review %d: %w", r.ID, core.ErrNotFound)
	}
	return nil
}

// Delete removes the review's row, evicts it from the cache and clears r.ID.
func (m *ReviewMapper) Delete(ctx context.Context, r *core.Review) error {
	if r == nil || !r.Persisted() {
		return fmt.Errorf("failed to delete review: %w", core.ErrNotPersisted)
	}

	result, err := m.DB.exec(ctx, `DELETE FROM reviews WHERE id = ?`, r.ID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	id := r.ID
	m.all.Remove(id)
	r.ID = 0

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("failed to delete review %d: %w", id, core.ErrNotFound)
	}
	m.DB.logger.Debug("deleted review", slog.Int64("id", id))
	return nil
}

// FindByID loads the review with the given primary key.
// The cached instance is refreshed and returned when one exists.
func (m *ReviewMapper) FindByID(ctx context.Context, id int64) (*core.Review, error) {
	row, err := m.DB.queryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	r, err := m.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("review %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return r, nil
}

// All loads every review ordered by id.
func (m *ReviewMapper) All(ctx context.Context) ([]*core.Review, error) {
	return m.list(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY id`)
}

// ForEmployee loads the reviews written for one employee ordered by year.
func (m *ReviewMapper) ForEmployee(ctx context.Context, employeeID int64) ([]*core.Review, error) {
	return m.list(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE employee_id = ? ORDER BY year, id`, employeeID)
}

func (m *ReviewMapper) list(ctx context.Context, query string, args ...any) ([]*core.Review, error) {
	rows, err := m.DB.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reviews []*core.Review
	for rows.Next() {
		r, err := m.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}
	return reviews, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scan maps one row to an instance, reusing the cached one for its id.
func (m *ReviewMapper) scan(s scanner) (*core.Review, error) {
	var (
		id         int64
		employeeID sql.NullInt64
		year       int
		text       string
	)
	if err := s.Scan(&id, &employeeID, &year, &text); err != nil {
		return nil, err
	}

	// Validate into a fresh instance so a bad row leaves the cached one intact.
	loaded, err := core.NewReview(employeeID.Int64, year, text)
	if err != nil {
		return nil, fmt.Errorf("review %d: %w", id, err)
	}

	r, cached := m.all.Get(id)
	if !cached {
		loaded.ID = id
		m.all.Put(id, loaded)
		return loaded, nil
	}
	r.EmployeeID = loaded.EmployeeID
	_ = r.SetYear(loaded.Year())
	_ = r.SetText(loaded.Text())
	return r, nil
}

// nullableID stores an unset reference as NULL.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

var _ core.Mapper[*core.Review] = (*ReviewMapper)(nil)
