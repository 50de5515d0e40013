package orm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// EmployeesTable is the name of the table employees persist to.
const EmployeesTable = "employees"

const employeeColumns = `id, name, job_title`

// EmployeesTableFor returns the employees table definition for a dialect.
func EmployeesTableFor(d *Dialect) core.Table {
	idColumn := "id INTEGER PRIMARY KEY"
	if d == Postgres {
		idColumn = "id INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
	}
	return core.Table{
		Name: EmployeesTable,
		CreateSQL: `
		CREATE TABLE IF NOT EXISTS employees (
		` + idColumn + `,
		name TEXT,
		job_title TEXT)`,
		DropSQL: `DROP TABLE IF EXISTS employees`,
	}
}

// EmployeeMapper persists core.Employee instances to the employees table.
type EmployeeMapper struct {
	Base
	all     *IdentityMap[*core.Employee]
	reviews *ReviewMapper
}

// NewEmployeeMapper creates a mapper with an empty identity map.
// reviews is used to load an employee's reviews and may be nil.
func NewEmployeeMapper(db *DB, reviews *ReviewMapper) *EmployeeMapper {
	return &EmployeeMapper{
		Base:    NewBase(db, EmployeesTableFor(db.Dialect())),
		all:     NewIdentityMap[*core.Employee](),
		reviews: reviews,
	}
}

// Cache exposes the id-keyed map of saved and loaded employees.
func (m *EmployeeMapper) Cache() *IdentityMap[*core.Employee] {
	return m.all
}

// Create builds a validated employee and saves it.
func (m *EmployeeMapper) Create(ctx context.Context, name, jobTitle string) (*core.Employee, error) {
	return Create[*core.Employee](ctx, m, func() (*core.Employee, error) {
		return core.NewEmployee(name, jobTitle)
	})
}

// Save inserts a new row and assigns its primary key to e.ID.
func (m *EmployeeMapper) Save(ctx context.Context, e *core.Employee) error {
	if e == nil {
		return fmt.Errorf("failed to save employee: nil employee")
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}

	id, err := m.DB.insert(ctx,
		`INSERT INTO employees (name, job_title) VALUES (?, ?)`,
		e.Name(), e.JobTitle(),
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}

	if e.ID != 0 {
		if cached, ok := m.all.Get(e.ID); ok && cached == e {
			m.all.Remove(e.ID)
		}
	}

	e.ID = id
	m.all.Put(id, e)
	m.DB.logger.Debug("saved employee", slog.Int64("id", id))
	return nil
}

// Update writes the employee's current field values to its row.
func (m *EmployeeMapper) Update(ctx context.Context, e *core.Employee) error {
	if e == nil || !e.Persisted() {
		return fmt.Errorf("failed to update employee: %w", core.ErrNotPersisted)
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("failed to update employee %d: %w", e.ID, err)
	}

	result, err := m.DB.exec(ctx,
		`UPDATE employees SET name = ?, job_title = ? WHERE id = ?`,
		e.Name(), e.JobTitle(), e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("failed to update employee %d: %w", e.ID, core.ErrNotFound)
	}
	return nil
}

// Delete removes the employee's row, evicts it from the cache and clears e.ID.
// Reviews referencing the employee are left in place.
func (m *EmployeeMapper) Delete(ctx context.Context, e *core.Employee) error {
	if e == nil || !e.Persisted() {
		return fmt.Errorf("failed to delete employee: %w", core.ErrNotPersisted)
	}

	result, err := m.DB.exec(ctx, `DELETE FROM employees WHERE id = ?`, e.ID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	id := e.ID
	m.all.Remove(id)
	e.ID = 0

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("failed to delete employee %d: %w", id, core.ErrNotFound)
	}
	return nil
}

// FindByID loads the employee with the given primary key.
func (m *EmployeeMapper) FindByID(ctx context.Context, id int64) (*core.Employee, error) {
	return m.findOne(ctx, fmt.Sprintf("employee %d", id),
		`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
}

// FindByName loads the first employee with the given name.
func (m *EmployeeMapper) FindByName(ctx context.Context, name string) (*core.Employee, error) {
	return m.findOne(ctx, fmt.Sprintf("employee %q", name),
		`SELECT `+employeeColumns+` FROM employees WHERE name = ? ORDER BY id LIMIT 1`, name)
}

// All loads every employee ordered by id.
func (m *EmployeeMapper) All(ctx context.Context) ([]*core.Employee, error) {
	rows, err := m.DB.query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var employees []*core.Employee
	for rows.Next() {
		e, err := m.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}
	return employees, nil
}

// Reviews loads the reviews written for e.
func (m *EmployeeMapper) Reviews(ctx context.Context, e *core.Employee) ([]*core.Review, error) {
	if m.reviews == nil {
		return nil, fmt.Errorf("failed to load reviews: no review mapper configured")
	}
	if e == nil || !e.Persisted() {
		return nil, fmt.Errorf("failed to load reviews: %w", core.ErrNotPersisted)
	}
	return m.reviews.ForEmployee(ctx, e.ID)
}

func (m *EmployeeMapper) findOne(ctx context.Context, what, query string, args ...any) (*core.Employee, error) {
	row, err := m.DB.queryRow(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	e, err := m.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", what, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (m *EmployeeMapper) scan(s scanner) (*core.Employee, error) {
	var (
		id       int64
		name     string
		jobTitle string
	)
	if err := s.Scan(&id, &name, &jobTitle); err != nil {
		return nil, err
	}

	loaded, err := core.NewEmployee(name, jobTitle)
	if err != nil {
		return nil, fmt.Errorf("employee %d: %w", id, err)
	}

	e, cached := m.all.Get(id)
	if !cached {
		loaded.ID = id
		m.all.Put(id, loaded)
		return loaded, nil
	}
	_ = e.SetName(loaded.Name())
	_ = e.SetJobTitle(loaded.JobTitle())
	return e, nil
}

var _ core.Mapper[*core.Employee] = (*EmployeeMapper)(nil)
