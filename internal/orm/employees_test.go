package orm

import (
	"context"
	"errors"
	"testing"

	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeMapper_CRUD(t *testing.T) {
	ctx := context.Background()
	employees := setupTestRecords(t).Employees

	e, err := employees.Create(ctx, "Grace Hopper", "Rear Admiral")
	require.NoError(t, err)
	require.NotZero(t, e.ID)

	cached, ok := employees.Cache().Get(e.ID)
	require.True(t, ok)
	assert.Same(t, e, cached)

	require.NoError(t, e.SetJobTitle("Computer Scientist"))
	require.NoError(t, employees.Update(ctx, e))

	employees.Cache().Clear()
	loaded, err := employees.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Computer Scientist", loaded.JobTitle())

	byName, err := employees.FindByName(ctx, "Grace Hopper")
	require.NoError(t, err)
	assert.Same(t, loaded, byName)

	id := loaded.ID
	require.NoError(t, employees.Delete(ctx, loaded))
	assert.Zero(t, loaded.ID)
	_, ok = employees.Cache().Get(id)
	assert.False(t, ok)

	_, err = employees.FindByID(ctx, id)
	assert.True(t, errors.Is(err, core.ErrNotFound))
	_, err = employees.FindByName(ctx, "Grace Hopper")
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestEmployeeMapper_Errors(t *testing.T) {
	ctx := context.Background()
	employees := setupTestRecords(t).Employees

	_, err := employees.Create(ctx, "", "Engineer")
	assert.True(t, errors.Is(err, core.ErrInvalidValue))

	unsaved, err := core.NewEmployee("Ada", "Engineer")
	require.NoError(t, err)
	assert.True(t, errors.Is(employees.Update(ctx, unsaved), core.ErrNotPersisted))
	assert.True(t, errors.Is(employees.Delete(ctx, unsaved), core.ErrNotPersisted))

	_, err = employees.Reviews(ctx, unsaved)
	assert.True(t, errors.Is(err, core.ErrNotPersisted))
}

func TestEmployeeMapper_RejectsUnvalidatedInstance(t *testing.T) {
	ctx := context.Background()
	records := setupTestRecords(t)
	employees := records.Employees

	blank := &core.Employee{}
	err := employees.Save(ctx, blank)
	assert.True(t, errors.Is(err, core.ErrInvalidValue))
	assert.Zero(t, blank.ID)

	var count int
	require.NoError(t, records.DB.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count))
	assert.Zero(t, count, "no row should be written")

	saved, err := employees.Create(ctx, "Ada", "Engineer")
	require.NoError(t, err)
	err = employees.Update(ctx, &core.Employee{ID: saved.ID})
	assert.True(t, errors.Is(err, core.ErrInvalidValue))

	employees.Cache().Clear()
	loaded, err := employees.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", loaded.Name())
	assert.Equal(t, "Engineer", loaded.JobTitle())
}

func TestEmployeeMapper_InvalidRowLeavesCachedInstanceUnchanged(t *testing.T) {
	ctx := context.Background()
	records := setupTestRecords(t)
	employees := records.Employees

	e, err := employees.Create(ctx, "Ada", "Engineer")
	require.NoError(t, err)

	_, err = records.DB.Conn().ExecContext(ctx, `UPDATE employees SET name = 'Ada L', job_title = '' WHERE id = ?`, e.ID)
	require.NoError(t, err)

	_, err = employees.FindByID(ctx, e.ID)
	assert.True(t, errors.Is(err, core.ErrInvalidValue))
	assert.Equal(t, "Ada", e.Name())
	assert.Equal(t, "Engineer", e.JobTitle())
}

func TestEmployeeMapper_Reviews(t *testing.T) {
	ctx := context.Background()
	records := setupTestRecords(t)

	ada, err := records.Employees.Create(ctx, "Ada", "Engineer")
	require.NoError(t, err)
	bob, err := records.Employees.Create(ctx, "Bob", "Designer")
	require.NoError(t, err)

	_, err = records.Reviews.Create(ctx, ada.ID, 2022, "Excellent")
	require.NoError(t, err)
	_, err = records.Reviews.Create(ctx, bob.ID, 2022, "Good")
	require.NoError(t, err)
	_, err = records.Reviews.Create(ctx, ada.ID, 2021, "Great")
	require.NoError(t, err)

	got, err := records.Employees.Reviews(ctx, ada)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Great", got[0].Text())
	assert.Equal(t, "Excellent", got[1].Text())
}

func TestEmployeeMapper_All(t *testing.T) {
	ctx := context.Background()
	employees := setupTestRecords(t).Employees

	all, err := employees.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, name := range []string{"Ada", "Bob", "Cy"} {
		_, err := employees.Create(ctx, name, "Engineer")
		require.NoError(t, err)
	}

	all, err = employees.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ada", all[0].Name())
	assert.Equal(t, "Cy", all[2].Name())
}

func TestRecords_ForeignKeysEnforcedWhenEnabled(t *testing.T) {
	ctx := context.Background()
	db := openFileDB(t, Config{ForeignKeys: true})
	records := NewRecords(db)
	require.NoError(t, records.CreateTables(ctx))

	_, err := records.Reviews.Create(ctx, 77, 2020, "Orphan")
	require.Error(t, err, "a review for a missing employee should be rejected by the store")
	assert.False(t, errors.Is(err, core.ErrInvalidValue))
}

func TestRecords_DropTables(t *testing.T) {
	ctx := context.Background()
	records := setupTestRecords(t)

	require.NoError(t, records.DropTables(ctx))
	for _, table := range []string{EmployeesTable, ReviewsTable} {
		exists, err := records.DB.TableExists(ctx, table)
		require.NoError(t, err)
		assert.False(t, exists, "table %s should be gone", table)
	}
}

func TestRecords_OrphanedReviews(t *testing.T) {
	ctx := context.Background()
	records := setupTestRecords(t)

	ada, err := records.Employees.Create(ctx, "Ada", "Engineer")
	require.NoError(t, err)
	_, err = records.Reviews.Create(ctx, ada.ID, 2020, "Linked")
	require.NoError(t, err)
	orphan, err := records.Reviews.Create(ctx, 99, 2020, "Orphan")
	require.NoError(t, err)
	_, err = records.Reviews.Create(ctx, 0, 2020, "Unassigned")
	require.NoError(t, err)

	ids, err := records.OrphanedReviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{orphan.ID}, ids)
}

func TestRecords_MissingTables(t *testing.T) {
	ctx := context.Background()
	records := NewRecords(openTestDB(t))

	missing, err := records.MissingTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{EmployeesTable, ReviewsTable}, missing)

	require.NoError(t, records.Employees.CreateTable(ctx))
	missing, err = records.MissingTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{ReviewsTable}, missing)
}
