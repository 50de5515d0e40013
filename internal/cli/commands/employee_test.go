package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaprecord/internal/cli/testutil"
	"github.com/leapstack-labs/leaprecord/pkg/core"
)

type employeeJSON struct {
	ID       *int64 `json:"id"`
	Name     string `json:"name"`
	JobTitle string `json:"job_title"`
}

type reviewJSON struct {
	ID         *int64 `json:"id"`
	EmployeeID int64  `json:"employee_id"`
	Year       int    `json:"year"`
	Text       string `json:"text"`
}

type employeeShowJSON struct {
	Employee employeeJSON `json:"employee"`
	Reviews  []reviewJSON `json:"reviews"`
}

// setupInitializedProject creates a project whose tables already exist.
func setupInitializedProject(t *testing.T) string {
	t.Helper()
	dir := testutil.SetupTestProject(t)
	_, err := runCommand(t, NewInitCommand())
	require.NoError(t, err)
	return dir
}

func addEmployee(t *testing.T, name, jobTitle string) int64 {
	t.Helper()
	var e employeeJSON
	runJSON(t, NewEmployeeCommand(), &e, "add", "--name", name, "--job-title", jobTitle)
	require.NotNil(t, e.ID)
	return *e.ID
}

func TestEmployeeCommandLifecycle(t *testing.T) {
	setupInitializedProject(t)

	id := addEmployee(t, "Ada Lovelace", "Analyst")
	assert.Equal(t, int64(1), id)
	addEmployee(t, "Grace Hopper", "Admiral")

	var list []employeeJSON
	runJSON(t, NewEmployeeCommand(), &list, "list")
	require.Len(t, list, 2)
	assert.Equal(t, "Ada Lovelace", list[0].Name)
	assert.Equal(t, "Admiral", list[1].JobTitle)

	var updated employeeJSON
	runJSON(t, NewEmployeeCommand(), &updated, "update", "1", "--job-title", "Lead Analyst")
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "Lead Analyst", updated.JobTitle)

	var shown employeeShowJSON
	runJSON(t, NewEmployeeCommand(), &shown, "show", "1")
	assert.Equal(t, "Lead Analyst", shown.Employee.JobTitle)
	assert.Empty(t, shown.Reviews)

	var deleted map[string]int64
	runJSON(t, NewEmployeeCommand(), &deleted, "delete", "1")
	assert.Equal(t, int64(1), deleted["deleted"])

	_, err := runCommand(t, NewEmployeeCommand(), "show", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestEmployeeShowIncludesReviews(t *testing.T) {
	setupInitializedProject(t)

	id := addEmployee(t, "Ada Lovelace", "Analyst")
	_, err := runCommand(t, NewReviewCommand(), "add", "--employee", "1", "--year", "2022", "--text", "Solid year")
	require.NoError(t, err)
	_, err = runCommand(t, NewReviewCommand(), "add", "--employee", "1", "--year", "2023", "--text", "Excellent")
	require.NoError(t, err)

	var shown employeeShowJSON
	runJSON(t, NewEmployeeCommand(), &shown, "show", formatID(id))
	require.Len(t, shown.Reviews, 2)
	assert.Equal(t, 2022, shown.Reviews[0].Year)
	assert.Equal(t, "Excellent", shown.Reviews[1].Text)
}

func TestEmployeeCommandErrors(t *testing.T) {
	setupInitializedProject(t)
	addEmployee(t, "Ada Lovelace", "Analyst")

	tests := []struct {
		name      string
		args      []string
		wantIs    error
		wantInMsg string
	}{
		{
			name:   "empty name",
			args:   []string{"add", "--name", "", "--job-title", "Analyst"},
			wantIs: core.ErrInvalidValue,
		},
		{
			name:   "empty job title on update",
			args:   []string{"update", "1", "--job-title", ""},
			wantIs: core.ErrInvalidValue,
		},
		{
			name:      "update without fields",
			args:      []string{"update", "1"},
			wantInMsg: "nothing to update",
		},
		{
			name:      "invalid id",
			args:      []string{"show", "abc"},
			wantInMsg: "invalid id",
		},
		{
			name:   "delete missing",
			args:   []string{"delete", "99"},
			wantIs: core.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, NewEmployeeCommand(), tt.args...)
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantInMsg != "" {
				assert.Contains(t, err.Error(), tt.wantInMsg)
			}
		})
	}

	// A rejected update leaves the stored row untouched.
	var shown employeeShowJSON
	runJSON(t, NewEmployeeCommand(), &shown, "show", "1")
	assert.Equal(t, "Analyst", shown.Employee.JobTitle)
}

func TestCommandsRequireTables(t *testing.T) {
	testutil.SetupTestProject(t)

	_, err := runCommand(t, NewEmployeeCommand(), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leaprecord init")

	_, err = runCommand(t, NewReviewCommand(), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing tables")
}

func TestRenderEmployeesMarkdown(t *testing.T) {
	a, err := core.NewEmployee("Ada Lovelace", "Analyst")
	require.NoError(t, err)
	a.ID = 1

	tr := testutil.NewTestRendererMarkdown()
	require.NoError(t, renderEmployees(tr.Renderer, []*core.Employee{a}))

	out := tr.Output()
	testutil.AssertValidMarkdown(t, out)
	testutil.AssertNoANSI(t, out)
	testutil.AssertContains(t, out, "# Employees")
	testutil.AssertContains(t, out, "| Ada Lovelace")

	tr.Reset()
	require.NoError(t, renderEmployees(tr.Renderer, nil))
	testutil.AssertContains(t, tr.Output(), "No employees")
}

func TestRenderEmployeesJSONEmpty(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	require.NoError(t, renderEmployees(tr.Renderer, nil))
	assert.JSONEq(t, "[]", tr.Output())
}
