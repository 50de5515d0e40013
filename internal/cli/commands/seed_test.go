package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaprecord/internal/cli/testutil"
	"github.com/leapstack-labs/leaprecord/pkg/core"
)

const validSeed = `employees:
  - name: Ada Lovelace
    job_title: Analyst
    reviews:
      - year: 2022
        text: Invented programming
      - year: 2023
        text: Kept inventing
  - name: Grace Hopper
    job_title: Admiral
    reviews:
      - year: 2021
        text: Found a moth
`

const invalidSeed = `employees:
  - name: Ada Lovelace
    job_title: Analyst
  - name: Grace Hopper
    job_title: Admiral
    reviews:
      - year: 1850
        text: Too early
`

func TestSeedCommand(t *testing.T) {
	dir := setupInitializedProject(t)
	testutil.WriteFile(t, dir, DefaultSeedFile, validSeed)

	var out SeedOutput
	runJSON(t, NewSeedCommand(), &out)
	assert.Equal(t, 2, out.Employees)
	assert.Equal(t, 3, out.Reviews)

	var reviews []reviewJSON
	runJSON(t, NewReviewCommand(), &reviews, "list", "--employee", "2")
	require.Len(t, reviews, 1)
	assert.Equal(t, "Found a moth", reviews[0].Text)
}

func TestSeedCommandInvalidFileWritesNothing(t *testing.T) {
	dir := setupInitializedProject(t)
	path := testutil.WriteFile(t, dir, "bad.yaml", invalidSeed)

	_, err := runCommand(t, NewSeedCommand(), "--file", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidValue)

	var employees []employeeJSON
	runJSON(t, NewEmployeeCommand(), &employees, "list")
	assert.Empty(t, employees)
}

func TestSeedCommandMissingFile(t *testing.T) {
	setupInitializedProject(t)

	_, err := runCommand(t, NewSeedCommand(), "--file", "nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open seed file")
}
