package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaprecord/internal/cli/config"
)

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommandRegistersCommands(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"version", "init", "migrate", "drop", "employee", "review", "seed", "serve", "doctor", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"config", "driver", "database", "verbose", "output", "log-level"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRootCommandRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	db := filepath.Join(dir, "data", "hr.db")

	run := func(args ...string) string {
		t.Helper()
		out, errOut, err := runCLI(t, append([]string{"--database", db, "-o", "json"}, args...)...)
		require.NoError(t, err, "stderr: %s", errOut)
		return out
	}

	run("init", "--migrate")
	assert.FileExists(t, db)

	var employee struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(run("employee", "add", "--name", "Ada Lovelace", "--job-title", "Analyst")), &employee))
	assert.Equal(t, int64(1), employee.ID)

	var review struct {
		ID   int64 `json:"id"`
		Year int   `json:"year"`
	}
	require.NoError(t, json.Unmarshal([]byte(run("review", "add", "--employee", "1", "--year", "2023", "--text", "Excellent")), &review))
	assert.Equal(t, int64(1), review.ID)

	var reviews []map[string]any
	require.NoError(t, json.Unmarshal([]byte(run("review", "list", "--employee", "1")), &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "Excellent", reviews[0]["text"])

	var deleted map[string]int64
	require.NoError(t, json.Unmarshal([]byte(run("review", "delete", "1")), &deleted))
	assert.Equal(t, int64(1), deleted["deleted"])

	require.NoError(t, json.Unmarshal([]byte(run("review", "list")), &reviews))
	assert.Empty(t, reviews)
}

func TestRootCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leaprecord.yaml"), []byte(`database:
  path: records.db
output: json
`), 0600))

	_, errOut, err := runCLI(t, "init")
	require.NoError(t, err, errOut)
	assert.FileExists(t, filepath.Join(dir, "records.db"))
}

func TestRootCommandValidationError(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	db := filepath.Join(dir, "hr.db")

	_, _, err := runCLI(t, "--database", db, "init")
	require.NoError(t, err)

	_, _, err = runCLI(t, "--database", db, "review", "add", "--employee", "1", "--year", "1899", "--text", "Old")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Year must be a positive integer within 1900-present")
}

func TestRootCommandInvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown driver", args: []string{"--driver", "oracle", "employee", "list"}, wantErr: "oracle"},
		{name: "invalid output", args: []string{"-o", "yaml", "employee", "list"}, wantErr: "output"},
		{name: "invalid log level", args: []string{"--log-level", "loud", "employee", "list"}, wantErr: "log"},
		{name: "missing config file", args: []string{"--config", "nope.yaml", "employee", "list"}, wantErr: "config file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, errOut, err := runCLI(t, "--database", filepath.Join(dir, "hr.db"), "-v", "init")
	require.NoError(t, err)
	assert.Contains(t, errOut, "level=DEBUG")
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := runCLI(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "leaprecord")
}
