package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSQL(t *testing.T, dir, name, sql string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sql), 0o644))
	return path
}

func runLintCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewLintCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetContext(context.Background())
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLintCommand_CleanFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSQL(t, dir, "ok.sql", "select a from t\n")

	out, err := runLintCmd(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "VIOLATIONS")
}

func TestLintCommand_ReportsViolations(t *testing.T) {
	dir := t.TempDir()
	path := writeSQL(t, dir, "bad.sql", "select a::int from t as x\n")

	out, err := runLintCmd(t, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "violation")
	assert.Contains(t, out, "CV11")
	assert.Contains(t, out, "AL05")
	assert.Contains(t, out, path+":1:9:")
}

func TestLintCommand_DisableFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeSQL(t, dir, "bad.sql", "select a::int from t\n")

	out, err := runLintCmd(t, "--disable", "CV11", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "CV11")
}

func TestLintCommand_JSONFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeSQL(t, dir, "bad.sql", "select a::int from t\n")

	out, err := runLintCmd(t, "--format", "json", path)
	require.Error(t, err, "violations still fail the command")

	// The violation error must not be echoed into the output stream, or
	// the buffer stops being valid JSON.
	assert.NotContains(t, out, "Error:")

	var results []struct {
		Path        string `json:"path"`
		Diagnostics []struct {
			Rule     string `json:"rule"`
			Severity string `json:"severity"`
			Line     int    `json:"line"`
			Column   int    `json:"column"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, path, results[0].Path)
	require.Len(t, results[0].Diagnostics, 1)
	assert.Equal(t, "CV11", results[0].Diagnostics[0].Rule)
	assert.Equal(t, "info", results[0].Diagnostics[0].Severity)
	assert.Equal(t, 1, results[0].Diagnostics[0].Line)
	assert.Equal(t, 9, results[0].Diagnostics[0].Column)
}

func TestLintCommand_WalksDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "models")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeSQL(t, dir, "a.sql", "select a::int from t\n")
	writeSQL(t, sub, "b.sql", "select b::int from t\n")
	writeSQL(t, dir, "notes.txt", "not sql")

	out, err := runLintCmd(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 violation(s)")
	assert.NotContains(t, out, "notes.txt")
}

func TestLintCommand_NoSQLFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := runLintCmd(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .sql files")
}

func TestCollectSQLFiles_MissingPath(t *testing.T) {
	_, err := collectSQLFiles([]string{"/no/such/path"})
	assert.Error(t, err)
}

func TestResolveDialect(t *testing.T) {
	cmd := NewLintCommand()
	cmd.SetContext(context.Background())
	cfg := getConfig(cmd) // defaults: ansi
	d, err := resolveDialect(cfg)
	require.NoError(t, err)
	assert.Equal(t, "ansi", d.Name())

	cfg.Dialect = "oracle"
	_, err = resolveDialect(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
	assert.Contains(t, err.Error(), "available")
}
