package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sqlsleuth.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Run from an empty directory so the upward search finds nothing.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.ConfigFileUsed)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
dialect: duckdb
output: json
verbose: true
vars:
  schema: analytics
rules:
  CV11:
    severity: error
    options:
      preferred_style: shorthand
  AL05:
    disabled: true
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "duckdb", cfg.Dialect)
	assert.Equal(t, "json", cfg.Output)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, path, cfg.ConfigFileUsed)
	assert.Equal(t, "analytics", cfg.Vars["schema"])

	require.Contains(t, cfg.Rules, "CV11")
	assert.Equal(t, "error", cfg.Rules["CV11"].Severity)
	assert.Equal(t, "shorthand", cfg.Rules["CV11"].Options["preferred_style"])
	assert.True(t, cfg.Rules["AL05"].Disabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "dialect: duckdb\n")
	t.Setenv("SQLSLEUTH_DIALECT", "postgres")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Dialect)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	path := writeConfig(t, "dialect: duckdb\n")
	t.Setenv("SQLSLEUTH_DIALECT", "postgres")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", DefaultDialect, "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{"--dialect", "ansi"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "ansi", cfg.Dialect)
	// Unchanged flags must not clobber lower layers with their defaults.
	assert.False(t, cfg.Verbose)
}

func TestLoad_UnchangedFlagKeepsFileValue(t *testing.T) {
	path := writeConfig(t, "verbose: true\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "dialect: [unclosed\n")
	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestLintConfig(t *testing.T) {
	cfg := &Config{Rules: map[string]RuleSettings{
		"AL05": {Disabled: true},
		"CV11": {Severity: "error", Options: map[string]any{"preferred_style": "cast"}},
	}}

	lc := cfg.LintConfig()
	assert.True(t, lc.Rules["AL05"].Disabled)
	assert.Equal(t, "error", lc.Rules["CV11"].Severity)
	assert.Equal(t, "cast", lc.Rules["CV11"].Options["preferred_style"])
}

func TestFindConfigFile_Upward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	cfgPath := filepath.Join(root, "sqlsleuth.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("dialect: ansi\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	found := findConfigFile("")
	// Symlinked temp dirs can make the found path differ lexically; resolve
	// both before comparing.
	wantReal, _ := filepath.EvalSymlinks(cfgPath)
	gotReal, _ := filepath.EvalSymlinks(found)
	assert.Equal(t, wantReal, gotReal)
}
