package lint_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"
	_ "github.com/sqlsleuth/sqlsleuth/pkg/dialects/ansi"
	"github.com/sqlsleuth/sqlsleuth/pkg/lint"
	_ "github.com/sqlsleuth/sqlsleuth/pkg/lint/rules"
)

func newLinter(t *testing.T, cfg *lint.Config) *lint.Linter {
	t.Helper()
	return lint.NewLinter(dialect.MustGet("ansi"), cfg)
}

func ruleIDs(res *lint.Result) []string {
	ids := make([]string, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		ids = append(ids, d.RuleID)
	}
	return ids
}

func TestLintString_Clean(t *testing.T) {
	res := newLinter(t, nil).LintString("q.sql", "select cast(a as int) from t\n")
	assert.Empty(t, res.Diagnostics)
	assert.NotNil(t, res.Tree)
	assert.Equal(t, "q.sql", res.Path)
}

func TestLintString_ParseError(t *testing.T) {
	res := newLinter(t, nil).LintString("q.sql", "select from")

	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, lint.ParseRuleID, res.Diagnostics[0].RuleID)
	assert.Equal(t, lint.SeverityError, res.Diagnostics[0].Severity)
	assert.Nil(t, res.Tree, "rules must not run on a broken parse")
}

func TestLintString_LexError(t *testing.T) {
	res := newLinter(t, nil).LintString("q.sql", "select `x` from t")

	assert.Contains(t, ruleIDs(res), lint.LexRuleID)
	for _, d := range res.Diagnostics {
		if d.RuleID == lint.LexRuleID {
			assert.Equal(t, lint.SeverityError, d.Severity)
			assert.Contains(t, d.Message, "unable to lex")
		}
	}
}

func TestLint_DiagnosticsSortedBySourcePosition(t *testing.T) {
	res := newLinter(t, nil).LintString("q.sql", "select a::int from t as x")

	assert.Equal(t, []string{"CV11", "AL05"}, ruleIDs(res))
	assert.Equal(t, lint.SeverityInfo, res.Diagnostics[0].Severity)
	assert.Equal(t, lint.SeverityWarning, res.Diagnostics[1].Severity)

	line, col := res.Diagnostics[0].LineCol()
	assert.Equal(t, 1, line)
	assert.Equal(t, 9, col, ":: sits right after the column name")
}

func TestLint_DisabledRule(t *testing.T) {
	cfg := lint.NewConfig()
	cfg.Rules["CV11"] = lint.RuleConfig{Disabled: true}

	res := newLinter(t, cfg).LintString("q.sql", "select a::int from t as x")
	assert.Equal(t, []string{"AL05"}, ruleIDs(res))
}

func TestLint_SeverityOverride(t *testing.T) {
	cfg := lint.NewConfig()
	cfg.Rules["CV11"] = lint.RuleConfig{Severity: "error"}

	res := newLinter(t, cfg).LintString("q.sql", "select a::int from t")
	require.Equal(t, []string{"CV11"}, ruleIDs(res))
	assert.Equal(t, lint.SeverityError, res.Diagnostics[0].Severity)
}

func TestLint_RuleOptions(t *testing.T) {
	cfg := lint.NewConfig()
	cfg.Rules["CV11"] = lint.RuleConfig{
		Options: map[string]any{"preferred_style": "shorthand"},
	}
	linter := newLinter(t, cfg)

	res := linter.LintString("q.sql", "select cast(a as int) from t")
	assert.Equal(t, []string{"CV11"}, ruleIDs(res))

	res = linter.LintString("q.sql", "select a::int from t")
	assert.Empty(t, res.Diagnostics)
}

func TestLintTemplated(t *testing.T) {
	linter := newLinter(t, nil)

	res, err := linter.LintTemplated("q.sql", "select a::int from {{tbl}}", map[string]string{
		"tbl": "orders",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"CV11"}, ruleIDs(res))

	// The finding is in the literal prefix, so source and templated
	// positions agree.
	assert.Equal(t, 8, res.Diagnostics[0].Pos.SourceSlice.Start)

	_, err = linter.LintTemplated("q.sql", "select a from {{missing}}", nil)
	require.Error(t, err)
}

func TestLintFiles(t *testing.T) {
	dir := t.TempDir()
	clean := filepath.Join(dir, "clean.sql")
	dirty := filepath.Join(dir, "dirty.sql")
	require.NoError(t, os.WriteFile(clean, []byte("select a from t\n"), 0o644))
	require.NoError(t, os.WriteFile(dirty, []byte("select a::int from t\n"), 0o644))

	linter := newLinter(t, nil)
	results, err := linter.LintFiles(context.Background(), []string{clean, dirty})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, clean, results[0].Path)
	assert.Empty(t, results[0].Diagnostics)
	assert.Equal(t, []string{"CV11"}, ruleIDs(results[1]))
}

func TestLintFiles_ReadError(t *testing.T) {
	linter := newLinter(t, nil)
	_, err := linter.LintFiles(context.Background(), []string{"/no/such/file.sql"})
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	all := lint.GetAll()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID, "GetAll sorts by ID")
	}

	r, ok := lint.GetByID("AL05")
	require.True(t, ok)
	assert.Equal(t, "aliasing.unused", r.Name)

	_, ok = lint.GetByID("ZZ99")
	assert.False(t, ok)

	group := lint.GetByGroup("convention")
	require.NotEmpty(t, group)
	for _, r := range group {
		assert.Equal(t, "convention", r.Group)
	}
}

func TestParseSeverity(t *testing.T) {
	assert.Equal(t, lint.SeverityInfo, lint.ParseSeverity("info"))
	assert.Equal(t, lint.SeverityError, lint.ParseSeverity("error"))
	assert.Equal(t, lint.SeverityWarning, lint.ParseSeverity("warning"))
	assert.Equal(t, lint.SeverityWarning, lint.ParseSeverity("bogus"))

	assert.Equal(t, "info", lint.SeverityInfo.String())
	assert.Equal(t, "warning", lint.SeverityWarning.String())
	assert.Equal(t, "error", lint.SeverityError.String())
}
