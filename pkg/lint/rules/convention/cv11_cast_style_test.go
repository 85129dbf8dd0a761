package convention

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"
	_ "github.com/sqlsleuth/sqlsleuth/pkg/dialects/ansi"
	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
)

func parseTree(t *testing.T, sql string) *parser.Segment {
	t.Helper()
	d := dialect.MustGet("ansi")
	segs, errs := d.Lexer().LexString(sql)
	require.Empty(t, errs)
	tree, err := d.Parser().Parse(segs)
	require.NoError(t, err)
	return tree
}

func TestCastStyle_DefaultPrefersCast(t *testing.T) {
	d := dialect.MustGet("ansi")

	diags := CastStyle.Check(parseTree(t, "select a::int, b::text from t"), d, nil)
	require.Len(t, diags, 2)
	for _, diag := range diags {
		assert.Equal(t, "CV11", diag.RuleID)
		assert.Contains(t, diag.Message, "CAST")
	}

	diags = CastStyle.Check(parseTree(t, "select cast(a as int) from t"), d, nil)
	assert.Empty(t, diags)
}

func TestCastStyle_ShorthandStyle(t *testing.T) {
	d := dialect.MustGet("ansi")
	opts := map[string]any{"preferred_style": "shorthand"}

	diags := CastStyle.Check(parseTree(t, "select cast(a as int) from t"), d, opts)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "shorthand")

	diags = CastStyle.Check(parseTree(t, "select a::int from t"), d, opts)
	assert.Empty(t, diags)
}

// Both styles must emit the ID and severity the rule registers with.
func TestCastStyle_DiagnosticMetadata(t *testing.T) {
	d := dialect.MustGet("ansi")

	diags := CastStyle.Check(parseTree(t, "select a::int from t"), d, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, CastStyle.ID, diags[0].RuleID)
	assert.Equal(t, CastStyle.Severity, diags[0].Severity)

	opts := map[string]any{"preferred_style": "shorthand"}
	diags = CastStyle.Check(parseTree(t, "select cast(a as int) from t"), d, opts)
	require.Len(t, diags, 1)
	assert.Equal(t, CastStyle.ID, diags[0].RuleID)
	assert.Equal(t, CastStyle.Severity, diags[0].Severity)
}

func TestCastStyle_ChainedShorthand(t *testing.T) {
	d := dialect.MustGet("ansi")

	// Each :: is a separate finding.
	diags := CastStyle.Check(parseTree(t, "select a::int::text from t"), d, nil)
	assert.Len(t, diags, 2)
}
