package duckdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"
	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

func parseSQL(t *testing.T, sql string) *parser.Segment {
	t.Helper()
	d := dialect.MustGet("duckdb")
	segs, errs := d.Lexer().LexString(sql)
	require.Empty(t, errs)
	tree, err := d.Parser().Parse(segs)
	require.NoError(t, err)
	return tree
}

func TestLambdaArrow_LexesAsOneToken(t *testing.T) {
	d := dialect.MustGet("duckdb")
	segs, errs := d.Lexer().LexString("a->b")
	require.Empty(t, errs)

	var kinds []token.SyntaxKind
	for _, s := range segs {
		kinds = append(kinds, s.Kind())
	}
	assert.Equal(t, []token.SyntaxKind{
		token.Word,
		token.LambdaOperator,
		token.Word,
		token.EndOfFile,
	}, kinds)
}

func TestHashIsNotAComment(t *testing.T) {
	d := dialect.MustGet("duckdb")
	segs, errs := d.Lexer().LexString("a # b")
	// "#" has no matcher of its own, so it surfaces as unlexable rather
	// than silently swallowing the rest of the line.
	assert.NotEmpty(t, errs)

	// Postgres inherits the ANSI comment rule, where # starts a comment.
	pg := dialect.MustGet("postgres")
	segs, errs = pg.Lexer().LexString("a # b")
	require.Empty(t, errs)
	assert.Equal(t, token.InlineComment, segs[2].Kind())
}

func TestQualifyClause(t *testing.T) {
	tree := parseSQL(t, "select a from t qualify rank() > 1")
	assert.Equal(t, "select a from t qualify rank() > 1", tree.Raw())
	assert.Equal(t, 1, len(collectKind(tree, qualifyClauseKind)))

	// QUALIFY is not part of the postgres grammar.
	pg := dialect.MustGet("postgres")
	segs, _ := pg.Lexer().LexString("select a from t qualify rank() > 1")
	_, err := pg.Parser().Parse(segs)
	assert.Error(t, err)
}

func TestGroupByAll(t *testing.T) {
	tree := parseSQL(t, "select a, count(*) from t group by all")
	assert.Equal(t, 1, len(collectKind(tree, token.GroupByClause)))

	// The list form still parses.
	tree = parseSQL(t, "select a, count(*) from t group by a, 2")
	assert.Equal(t, 1, len(collectKind(tree, token.GroupByClause)))
}

func TestLambdaInExpression(t *testing.T) {
	tree := parseSQL(t, "select a from t where x -> y = 1")
	assert.Equal(t, "select a from t where x -> y = 1", tree.Raw())
}

func collectKind(tree *parser.Segment, kind token.SyntaxKind) []*parser.Segment {
	var out []*parser.Segment
	tree.RecursiveCrawl(map[token.SyntaxKind]struct{}{kind: {}}, func(s *parser.Segment) bool {
		out = append(out, s)
		return true
	})
	return out
}
