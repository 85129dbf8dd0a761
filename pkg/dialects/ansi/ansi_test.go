package ansi

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"
	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

func lexSQL(t *testing.T, sql string) []*parser.Segment {
	t.Helper()
	d := dialect.MustGet("ansi")
	segs, errs := d.Lexer().LexString(sql)
	require.Empty(t, errs)
	return segs
}

func parseSQL(t *testing.T, sql string) *parser.Segment {
	t.Helper()
	d := dialect.MustGet("ansi")
	tree, err := d.Parser().Parse(lexSQL(t, sql))
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

func leafKinds(segs []*parser.Segment) []token.SyntaxKind {
	kinds := make([]token.SyntaxKind, 0, len(segs))
	for _, s := range segs {
		kinds = append(kinds, s.Kind())
	}
	return kinds
}

func countKind(tree *parser.Segment, kind token.SyntaxKind) int {
	n := 0
	tree.RecursiveCrawl(map[token.SyntaxKind]struct{}{kind: {}}, func(*parser.Segment) bool {
		n++
		return true
	})
	return n
}

func TestLex_BasicKinds(t *testing.T) {
	segs := lexSQL(t, "SELECT 1 -- note\n")
	assert.Equal(t, []token.SyntaxKind{
		token.Word,
		token.Whitespace,
		token.NumericLiteral,
		token.Whitespace,
		token.InlineComment,
		token.Newline,
		token.EndOfFile,
	}, leafKinds(segs))
}

func TestLex_OperatorsAndQuotes(t *testing.T) {
	segs := lexSQL(t, `a::int <> 'it''s' || "col"`)

	var kinds []token.SyntaxKind
	for _, s := range segs {
		if s.IsCode() {
			kinds = append(kinds, s.Kind())
		}
	}
	assert.Equal(t, []token.SyntaxKind{
		token.Word,
		token.CastingOperator,
		token.Word,
		token.Symbol, // <>
		token.SingleQuote,
		token.Symbol, // ||
		token.DoubleQuote,
	}, kinds)
}

func TestLex_BlockCommentSubdivision(t *testing.T) {
	segs := lexSQL(t, "/* one\ntwo */x")

	var raws []string
	var kinds []token.SyntaxKind
	for _, s := range segs {
		raws = append(raws, s.Raw())
		kinds = append(kinds, s.Kind())
	}
	// The embedded newline is split out so line counting stays accurate.
	assert.Equal(t, []string{"/* one", "\n", "two */", "x", ""}, raws)
	assert.Equal(t, []token.SyntaxKind{
		token.BlockComment,
		token.Newline,
		token.BlockComment,
		token.Word,
		token.EndOfFile,
	}, kinds)
}

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"bare select", "SELECT 1"},
		{"select list", "select a, b from tbl"},
		{"aliases", "select a as x, b y from tbl as t1"},
		{"wildcard", "select * from tbl"},
		{"qualified wildcard", "select t.*, x from tbl t"},
		{"join on", "select a from t1 join t2 on t1.id = t2.id"},
		{"left outer join", "select a from t1 left outer join t2 using (id)"},
		{"where between", "select a from t where a between 1 and 10"},
		{"where in", "select a from t where a not in (1, 2, 3)"},
		{"like", "select a from t where name like 'b%'"},
		{"case", "select case when a = 1 then 'x' else 'y' end from t"},
		{"cast call", "select cast(a as varchar(10)) from t"},
		{"shorthand cast", "select a::int::text from t"},
		{"function", "select count(*), max(b) from t group by a having count(*) > 1"},
		{"order limit", "select a from t order by a desc, b limit 10 offset 2"},
		{"is null", "select a from t where b is not null"},
		{"boolean ops", "select a from t where a = 1 and not b or c"},
		{"create table", "create table if not exists s.t (id int primary key, name varchar(20) not null)"},
		{"create table as", "create table t2 as select a from t1"},
		{"multi statement", "select 1; select 2;"},
		{"comments kept", "select a -- trailing\nfrom t /* block */"},
	}

	d := dialect.MustGet("ansi")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, errs := d.Lexer().LexString(tt.sql)
			require.Empty(t, errs)

			tree, err := d.Parser().Parse(segs)
			require.NoError(t, err)
			require.NotNil(t, tree)

			assert.Equal(t, tt.sql, tree.Raw())
			assert.Zero(t, countKind(tree, token.Unparsable), "tree:\n%s", tree.StringTree())
		})
	}
}

func TestParse_TreeShape(t *testing.T) {
	tree := parseSQL(t, "select a from tbl where a > 1")

	assert.Equal(t, token.File, tree.Kind())
	assert.Equal(t, 1, countKind(tree, token.Statement))
	assert.Equal(t, 1, countKind(tree, token.SelectStatement))
	assert.Equal(t, 1, countKind(tree, token.SelectClause))
	assert.Equal(t, 1, countKind(tree, token.FromClause))
	assert.Equal(t, 1, countKind(tree, token.WhereClause))

	// Lexed words are retyped by the grammar.
	var kws, ids []string
	for _, leaf := range tree.Leaves(nil) {
		switch leaf.Kind() {
		case token.Keyword:
			kws = append(kws, strings.ToUpper(leaf.Raw()))
		case token.NakedIdentifier:
			ids = append(ids, leaf.Raw())
		}
	}
	assert.Equal(t, []string{"SELECT", "FROM", "WHERE"}, kws)
	assert.Equal(t, []string{"a", "tbl", "a"}, ids)
}

func TestParse_IndentMetas(t *testing.T) {
	tree := parseSQL(t, "select a from t1 join t2 on t1.x = t2.x")

	// indented_using_on and indented_on_contents both emit indents here,
	// plus the select clause's own pair.
	assert.GreaterOrEqual(t, countKind(tree, token.Indent), 3)
	assert.Equal(t, countKind(tree, token.Indent), countKind(tree, token.Dedent))
}

func TestParse_MultipleJoins(t *testing.T) {
	tree := parseSQL(t, "select a from t1 inner join t2 on t1.x = t2.x cross join t3")
	assert.Equal(t, 2, countKind(tree, token.JoinClause))
}

func TestParse_Errors(t *testing.T) {
	d := dialect.MustGet("ansi")

	t.Run("no statement", func(t *testing.T) {
		segs, _ := d.Lexer().LexString("from where")
		_, err := d.Parser().Parse(segs)
		require.Error(t, err)

		var perr *parser.ParseError
		require.True(t, errors.As(err, &perr))
		assert.Contains(t, perr.Message, "no statement")
	})

	t.Run("trailing garbage", func(t *testing.T) {
		segs, _ := d.Lexer().LexString("select 1 1")
		_, err := d.Parser().Parse(segs)
		require.Error(t, err)

		var perr *parser.ParseError
		require.True(t, errors.As(err, &perr))
		assert.Contains(t, perr.Message, "unparsable section")
	})
}

func TestParse_Empty(t *testing.T) {
	d := dialect.MustGet("ansi")

	tree, err := d.Parser().Parse(nil)
	require.NoError(t, err)
	assert.Nil(t, tree)

	// Whitespace-only input parses to a file node with no statement.
	segs, _ := d.Lexer().LexString("  \n")
	tree, err = d.Parser().Parse(segs)
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Equal(t, "  \n", tree.Raw())
	assert.Zero(t, countKind(tree, token.Statement))
}

func TestReservedWordsAreNotIdentifiers(t *testing.T) {
	d := dialect.MustGet("ansi")

	// "from" cannot be an alias, so the parse must treat it as the clause
	// keyword rather than swallowing it into the select list.
	tree := parseSQL(t, "select a from t")
	assert.Equal(t, 1, countKind(tree, token.FromClause))
	assert.Zero(t, countKind(tree, token.AliasExpression))

	// A quoted reserved word is a legal identifier.
	segs, errs := d.Lexer().LexString(`select "from" from t`)
	require.Empty(t, errs)
	tree, err := d.Parser().Parse(segs)
	require.NoError(t, err)
	assert.Equal(t, 1, countKind(tree, token.FromClause))
}
