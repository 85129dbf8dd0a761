// Package duckdb derives the DuckDB dialect from PostgreSQL. It registers
// itself as "duckdb" on import.
package duckdb

import (
	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"
	"github.com/sqlsleuth/sqlsleuth/pkg/dialects/postgres"
	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

var qualifyClauseKind = dialect.RegisterKind("qualify_clause")

func init() {
	d := Raw()
	d.Expand()
	dialect.Register(d)
}

// Raw builds a fresh, unexpanded DuckDB dialect.
func Raw() *dialect.Dialect {
	d := postgres.Raw().Copy("duckdb")

	// The lambda arrow shares a prefix with minus, so it must sit earlier
	// in the matcher list.
	d.InsertLexerMatchers([]*parser.Matcher{
		parser.StringMatcher("lambda_arrow", "->", parser.KindCtor(token.LambdaOperator)),
	}, "minus")

	// DuckDB has no MySQL-style # comments.
	d.PatchLexerMatchers([]*parser.Matcher{
		parser.RegexMatcher("inline_comment", `--[^\n]*`, parser.KindCtor(token.InlineComment)),
	})

	d.UpdateKeywords("reserved_keywords", "QUALIFY")

	d.ReplaceGrammar("BinaryOperatorGrammar", parser.NewOneOf(
		parser.NewRef("ArithmeticBinaryOperatorGrammar"),
		parser.NewRef("StringBinaryOperatorGrammar"),
		parser.NewRef("ComparisonOperatorGrammar"),
		parser.NewRef("BooleanBinaryOperatorGrammar"),
		parser.NewTypedParser(token.LambdaOperator, token.LambdaOperator),
	))

	// GROUP BY ALL.
	d.ReplaceGrammar("GroupByClauseSegment", parser.NewNodeMatcher(token.GroupByClause,
		parser.NewSequence(
			parser.RefKeyword("GROUP"),
			parser.RefKeyword("BY"),
			parser.NewOneOf(
				parser.RefKeyword("ALL"),
				parser.NewDelimited(parser.NewOneOf(
					parser.NewRef("ColumnReferenceSegment"),
					parser.NewRef("NumericLiteralSegment"),
					parser.NewRef("ExpressionSegment"),
				)),
			),
		),
	))

	d.Add("QualifyClauseSegment", parser.NewNodeMatcher(qualifyClauseKind,
		parser.NewSequence(
			parser.RefKeyword("QUALIFY"),
			parser.NewRef("ExpressionSegment"),
		),
	))

	d.ReplaceGrammar("SelectStatementSegment", parser.NewNodeMatcher(token.SelectStatement,
		parser.NewSequence(
			parser.NewRef("SelectClauseSegment"),
			parser.NewRef("FromClauseSegment").Optional(),
			parser.NewRef("WhereClauseSegment").Optional(),
			parser.NewRef("GroupByClauseSegment").Optional(),
			parser.NewRef("HavingClauseSegment").Optional(),
			parser.NewRef("QualifyClauseSegment").Optional(),
			parser.NewRef("OrderByClauseSegment").Optional(),
			parser.NewRef("LimitClauseSegment").Optional(),
		),
	))

	return d
}
