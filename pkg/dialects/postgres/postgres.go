// Package postgres derives the PostgreSQL dialect from ANSI. It registers
// itself as "postgres" on import.
package postgres

import (
	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"
	"github.com/sqlsleuth/sqlsleuth/pkg/dialects/ansi"
	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
)

// Dollar-quoted strings get their own syntax kind; the core set has no
// notion of them.
var dollarQuoteKind = dialect.RegisterKind("dollar_quote")

func init() {
	d := Raw()
	d.Expand()
	dialect.Register(d)
}

// Raw builds a fresh, unexpanded PostgreSQL dialect.
func Raw() *dialect.Dialect {
	d := ansi.Raw().Copy("postgres")

	// Dollar quoting must outrank plain single quotes, or $tag$it's$tag$
	// would lex the embedded apostrophe as a string start.
	d.InsertLexerMatchers([]*parser.Matcher{
		parser.RegexMatcher("dollar_quote", `\$(\w*)\$[\s\S]*?\$\1\$`, parser.KindCtor(dollarQuoteKind)),
	}, "single_quote")

	d.UpdateKeywords("reserved_keywords", "ILIKE", "RETURNING")

	d.Add("DollarQuotedLiteralSegment", parser.NewTypedParser(dollarQuoteKind, dollarQuoteKind))
	d.ReplaceGrammar("LiteralGrammar", parser.NewOneOf(
		parser.NewRef("QuotedLiteralSegment"),
		parser.NewRef("DollarQuotedLiteralSegment"),
		parser.NewRef("NumericLiteralSegment"),
		parser.NewRef("BooleanLiteralGrammar"),
		parser.NewRef("NullLiteralSegment"),
	))

	d.ReplaceGrammar("LikeGrammar", parser.NewOneOf(
		parser.RefKeyword("LIKE"),
		parser.RefKeyword("ILIKE"),
	))

	return d
}
