// Package ansi defines the root SQL dialect every other dialect derives
// from. It registers itself as "ansi" on import.
package ansi

import (
	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"
	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

func init() {
	d := Raw()
	d.Expand()
	dialect.Register(d)
}

// Raw builds a fresh, unexpanded ANSI dialect. Derived dialects start
// here (or from another dialect's Raw), mutate, then Expand and Register.
func Raw() *dialect.Dialect {
	d := dialect.New("ansi")

	d.SetLexerMatchers(lexerMatchers())

	d.UpdateKeywords("reserved_keywords", reservedKeywords...)
	d.UpdateKeywords("unreserved_keywords", unreservedKeywords...)

	d.AddBracketPair(parser.BracketPair{
		Key:        "round",
		StartRef:   "StartBracketSegment",
		EndRef:     "EndBracketSegment",
		StartKind:  token.StartBracket,
		EndKind:    token.EndBracket,
		Persistent: true,
	})
	d.AddBracketPair(parser.BracketPair{
		Key:        "square",
		StartRef:   "StartSquareBracketSegment",
		EndRef:     "EndSquareBracketSegment",
		StartKind:  token.StartSquareBracket,
		EndKind:    token.EndSquareBracket,
		Persistent: false,
	})

	d.SetFlag("indented_using_on", true)
	d.SetFlag("indented_on_contents", true)

	addPunctuation(d)
	addIdentifiers(d)
	addLiterals(d)
	addOperators(d)
	addExpressions(d)
	addClauses(d)
	addStatements(d)

	return d
}

func addPunctuation(d *dialect.Dialect) {
	d.Add("CommaSegment", parser.NewTypedParser(token.Comma, token.Comma))
	d.Add("DotSegment", parser.NewTypedParser(token.Dot, token.Dot))
	d.Add("SemicolonSegment", parser.NewTypedParser(token.Semicolon, token.Semicolon))
	d.Add("DelimiterGrammar", parser.NewRef("SemicolonSegment"))
	d.Add("StarSegment", parser.NewTypedParser(token.Star, token.Star))
	d.Add("StartBracketSegment", parser.NewTypedParser(token.StartBracket, token.StartBracket))
	d.Add("EndBracketSegment", parser.NewTypedParser(token.EndBracket, token.EndBracket))
	d.Add("StartSquareBracketSegment", parser.NewTypedParser(token.StartSquareBracket, token.StartSquareBracket))
	d.Add("EndSquareBracketSegment", parser.NewTypedParser(token.EndSquareBracket, token.EndSquareBracket))
	d.Add("CastingOperatorSegment", parser.NewTypedParser(token.CastingOperator, token.CastingOperator))
}

func addIdentifiers(d *dialect.Dialect) {
	d.Add("NakedIdentifierSegment", parser.NewRegexParser(`[A-Z_][A-Z0-9_]*`, token.NakedIdentifier))
	d.Add("QuotedIdentifierSegment", parser.NewTypedParser(token.DoubleQuote, token.QuotedIdentifier))
	d.Add("ReservedKeywordSegment", parser.NewKeywordSetParser("reserved_keywords", token.Keyword))
	// Reserved words never parse as naked identifiers; quoting always works.
	d.Add("SingleIdentifierGrammar", parser.NewOneOf(
		parser.NewRef("NakedIdentifierSegment").Exclude(parser.NewRef("ReservedKeywordSegment")),
		parser.NewRef("QuotedIdentifierSegment"),
	))

	d.Add("ObjectReferenceSegment", parser.NewNodeMatcher(token.ObjectReference,
		parser.NewDelimited(parser.NewRef("SingleIdentifierGrammar")).Delimiter(parser.NewRef("DotSegment")),
	))
	d.Add("ColumnReferenceSegment", parser.NewNodeMatcher(token.ColumnReference,
		parser.NewDelimited(parser.NewRef("SingleIdentifierGrammar")).Delimiter(parser.NewRef("DotSegment")),
	))
	d.Add("TableReferenceSegment", parser.NewNodeMatcher(token.TableReference,
		parser.NewDelimited(parser.NewRef("SingleIdentifierGrammar")).Delimiter(parser.NewRef("DotSegment")),
	))

	d.Add("WildcardExpressionSegment", parser.NewNodeMatcher(token.WildcardExpression,
		parser.NewSequence(
			parser.NewAnyNumberOf(
				parser.NewSequence(parser.NewRef("SingleIdentifierGrammar"), parser.NewRef("DotSegment")).DisallowGaps(),
			).DisallowGaps(),
			parser.NewRef("StarSegment"),
		),
	))
}

func addLiterals(d *dialect.Dialect) {
	d.Add("QuotedLiteralSegment", parser.NewTypedParser(token.SingleQuote, token.SingleQuote))
	d.Add("NumericLiteralSegment", parser.NewTypedParser(token.NumericLiteral, token.NumericLiteral))
	d.Add("BooleanLiteralGrammar", parser.NewOneOf(
		parser.NewStringParser("TRUE", token.BooleanLiteral),
		parser.NewStringParser("FALSE", token.BooleanLiteral),
	))
	d.Add("NullLiteralSegment", parser.NewStringParser("NULL", token.NullLiteral))
	d.Add("LiteralGrammar", parser.NewOneOf(
		parser.NewRef("QuotedLiteralSegment"),
		parser.NewRef("NumericLiteralSegment"),
		parser.NewRef("BooleanLiteralGrammar"),
		parser.NewRef("NullLiteralSegment"),
	))
}

func addOperators(d *dialect.Dialect) {
	d.Add("ComparisonOperatorGrammar", parser.NewOneOf(
		parser.NewStringParser("=", token.ComparisonOperator),
		parser.NewStringParser("!=", token.ComparisonOperator),
		parser.NewStringParser("<>", token.ComparisonOperator),
		parser.NewStringParser(">=", token.ComparisonOperator),
		parser.NewStringParser("<=", token.ComparisonOperator),
		parser.NewStringParser(">", token.ComparisonOperator),
		parser.NewStringParser("<", token.ComparisonOperator),
	))
	d.Add("ArithmeticBinaryOperatorGrammar", parser.NewOneOf(
		parser.NewStringParser("+", token.BinaryOperator),
		parser.NewStringParser("-", token.BinaryOperator),
		parser.NewStringParser("*", token.BinaryOperator),
		parser.NewStringParser("/", token.BinaryOperator),
		parser.NewStringParser("%", token.BinaryOperator),
	))
	d.Add("StringBinaryOperatorGrammar", parser.NewStringParser("||", token.ConcatOperator))
	d.Add("BooleanBinaryOperatorGrammar", parser.NewOneOf(
		parser.RefKeyword("AND"),
		parser.RefKeyword("OR"),
	))
	d.Add("BinaryOperatorGrammar", parser.NewOneOf(
		parser.NewRef("ArithmeticBinaryOperatorGrammar"),
		parser.NewRef("StringBinaryOperatorGrammar"),
		parser.NewRef("ComparisonOperatorGrammar"),
		parser.NewRef("BooleanBinaryOperatorGrammar"),
	))
	d.Add("SignedSegmentGrammar", parser.NewOneOf(
		parser.NewStringParser("+", token.BinaryOperator),
		parser.NewStringParser("-", token.BinaryOperator),
	))
	// Named so derived dialects can widen it (e.g. ILIKE).
	d.Add("LikeGrammar", parser.RefKeyword("LIKE"))
}

func addExpressions(d *dialect.Dialect) {
	d.Add("DatatypeIdentifierSegment", parser.NewRegexParser(`[A-Z_][A-Z0-9_]*`, token.Word))
	d.Add("DatatypeSegment", parser.NewNodeMatcher(token.DataType,
		parser.NewSequence(
			parser.NewRef("DatatypeIdentifierSegment"),
			parser.NewBracketed(
				parser.NewDelimited(parser.NewRef("NumericLiteralSegment")),
			).Optional(),
		),
	))

	d.Add("CastFunctionSegment", parser.NewNodeMatcher(token.CastExpression,
		parser.NewSequence(
			parser.RefKeyword("CAST"),
			parser.NewBracketed(
				parser.NewRef("ExpressionSegment"),
				parser.RefKeyword("AS"),
				parser.NewRef("DatatypeSegment"),
			),
		),
	))

	d.Add("FunctionNameSegment", parser.NewNodeMatcher(token.FunctionName,
		parser.NewRef("SingleIdentifierGrammar"),
	))
	d.Add("FunctionSegment", parser.NewNodeMatcher(token.Function,
		parser.NewSequence(
			parser.NewRef("FunctionNameSegment"),
			parser.NewBracketed(
				parser.NewRef("FunctionContentsGrammar").Optional(),
			),
		),
	))
	d.Add("FunctionContentsGrammar", parser.NewOneOf(
		parser.NewRef("StarSegment"),
		parser.NewSequence(
			parser.RefKeyword("DISTINCT").Optional(),
			parser.NewDelimited(parser.NewRef("ExpressionSegment")),
		),
	))

	d.Add("WhenClauseSegment", parser.NewNodeMatcher(token.WhenClause,
		parser.NewSequence(
			parser.RefKeyword("WHEN"),
			parser.NewRef("ExpressionSegment"),
			parser.RefKeyword("THEN"),
			parser.NewRef("ExpressionSegment"),
		),
	))
	d.Add("ElseClauseSegment", parser.NewNodeMatcher(token.ElseClause,
		parser.NewSequence(
			parser.RefKeyword("ELSE"),
			parser.NewRef("ExpressionSegment"),
		),
	))
	d.Add("CaseExpressionSegment", parser.NewNodeMatcher(token.CaseExpression,
		parser.NewSequence(
			parser.RefKeyword("CASE"),
			parser.NewRef("ExpressionSegment").Optional(),
			parser.NewAnyNumberOf(parser.NewRef("WhenClauseSegment")).Min(1),
			parser.NewRef("ElseClauseSegment").Optional(),
			parser.RefKeyword("END"),
		),
	))

	// Terms, optionally followed by shorthand casts (x::int::text).
	d.Add("Expression_C_Grammar", parser.NewSequence(
		parser.NewOneOf(
			parser.NewRef("CaseExpressionSegment"),
			parser.NewRef("CastFunctionSegment"),
			parser.NewRef("FunctionSegment"),
			parser.NewRef("LiteralGrammar"),
			parser.NewRef("ColumnReferenceSegment"),
			parser.NewBracketed(parser.NewRef("ExpressionSegment")),
			parser.NewSequence(
				parser.NewOneOf(parser.NewRef("SignedSegmentGrammar"), parser.RefKeyword("NOT")),
				parser.NewRef("Expression_C_Grammar"),
			),
		),
		parser.NewAnyNumberOf(
			parser.NewSequence(parser.NewRef("CastingOperatorSegment"), parser.NewRef("DatatypeSegment")),
		),
	))

	// Term followed by any number of infix tails. Flat, not
	// precedence-climbing: rules care about coverage, not evaluation order.
	d.Add("Expression_A_Grammar", parser.NewSequence(
		parser.NewRef("Expression_C_Grammar"),
		parser.NewAnyNumberOf(parser.NewOneOf(
			parser.NewSequence(
				parser.NewRef("BinaryOperatorGrammar"),
				parser.NewRef("Expression_C_Grammar"),
			),
			parser.NewSequence(
				parser.RefKeyword("IS"),
				parser.RefKeyword("NOT").Optional(),
				parser.NewOneOf(
					parser.NewRef("NullLiteralSegment"),
					parser.NewRef("BooleanLiteralGrammar"),
				),
			),
			parser.NewSequence(
				parser.RefKeyword("NOT").Optional(),
				parser.RefKeyword("IN"),
				parser.NewBracketed(parser.NewDelimited(parser.NewRef("ExpressionSegment"))),
			),
			parser.NewSequence(
				parser.RefKeyword("NOT").Optional(),
				parser.NewRef("LikeGrammar"),
				parser.NewRef("Expression_C_Grammar"),
			),
			parser.NewSequence(
				parser.RefKeyword("NOT").Optional(),
				parser.RefKeyword("BETWEEN"),
				parser.NewRef("Expression_C_Grammar"),
				parser.RefKeyword("AND"),
				parser.NewRef("Expression_C_Grammar"),
			),
		)),
	))

	d.Add("ExpressionSegment", parser.NewNodeMatcher(token.Expression,
		parser.NewRef("Expression_A_Grammar"),
	))
}

func addClauses(d *dialect.Dialect) {
	d.Add("AliasExpressionSegment", parser.NewNodeMatcher(token.AliasExpression,
		parser.NewSequence(
			parser.RefKeyword("AS").Optional(),
			parser.NewRef("SingleIdentifierGrammar"),
		),
	))

	d.Add("SelectClauseElementSegment", parser.NewNodeMatcher(token.SelectClauseElement,
		parser.NewOneOf(
			parser.NewRef("WildcardExpressionSegment"),
			parser.NewSequence(
				parser.NewRef("ExpressionSegment"),
				parser.NewRef("AliasExpressionSegment").Optional(),
			),
		),
	))

	d.Add("SelectClauseSegment", parser.NewNodeMatcher(token.SelectClause,
		parser.NewSequence(
			parser.RefKeyword("SELECT"),
			parser.NewOneOf(parser.RefKeyword("DISTINCT"), parser.RefKeyword("ALL")).Optional(),
			parser.NewMeta(token.Indent),
			parser.NewDelimited(parser.NewRef("SelectClauseElementSegment")),
			parser.NewMeta(token.Dedent),
		),
	))

	d.Add("FromExpressionElementSegment", parser.NewNodeMatcher(token.FromExpressionElement,
		parser.NewSequence(
			parser.NewRef("TableReferenceSegment"),
			parser.NewRef("AliasExpressionSegment").Optional(),
		),
	))

	d.Add("JoinOnConditionSegment", parser.NewNodeMatcher(token.JoinOnCondition,
		parser.NewSequence(
			parser.RefKeyword("ON"),
			parser.NewConditional(parser.NewMeta(token.Indent), "indented_on_contents"),
			parser.NewRef("ExpressionSegment"),
			parser.NewConditional(parser.NewMeta(token.Dedent), "indented_on_contents"),
		),
	))
	d.Add("JoinUsingConditionSegment", parser.NewNodeMatcher(token.JoinUsingCondition,
		parser.NewSequence(
			parser.RefKeyword("USING"),
			parser.NewBracketed(parser.NewDelimited(parser.NewRef("SingleIdentifierGrammar"))),
		),
	))
	d.Add("JoinTypeGrammar", parser.NewOneOf(
		parser.RefKeyword("INNER"),
		parser.NewSequence(
			parser.NewOneOf(parser.RefKeyword("LEFT"), parser.RefKeyword("RIGHT"), parser.RefKeyword("FULL")),
			parser.RefKeyword("OUTER").Optional(),
		),
		parser.RefKeyword("CROSS"),
	))
	d.Add("JoinClauseSegment", parser.NewNodeMatcher(token.JoinClause,
		parser.NewSequence(
			parser.NewRef("JoinTypeGrammar").Optional(),
			parser.RefKeyword("JOIN"),
			parser.NewRef("FromExpressionElementSegment"),
			parser.NewConditional(parser.NewMeta(token.Indent), "indented_using_on"),
			parser.NewOneOf(
				parser.NewRef("JoinOnConditionSegment"),
				parser.NewRef("JoinUsingConditionSegment"),
			).Optional(),
			parser.NewConditional(parser.NewMeta(token.Dedent), "indented_using_on"),
		),
	))

	d.Add("FromClauseSegment", parser.NewNodeMatcher(token.FromClause,
		parser.NewSequence(
			parser.RefKeyword("FROM"),
			parser.NewDelimited(parser.NewSequence(
				parser.NewRef("FromExpressionElementSegment"),
				parser.NewAnyNumberOf(parser.NewRef("JoinClauseSegment")),
			)),
		),
	))

	d.Add("WhereClauseSegment", parser.NewNodeMatcher(token.WhereClause,
		parser.NewSequence(
			parser.RefKeyword("WHERE"),
			parser.NewMeta(token.Indent),
			parser.NewRef("ExpressionSegment"),
			parser.NewMeta(token.Dedent),
		),
	))

	d.Add("GroupByClauseSegment", parser.NewNodeMatcher(token.GroupByClause,
		parser.NewSequence(
			parser.RefKeyword("GROUP"),
			parser.RefKeyword("BY"),
			parser.NewDelimited(parser.NewOneOf(
				parser.NewRef("ColumnReferenceSegment"),
				parser.NewRef("NumericLiteralSegment"),
				parser.NewRef("ExpressionSegment"),
			)),
		),
	))

	d.Add("HavingClauseSegment", parser.NewNodeMatcher(token.HavingClause,
		parser.NewSequence(
			parser.RefKeyword("HAVING"),
			parser.NewRef("ExpressionSegment"),
		),
	))

	d.Add("OrderByClauseSegment", parser.NewNodeMatcher(token.OrderByClause,
		parser.NewSequence(
			parser.RefKeyword("ORDER"),
			parser.RefKeyword("BY"),
			parser.NewDelimited(parser.NewSequence(
				parser.NewRef("ExpressionSegment"),
				parser.NewOneOf(parser.RefKeyword("ASC"), parser.RefKeyword("DESC")).Optional(),
			)),
		),
	))

	d.Add("LimitClauseSegment", parser.NewNodeMatcher(token.LimitClause,
		parser.NewSequence(
			parser.RefKeyword("LIMIT"),
			parser.NewOneOf(parser.NewRef("NumericLiteralSegment"), parser.RefKeyword("ALL")),
			parser.NewSequence(
				parser.RefKeyword("OFFSET"),
				parser.NewRef("NumericLiteralSegment"),
			).Optional(),
		),
	))
}

func addStatements(d *dialect.Dialect) {
	d.Add("SelectStatementSegment", parser.NewNodeMatcher(token.SelectStatement,
		parser.NewSequence(
			parser.NewRef("SelectClauseSegment"),
			parser.NewRef("FromClauseSegment").Optional(),
			parser.NewRef("WhereClauseSegment").Optional(),
			parser.NewRef("GroupByClauseSegment").Optional(),
			parser.NewRef("HavingClauseSegment").Optional(),
			parser.NewRef("OrderByClauseSegment").Optional(),
			parser.NewRef("LimitClauseSegment").Optional(),
		),
	))

	d.Add("ColumnDefinitionSegment", parser.NewNodeMatcher(token.ColumnDefinition,
		parser.NewSequence(
			parser.NewRef("SingleIdentifierGrammar"),
			parser.NewRef("DatatypeSegment"),
			parser.NewAnyNumberOf(parser.NewOneOf(
				parser.NewSequence(parser.RefKeyword("NOT"), parser.RefKeyword("NULL")),
				parser.RefKeyword("NULL"),
				parser.NewSequence(parser.RefKeyword("PRIMARY"), parser.RefKeyword("KEY")),
				parser.RefKeyword("UNIQUE"),
			)),
		),
	))

	d.Add("CreateTableStatementSegment", parser.NewNodeMatcher(token.CreateTableStatement,
		parser.NewSequence(
			parser.RefKeyword("CREATE"),
			parser.RefKeyword("TABLE"),
			parser.NewSequence(
				parser.RefKeyword("IF"),
				parser.RefKeyword("NOT"),
				parser.RefKeyword("EXISTS"),
			).Optional(),
			parser.NewRef("TableReferenceSegment"),
			parser.NewOneOf(
				parser.NewBracketed(parser.NewDelimited(parser.NewRef("ColumnDefinitionSegment"))),
				parser.NewSequence(parser.RefKeyword("AS"), parser.NewRef("SelectStatementSegment")),
			),
		),
	))

	d.Add("StatementSegment", parser.NewNodeMatcher(token.Statement,
		parser.NewOneOf(
			parser.NewRef("SelectStatementSegment"),
			parser.NewRef("CreateTableStatementSegment"),
		),
	))

	d.Add("FileSegment", parser.NewDelimited(parser.NewRef("StatementSegment")).
		Delimiter(parser.NewRef("DelimiterGrammar")).
		AllowTrailing())
}
