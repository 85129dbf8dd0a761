// Package token defines the syntax kinds that classify parse-tree segments.
//
// Core kinds are defined as constants (IDs 0-999) for switch performance.
// Dialect-specific kinds are registered dynamically via Register().
package token

import "fmt"

// SyntaxKind classifies a segment in the parse tree. Leaf kinds are
// produced by the lexer; structural kinds are produced by the parser.
type SyntaxKind int32

const (
	// Special kinds
	EndOfFile SyntaxKind = iota
	Unlexable
	Unparsable

	// Lexical (leaf) kinds
	Whitespace
	Newline
	InlineComment
	BlockComment
	Word
	Keyword
	NakedIdentifier
	QuotedIdentifier
	NumericLiteral
	SingleQuote
	DoubleQuote
	NullLiteral
	BooleanLiteral
	Symbol
	Comma
	Dot
	Star
	Semicolon
	Colon
	StartBracket
	EndBracket
	StartSquareBracket
	EndSquareBracket
	BinaryOperator
	ComparisonOperator
	CastingOperator
	ConcatOperator
	LambdaOperator

	// Meta kinds (zero-length markers)
	Indent
	Dedent
	TemplatePlaceholder

	// Structural kinds
	File
	Statement
	SelectStatement
	SelectClause
	SelectClauseElement
	WildcardExpression
	FromClause
	FromExpressionElement
	TableReference
	AliasExpression
	JoinClause
	JoinOnCondition
	JoinUsingCondition
	WhereClause
	GroupByClause
	HavingClause
	OrderByClause
	LimitClause
	Expression
	ColumnReference
	ObjectReference
	Function
	FunctionName
	CaseExpression
	WhenClause
	ElseClause
	Bracketed
	CastExpression
	CreateTableStatement
	ColumnDefinition
	DataType

	// Sentinel - dynamic kinds start after this
	maxBuiltin SyntaxKind = 999
)

// String returns a human-readable representation of the syntax kind.
func (k SyntaxKind) String() string {
	if name, ok := getDynamicName(k); ok {
		return name
	}
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", k)
}

var kindNames = map[SyntaxKind]string{
	EndOfFile:  "end_of_file",
	Unlexable:  "unlexable",
	Unparsable: "unparsable",

	Whitespace:         "whitespace",
	Newline:            "newline",
	InlineComment:      "inline_comment",
	BlockComment:       "block_comment",
	Word:               "word",
	Keyword:            "keyword",
	NakedIdentifier:    "naked_identifier",
	QuotedIdentifier:   "quoted_identifier",
	NumericLiteral:     "numeric_literal",
	SingleQuote:        "single_quote",
	DoubleQuote:        "double_quote",
	NullLiteral:        "null_literal",
	BooleanLiteral:     "boolean_literal",
	Symbol:             "symbol",
	Comma:              "comma",
	Dot:                "dot",
	Star:               "star",
	Semicolon:          "semicolon",
	Colon:              "colon",
	StartBracket:       "start_bracket",
	EndBracket:         "end_bracket",
	StartSquareBracket: "start_square_bracket",
	EndSquareBracket:   "end_square_bracket",
	BinaryOperator:     "binary_operator",
	ComparisonOperator: "comparison_operator",
	CastingOperator:    "casting_operator",
	ConcatOperator:     "concat_operator",
	LambdaOperator:     "lambda_operator",

	Indent:              "indent",
	Dedent:              "dedent",
	TemplatePlaceholder: "placeholder",

	File:                  "file",
	Statement:             "statement",
	SelectStatement:       "select_statement",
	SelectClause:          "select_clause",
	SelectClauseElement:   "select_clause_element",
	WildcardExpression:    "wildcard_expression",
	FromClause:            "from_clause",
	FromExpressionElement: "from_expression_element",
	TableReference:        "table_reference",
	AliasExpression:       "alias_expression",
	JoinClause:            "join_clause",
	JoinOnCondition:       "join_on_condition",
	JoinUsingCondition:    "join_using_condition",
	WhereClause:           "where_clause",
	GroupByClause:         "groupby_clause",
	HavingClause:          "having_clause",
	OrderByClause:         "orderby_clause",
	LimitClause:           "limit_clause",
	Expression:            "expression",
	ColumnReference:       "column_reference",
	ObjectReference:       "object_reference",
	Function:              "function",
	FunctionName:          "function_name",
	CaseExpression:        "case_expression",
	WhenClause:            "when_clause",
	ElseClause:            "else_clause",
	Bracketed:             "bracketed",
	CastExpression:        "cast_expression",
	CreateTableStatement:  "create_table_statement",
	ColumnDefinition:      "column_definition",
	DataType:              "data_type",
}

// IsMeta returns true for zero-length marker kinds inserted by the parser.
func (k SyntaxKind) IsMeta() bool {
	return k == Indent || k == Dedent || k == TemplatePlaceholder
}

// IsWhitespace returns true for whitespace and newline kinds.
func (k SyntaxKind) IsWhitespace() bool {
	return k == Whitespace || k == Newline
}

// IsComment returns true for comment kinds.
func (k SyntaxKind) IsComment() bool {
	return k == InlineComment || k == BlockComment
}

// IsCode returns true for kinds that participate in grammar matching.
// Whitespace, comments, meta markers and the end-of-file marker are not code.
func (k SyntaxKind) IsCode() bool {
	return !k.IsWhitespace() && !k.IsComment() && !k.IsMeta() && k != EndOfFile
}
