package ansi

import (
	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

// lexerMatchers returns the ANSI matcher list. Order is lexical
// precedence: comments before operators that share a prefix, multi-char
// operators before their single-char prefixes, words last.
func lexerMatchers() []*parser.Matcher {
	return []*parser.Matcher{
		parser.RegexMatcher("whitespace", `[^\S\r\n]+`, parser.KindCtor(token.Whitespace)),
		parser.RegexMatcher("inline_comment", `(--|#)[^\n]*`, parser.KindCtor(token.InlineComment)),
		// Block comments lex as one unit, then subdivide on newlines so
		// every line of the comment is its own segment; leading indent on
		// continuation lines peels off as whitespace.
		parser.RegexMatcher("block_comment", `\/\*([^\*]|\*(?!\/))*\*\/`, parser.KindCtor(token.BlockComment)).
			Subdivider(parser.RegexPattern("newline", `\r\n|\n`, parser.KindCtor(token.Newline))).
			PostSubdivide(parser.RegexPattern("whitespace", `[^\S\r\n]+`, parser.KindCtor(token.Whitespace))),
		parser.RegexMatcher("single_quote", `'([^'\\]|\\.|'')*'`, parser.KindCtor(token.SingleQuote)),
		parser.RegexMatcher("double_quote", `"([^"\\]|\\.)*"`, parser.KindCtor(token.DoubleQuote)),
		parser.RegexMatcher("numeric_literal", `(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`, parser.KindCtor(token.NumericLiteral)),
		parser.RegexMatcher("newline", `\r\n|\n`, parser.KindCtor(token.Newline)),
		parser.StringMatcher("casting_operator", "::", parser.KindCtor(token.CastingOperator)),
		parser.StringMatcher("concat_operator", "||", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("not_equal", "!=", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("angle_not_equal", "<>", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("greater_than_or_equal", ">=", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("less_than_or_equal", "<=", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("equals", "=", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("greater_than", ">", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("less_than", "<", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("comma", ",", parser.KindCtor(token.Comma)),
		parser.StringMatcher("dot", ".", parser.KindCtor(token.Dot)),
		parser.StringMatcher("semicolon", ";", parser.KindCtor(token.Semicolon)),
		parser.StringMatcher("colon", ":", parser.KindCtor(token.Colon)),
		parser.StringMatcher("star", "*", parser.KindCtor(token.Star)),
		parser.StringMatcher("start_bracket", "(", parser.KindCtor(token.StartBracket)),
		parser.StringMatcher("end_bracket", ")", parser.KindCtor(token.EndBracket)),
		parser.StringMatcher("start_square_bracket", "[", parser.KindCtor(token.StartSquareBracket)),
		parser.StringMatcher("end_square_bracket", "]", parser.KindCtor(token.EndSquareBracket)),
		parser.StringMatcher("plus", "+", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("minus", "-", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("divide", "/", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("percent", "%", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("ampersand", "&", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("vertical_bar", "|", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("caret", "^", parser.KindCtor(token.Symbol)),
		parser.StringMatcher("tilde", "~", parser.KindCtor(token.Symbol)),
		parser.RegexMatcher("word", `[0-9a-zA-Z_]+`, parser.KindCtor(token.Word)),
	}
}
