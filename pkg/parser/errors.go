package parser

import "fmt"

// LexError reports a span of input no lexer matcher could classify. It is
// a lint-style violation, not a failure: lexing always terminates with a
// full token stream and unlexable spans become explicit Unlexable tokens.
type LexError struct {
	Pos     PositionMarker
	Message string
}

func (e *LexError) Error() string {
	line, col := e.Pos.LineCol()
	return fmt.Sprintf("lex error at line %d, column %d: %s", line, col, e.Message)
}

// ParseError reports that the root grammar could not consume the full
// token stream. It carries the position of first failure. Recoverable at
// the caller level (report and skip the file), not by retry.
type ParseError struct {
	Pos     PositionMarker
	Message string
}

func (e *ParseError) Error() string {
	line, col := e.Pos.LineCol()
	return fmt.Sprintf("parse error at line %d, column %d: %s", line, col, e.Message)
}
