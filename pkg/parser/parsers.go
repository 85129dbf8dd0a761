package parser

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

// Leaf parsers: grammars matching exactly one code token and re-typing it.
// They never skip trivia; composites position them on code.

// codeAt returns the code segment at idx, or nil if idx is out of range or
// the segment there is not code.
func codeAt(segs []*Segment, idx int) *Segment {
	if idx >= len(segs) {
		return nil
	}
	if s := segs[idx]; s.IsCode() {
		return s
	}
	return nil
}

// KeywordParser matches one code token case-insensitively against a fixed
// keyword and re-types it as a keyword leaf.
type KeywordParser struct {
	grammarBase
	keyword string
}

// NewKeyword builds a parser for the given keyword.
func NewKeyword(keyword string) *KeywordParser {
	return &KeywordParser{grammarBase: newGrammarBase(), keyword: strings.ToUpper(keyword)}
}

// Optional marks the keyword as skippable inside a Sequence.
func (p *KeywordParser) Optional() *KeywordParser {
	p.optional = true
	return p
}

// Match consumes one matching token.
func (p *KeywordParser) Match(segs []*Segment, idx int, _ *Context) MatchResult {
	s := codeAt(segs, idx)
	if s == nil || !strings.EqualFold(s.Raw(), p.keyword) {
		return noMatch(idx)
	}
	return MatchResult{
		OK:      true,
		Matched: []*Segment{NewRawSegment(token.Keyword, s.Raw(), s.Pos())},
		NextIdx: idx + 1,
	}
}

// StringParser matches one code token against a fixed string
// (case-insensitive) and re-types it to the given kind. Used for operators
// and punctuation where the lexer emits a generic symbol kind.
type StringParser struct {
	grammarBase
	template string
	kind     token.SyntaxKind
}

// NewStringParser builds a parser re-typing the template string to kind.
func NewStringParser(template string, kind token.SyntaxKind) *StringParser {
	return &StringParser{grammarBase: newGrammarBase(), template: template, kind: kind}
}

// Optional marks the parser as skippable inside a Sequence.
func (p *StringParser) Optional() *StringParser {
	p.optional = true
	return p
}

// Match consumes one matching token.
func (p *StringParser) Match(segs []*Segment, idx int, _ *Context) MatchResult {
	s := codeAt(segs, idx)
	if s == nil || !strings.EqualFold(s.Raw(), p.template) {
		return noMatch(idx)
	}
	return MatchResult{
		OK:      true,
		Matched: []*Segment{NewRawSegment(p.kind, s.Raw(), s.Pos())},
		NextIdx: idx + 1,
	}
}

// TypedParser matches one code token by its lexed kind and re-types it.
type TypedParser struct {
	grammarBase
	from token.SyntaxKind
	to   token.SyntaxKind
}

// NewTypedParser builds a parser accepting tokens lexed as from and
// re-typing them as to.
func NewTypedParser(from, to token.SyntaxKind) *TypedParser {
	return &TypedParser{grammarBase: newGrammarBase(), from: from, to: to}
}

// Optional marks the parser as skippable inside a Sequence.
func (p *TypedParser) Optional() *TypedParser {
	p.optional = true
	return p
}

// Match consumes one matching token.
func (p *TypedParser) Match(segs []*Segment, idx int, _ *Context) MatchResult {
	s := codeAt(segs, idx)
	if s == nil || s.Kind() != p.from {
		return noMatch(idx)
	}
	out := s
	if p.to != p.from {
		out = NewRawSegment(p.to, s.Raw(), s.Pos())
	}
	return MatchResult{OK: true, Matched: []*Segment{out}, NextIdx: idx + 1}
}

// RegexParser matches one code token whose full raw text matches the
// expression, re-typing it to the given kind.
type RegexParser struct {
	grammarBase
	re   *regexp2.Regexp
	anti *regexp2.Regexp
	kind token.SyntaxKind
}

// NewRegexParser builds a parser over the given expression. An invalid
// expression is a dialect-definition bug and panics.
func NewRegexParser(expr string, kind token.SyntaxKind) *RegexParser {
	return &RegexParser{
		grammarBase: newGrammarBase(),
		re:          regexp2.MustCompile(expr, regexp2.IgnoreCase),
		kind:        kind,
	}
}

// AntiTemplate rejects tokens whose full text matches the given expression
// even when the main expression matches.
func (p *RegexParser) AntiTemplate(expr string) *RegexParser {
	p.anti = regexp2.MustCompile(expr, regexp2.IgnoreCase)
	return p
}

// Optional marks the parser as skippable inside a Sequence.
func (p *RegexParser) Optional() *RegexParser {
	p.optional = true
	return p
}

func fullMatch(re *regexp2.Regexp, s string) bool {
	m, err := re.FindStringMatch(s)
	return err == nil && m != nil && m.Index == 0 && m.Length == len(s)
}

// Match consumes one matching token.
func (p *RegexParser) Match(segs []*Segment, idx int, _ *Context) MatchResult {
	s := codeAt(segs, idx)
	if s == nil || !fullMatch(p.re, s.Raw()) {
		return noMatch(idx)
	}
	if p.anti != nil && fullMatch(p.anti, s.Raw()) {
		return noMatch(idx)
	}
	return MatchResult{
		OK:      true,
		Matched: []*Segment{NewRawSegment(p.kind, s.Raw(), s.Pos())},
		NextIdx: idx + 1,
	}
}

// KeywordSetParser matches one code token against a named keyword set from
// the dialect, re-typing it to the given kind. The set is resolved at
// match time so dialect mutations made before Expand are honored.
type KeywordSetParser struct {
	grammarBase
	setName string
	kind    token.SyntaxKind
}

// NewKeywordSetParser builds a parser over the named keyword set.
func NewKeywordSetParser(setName string, kind token.SyntaxKind) *KeywordSetParser {
	return &KeywordSetParser{grammarBase: newGrammarBase(), setName: setName, kind: kind}
}

// Optional marks the parser as skippable inside a Sequence.
func (p *KeywordSetParser) Optional() *KeywordSetParser {
	p.optional = true
	return p
}

// Match consumes one token whose uppercased text is in the set.
func (p *KeywordSetParser) Match(segs []*Segment, idx int, ctx *Context) MatchResult {
	s := codeAt(segs, idx)
	if s == nil {
		return noMatch(idx)
	}
	set := ctx.Registry.KeywordSet(p.setName)
	if _, ok := set[strings.ToUpper(s.Raw())]; !ok {
		return noMatch(idx)
	}
	return MatchResult{
		OK:      true,
		Matched: []*Segment{NewRawSegment(p.kind, s.Raw(), s.Pos())},
		NextIdx: idx + 1,
	}
}
