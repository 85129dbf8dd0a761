package parser

import (
	"sync/atomic"

	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

// Registry resolves names used by grammars: grammar rules, keyword sets,
// bracket pairs and boolean configuration flags. Implemented by
// dialect.Dialect. Read-only during parsing.
type Registry interface {
	Name() string
	// GrammarByName returns the grammar bound to name. An unknown name is
	// a dialect-definition bug and panics.
	GrammarByName(name string) Matchable
	KeywordSet(name string) map[string]struct{}
	BracketPair(key string) (BracketPair, bool)
	BoolFlag(name string) bool
}

// BracketPair defines a start/end bracket pairing for Bracketed grammars.
// StartRef and EndRef name the grammars matching the bracket tokens;
// StartKind and EndKind identify the raw bracket leaves for greedy
// scanning.
type BracketPair struct {
	Key        string
	StartRef   string
	EndRef     string
	StartKind  token.SyntaxKind
	EndKind    token.SyntaxKind
	Persistent bool
}

// MatchResult is the outcome of a grammar match attempt. A failed match
// consumes nothing: callers rely on NextIdx being the original index so
// alternatives can be retried. A zero-length success (OK with no
// consumption) is distinct from failure.
type MatchResult struct {
	OK      bool
	Matched []*Segment
	NextIdx int
}

func noMatch(idx int) MatchResult {
	return MatchResult{NextIdx: idx}
}

func emptyMatch(idx int) MatchResult {
	return MatchResult{OK: true, NextIdx: idx}
}

// Matchable is the capability shared by all grammar combinators: attempt
// to consume segments starting at idx, building zero or more tree nodes.
type Matchable interface {
	Match(segs []*Segment, idx int, ctx *Context) MatchResult
	// IsOptional reports whether an enclosing Sequence may skip this
	// element when it fails.
	IsOptional() bool
	// ID is a stable identity used for match memoization.
	ID() uint32
}

var nextGrammarID atomic.Uint32

// grammarBase carries the identity and optionality shared by combinators.
type grammarBase struct {
	id       uint32
	optional bool
}

func newGrammarBase() grammarBase {
	return grammarBase{id: nextGrammarID.Add(1)}
}

func (g *grammarBase) ID() uint32 { return g.id }

func (g *grammarBase) IsOptional() bool { return g.optional }

// skipNonCode returns the run of trivia (whitespace, comments) starting at
// idx and the index of the next code segment. The end-of-file marker is
// never skipped.
func skipNonCode(segs []*Segment, idx int) ([]*Segment, int) {
	start := idx
	for idx < len(segs) && !segs[idx].IsCode() && !segs[idx].IsType(token.EndOfFile) {
		idx++
	}
	return segs[start:idx], idx
}

// matchLongest tries every alternative at idx and returns the one that
// consumes the most segments. Ties go to the earlier alternative, so
// declaration order stays meaningful for disambiguation.
func matchLongest(elements []Matchable, segs []*Segment, idx int, ctx *Context) (MatchResult, Matchable) {
	best := noMatch(idx)
	var bestEl Matchable
	for _, el := range elements {
		res := ctx.Match(el, segs, idx)
		if !res.OK {
			continue
		}
		if !best.OK || res.NextIdx > best.NextIdx {
			best = res
			bestEl = el
		}
	}
	return best, bestEl
}

// Nothing is a grammar that never matches. Dialects bind it to rule names
// they want to disable.
type Nothing struct {
	grammarBase
}

// NewNothing returns a grammar that always fails cleanly.
func NewNothing() *Nothing {
	return &Nothing{grammarBase: newGrammarBase()}
}

// Match always fails without consuming anything.
func (n *Nothing) Match(_ []*Segment, idx int, _ *Context) MatchResult {
	return noMatch(idx)
}

// Anything consumes every remaining segment up to (but not including) the
// end-of-file marker.
type Anything struct {
	grammarBase
}

// NewAnything returns a grammar consuming all remaining content.
func NewAnything() *Anything {
	return &Anything{grammarBase: newGrammarBase()}
}

// Match consumes to the end of input.
func (a *Anything) Match(segs []*Segment, idx int, _ *Context) MatchResult {
	end := idx
	for end < len(segs) && !segs[end].IsType(token.EndOfFile) {
		end++
	}
	if end == idx {
		return noMatch(idx)
	}
	return MatchResult{OK: true, Matched: segs[idx:end], NextIdx: end}
}

// Meta emits a zero-length marker segment (indent or dedent) at the
// current position. It always succeeds and never consumes input.
type Meta struct {
	grammarBase
	kind token.SyntaxKind
}

// NewMeta returns a grammar emitting the given marker kind.
func NewMeta(kind token.SyntaxKind) *Meta {
	return &Meta{grammarBase: newGrammarBase(), kind: kind}
}

// Match emits the marker at the position of the next segment.
func (m *Meta) Match(segs []*Segment, idx int, _ *Context) MatchResult {
	return MatchResult{
		OK:      true,
		Matched: []*Segment{NewMetaSegment(m.kind, metaPosition(segs, idx))},
		NextIdx: idx,
	}
}

// metaPosition returns the point marker where a zero-width segment at idx
// belongs.
func metaPosition(segs []*Segment, idx int) PositionMarker {
	if idx < len(segs) {
		return segs[idx].Pos().StartPoint()
	}
	if len(segs) > 0 {
		return segs[len(segs)-1].Pos().EndPoint()
	}
	return PositionMarker{}
}

// NodeMatcher wraps an inner grammar's match into a typed tree node. This
// is how dialects define named segment productions ("SelectStatement",
// "WhereClause").
type NodeMatcher struct {
	grammarBase
	kind  token.SyntaxKind
	inner Matchable
}

// NewNodeMatcher builds a node of the given kind from the inner grammar's
// match.
func NewNodeMatcher(kind token.SyntaxKind, inner Matchable) *NodeMatcher {
	return &NodeMatcher{grammarBase: newGrammarBase(), kind: kind, inner: inner}
}

// Optional marks the node as skippable inside a Sequence.
func (n *NodeMatcher) Optional() *NodeMatcher {
	n.optional = true
	return n
}

// Match delegates to the inner grammar and wraps its result.
func (n *NodeMatcher) Match(segs []*Segment, idx int, ctx *Context) MatchResult {
	res := ctx.Match(n.inner, segs, idx)
	if !res.OK {
		return noMatch(idx)
	}
	if len(res.Matched) == 0 {
		return emptyMatch(idx)
	}
	return MatchResult{
		OK:      true,
		Matched: []*Segment{NewNode(n.kind, res.Matched...)},
		NextIdx: res.NextIdx,
	}
}
