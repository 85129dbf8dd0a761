package parser

import (
	"fmt"

	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

// ParseMode controls how Bracketed handles content its inner grammar
// cannot fully consume.
type ParseMode int

const (
	// ParseModeStrict fails the whole bracketed match unless the inner
	// grammar consumes everything up to the closing bracket.
	ParseModeStrict ParseMode = iota
	// ParseModeGreedy always claims up to the matching closing bracket
	// (honoring nesting); interior content the inner grammar cannot
	// consume is wrapped as an unparsable section instead of failing.
	ParseModeGreedy
)

// Bracketed matches its inner elements (as a sequence) enclosed in a
// bracket pair from the dialect. The result is a single bracketed node
// containing the bracket tokens, interior trivia and the inner match.
type Bracketed struct {
	grammarBase
	inner   *Sequence
	pairKey string
	mode    ParseMode
}

// NewBracketed builds a round-bracketed grammar over the given elements.
func NewBracketed(elements ...Matchable) *Bracketed {
	return &Bracketed{
		grammarBase: newGrammarBase(),
		inner:       NewSequence(elements...),
		pairKey:     "round",
	}
}

// Optional marks the bracketed group as skippable inside a Sequence.
func (b *Bracketed) Optional() *Bracketed {
	b.optional = true
	return b
}

// PairKey selects a different bracket pair ("square", "curly").
func (b *Bracketed) PairKey(key string) *Bracketed {
	b.pairKey = key
	return b
}

// Square is shorthand for PairKey("square").
func (b *Bracketed) Square() *Bracketed {
	return b.PairKey("square")
}

// Greedy switches to ParseModeGreedy.
func (b *Bracketed) Greedy() *Bracketed {
	b.mode = ParseModeGreedy
	return b
}

// Match consumes an opening bracket, interior, and the closing bracket.
func (b *Bracketed) Match(segs []*Segment, idx int, ctx *Context) MatchResult {
	pair, ok := ctx.Registry.BracketPair(b.pairKey)
	if !ok {
		panic(fmt.Sprintf("dialect %q has no bracket pair %q", ctx.Registry.Name(), b.pairKey))
	}

	startG := ctx.Registry.GrammarByName(pair.StartRef)
	endG := ctx.Registry.GrammarByName(pair.EndRef)

	open := ctx.Match(startG, segs, idx)
	if !open.OK {
		return noMatch(idx)
	}

	// Strict attempt first: inner sequence then immediately (modulo
	// trivia) the closing bracket.
	leadTrivia, innerStart := skipNonCode(segs, open.NextIdx)
	inner := ctx.Match(b.inner, segs, innerStart)
	if inner.OK {
		tailTrivia, closeIdx := skipNonCode(segs, inner.NextIdx)
		closing := ctx.Match(endG, segs, closeIdx)
		if closing.OK {
			children := append([]*Segment(nil), open.Matched...)
			children = append(children, leadTrivia...)
			children = append(children, inner.Matched...)
			children = append(children, tailTrivia...)
			children = append(children, closing.Matched...)
			return MatchResult{
				OK:      true,
				Matched: []*Segment{NewNode(token.Bracketed, children...)},
				NextIdx: closing.NextIdx,
			}
		}
	}

	if b.mode == ParseModeStrict {
		return noMatch(idx)
	}

	// Greedy: scan raw bracket kinds to the matching close, honoring
	// nesting, and wrap whatever the inner grammar could not consume.
	depth := 1
	j := open.NextIdx
	for j < len(segs) {
		switch segs[j].Kind() {
		case pair.StartKind:
			depth++
		case pair.EndKind:
			depth--
		case token.EndOfFile:
			return noMatch(idx)
		}
		if depth == 0 {
			break
		}
		j++
	}
	if depth != 0 {
		return noMatch(idx)
	}

	children := append([]*Segment(nil), open.Matched...)
	if interior := segs[open.NextIdx:j]; len(interior) > 0 {
		children = append(children, NewNode(token.Unparsable, interior...))
	}
	closing := ctx.Match(endG, segs, j)
	if !closing.OK {
		// The scan stopped on the right raw kind, so the end grammar must
		// accept it.
		panic(fmt.Sprintf("bracket pair %q end grammar rejected %q", b.pairKey, segs[j].Raw()))
	}
	children = append(children, closing.Matched...)

	return MatchResult{
		OK:      true,
		Matched: []*Segment{NewNode(token.Bracketed, children...)},
		NextIdx: closing.NextIdx,
	}
}
