package parser

import "strings"

// Ref is an indirect reference to a named grammar in the dialect. The
// name resolves lazily at match time, so a dialect can override a rule
// after base definitions reference it and every referencing site picks up
// the override.
type Ref struct {
	grammarBase
	name    string
	exclude Matchable
}

// NewRef builds a reference to the named grammar.
func NewRef(name string) *Ref {
	return &Ref{grammarBase: newGrammarBase(), name: name}
}

// RefKeyword builds a reference to the auto-generated keyword grammar for
// kw (created by dialect expansion from the keyword sets).
func RefKeyword(kw string) *Ref {
	return NewRef(strings.ToUpper(kw) + "KeywordSegment")
}

// Optional marks the reference as skippable inside a Sequence.
func (r *Ref) Optional() *Ref {
	r.optional = true
	return r
}

// Exclude makes the reference fail whenever m matches at the same
// position, before the target grammar is even consulted. Used to carve
// reserved words out of identifier rules.
func (r *Ref) Exclude(m Matchable) *Ref {
	r.exclude = m
	return r
}

// Match resolves the target grammar and delegates. Resolution failure is a
// dialect-definition bug and panics inside GrammarByName.
func (r *Ref) Match(segs []*Segment, idx int, ctx *Context) MatchResult {
	if r.exclude != nil {
		if res := ctx.Match(r.exclude, segs, idx); res.OK {
			return noMatch(idx)
		}
	}
	target := ctx.Registry.GrammarByName(r.name)
	return ctx.Match(target, segs, idx)
}
