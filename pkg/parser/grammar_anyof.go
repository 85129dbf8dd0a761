package parser

// OneOf matches exactly one of its alternatives: the longest successful
// match wins, with ties broken by declaration order.
type OneOf struct {
	grammarBase
	elements []Matchable
}

// NewOneOf builds an alternation over the given elements.
func NewOneOf(elements ...Matchable) *OneOf {
	return &OneOf{grammarBase: newGrammarBase(), elements: elements}
}

// Optional marks the alternation as skippable inside a Sequence.
func (o *OneOf) Optional() *OneOf {
	o.optional = true
	return o
}

// Match picks the longest-matching alternative.
func (o *OneOf) Match(segs []*Segment, idx int, ctx *Context) MatchResult {
	res, _ := matchLongest(o.elements, segs, idx, ctx)
	return res
}

// AnyNumberOf matches its alternatives repeatedly, longest-first each
// round, with trivia gaps collected between rounds. Bounded by optional
// minimum and maximum counts, and optionally a per-alternative cap.
type AnyNumberOf struct {
	grammarBase
	elements      []Matchable
	minTimes      int
	maxTimes      int // 0 = unbounded
	maxPerElement int // 0 = unbounded
	allowGaps     bool
}

// NewAnyNumberOf builds a repetition over the given elements with no
// bounds.
func NewAnyNumberOf(elements ...Matchable) *AnyNumberOf {
	return &AnyNumberOf{grammarBase: newGrammarBase(), elements: elements, allowGaps: true}
}

// Optional marks the repetition as skippable inside a Sequence. A
// repetition with minTimes zero already succeeds on no input; Optional
// additionally lets a Sequence skip it when a bounded form fails.
func (a *AnyNumberOf) Optional() *AnyNumberOf {
	a.optional = true
	return a
}

// Min sets the minimum number of successful rounds.
func (a *AnyNumberOf) Min(n int) *AnyNumberOf {
	a.minTimes = n
	return a
}

// Max sets the maximum number of rounds.
func (a *AnyNumberOf) Max(n int) *AnyNumberOf {
	a.maxTimes = n
	return a
}

// MaxPerElement caps how many rounds any single alternative may win.
func (a *AnyNumberOf) MaxPerElement(n int) *AnyNumberOf {
	a.maxPerElement = n
	return a
}

// DisallowGaps requires rounds to be adjacent with no trivia between them.
func (a *AnyNumberOf) DisallowGaps() *AnyNumberOf {
	a.allowGaps = false
	return a
}

// Match runs rounds until no alternative matches or a bound is hit.
func (a *AnyNumberOf) Match(segs []*Segment, idx int, ctx *Context) MatchResult {
	var acc []*Segment
	pos := idx
	count := 0
	perElement := make(map[uint32]int)

	for a.maxTimes == 0 || count < a.maxTimes {
		gapStart := pos
		var trivia []*Segment
		if a.allowGaps && count > 0 {
			trivia, pos = skipNonCode(segs, pos)
		}

		best := noMatch(pos)
		var bestEl Matchable
		for _, el := range a.elements {
			if a.maxPerElement > 0 && perElement[el.ID()] >= a.maxPerElement {
				continue
			}
			res := ctx.Match(el, segs, pos)
			if res.OK && (!best.OK || res.NextIdx > best.NextIdx) {
				best = res
				bestEl = el
			}
		}

		// A zero-consumption round would loop forever.
		if !best.OK || best.NextIdx == pos {
			pos = gapStart
			break
		}

		acc = append(acc, trivia...)
		acc = append(acc, best.Matched...)
		pos = best.NextIdx
		count++
		perElement[bestEl.ID()]++
	}

	if count < a.minTimes {
		return noMatch(idx)
	}
	return MatchResult{OK: true, Matched: acc, NextIdx: pos}
}
