package parser

// Sequence matches its elements in order. Non-code segments (whitespace,
// comments) between elements are collected into the match so no token is
// lost. An element that fails is skipped if it reports itself optional;
// otherwise the whole sequence fails without consuming anything.
type Sequence struct {
	grammarBase
	elements  []Matchable
	allowGaps bool
}

// NewSequence builds a sequence over the given elements, allowing trivia
// gaps between them.
func NewSequence(elements ...Matchable) *Sequence {
	return &Sequence{grammarBase: newGrammarBase(), elements: elements, allowGaps: true}
}

// Optional marks the sequence as skippable inside an enclosing Sequence.
func (s *Sequence) Optional() *Sequence {
	s.optional = true
	return s
}

// DisallowGaps requires elements to be adjacent with no trivia between
// them. Used for compound tokens like multi-part object references.
func (s *Sequence) DisallowGaps() *Sequence {
	s.allowGaps = false
	return s
}

// Match attempts all elements in order.
func (s *Sequence) Match(segs []*Segment, idx int, ctx *Context) MatchResult {
	var acc []*Segment
	pos := idx

	for _, el := range s.elements {
		gapStart := pos
		var trivia []*Segment
		if s.allowGaps && len(acc) > 0 {
			trivia, pos = skipNonCode(segs, pos)
		}

		res := ctx.Match(el, segs, pos)
		if !res.OK {
			if el.IsOptional() {
				pos = gapStart
				continue
			}
			return noMatch(idx)
		}

		// A zero-width success claims nothing, including the gap before it;
		// the trivia stays available for whatever follows the sequence.
		if res.NextIdx == pos && len(res.Matched) == 0 {
			pos = gapStart
			continue
		}

		acc = append(acc, trivia...)
		acc = append(acc, res.Matched...)
		pos = res.NextIdx
	}

	return MatchResult{OK: true, Matched: acc, NextIdx: pos}
}
