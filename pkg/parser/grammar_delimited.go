package parser

// Delimited matches one or more occurrences of its content alternatives
// separated by a delimiter grammar (comma by default). Trivia around
// delimiters is collected into the match. A trailing delimiter is
// rejected unless AllowTrailing is set.
type Delimited struct {
	grammarBase
	elements      []Matchable
	delimiter     Matchable
	minDelimiters int
	allowTrailing bool
}

// NewDelimited builds a comma-delimited list over the given content
// alternatives.
func NewDelimited(elements ...Matchable) *Delimited {
	return &Delimited{
		grammarBase: newGrammarBase(),
		elements:    elements,
		delimiter:   NewRef("CommaSegment"),
	}
}

// Optional marks the list as skippable inside a Sequence.
func (d *Delimited) Optional() *Delimited {
	d.optional = true
	return d
}

// Delimiter replaces the separator grammar.
func (d *Delimited) Delimiter(m Matchable) *Delimited {
	d.delimiter = m
	return d
}

// MinDelimiters requires at least n separators (so n+1 content items).
func (d *Delimited) MinDelimiters(n int) *Delimited {
	d.minDelimiters = n
	return d
}

// AllowTrailing permits a dangling delimiter after the last content item.
func (d *Delimited) AllowTrailing() *Delimited {
	d.allowTrailing = true
	return d
}

// Match consumes content (delimiter content)* with optional trailing
// delimiter.
func (d *Delimited) Match(segs []*Segment, idx int, ctx *Context) MatchResult {
	first, _ := matchLongest(d.elements, segs, idx, ctx)
	if !first.OK {
		return noMatch(idx)
	}

	acc := append([]*Segment(nil), first.Matched...)
	pos := first.NextIdx
	delimiters := 0

	for {
		triviaBefore, p := skipNonCode(segs, pos)
		delim := ctx.Match(d.delimiter, segs, p)
		if !delim.OK {
			break
		}

		triviaAfter, p2 := skipNonCode(segs, delim.NextIdx)
		content, _ := matchLongest(d.elements, segs, p2, ctx)
		if !content.OK {
			if d.allowTrailing {
				acc = append(acc, triviaBefore...)
				acc = append(acc, delim.Matched...)
				pos = delim.NextIdx
				delimiters++
			}
			break
		}

		acc = append(acc, triviaBefore...)
		acc = append(acc, delim.Matched...)
		acc = append(acc, triviaAfter...)
		acc = append(acc, content.Matched...)
		pos = content.NextIdx
		delimiters++
	}

	if delimiters < d.minDelimiters {
		return noMatch(idx)
	}
	return MatchResult{OK: true, Matched: acc, NextIdx: pos}
}
