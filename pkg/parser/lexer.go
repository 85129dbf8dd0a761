package parser

import (
	"fmt"

	"github.com/sqlsleuth/sqlsleuth/pkg/templater"
	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

// Lexer converts raw or template-expanded SQL into a stream of positioned
// leaf segments using a dialect's ordered matcher list. Matcher order is a
// semantic contract: lexing is first-match-wins, so dialects control
// lexical precedence by where they insert their matchers.
type Lexer struct {
	matchers   []*Matcher
	lastResort *Matcher
}

// NewLexer creates a lexer over the given ordered matcher list.
func NewLexer(matchers []*Matcher) *Lexer {
	return &Lexer{
		matchers: matchers,
		// Maximal run of non-tab/non-newline/non-dot characters. Applied
		// only when no ordinary matcher can advance, so the overall lex
		// never fails outright.
		lastResort: RegexMatcher("<unlexable>", `[^\t\n.]*`, KindCtor(token.Unlexable)),
	}
}

// LexString lexes a plain string, wrapping it in a trivial identity
// template mapping.
func (l *Lexer) LexString(s string) ([]*Segment, []*LexError) {
	return l.Lex(templater.FromString(s))
}

// Lex lexes the templated form of the given file and reconciles every
// token's position against the file's slice map. The returned errors
// describe unlexable spans; they do not prevent a full token stream.
func (l *Lexer) Lex(tf *templater.TemplatedFile) ([]*Segment, []*LexError) {
	strBuff := tf.Templated

	var elements []Element
	for {
		res := lexMatch(strBuff, l.matchers)
		elements = append(elements, res.Elements...)
		strBuff = res.ForwardString

		if strBuff == "" {
			break
		}

		// Nothing ordinary matched: emit an explicit unlexable token and
		// resume just past it so every byte stays accounted for.
		resort := l.lastResort.Matches(strBuff)
		if resort.NonEmpty() && resort.Elements[0].Text != "" {
			elements = append(elements, resort.Elements...)
			strBuff = resort.ForwardString
		} else {
			// The last-resort pattern matched nothing (the stall is on a
			// tab, newline or dot): consume a single character.
			elements = append(elements, Element{
				Name: "<unlexable>",
				Text: strBuff[:1],
				ctor: KindCtor(token.Unlexable),
			})
			strBuff = strBuff[1:]
		}
	}

	templated := mapTemplateSlices(elements, tf)
	segments := l.elementsToSegments(templated, tf)

	return segments, violationsFromSegments(segments)
}

// lexMatch iteratively applies the matchers, in declared order, to the
// remaining input. The first matcher producing a non-empty result wins and
// selection restarts from the top of the list.
func lexMatch(forward string, matchers []*Matcher) Match {
	var elemBuff []Element
main:
	for {
		if forward == "" {
			return Match{ForwardString: forward, Elements: elemBuff}
		}

		for _, matcher := range matchers {
			res := matcher.Matches(forward)
			if res.NonEmpty() {
				elemBuff = append(elemBuff, res.Elements...)
				forward = res.ForwardString
				continue main
			}
		}

		return Match{ForwardString: forward, Elements: elemBuff}
	}
}

// mapTemplateSlices assigns each element its contiguous byte range in the
// templated string based on cumulative consumed length. The consistency
// check is fatal: a mismatch is a lexer bug, never bad input.
func mapTemplateSlices(elements []Element, tf *templater.TemplatedFile) []TemplateElement {
	idx := 0
	templated := make([]TemplateElement, 0, len(elements))

	for _, element := range elements {
		slice := token.OffsetSpan(idx, len(element.Text))
		idx += len(element.Text)

		if tf.Templated[slice.Start:slice.End] != element.Text {
			panic(fmt.Sprintf(
				"template and lexed elements do not match, this should never happen: %q != %q",
				element.Text, tf.Templated[slice.Start:slice.End],
			))
		}

		templated = append(templated, TemplateElement{
			Raw:           element.Text,
			TemplateSlice: slice,
			Name:          element.Name,
			ctor:          element.ctor,
		})
	}

	return templated
}

// elementsToSegments resolves source positions for all elements and
// appends the synthetic end-of-file segment.
func (l *Lexer) elementsToSegments(elements []TemplateElement, tf *templater.TemplatedFile) []*Segment {
	segments := iterSegments(elements, tf)

	var pos PositionMarker
	if len(segments) > 0 {
		pos = segments[len(segments)-1].Pos().EndPoint()
	} else {
		pos = PointMarker(0, 0, tf)
	}
	segments = append(segments, NewRawSegment(token.EndOfFile, "", pos))

	return segments
}

// iterSegments walks the templated-file slice map with a monotonically
// advancing cursor, working out the source span of each lexed element.
func iterSegments(elements []TemplateElement, tf *templater.TemplatedFile) []*Segment {
	result := make([]*Segment, 0, len(elements))
	slices := tf.SlicedFile
	tfsIdx := 0

	for _, element := range elements {
		consumed := 0
		stashedSourceIdx := -1

		for i := tfsIdx; i < len(slices); i++ {
			tfs := slices[i]

			if tfs.TemplatedSlice.IsZero() {
				// Template-only artifact (e.g. a tag expanding to nothing).
				// Hook point for synthetic placeholder segments.
				continue
			}

			switch tfs.Type {
			case templater.SliceLiteral:
				tfsOffset := tfs.SourceSlice.Start - tfs.TemplatedSlice.Start

				// Greater than OR EQUAL, to include an exact-length match.
				if element.TemplateSlice.End <= tfs.TemplatedSlice.End {
					sliceStart := element.TemplateSlice.Start + consumed + tfsOffset
					if stashedSourceIdx >= 0 {
						sliceStart = stashedSourceIdx
					}

					sub := token.NewSpan(consumed, len(element.Raw))
					result = append(result, element.ToSegment(
						NewPositionMarker(
							token.NewSpan(sliceStart, element.TemplateSlice.End+tfsOffset),
							element.TemplateSlice,
							tf,
						),
						&sub,
					))

					// If it was an exact match, this slice is spent too.
					if element.TemplateSlice.End == tfs.TemplatedSlice.End {
						tfsIdx = i + 1
					} else {
						tfsIdx = i
					}
				} else if element.TemplateSlice.Start == tfs.TemplatedSlice.End {
					// Boundary touch with no consumption: the cursor should
					// already have advanced. Never expected in a correct
					// slice map; treated as a no-op continuation.
					continue
				} else {
					// The element spans past the end of this literal slice.
					// Only whitespace may legally be split across a template
					// boundary, because it divides losslessly.
					if element.Name == "whitespace" {
						if stashedSourceIdx >= 0 {
							panic("found literal whitespace with stashed source index")
						}

						incremental := tfs.TemplatedSlice.End - (element.TemplateSlice.Start + consumed)
						sub := token.OffsetSpan(consumed, incremental)
						result = append(result, element.ToSegment(
							NewPositionMarker(
								token.NewSpan(
									element.TemplateSlice.Start+consumed+tfsOffset,
									tfs.TemplatedSlice.End+tfsOffset,
								),
								element.TemplateSlice,
								tf,
							),
							&sub,
						))
						consumed += incremental
						continue
					}

					// Can't split: stash the source start and defer until a
					// literal slice covers the element's end.
					if stashedSourceIdx < 0 {
						stashedSourceIdx = element.TemplateSlice.Start + tfsOffset
					}
					continue
				}

			case templater.SliceTemplated:
				// Tokens lexed out of expanded template output have no exact
				// source column: they all map to the full source span of the
				// construct that produced them.
				if element.TemplateSlice.End <= tfs.TemplatedSlice.End {
					sliceStart := tfs.SourceSlice.Start
					if stashedSourceIdx >= 0 {
						sliceStart = stashedSourceIdx
					}

					sub := token.NewSpan(consumed, len(element.Raw))
					result = append(result, element.ToSegment(
						NewPositionMarker(
							token.NewSpan(sliceStart, tfs.SourceSlice.End),
							element.TemplateSlice,
							tf,
						),
						&sub,
					))

					if element.TemplateSlice.End == tfs.TemplatedSlice.End {
						tfsIdx = i + 1
					} else {
						tfsIdx = i
					}
				} else {
					// The element runs past the expansion into following
					// slices: stash the construct's source start and defer
					// until a slice covers the element's end.
					if stashedSourceIdx < 0 {
						stashedSourceIdx = tfs.SourceSlice.Start
					}
					continue
				}

			case templater.SliceBlockStart, templater.SliceBlockEnd:
				// Block constructs expand to nothing, so a non-zero templated
				// slice here means a broken slice map. Failing loudly beats
				// silently losing segments.
				panic(fmt.Sprintf("reconciliation of %q template slices is not implemented", tfs.Type))
			}

			break
		}
	}

	return result
}

// violationsFromSegments generates lex errors for any unlexable segments.
func violationsFromSegments(segments []*Segment) []*LexError {
	var errs []*LexError
	for _, s := range segments {
		if s.IsType(token.Unlexable) {
			raw := s.Raw()
			if len(raw) > 10 {
				raw = raw[:10]
			}
			errs = append(errs, &LexError{
				Pos:     s.Pos(),
				Message: fmt.Sprintf("unable to lex characters: %q", raw),
			})
		}
	}
	return errs
}
