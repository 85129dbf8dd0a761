package parser

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

// SegmentCtor turns matched text and a position into a typed leaf segment.
type SegmentCtor func(raw string, pos PositionMarker) *Segment

// KindCtor returns a SegmentCtor producing leaves of the given kind.
func KindCtor(kind token.SyntaxKind) SegmentCtor {
	return func(raw string, pos PositionMarker) *Segment {
		return NewRawSegment(kind, raw, pos)
	}
}

// Pattern is a single lexical rule: a literal string or a regex, with a
// classifying name and the constructor for the token it produces.
// Immutable once built.
type Pattern struct {
	name    string
	ctor    SegmentCtor
	literal string
	re      *regexp2.Regexp
}

// StringPattern builds a literal pattern.
func StringPattern(name, literal string, ctor SegmentCtor) Pattern {
	return Pattern{name: name, ctor: ctor, literal: literal}
}

// RegexPattern builds a regex pattern. The expression is compiled eagerly;
// an invalid expression is a dialect-definition bug and panics.
func RegexPattern(name, expr string, ctor SegmentCtor) Pattern {
	return Pattern{name: name, ctor: ctor, re: regexp2.MustCompile(expr, regexp2.None)}
}

// match attempts the pattern anchored at offset 0 of forward and returns
// the matched prefix.
func (p Pattern) match(forward string) (string, bool) {
	if p.re == nil {
		if strings.HasPrefix(forward, p.literal) {
			return p.literal, true
		}
		return "", false
	}
	m, err := p.re.FindStringMatch(forward)
	if err != nil || m == nil || m.Index != 0 {
		return "", false
	}
	return m.String(), true
}

// search finds the first occurrence of the pattern anywhere in forward.
// Used only for subdivision and trim scanning, never for primary lexing.
func (p Pattern) search(forward string) (token.Span, bool) {
	if p.re == nil {
		start := strings.Index(forward, p.literal)
		if start < 0 {
			return token.Span{}, false
		}
		return token.OffsetSpan(start, len(p.literal)), true
	}
	m, err := p.re.FindStringMatch(forward)
	if err != nil || m == nil {
		return token.Span{}, false
	}
	return token.OffsetSpan(m.Index, m.Length), true
}

// Element is an ephemeral lexing product: a classifying name, the matched
// text, and the constructor that will build the leaf segment.
type Element struct {
	Name string
	Text string
	ctor SegmentCtor
}

// TemplateElement is an Element bundled with its byte range in the
// templated string.
type TemplateElement struct {
	Raw           string
	TemplateSlice token.Span
	Name          string
	ctor          SegmentCtor
}

// ToSegment builds the leaf segment for this element. If sub is non-nil
// only that slice of the raw text is used (for elements split across
// template boundaries).
func (te TemplateElement) ToSegment(pos PositionMarker, sub *token.Span) *Segment {
	raw := te.Raw
	if sub != nil {
		raw = te.Raw[sub.Start:sub.End]
	}
	return te.ctor(raw, pos)
}

// Match holds the outcome of applying a matcher: the elements produced and
// the unconsumed remainder. An unsuccessful match has no elements and the
// original string as remainder.
type Match struct {
	ForwardString string
	Elements      []Element
}

// NonEmpty reports whether the match produced any elements.
func (m Match) NonEmpty() bool {
	return len(m.Elements) > 0
}

// Matcher is a Pattern plus optional subdivision: a subdivider pattern
// splits a single lexical match into several elements (e.g. a script
// terminator into semicolon and slash), and a trim pattern peels leading
// or trailing runs (e.g. trailing newlines) off each subdivided part.
type Matcher struct {
	pattern           Pattern
	subdivider        *Pattern
	trimPostSubdivide *Pattern
}

// NewMatcher wraps a pattern in a matcher with no subdivision.
func NewMatcher(p Pattern) *Matcher {
	return &Matcher{pattern: p}
}

// StringMatcher builds a matcher over a literal pattern.
func StringMatcher(name, literal string, ctor SegmentCtor) *Matcher {
	return NewMatcher(StringPattern(name, literal, ctor))
}

// RegexMatcher builds a matcher over a regex pattern.
func RegexMatcher(name, expr string, ctor SegmentCtor) *Matcher {
	return NewMatcher(RegexPattern(name, expr, ctor))
}

// Subdivider configures the subdivision pattern. Returns the matcher for
// chaining.
func (m *Matcher) Subdivider(p Pattern) *Matcher {
	m.subdivider = &p
	return m
}

// PostSubdivide configures the trim pattern applied to each subdivided
// part. Returns the matcher for chaining.
func (m *Matcher) PostSubdivide(p Pattern) *Matcher {
	m.trimPostSubdivide = &p
	return m
}

// Name returns the matcher's classifying name.
func (m *Matcher) Name() string {
	return m.pattern.name
}

// Matches attempts the anchored pattern against forward. On success the
// consumed text is subdivided into one or more elements and the remainder
// returned; on failure the match is empty and the remainder is forward
// itself, so the caller can try the next matcher.
func (m *Matcher) Matches(forward string) Match {
	matched, ok := m.pattern.match(forward)
	if !ok {
		return Match{ForwardString: forward}
	}
	return Match{
		ForwardString: forward[len(matched):],
		Elements:      m.subdivide(matched),
	}
}

func (m *Matcher) subdivide(matched string) []Element {
	if m.subdivider == nil {
		return []Element{{Name: m.pattern.name, Text: matched, ctor: m.pattern.ctor}}
	}

	var elemBuff []Element
	strBuff := matched

	for strBuff != "" {
		divPos, ok := m.subdivider.search(strBuff)
		if !ok {
			elemBuff = append(elemBuff, m.trimMatch(strBuff)...)
			break
		}

		elemBuff = append(elemBuff, m.trimMatch(strBuff[:divPos.Start])...)
		elemBuff = append(elemBuff, Element{
			Name: m.subdivider.name,
			Text: strBuff[divPos.Start:divPos.End],
			ctor: m.subdivider.ctor,
		})

		strBuff = strBuff[divPos.End:]
	}

	return elemBuff
}

// trimMatch peels trim-pattern runs off matchedStr. A trim match at the
// very start becomes its own leading element; a trim match reaching the
// end flushes the accumulated content as one element plus the trailing
// trim element; an interior trim match is folded into the content buffer
// (an embedded newline inside a block comment stays part of the comment).
// Leftover content is emitted as a catch-all element tagged with the
// matcher's own name.
func (m *Matcher) trimMatch(matchedStr string) []Element {
	if m.trimPostSubdivide == nil {
		return nil
	}

	trim := m.trimPostSubdivide
	var elemBuff []Element
	var contentBuff strings.Builder
	strBuff := matchedStr

	for strBuff != "" {
		trimPos, ok := trim.search(strBuff)
		if !ok {
			break
		}

		start, end := trimPos.Start, trimPos.End

		switch {
		case start == 0:
			elemBuff = append(elemBuff, Element{Name: trim.name, Text: strBuff[:end], ctor: trim.ctor})
			strBuff = strBuff[end:]
		case end == len(strBuff):
			elemBuff = append(elemBuff,
				Element{Name: trim.name, Text: contentBuff.String() + strBuff[:start], ctor: trim.ctor},
				Element{Name: trim.name, Text: strBuff[start:end], ctor: trim.ctor},
			)
			contentBuff.Reset()
			strBuff = ""
		default:
			contentBuff.WriteString(strBuff[:end])
			strBuff = strBuff[end:]
		}
	}

	if contentBuff.Len() > 0 || strBuff != "" {
		elemBuff = append(elemBuff, Element{
			Name: m.pattern.name,
			Text: contentBuff.String() + strBuff,
			ctor: m.pattern.ctor,
		})
	}

	return elemBuff
}
