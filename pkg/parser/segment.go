package parser

import (
	"strings"

	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

// Segment is a node in the parse tree. Leaves carry raw text produced by
// the lexer; structural nodes carry an ordered sequence of children built
// by the parser. Segments are treated as immutable shared values once
// built: rules receive read-only handles.
type Segment struct {
	kind     token.SyntaxKind
	raw      string
	children []*Segment
	pos      PositionMarker
}

// NewRawSegment creates a leaf segment.
func NewRawSegment(kind token.SyntaxKind, raw string, pos PositionMarker) *Segment {
	return &Segment{kind: kind, raw: raw, pos: pos}
}

// NewMetaSegment creates a zero-length marker segment (indent, dedent,
// placeholder) at the given point.
func NewMetaSegment(kind token.SyntaxKind, pos PositionMarker) *Segment {
	return &Segment{kind: kind, pos: pos}
}

// NewNode creates a structural segment over the given children. The node's
// position spans from the first to the last child.
func NewNode(kind token.SyntaxKind, children ...*Segment) *Segment {
	s := &Segment{kind: kind, children: children}
	if len(children) > 0 {
		s.pos = spanningMarker(children[0].pos, children[len(children)-1].pos)
	}
	return s
}

// Kind returns the segment's syntax kind.
func (s *Segment) Kind() token.SyntaxKind { return s.kind }

// Pos returns the segment's position marker.
func (s *Segment) Pos() PositionMarker { return s.pos }

// Children returns the ordered child segments. Nil for leaves.
func (s *Segment) Children() []*Segment { return s.children }

// Raw returns the source text covered by this segment: the leaf text for
// leaves, the concatenation of all leaf text for structural nodes.
func (s *Segment) Raw() string {
	if s.children == nil {
		return s.raw
	}
	var b strings.Builder
	for _, c := range s.children {
		b.WriteString(c.Raw())
	}
	return b.String()
}

// IsType returns true if the segment's kind is any of the given kinds.
func (s *Segment) IsType(kinds ...token.SyntaxKind) bool {
	for _, k := range kinds {
		if s.kind == k {
			return true
		}
	}
	return false
}

// IsCode reports whether this segment participates in grammar matching.
func (s *Segment) IsCode() bool { return s.kind.IsCode() }

// IsWhitespace reports whether this is a whitespace or newline leaf.
func (s *Segment) IsWhitespace() bool { return s.kind.IsWhitespace() }

// IsMeta reports whether this is a zero-length marker segment.
func (s *Segment) IsMeta() bool { return s.kind.IsMeta() }

// Leaves appends all leaf segments under s, in order, to dst and returns it.
func (s *Segment) Leaves(dst []*Segment) []*Segment {
	if s.children == nil {
		if !s.IsMeta() {
			dst = append(dst, s)
		}
		return dst
	}
	for _, c := range s.children {
		dst = c.Leaves(dst)
	}
	return dst
}

// RecursiveCrawl walks the tree depth-first, calling fn for every segment
// whose kind is in kinds. Returning false from fn stops descent into that
// segment's children (but not the walk).
func (s *Segment) RecursiveCrawl(kinds map[token.SyntaxKind]struct{}, fn func(seg *Segment) bool) {
	if _, ok := kinds[s.kind]; ok {
		if !fn(s) {
			return
		}
	}
	for _, c := range s.children {
		c.RecursiveCrawl(kinds, fn)
	}
}

// StringTree renders the tree for debugging and the parse command.
func (s *Segment) StringTree() string {
	var b strings.Builder
	s.writeTree(&b, 0)
	return b.String()
}

func (s *Segment) writeTree(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("    ", depth))
	b.WriteString(s.pos.String())
	b.WriteString("  ")
	b.WriteString(s.kind.String())
	if s.children == nil && s.raw != "" {
		b.WriteString(":  ")
		b.WriteString(strings.ReplaceAll(s.raw, "\n", "\\n"))
	}
	b.WriteByte('\n')
	for _, c := range s.children {
		c.writeTree(b, depth+1)
	}
}
