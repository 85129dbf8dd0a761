package parser

import (
	"fmt"
	"strings"

	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

// Parser drives a dialect's root grammar over a lexed segment stream and
// assembles the file-level parse tree.
type Parser struct {
	reg Registry
}

// NewParser creates a parser for the given dialect registry. The registry
// must already be expanded.
func NewParser(reg Registry) *Parser {
	return &Parser{reg: reg}
}

// Parse matches the dialect's FileSegment grammar against the segment
// stream and returns the root of the parse tree. Empty input yields a nil
// tree and no error. Leading and trailing trivia, and the end-of-file
// marker, become direct children of the file node so the tree covers every
// input token.
func (p *Parser) Parse(segments []*Segment) (*Segment, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	start := 0
	for start < len(segments) && !segments[start].IsCode() {
		start++
	}
	end := len(segments)
	for end > start && !segments[end-1].IsCode() {
		end--
	}

	var children []*Segment
	children = append(children, segments[:start]...)

	if start < end {
		ctx := NewContext(p.reg)
		root := p.reg.GrammarByName("FileSegment")

		res := ctx.Match(root, segments[:end], start)
		if !res.OK {
			return nil, &ParseError{
				Pos:     segments[start].Pos(),
				Message: fmt.Sprintf("no statement recognized by dialect %q", p.reg.Name()),
			}
		}

		// The root grammar must account for every code token between the
		// bounds; anything left over is a parse failure at that position.
		trailing, next := skipNonCode(segments[:end], res.NextIdx)
		if next < end {
			return nil, &ParseError{
				Pos:     segments[next].Pos(),
				Message: fmt.Sprintf("unparsable section starting at %q", segments[next].Raw()),
			}
		}

		children = append(children, res.Matched...)
		children = append(children, trailing...)
	}

	children = append(children, segments[end:]...)
	tree := NewNode(token.File, children...)
	checkStillComplete(segments, tree)
	return tree, nil
}

// checkStillComplete verifies the parse tree still covers exactly the
// lexed input: every raw token appears once, in order, among the leaves.
// A mismatch means a combinator dropped or duplicated a segment, which is
// an implementation bug, so it panics rather than returning an error.
func checkStillComplete(input []*Segment, tree *Segment) {
	var want, got strings.Builder
	for _, s := range input {
		want.WriteString(s.Raw())
	}
	for _, s := range tree.Leaves(nil) {
		got.WriteString(s.Raw())
	}
	if want.String() == got.String() {
		return
	}
	panic(fmt.Sprintf(
		"parse tree does not cover its input:\nlexed:  %q\nparsed: %q",
		want.String(), got.String(),
	))
}
