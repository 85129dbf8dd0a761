package lint

import (
	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

// Collect returns every segment of the given kind in the tree, depth-first.
func Collect(tree *parser.Segment, kind token.SyntaxKind) []*parser.Segment {
	var out []*parser.Segment
	tree.RecursiveCrawl(map[token.SyntaxKind]struct{}{kind: {}}, func(s *parser.Segment) bool {
		out = append(out, s)
		return true
	})
	return out
}

// ChildrenOfKind returns the direct children of seg matching any of kinds.
func ChildrenOfKind(seg *parser.Segment, kinds ...token.SyntaxKind) []*parser.Segment {
	var out []*parser.Segment
	for _, c := range seg.Children() {
		if c.IsType(kinds...) {
			out = append(out, c)
		}
	}
	return out
}
