package parser

import (
	"fmt"

	"github.com/sqlsleuth/sqlsleuth/pkg/templater"
	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

// PositionMarker locates a segment in both coordinate spaces: the original
// source string and the templated string the lexer ran over. For plain
// (untemplated) SQL the two spans are identical.
type PositionMarker struct {
	SourceSlice    token.Span
	TemplatedSlice token.Span
	File           *templater.TemplatedFile
}

// NewPositionMarker constructs a marker from explicit spans.
func NewPositionMarker(source, templated token.Span, file *templater.TemplatedFile) PositionMarker {
	return PositionMarker{SourceSlice: source, TemplatedSlice: templated, File: file}
}

// PointMarker returns a zero-length marker at the given offsets.
func PointMarker(sourceOffset, templatedOffset int, file *templater.TemplatedFile) PositionMarker {
	return PositionMarker{
		SourceSlice:    token.PointSpan(sourceOffset),
		TemplatedSlice: token.PointSpan(templatedOffset),
		File:           file,
	}
}

// StartPoint returns the zero-length marker at the start of this marker.
func (m PositionMarker) StartPoint() PositionMarker {
	return PositionMarker{
		SourceSlice:    token.PointSpan(m.SourceSlice.Start),
		TemplatedSlice: token.PointSpan(m.TemplatedSlice.Start),
		File:           m.File,
	}
}

// EndPoint returns the zero-length marker at the end of this marker.
func (m PositionMarker) EndPoint() PositionMarker {
	return PositionMarker{
		SourceSlice:    token.PointSpan(m.SourceSlice.End),
		TemplatedSlice: token.PointSpan(m.TemplatedSlice.End),
		File:           m.File,
	}
}

// LineCol returns the 1-based line and column of the marker start in the
// source string.
func (m PositionMarker) LineCol() (line, col int) {
	if m.File == nil {
		return 1, m.SourceSlice.Start + 1
	}
	return m.File.LineCol(m.SourceSlice.Start)
}

func (m PositionMarker) String() string {
	line, col := m.LineCol()
	return fmt.Sprintf("[L:%3d, P:%3d]", line, col)
}

// spanningMarker returns a marker covering first through last.
func spanningMarker(first, last PositionMarker) PositionMarker {
	return PositionMarker{
		SourceSlice:    token.NewSpan(first.SourceSlice.Start, last.SourceSlice.End),
		TemplatedSlice: token.NewSpan(first.TemplatedSlice.Start, last.TemplatedSlice.End),
		File:           first.File,
	}
}
