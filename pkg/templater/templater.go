// Package templater maps template-expanded SQL back to its original source.
//
// The lexer operates on the templated string (the string after any template
// expansion) and uses a TemplatedFile to translate templated byte ranges back
// into source byte ranges. For plain SQL the mapping is the identity.
package templater

import (
	"sort"
	"strings"

	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

// SliceType classifies a region of the sliced file map.
type SliceType string

// Slice types produced by templaters.
const (
	SliceLiteral    SliceType = "literal"
	SliceTemplated  SliceType = "templated"
	SliceBlockStart SliceType = "block_start"
	SliceBlockEnd   SliceType = "block_end"
)

// FileSlice relates a region of the source string to a region of the
// templated string.
type FileSlice struct {
	Type           SliceType
	SourceSlice    token.Span
	TemplatedSlice token.Span
}

// TemplatedFile is the mapping between an original source string and its
// template-expanded form. Slices are contiguous and ordered by templated
// position. Read-only once constructed.
type TemplatedFile struct {
	Name       string
	Source     string
	Templated  string
	SlicedFile []FileSlice

	// newline offsets in the source string, for line/column lookups
	sourceNewlines []int
}

// NewTemplatedFile constructs a TemplatedFile from explicit parts.
func NewTemplatedFile(name, source, templated string, sliced []FileSlice) *TemplatedFile {
	return &TemplatedFile{
		Name:           name,
		Source:         source,
		Templated:      templated,
		SlicedFile:     sliced,
		sourceNewlines: newlineOffsets(source),
	}
}

// FromString wraps a plain (untemplated) string in a trivial identity
// mapping: one literal slice covering the whole input.
func FromString(s string) *TemplatedFile {
	return NewTemplatedFile("<string>", s, s, []FileSlice{{
		Type:           SliceLiteral,
		SourceSlice:    token.NewSpan(0, len(s)),
		TemplatedSlice: token.NewSpan(0, len(s)),
	}})
}

// LineCol returns the 1-based line and column of a source byte offset.
func (tf *TemplatedFile) LineCol(sourceOffset int) (line, col int) {
	n := sort.SearchInts(tf.sourceNewlines, sourceOffset)
	line = n + 1
	if n == 0 {
		return line, sourceOffset + 1
	}
	return line, sourceOffset - tf.sourceNewlines[n-1]
}

// SourceOffset translates a templated byte offset into a source offset
// using the sliced file map. Offsets inside a templated region map to the
// start of that region's source slice.
func (tf *TemplatedFile) SourceOffset(templatedOffset int) int {
	for _, fs := range tf.SlicedFile {
		if templatedOffset >= fs.TemplatedSlice.End {
			continue
		}
		if fs.Type == SliceLiteral {
			return fs.SourceSlice.Start + (templatedOffset - fs.TemplatedSlice.Start)
		}
		return fs.SourceSlice.Start
	}
	return len(tf.Source)
}

func newlineOffsets(s string) []int {
	var offsets []int
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// reassemble concatenates the templated text of all slices; used by tests
// and internal validation.
func reassemble(templated string, sliced []FileSlice) string {
	var b strings.Builder
	for _, fs := range sliced {
		b.WriteString(templated[fs.TemplatedSlice.Start:fs.TemplatedSlice.End])
	}
	return b.String()
}
