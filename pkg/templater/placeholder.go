package templater

import (
	"fmt"
	"strings"

	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

// Placeholder expands {{ name }} expressions using a fixed variable table
// and records the source-to-templated slice map for each region. It is the
// simplest templater that produces non-identity slice maps, which is what
// the lexer's reconciliation step is written against.
type Placeholder struct {
	Vars map[string]string
}

// NewPlaceholder returns a Placeholder templater over the given variables.
func NewPlaceholder(vars map[string]string) *Placeholder {
	return &Placeholder{Vars: vars}
}

// Process expands the source string and returns the resulting TemplatedFile.
// Unknown variables are an error: silently dropping a placeholder would
// desynchronise the slice map.
func (p *Placeholder) Process(name, source string) (*TemplatedFile, error) {
	var (
		out    strings.Builder
		sliced []FileSlice
		pos    int
	)

	for pos < len(source) {
		open := strings.Index(source[pos:], "{{")
		if open < 0 {
			break
		}
		open += pos

		close_ := strings.Index(source[open:], "}}")
		if close_ < 0 {
			return nil, fmt.Errorf("unclosed placeholder at offset %d", open)
		}
		close_ += open + len("}}")

		if open > pos {
			sliced = append(sliced, FileSlice{
				Type:           SliceLiteral,
				SourceSlice:    token.NewSpan(pos, open),
				TemplatedSlice: token.OffsetSpan(out.Len(), open-pos),
			})
			out.WriteString(source[pos:open])
		}

		varName := strings.TrimSpace(source[open+len("{{") : close_-len("}}")])
		value, ok := p.Vars[varName]
		if !ok {
			return nil, fmt.Errorf("undefined template variable %q at offset %d", varName, open)
		}

		sliced = append(sliced, FileSlice{
			Type:           SliceTemplated,
			SourceSlice:    token.NewSpan(open, close_),
			TemplatedSlice: token.OffsetSpan(out.Len(), len(value)),
		})
		out.WriteString(value)

		pos = close_
	}

	if pos < len(source) {
		sliced = append(sliced, FileSlice{
			Type:           SliceLiteral,
			SourceSlice:    token.NewSpan(pos, len(source)),
			TemplatedSlice: token.OffsetSpan(out.Len(), len(source)-pos),
		})
		out.WriteString(source[pos:])
	}

	return NewTemplatedFile(name, source, out.String(), sliced), nil
}
