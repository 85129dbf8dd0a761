package token

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

// NewSpan returns the span [start, end).
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// OffsetSpan returns the span of the given length starting at start.
func OffsetSpan(start, length int) Span {
	return Span{Start: start, End: start + length}
}

// PointSpan returns the zero-length span at offset.
func PointSpan(offset int) Span {
	return Span{Start: offset, End: offset}
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsZero returns true for zero-length spans.
func (s Span) IsZero() bool {
	return s.Start == s.End
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}
