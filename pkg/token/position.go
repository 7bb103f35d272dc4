package token

import "fmt"

// Position is a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number (bytes)
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is set.
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open range [Start, End) in the source text.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span covers the given byte offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both ends are set.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}
