package ncc

import "fmt"

// Span captures a run of input covered by a match: a start position and the
// position just behind the end. Every AST node and every MatchingData value
// carries one, so listeners and tree consumers can recover exactly which
// slice of the original input a rule covered.
type Span [2]int

// From returns the start offset of a span.
func (s Span) From() int { return s[0] }

// To returns the end offset (one past the last matched byte) of a span.
func (s Span) To() int { return s[1] }

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s[1] - s[0] }

// IsNull returns true for the zero span.
func (s Span) IsNull() bool { return s == Span{} }

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
