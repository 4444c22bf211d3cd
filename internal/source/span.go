// Package source holds byte spans, line lookup and batched edit plans for text files.
package source

import "fmt"

// Span is a half-open byte range [Start, End) within one file.
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Overlaps reports whether two spans conflict as edit targets.
// Two zero-length spans never conflict. A zero-length span conflicts with a
// non-empty span when its position falls inside it.
func (s Span) Overlaps(other Span) bool {
	if s.Empty() && other.Empty() {
		return false
	}
	if s.Empty() {
		return other.Start <= s.Start && s.Start < other.End
	}
	if other.Empty() {
		return s.Start <= other.Start && other.Start < s.End
	}
	return s.Start < other.End && other.Start < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}
