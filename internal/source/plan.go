package source

import (
	"errors"
	"fmt"
	"sort"
)

// ErrOverlap is returned when an edit overlaps an edit already in the plan.
var ErrOverlap = errors.New("overlapping edit")

// Edit replaces the bytes in Span with Text.
type Edit struct {
	Span Span
	Text string
}

// Plan collects the non-overlapping edits for a single file so they can be
// applied in one batch.
type Plan struct {
	Path  string
	edits []Edit
}

// NewPlan creates an empty plan for path.
func NewPlan(path string) *Plan {
	return &Plan{Path: path}
}

// Add inserts an edit keeping the plan sorted by start offset.
// An edit that overlaps an existing one is rejected with ErrOverlap.
func (p *Plan) Add(edit Edit) error {
	if edit.Span.Start < 0 || edit.Span.End < edit.Span.Start {
		return fmt.Errorf("invalid span %s", edit.Span)
	}
	idx := sort.Search(len(p.edits), func(i int) bool {
		return p.edits[i].Span.Start > edit.Span.Start ||
			(p.edits[i].Span.Start == edit.Span.Start && p.edits[i].Span.End > edit.Span.End)
	})
	if idx > 0 && p.edits[idx-1].Span.Overlaps(edit.Span) {
		return fmt.Errorf("%w: %s conflicts with %s", ErrOverlap, edit.Span, p.edits[idx-1].Span)
	}
	if idx < len(p.edits) && p.edits[idx].Span.Overlaps(edit.Span) {
		return fmt.Errorf("%w: %s conflicts with %s", ErrOverlap, edit.Span, p.edits[idx].Span)
	}
	p.edits = append(p.edits, Edit{})
	copy(p.edits[idx+1:], p.edits[idx:])
	p.edits[idx] = edit
	return nil
}

// Len returns the number of edits in the plan.
func (p *Plan) Len() int {
	return len(p.edits)
}

// Apply returns content with every edit applied. Edits are applied from the
// highest offset down so earlier offsets stay valid. The input is not modified.
func (p *Plan) Apply(content []byte) ([]byte, error) {
	out := append([]byte(nil), content...)
	for i := len(p.edits) - 1; i >= 0; i-- {
		e := p.edits[i]
		if e.Span.End > len(out) {
			return nil, fmt.Errorf("edit span %s out of range for %s (%d bytes)", e.Span, p.Path, len(content))
		}
		suffix := append([]byte(nil), out[e.Span.End:]...)
		out = append(append(out[:e.Span.Start], e.Text...), suffix...)
	}
	return out, nil
}
