// Package cssparse splits stylesheets into structural items with exact byte
// spans. It does not implement the CSS grammar: it only tracks comments,
// strings and brace nesting well enough to find rules and conditional
// at-rules, and degrades to opaque text on anything it cannot follow.
package cssparse

import (
	"strings"

	"github.com/yacobolo/cssconsolidate/internal/source"
)

// Kind classifies a structural item.
type Kind int

const (
	// KindWhitespace is a run of whitespace between items.
	KindWhitespace Kind = iota
	// KindComment is a /* ... */ comment, possibly unterminated.
	KindComment
	// KindAtRule is a conditional group rule whose body is parsed recursively.
	KindAtRule
	// KindOpaqueAtRule is any other at-rule, kept verbatim.
	KindOpaqueAtRule
	// KindRule is a qualified rule: selector list plus declaration block.
	KindRule
	// KindOpaque is text the parser could not structure.
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindWhitespace:
		return "whitespace"
	case KindComment:
		return "comment"
	case KindAtRule:
		return "at-rule"
	case KindOpaqueAtRule:
		return "opaque-at-rule"
	case KindRule:
		return "rule"
	case KindOpaque:
		return "opaque"
	}
	return "unknown"
}

// TopLevel is the context label of rules outside any conditional at-rule.
const TopLevel = "top-level"

// conditionalAtRules are recursed into; every other at-rule is opaque.
var conditionalAtRules = map[string]bool{
	"media":     true,
	"supports":  true,
	"layer":     true,
	"container": true,
}

// Item is one structural element of a stylesheet.
type Item struct {
	Kind Kind
	// Span covers the whole item including its braces.
	Span source.Span
	// Prelude is the trimmed selector list or at-rule header.
	Prelude source.Span
	// Body is the text between the braces, exclusive.
	Body source.Span
	// Children holds the parsed body of a KindAtRule, and of any rule or
	// opaque at-rule whose body contains blocks. Walk only descends into
	// KindAtRule children.
	Children []Item
	// Nested is set on rules whose body contains braces of its own.
	Nested bool
}

// Stylesheet is a parsed CSS file.
type Stylesheet struct {
	Path    string
	Content []byte
	Items   []Item
	Lines   *source.LineIndex
}

// Text returns the source text covered by span.
func (s *Stylesheet) Text(span source.Span) string {
	return string(s.Content[span.Start:span.End])
}

// Walk visits every item depth first, passing the context label of the
// innermost enclosing conditional at-rule.
func (s *Stylesheet) Walk(fn func(item *Item, context string)) {
	s.walk(s.Items, TopLevel, fn)
}

func (s *Stylesheet) walk(items []Item, context string, fn func(item *Item, context string)) {
	for i := range items {
		item := &items[i]
		fn(item, context)
		if item.Kind == KindAtRule {
			s.walk(item.Children, ContextLabel(s.Text(item.Prelude)), fn)
		}
	}
}

// ContextLabel normalizes an at-rule header into a context label.
func ContextLabel(header string) string {
	return strings.Join(strings.Fields(header), " ")
}
