package cssparse

import (
	"github.com/yacobolo/cssconsolidate/internal/source"
)

// StyleRule is a qualified rule with everything later stages need. Values
// are filled once and never mutated.
type StyleRule struct {
	File         string
	Selector     string
	Context      string
	Declarations Declarations
	// Block is the body text between the braces.
	Block        string
	Span         source.Span
	SelectorSpan source.Span
	BodySpan     source.Span
	Line         int
	Nested       bool
}

// StyleRule builds the rule for a KindRule item of s found in context.
// Nested rules get no declarations.
func (s *Stylesheet) StyleRule(item *Item, context string) StyleRule {
	rule := StyleRule{
		File:         s.Path,
		Selector:     s.Text(item.Prelude),
		Context:      context,
		Block:        s.Text(item.Body),
		Span:         item.Span,
		SelectorSpan: item.Prelude,
		BodySpan:     item.Body,
		Line:         s.Lines.Line(item.Span.Start),
		Nested:       item.Nested,
	}
	if !item.Nested {
		rule.Declarations = ParseDeclarations(rule.Block)
	}
	return rule
}

// Rules returns every qualified rule in document order, including rules
// inside conditional at-rules.
func (s *Stylesheet) Rules() []StyleRule {
	var rules []StyleRule
	s.Walk(func(item *Item, context string) {
		if item.Kind == KindRule {
			rules = append(rules, s.StyleRule(item, context))
		}
	})
	return rules
}
