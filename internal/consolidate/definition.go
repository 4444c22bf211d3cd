// Package consolidate finds classes whose definitions are interchangeable
// and picks one canonical name for each family.
package consolidate

import (
	"github.com/yacobolo/cssconsolidate/internal/cssparse"
	"github.com/yacobolo/cssconsolidate/internal/selector"
)

// Definition is one class-led segment of a rule.
type Definition struct {
	Name              string
	Modifiers         []string
	ModifierSignature string
	Rule              *cssparse.StyleRule
}

// Key is the exact-match equivalence key.
type Key struct {
	Signature string
	Context   string
	Modifiers string
}

// Key returns the equivalence key of d.
func (d Definition) Key() Key {
	return Key{
		Signature: d.Rule.Declarations.Signature(),
		Context:   d.Rule.Context,
		Modifiers: d.ModifierSignature,
	}
}

// ExtractDefinitions returns a Definition for every class-led segment of
// every rule that declares at least one non-custom property. Nested rules
// are skipped.
func ExtractDefinitions(rules []cssparse.StyleRule) []Definition {
	var defs []Definition
	for i := range rules {
		rule := &rules[i]
		if rule.Nested || rule.Declarations.SignatureLen() == 0 {
			continue
		}
		for _, seg := range selector.Decompose(rule.Selector) {
			defs = append(defs, Definition{
				Name:              seg.Base,
				Modifiers:         seg.Modifiers,
				ModifierSignature: seg.ModifierSignature(),
				Rule:              rule,
			})
		}
	}
	return defs
}
