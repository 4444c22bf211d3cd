// Package selector works on raw selector lists: splitting, normalizing,
// decomposing class-led segments and renaming or removing class references.
package selector

import (
	"sort"
	"strings"
)

// SplitList splits a selector list on commas outside parentheses,
// brackets and strings. Parts are returned untrimmed.
func SplitList(list string) []string {
	var parts []string
	depth := 0
	quote := byte(0)
	start := 0

	for i := 0; i < len(list); i++ {
		c := list[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\\':
			i++
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case (c == ')' || c == ']') && depth > 0:
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, list[start:i])
			start = i + 1
		}
	}

	return append(parts, list[start:])
}

// Normalize returns the list with each part whitespace-collapsed, empty
// parts dropped and parts sorted, joined by ", ".
func Normalize(list string) string {
	var parts []string
	for _, part := range SplitList(list) {
		if p := collapse(part); p != "" {
			parts = append(parts, p)
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// scanClasses calls fn with the span of every class name in sel, dot
// excluded. Classes inside strings and attribute brackets are skipped.
func scanClasses(sel string, fn func(start, end int)) {
	quote := byte(0)
	bracket := 0

	for i := 0; i < len(sel); i++ {
		c := sel[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\\':
			i++
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			bracket++
		case c == ']' && bracket > 0:
			bracket--
		case c == '.' && bracket == 0:
			end := identEnd(sel, i+1)
			if end > i+1 {
				fn(i+1, end)
				i = end - 1
			}
		}
	}
}

// identEnd returns the end of the identifier starting at i. Escapes and
// non-ASCII bytes are part of the identifier.
func identEnd(s string, i int) int {
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i = escapeEnd(s, i)
		case IsIdentByte(c):
			i++
		default:
			return i
		}
	}
	return i
}

// escapeEnd returns the end of the escape starting at the backslash at i. A
// hex escape takes up to six digits and one trailing whitespace.
func escapeEnd(s string, i int) int {
	j := i + 1
	for j < len(s) && j < i+7 && isHex(s[j]) {
		j++
	}
	if j == i+1 {
		return i + 2
	}
	switch {
	case strings.HasPrefix(s[j:], "\r\n"):
		j += 2
	case j < len(s) && isSpace(s[j]):
		j++
	}
	return j
}

// IsIdentByte reports whether c can continue a CSS identifier.
func IsIdentByte(c byte) bool {
	return c == '-' || c == '_' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// ClassNames returns every class referenced by sel, unescaped, in order of
// appearance.
func ClassNames(sel string) []string {
	var names []string
	scanClasses(sel, func(start, end int) {
		names = append(names, unescape(sel[start:end]))
	})
	return names
}

// Rename replaces whole class names according to renames and returns the
// new selector plus the distinct old names that were replaced. Map keys and
// values are unescaped names; replacements are escaped on write.
func Rename(sel string, renames map[string]string) (string, []string) {
	if len(renames) == 0 {
		return sel, nil
	}

	var b strings.Builder
	var replaced []string
	seen := make(map[string]bool)
	last := 0

	scanClasses(sel, func(start, end int) {
		name := unescape(sel[start:end])
		to, ok := renames[name]
		if !ok || to == name {
			return
		}
		b.WriteString(sel[last:start])
		b.WriteString(escape(to))
		last = end
		if !seen[name] {
			seen[name] = true
			replaced = append(replaced, name)
		}
	})

	if len(replaced) == 0 {
		return sel, nil
	}
	b.WriteString(sel[last:])
	return b.String(), replaced
}

// RemoveClasses drops every part of the list that references a dead class.
// It returns the remaining list and whether anything was dropped. An empty
// result means the whole rule should go.
func RemoveClasses(list string, dead map[string]bool) (string, bool) {
	if len(dead) == 0 {
		return list, false
	}

	parts := SplitList(list)
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if !usesAny(part, dead) {
			kept = append(kept, strings.TrimSpace(part))
		}
	}
	if len(kept) == len(parts) {
		return list, false
	}
	return joinParts(parts, kept), true
}

// Dedupe drops repeated parts of a selector list, comparing parts with
// whitespace collapsed. The first occurrence wins.
func Dedupe(list string) (string, bool) {
	parts := SplitList(list)
	seen := make(map[string]bool, len(parts))
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		key := collapse(part)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, strings.TrimSpace(part))
	}
	if len(kept) == len(parts) {
		return list, false
	}
	return joinParts(parts, kept), true
}

// joinParts joins kept with the separator style of the original parts.
func joinParts(parts, kept []string) string {
	sep := ", "
	if len(parts) > 1 {
		if lead := leadingSpace(parts[1]); strings.Contains(lead, "\n") {
			sep = "," + lead
		}
	}
	return strings.Join(kept, sep)
}

func usesAny(part string, names map[string]bool) bool {
	found := false
	scanClasses(part, func(start, end int) {
		if names[unescape(part[start:end])] {
			found = true
		}
	})
	return found
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t\r\n\f"))]
}
