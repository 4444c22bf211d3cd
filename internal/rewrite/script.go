package rewrite

import (
	"bytes"

	"go.uber.org/zap"
)

var (
	classAttrs = [][]byte{[]byte("className"), []byte("class")}

	classListMethods = [][]byte{[]byte("add"), []byte("remove"), []byte("toggle"), []byte("contains")}
	classFunctions   = [][]byte{[]byte("addClass"), []byte("removeClass"), []byte("toggleClass"), []byte("hasClass")}
	classListPrefix  = []byte("classList.")
)

// Script returns the class references in JS, JSX or TS source. The scan is
// a single pass over the raw text, so markup embedded in strings is found
// too.
func (r *Rewriter) Script(content []byte) []Match {
	if len(r.renames) == 0 {
		return nil
	}
	c := r.newCollector(content, 0)
	c.script(0, len(content))
	return c.sorted()
}

// ScriptClasses returns every token Script treats as a class reference,
// renamed or not.
func ScriptClasses(content []byte) []string {
	c := (&Rewriter{log: zap.NewNop()}).newReferenceCollector(content)
	c.script(0, len(content))
	return c.names()
}

func (c *collector) script(start, end int) {
	s := c.content
	for i := start; i < end; {
		if !isIdentStart(s[i]) || (i > start && isIdentPart(s[i-1])) {
			i++
			continue
		}
		if next, ok := c.classAttribute(i, end); ok {
			i = next
			continue
		}
		if next, ok := c.classCall(i, end); ok {
			i = next
			continue
		}
		i = identEnd(s, i, end)
	}
}

// classAttribute handles className=... and class=... at i.
func (c *collector) classAttribute(i, end int) (int, bool) {
	s := c.content
	for _, attr := range classAttrs {
		if !hasWordAt(s, i, end, attr) {
			continue
		}
		j := skipSpaces(s, i+len(attr), end)
		if j >= end || s[j] != '=' {
			return 0, false
		}
		if j+1 < end && (s[j+1] == '=' || s[j+1] == '>') {
			return 0, false
		}
		j = skipSpaces(s, j+1, end)
		if j >= end {
			return 0, false
		}

		switch s[j] {
		case '"', '\'':
			// Attribute values may span lines and have no escapes.
			k := bytes.IndexByte(s[j+1:end], s[j])
			if k < 0 {
				return j + 1, true
			}
			c.tokens(j+1, j+1+k, false, false)
			return j + 2 + k, true
		case '`':
			return c.template(j+1, end), true
		case '{':
			return c.expression(j+1, end, '}', true), true
		}
		return j, true
	}
	return 0, false
}

// classCall handles classList.add(...) and the jQuery style helpers.
func (c *collector) classCall(i, end int) (int, bool) {
	s := c.content
	j := -1

	if bytes.HasPrefix(s[i:end], classListPrefix) {
		k := i + len(classListPrefix)
		for _, m := range classListMethods {
			if hasWordAt(s, k, end, m) {
				j = k + len(m)
				break
			}
		}
	} else {
		for _, fn := range classFunctions {
			if hasWordAt(s, i, end, fn) {
				j = i + len(fn)
				break
			}
		}
	}
	if j < 0 {
		return 0, false
	}

	j = skipSpaces(s, j, end)
	if j >= end || s[j] != '(' {
		return 0, false
	}
	return c.expression(j+1, end, ')', false), true
}

// expression scans a JS expression up to the unbalanced closer. Strings get
// the token replace; when keys is set, bare object keys are renamed too.
// It returns the offset after the closer.
func (c *collector) expression(i, end int, closer byte, keys bool) int {
	s := c.content
	depth := 0
	keyPos := false

	for i < end {
		ch := s[i]
		switch {
		case ch == '/' && i+1 < end && s[i+1] == '/':
			for i < end && s[i] != '\n' {
				i++
			}
		case ch == '/' && i+1 < end && s[i+1] == '*':
			k := bytes.Index(s[i+2:end], []byte("*/"))
			if k < 0 {
				return end
			}
			i += k + 4
		case ch == '"' || ch == '\'':
			close, ok := stringEnd(s, i, end)
			if !ok {
				return end
			}
			c.tokens(i+1, close-1, false, false)
			i = close
			keyPos = false
		case ch == '`':
			i = c.template(i+1, end)
			keyPos = false
		case ch == '{' || ch == '(' || ch == '[':
			depth++
			keyPos = ch == '{'
			i++
		case ch == '}' || ch == ')' || ch == ']':
			if depth == 0 {
				if ch == closer {
					return i + 1
				}
				// Unbalanced: stop without consuming.
				return i
			}
			depth--
			keyPos = false
			i++
		case ch == ',':
			keyPos = true
			i++
		case isSpace(ch):
			i++
		case isIdentStart(ch):
			k := identEnd(s, i, end)
			if keys && keyPos && depth > 0 && isKey(s, k, end) {
				c.replace(i, k)
			}
			keyPos = false
			i = k
		default:
			keyPos = false
			i++
		}
	}
	return end
}

// template scans a template literal body starting after the opening
// backtick and returns the offset after the closing one.
func (c *collector) template(i, end int) int {
	s := c.content
	segStart := i
	openLeft := false

	for i < end {
		switch {
		case s[i] == '\\':
			i += 2
		case s[i] == '`':
			c.tokens(segStart, i, openLeft, false)
			return i + 1
		case s[i] == '$' && i+1 < end && s[i+1] == '{':
			c.tokens(segStart, i, openLeft, true)
			i = c.expression(i+2, end, '}', true)
			segStart = i
			openLeft = true
		default:
			i++
		}
	}
	return end
}

// isKey reports whether an identifier ending at i is followed by ':'.
func isKey(s []byte, i, end int) bool {
	i = skipSpaces(s, i, end)
	return i < end && s[i] == ':'
}

// stringEnd returns the offset after the closing quote of the string
// starting at i. Newlines end single and double quoted strings.
func stringEnd(s []byte, i, end int) (int, bool) {
	quote := s[i]
	for j := i + 1; j < end; j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1, true
		case '\n':
			return j, false
		}
	}
	return end, false
}

func hasWordAt(s []byte, i, end int, word []byte) bool {
	k := i + len(word)
	if k > end || !bytes.Equal(s[i:k], word) {
		return false
	}
	return k == end || !isIdentPart(s[k])
}

func skipSpaces(s []byte, i, end int) int {
	for i < end && isSpace(s[i]) {
		i++
	}
	return i
}

func identEnd(s []byte, i, end int) int {
	for i < end && isIdentPart(s[i]) {
		i++
	}
	return i
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isIdentPart includes '-' so data-class and my-className are not matched.
func isIdentPart(b byte) bool {
	return isIdentStart(b) || b == '-' || (b >= '0' && b <= '9')
}
