package cssedit

import (
	"strings"

	"github.com/yacobolo/cssconsolidate/internal/cssparse"
	"github.com/yacobolo/cssconsolidate/internal/source"
)

const defaultIndent = "  "

// FormatBody renders decls in the shape of the original body: one
// declaration per line with the original indentation and line ending when
// the body spans lines, inline otherwise.
func FormatBody(original string, decls cssparse.Declarations) string {
	list := decls.List()
	trimmed := strings.TrimRight(original, " \t\r\n\f")
	closing := original[len(trimmed):]

	if strings.Contains(original, "\n") {
		newline := "\n"
		if strings.Contains(original, "\r\n") {
			newline = "\r\n"
		}
		indent := bodyIndent(original)
		var b strings.Builder
		for _, d := range list {
			b.WriteString(newline)
			b.WriteString(indent)
			b.WriteString(d.Property)
			b.WriteString(": ")
			b.WriteString(d.Value)
			b.WriteString(";")
		}
		if !strings.Contains(closing, "\n") {
			closing = newline
		}
		return b.String() + closing
	}

	lead := original[:len(original)-len(strings.TrimLeft(original, " \t\f"))]
	parts := make([]string, len(list))
	for i, d := range list {
		parts[i] = d.Property + ": " + d.Value + ";"
	}
	if lead == "" && closing == "" {
		return strings.Join(parts, " ")
	}
	if lead == "" {
		lead = " "
	}
	if closing == "" {
		closing = " "
	}
	return lead + strings.Join(parts, " ") + closing
}

// bodyIndent returns the whitespace before the first declaration line.
func bodyIndent(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	}
	return defaultIndent
}

// DeletionSpan widens span to whole lines when the construct occupies its
// lines alone, and swallows the blank lines before it when a blank line or
// the end of file follows. Otherwise the exact span is returned.
func DeletionSpan(content []byte, span source.Span) source.Span {
	start := span.Start
	for start > 0 && (content[start-1] == ' ' || content[start-1] == '\t') {
		start--
	}
	if start > 0 && content[start-1] != '\n' {
		return span
	}

	end := span.End
	for end < len(content) && (content[end] == ' ' || content[end] == '\t' || content[end] == '\r') {
		end++
	}
	switch {
	case end == len(content):
	case content[end] == '\n':
		end++
	default:
		return span
	}

	if end == len(content) || blankLineAt(content, end) {
		for start > 0 {
			prev := lineStart(content, start-1)
			if !isBlank(content[prev : start-1]) {
				break
			}
			start = prev
		}
	}

	return source.Span{Start: start, End: end}
}

// blankLineAt reports whether the line starting at i holds only whitespace.
func blankLineAt(content []byte, i int) bool {
	for ; i < len(content); i++ {
		switch content[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
		default:
			return false
		}
	}
	return true
}

// lineStart returns the start of the line containing the byte at i.
func lineStart(content []byte, i int) int {
	for i > 0 && content[i-1] != '\n' {
		i--
	}
	return i
}

func isBlank(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}
