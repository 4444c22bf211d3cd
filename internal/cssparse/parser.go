package cssparse

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/cssconsolidate/internal/source"
)

// Parser builds structural item trees. It never fails on malformed input.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a parser. A nil logger disables logging.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("cssparse")}
}

// Parse structures content. path is only used for logging and reporting.
func (p *Parser) Parse(path string, content []byte) *Stylesheet {
	sc := &scanner{content: content, path: path, log: p.log}
	return &Stylesheet{
		Path:    path,
		Content: content,
		Items:   sc.items(0, len(content)),
		Lines:   source.NewLineIndex(content),
	}
}

type scanner struct {
	content []byte
	path    string
	log     *zap.Logger
}

// items structures content[start:end].
func (sc *scanner) items(start, end int) []Item {
	c := sc.content
	var items []Item

	for i := start; i < end; {
		switch {
		case isSpace(c[i]):
			j := i
			for j < end && isSpace(c[j]) {
				j++
			}
			items = append(items, Item{Kind: KindWhitespace, Span: source.Span{Start: i, End: j}})
			i = j

		case isCommentStart(c, i, end):
			j := skipComment(c, i, end)
			items = append(items, Item{Kind: KindComment, Span: source.Span{Start: i, End: j}})
			i = j

		case c[i] == '}':
			sc.degrade("stray closing brace", i)
			items = append(items, Item{Kind: KindOpaque, Span: source.Span{Start: i, End: i + 1}})
			i++

		default:
			item, next := sc.construct(i, end)
			items = append(items, item)
			i = next
		}
	}

	return items
}

// construct reads one rule or at-rule starting at i.
func (sc *scanner) construct(i, end int) (Item, int) {
	c := sc.content

	pos := findPreludeEnd(c, i, end)
	if pos < 0 {
		sc.degrade("text without a block", i)
		return Item{Kind: KindOpaque, Span: source.Span{Start: i, End: end}}, end
	}

	switch c[pos] {
	case ';':
		kind := KindOpaque
		if c[i] == '@' {
			kind = KindOpaqueAtRule
		}
		return Item{
			Kind:    kind,
			Span:    source.Span{Start: i, End: pos + 1},
			Prelude: trimSpan(c, i, pos),
		}, pos + 1
	case '}':
		return Item{Kind: KindOpaque, Span: source.Span{Start: i, End: pos}}, pos
	}

	closing, nested := matchBrace(c, pos, end)
	if closing < 0 {
		sc.degrade("unmatched opening brace", pos)
		return Item{Kind: KindOpaque, Span: source.Span{Start: i, End: end}}, end
	}

	item := Item{
		Span:    source.Span{Start: i, End: closing + 1},
		Prelude: trimSpan(c, i, pos),
		Body:    source.Span{Start: pos + 1, End: closing},
	}

	switch {
	case item.Prelude.Empty():
		item.Kind = KindOpaque
	case c[i] == '@':
		if conditionalAtRules[atRuleName(c, i, pos)] {
			item.Kind = KindAtRule
			item.Children = sc.items(pos+1, closing)
		} else {
			item.Kind = KindOpaqueAtRule
		}
	default:
		item.Kind = KindRule
		item.Nested = nested
	}
	if nested && (item.Kind == KindRule || item.Kind == KindOpaqueAtRule) {
		item.Children = sc.items(pos+1, closing)
	}

	return item, closing + 1
}

func (sc *scanner) degrade(reason string, offset int) {
	sc.log.Debug("Keeping remainder as opaque text",
		zap.String("file", sc.path),
		zap.String("reason", reason),
		zap.Int("offset", offset))
}

// findPreludeEnd returns the offset of the first '{', ';' or '}' outside
// strings and comments, or -1 when none exists or a string is unterminated.
func findPreludeEnd(c []byte, i, end int) int {
	for i < end {
		switch {
		case isCommentStart(c, i, end):
			i = skipComment(c, i, end)
		case c[i] == '"' || c[i] == '\'':
			next, ok := skipString(c, i, end)
			if !ok {
				return -1
			}
			i = next
		case c[i] == '{' || c[i] == ';' || c[i] == '}':
			return i
		default:
			i++
		}
	}
	return -1
}

// matchBrace returns the offset of the '}' closing the '{' at open, and
// whether any inner braces were seen. It returns -1 when unbalanced.
func matchBrace(c []byte, open, end int) (int, bool) {
	depth := 1
	nested := false
	for i := open + 1; i < end; {
		switch {
		case isCommentStart(c, i, end):
			i = skipComment(c, i, end)
			continue
		case c[i] == '"' || c[i] == '\'':
			next, ok := skipString(c, i, end)
			if !ok {
				return -1, nested
			}
			i = next
			continue
		case c[i] == '{':
			depth++
			nested = true
		case c[i] == '}':
			depth--
			if depth == 0 {
				return i, nested
			}
		}
		i++
	}
	return -1, nested
}

// skipComment returns the offset after the comment starting at i. An
// unterminated comment runs to end.
func skipComment(c []byte, i, end int) int {
	for j := i + 2; j+1 < end; j++ {
		if c[j] == '*' && c[j+1] == '/' {
			return j + 2
		}
	}
	return end
}

// skipString returns the offset after the string literal starting at i.
// Backslash escapes the next byte.
func skipString(c []byte, i, end int) (int, bool) {
	quote := c[i]
	for j := i + 1; j < end; j++ {
		switch c[j] {
		case '\\':
			j++
		case quote:
			return j + 1, true
		}
	}
	return end, false
}

func isCommentStart(c []byte, i, end int) bool {
	return c[i] == '/' && i+1 < end && c[i+1] == '*'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// atRuleName returns the lowercased keyword of the at-rule starting at i.
func atRuleName(c []byte, i, end int) string {
	j := i + 1
	for j < end && (isIdentByte(c[j])) {
		j++
	}
	return strings.ToLower(string(c[i+1 : j]))
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func trimSpan(c []byte, start, end int) source.Span {
	for start < end && isSpace(c[start]) {
		start++
	}
	for end > start && isSpace(c[end-1]) {
		end--
	}
	return source.Span{Start: start, End: end}
}
