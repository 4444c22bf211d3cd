package selector

import (
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Segment is a class-led part of a selector list split into its base class
// and modifier tokens. Base is unescaped.
type Segment struct {
	Raw       string
	Base      string
	Modifiers []string
}

// ModifierSignature returns the modifiers sorted and joined, the form used
// for equivalence keys.
func (s Segment) ModifierSignature() string {
	return ModifierSignature(s.Modifiers)
}

// ModifierSignature sorts a copy of mods and joins them with '|'.
func ModifierSignature(mods []string) string {
	if len(mods) == 0 {
		return ""
	}
	sorted := append([]string(nil), mods...)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}

// Decompose returns the class-led segments of a selector list. Segments
// that do not start with a class are skipped.
func Decompose(list string) []Segment {
	var segments []Segment
	for _, part := range SplitList(list) {
		if seg, ok := DecomposeSegment(part); ok {
			segments = append(segments, seg)
		}
	}
	return segments
}

type token struct {
	tt   css.TokenType
	text string
}

func tokenize(s string) []token {
	lexer := css.NewLexer(parse.NewInputString(s))
	var toks []token
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			return toks
		}
		if tt == css.CommentToken {
			continue
		}
		toks = append(toks, token{tt: tt, text: string(text)})
	}
}

// DecomposeSegment splits one comma part. ok is false when the part does not
// start with a class.
func DecomposeSegment(part string) (Segment, bool) {
	raw := collapse(part)
	toks := tokenize(raw)
	if len(toks) < 2 || !isDelim(toks[0], ".") || toks[1].tt != css.IdentToken {
		return Segment{}, false
	}

	seg := Segment{Raw: raw, Base: unescape(toks[1].text)}

	for i := 2; i < len(toks); {
		comb := ""
		j := i
		for j < len(toks) && (toks[j].tt == css.WhitespaceToken || isCombinator(toks[j])) {
			if toks[j].tt != css.WhitespaceToken {
				comb = toks[j].text
			} else if comb == "" {
				comb = " "
			}
			j++
		}
		if j == len(toks) {
			break
		}

		if j > i {
			compound, next, ok := readCompound(toks, j)
			if !ok {
				seg.Modifiers = append(seg.Modifiers, rest(toks, i))
				break
			}
			seg.Modifiers = append(seg.Modifiers, comb+compound)
			i = next
			continue
		}

		piece, next, ok := readSimple(toks, i)
		if !ok {
			seg.Modifiers = append(seg.Modifiers, rest(toks, i))
			break
		}
		seg.Modifiers = append(seg.Modifiers, piece)
		i = next
	}

	return seg, true
}

// readCompound reads simple selectors up to the next whitespace or combinator.
func readCompound(toks []token, i int) (string, int, bool) {
	var b strings.Builder
	for i < len(toks) && toks[i].tt != css.WhitespaceToken && !isCombinator(toks[i]) {
		piece, next, ok := readSimple(toks, i)
		if !ok {
			return "", i, false
		}
		b.WriteString(piece)
		i = next
	}
	return b.String(), i, b.Len() > 0
}

// readSimple reads one simple selector: a pseudo-class or pseudo-element,
// a class, an id, an attribute selector, a type selector or '*'.
func readSimple(toks []token, i int) (string, int, bool) {
	t := toks[i]
	switch {
	case t.tt == css.ColonToken:
		prefix := ":"
		i++
		if i < len(toks) && toks[i].tt == css.ColonToken {
			prefix = "::"
			i++
		}
		if i >= len(toks) {
			return "", i, false
		}
		switch toks[i].tt {
		case css.IdentToken:
			return prefix + toks[i].text, i + 1, true
		case css.FunctionToken:
			arg, next, ok := readUntilClose(toks, i+1, css.RightParenthesisToken)
			if !ok {
				return "", i, false
			}
			return prefix + toks[i].text + arg + ")", next, true
		}
		return "", i, false

	case isDelim(t, "."):
		if i+1 < len(toks) && toks[i+1].tt == css.IdentToken {
			return "." + toks[i+1].text, i + 2, true
		}
		return "", i, false

	case t.tt == css.HashToken:
		return t.text, i + 1, true

	case t.tt == css.LeftBracketToken:
		inner, next, ok := readUntilClose(toks, i+1, css.RightBracketToken)
		if !ok {
			return "", i, false
		}
		return "[" + strings.ReplaceAll(inner, " ", "") + "]", next, true

	case t.tt == css.IdentToken:
		return t.text, i + 1, true

	case isDelim(t, "*"), isDelim(t, "&"):
		return t.text, i + 1, true
	}
	return "", i, false
}

// readUntilClose collects token text up to the matching closing token.
// Nested parentheses and functions are tracked.
func readUntilClose(toks []token, i int, closing css.TokenType) (string, int, bool) {
	var b strings.Builder
	depth := 0
	for ; i < len(toks); i++ {
		t := toks[i]
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth == 0 {
				if t.tt != closing {
					return "", i, false
				}
				return collapse(b.String()), i + 1, true
			}
			depth--
		}
		b.WriteString(t.text)
	}
	return "", i, false
}

func rest(toks []token, i int) string {
	var b strings.Builder
	for _, t := range toks[i:] {
		b.WriteString(t.text)
	}
	return collapse(b.String())
}

func isDelim(t token, s string) bool {
	return t.tt == css.DelimToken && t.text == s
}

func isCombinator(t token) bool {
	return isDelim(t, ">") || isDelim(t, "+") || isDelim(t, "~")
}
