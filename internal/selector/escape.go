package selector

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// unescape resolves CSS escapes in an identifier, so `sm\:flex` becomes
// "sm:flex", the form markup uses.
func unescape(ident string) string {
	if !strings.Contains(ident, `\`) {
		return ident
	}

	var b strings.Builder
	b.Grow(len(ident))
	for i := 0; i < len(ident); i++ {
		c := ident[i]
		if c != '\\' || i+1 == len(ident) {
			b.WriteByte(c)
			continue
		}

		j := i + 1
		for j < len(ident) && j < i+7 && isHex(ident[j]) {
			j++
		}
		if j == i+1 {
			_, size := utf8.DecodeRuneInString(ident[j:])
			b.WriteString(ident[j : j+size])
			i = j + size - 1
			continue
		}

		code, _ := strconv.ParseUint(ident[i+1:j], 16, 32)
		r := rune(code)
		if r == 0 || r > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
			r = utf8.RuneError
		}
		b.WriteRune(r)
		switch {
		case strings.HasPrefix(ident[j:], "\r\n"):
			j += 2
		case j < len(ident) && isSpace(ident[j]):
			j++
		}
		i = j - 1
	}
	return b.String()
}

// escape writes name as a CSS identifier. Bytes that cannot appear in an
// identifier get a backslash, and a leading digit becomes a hex escape.
func escape(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i, r := range name {
		switch {
		case r >= '0' && r <= '9' && (i == 0 || (i == 1 && name[0] == '-')):
			fmt.Fprintf(&b, `\%x `, r)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\%x `, r)
		case r >= 0x80 || IsIdentByte(byte(r)):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
