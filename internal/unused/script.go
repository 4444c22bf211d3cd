package unused

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/yacobolo/cssconsolidate/internal/rewrite"
)

var (
	classAttrPattern       = regexp.MustCompile(`(?:className|class)\s*=\s*["']([^"']+)["']`)
	braceStringPattern     = regexp.MustCompile(`className\s*=\s*\{\s*["']([^"']+)["']\s*\}`)
	templatePattern        = regexp.MustCompile("`([^`]*)`")
	wordPattern            = regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_-]*`)
	dynamicPrefixPattern   = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_-]*[-_])\$\{`)
	classCallPattern       = regexp.MustCompile(`(?:classList\.(?:add|remove|toggle|contains)|addClass|removeClass|toggleClass|hasClass)\s*\(\s*["']([^"']+)["']`)
	stylesDotPattern       = regexp.MustCompile(`styles\.([a-zA-Z_][a-zA-Z0-9_]*)`)
	stylesBracketPattern   = regexp.MustCompile(`styles\[["']([^"']+)["']\]`)
	quotedClassPattern     = regexp.MustCompile(`["']([a-zA-Z_][a-zA-Z0-9_-]*)["']`)
	classNamePrefixPattern = regexp.MustCompile(`classNamePrefix\s*=\s*["']([^"']+)["']`)
	camelBoundary          = regexp.MustCompile(`([a-z])([A-Z])`)
)

// classLikePrefixes mark single-word strings that are probably classes.
var classLikePrefixes = []string{
	"is-", "has-", "btn", "card", "modal", "form", "nav", "menu", "list", "item",
	"container", "wrapper", "section", "header", "footer", "sidebar", "content",
	"page", "view", "row", "col", "grid", "flex",
}

// libraryPrefixes are class families applied by UI libraries at runtime.
var libraryPrefixes = []struct {
	pattern  *regexp.Regexp
	prefixes []string
}{
	{regexp.MustCompile(`from\s+['"]react-tabs['"]`), []string{"react-tabs__"}},
	{regexp.MustCompile(`from\s+['"]react-datepicker['"]`), []string{"react-datepicker__", "react-datepicker-"}},
	{regexp.MustCompile(`from\s+['"]react-modal['"]`), []string{"ReactModal__"}},
}

// AddScript records every class reference found in JS, JSX or TS source.
func (d *Detector) AddScript(content []byte) {
	src := stripComments(string(content))

	// Everything the rewriter would rename counts as a reference.
	for _, name := range rewrite.ScriptClasses([]byte(src)) {
		d.references[name] = true
	}

	for _, m := range classAttrPattern.FindAllStringSubmatch(src, -1) {
		d.addTokens(m[1])
	}
	for _, m := range braceStringPattern.FindAllStringSubmatch(src, -1) {
		d.addTokens(m[1])
	}

	for _, m := range templatePattern.FindAllStringSubmatch(src, -1) {
		for _, word := range wordPattern.FindAllString(m[1], -1) {
			if strings.Contains(word, "-") || isLower(word) {
				d.references[word] = true
			}
		}
		for _, p := range dynamicPrefixPattern.FindAllStringSubmatch(m[1], -1) {
			d.prefixes[p[1]] = true
		}
	}

	for _, m := range classCallPattern.FindAllStringSubmatch(src, -1) {
		d.addTokens(m[1])
	}

	for _, m := range stylesDotPattern.FindAllStringSubmatch(src, -1) {
		d.references[m[1]] = true
		d.references[strings.ToLower(camelBoundary.ReplaceAllString(m[1], "$1-$2"))] = true
	}
	for _, m := range stylesBracketPattern.FindAllStringSubmatch(src, -1) {
		d.references[m[1]] = true
	}

	for _, m := range quotedClassPattern.FindAllStringSubmatch(src, -1) {
		if strings.Contains(m[1], "-") || hasAnyPrefix(m[1], classLikePrefixes) {
			d.references[m[1]] = true
		}
	}

	for _, m := range classNamePrefixPattern.FindAllStringSubmatch(src, -1) {
		d.prefixes[m[1]+"__"] = true
		d.prefixes[m[1]+"-"] = true
	}

	for _, lib := range libraryPrefixes {
		if lib.pattern.MatchString(src) {
			for _, p := range lib.prefixes {
				d.prefixes[p] = true
			}
		}
	}
}

// stripComments removes // and /* */ comments outside string and template
// literals.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			j := i + 1
			for j < len(src) && src[j] != c && (c == '`' || src[j] != '\n') {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			if j < len(src) {
				j++
			}
			if j > len(src) {
				j = len(src)
			}
			b.WriteString(src[i:j])
			i = j
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			i += end + 4
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// isLower reports whether s has a cased letter and all cased letters are
// lower case.
func isLower(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
