package rewrite

import (
	"bytes"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// HTML returns the class references in an HTML document: class attribute
// values of start and self-closing tags, plus anything Script finds inside
// inline <script> bodies.
func (r *Rewriter) HTML(content []byte) []Match {
	if len(r.renames) == 0 {
		return nil
	}
	c := r.newCollector(content, 0)
	r.scanHTML(c, content)
	return c.sorted()
}

// HTMLClasses returns every token HTML treats as a class reference, renamed
// or not.
func HTMLClasses(content []byte) []string {
	r := &Rewriter{log: zap.NewNop()}
	c := r.newReferenceCollector(content)
	r.scanHTML(c, content)
	return c.names()
}

func (r *Rewriter) scanHTML(c *collector, content []byte) {
	z := html.NewTokenizer(bytes.NewReader(content))
	offset := 0
	inScript := false
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := z.Raw()
		start := offset
		offset += len(raw)

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			inScript = tt == html.StartTagToken && string(name) == "script"
			if hasAttr && hasClassAttr(z) {
				c.classAttrs(start, raw)
			}
		case html.TextToken:
			if inScript {
				c.script(start, start+len(raw))
			}
			inScript = false
		default:
			inScript = false
		}
	}

	if offset != len(content) {
		r.log.Debug("Tokenizer stopped early", zap.Int("offset", offset), zap.Int("size", len(content)))
	}
}

func hasClassAttr(z *html.Tokenizer) bool {
	for {
		key, _, more := z.TagAttr()
		if string(key) == "class" {
			return true
		}
		if !more {
			return false
		}
	}
}

// classAttrs token-replaces every class value within the raw tag at start.
// Attributes are walked in order, so text inside another attribute's value
// is never taken for a class attribute.
func (c *collector) classAttrs(start int, raw []byte) {
	end := len(raw)
	i := 1
	for i < end && !isSpace(raw[i]) && raw[i] != '>' && raw[i] != '/' {
		i++
	}

	for i < end {
		for i < end && (isSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= end || raw[i] == '>' {
			return
		}

		nameStart := i
		for i < end && !isSpace(raw[i]) && raw[i] != '=' && raw[i] != '>' && raw[i] != '/' {
			i++
		}
		if i == nameStart {
			i++
			continue
		}
		name := raw[nameStart:i]

		j := skipSpaces(raw, i, end)
		if j >= end || raw[j] != '=' {
			i = j
			continue
		}
		j = skipSpaces(raw, j+1, end)

		var lo, hi int
		if j < end && (raw[j] == '"' || raw[j] == '\'') {
			k := bytes.IndexByte(raw[j+1:], raw[j])
			if k < 0 {
				return
			}
			lo, hi = j+1, j+1+k
			i = hi + 1
		} else {
			lo = j
			for j < end && !isSpace(raw[j]) && raw[j] != '>' {
				j++
			}
			hi = j
			i = j
		}

		if bytes.EqualFold(name, []byte("class")) {
			c.tokens(start+lo, start+hi, false, false)
		}
	}
}
