// Package rewrite finds class name references in script and HTML markup and
// turns them into byte-exact replacements.
package rewrite

import (
	"sort"

	"go.uber.org/zap"

	"github.com/yacobolo/cssconsolidate/internal/source"
)

// Match is one class token to replace.
type Match struct {
	Span source.Span
	Old  string
	New  string
}

// Rewriter applies a rename map to markup.
type Rewriter struct {
	renames map[string]string
	log     *zap.Logger
}

// New creates a rewriter for renames. A nil logger disables logging.
func New(renames map[string]string, log *zap.Logger) *Rewriter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Rewriter{renames: renames, log: log.Named("rewrite")}
}

// Edits converts matches to plan edits.
func Edits(matches []Match) []source.Edit {
	edits := make([]source.Edit, len(matches))
	for i, m := range matches {
		edits[i] = source.Edit{Span: m.Span, Text: m.New}
	}
	return edits
}

// Apply returns content with every match replaced.
func Apply(path string, content []byte, matches []Match) ([]byte, error) {
	plan := source.NewPlan(path)
	for _, e := range Edits(matches) {
		if err := plan.Add(e); err != nil {
			return nil, err
		}
	}
	return plan.Apply(content)
}

// collector accumulates matches for one buffer.
type collector struct {
	r       *Rewriter
	content []byte
	base    int
	matches []Match
	// refs, when set, records every candidate token instead of matching
	// against the rename map.
	refs map[string]bool
}

func (r *Rewriter) newCollector(content []byte, base int) *collector {
	return &collector{r: r, content: content, base: base}
}

func (r *Rewriter) newReferenceCollector(content []byte) *collector {
	return &collector{r: r, content: content, refs: make(map[string]bool)}
}

// names returns the recorded reference tokens, sorted.
func (c *collector) names() []string {
	names := make([]string, 0, len(c.refs))
	for name := range c.refs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *collector) sorted() []Match {
	sort.Slice(c.matches, func(i, j int) bool {
		return c.matches[i].Span.Start < c.matches[j].Span.Start
	})
	return c.matches
}

// tokens replaces whitespace-separated tokens of content[start:end].
// Tokens touching start when openLeft, or end when openRight, are glued to
// a dynamic part and left alone.
func (c *collector) tokens(start, end int, openLeft, openRight bool) {
	for i := start; i < end; {
		if isSpace(c.content[i]) {
			i++
			continue
		}
		j := i
		for j < end && !isSpace(c.content[j]) {
			j++
		}
		if (openLeft && i == start) || (openRight && j == end) {
			i = j
			continue
		}
		c.replace(i, j)
		i = j
	}
}

// replace records a match if content[start:end] is a renamed class.
func (c *collector) replace(start, end int) {
	name := string(c.content[start:end])
	if c.refs != nil {
		c.refs[name] = true
		return
	}
	to, ok := c.r.renames[name]
	if !ok || to == name {
		return
	}
	c.matches = append(c.matches, Match{
		Span: source.Span{Start: c.base + start, End: c.base + end},
		Old:  name,
		New:  to,
	})
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
