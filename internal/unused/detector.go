// Package unused finds classes that stylesheets define but no script or
// HTML file references.
package unused

import (
	"bytes"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/yacobolo/cssconsolidate/internal/cssparse"
	"github.com/yacobolo/cssconsolidate/internal/rewrite"
	"github.com/yacobolo/cssconsolidate/internal/selector"
)

var defaultIgnorePatterns = []string{
	"is-active", "is-disabled", "is-hidden", "is-visible", "is-open", "is-closed",
	"is-loading", "is-loaded", "is-error", "is-success", "is-selected", "is-focused",
	"*--active", "*--disabled", "*--hidden", "*--visible", "*--open", "*--closed",
	"*--loading", "*--selected", "*--focused", "*--error", "*--success",
}

// DefaultIgnorePatterns returns the glob patterns for state classes that
// are usually toggled from code the detector cannot see.
func DefaultIgnorePatterns() []string {
	return append([]string(nil), defaultIgnorePatterns...)
}

// Location is where a class appears in a stylesheet.
type Location struct {
	File string `json:"file" yaml:"file"`
	Line int    `json:"line" yaml:"line"`
}

// Class is an unused class and every place it is defined.
type Class struct {
	Name      string     `json:"name" yaml:"name"`
	Locations []Location `json:"locations" yaml:"locations"`
}

// Report is the outcome of a detection run.
type Report struct {
	Defined         int      `json:"defined" yaml:"defined"`
	References      int      `json:"references" yaml:"references"`
	DynamicPrefixes []string `json:"dynamicPrefixes,omitempty" yaml:"dynamicPrefixes,omitempty"`
	Unused          []Class  `json:"unused" yaml:"unused"`
}

// Names returns the unused class names as a set.
func (r *Report) Names() map[string]bool {
	names := make(map[string]bool, len(r.Unused))
	for _, c := range r.Unused {
		names[c.Name] = true
	}
	return names
}

// Detector accumulates definitions and references.
type Detector struct {
	ignore     []string
	log        *zap.Logger
	defined    map[string][]Location
	references map[string]bool
	prefixes   map[string]bool
}

// NewDetector creates a detector. Class names matching any ignore glob are
// never reported.
func NewDetector(ignore []string, log *zap.Logger) *Detector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Detector{
		ignore:     ignore,
		log:        log.Named("unused"),
		defined:    make(map[string][]Location),
		references: make(map[string]bool),
		prefixes:   make(map[string]bool),
	}
}

// AddStylesheet records every class used in a rule selector of sheet.
func (d *Detector) AddStylesheet(sheet *cssparse.Stylesheet) {
	sheet.Walk(func(item *cssparse.Item, _ string) {
		if item.Kind != cssparse.KindRule {
			return
		}
		line := sheet.Lines.Line(item.Span.Start)
		seen := make(map[string]bool)
		for _, name := range selector.ClassNames(sheet.Text(item.Prelude)) {
			if seen[name] {
				continue
			}
			seen[name] = true
			d.defined[name] = append(d.defined[name], Location{File: sheet.Path, Line: line})
		}
	})
}

// AddHTML records class attributes and inline script references.
func (d *Detector) AddHTML(content []byte) {
	for _, name := range rewrite.HTMLClasses(content) {
		d.references[name] = true
	}

	z := html.NewTokenizer(bytes.NewReader(content))
	inScript := false
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			inScript = tt == html.StartTagToken && string(name) == "script"
		case html.TextToken:
			if inScript {
				d.AddScript(z.Raw())
			}
			inScript = false
		default:
			inScript = false
		}
	}
}

// Report computes the unused classes.
func (d *Detector) Report() *Report {
	r := &Report{
		Defined:    len(d.defined),
		References: len(d.references),
	}
	for p := range d.prefixes {
		r.DynamicPrefixes = append(r.DynamicPrefixes, p)
	}
	sort.Strings(r.DynamicPrefixes)

	for name, locs := range d.defined {
		if d.used(name) {
			continue
		}
		sorted := append([]Location(nil), locs...)
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].File != sorted[j].File {
				return sorted[i].File < sorted[j].File
			}
			return sorted[i].Line < sorted[j].Line
		})
		r.Unused = append(r.Unused, Class{Name: name, Locations: sorted})
	}
	sort.Slice(r.Unused, func(i, j int) bool { return r.Unused[i].Name < r.Unused[j].Name })

	d.log.Debug("Detection finished",
		zap.Int("defined", r.Defined),
		zap.Int("references", r.References),
		zap.Int("unused", len(r.Unused)))
	return r
}

func (d *Detector) used(name string) bool {
	if d.references[name] {
		return true
	}
	for p := range d.prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	for _, pattern := range d.ignore {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func (d *Detector) addTokens(s string) {
	for _, tok := range strings.Fields(s) {
		d.references[tok] = true
	}
}
