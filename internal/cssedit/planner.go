// Package cssedit plans the edits a consolidation run makes to stylesheets:
// selector renames, removal of unused selectors, literal duplicate merging
// and pruning of conditional blocks that end up empty.
package cssedit

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/cssconsolidate/internal/cssparse"
	"github.com/yacobolo/cssconsolidate/internal/selector"
	"github.com/yacobolo/cssconsolidate/internal/source"
)

// ChangeKind classifies a planned change.
type ChangeKind string

const (
	ChangeRename          ChangeKind = "rename"
	ChangeMerge           ChangeKind = "merge"
	ChangeRemoveDuplicate ChangeKind = "remove-duplicate"
	ChangeRemoveUnused    ChangeKind = "remove-unused"
	ChangePrune           ChangeKind = "prune"
)

// Change describes one planned modification for reporting.
type Change struct {
	Kind     ChangeKind
	Line     int
	Selector string
	Message  string
}

// FilePlan holds the edits for one stylesheet.
type FilePlan struct {
	Path    string
	Edits   []source.Edit
	Changes []Change
}

// Options controls what the planner does.
type Options struct {
	Renames         map[string]string
	Unused          map[string]bool
	MergeDuplicates bool
	PruneEmpty      bool
	// Root is used to compute the relative paths that order duplicates.
	Root   string
	Logger *zap.Logger
}

type sheetState struct {
	sheet   *cssparse.Stylesheet
	rel     string
	rules   []*ruleState
	blocks  []*blockState
	changes []Change
	// inner holds selectors inside nested rule bodies and block at-rules.
	// They are only ever renamed.
	inner []*ruleState
}

type ruleState struct {
	sheet    *sheetState
	rule     cssparse.StyleRule
	parent   *blockState
	outer    *ruleState
	selector string
	body     *string
	deleted  bool
}

type blockState struct {
	item     *cssparse.Item
	parent   *blockState
	rules    []*ruleState
	children []*blockState
	opaque   bool
	pruned   bool
}

type planner struct {
	opts   Options
	log    *zap.Logger
	sheets []*sheetState
}

// Plan computes the edits for every sheet. Sheets without changes are
// omitted. The result is ordered like sheets.
func Plan(sheets []*cssparse.Stylesheet, opts Options) []FilePlan {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	p := &planner{opts: opts, log: log.Named("cssedit")}

	for _, sh := range sheets {
		st := &sheetState{sheet: sh, rel: relPath(opts.Root, sh.Path)}
		p.collect(st, sh.Items, cssparse.TopLevel, nil)
		p.sheets = append(p.sheets, st)
	}

	// 1. Per-rule selector changes
	for _, st := range p.sheets {
		for _, r := range st.rules {
			p.rewriteSelector(r)
		}
		for _, r := range st.inner {
			p.rename(r)
		}
	}

	// 2. Literal duplicates across all sheets
	if opts.MergeDuplicates {
		p.mergeDuplicates()
	}

	// 3. Conditional blocks emptied by this run
	if opts.PruneEmpty {
		for _, st := range p.sheets {
			for _, b := range st.blocks {
				p.prune(st, b)
			}
		}
	}

	// 4. Edits
	var plans []FilePlan
	for _, st := range p.sheets {
		fp := p.edits(st)
		if len(fp.Edits) == 0 && len(fp.Changes) == 0 {
			continue
		}
		plans = append(plans, fp)
	}
	return plans
}

func (p *planner) collect(st *sheetState, items []cssparse.Item, context string, parent *blockState) {
	for i := range items {
		item := &items[i]
		switch item.Kind {
		case cssparse.KindRule:
			r := newRule(st, st.sheet.StyleRule(item, context), parent, nil)
			st.rules = append(st.rules, r)
			if parent != nil {
				parent.rules = append(parent.rules, r)
			}
			p.collectInner(st, item.Children, context, parent, r)
		case cssparse.KindAtRule:
			b := &blockState{item: item, parent: parent}
			if parent != nil {
				parent.children = append(parent.children, b)
			} else {
				st.blocks = append(st.blocks, b)
			}
			p.collect(st, item.Children, cssparse.ContextLabel(st.sheet.Text(item.Prelude)), b)
		case cssparse.KindOpaque, cssparse.KindOpaqueAtRule:
			if parent != nil {
				parent.opaque = true
			}
			if item.Kind == cssparse.KindOpaqueAtRule {
				p.collectBlockAtRule(st, item, context, parent, nil)
			}
		}
	}
}

// collectInner records the selectors of rules found inside a nested rule
// body or a block at-rule. outer is the nearest enclosing rule, if any.
func (p *planner) collectInner(st *sheetState, items []cssparse.Item, context string, parent *blockState, outer *ruleState) {
	for i := range items {
		item := &items[i]
		switch item.Kind {
		case cssparse.KindRule:
			r := newRule(st, st.sheet.StyleRule(item, context), parent, outer)
			st.inner = append(st.inner, r)
			p.collectInner(st, item.Children, context, parent, r)
		case cssparse.KindAtRule:
			p.collectInner(st, item.Children, context, parent, outer)
		case cssparse.KindOpaqueAtRule:
			p.collectBlockAtRule(st, item, context, parent, outer)
		}
	}
}

// collectBlockAtRule handles an opaque at-rule: the @scope prelude names
// classes, and any rules in its body are renamed like nested rules.
func (p *planner) collectBlockAtRule(st *sheetState, item *cssparse.Item, context string, parent *blockState, outer *ruleState) {
	header := st.sheet.Text(item.Prelude)
	if strings.HasPrefix(strings.ToLower(header), "@scope") {
		st.inner = append(st.inner, newRule(st, cssparse.StyleRule{
			File:         st.sheet.Path,
			Selector:     header,
			Context:      context,
			Span:         item.Span,
			SelectorSpan: item.Prelude,
			Line:         st.sheet.Lines.Line(item.Span.Start),
			Nested:       true,
		}, parent, outer))
	}
	p.collectInner(st, item.Children, context, parent, outer)
}

func newRule(st *sheetState, rule cssparse.StyleRule, parent *blockState, outer *ruleState) *ruleState {
	return &ruleState{
		sheet:    st,
		rule:     rule,
		parent:   parent,
		outer:    outer,
		selector: rule.Selector,
	}
}

func (p *planner) rewriteSelector(r *ruleState) {
	p.rename(r)

	kept, removed := selector.RemoveClasses(r.selector, p.opts.Unused)
	if removed {
		msg := "removed unused selectors: " + r.rule.Selector + " -> " + kept
		if kept == "" {
			r.deleted = true
			msg = "removed unused rule " + r.rule.Selector
		}
		r.sheet.changes = append(r.sheet.changes, Change{
			Kind:     ChangeRemoveUnused,
			Line:     r.rule.Line,
			Selector: r.rule.Selector,
			Message:  msg,
		})
		r.selector = kept
	}
}

// rename applies the rename map to r's selector. Parts that become equal
// after renaming are collapsed into one.
func (p *planner) rename(r *ruleState) {
	sel, renamed := selector.Rename(r.selector, p.opts.Renames)
	if len(renamed) == 0 {
		return
	}
	for _, old := range renamed {
		r.sheet.changes = append(r.sheet.changes, Change{
			Kind:     ChangeRename,
			Line:     r.rule.Line,
			Selector: r.rule.Selector,
			Message:  fmt.Sprintf("%s -> %s", old, p.opts.Renames[old]),
		})
	}
	r.selector, _ = selector.Dedupe(sel)
}

type occurrence struct {
	rule   *ruleState
	offset int
}

func (p *planner) mergeDuplicates() {
	index := make(map[string][]*ruleState)
	var keys []string

	for _, st := range p.sheets {
		for _, r := range st.rules {
			if r.deleted || r.rule.Nested || r.rule.Declarations.Len() == 0 {
				continue
			}
			key := selector.Normalize(r.selector) + "\x00" + r.rule.Context
			if _, ok := index[key]; !ok {
				keys = append(keys, key)
			}
			index[key] = append(index[key], r)
		}
	}

	for _, key := range keys {
		occ := index[key]
		if len(occ) < 2 {
			continue
		}

		sort.SliceStable(occ, func(i, j int) bool {
			if occ[i].sheet.rel != occ[j].sheet.rel {
				return occ[i].sheet.rel < occ[j].sheet.rel
			}
			return occ[i].rule.Span.Start < occ[j].rule.Span.Start
		})

		merged := occ[0].rule.Declarations.Clone()
		for _, r := range occ[1:] {
			merged.Merge(r.rule.Declarations)
		}

		canonical := occ[0]
		for _, r := range occ[1:] {
			if less(r, canonical) {
				canonical = r
			}
		}

		if !merged.Equal(canonical.rule.Declarations) {
			body := FormatBody(canonical.rule.Block, merged)
			canonical.body = &body
		}

		cs := canonical.sheet
		cs.changes = append(cs.changes, Change{
			Kind:     ChangeMerge,
			Line:     canonical.rule.Line,
			Selector: canonical.selector,
			Message:  fmt.Sprintf("merged %d duplicate(s) of %s", len(occ)-1, canonical.selector),
		})

		for _, r := range occ {
			if r == canonical {
				continue
			}
			r.deleted = true
			r.sheet.changes = append(r.sheet.changes, Change{
				Kind:     ChangeRemoveDuplicate,
				Line:     r.rule.Line,
				Selector: r.selector,
				Message:  fmt.Sprintf("removed duplicate %s (kept in %s:%d)", r.selector, cs.rel, canonical.rule.Line),
			})
		}

		p.log.Debug("Merged duplicates",
			zap.String("selector", canonical.selector),
			zap.String("context", canonical.rule.Context),
			zap.Int("occurrences", len(occ)))
	}
}

// less orders duplicate occurrences by file priority, path and offset.
func less(a, b *ruleState) bool {
	pa, pb := filePriority(a.sheet.rel), filePriority(b.sheet.rel)
	if pa != pb {
		return pa < pb
	}
	if a.sheet.rel != b.sheet.rel {
		return a.sheet.rel < b.sheet.rel
	}
	return a.rule.Span.Start < b.rule.Span.Start
}

var globalFiles = map[string]bool{
	"global.css": true,
	"themes.css": true,
	"index.css":  true,
}

// filePriority ranks shared locations first, then well-known global files.
func filePriority(rel string) int {
	parts := strings.Split(rel, "/")
	for _, dir := range parts[:len(parts)-1] {
		if dir == "common" || dir == "shared" {
			return 0
		}
	}
	if globalFiles[parts[len(parts)-1]] {
		return 1
	}
	return 2
}

// prune marks b pruned when everything it held was deleted by this run.
// It reports whether b is pruned.
func (p *planner) prune(st *sheetState, b *blockState) bool {
	deletions := false
	alive := b.opaque

	for _, child := range b.children {
		if p.prune(st, child) {
			deletions = true
		} else {
			alive = true
		}
	}
	for _, r := range b.rules {
		if r.deleted {
			deletions = true
		} else {
			alive = true
		}
	}

	b.pruned = deletions && !alive
	if b.pruned {
		header := st.sheet.Text(b.item.Prelude)
		st.changes = append(st.changes, Change{
			Kind:     ChangePrune,
			Line:     st.sheet.Lines.Line(b.item.Span.Start),
			Selector: header,
			Message:  "removed empty " + cssparse.ContextLabel(header),
		})
	}
	return b.pruned
}

func (p *planner) edits(st *sheetState) FilePlan {
	content := st.sheet.Content
	var edits, deletions []source.Edit

	var walk func(blocks []*blockState)
	walk = func(blocks []*blockState) {
		for _, b := range blocks {
			if b.pruned {
				deletions = append(deletions, source.Edit{Span: DeletionSpan(content, b.item.Span)})
				continue
			}
			walk(b.children)
		}
	}
	walk(st.blocks)

	for _, r := range st.rules {
		if r.parent != nil && r.parent.isPruned() {
			continue
		}
		if r.deleted {
			deletions = append(deletions, source.Edit{Span: DeletionSpan(content, r.rule.Span)})
			continue
		}
		if r.selector != r.rule.Selector {
			edits = append(edits, source.Edit{Span: r.rule.SelectorSpan, Text: r.selector})
		}
		if r.body != nil {
			edits = append(edits, source.Edit{Span: r.rule.BodySpan, Text: *r.body})
		}
	}
	for _, r := range st.inner {
		if r.selector == r.rule.Selector || r.removed() {
			continue
		}
		edits = append(edits, source.Edit{Span: r.rule.SelectorSpan, Text: r.selector})
	}

	edits = append(edits, clampDeletions(deletions)...)
	sort.Slice(edits, func(i, j int) bool { return edits[i].Span.Start < edits[j].Span.Start })

	changes := st.changes
	sort.SliceStable(changes, func(i, j int) bool { return changes[i].Line < changes[j].Line })

	return FilePlan{Path: st.sheet.Path, Edits: edits, Changes: changes}
}

// removed reports whether an enclosing rule or block is being deleted.
func (r *ruleState) removed() bool {
	if r.parent != nil && r.parent.isPruned() {
		return true
	}
	for cur := r.outer; cur != nil; cur = cur.outer {
		if cur.deleted {
			return true
		}
	}
	return false
}

func (b *blockState) isPruned() bool {
	for cur := b; cur != nil; cur = cur.parent {
		if cur.pruned {
			return true
		}
	}
	return false
}

// clampDeletions trims deletion spans so that none overlap.
func clampDeletions(deletions []source.Edit) []source.Edit {
	sort.Slice(deletions, func(i, j int) bool {
		return deletions[i].Span.Start < deletions[j].Span.Start
	})
	out := deletions[:0]
	end := 0
	for _, d := range deletions {
		if d.Span.Start < end {
			d.Span.Start = end
		}
		if d.Span.End <= d.Span.Start {
			continue
		}
		out = append(out, d)
		end = d.Span.End
	}
	return out
}

func relPath(root, path string) string {
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}
