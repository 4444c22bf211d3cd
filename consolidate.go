package cssconsolidate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"github.com/yacobolo/cssconsolidate/internal/backup"
	"github.com/yacobolo/cssconsolidate/internal/consolidate"
	"github.com/yacobolo/cssconsolidate/internal/cssedit"
	"github.com/yacobolo/cssconsolidate/internal/cssparse"
	"github.com/yacobolo/cssconsolidate/internal/rewrite"
	"github.com/yacobolo/cssconsolidate/internal/source"
	"github.com/yacobolo/cssconsolidate/internal/unused"
)

// loadedFile is a discovered file with its original content.
type loadedFile struct {
	SourceFile
	content []byte
	mode    fs.FileMode
}

// Consolidate is the main entry point. Per-file read and write failures are
// collected in Result.Errors; a scan or backup failure aborts the run before
// any file is written.
func Consolidate(config Config) (*Result, error) {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if config.Root == "" {
		config.Root = "."
	}
	result := &Result{Root: config.Root, DryRun: config.DryRun}

	// 1. Discover files
	sources, stats, err := Discover(config)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.Stats.ScanStats = stats

	// 2. Read everything once, parse stylesheets
	files := result.load(sources)
	sheets := parseSheets(files, log)
	for _, f := range files {
		switch f.Kind {
		case KindCSS:
			result.Stats.CSSFiles++
		case KindScript:
			result.Stats.ScriptFiles++
		case KindHTML:
			result.Stats.HTMLFiles++
		}
	}

	// 3. Group equivalent classes
	var rules []cssparse.StyleRule
	for _, sh := range sheets {
		rules = append(rules, sh.Rules()...)
	}
	analysis := consolidate.Analyze(rules, consolidate.Options{
		MinProperties:    config.MinProperties,
		Transitive:       config.Transitive,
		ExcludedPrefixes: config.ExcludedPrefixes,
		UtilityPrefixes:  config.UtilityPrefixes,
		Logger:           log,
	})
	result.Warnings = append(result.Warnings, analysis.Warnings...)
	result.Groups = reportGroups(config.Root, analysis.Groups)
	result.Renames = analysis.Renames.Sorted()
	result.Stats.Rules = len(rules)
	result.Stats.Definitions = analysis.Definitions
	result.Stats.Candidates = analysis.Candidates
	result.Stats.Groups = len(analysis.Groups)
	result.Stats.ClassesConsolidated = len(analysis.Renames)

	log.Debug("Analysis finished",
		zap.Int("rules", len(rules)),
		zap.Int("groups", len(analysis.Groups)),
		zap.Int("renames", len(analysis.Renames)))

	// 4. Dead classes
	dead := result.deadClasses(config, sheets, files, analysis.Groups, log)

	// 5. Plan edits
	plans := cssedit.Plan(sheets, cssedit.Options{
		Renames:         analysis.Renames,
		Unused:          dead,
		MergeDuplicates: config.MergeDuplicates,
		PruneEmpty:      config.PruneEmpty,
		Root:            config.Root,
		Logger:          log,
	})
	result.planStylesheets(files, sheets, plans)
	result.planMarkup(files, rewrite.New(analysis.Renames, log))

	// 6. Back up originals, then write
	if !config.DryRun {
		if err := result.write(config, log); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// FindUnused reports the classes defined under config.Root that no script
// or HTML file references.
func FindUnused(config Config) (*UnusedReport, error) {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if config.Root == "" {
		config.Root = "."
	}
	result := &Result{Root: config.Root}

	sources, _, err := Discover(config)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	files := result.load(sources)
	report := detectUnused(config, parseSheets(files, log), files, log)
	if err := result.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// load reads every source, recording failures and skipping those files.
func (r *Result) load(sources []SourceFile) []*loadedFile {
	files := make([]*loadedFile, 0, len(sources))
	for _, src := range sources {
		info, err := os.Stat(src.Path)
		if err != nil {
			r.Errors = append(r.Errors, fmt.Errorf("read %s: %w", src.Rel, err))
			continue
		}
		content, err := os.ReadFile(src.Path)
		if err != nil {
			r.Errors = append(r.Errors, fmt.Errorf("read %s: %w", src.Rel, err))
			continue
		}
		files = append(files, &loadedFile{SourceFile: src, content: content, mode: info.Mode().Perm()})
	}
	return files
}

func parseSheets(files []*loadedFile, log *zap.Logger) []*cssparse.Stylesheet {
	parser := cssparse.NewParser(log)
	var sheets []*cssparse.Stylesheet
	for _, f := range files {
		if f.Kind == KindCSS {
			sheets = append(sheets, parser.Parse(f.Path, f.content))
		}
	}
	return sheets
}

// deadClasses merges the supplied dead list with the detector's findings.
// A group with any live member keeps all of its members, since renamed
// references make the canonical name live.
func (r *Result) deadClasses(config Config, sheets []*cssparse.Stylesheet, files []*loadedFile, groups []consolidate.Group, log *zap.Logger) map[string]bool {
	dead := make(map[string]bool)
	for _, name := range config.UnusedClasses {
		dead[name] = true
	}
	if config.RemoveUnused {
		r.Unused = detectUnused(config, sheets, files, log)
		for name := range r.Unused.Names() {
			dead[name] = true
		}
	}
	if len(dead) == 0 {
		return nil
	}

	for _, g := range groups {
		live := false
		for _, m := range g.Members {
			if !dead[m] {
				live = true
				break
			}
		}
		if !live {
			continue
		}
		for _, m := range g.Members {
			if dead[m] {
				log.Debug("Keeping consolidated class", zap.String("class", m), zap.String("canonical", g.Canonical))
				delete(dead, m)
			}
		}
	}
	return dead
}

func detectUnused(config Config, sheets []*cssparse.Stylesheet, files []*loadedFile, log *zap.Logger) *UnusedReport {
	d := unused.NewDetector(config.UnusedIgnore, log)
	for _, sh := range sheets {
		d.AddStylesheet(sh)
	}
	for _, f := range files {
		switch f.Kind {
		case KindScript:
			d.AddScript(f.content)
		case KindHTML:
			d.AddHTML(f.content)
		}
	}

	report := d.Report()
	for i := range report.Unused {
		for j := range report.Unused[i].Locations {
			loc := &report.Unused[i].Locations[j]
			loc.File = relativePath(config.Root, loc.File)
		}
	}
	return report
}

// planStylesheets turns the stylesheet plans into file changes.
func (r *Result) planStylesheets(files []*loadedFile, sheets []*cssparse.Stylesheet, plans []cssedit.FilePlan) {
	byPath := make(map[string]*loadedFile, len(files))
	for _, f := range files {
		byPath[f.Path] = f
	}
	sheetByPath := make(map[string]*cssparse.Stylesheet, len(sheets))
	for _, sh := range sheets {
		sheetByPath[sh.Path] = sh
	}

	for _, fp := range plans {
		f := byPath[fp.Path]
		sheet := sheetByPath[fp.Path]

		plan := source.NewPlan(f.Rel)
		if err := addEdits(plan, fp.Edits); err != nil {
			r.Errors = append(r.Errors, fmt.Errorf("plan %s: %w", f.Rel, err))
			continue
		}
		content, err := plan.Apply(f.content)
		if err != nil {
			r.Errors = append(r.Errors, fmt.Errorf("plan %s: %w", f.Rel, err))
			continue
		}

		fc := FileChange{
			Path:      f.Rel,
			Kind:      KindCSS,
			EditCount: plan.Len(),
			abs:       f.Path,
			original:  f.content,
			content:   content,
			mode:      f.mode,
		}
		for _, c := range fp.Changes {
			line := sheet.Lines.LineText(c.Line)
			fc.Changes = append(fc.Changes, Change{
				Kind:        string(c.Kind),
				Text:        c.Message,
				SourceLines: []string{line},
				Pos: ChangePos{
					Filename: f.Rel,
					Line:     c.Line,
					Column:   findColumn(line, c.Selector),
				},
			})
			switch c.Kind {
			case cssedit.ChangeRename:
				r.Stats.Replacements++
			case cssedit.ChangeRemoveDuplicate:
				r.Stats.DuplicatesRemoved++
			case cssedit.ChangeRemoveUnused:
				r.Stats.UnusedRemoved++
			case cssedit.ChangePrune:
				r.Stats.BlocksPruned++
			}
		}
		if fc.EditCount > 0 {
			r.Stats.CSSFilesModified++
		}
		r.Files = append(r.Files, fc)
	}
}

// planMarkup rewrites class references in scripts and HTML.
func (r *Result) planMarkup(files []*loadedFile, rw *rewrite.Rewriter) {
	for _, f := range files {
		var matches []rewrite.Match
		switch f.Kind {
		case KindScript:
			matches = rw.Script(f.content)
		case KindHTML:
			matches = rw.HTML(f.content)
		default:
			continue
		}
		if len(matches) == 0 {
			continue
		}

		content, err := rewrite.Apply(f.Rel, f.content, matches)
		if err != nil {
			r.Errors = append(r.Errors, fmt.Errorf("plan %s: %w", f.Rel, err))
			continue
		}

		lines := source.NewLineIndex(f.content)
		fc := FileChange{
			Path:      f.Rel,
			Kind:      f.Kind,
			EditCount: len(matches),
			abs:       f.Path,
			original:  f.content,
			content:   content,
			mode:      f.mode,
		}
		for _, m := range matches {
			line, col := lines.Position(m.Span.Start)
			fc.Changes = append(fc.Changes, Change{
				Kind:        ChangeRename,
				Text:        fmt.Sprintf(MessageRename, m.Old, m.New),
				SourceLines: []string{lines.LineText(line)},
				Pos:         ChangePos{Filename: f.Rel, Line: line, Column: col},
				Replacement: &Replacement{Old: m.Old, New: m.New},
			})
		}
		r.Stats.Replacements += len(matches)
		if f.Kind == KindHTML {
			r.Stats.HTMLFilesModified++
		} else {
			r.Stats.ScriptFilesModified++
		}
		r.Files = append(r.Files, fc)
	}
}

// write backs up every file about to change, then writes each one in a
// single call. A backup failure aborts before the first write.
func (r *Result) write(config Config, log *zap.Logger) error {
	var pending []*FileChange
	for i := range r.Files {
		if r.Files[i].EditCount > 0 {
			pending = append(pending, &r.Files[i])
		}
	}
	if len(pending) == 0 {
		return nil
	}

	if config.Backup {
		dir := config.BackupDir
		if dir == "" {
			dir = "backups"
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(config.Root, dir)
		}
		originals := make([]backup.File, len(pending))
		for i, f := range pending {
			originals[i] = backup.File{Path: f.abs, Content: f.original, Mode: f.mode}
		}
		now := time.Now
		if config.Now != nil {
			now = config.Now
		}
		path, err := backup.Create(dir, config.Root, originals, now(), log)
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		r.BackupPath = path
	}

	for _, f := range pending {
		if err := os.WriteFile(f.abs, f.content, f.mode); err != nil {
			r.Errors = append(r.Errors, fmt.Errorf("write %s: %w", f.Path, err))
			continue
		}
		f.Written = true
		log.Debug("Wrote file", zap.String("path", f.Path), zap.Int("edits", f.EditCount))
	}
	return nil
}

func addEdits(plan *source.Plan, edits []source.Edit) error {
	for _, e := range edits {
		if err := plan.Add(e); err != nil {
			return err
		}
	}
	return nil
}

// reportGroups converts analysis groups for reporting.
func reportGroups(root string, groups []consolidate.Group) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		rep := representative(g)
		rg := Group{
			Canonical: g.Canonical,
			Replaces:  g.Aliases(),
			Context:   rep.Rule.Context,
		}

		for _, d := range rep.Rule.Declarations.List() {
			rg.Properties = append(rg.Properties, Property{Name: d.Property, Value: d.Value})
		}
		sort.Slice(rg.Properties, func(i, j int) bool { return rg.Properties[i].Name < rg.Properties[j].Name })

		seen := make(map[Occurrence]bool)
		for _, d := range g.Definitions {
			occ := Occurrence{
				File:     relativePath(root, d.Rule.File),
				Line:     d.Rule.Line,
				Selector: d.Rule.Selector,
			}
			if !seen[occ] {
				seen[occ] = true
				rg.Occurrences = append(rg.Occurrences, occ)
			}
		}
		sort.SliceStable(rg.Occurrences, func(i, j int) bool {
			a, b := rg.Occurrences[i], rg.Occurrences[j]
			if a.File != b.File {
				return natural.Less(a.File, b.File)
			}
			return a.Line < b.Line
		})

		out = append(out, rg)
	}
	return out
}

// representative prefers the unmodified definition of a group.
func representative(g consolidate.Group) consolidate.Definition {
	if d, ok := g.Representatives[""]; ok {
		return d
	}
	keys := make([]string, 0, len(g.Representatives))
	for k := range g.Representatives {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return g.Representatives[keys[0]]
}

// relativePath returns path relative to root with forward slashes, or path
// unchanged when it cannot be made relative.
func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
