package cssconsolidate

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"golang.org/x/term"
)

// Reporter prints changes in golangci-lint format
type Reporter struct {
	w          io.Writer
	useColors  bool
	printLines bool
}

// NewReporter creates a new reporter with the given options
func NewReporter(w io.Writer, opts OutputOptions) *Reporter {
	return &Reporter{
		w:          w,
		useColors:  shouldUseColors(opts.UseColors),
		printLines: opts.PrintLines,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}

// sortedChanges flattens the changes of every file, ordered by file, line
// and column.
func sortedChanges(result *Result) []Change {
	var changes []Change
	for _, f := range result.Files {
		changes = append(changes, f.Changes...)
	}
	sort.SliceStable(changes, func(i, j int) bool {
		a, b := changes[i].Pos, changes[j].Pos
		if a.Filename != b.Filename {
			return natural.Less(a.Filename, b.Filename)
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return changes
}

// PrintChanges outputs every change
func (r *Reporter) PrintChanges(result *Result) {
	for _, c := range sortedChanges(result) {
		r.printChange(c)
	}
}

// printChange formats a single change in golangci-lint style
func (r *Reporter) printChange(c Change) {
	// Format: file:line:col: message (kind)
	location := fmt.Sprintf("%s:%d:%d:", c.Pos.Filename, c.Pos.Line, c.Pos.Column)

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		c.Text,
		RenderStyle(StyleGray, " ("+c.Kind+")", r.useColors))

	if r.printLines && len(c.SourceLines) > 0 {
		for _, line := range c.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(c.SourceLines[0], c.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up with the source line.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the change count summary
func (r *Reporter) PrintSummary(result *Result) {
	changes := sortedChanges(result)

	files := 0
	for _, f := range result.Files {
		if f.EditCount > 0 {
			files++
		}
	}

	fmt.Fprintln(r.w, "")

	mode := "planned"
	if !result.DryRun {
		mode = "applied"
	}
	fmt.Fprintf(r.w, "%s in %s (%s):\n",
		pluralizeCount(len(changes), "change", "changes"),
		pluralizeCount(files, "file", "files"),
		mode)

	kindCounts := make(map[string]int)
	for _, c := range changes {
		kindCounts[c.Kind]++
	}
	kinds := make([]string, 0, len(kindCounts))
	for kind := range kindCounts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(r.w, "* %s: %d\n", kind, kindCounts[kind])
	}

	if result.BackupPath != "" {
		fmt.Fprintf(r.w, "\nBackup written to %s\n", result.BackupPath)
	}

	if len(changes) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --output-format full to see consolidation groups", r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
