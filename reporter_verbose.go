package cssconsolidate

import (
	"fmt"
	"io"
	"strings"
)

// maxGroupProperties limits the properties listed per group on the console.
const maxGroupProperties = 5

// VerboseReporter handles statistics and consolidation details
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs run statistics
func (r *VerboseReporter) PrintStatistics(result *Result) {
	s := result.Stats

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Consolidation Statistics", r.useColors))
	fmt.Fprintln(r.w, "------------------------")

	fmt.Fprintf(r.w, "Files Scanned:          %d (%d css, %d script, %d html)\n",
		s.FilesScanned, s.CSSFiles, s.ScriptFiles, s.HTMLFiles)
	fmt.Fprintf(r.w, "Files Skipped:          %d\n", s.FilesSkipped)
	fmt.Fprintf(r.w, "Rules Parsed:           %d\n", s.Rules)
	fmt.Fprintf(r.w, "Class Definitions:      %d\n", s.Definitions)
	fmt.Fprintf(r.w, "Groups Found:           %d\n", s.Groups)
	fmt.Fprintf(r.w, "Classes Consolidated:   %d\n", s.ClassesConsolidated)
	fmt.Fprintf(r.w, "Replacements:           %d\n", s.Replacements)
	fmt.Fprintf(r.w, "Duplicates Removed:     %d\n", s.DuplicatesRemoved)
	fmt.Fprintf(r.w, "Unused Rules Removed:   %d\n", s.UnusedRemoved)
	fmt.Fprintf(r.w, "Empty Blocks Pruned:    %d\n", s.BlocksPruned)
	fmt.Fprintf(r.w, "Files Modified:         %d (%d css, %d script, %d html)\n",
		s.FilesModified(), s.CSSFilesModified, s.ScriptFilesModified, s.HTMLFilesModified)
}

// PrintGroups shows each consolidation group
func (r *VerboseReporter) PrintGroups(result *Result) {
	if len(result.Groups) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Consolidation Groups", r.useColors))
	fmt.Fprintln(r.w, "--------------------")

	for i, g := range result.Groups {
		fmt.Fprintf(r.w, "%d. %s ← %s", i+1,
			RenderStyle(StyleGreen, g.Canonical, r.useColors),
			strings.Join(g.Replaces, ", "))
		if g.Context != "" && g.Context != "top-level" {
			fmt.Fprintf(r.w, " [%s]", g.Context)
		}
		fmt.Fprintln(r.w, "")

		for j, p := range g.Properties {
			if j >= maxGroupProperties {
				fmt.Fprintf(r.w, "     ... and %d more\n", len(g.Properties)-maxGroupProperties)
				break
			}
			fmt.Fprintf(r.w, "     %s: %s\n", p.Name, p.Value)
		}
	}
}

// PrintUnused shows classes found by the unused-class detector
func (r *VerboseReporter) PrintUnused(result *Result) {
	if result.Unused == nil || len(result.Unused.Unused) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Unused Classes", r.useColors))
	fmt.Fprintln(r.w, "--------------")

	for _, c := range result.Unused.Unused {
		locs := make([]string, len(c.Locations))
		for i, l := range c.Locations {
			locs[i] = fmt.Sprintf("%s:%d", l.File, l.Line)
		}
		fmt.Fprintf(r.w, "• %s (%s)\n", c.Name, strings.Join(locs, ", "))
	}
}

// PrintWarnings shows analysis warnings
func (r *VerboseReporter) PrintWarnings(result *Result) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "--------")

	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// PrintErrors shows per-file errors
func (r *VerboseReporter) PrintErrors(result *Result) {
	if len(result.Errors) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleRed, "Errors", r.useColors))
	fmt.Fprintln(r.w, "------")

	for _, err := range result.Errors {
		fmt.Fprintf(r.w, "• %s\n", err)
	}
}
