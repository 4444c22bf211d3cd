package cssconsolidate

import (
	"fmt"
	"io"
	"strings"
)

// WriteSummary writes counts and consolidation details as plain text
func WriteSummary(w io.Writer, result *Result) error {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)
	s := result.Stats

	b.WriteString(rule + "\n")
	b.WriteString("CSS CONSOLIDATION SUMMARY\n")
	b.WriteString(rule + "\n\n")
	if result.DryRun {
		b.WriteString("Dry run: no files were written\n\n")
	}

	fmt.Fprintf(&b, "Groups of identical classes found: %d\n", s.Groups)
	fmt.Fprintf(&b, "Class names consolidated: %d\n", s.ClassesConsolidated)
	fmt.Fprintf(&b, "CSS files modified: %d\n", s.CSSFilesModified)
	fmt.Fprintf(&b, "JS/JSX files modified: %d\n", s.ScriptFilesModified)
	fmt.Fprintf(&b, "HTML files modified: %d\n", s.HTMLFilesModified)
	fmt.Fprintf(&b, "Total replacements made: %d\n", s.Replacements)
	if s.DuplicatesRemoved > 0 {
		fmt.Fprintf(&b, "Duplicate rules removed: %d\n", s.DuplicatesRemoved)
	}
	if s.UnusedRemoved > 0 {
		fmt.Fprintf(&b, "Unused selectors removed: %d\n", s.UnusedRemoved)
	}
	if result.BackupPath != "" {
		fmt.Fprintf(&b, "Backup: %s\n", result.BackupPath)
	}

	if len(result.Groups) > 0 {
		b.WriteString("\n" + thin + "\n")
		b.WriteString("CONSOLIDATION DETAILS\n")
		b.WriteString(thin + "\n")
		for _, g := range result.Groups {
			fmt.Fprintf(&b, "\nCanonical name: %s\n", g.Canonical)
			fmt.Fprintf(&b, "  Replaced: %s\n", strings.Join(g.Replaces, ", "))
			fmt.Fprintf(&b, "  Properties (%d):\n", len(g.Properties))
			for i, p := range g.Properties {
				if i >= maxGroupProperties {
					fmt.Fprintf(&b, "    ... and %d more\n", len(g.Properties)-maxGroupProperties)
					break
				}
				fmt.Fprintf(&b, "    %s: %s\n", p.Name, p.Value)
			}
		}
	}

	if len(result.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&b, "  - %s\n", warning)
		}
	}

	if len(result.Errors) > 0 {
		b.WriteString("\nErrors encountered:\n")
		for _, err := range result.Errors {
			fmt.Fprintf(&b, "  - %s\n", err)
		}
	}

	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
