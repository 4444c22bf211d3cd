package cssconsolidate

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
)

// maxReportProperties limits the properties listed per group in the
// detailed report.
const maxReportProperties = 10

// WriteReport writes the detailed plain-text report: every group with its
// properties and occurrences, then the changes per file.
func WriteReport(w io.Writer, result *Result, now time.Time) error {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	section := func(title string) {
		b.WriteString("\n" + rule + "\n")
		b.WriteString(title + "\n")
		b.WriteString(rule + "\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString("DETAILED CSS CONSOLIDATION REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	if result.DryRun {
		b.WriteString("Mode: dry run\n")
	}
	b.WriteString(rule + "\n")

	section("CONSOLIDATION GROUPS")
	if len(result.Groups) == 0 {
		b.WriteString("\nNo equivalent classes found.\n")
	}
	for i, g := range result.Groups {
		writeReportGroup(&b, i+1, g)
	}

	for _, kind := range []struct {
		kind  FileKind
		title string
	}{
		{KindCSS, "CSS FILE CHANGES"},
		{KindScript, "JS/JSX FILE CHANGES"},
		{KindHTML, "HTML FILE CHANGES"},
	} {
		files := result.FilesOfKind(kind.kind)
		if len(files) == 0 {
			continue
		}
		sort.SliceStable(files, func(i, j int) bool { return natural.Less(files[i].Path, files[j].Path) })

		section(kind.title)
		for _, f := range files {
			if len(f.Changes) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n%s:\n", f.Path)
			for _, c := range f.Changes {
				fmt.Fprintf(&b, "  line %d: %s\n", c.Pos.Line, c.Text)
			}
		}
	}

	if len(result.Errors) > 0 {
		section("ERRORS")
		for _, err := range result.Errors {
			fmt.Fprintf(&b, "  %s\n", err)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeReportGroup(b *strings.Builder, n int, g Group) {
	fmt.Fprintf(b, "\n--- Group %d: %s ---\n", n, g.Canonical)
	fmt.Fprintf(b, "Canonical name: %s\n", g.Canonical)
	fmt.Fprintf(b, "Names being replaced: %s\n", strings.Join(g.Replaces, ", "))
	if g.Context != "" {
		fmt.Fprintf(b, "Context: %s\n", g.Context)
	}

	props := g.Properties
	if len(props) > maxReportProperties {
		props = props[:maxReportProperties]
	}
	fmt.Fprintf(b, "Properties (%d):\n", len(g.Properties))
	for _, sec := range categorizeProperties(props) {
		fmt.Fprintf(b, "  %s:\n", sec.Category)
		for _, p := range sec.Properties {
			fmt.Fprintf(b, "    %s: %s\n", p.Name, p.Value)
		}
	}
	if len(g.Properties) > maxReportProperties {
		fmt.Fprintf(b, "  ... and %d more\n", len(g.Properties)-maxReportProperties)
	}

	fmt.Fprintf(b, "\nOccurrences (%d):\n", len(g.Occurrences))
	for _, o := range g.Occurrences {
		fmt.Fprintf(b, "  %s:%d - %s\n", o.File, o.Line, o.Selector)
	}
}

// WriteReportFile writes the detailed report to path.
func WriteReportFile(path string, result *Result, now time.Time) error {
	var b strings.Builder
	if err := WriteReport(&b, result, now); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
