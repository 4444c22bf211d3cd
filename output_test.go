package cssconsolidate

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yacobolo/cssconsolidate/internal/unused"
)

func sampleResult() *Result {
	return &Result{
		Root:   "/project",
		DryRun: true,
		Stats: Stats{
			ScanStats:           ScanStats{FilesDiscovered: 3, FilesScanned: 3},
			CSSFiles:            1,
			ScriptFiles:         2,
			Rules:               4,
			Definitions:         4,
			Groups:              1,
			ClassesConsolidated: 1,
			CSSFilesModified:    1,
			ScriptFilesModified: 1,
			Replacements:        1,
		},
		Groups: []Group{
			{
				Canonical: "person",
				Replaces:  []string{"picture"},
				Context:   "top-level",
				Properties: []Property{
					{Name: "--gap", Value: "8px"},
					{Name: "color", Value: "red"},
					{Name: "display", Value: "flex"},
					{Name: "font-size", Value: "12px"},
				},
				Occurrences: []Occurrence{
					{File: "styles/app.css", Line: 1, Selector: ".person"},
					{File: "styles/app.css", Line: 6, Selector: ".picture"},
				},
			},
		},
		Renames: []Rename{{Old: "picture", New: "person"}},
		Files: []FileChange{
			{
				Path: "styles/app.css",
				Kind: KindCSS,
				Changes: []Change{{
					Kind:        ChangeMerge,
					Text:        "removed .picture, merged into .person",
					SourceLines: []string{".picture {"},
					Pos:         ChangePos{Filename: "styles/app.css", Line: 6, Column: 1},
				}},
				EditCount: 1,
			},
			{
				Path: "src/App.jsx",
				Kind: KindScript,
				Changes: []Change{{
					Kind:        ChangeRename,
					Text:        "picture -> person",
					SourceLines: []string{"  return <img className=\"picture\" />;"},
					Pos:         ChangePos{Filename: "src/App.jsx", Line: 3, Column: 26},
					Replacement: &Replacement{Old: "picture", New: "person"},
				}},
				EditCount: 1,
			},
		},
		Warnings: []string{"styles/app.css:9: skipped rule with unbalanced braces"},
	}
}

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		formatFlag string
		quiet      bool
		expected   OutputFormat
	}{
		{name: "explicit quiet flag", formatFlag: "", quiet: true, expected: OutputIssues},
		{name: "explicit issues format", formatFlag: "issues", expected: OutputIssues},
		{name: "explicit summary format", formatFlag: "summary", expected: OutputSummary},
		{name: "explicit full format", formatFlag: "full", expected: OutputFull},
		{name: "explicit json format", formatFlag: "json", expected: OutputJSON},
		{name: "explicit yaml format", formatFlag: "yaml", expected: OutputYAML},
		{name: "yaml shorthand (yml)", formatFlag: "yml", expected: OutputYAML},
		{name: "explicit report format", formatFlag: "report", expected: OutputReport},
		{name: "default format is issues", formatFlag: "", expected: OutputIssues},
		{name: "quiet overrides format flag", formatFlag: "full", quiet: true, expected: OutputIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineOutputFormat(tt.formatFlag, tt.quiet))
		})
	}
}

func TestValidOutputFormat(t *testing.T) {
	for _, name := range []string{"issues", "summary", "full", "json", "yaml", "yml", "report"} {
		assert.True(t, ValidOutputFormat(name), name)
	}
	assert.False(t, ValidOutputFormat("markdown"))
	assert.False(t, ValidOutputFormat(""))
}

func TestWriteJSON(t *testing.T) {
	result := sampleResult()
	result.Errors = []error{errors.New("write dist/app.css: permission denied")}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, result))

	// Parse JSON to verify structure
	var output ExportOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0", output.Version)
	assert.NotEmpty(t, output.Timestamp)
	assert.True(t, output.DryRun)

	// Verify summary
	assert.Equal(t, 1, output.Summary.Groups)
	assert.Equal(t, 1, output.Summary.ClassesConsolidated)
	assert.Equal(t, 2, output.Summary.FilesModified)
	assert.Equal(t, 2, output.Summary.Changes)
	assert.Equal(t, 1, output.Summary.Errors)

	// Verify stats keep the embedded scan counters
	assert.Equal(t, 3, output.Stats.FilesScanned)
	assert.Equal(t, 4, output.Stats.Definitions)

	require.Len(t, output.Groups, 1)
	assert.Equal(t, "person", output.Groups[0].Canonical)
	assert.Equal(t, []string{"picture"}, output.Groups[0].Replaces)
	assert.Len(t, output.Groups[0].Occurrences, 2)

	assert.Equal(t, []Rename{{Old: "picture", New: "person"}}, output.Renames)

	require.Len(t, output.Files, 2)
	assert.Equal(t, "src/App.jsx", output.Files[1].Path)
	require.NotNil(t, output.Files[1].Changes[0].Replacement)
	assert.Equal(t, "person", output.Files[1].Changes[0].Replacement.New)

	assert.Equal(t, []string{"write dist/app.css: permission denied"}, output.Errors)
	assert.Nil(t, output.Unused)
}

func TestWriteJSONEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &Result{}))

	// Empty collections are arrays, never null
	out := buf.String()
	assert.Contains(t, out, `"groups": []`)
	assert.Contains(t, out, `"renames": []`)
	assert.Contains(t, out, `"files": []`)
	assert.Contains(t, out, `"errors": []`)
	assert.NotContains(t, out, "backupPath")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleResult()))

	var output map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0", output["version"])
	assert.Equal(t, true, output["dryRun"])

	summary, ok := output["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, summary["groups"])
	assert.Equal(t, 2, summary["changes"])

	renames, ok := output["renames"].([]any)
	require.True(t, ok)
	require.Len(t, renames, 1)
}

func TestWriteSummary(t *testing.T) {
	result := sampleResult()
	result.BackupPath = "/project/backups/backup_20240102_030405"

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, result))
	out := buf.String()

	assert.Contains(t, out, "CSS CONSOLIDATION SUMMARY")
	assert.Contains(t, out, "Dry run: no files were written")
	assert.Contains(t, out, "Groups of identical classes found: 1\n")
	assert.Contains(t, out, "Class names consolidated: 1\n")
	assert.Contains(t, out, "CSS files modified: 1\n")
	assert.Contains(t, out, "JS/JSX files modified: 1\n")
	assert.Contains(t, out, "HTML files modified: 0\n")
	assert.Contains(t, out, "Total replacements made: 1\n")
	assert.Contains(t, out, "Backup: /project/backups/backup_20240102_030405\n")
	assert.Contains(t, out, "Canonical name: person\n")
	assert.Contains(t, out, "  Replaced: picture\n")
	assert.Contains(t, out, "  Properties (4):\n")
	assert.Contains(t, out, "    display: flex\n")
	assert.Contains(t, out, "skipped rule with unbalanced braces")
	assert.NotContains(t, out, "Errors encountered")
}

func TestWriteSummaryTruncatesProperties(t *testing.T) {
	result := &Result{Groups: []Group{{Canonical: "a", Replaces: []string{"b"}}}}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		result.Groups[0].Properties = append(result.Groups[0].Properties, Property{Name: name, Value: "1"})
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, result))

	assert.Contains(t, buf.String(), "    e: 1\n")
	assert.NotContains(t, buf.String(), "    f: 1\n")
	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestWriteReport(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleResult(), now))
	out := buf.String()

	assert.Contains(t, out, "DETAILED CSS CONSOLIDATION REPORT\n")
	assert.Contains(t, out, "Generated: 2024-01-02 03:04:05\n")
	assert.Contains(t, out, "--- Group 1: person ---\n")
	assert.Contains(t, out, "Names being replaced: picture\n")
	assert.Contains(t, out, "Context: top-level\n")
	assert.Contains(t, out, "  Layout:\n    display: flex\n")
	assert.Contains(t, out, "  Visual:\n    color: red\n")
	assert.Contains(t, out, "  Typography:\n    font-size: 12px\n")
	assert.Contains(t, out, "  Custom properties:\n    --gap: 8px\n")
	assert.Contains(t, out, "Occurrences (2):\n  styles/app.css:1 - .person\n  styles/app.css:6 - .picture\n")
	assert.Contains(t, out, "CSS FILE CHANGES")
	assert.Contains(t, out, "JS/JSX FILE CHANGES")
	assert.NotContains(t, out, "HTML FILE CHANGES")
	assert.Contains(t, out, "src/App.jsx:\n  line 3: picture -> person\n")

	// Layout section comes before custom properties
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Layout:")), bytes.Index(buf.Bytes(), []byte("Custom properties:")))
}

func TestWriteReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, WriteReportFile(path, &Result{}, time.Now()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "No equivalent classes found.")

	err = WriteReportFile(filepath.Join(t.TempDir(), "missing", "report.txt"), &Result{}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write report")
}

func TestWriteOutputFull(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputFull, OutputOptions{}))
	out := buf.String()

	assert.Contains(t, out, "picture -> person (rename)")
	assert.Contains(t, out, "Consolidation Statistics")
	assert.Contains(t, out, "Files Scanned:          3 (1 css, 2 script, 0 html)")
	assert.Contains(t, out, "1. person ← picture\n")
	assert.Contains(t, out, "Warnings")

	require.Error(t, WriteOutput(&buf, sampleResult(), OutputFormat("xml"), OutputOptions{}))
}

func TestCategorizeProperty(t *testing.T) {
	tests := []struct {
		property string
		want     PropertyCategory
	}{
		{"display", CategoryLayout},
		{"gap", CategoryLayout},
		{"grid-template-areas", CategoryLayout},
		{"color", CategoryVisual},
		{"border-top-left-radius", CategoryVisual},
		{"background-clip", CategoryVisual},
		{"font-size", CategoryTypography},
		{"text-underline-offset", CategoryTypography},
		{"transition", CategoryEffects},
		{"animation-fill-mode", CategoryEffects},
		{"--brand-color", CategoryCustom},
		{"-webkit-line-clamp", CategoryVendor},
	}

	for _, tt := range tests {
		t.Run(tt.property, func(t *testing.T) {
			assert.Equal(t, tt.want, categorizeProperty(tt.property))
		})
	}
}

func TestWriteUnused(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	report := &UnusedReport{
		Defined:         3,
		References:      5,
		DynamicPrefixes: []string{"tab-"},
		Unused: []unused.Class{
			{Name: "ghost", Locations: []unused.Location{{File: "css/site.css", Line: 2}, {File: "css/old.css", Line: 9}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteUnused(&buf, report, OutputIssues, OutputOptions{}))
	out := buf.String()
	assert.Contains(t, out, "css/site.css:2: unused class .ghost\n")
	assert.Contains(t, out, "css/old.css:9: unused class .ghost\n")
	assert.Contains(t, out, "1 class unused (3 classes defined, 5 names referenced)")
	assert.NotContains(t, out, "tab-*")

	buf.Reset()
	require.NoError(t, WriteUnused(&buf, report, OutputFull, OutputOptions{}))
	assert.Contains(t, buf.String(), "• tab-*")

	buf.Reset()
	require.NoError(t, WriteUnused(&buf, report, OutputJSON, OutputOptions{}))
	var decoded UnusedReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *report, decoded)
}
