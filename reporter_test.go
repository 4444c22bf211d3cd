package cssconsolidate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCaretIndicator(t *testing.T) {
	reporter := &Reporter{}

	tests := []struct {
		name       string
		sourceLine string
		column     int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: "  <div className=\"picture\">",
			column:     19,
			want:       "                  ^", // 18 spaces + caret
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\t.picture {",
			column:     4,
			want:       "\t\t ^",
		},
		{
			name:       "start of line",
			sourceLine: ".person{color:red}",
			column:     1,
			want:       "^",
		},
		{
			name:       "column 0 fallback",
			sourceLine: "some line",
			column:     0,
			want:       "^",
		},
		{
			name:       "column beyond line length",
			sourceLine: "short",
			column:     100,
			want:       "     ^", // Pads to line length only
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reporter.buildCaretIndicator(tt.sourceLine, tt.column)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFindColumn(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		needle string
		want   int
	}{
		{name: "found", line: "  .picture {", needle: ".picture", want: 3},
		{name: "multi-line needle uses first line", line: "a, .b,", needle: ".b,\n.c", want: 4},
		{name: "missing falls back to first non-blank", line: "\t  x", needle: "zzz", want: 4},
		{name: "empty needle", line: "abc", needle: "", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findColumn(tt.line, tt.needle))
		})
	}
}

func TestPrintChanges(t *testing.T) {
	result := sampleResult()

	var buf bytes.Buffer
	reporter := &Reporter{w: &buf, printLines: true}
	reporter.PrintChanges(result)
	reporter.PrintSummary(result)

	out := buf.String()
	lines := bytes.Split(buf.Bytes(), []byte("\n"))
	require.Greater(t, len(lines), 3)

	// Files come out in natural order regardless of result order
	assert.Equal(t, "src/App.jsx:3:26: picture -> person (rename)", string(lines[0]))
	assert.Equal(t, "\t  return <img className=\"picture\" />;", string(lines[1]))
	assert.Contains(t, out, "styles/app.css:6:1: removed .picture, merged into .person (merge)")
	assert.Contains(t, out, "2 changes in 2 files (planned):")
	assert.Contains(t, out, "* merge: 1")
	assert.Contains(t, out, "* rename: 1")
	assert.Contains(t, out, "Hint: Run with --output-format full")
}

func TestPrintSummaryNoChanges(t *testing.T) {
	var buf bytes.Buffer
	reporter := &Reporter{w: &buf}
	reporter.PrintSummary(&Result{})

	assert.Contains(t, buf.String(), "0 changes in 0 files (applied):")
	assert.NotContains(t, buf.String(), "Hint")
}

func TestPluralizeCount(t *testing.T) {
	assert.Equal(t, "1 file", pluralizeCount(1, "file", "files"))
	assert.Equal(t, "0 files", pluralizeCount(0, "file", "files"))
	assert.Equal(t, "12 files", pluralizeCount(12, "file", "files"))
}
