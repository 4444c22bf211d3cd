package cssconsolidate

import (
	"fmt"
	"io"
	"time"
)

// OutputFormat represents the console output format
type OutputFormat string

const (
	// OutputIssues lists every change in golangci-lint format (default)
	OutputIssues OutputFormat = "issues"
	// OutputSummary prints counts and consolidation details only
	OutputSummary OutputFormat = "summary"
	// OutputFull prints issues, statistics and groups
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format
	OutputJSON OutputFormat = "json"
	// OutputYAML exports the same data as YAML
	OutputYAML OutputFormat = "yaml"
	// OutputReport writes the detailed plain-text report
	OutputReport OutputFormat = "report"
)

// OutputOptions controls console rendering
type OutputOptions struct {
	UseColors  bool // Force color output
	PrintLines bool // Show source lines under each change
}

// DetermineOutputFormat selects the output format from the flag value.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Quiet keeps the default, output is suppressed by the caller
	if quiet {
		return OutputIssues
	}

	switch formatFlag {
	case "issues":
		return OutputIssues
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	case "yaml", "yml":
		return OutputYAML
	case "report":
		return OutputReport
	default:
		return OutputIssues
	}
}

// ValidOutputFormat reports whether name is a known format.
func ValidOutputFormat(name string) bool {
	switch OutputFormat(name) {
	case OutputIssues, OutputSummary, OutputFull, OutputJSON, OutputYAML, OutputReport:
		return true
	}
	return name == "yml"
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *Result, format OutputFormat, opts OutputOptions) error {
	switch format {
	case OutputSummary:
		return WriteSummary(w, result)

	case OutputFull:
		reporter := NewReporter(w, opts)
		reporter.PrintChanges(result)
		reporter.PrintSummary(result)

		verbose := NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintStatistics(result)
		verbose.PrintGroups(result)
		verbose.PrintUnused(result)
		verbose.PrintWarnings(result)
		verbose.PrintErrors(result)
		return nil

	case OutputJSON:
		return WriteJSON(w, result)

	case OutputYAML:
		return WriteYAML(w, result)

	case OutputReport:
		return WriteReport(w, result, time.Now())

	case OutputIssues:
		reporter := NewReporter(w, opts)
		reporter.PrintChanges(result)
		reporter.PrintSummary(result)
		NewVerboseReporter(w, reporter.UseColors()).PrintErrors(result)
		return nil

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
