package cssconsolidate

import (
	"encoding/json"
	"io"
	"time"
)

// ExportOutput represents the structured JSON/YAML export schema
type ExportOutput struct {
	Version    string        `json:"version" yaml:"version"`
	Timestamp  string        `json:"timestamp" yaml:"timestamp"`
	DryRun     bool          `json:"dryRun" yaml:"dryRun"`
	Summary    ExportSummary `json:"summary" yaml:"summary"`
	Stats      Stats         `json:"stats" yaml:"stats"`
	Groups     []Group       `json:"groups" yaml:"groups"`
	Renames    []Rename      `json:"renames" yaml:"renames"`
	Files      []FileChange  `json:"files" yaml:"files"`
	Unused     *UnusedReport `json:"unused,omitempty" yaml:"unused,omitempty"`
	BackupPath string        `json:"backupPath,omitempty" yaml:"backupPath,omitempty"`
	Warnings   []string      `json:"warnings" yaml:"warnings"`
	Errors     []string      `json:"errors" yaml:"errors"`
}

// ExportSummary contains high-level counts
type ExportSummary struct {
	Groups              int `json:"groups" yaml:"groups"`
	ClassesConsolidated int `json:"classesConsolidated" yaml:"classesConsolidated"`
	FilesModified       int `json:"filesModified" yaml:"filesModified"`
	Changes             int `json:"changes" yaml:"changes"`
	Errors              int `json:"errors" yaml:"errors"`
}

// WriteJSON writes the result as JSON
func WriteJSON(w io.Writer, result *Result) error {
	output := buildExportOutput(result, time.Now())
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildExportOutput converts Result to ExportOutput
func buildExportOutput(result *Result, now time.Time) ExportOutput {
	changes := 0
	for _, f := range result.Files {
		changes += len(f.Changes)
	}

	errs := make([]string, len(result.Errors))
	for i, err := range result.Errors {
		errs[i] = err.Error()
	}

	files := result.Files
	if files == nil {
		files = []FileChange{}
	}
	groups := result.Groups
	if groups == nil {
		groups = []Group{}
	}
	renames := result.Renames
	if renames == nil {
		renames = []Rename{}
	}
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return ExportOutput{
		Version:   "1.0",
		Timestamp: now.Format(time.RFC3339),
		DryRun:    result.DryRun,
		Summary: ExportSummary{
			Groups:              result.Stats.Groups,
			ClassesConsolidated: result.Stats.ClassesConsolidated,
			FilesModified:       result.Stats.FilesModified(),
			Changes:             changes,
			Errors:              len(result.Errors),
		},
		Stats:      result.Stats,
		Groups:     groups,
		Renames:    renames,
		Files:      files,
		Unused:     result.Unused,
		BackupPath: result.BackupPath,
		Warnings:   warnings,
		Errors:     errs,
	}
}
