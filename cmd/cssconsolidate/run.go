package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/cssconsolidate"
)

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"consolidate"},
	Short:   "Consolidate equivalent classes and rewrite references",
	Long: `Group CSS classes whose declarations are identical in the same context,
pick one canonical name per group, remove the redundant rules and rewrite
every reference in stylesheets, JS/JSX/TS and HTML files.

Exit codes: 0 nothing to change, 1 changes found or applied, 2 error.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runConsolidate,
}

func init() {
	addRunFlags(runCmd)
}

// addScanFlags registers the flags shared by run and unused.
func addScanFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("root", ".", "Project root to scan")
	f.StringSlice("css-include", nil, "Glob patterns for stylesheets (default **/*.css)")
	f.StringSlice("markup-include", nil, "Glob patterns for scripts and HTML (default **/*.{js,jsx,ts,tsx,html})")
	f.StringSlice("exclude", nil, "Glob patterns for paths to skip (default node_modules, dist, build, .git)")
	f.Bool("no-gitignore", false, "Do not skip files matched by .gitignore")
	f.StringSlice("unused-ignore", nil, "Glob patterns for classes never reported as unused")
	f.String("output-format", "", "Output format: issues|summary|full|json|yaml|report")
	f.String("output", "", "Write console output to a file instead of stdout")
}

// addRunFlags registers the consolidation flags.
func addRunFlags(cmd *cobra.Command) {
	addScanFlags(cmd)

	f := cmd.Flags()
	f.Bool("dry-run", false, "Report planned changes without writing files")
	f.Bool("analyze-only", false, "Alias for --dry-run")
	f.Bool("no-backup", false, "Do not back up files before writing")
	f.String("backup-dir", "backups", "Backup directory, relative to the root")

	f.Int("min-properties", 1, "Minimum declarations a class needs to be grouped")
	f.Bool("no-transitive", false, "Only merge classes that are all pairwise identical")
	f.StringSlice("excluded-prefix", nil, "Prefixes never chosen as canonical name (default admin-)")
	f.StringSlice("utility-prefix", nil, "Prefixes preferred as canonical name")
	f.Bool("no-merge-duplicates", false, "Keep literal duplicate rules")
	f.Bool("no-prune", false, "Keep conditional blocks emptied by the run")

	f.Bool("remove-unused", false, "Detect unused classes and remove their rules")
	f.String("unused-file", "", "File listing unused classes, one per line")

	f.String("report", "", "Write the detailed plain-text report to a file")
	f.Bool("print-lines", true, "Show source lines with changes")
}

func runConsolidate(_ *cobra.Command, _ []string) error {
	quiet := getBoolWithFallback("quiet", "quiet", false)
	log := newLogger(getBoolWithFallback("verbose", "verbose", false), quiet)
	defer func() { _ = log.Sync() }()

	config, err := buildConfig(log)
	if err != nil {
		return err
	}
	out, err := buildOutputSettings()
	if err != nil {
		return err
	}

	log.Debug("Starting consolidation",
		zap.String("root", config.Root),
		zap.Bool("dry-run", config.DryRun),
		zap.Bool("backup", config.Backup))

	result, err := cssconsolidate.Consolidate(config)
	if err != nil {
		return fmt.Errorf("consolidation failed: %w", err)
	}

	if !out.Quiet || out.OutputFile != "" {
		err := writeTo(out.OutputFile, func(w io.Writer) error {
			return cssconsolidate.WriteOutput(w, result, out.Format, out.Options)
		})
		if err != nil {
			return err
		}
	}

	if out.ReportFile != "" {
		if err := cssconsolidate.WriteReportFile(out.ReportFile, result, time.Now()); err != nil {
			return err
		}
		log.Info("Report written", zap.String("path", out.ReportFile))
	}

	for _, err := range result.Errors {
		log.Error("File skipped", zap.Error(err))
	}

	if code := resultExitCode(result); code != exitClean {
		osExit(code)
	}
	return nil
}

// resultExitCode maps a finished run to the process exit code.
func resultExitCode(result *cssconsolidate.Result) int {
	switch {
	case result.Err() != nil:
		return exitError
	case result.Changed():
		return exitChanges
	default:
		return exitClean
	}
}

// writeTo runs write against path, or stdout when path is empty.
func writeTo(path string, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	if err := write(f); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
