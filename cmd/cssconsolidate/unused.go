package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/cssconsolidate"
)

var unusedCmd = &cobra.Command{
	Use:   "unused",
	Short: "List classes defined in CSS but never referenced",
	Long: `Collect the classes defined in stylesheets and the class references in
scripts and HTML, then list every class nothing references.

Dynamic prefixes such as ` + "`tab-${id}`" + ` mark every class starting with the
prefix as used. State classes (is-*, *--active, ...) are ignored by default.

Exit codes: 0 nothing unused, 1 unused classes found, 2 error.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runUnused,
}

func init() {
	addScanFlags(unusedCmd)
}

func runUnused(_ *cobra.Command, _ []string) error {
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

	report, err := cssconsolidate.FindUnused(config)
	if report == nil {
		return fmt.Errorf("unused detection failed: %w", err)
	}
	if err != nil {
		log.Error("Some files could not be read", zap.Error(err))
	}

	if !out.Quiet || out.OutputFile != "" {
		werr := writeTo(out.OutputFile, func(w io.Writer) error {
			return cssconsolidate.WriteUnused(w, report, out.Format, out.Options)
		})
		if werr != nil {
			return werr
		}
	}

	switch {
	case err != nil:
		osExit(exitError)
	case len(report.Unused) > 0:
		osExit(exitChanges)
	}
	return nil
}
