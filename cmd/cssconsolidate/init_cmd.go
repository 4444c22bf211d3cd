package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssconsolidate.yaml config file",
	Long:  `Create a configuration file (the --config path) with the default settings.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = ".cssconsolidate.yaml"
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Printf("Created %s\n", path)
		return nil
	},
}

const defaultConfig = `# cssconsolidate configuration
# Docs: https://github.com/yacobolo/cssconsolidate

# Shared settings
root: .
verbose: false

# Which files are scanned
discovery:
  css-include:
    - "**/*.css"
  markup-include:
    - "**/*.{js,jsx,ts,tsx,html}"
  exclude:
    - node_modules
    - dist
    - build
    - .git
  gitignore: true

# Consolidation settings
run:
  dry-run: false
  backup: true
  backup-dir: backups
  min-properties: 1        # declarations a class needs before it is grouped
  transitive: true         # false = only merge pairwise identical classes
  excluded-prefix:
    - admin-
  merge-duplicates: true
  prune: true              # drop @media/@supports blocks emptied by the run

# Unused class removal
unused:
  remove: false            # run the built-in detector during consolidation
  file: ""                 # or read dead classes from a file, one per line
  # ignore:               # class globs never reported, replaces the
  #   - "legacy-*"         # default is-* and *--active style state classes

# Output settings
output:
  format: issues           # issues | summary | full | json | yaml | report
  file: ""                 # empty = stdout
  report: ""               # detailed report file
  print-lines: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
