// Package main provides the cssconsolidate CLI tool for merging CSS classes
// with identical declarations and rewriting their references.
package main

import (
	"fmt"
	"os"
)

// Exit codes
const (
	exitClean   = 0 // Nothing to change
	exitChanges = 1 // Changes found (dry run) or applied
	exitError   = 2 // Bad configuration, scan or backup failure, per-file errors
)

// osExit is replaced in tests.
var osExit = os.Exit

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		osExit(exitError)
	}
}
