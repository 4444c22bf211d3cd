// Package cssconsolidate finds CSS classes that mean the same thing, folds
// them into one canonical name and rewrites every reference in stylesheets,
// scripts and HTML.
//
// A run scans a project root, parses every stylesheet structurally, groups
// class definitions whose declarations, context and modifiers match, and
// plans byte-exact edits for each file. Literal duplicate rules are merged
// and conditional blocks emptied by the run are pruned.
//
// # Consolidating
//
// Preview the changes without touching any file:
//
//	config := cssconsolidate.DefaultConfig()
//	config.Root = "website"
//	config.DryRun = true
//	result, err := cssconsolidate.Consolidate(config)
//
// Apply them, keeping a backup of every original:
//
//	config.DryRun = false
//	config.Backup = true
//	result, err := cssconsolidate.Consolidate(config)
//	if err := result.Err(); err != nil {
//		// some files could not be read or written
//	}
//
// # Unused classes
//
// List classes that no script or HTML file references:
//
//	report, err := cssconsolidate.FindUnused(config)
//
// Setting Config.RemoveUnused makes Consolidate drop the selectors that use
// them.
//
// # CLI Tool
//
// Install the command line tool with:
//
//	go install github.com/yacobolo/cssconsolidate/cmd/cssconsolidate@latest
package cssconsolidate
