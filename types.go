package cssconsolidate

import (
	"io/fs"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/cssconsolidate/internal/consolidate"
	"github.com/yacobolo/cssconsolidate/internal/unused"
)

// FileKind classifies a discovered file.
type FileKind string

const (
	KindCSS    FileKind = "css"
	KindScript FileKind = "script"
	KindHTML   FileKind = "html"
)

// Config holds consolidation settings
type Config struct {
	Root           string   // Project root, all globs are relative to it
	CSSIncludes    []string // ["**/*.css"]
	MarkupIncludes []string // ["**/*.{js,jsx,ts,tsx,html}"]
	Excludes       []string // Globs matched against relative paths and directory names
	UseGitignore   bool     // Skip files matched by <root>/.gitignore (default: true)

	DryRun    bool   // Plan and report without writing
	Backup    bool   // Copy originals before writing (default: true)
	BackupDir string // Relative to Root unless absolute (default: "backups")

	MinProperties    int      // Minimum signature properties per definition (default: 1)
	Transitive       bool     // Merge whole connected components (default: true)
	ExcludedPrefixes []string // Never chosen as canonical when avoidable (default: ["admin-"])
	UtilityPrefixes  []string // Preferred canonical prefixes (default: flex-, grid-, ...)

	MergeDuplicates bool // Collapse literal duplicate rules (default: true)
	PruneEmpty      bool // Remove conditional blocks emptied by the run (default: true)

	RemoveUnused  bool     // Run the unused-class detector and drop what it finds
	UnusedClasses []string // Externally supplied dead class names
	UnusedIgnore  []string // Globs for classes the detector never reports

	Logger *zap.Logger      // nil disables logging
	Now    func() time.Time // Clock for backup names (default: time.Now)
}

// DefaultConfig returns the stock configuration rooted at the current
// directory.
func DefaultConfig() Config {
	return Config{
		Root:             ".",
		CSSIncludes:      []string{"**/*.css"},
		MarkupIncludes:   []string{"**/*.{js,jsx,ts,tsx,html}"},
		Excludes:         DefaultExcludes(),
		UseGitignore:     true,
		Backup:           true,
		BackupDir:        "backups",
		MinProperties:    1,
		Transitive:       true,
		ExcludedPrefixes: consolidate.DefaultExcludedPrefixes(),
		UtilityPrefixes:  consolidate.DefaultUtilityPrefixes(),
		MergeDuplicates:  true,
		PruneEmpty:       true,
		UnusedIgnore:     unused.DefaultIgnorePatterns(),
	}
}

// DefaultExcludes returns the directories skipped during discovery.
func DefaultExcludes() []string {
	return []string{"node_modules", "dist", "build", ".git"}
}

// Rename is one old to canonical class mapping.
type Rename = consolidate.Rename

// UnusedReport is the outcome of unused-class detection.
type UnusedReport = unused.Report

// Property is one declaration shown in reports.
type Property struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Occurrence is a rule that defines a group member.
type Occurrence struct {
	File     string `json:"file" yaml:"file"`
	Line     int    `json:"line" yaml:"line"`
	Selector string `json:"selector" yaml:"selector"`
}

// Group is a consolidation group as reported to users.
type Group struct {
	Canonical   string       `json:"canonical" yaml:"canonical"`
	Replaces    []string     `json:"replaces" yaml:"replaces"`
	Context     string       `json:"context" yaml:"context"`
	Properties  []Property   `json:"properties" yaml:"properties"`
	Occurrences []Occurrence `json:"occurrences" yaml:"occurrences"`
}

// FileChange is the outcome for one modified file.
type FileChange struct {
	Path      string   `json:"path" yaml:"path"` // Relative to Root
	Kind      FileKind `json:"kind" yaml:"kind"`
	Changes   []Change `json:"changes" yaml:"changes"`
	EditCount int      `json:"edits" yaml:"edits"`
	Written   bool     `json:"written" yaml:"written"`

	abs      string
	original []byte
	content  []byte
	mode     fs.FileMode
}

// Stats summarizes a run.
type Stats struct {
	ScanStats `yaml:",inline"`

	CSSFiles    int `json:"cssFiles" yaml:"cssFiles"`
	ScriptFiles int `json:"scriptFiles" yaml:"scriptFiles"`
	HTMLFiles   int `json:"htmlFiles" yaml:"htmlFiles"`

	Rules               int `json:"rules" yaml:"rules"`
	Definitions         int `json:"definitions" yaml:"definitions"`
	Candidates          int `json:"candidates" yaml:"candidates"`
	Groups              int `json:"groups" yaml:"groups"`
	ClassesConsolidated int `json:"classesConsolidated" yaml:"classesConsolidated"`

	CSSFilesModified    int `json:"cssFilesModified" yaml:"cssFilesModified"`
	ScriptFilesModified int `json:"scriptFilesModified" yaml:"scriptFilesModified"`
	HTMLFilesModified   int `json:"htmlFilesModified" yaml:"htmlFilesModified"`
	Replacements        int `json:"replacements" yaml:"replacements"`
	DuplicatesRemoved   int `json:"duplicatesRemoved" yaml:"duplicatesRemoved"`
	UnusedRemoved       int `json:"unusedRemoved" yaml:"unusedRemoved"`
	BlocksPruned        int `json:"blocksPruned" yaml:"blocksPruned"`
}

// FilesModified returns the number of files with at least one edit.
func (s Stats) FilesModified() int {
	return s.CSSFilesModified + s.ScriptFilesModified + s.HTMLFilesModified
}

// Result contains everything a run found and did
type Result struct {
	Root       string
	DryRun     bool
	Stats      Stats
	Groups     []Group
	Renames    []Rename
	Unused     *UnusedReport // nil unless the detector ran
	Files      []FileChange
	BackupPath string
	Warnings   []string
	Errors     []error
}

// Changed reports whether the run found (or made) any edit.
func (r *Result) Changed() bool {
	for _, f := range r.Files {
		if f.EditCount > 0 {
			return true
		}
	}
	return false
}

// Err combines the per-file errors, or returns nil.
func (r *Result) Err() error {
	return multierr.Combine(r.Errors...)
}

// FilesOfKind returns the changed files of kind in result order.
func (r *Result) FilesOfKind(kind FileKind) []FileChange {
	var files []FileChange
	for _, f := range r.Files {
		if f.Kind == kind {
			files = append(files, f)
		}
	}
	return files
}
