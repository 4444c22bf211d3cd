package cssconsolidate

import "strings"

// Change is a single planned modification, shaped like a golangci-lint issue
// so the issues output can point at the exact source line.
type Change struct {
	Kind        string       `json:"kind" yaml:"kind"`                                   // "rename", "merge", ...
	Text        string       `json:"text" yaml:"text"`                                   // "picture -> person"
	SourceLines []string     `json:"sourceLines,omitempty" yaml:"sourceLines,omitempty"` // Line the change starts on
	Pos         ChangePos    `json:"pos" yaml:"pos"`
	Replacement *Replacement `json:"replacement,omitempty" yaml:"replacement,omitempty"`
}

// ChangePos specifies where a change starts
type ChangePos struct {
	Filename string `json:"filename" yaml:"filename"` // Relative to the root
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column" yaml:"column"` // 1-based
}

// Replacement is the token swap behind a markup rename
type Replacement struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// Change kinds
const (
	ChangeRename          = "rename"
	ChangeMerge           = "merge"
	ChangeRemoveDuplicate = "remove-duplicate"
	ChangeRemoveUnused    = "remove-unused"
	ChangePrune           = "prune"
)

// Change message formats
const (
	MessageRename = "%s -> %s"
)

// findColumn locates the 1-based column of needle within line, falling back
// to the first non-blank column.
func findColumn(line, needle string) int {
	if needle != "" {
		if idx := strings.Index(line, needle); idx >= 0 {
			return idx + 1
		}
		// Multi-line selectors: anchor on the first line only
		if first, _, ok := strings.Cut(needle, "\n"); ok && strings.TrimSpace(first) != "" {
			if idx := strings.Index(line, strings.TrimSpace(first)); idx >= 0 {
				return idx + 1
			}
		}
	}
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return 1
	}
	return len(line) - len(trimmed) + 1
}
