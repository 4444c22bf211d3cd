package cssconsolidate

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int `json:"filesDiscovered" yaml:"filesDiscovered"` // Files matched by include globs
	FilesScanned    int `json:"filesScanned" yaml:"filesScanned"`       // Files kept after filtering
	FilesSkipped    int `json:"filesSkipped" yaml:"filesSkipped"`       // Files dropped by excludes or .gitignore
}

// SourceFile is a discovered file.
type SourceFile struct {
	Path string   // Root joined with Rel
	Rel  string   // Slash-separated, relative to the root
	Kind FileKind // css, script or html
}

// scanner walks a root and classifies files by include globs
type scanner struct {
	root           string
	cssIncludes    []string
	markupIncludes []string
	excludes       []string
	backupRel      string
	gitignore      *ignore.GitIgnore
	log            *zap.Logger
}

// Discover walks config.Root and returns every stylesheet, script and HTML
// file to process, in lexical order.
func Discover(config Config) ([]SourceFile, ScanStats, error) {
	s, err := newScanner(config)
	if err != nil {
		return nil, ScanStats{}, err
	}
	return s.scan()
}

func newScanner(config Config) (*scanner, error) {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	root := config.Root
	if root == "" {
		root = "."
	}

	for _, group := range [][]string{config.CSSIncludes, config.MarkupIncludes, config.Excludes} {
		for _, pattern := range group {
			if !doublestar.ValidatePattern(pattern) {
				return nil, fmt.Errorf("invalid glob pattern %q", pattern)
			}
		}
	}

	s := &scanner{
		root:           root,
		cssIncludes:    config.CSSIncludes,
		markupIncludes: config.MarkupIncludes,
		excludes:       config.Excludes,
		backupRel:      backupRel(root, config.BackupDir),
		log:            log.Named("scanner"),
	}
	if config.UseGitignore {
		s.gitignore = loadGitIgnore(root)
	}
	return s, nil
}

// loadGitIgnore compiles <root>/.gitignore.
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// backupRel returns the backup directory relative to root, or "" when it
// lies outside root.
func backupRel(root, dir string) string {
	if dir == "" {
		return ""
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel)
}

func (s *scanner) scan() ([]SourceFile, ScanStats, error) {
	var files []SourceFile
	stats := ScanStats{}

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == s.root {
				return err
			}
			s.log.Warn("Skipping unreadable path", zap.String("path", p), zap.Error(err))
			return nil
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if s.excluded(rel) || s.ignored(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		kind, ok := s.classify(rel)
		if !ok {
			return nil
		}
		stats.FilesDiscovered++

		if s.excluded(rel) || s.ignored(rel) {
			stats.FilesSkipped++
			return nil
		}
		stats.FilesScanned++
		files = append(files, SourceFile{Path: p, Rel: rel, Kind: kind})
		return nil
	})
	if err != nil {
		return nil, stats, err
	}

	s.log.Debug("Discovery finished",
		zap.Int("discovered", stats.FilesDiscovered),
		zap.Int("scanned", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))
	return files, stats, nil
}

// classify matches rel against the include globs. Stylesheet globs win.
func (s *scanner) classify(rel string) (FileKind, bool) {
	if matchAny(s.cssIncludes, rel) {
		return KindCSS, true
	}
	if matchAny(s.markupIncludes, rel) {
		switch strings.ToLower(path.Ext(rel)) {
		case ".html", ".htm":
			return KindHTML, true
		default:
			return KindScript, true
		}
	}
	return "", false
}

// excluded reports whether rel, or its base name, matches an exclude glob,
// or rel is the backup directory.
func (s *scanner) excluded(rel string) bool {
	if s.backupRel != "" && (rel == s.backupRel || strings.HasPrefix(rel, s.backupRel+"/")) {
		return true
	}
	return matchAny(s.excludes, rel) || matchAny(s.excludes, path.Base(rel))
}

// ignored checks rel against the root .gitignore, if any.
func (s *scanner) ignored(rel string) bool {
	return s.gitignore != nil && s.gitignore.MatchesPath(rel)
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
