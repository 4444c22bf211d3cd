// Package backup copies original file contents into a timestamped
// directory before they are overwritten.
package backup

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// File is one original to preserve.
type File struct {
	Path    string
	Content []byte
	Mode    fs.FileMode
}

// DirName returns the backup directory name for t.
func DirName(t time.Time) string {
	return "backup_" + t.Format("20060102_150405")
}

// Create writes files under <dir>/backup_YYYYMMDD_HHMMSS/<path relative to
// root> and returns the directory used. It fails on the first error, before
// any original is touched.
func Create(dir, root string, files []File, now time.Time, log *zap.Logger) (string, error) {
	if log == nil {
		log = zap.NewNop()
	}

	target, err := uniqueDir(filepath.Join(dir, DirName(now)))
	if err != nil {
		return "", err
	}

	for _, f := range files {
		dst := filepath.Join(target, relative(root, f.Path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
			return target, fmt.Errorf("create backup directory: %w", err)
		}
		mode := f.Mode.Perm()
		if mode == 0 {
			mode = 0o644
		}
		if err := os.WriteFile(dst, f.Content, mode); err != nil {
			return target, fmt.Errorf("write backup of %s: %w", f.Path, err)
		}
	}

	log.Named("backup").Debug("Backup created", zap.String("dir", target), zap.Int("files", len(files)))
	return target, nil
}

// uniqueDir creates path, adding a numeric suffix when it already exists.
func uniqueDir(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	candidate := path
	for i := 1; ; i++ {
		err := os.Mkdir(candidate, 0o750)
		if err == nil {
			return candidate, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("create backup directory: %w", err)
		}
		candidate = fmt.Sprintf("%s_%d", path, i)
	}
}

// relative maps path under root; paths outside root keep only their name.
func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(path)
	}
	return rel
}
