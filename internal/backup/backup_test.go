package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreate(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "backups")
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	files := []File{
		{Path: filepath.Join(root, "src", "a.css"), Content: []byte(".a{}"), Mode: 0o644},
		{Path: filepath.Join(root, "index.html"), Content: []byte("<p>"), Mode: 0o600},
	}

	got, err := Create(dir, root, files, now, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "backup_20240309_140507"), got)

	content, err := os.ReadFile(filepath.Join(got, "src", "a.css"))
	require.NoError(t, err)
	assert.Equal(t, ".a{}", string(content))

	info, err := os.Stat(filepath.Join(got, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCreateTwiceInOneSecond(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "backups")
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	files := []File{{Path: filepath.Join(root, "a.css"), Content: []byte("x")}}

	first, err := Create(dir, root, files, now, nil)
	require.NoError(t, err)
	second, err := Create(dir, root, files, now, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, first+"_1", second)
}

func TestRelative(t *testing.T) {
	root := filepath.Join("tmp", "project")
	assert.Equal(t, filepath.Join("src", "a.css"), relative(root, filepath.Join(root, "src", "a.css")))
	assert.Equal(t, "x.css", relative(root, filepath.Join("elsewhere", "x.css")))
}
