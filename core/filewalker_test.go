package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestExpandDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.py"), "")
	writeFile(t, filepath.Join(dir, "a.py"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, "sub", "c.py"), "")
	writeFile(t, filepath.Join(dir, ".tox", "skipped.py"), "")

	files, errs := NewFileWalker(nil).Expand([]string{dir})
	require.Empty(t, errs)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "b.py"),
		filepath.Join(dir, "sub", "c.py"),
	}, files, "lexical order, .py only, .tox skipped")
}

func TestExpandExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script")
	writeFile(t, path, "")

	// Explicit file arguments are not filtered by extension.
	files, errs := NewFileWalker(nil).Expand([]string{path})
	require.Empty(t, errs)
	assert.Equal(t, []string{path}, files)
}

func TestExpandExclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.py"), "")
	writeFile(t, filepath.Join(dir, "skip_test.py"), "")

	files, errs := NewFileWalker([]string{"*_test.py"}).Expand([]string{dir})
	require.Empty(t, errs)
	assert.Equal(t, []string{filepath.Join(dir, "keep.py")}, files)
}

func TestExpandEmptyDir(t *testing.T) {
	dir := t.TempDir()

	files, errs := NewFileWalker(nil).Expand([]string{dir})
	assert.Empty(t, files)
	require.Len(t, errs, 1)
	var empty *EmptyDirError
	require.ErrorAs(t, errs[0], &empty)
	assert.Equal(t, dir, empty.Path)
}

func TestExpandMissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	files, errs := NewFileWalker(nil).Expand([]string{missing})
	assert.Empty(t, files)
	require.Len(t, errs, 1)
	var pathErr *PathError
	require.ErrorAs(t, errs[0], &pathErr)
	assert.Contains(t, pathErr.Error(), "doesn't exist")
}

func TestExpandContinuesPastErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"), "")
	missing := filepath.Join(dir, "nope")

	files, errs := NewFileWalker(nil).Expand([]string{missing, dir})
	assert.Len(t, errs, 1)
	assert.Equal(t, []string{filepath.Join(dir, "a.py")}, files)
}
