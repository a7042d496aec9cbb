package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.py")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	writer := NewAtomicWriter(DefaultAtomicConfig())
	require.NoError(t, writer.WriteFile(path, "new"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	// No temp file left behind.
	_, err = os.Stat(path + DefaultAtomicConfig().TempSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFilePreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.py")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o755))

	writer := NewAtomicWriter(DefaultAtomicConfig())
	require.NoError(t, writer.WriteFile(path, "new"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestWriteFileCreatesMissingTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.py")

	writer := NewAtomicWriter(AtomicWriteConfig{UseFsync: true})
	require.NoError(t, writer.WriteFile(path, "content"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}
