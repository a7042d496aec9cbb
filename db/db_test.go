package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/sixer/core"
	"github.com/termfx/sixer/models"
)

func TestConnectMemory(t *testing.T) {
	gdb, err := Connect(":memory:", false)
	require.NoError(t, err)
	assert.True(t, gdb.Migrator().HasTable(&models.Run{}))
	assert.True(t, gdb.Migrator().HasTable(&models.FileResult{}))
}

func TestConnectCreatesDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "audit.db")
	_, err := Connect(dsn, false)
	require.NoError(t, err)
}

func TestStoreRoundTrip(t *testing.T) {
	gdb, err := Connect(":memory:", false)
	require.NoError(t, err)

	store, err := BeginRun(gdb, []string{"long", "print"})
	require.NoError(t, err)

	outcome := &core.PatchOutcome{
		Path:     "app.py",
		Original: "x = 1L\n",
		Final:    "x = 1\n",
		Applied:  []string{"long"},
		Diagnostics: []core.Diagnostic{
			{Operation: "print", File: "app.py", Line: `print "note",note`},
		},
	}
	require.NoError(t, store.RecordFile(outcome))
	require.NoError(t, store.FinishRun(&core.RunReport{Scanned: 1, Patched: 1}))

	var run models.Run
	require.NoError(t, gdb.Preload("Files").First(&run).Error)
	assert.Equal(t, 1, run.Scanned)
	assert.Equal(t, 1, run.Patched)
	require.NotNil(t, run.EndedAt)
	assert.JSONEq(t, `["long","print"]`, string(run.Operations))

	require.Len(t, run.Files, 1)
	file := run.Files[0]
	assert.Equal(t, "app.py", file.Path)
	assert.True(t, file.Changed)
	assert.JSONEq(t, `["long"]`, string(file.Applied))
	assert.Len(t, file.BaseDigest, 64)
	assert.Len(t, file.AfterDigest, 64)
	assert.NotEqual(t, file.BaseDigest, file.AfterDigest)
}

func TestStoreRecordsUnchangedFile(t *testing.T) {
	gdb, err := Connect(":memory:", false)
	require.NoError(t, err)

	store, err := BeginRun(gdb, []string{"all"})
	require.NoError(t, err)

	outcome := &core.PatchOutcome{Path: "ok.py", Original: "x = 1\n", Final: "x = 1\n"}
	require.NoError(t, store.RecordFile(outcome))

	var file models.FileResult
	require.NoError(t, gdb.First(&file).Error)
	assert.False(t, file.Changed)
	assert.Equal(t, file.BaseDigest, file.AfterDigest)
}
