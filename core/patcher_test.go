package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/sixer/rules"
)

func TestNewPatcherUnknownOperation(t *testing.T) {
	_, err := NewPatcher([]string{"bogus"}, DefaultConfig())
	var unknown *rules.UnknownOperationError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bogus", unknown.Name)
}

func TestPatchContent(t *testing.T) {
	patcher, err := NewPatcher([]string{"all"}, DefaultConfig())
	require.NoError(t, err)

	outcome, err := patcher.PatchContent("app.py", "x = 1L\nfor i in xrange(10):\n    pass\n")
	require.NoError(t, err)

	assert.True(t, outcome.Changed())
	assert.Equal(t, []string{"long", "xrange"}, outcome.Applied, "applied rules follow engine order")
	assert.Equal(t, "x = 1\nfor i in range(10):\n    pass\n", outcome.Final)
	assert.Empty(t, outcome.Diagnostics)
}

func TestPatchContentUnchanged(t *testing.T) {
	patcher, err := NewPatcher([]string{"all"}, DefaultConfig())
	require.NoError(t, err)

	content := "x = 1\n"
	outcome, err := patcher.PatchContent("app.py", content)
	require.NoError(t, err)

	assert.False(t, outcome.Changed())
	assert.Equal(t, content, outcome.Final)
}

func TestPatchContentDiagnostics(t *testing.T) {
	patcher, err := NewPatcher([]string{"print"}, DefaultConfig())
	require.NoError(t, err)

	outcome, err := patcher.PatchContent("app.py", "print \"note\",note\n")
	require.NoError(t, err)

	assert.False(t, outcome.Changed())
	require.Len(t, outcome.Diagnostics, 1)
	d := outcome.Diagnostics[0]
	assert.Equal(t, "print", d.Operation)
	assert.Equal(t, "app.py", d.File)
	assert.Equal(t, `[print] app.py: print "note",note`, d.String())
}

func TestPatchContentFatalRuleError(t *testing.T) {
	patcher, err := NewPatcher([]string{"urllib"}, DefaultConfig())
	require.NoError(t, err)

	_, err = patcher.PatchContent("app.py", "import urllib2\n\nurllib2.whatever(url)\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown urllib symbol: urllib2.whatever")
	assert.Contains(t, err.Error(), "app.py")
}
