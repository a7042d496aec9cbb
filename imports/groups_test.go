package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroups(t *testing.T) {
	tests := []struct {
		name    string
		content string
		spans   [][2]int
		modules [][]string
	}{
		{
			name:    "two_groups",
			content: "import sys\n\nimport six\n",
			spans:   [][2]int{{0, 12}, {12, 23}},
			modules: [][]string{{"sys"}, {"six"}},
		},
		{
			name:    "three_groups",
			content: "import sys\n\nimport six\n\nimport nova\n",
			spans:   [][2]int{{0, 12}, {12, 24}, {24, 36}},
			modules: [][]string{{"sys"}, {"six"}, {"nova"}},
		},
		{
			name:    "single_group",
			content: "import a\nimport b\nimport c\n",
			spans:   [][2]int{{0, 27}},
			modules: [][]string{{"a", "b", "c"}},
		},
		{
			name:    "from_imports",
			content: "from oslo_log import log\n\ncode\n",
			spans:   [][2]int{{0, 26}},
			modules: [][]string{{"oslo_log"}},
		},
		{
			name:    "no_imports",
			content: "x = 1\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := ParseGroups(tt.content)
			require.Len(t, groups, len(tt.spans))
			for i, g := range groups {
				assert.Equal(t, tt.spans[i][0], g.Start)
				assert.Equal(t, tt.spans[i][1], g.End)
				for _, module := range tt.modules[i] {
					assert.True(t, g.Has(module), "missing module %s", module)
				}
				assert.Len(t, g.Modules, len(tt.modules[i]))
			}
		})
	}
}

func TestParseStatement(t *testing.T) {
	names, err := ParseStatement("import a.b.c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)

	names, err = ParseStatement("from x.y import z")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, names)

	names, err = ParseStatement("from six.moves import queue")
	require.NoError(t, err)
	assert.Equal(t, []string{"six", "moves", "queue"}, names)

	_, err = ParseStatement("x = 1")
	var notImport ErrNotImport
	require.ErrorAs(t, err, &notImport)
	assert.Equal(t, "x = 1", notImport.Line)
}

func TestCompareNames(t *testing.T) {
	assert.Equal(t, -1, CompareNames([]string{"numpy"}, []string{"six"}))
	assert.Equal(t, 1, CompareNames([]string{"six"}, []string{"numpy"}))
	assert.Equal(t, 0, CompareNames([]string{"six"}, []string{"six"}))
	assert.Equal(t, -1, CompareNames([]string{"six"}, []string{"six", "moves"}))
	assert.Equal(t, 1, CompareNames([]string{"six", "moves"}, []string{"six"}))
}
