package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func group(modules ...string) Group {
	g := Group{Modules: make(map[string]struct{})}
	for _, m := range modules {
		g.Modules[m] = struct{}{}
	}
	return g
}

func TestClassify(t *testing.T) {
	c := NewClassifier(nil, nil)

	tests := []struct {
		name    string
		group   Group
		want    Classification
	}{
		{"future", group("__future__"), Future},
		{"stdlib", group("os", "sys"), Stdlib},
		{"third_party_exact", group("six"), ThirdParty},
		{"third_party_prefix", group("oslo_config"), ThirdParty},
		// numpy matches exactly, so the lookalike stays unclassified.
		{"third_party_numpy", group("numpy"), ThirdParty},
		{"numpy_lookalike", group("numpypy"), Unknown},
		{"application", group("nova"), Application},
		{"unknown", group("whatever"), Unknown},
		// Any-match priority: one third-party module classifies the
		// whole group.
		{"mixed_third_party_wins", group("os", "six"), ThirdParty},
		{"mixed_app_beats_stdlib", group("os", "nova"), Application},
		// __future__ alongside other modules is not a future group.
		{"future_mixed", group("__future__", "os"), Stdlib},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.group))
		})
	}
}

func TestClassifierHints(t *testing.T) {
	c := NewClassifier([]string{"myapp"}, []string{"numpypy"})

	assert.Equal(t, Application, c.Classify(group("myapp")))
	assert.Equal(t, ThirdParty, c.Classify(group("numpypy")))
	// Defaults are still active alongside the hints.
	assert.Equal(t, Stdlib, c.Classify(group("os")))
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "future", Future.String())
	assert.Equal(t, "stdlib", Stdlib.String())
	assert.Equal(t, "third-party", ThirdParty.String())
	assert.Equal(t, "application", Application.String())
	assert.Equal(t, "unknown", Unknown.String())
}
