package grammar

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExprBounds(t *testing.T) {
	re := regexp.MustCompile(`^(?:` + Expr + `)$`)

	tests := []struct {
		name    string
		input   string
		matches bool
	}{
		{"identifier", "value", true},
		{"attribute_chain", "self.cache.data", true},
		{"subscript", "rows[0]", true},
		{"call", "fetch()", true},
		{"call_with_args", "fetch(url, timeout)", true},
		{"chained_suffixes", "fetch()[0].name", true},
		{"nested_call", "outer(inner())", false},
		{"leading_dot", ".value", false},
		{"leading_digit", "1value", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, re.MatchString(tt.input))
		})
	}
}

func TestParenBounds(t *testing.T) {
	re := regexp.MustCompile(`^(?:` + Paren + `)$`)

	assert.True(t, re.MatchString("(x + 1 for x in data)"))
	assert.True(t, re.MatchString("((x * 2) for x in data)"))
	assert.False(t, re.MatchString("(f((x)) for x in data)"), "two nesting levels are out of bounds")
	assert.False(t, re.MatchString("(unbalanced"))
}

func TestStringLit(t *testing.T) {
	re := regexp.MustCompile(`^(?:` + StringLit + `)$`)

	assert.True(t, re.MatchString(`"hello"`))
	assert.True(t, re.MatchString(`'hello'`))
	assert.True(t, re.MatchString(`"tab\tquote\""`))
	assert.False(t, re.MatchString(`"mismatched'`))
}

func TestReplaceAllSubmatchFunc(t *testing.T) {
	re := regexp.MustCompile(`(moves\.)?xrange\(([0-9]+)\)`)
	out := ReplaceAllSubmatchFunc(re, "xrange(3); moves.xrange(4)", func(g []string) string {
		if g[1] != "" {
			return g[0]
		}
		return "range(" + g[2] + ")"
	})
	assert.Equal(t, "range(3); moves.xrange(4)", out)
}

func TestReplaceAllSubmatchFuncNoMatch(t *testing.T) {
	re := regexp.MustCompile(`never`)
	called := false
	out := ReplaceAllSubmatchFunc(re, "input", func([]string) string {
		called = true
		return ""
	})
	assert.Equal(t, "input", out)
	assert.False(t, called)
}
