package rules

import (
	"regexp"
	"strings"
)

// basestringRule replaces the basestring builtin with six.string_types.
// basestring only ever appears in type checks, so a plain word rewrite is
// sufficient and anything left over is reported.
type basestringRule struct {
	wordRe *regexp.Regexp
}

func newBasestringRule() Rule {
	return &basestringRule{wordRe: regexp.MustCompile(`\bbasestring\b`)}
}

func (r *basestringRule) Name() string { return "basestring" }

func (r *basestringRule) Doc() string {
	return "replace the basestring builtin with six.string_types"
}

func (r *basestringRule) Patch(content string, ctx *Context) (string, error) {
	patched := r.wordRe.ReplaceAllString(content, "six.string_types")
	if patched == content {
		return content, nil
	}
	return ctx.Planner.AddSix(patched)
}

func (r *basestringRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		if strings.Contains(line, "basestring") {
			warn(line)
		}
	})
}
