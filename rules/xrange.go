package rules

import (
	"regexp"
	"strconv"

	"github.com/termfx/sixer/grammar"
)

// xrangeRule rewrites xrange calls to range. With static bounds below the
// configured threshold the builtin range is safe even on the old runtime,
// so no import is added; larger or non-static calls get the lazy range
// from six.moves. Calls already qualified as moves.xrange are left alone.
type xrangeRule struct {
	oneArgRe  *regexp.Regexp
	twoArgRe  *regexp.Regexp
	genericRe *regexp.Regexp
}

func newXrangeRule() Rule {
	return &xrangeRule{
		oneArgRe:  regexp.MustCompile(`(moves\.)?xrange\(([0-9]+)\)`),
		twoArgRe:  regexp.MustCompile(`(moves\.)?xrange\(([0-9]+), ([0-9]+)\)`),
		genericRe: regexp.MustCompile(`(moves\.)?xrange( *\()`),
	}
}

func (r *xrangeRule) Name() string { return "xrange" }

func (r *xrangeRule) Doc() string {
	return "replace xrange() with range(), importing the six.moves alias for large or dynamic bounds"
}

func (r *xrangeRule) Patch(content string, ctx *Context) (string, error) {
	needSix := false
	maxRange := int64(ctx.MaxRange)

	content = grammar.ReplaceAllSubmatchFunc(r.oneArgRe, content, func(g []string) string {
		if g[1] != "" {
			return g[0]
		}
		if n, err := strconv.ParseInt(g[2], 10, 64); err != nil || n > maxRange {
			needSix = true
		}
		return "range(" + g[2] + ")"
	})
	content = grammar.ReplaceAllSubmatchFunc(r.twoArgRe, content, func(g []string) string {
		if g[1] != "" {
			return g[0]
		}
		lo, errLo := strconv.ParseInt(g[2], 10, 64)
		hi, errHi := strconv.ParseInt(g[3], 10, 64)
		if errLo != nil || errHi != nil || hi-lo > maxRange {
			needSix = true
		}
		return "range(" + g[2] + ", " + g[3] + ")"
	})
	content = grammar.ReplaceAllSubmatchFunc(r.genericRe, content, func(g []string) string {
		if g[1] != "" {
			return g[0]
		}
		needSix = true
		return "range" + g[2]
	})

	if !needSix {
		return content, nil
	}
	return ctx.Planner.Add(content, "from six.moves import range")
}

func (r *xrangeRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		for _, m := range r.genericRe.FindAllStringSubmatch(line, -1) {
			if m[1] == "" {
				warn(line)
				return
			}
		}
	})
}
