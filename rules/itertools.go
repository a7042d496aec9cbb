package rules

import (
	"regexp"
	"strings"

	"github.com/termfx/sixer/grammar"
)

// itertoolsFunctions maps the removed itertools iterator builders to their
// six.moves builtin equivalents.
var itertoolsFunctions = map[string]string{
	"imap":    "map",
	"ifilter": "filter",
	"izip":    "zip",
}

// itertoolsRule rewrites itertools.imap, ifilter and izip (in both their
// qualified and from-imported forms) to the lazy builtins re-exported by
// six.moves. When no other itertools attribute survives, the now-unused
// import itertools line is removed.
type itertoolsRule struct {
	fromImportRe *regexp.Regexp
	bareRe       *regexp.Regexp
	qualifiedRe  *regexp.Regexp
	anyAttrRe    *regexp.Regexp
	importRe     *regexp.Regexp
	checkRe      *regexp.Regexp
}

func newItertoolsRule() Rule {
	const funcs = `imap|ifilter|izip`
	return &itertoolsRule{
		fromImportRe: fromImportLineRe("itertools", `(?:`+funcs+`)`),
		bareRe:       regexp.MustCompile(`\b(` + funcs + `)\b`),
		qualifiedRe:  regexp.MustCompile(`\bitertools\.(` + funcs + `)\b`),
		anyAttrRe:    regexp.MustCompile(`\bitertools\.`),
		importRe:     importLineRe("itertools"),
		checkRe:      regexp.MustCompile(`\b(?:` + funcs + `)\b`),
	}
}

func (r *itertoolsRule) Name() string { return "itertools" }

func (r *itertoolsRule) Doc() string {
	return "replace itertools.imap, ifilter and izip with six.moves equivalents"
}

func (r *itertoolsRule) Patch(content string, ctx *Context) (string, error) {
	content, err := r.patchFromImport(content, ctx)
	if err != nil {
		return "", err
	}
	return r.patchImport(content, ctx)
}

func (r *itertoolsRule) patchFromImport(content string, ctx *Context) (string, error) {
	patched := removeImportMatches(r.fromImportRe, content)
	if patched == content {
		return content, nil
	}
	patched, err := ctx.Planner.AddSix(patched)
	if err != nil {
		return "", err
	}
	return grammar.ReplaceAllSubmatchFunc(r.bareRe, patched, func(g []string) string {
		return "six.moves." + itertoolsFunctions[g[1]]
	}), nil
}

func (r *itertoolsRule) patchImport(content string, ctx *Context) (string, error) {
	patched := grammar.ReplaceAllSubmatchFunc(r.qualifiedRe, content, func(g []string) string {
		return "six.moves." + itertoolsFunctions[g[1]]
	})
	if patched == content {
		return content, nil
	}
	if !r.anyAttrRe.MatchString(patched) {
		patched = removeImportMatches(r.importRe, patched)
	}
	return ctx.Planner.AddSix(patched)
}

func (r *itertoolsRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		if r.checkRe.MatchString(line) && !strings.Contains(line, "six.moves.") {
			warn(line)
		}
	})
}
