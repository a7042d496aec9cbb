package rules

import (
	"regexp"
	"strings"

	"github.com/termfx/sixer/grammar"
)

// dictViewRule covers the two dict-view idioms that break once keys(),
// values() and items() return views: indexing the result and
// concatenating it with a list. Both wrap the call in list(...). The
// receiver is a bounded attribute chain, so anything fancier is left for
// Check to report.
type dictViewRule struct {
	name    string
	doc     string
	exprRe  *regexp.Regexp
	checkRe *regexp.Regexp
	replace func(groups []string) string
}

func newDict0Rule() Rule {
	return &dictViewRule{
		name:    "dict0",
		doc:     "replace dict.keys()[0] with list(dict.keys())[0], same for values() and items()",
		exprRe:  regexp.MustCompile(`(` + grammar.Expr + `\.(?:keys|values|items)\(\))\[0\]`),
		checkRe: regexp.MustCompile(`\.(?:keys|values|items)\(\)\[0\]`),
		replace: func(g []string) string { return "list(" + g[1] + ")[0]" },
	}
}

func newDictAddRule() Rule {
	return &dictViewRule{
		name:    "dict_add",
		doc:     "replace dict.keys() + list2 with list(dict.keys()) + list2, same for values() and items()",
		exprRe:  regexp.MustCompile(`(` + grammar.Expr + `\.(?:keys|values|items)\(\))( *\+)`),
		checkRe: regexp.MustCompile(`\.(?:keys|values|items)\(\) *\+`),
		replace: func(g []string) string { return "list(" + g[1] + ")" + g[2] },
	}
}

func (r *dictViewRule) Name() string { return r.name }
func (r *dictViewRule) Doc() string  { return r.doc }

func (r *dictViewRule) Patch(content string, _ *Context) (string, error) {
	return grammar.ReplaceAllSubmatchFunc(r.exprRe, content, r.replace), nil
}

func (r *dictViewRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		if r.checkRe.MatchString(line) {
			warn(line)
		}
	})
}

// hasKeyRule rewrites dict.has_key(key) to the in operator. The argument
// must be paren-free; nested calls stay behind and are warned about.
type hasKeyRule struct {
	callRe *regexp.Regexp
}

func newHasKeyRule() Rule {
	return &hasKeyRule{
		callRe: regexp.MustCompile(`(` + grammar.Expr + `)\.has_key\(([^()]*)\)`),
	}
}

func (r *hasKeyRule) Name() string { return "has_key" }

func (r *hasKeyRule) Doc() string {
	return "replace dict.has_key(key) with 'key in dict'"
}

func (r *hasKeyRule) Patch(content string, _ *Context) (string, error) {
	return r.callRe.ReplaceAllString(content, `$2 in $1`), nil
}

func (r *hasKeyRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		if strings.Contains(line, ".has_key") {
			warn(line)
		}
	})
}
