package rules

import (
	"regexp"
	"strings"

	"github.com/termfx/sixer/grammar"
)

// iterFuncRule rewrites expr.iteritems() / expr.itervalues() calls to the
// corresponding six helper. The receiver is matched as a bounded attribute
// chain, so calls on arbitrary parenthesised expressions are left alone
// and surface through Check instead.
type iterFuncRule struct {
	name    string
	shim    string
	callRe  *regexp.Regexp
	checkRe *regexp.Regexp
}

func newIterFuncRule(name string) Rule {
	return &iterFuncRule{
		name:    name,
		shim:    "six." + name,
		callRe:  regexp.MustCompile(`(` + grammar.Expr + `)\.` + name + `\(\)`),
		checkRe: regexp.MustCompile(`\b` + name + ` *\(`),
	}
}

func (r *iterFuncRule) Name() string { return r.name }

func (r *iterFuncRule) Doc() string {
	return "replace dict." + r.name + "() calls with " + r.shim + "()"
}

func (r *iterFuncRule) Patch(content string, ctx *Context) (string, error) {
	patched := r.callRe.ReplaceAllString(content, r.shim+`($1)`)
	if patched == content {
		return content, nil
	}
	return ctx.Planner.AddSix(patched)
}

func (r *iterFuncRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		if r.checkRe.MatchString(line) && !strings.Contains(line, r.shim) {
			warn(line)
		}
	})
}

// iterkeysRule handles iterkeys separately: iterating a dict's keys needs
// no helper at all, only direct iteration, so the for-loop form is
// rewritten first and six.iterkeys is reserved for value contexts.
type iterkeysRule struct {
	forRe   *regexp.Regexp
	callRe  *regexp.Regexp
	checkRe *regexp.Regexp
}

func newIterkeysRule() Rule {
	ident := grammar.Identifier
	return &iterkeysRule{
		forRe: regexp.MustCompile(
			`for (` + ident + `(?:, *` + ident + `)*) in (` + grammar.Expr + `)\.iterkeys\(\):`),
		callRe:  regexp.MustCompile(`(` + grammar.Expr + `)\.iterkeys\(\)`),
		checkRe: regexp.MustCompile(`\biterkeys *\(`),
	}
}

func (r *iterkeysRule) Name() string { return "iterkeys" }

func (r *iterkeysRule) Doc() string {
	return "replace dict.iterkeys() with direct iteration or six.iterkeys()"
}

func (r *iterkeysRule) Patch(content string, ctx *Context) (string, error) {
	content = r.forRe.ReplaceAllString(content, `for $1 in $2:`)
	patched := r.callRe.ReplaceAllString(content, `six.iterkeys($1)`)
	if patched == content {
		return content, nil
	}
	return ctx.Planner.AddSix(patched)
}

func (r *iterkeysRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		if r.checkRe.MatchString(line) && !strings.Contains(line, "six.iterkeys") {
			warn(line)
		}
	})
}
