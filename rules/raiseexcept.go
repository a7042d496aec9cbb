package rules

import (
	"regexp"
	"strings"

	"github.com/termfx/sixer/grammar"
)

// raiseRule rewrites the removed two-expression raise statement to a
// constructor call, and the three-expression form to six.reraise. The
// common exc_info pattern 'raise exc[0], exc[1], exc[2]' collapses to
// six.reraise(*exc).
type raiseRule struct {
	twoRe   *regexp.Regexp
	threeRe *regexp.Regexp
	lineRe  *regexp.Regexp
}

func newRaiseRule() Rule {
	expr := grammar.Expr
	return &raiseRule{
		twoRe: regexp.MustCompile(
			`(?m)raise (` + expr + `), *((?:` + expr + `)|(?:` + grammar.StringLit + `))$`),
		threeRe: regexp.MustCompile(
			`raise (` + expr + `), *(` + expr + `), *(` + expr + `)`),
		lineRe: regexp.MustCompile(`(?m)^.*raise ` + expr + `,.*$`),
	}
}

func (r *raiseRule) Name() string { return "raise" }

func (r *raiseRule) Doc() string {
	return "replace 'raise exc, msg' with 'raise exc(msg)' and 'raise a, b, c' with 'six.reraise(a, b, c)'"
}

func (r *raiseRule) Patch(content string, ctx *Context) (string, error) {
	content = r.twoRe.ReplaceAllString(content, `raise $1($2)`)
	patched := grammar.ReplaceAllSubmatchFunc(r.threeRe, content, func(g []string) string {
		excType, excValue, excTb := g[1], g[2], g[3]
		if strings.HasSuffix(excType, "[0]") &&
			strings.HasSuffix(excValue, "[1]") &&
			strings.HasSuffix(excTb, "[2]") {
			return "six.reraise(*" + excType[:len(excType)-3] + ")"
		}
		return "six.reraise(" + excType + ", " + excValue + ", " + excTb + ")"
	})
	if patched == content {
		return content, nil
	}
	return ctx.Planner.AddSix(patched)
}

func (r *raiseRule) Check(content string, warn func(line string)) {
	for _, line := range r.lineRe.FindAllString(content, -1) {
		warn(line)
	}
}

// exceptRule rewrites the comma form of except clauses to the as form,
// for both a single exception name (possibly dotted) and a tuple of
// names.
type exceptRule struct {
	singleRe *regexp.Regexp
	tupleRe  *regexp.Regexp
	warnRe   *regexp.Regexp
	warn2Re  *regexp.Regexp
}

func newExceptRule() Rule {
	expr := grammar.Expr
	ident := grammar.Identifier
	return &exceptRule{
		singleRe: regexp.MustCompile(`except (` + expr + `), *(` + ident + `):`),
		tupleRe: regexp.MustCompile(
			`except (\(` + ident + `(?:, *` + ident + `)*\)), *(` + ident + `):`),
		warnRe:  regexp.MustCompile(`except [^,()]+, [^:]+:`),
		warn2Re: regexp.MustCompile(`except \([^()]+\), [^:]+:`),
	}
}

func (r *exceptRule) Name() string { return "except" }

func (r *exceptRule) Doc() string {
	return "replace 'except ValueError, exc:' with 'except ValueError as exc:'"
}

func (r *exceptRule) Patch(content string, _ *Context) (string, error) {
	content = r.singleRe.ReplaceAllString(content, `except $1 as $2:`)
	return r.tupleRe.ReplaceAllString(content, `except $1 as $2:`), nil
}

func (r *exceptRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		if r.warnRe.MatchString(line) || r.warn2Re.MatchString(line) {
			warn(line)
		}
	})
}
