package rules

import (
	"regexp"
	"strings"

	"github.com/termfx/sixer/grammar"
)

// nextRule rewrites iterator.next() calls to the next() builtin. The
// receiver may be an attribute chain or a parenthesised expression; a
// redundant outer paren pair is dropped when the whole receiver was
// wrapped, so "(gen for ...).next()" becomes "next(gen for ...)".
type nextRule struct {
	callRe *regexp.Regexp
	warnRe *regexp.Regexp
	defRe  *regexp.Regexp
}

func newNextRule() Rule {
	return &nextRule{
		callRe: regexp.MustCompile(`(` + grammar.Expr + `|` + grammar.Paren + `)\.next\(\)`),
		warnRe: regexp.MustCompile(`\.next *\(`),
		defRe:  regexp.MustCompile(`\bdef next *\(`),
	}
}

func (r *nextRule) Name() string { return "next" }

func (r *nextRule) Doc() string {
	return "replace iterator.next() calls with next(iterator)"
}

func (r *nextRule) Patch(content string, _ *Context) (string, error) {
	return grammar.ReplaceAllSubmatchFunc(r.callRe, content, func(g []string) string {
		receiver := g[1]
		if strings.HasPrefix(receiver, "(") && strings.HasSuffix(receiver, ")") {
			receiver = receiver[1 : len(receiver)-1]
		}
		return "next(" + receiver + ")"
	}), nil
}

func (r *nextRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		if r.warnRe.MatchString(line) || r.defRe.MatchString(line) {
			warn(line)
		}
	})
}
