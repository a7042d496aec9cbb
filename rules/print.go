package rules

import (
	"regexp"

	"github.com/termfx/sixer/grammar"
)

const futurePrintImport = "from __future__ import print_function"

// printRule rewrites print statements to print() calls. A plain
// 'print arg' compiles identically under both syntaxes once
// parenthesised, so only the forms whose meaning changes (bare print, a
// trailing comma, printing into a stream) pull in the __future__ import.
// Statements with several comma-separated arguments are ambiguous between
// a tuple and multiple arguments and are only warned about.
type printRule struct {
	bareRe  *regexp.Regexp
	argRe   *regexp.Regexp
	intoRe  *regexp.Regexp
	checkRe *regexp.Regexp
}

func newPrintRule() Rule {
	const arg = `(?:` + grammar.StringLit + `|` + grammar.Expr + `)`
	return &printRule{
		bareRe: regexp.MustCompile(`(?m)^([ \t]*)print((?: *#.*)?)$`),
		argRe:  regexp.MustCompile(`(?m)^([ \t]*)print( +)(` + arg + `)(,?)$`),
		intoRe: regexp.MustCompile(`(?m)^([ \t]*)print( *)>> *(` + grammar.Expr + `), *(` + arg + `)$`),
		// Any surviving print statement: print followed by something that
		// is neither a call paren nor whitespace.
		checkRe: regexp.MustCompile(`(?m)^[ \t]*print\b *[^(\s].*$`),
	}
}

func (r *printRule) Name() string { return "print" }

func (r *printRule) Doc() string {
	return "replace print statements with print() function calls"
}

// pad turns the spaces between the keyword and its argument into padding
// before the opening paren, keeping column alignment: one space is eaten
// by the paren itself.
func pad(spaces string) string {
	if spaces == "" {
		return ""
	}
	return spaces[1:]
}

func (r *printRule) Patch(content string, ctx *Context) (string, error) {
	needFuture := false

	content = grammar.ReplaceAllSubmatchFunc(r.intoRe, content, func(g []string) string {
		needFuture = true
		return g[1] + "print" + pad(g[2]) + "(" + g[4] + ", file=" + g[3] + ")"
	})
	content = grammar.ReplaceAllSubmatchFunc(r.bareRe, content, func(g []string) string {
		needFuture = true
		return g[1] + "print()" + g[2]
	})
	content = grammar.ReplaceAllSubmatchFunc(r.argRe, content, func(g []string) string {
		if g[4] == "," {
			needFuture = true
			return g[1] + "print" + pad(g[2]) + "(" + g[3] + ", end=' ')"
		}
		return g[1] + "print" + pad(g[2]) + "(" + g[3] + ")"
	})

	if !needFuture {
		return content, nil
	}
	return ctx.Planner.Add(content, futurePrintImport)
}

func (r *printRule) Check(content string, warn func(line string)) {
	for _, line := range r.checkRe.FindAllString(content, -1) {
		warn(line)
	}
}
