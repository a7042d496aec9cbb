package rules

import (
	"regexp"

	"github.com/termfx/sixer/grammar"
)

// stringNumeric maps the string module's numeric parsers to builtins.
var stringNumeric = map[string]string{
	"atof": "float",
	"atoi": "int",
	"atol": "int",
}

// stringFuncsRule rewrites the string module's function-style helpers to
// str method calls and its numeric parsers to builtins, then drops the
// import string line once no other attribute of the module survives.
type stringFuncsRule struct {
	methodRe  *regexp.Regexp
	numericRe *regexp.Regexp
	anyAttrRe *regexp.Regexp
	importRe  *regexp.Regexp
	checkRe   *regexp.Regexp
}

func newStringFuncsRule() Rule {
	const arg = `(?:` + grammar.StringLit + `|` + grammar.Expr + `)`
	return &stringFuncsRule{
		methodRe: regexp.MustCompile(
			`\bstring\.(lower|upper|swapcase|strip|lstrip|rstrip)\((` + arg + `)(?:, *(` + arg + `))?\)`),
		numericRe: regexp.MustCompile(`\bstring\.(atof|atoi|atol)\((` + arg + `)\)`),
		anyAttrRe: regexp.MustCompile(`\bstring\.`),
		importRe:  importLineRe("string"),
		checkRe: regexp.MustCompile(
			`\bstring\.(?:lower|upper|swapcase|strip|lstrip|rstrip|atof|atoi|atol) *\(`),
	}
}

func (r *stringFuncsRule) Name() string { return "string" }

func (r *stringFuncsRule) Doc() string {
	return "replace string module function calls with str methods and builtins"
}

func (r *stringFuncsRule) Patch(content string, _ *Context) (string, error) {
	patched := grammar.ReplaceAllSubmatchFunc(r.methodRe, content, func(g []string) string {
		return g[2] + "." + g[1] + "(" + g[3] + ")"
	})
	patched = grammar.ReplaceAllSubmatchFunc(r.numericRe, patched, func(g []string) string {
		return stringNumeric[g[1]] + "(" + g[2] + ")"
	})
	if patched == content {
		return content, nil
	}
	if !r.anyAttrRe.MatchString(patched) {
		patched = removeImportMatches(r.importRe, patched)
	}
	return patched, nil
}

func (r *stringFuncsRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		if r.checkRe.MatchString(line) {
			warn(line)
		}
	})
}
