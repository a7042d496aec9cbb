// Package grammar provides the shared pattern fragments used by every
// rewrite rule that needs to capture "the expression this idiom is called
// on". The fragments are deliberately bounded: subscripts and calls may not
// nest, and parenthesized expressions support exactly one level of nested
// parentheses. Inputs outside those bounds are left unmatched so that a
// rule never fires on an expression it cannot capture faithfully.
package grammar

const (
	// Identifier matches 'name', 'var3', 'NameCamelCase'.
	Identifier = `[a-zA-Z_][a-zA-Z0-9_]*`

	// getItem matches a subscript suffix such as '[0]' or '[key]'.
	getItem = `\[[^\]]+\]`

	// call matches a call suffix such as '()' or '(obj, {})'. Nested
	// calls ('f(g())') are out of bounds.
	call = `\([^()]*\)`

	// suffix matches one subscript or call suffix.
	suffix = `(?:` + getItem + `|` + call + `)`

	// SubExpr matches 'var', 'var[0]', 'func()', 'func()[0]'.
	SubExpr = Identifier + `(?:` + suffix + `)*`

	// Expr matches an attribute chain of sub-expressions: 'inst',
	// 'self.attr', 'obj.data[0].attr'.
	Expr = SubExpr + `(?:\.` + SubExpr + `)*`

	// subParen matches an inner parenthesized run with no further nesting.
	subParen = `\([^()]+\)`

	// Paren matches '(...)' with at most one level of nested parentheses:
	// '(x + 1 for x in data)' or '((x * 2) for x in data)', but not
	// deeper nesting. The bound keeps the pattern linear; do not widen it.
	Paren = `\([^()]*(?:` + subParen + `)?[^()]*\)`

	// StringLit matches a single- or double-quoted string literal with
	// backslash escapes.
	StringLit = `"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`

	// ImportSymbols matches 'abc' or 'sym1, sym2' in a from-import line.
	ImportSymbols = Identifier + `(?:, ` + Identifier + `)*`
)
