package rules

import (
	"regexp"
	"strings"
)

// longRule strips the L suffix from integer literals and rewrites the
// (int, long) type tuple to six.integer_types. Octal-looking literals
// (a leading zero followed by digits) are deliberately left untouched:
// stripping their suffix silently changes nothing about the base problem,
// so they stay behind for Check to report and the octal rule to convert.
type longRule struct {
	intLongRe *regexp.Regexp
	hexRe     *regexp.Regexp
	decRe     *regexp.Regexp
	checkRe   *regexp.Regexp
}

func newLongRule() Rule {
	return &longRule{
		intLongRe: regexp.MustCompile(`\(int, ?long\)`),
		hexRe:     regexp.MustCompile(`\b(0[xX][0-9a-fA-F]+)[lL]`),
		decRe:     regexp.MustCompile(`\b([1-9][0-9]*|0)[lL]`),
		checkRe:   regexp.MustCompile(`\b[0-9]+[lL]\b`),
	}
}

func (r *longRule) Name() string { return "long" }

func (r *longRule) Doc() string {
	return "drop the L suffix from integer literals and map (int, long) to six.integer_types"
}

func (r *longRule) Patch(content string, ctx *Context) (string, error) {
	patched := r.intLongRe.ReplaceAllString(content, "six.integer_types")
	if patched != content {
		var err error
		patched, err = ctx.Planner.AddSix(patched)
		if err != nil {
			return "", err
		}
	}
	patched = r.hexRe.ReplaceAllString(patched, `$1`)
	patched = r.decRe.ReplaceAllString(patched, `$1`)
	return patched, nil
}

func (r *longRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		if r.checkRe.MatchString(line) {
			warn(line)
		}
	})
}

// octalRule rewrites 0NNN octal literals to the 0oNNN form. It is kept
// separate from the long rule because the conversion changes how the
// literal reads and reviewers usually want to see those diffs in
// isolation.
type octalRule struct {
	literalRe *regexp.Regexp
	checkRe   *regexp.Regexp
}

func newOctalRule() Rule {
	return &octalRule{
		literalRe: regexp.MustCompile(`\b0([0-9]+)\b`),
		checkRe:   regexp.MustCompile(`\b0[0-9]+[lL]\b`),
	}
}

func (r *octalRule) Name() string { return "octal" }

func (r *octalRule) Doc() string {
	return "rewrite 0NNN octal literals to the 0oNNN form"
}

func (r *octalRule) Patch(content string, _ *Context) (string, error) {
	// Word boundaries alone are not enough: the fractional digits of a
	// float such as 1.05 also start with a zero at a boundary. Check the
	// neighbouring bytes so only standalone literals convert.
	matches := r.literalRe.FindAllStringIndex(content, -1)
	if matches == nil {
		return content, nil
	}
	var b strings.Builder
	b.Grow(len(content) + 2*len(matches))
	last := 0
	for _, m := range matches {
		if (m[0] > 0 && content[m[0]-1] == '.') || (m[1] < len(content) && content[m[1]] == '.') {
			continue
		}
		b.WriteString(content[last:m[0]])
		b.WriteString("0o")
		b.WriteString(content[m[0]+1 : m[1]])
		last = m[1]
	}
	b.WriteString(content[last:])
	return b.String(), nil
}

func (r *octalRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		if r.checkRe.MatchString(line) {
			warn(line)
		}
	})
}
