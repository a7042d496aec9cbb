package grammar

import (
	"regexp"
	"strings"
)

// ReplaceAllSubmatchFunc substitutes every match of re in src with the
// return value of repl. Unlike regexp.ReplaceAllStringFunc, repl receives
// the full submatch slice (index 0 is the whole match; unmatched optional
// groups are empty strings).
func ReplaceAllSubmatchFunc(re *regexp.Regexp, src string, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if matches == nil {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))
	last := 0
	for _, m := range matches {
		b.WriteString(src[last:m[0]])
		groups := make([]string, len(m)/2)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = src[m[2*i] : m[2*i+1]]
			}
		}
		b.WriteString(repl(groups))
		last = m[1]
	}
	b.WriteString(src[last:])
	return b.String()
}
