package rules

import (
	"regexp"
	"strings"
)

// unicodeRule rewrites uses of the unicode builtin to six.text_type and
// the (str, unicode) type tuple to six.string_types. The word scan is per
// line so that import statements, comments, docstring openers and a
// function's own name (def unicode(...)) are skipped; everything after
// those guards is fair game, including occurrences inside ordinary string
// literals, which in practice are type names in error messages.
type unicodeRule struct {
	tupleRe *regexp.Regexp
	defRe   *regexp.Regexp
}

func newUnicodeRule() Rule {
	return &unicodeRule{
		tupleRe: regexp.MustCompile(`\(str, ?unicode\)`),
		defRe:   regexp.MustCompile(`^ *def +[A-Za-z_][A-Za-z0-9_]* *\(`),
	}
}

func (r *unicodeRule) Name() string { return "unicode" }

func (r *unicodeRule) Doc() string {
	return "replace the unicode builtin with six.text_type"
}

func (r *unicodeRule) Patch(content string, ctx *Context) (string, error) {
	patched := r.tupleRe.ReplaceAllString(content, "six.string_types")

	lines := strings.SplitAfter(patched, "\n")
	modified := false
	for i, line := range lines {
		if strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "from ") {
			continue
		}
		start := 0
		end := len(line)
		if pos := strings.Index(line, "#"); pos >= 0 {
			end = pos
		}
		if pos := strings.Index(line[:end], `"""`); pos >= 0 {
			end = pos
		}
		if m := r.defRe.FindStringIndex(line[:end]); m != nil {
			start = m[1]
		}
		newLine, changed := replaceWord(line, start, end, "unicode", "six.text_type")
		if changed {
			lines[i] = newLine
			modified = true
		}
	}
	if !modified {
		if patched == content {
			return content, nil
		}
		return ctx.Planner.AddSix(patched)
	}
	return ctx.Planner.AddSix(strings.Join(lines, ""))
}

func (r *unicodeRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		end := len(line)
		if pos := strings.Index(line, "#"); pos >= 0 {
			end = pos
		}
		if findWord(line, 0, end, "unicode") >= 0 {
			warn(line)
		}
	})
}

// replaceWord substitutes every whole-word occurrence of old within
// line[start:end] with new, keeping the rest of the line intact. The scan
// window shifts as replacements change the line length.
func replaceWord(line string, start, end int, old, new string) (string, bool) {
	changed := false
	for {
		idx := findWord(line, start, end, old)
		if idx < 0 {
			return line, changed
		}
		line = line[:idx] + new + line[idx+len(old):]
		changed = true
		start = idx + len(new)
		end += len(new) - len(old)
	}
}

// findWord locates old as a whole word within line[start:end]. Boundaries
// are checked against the full line, not the window, so a window edge
// splitting an identifier does not create a false match.
func findWord(line string, start, end int, word string) int {
	if end > len(line) {
		end = len(line)
	}
	for i := start; i+len(word) <= end; {
		j := strings.Index(line[i:end], word)
		if j < 0 {
			return -1
		}
		idx := i + j
		beforeOK := idx == 0 || !isWordByte(line[idx-1])
		afterOK := idx+len(word) >= len(line) || !isWordByte(line[idx+len(word)])
		if beforeOK && afterOK {
			return idx
		}
		i = idx + 1
	}
	return -1
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
