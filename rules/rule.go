// Package rules holds the catalog of rewrite operations. Every rule is a
// stateless content transformation: it detects an idiom structurally,
// rewrites it locally, and requests any new shim import through the
// planner instead of assuming where imports belong. Rules are idempotent,
// so the tool can be re-run over already-patched files.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/termfx/sixer/imports"
)

// All is the virtual operation name expanding to the full catalog.
const All = "all"

// Context carries the engine-supplied configuration a rule may need while
// patching. Rules hold no state of their own.
type Context struct {
	// Planner splices shim imports into the content under rewrite.
	Planner *imports.Planner
	// MaxRange is the largest statically-known bound for which a
	// range-like call can be rewritten without the shim alias.
	MaxRange int
}

// Rule is one rewrite operation. Patch returns the rewritten content (or
// the input unchanged when the idiom is absent); Check scans the final
// content for the old idiom's textual signature and reports every line
// where it survives, so known-unhandled cases surface as warnings instead
// of silent misses.
type Rule interface {
	Name() string
	Doc() string
	Patch(content string, ctx *Context) (string, error)
	Check(content string, warn func(line string))
}

// UnknownOperationError is returned when a requested operation name is not
// in the catalog.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("invalid operation: %q", e.Name)
}

// order is the engine's fixed application sequence. It matters: rules that
// remove imports (stringio, urllib, six_moves, itertools) run before rules
// that could otherwise see the removed statements, and the textual side
// effects of earlier rules are visible to later ones.
var order = []string{
	"iteritems",
	"itervalues",
	"iterkeys",
	"next",
	"long",
	"octal",
	"unicode",
	"xrange",
	"basestring",
	"stringio",
	"string",
	"urllib",
	"raise",
	"except",
	"six_moves",
	"itertools",
	"dict0",
	"dict_add",
	"has_key",
	"print",
}

var catalog = buildCatalog()

func buildCatalog() map[string]Rule {
	all := []Rule{
		newIterFuncRule("iteritems"),
		newIterFuncRule("itervalues"),
		newIterkeysRule(),
		newNextRule(),
		newLongRule(),
		newOctalRule(),
		newUnicodeRule(),
		newXrangeRule(),
		newBasestringRule(),
		newStringIORule(),
		newStringFuncsRule(),
		newURLLibRule(),
		newRaiseRule(),
		newExceptRule(),
		newSixMovesRule(),
		newItertoolsRule(),
		newDict0Rule(),
		newDictAddRule(),
		newHasKeyRule(),
		newPrintRule(),
	}
	m := make(map[string]Rule, len(all))
	for _, r := range all {
		m[r.Name()] = r
	}
	for _, name := range order {
		if _, ok := m[name]; !ok {
			panic("rules: order lists unknown rule " + name)
		}
	}
	return m
}

// Names returns every operation name in application order.
func Names() []string {
	names := make([]string, len(order))
	copy(names, order)
	return names
}

// Lookup returns the named rule.
func Lookup(name string) (Rule, bool) {
	r, ok := catalog[name]
	return r, ok
}

// Resolve expands the requested operation names (including the virtual
// "all") into rules in the engine's deterministic application order.
func Resolve(requested []string) ([]Rule, error) {
	selected := make(map[string]bool, len(requested))
	for _, name := range requested {
		if name == All {
			for _, n := range order {
				selected[n] = true
			}
			continue
		}
		if _, ok := catalog[name]; !ok {
			return nil, &UnknownOperationError{Name: name}
		}
		selected[name] = true
	}
	rules := make([]Rule, 0, len(selected))
	for _, name := range order {
		if selected[name] {
			rules = append(rules, catalog[name])
		}
	}
	return rules, nil
}

// importLineRe matches a whole 'import <name>' line plus at most one
// following blank line. Remove matches with removeImportMatches so the
// blank line survives when the statement has group siblings.
func importLineRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^import ` + name + `\n\n?`)
}

// fromImportLineRe is importLineRe for the 'from <module> import <symbol>'
// form.
func fromImportLineRe(module, symbol string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^from ` + module + ` import ` + symbol + `\n\n?`)
}

// removeImportMatches deletes every match of re, an importLineRe-shaped
// pattern, preserving the import group structure around the removals.
func removeImportMatches(re *regexp.Regexp, content string) string {
	matches := re.FindAllStringIndex(content, -1)
	if matches == nil {
		return content
	}
	spans := make([][2]int, len(matches))
	for i, m := range matches {
		spans[i] = [2]int{m[0], m[1]}
	}
	return removeImportSpans(content, spans)
}

// removeImportSpans deletes the given spans, each covering a whole import
// line plus an optional trailing blank line. The blank line separates the
// group from the next one, so it is dropped only when the removal empties
// the whole group; a removed line with surviving group siblings keeps the
// separator in place.
func removeImportSpans(content string, spans [][2]int) string {
	var b strings.Builder
	last := 0
	for i := 0; i < len(spans); {
		j := i
		for j+1 < len(spans) && spans[j+1][0] == spans[j][1] {
			j++
		}
		start, end := spans[i][0], spans[j][1]
		if strings.HasSuffix(content[start:end], "\n\n") && !startsImportGroup(content, start) {
			end--
		}
		b.WriteString(content[last:start])
		last = end
		i = j + 1
	}
	b.WriteString(content[last:])
	return b.String()
}

// startsImportGroup reports whether offset opens an import group: the
// start of the content or the position right after a blank line.
func startsImportGroup(content string, offset int) bool {
	if offset == 0 {
		return true
	}
	if offset >= 2 {
		return content[offset-2:offset] == "\n\n"
	}
	return content[0] == '\n'
}

// mapLines rewrites content line by line, preserving line endings.
func mapLines(content string, fn func(line string) string) string {
	var b strings.Builder
	start := 0
	for start < len(content) {
		end := len(content)
		if i := indexByteFrom(content, '\n', start); i >= 0 {
			end = i + 1
		}
		line := content[start:end]
		eol := ""
		if strings.HasSuffix(line, "\n") {
			line, eol = line[:len(line)-1], "\n"
		}
		b.WriteString(fn(line))
		b.WriteString(eol)
		start = end
	}
	return b.String()
}

// eachLine invokes fn for every line of content, without line endings.
func eachLine(content string, fn func(line string)) {
	start := 0
	for start <= len(content) {
		end := len(content)
		if i := indexByteFrom(content, '\n', start); i >= 0 {
			end = i
		}
		if start < end || end < len(content) {
			fn(content[start:end])
		}
		start = end + 1
	}
}

func indexByteFrom(s string, b byte, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
