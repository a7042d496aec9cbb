// Package imports parses the import block of a Python source file into
// groups, classifies each group, and plans where a new import line must be
// spliced so that the stdlib / third-party / application grouping
// convention survives the edit.
package imports

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/termfx/sixer/grammar"
)

var (
	// A group is a maximal run of consecutive import statements; trailing
	// blank lines belong to the group span.
	groupRe = regexp.MustCompile(`(?m)^(?:import|from) .*\n(?:(?:import|from) .*\n)*\n*`)

	// First dotted component of each statement in a group.
	moduleNameRe = regexp.MustCompile(`(?m)^(?:import|from) (` + grammar.Identifier + `)`)
)

// Group is a contiguous run of import statements with no blank line between
// them. Start and End are byte offsets into the content the group was
// parsed from; End includes any trailing blank lines. Groups are derived
// fresh from content on each query and never mutated in place.
type Group struct {
	Start   int
	End     int
	Modules map[string]struct{}
}

// Has reports whether the group imports the given top-level module.
func (g Group) Has(module string) bool {
	_, ok := g.Modules[module]
	return ok
}

// only reports whether the group's modules are exactly {module}.
func (g Group) only(module string) bool {
	return len(g.Modules) == 1 && g.Has(module)
}

// String renders the module set for error messages.
func (g Group) String() string {
	names := make([]string, 0, len(g.Modules))
	for name := range g.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("[%d:%d %s]", g.Start, g.End, strings.Join(names, " "))
}

// ParseGroups scans content for import groups in order of appearance.
func ParseGroups(content string) []Group {
	var groups []Group
	pos := 0
	for {
		loc := groupRe.FindStringIndex(content[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		modules := make(map[string]struct{})
		for _, m := range moduleNameRe.FindAllStringSubmatch(content[start:end], -1) {
			modules[m[1]] = struct{}{}
		}
		groups = append(groups, Group{Start: start, End: end, Modules: modules})
		pos = end
	}
	return groups
}

// ErrNotImport is returned by ParseStatement for a line that does not parse
// as an import statement. Callers scanning a group for an insertion
// position skip such lines rather than failing.
type ErrNotImport struct {
	Line string
}

func (e ErrNotImport) Error() string {
	return fmt.Sprintf("unable to parse import %q", e.Line)
}

// ParseStatement splits an import statement into its sortable name
// components: "import a.b.c" -> [a b c], "from x.y import z" -> [x y z].
// For "from x import a, b" the final component is the raw symbol list,
// which still sorts usefully against sibling statements.
func ParseStatement(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "import "):
		return strings.Split(line[len("import "):], "."), nil
	case strings.HasPrefix(line, "from "):
		rest := line[len("from "):]
		sep := strings.Index(rest, " import ")
		if sep < 0 {
			return nil, ErrNotImport{Line: line}
		}
		names := strings.Split(rest[:sep], ".")
		return append(names, rest[sep+len(" import "):]), nil
	default:
		return nil, ErrNotImport{Line: line}
	}
}

// CompareNames orders two parsed statements lexicographically by component.
func CompareNames(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
