package imports

import (
	"fmt"
	"regexp"
	"strings"
)

// AmbiguousPlacementError is returned when no import group can be
// classified as a target or anchor for the new line. The planner never
// guesses: placing an import inside the wrong semantic block would corrupt
// the file's grouping convention, so the condition is fatal for the file
// and carries the group contents so the caller can supply better
// application/third-party hints.
type AmbiguousPlacementError struct {
	Line   string
	Groups []Group
}

func (e *AmbiguousPlacementError) Error() string {
	rendered := make([]string, len(e.Groups))
	for i, g := range e.Groups {
		rendered[i] = g.String()
	}
	return fmt.Sprintf("unable to locate an import group for %q among %s; pass application or third-party module hints",
		e.Line, strings.Join(rendered, " "))
}

// Planner decides where a new import statement is spliced into existing
// content. It is stateless: groups are re-parsed on every call because
// earlier rules may have altered the import block.
type Planner struct {
	classifier *Classifier
}

// NewPlanner returns a Planner that classifies groups with c.
func NewPlanner(c *Classifier) *Planner {
	return &Planner{classifier: c}
}

// AddSix ensures the content imports six.
func (p *Planner) AddSix(content string) (string, error) {
	return p.Add(content, "import six")
}

// Add inserts line as an import statement, preserving group conventions.
// It is a no-op when an identical statement already exists, so multiple
// rules may request the same shim import within one run.
func (p *Planner) Add(content, line string) (string, error) {
	line = strings.TrimRight(line, "\n")
	if importExists(content, line) {
		return content, nil
	}
	names, err := ParseStatement(line)
	if err != nil {
		return "", err
	}
	return p.insert(content, line+"\n", names)
}

// importExists reports whether the exact statement is already present,
// ignoring trailing whitespace and comments on the line.
func importExists(content, line string) bool {
	re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(line) + `[ \t]*(?:#.*)?$`)
	return re.MatchString(content)
}

func (p *Planner) insert(content, importLine string, names []string) (string, error) {
	groups := ParseGroups(content)
	if len(groups) == 0 {
		if content == "" {
			return importLine, nil
		}
		return importLine + "\n\n" + content, nil
	}

	if names[0] == "__future__" {
		// Future imports must stay first: merge into an existing leading
		// future group, or open a new first group.
		if groups[0].only("__future__") {
			return insertInto(content, groups[0], importLine, names), nil
		}
		return spliceNewGroup(content, 0, importLine, false), nil
	}

	anchors := groups
	if anchors[0].only("__future__") {
		anchors = anchors[1:]
	}
	if len(anchors) == 0 {
		return "", &AmbiguousPlacementError{Line: strings.TrimSpace(importLine), Groups: groups}
	}

	// Canonical three-group layout: stdlib, third-party, application.
	if len(anchors) == 3 {
		return insertInto(content, anchors[1], importLine, names), nil
	}

	lastStdlibEnd := -1
	for _, g := range anchors {
		switch p.classifier.Classify(g) {
		case ThirdParty:
			return insertInto(content, g, importLine, names), nil
		case Application:
			// Open a new group just before the application imports so the
			// shim import is not absorbed into them.
			return spliceNewGroup(content, g.Start, importLine, false), nil
		case Stdlib:
			lastStdlibEnd = g.End
		}
	}
	if lastStdlibEnd >= 0 {
		atEnd := lastStdlibEnd == anchors[len(anchors)-1].End
		return spliceNewGroup(content, lastStdlibEnd, importLine, atEnd), nil
	}

	return "", &AmbiguousPlacementError{Line: strings.TrimSpace(importLine), Groups: groups}
}

// insertInto places importLine inside an existing group, keeping the
// group's statements sorted by their parsed name components. Lines that do
// not parse as imports are skipped, not treated as errors.
func insertInto(content string, g Group, importLine string, names []string) string {
	pos := g.Start
	for pos < g.End {
		line := lineAt(content, pos)
		if line == "\n" {
			break
		}
		existing, err := ParseStatement(line)
		if err == nil && CompareNames(names, existing) < 0 {
			break
		}
		pos += len(line)
	}
	return content[:pos] + importLine + content[pos:]
}

// spliceNewGroup inserts importLine as its own group at pos. A new group is
// separated from the preceding group by one blank line; it is followed by
// one blank line when another group trails it, or two when it ends the
// import block (only the final group is separated from code by two).
func spliceNewGroup(content string, pos int, importLine string, lastGroup bool) string {
	before := content[:pos]
	sep := "\n"
	if before == "" || strings.HasSuffix(before, "\n\n") {
		sep = ""
	}
	after := "\n"
	if lastGroup {
		after = "\n\n"
	}
	return before + sep + importLine + after + content[pos:]
}

// lineAt returns the line starting at pos including its newline.
func lineAt(content string, pos int) string {
	if eol := strings.Index(content[pos:], "\n"); eol >= 0 {
		return content[pos : pos+eol+1]
	}
	return content[pos:]
}
