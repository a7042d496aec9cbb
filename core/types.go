package core

import (
	"fmt"
	"strings"
)

// Diagnostic is one warning emitted by a rule's post-patch check: a line
// where a known Python 2 idiom survived because no rewrite could be
// applied safely.
type Diagnostic struct {
	Operation string `json:"operation"`
	File      string `json:"file"`
	Line      string `json:"line"`
}

// String renders the diagnostic in the canonical "[op] file: line" form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Operation, d.File, strings.TrimSpace(d.Line))
}

// PatchOutcome is the result of running the selected rules over a single
// file. Original and Final carry the full content so the caller can diff,
// print or write without re-reading the file.
type PatchOutcome struct {
	Path        string       `json:"path"`
	Original    string       `json:"-"`
	Final       string       `json:"-"`
	Applied     []string     `json:"applied,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Changed reports whether any rule modified the content.
func (o *PatchOutcome) Changed() bool {
	return len(o.Applied) > 0
}

// RunReport aggregates the outcomes of one engine run over a set of
// paths, in input order.
type RunReport struct {
	Scanned  int            `json:"scanned"`
	Patched  int            `json:"patched"`
	Outcomes []PatchOutcome `json:"outcomes,omitempty"`
}

// Diagnostics returns every surviving-idiom warning across the run, in
// file order.
func (r *RunReport) Diagnostics() []Diagnostic {
	var all []Diagnostic
	for _, outcome := range r.Outcomes {
		all = append(all, outcome.Diagnostics...)
	}
	return all
}
