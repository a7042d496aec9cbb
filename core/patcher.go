// Package core drives the rewrite engine: it walks the requested paths,
// applies the selected rules to each Python file in a fixed order,
// collects surviving-idiom diagnostics and writes the results back
// atomically or renders them as diffs.
package core

import (
	"fmt"

	"github.com/termfx/sixer/imports"
	"github.com/termfx/sixer/rules"
)

// Patcher applies a fixed sequence of rules to file content. It is safe
// for concurrent use: rules are stateless and every per-file value lives
// in the PatchOutcome.
type Patcher struct {
	rules   []rules.Rule
	planner *imports.Planner
	// maxRange bounds the static xrange() rewrites that can use the
	// builtin range without an import.
	maxRange int
}

// NewPatcher resolves the requested operation names against the catalog
// and builds the import planner from the configured module hints. An
// unrecognized name yields a rules.UnknownOperationError.
func NewPatcher(operations []string, cfg *Config) (*Patcher, error) {
	selected, err := rules.Resolve(operations)
	if err != nil {
		return nil, err
	}
	classifier := imports.NewClassifier(cfg.ApplicationModules, cfg.ThirdPartyPrefixes)
	return &Patcher{
		rules:    selected,
		planner:  imports.NewPlanner(classifier),
		maxRange: cfg.MaxRange,
	}, nil
}

// PatchContent runs every selected rule over content in the engine's
// fixed order and then the rules' checks over the final text. The input
// order is part of the contract: later rules see the text produced by
// earlier ones.
func (p *Patcher) PatchContent(path, content string) (*PatchOutcome, error) {
	outcome := &PatchOutcome{
		Path:     path,
		Original: content,
	}
	ctx := &rules.Context{
		Planner:  p.planner,
		MaxRange: p.maxRange,
	}
	for _, rule := range p.rules {
		patched, err := rule.Patch(content, ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: operation %s: %w", path, rule.Name(), err)
		}
		if patched != content {
			outcome.Applied = append(outcome.Applied, rule.Name())
			content = patched
		}
	}
	outcome.Final = content

	for _, rule := range p.rules {
		name := rule.Name()
		rule.Check(content, func(line string) {
			outcome.Diagnostics = append(outcome.Diagnostics, Diagnostic{
				Operation: name,
				File:      path,
				Line:      line,
			})
		})
	}
	return outcome, nil
}
