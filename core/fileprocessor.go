package core

import (
	"context"
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"
)

// AuditSink records per-file outcomes for later inspection. The db
// package provides the persistent implementation; a nil sink disables
// auditing.
type AuditSink interface {
	RecordFile(outcome *PatchOutcome) error
}

// FileProcessor runs the patcher over a set of files with bounded
// concurrency and applies or renders the results.
type FileProcessor struct {
	patcher *Patcher
	writer  *AtomicWriter
	cfg     *Config
	audit   AuditSink
}

// NewFileProcessor wires a processor. audit may be nil.
func NewFileProcessor(patcher *Patcher, cfg *Config, audit AuditSink) *FileProcessor {
	return &FileProcessor{
		patcher: patcher,
		writer:  NewAtomicWriter(DefaultAtomicConfig()),
		cfg:     cfg,
		audit:   audit,
	}
}

// Run patches every file. Files are processed concurrently up to the
// configured worker count, but the report lists outcomes in input order
// so output is reproducible. The first error cancels the remaining work.
func (fp *FileProcessor) Run(ctx context.Context, files []string) (*RunReport, error) {
	outcomes := make([]*PatchOutcome, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fp.cfg.Workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			outcome, err := fp.processFile(path)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &RunReport{Scanned: len(files)}
	for _, outcome := range outcomes {
		report.Outcomes = append(report.Outcomes, *outcome)
		if outcome.Changed() {
			report.Patched++
		}
		if fp.audit != nil {
			if err := fp.audit.RecordFile(outcome); err != nil {
				return nil, fmt.Errorf("audit %s: %w", outcome.Path, err)
			}
		}
	}
	return report, nil
}

func (fp *FileProcessor) processFile(path string) (*PatchOutcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	outcome, err := fp.patcher.PatchContent(path, string(data))
	if err != nil {
		return nil, err
	}
	if fp.cfg.Write && !fp.cfg.ToStdout && outcome.Changed() {
		if err := fp.writer.WriteFile(path, outcome.Final); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
	}
	return outcome, nil
}

// Diff renders a unified diff of one outcome for dry runs.
func (fp *FileProcessor) Diff(outcome *PatchOutcome) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(outcome.Original),
		B:        difflib.SplitLines(outcome.Final),
		FromFile: "a/" + outcome.Path,
		ToFile:   "b/" + outcome.Path,
		Context:  fp.cfg.DiffContext,
	})
}
