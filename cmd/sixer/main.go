// Command sixer adds Python 3 support to a Python 2 code base: it applies
// a catalog of regex-based rewrite operations to the given files and
// inserts the six imports they need in the right import group.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/termfx/sixer/core"
	"github.com/termfx/sixer/db"
	"github.com/termfx/sixer/rules"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	appModules  []string
	thirdParty  []string
	exclude     []string
	maxRange    int
	workers     int
	diffContext int
	write       bool
	toStdout    bool
	quiet       bool
	dbURL       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "sixer [flags] <operation>[,<operation>...] <path> [path...]",
		Short: "add Python 3 support to a Python 2 project",
		Long: "sixer rewrites Python 2 idioms to their six equivalents.\n" +
			"Directories are scanned recursively for .py files.\n\n" +
			"Operations (or \"all\"):\n" + operationList(),
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to the TOML config file (default .sixer.toml when present)")
	flags.StringSliceVar(&opts.appModules, "app", nil, "application module names, used to sort and group imports")
	flags.StringSliceVar(&opts.thirdParty, "third-party", nil, "extra third-party module prefixes for import grouping")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "glob patterns of files to skip")
	flags.IntVar(&opts.maxRange, "max-range", core.DefaultMaxRange, "largest static xrange() bound rewritten without six.moves")
	flags.IntVar(&opts.workers, "workers", 0, "number of files patched concurrently (default: number of CPUs)")
	flags.IntVar(&opts.diffContext, "diff-context", 3, "lines of context in dry-run diffs")
	flags.BoolVarP(&opts.write, "write", "w", false, "apply changes in place instead of showing diffs")
	flags.BoolVarP(&opts.toStdout, "to-stdout", "c", false, "write patched content to stdout (implies --quiet)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "be quiet")
	flags.StringVar(&opts.dbURL, "db", "", "SQLite path for the audit store (or SIXER_DB_URL)")
	return cmd
}

func operationList() string {
	names := rules.Names()
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		rule, _ := rules.Lookup(name)
		fmt.Fprintf(&b, "  %s: %s\n", name, rule.Doc())
	}
	return b.String()
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	// Optional .env for SIXER_* variables; absence is fine.
	godotenv.Load()

	cfg, err := core.LoadConfig(opts.configPath)
	if err != nil {
		return fail(err)
	}
	applyFlags(cmd, opts, cfg)

	operations := strings.Split(args[0], ",")
	patcher, err := core.NewPatcher(operations, cfg)
	if err != nil {
		return fail(err)
	}

	var store *db.Store
	if cfg.DatabaseURL != "" {
		gdb, err := db.Connect(cfg.DatabaseURL, false)
		if err != nil {
			return fail(err)
		}
		store, err = db.BeginRun(gdb, operations)
		if err != nil {
			return fail(err)
		}
	}

	files, walkErrs := core.NewFileWalker(cfg.Exclude).Expand(args[1:])

	var audit core.AuditSink
	if store != nil {
		audit = store
	}
	processor := core.NewFileProcessor(patcher, cfg, audit)
	report, err := processor.Run(context.Background(), files)
	if err != nil {
		return fail(err)
	}

	if err := render(processor, report, cfg); err != nil {
		return fail(err)
	}

	if store != nil {
		if err := store.FinishRun(report); err != nil {
			return fail(err)
		}
	}

	if len(walkErrs) > 0 {
		for _, walkErr := range walkErrs {
			warn("%s", walkErr)
		}
		return fmt.Errorf("%d path(s) could not be scanned", len(walkErrs))
	}
	return nil
}

// applyFlags overlays explicitly-set flags onto the loaded configuration,
// so the file provides defaults and the command line wins.
func applyFlags(cmd *cobra.Command, opts *options, cfg *core.Config) {
	cfg.ApplicationModules = append(cfg.ApplicationModules, opts.appModules...)
	cfg.ThirdPartyPrefixes = append(cfg.ThirdPartyPrefixes, opts.thirdParty...)
	cfg.Exclude = append(cfg.Exclude, opts.exclude...)

	flags := cmd.Flags()
	if flags.Changed("max-range") {
		cfg.MaxRange = opts.maxRange
	}
	if flags.Changed("workers") && opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if flags.Changed("diff-context") {
		cfg.DiffContext = opts.diffContext
	}
	if flags.Changed("db") {
		cfg.DatabaseURL = opts.dbURL
	}
	cfg.Write = opts.write
	cfg.ToStdout = opts.toStdout
	cfg.Quiet = opts.quiet || opts.toStdout
}

// render prints the run results: patch lines and diffs (or content on
// --to-stdout), the scan summary, and surviving-idiom warnings on stderr.
func render(processor *core.FileProcessor, report *core.RunReport, cfg *core.Config) error {
	for i := range report.Outcomes {
		outcome := &report.Outcomes[i]
		if outcome.Changed() && !cfg.Quiet {
			applied := append([]string(nil), outcome.Applied...)
			sort.Strings(applied)
			patchColor.Printf("Patch %s with %s\n", outcome.Path, strings.Join(applied, ", "))
		}
		switch {
		case cfg.ToStdout:
			fmt.Print(outcome.Final)
		case !cfg.Write && !cfg.Quiet && outcome.Changed():
			diff, err := processor.Diff(outcome)
			if err != nil {
				return err
			}
			fmt.Print(diff)
		}
	}
	if !cfg.Quiet {
		fmt.Printf("Scanned %d files\n", report.Scanned)
	}
	for _, diagnostic := range report.Diagnostics() {
		warn("%s", diagnostic)
	}
	return nil
}

var (
	patchColor = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed)
)

func warn(format string, args ...any) {
	warnColor.Fprintf(os.Stderr, "WARNING: "+format+"\n", args...)
}

// fail prints the error once (cobra's own reporting is silenced) and
// passes it through so main exits non-zero.
func fail(err error) error {
	errColor.Fprintf(os.Stderr, "ERROR: %v\n", err)
	return err
}
