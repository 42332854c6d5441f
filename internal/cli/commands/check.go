package commands

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/complyhq/comply/internal/cli/config"
	"github.com/complyhq/comply/internal/cli/output"
	"github.com/complyhq/comply/internal/runner"
	"github.com/complyhq/comply/internal/state"
	"github.com/complyhq/comply/pkg/check"
	_ "github.com/complyhq/comply/pkg/check/rules" // register built-in rules
	"github.com/complyhq/comply/pkg/core"
	"github.com/complyhq/comply/pkg/frontend"
	"github.com/complyhq/comply/pkg/frontend/golang"
	"github.com/complyhq/comply/pkg/frontend/python"
	"github.com/complyhq/comply/pkg/report"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Disable   []string // Rule ids to disable
	Rules     []string // Run only specific rules
	Watch     bool     // Re-run on file changes
	NoHistory bool     // Skip recording the run
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Run compliance rules on source files",
		Long: `Analyze source files for code-quality violations.

Paths may be files or directories; directories are walked for files with a
registered front end (.py, .go). Rules can be configured in comply.yaml.`,
		Example: `  # Check the current directory
  comply check

  # Check specific paths
  comply check ./src ./tools/gen.py

  # Output as JSON
  comply check --format json

  # Disable specific rules
  comply check --disable doc.missing-docstring

  # Re-run on changes
  comply check --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule ids to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-run when watched files change")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Do not record this run")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	rc := GetRunContext(cmd)
	cfg := rc.Cfg
	r := newRenderer(cmd, cfg, "")

	frontends := defaultFrontends()

	checkCfg, err := buildCheckConfig(cfg, opts)
	if err != nil {
		return err
	}

	// Unknown rule ids fail here, before any file is read.
	engine, err := check.NewEngine(check.DefaultRegistry(), checkCfg)
	if err != nil {
		return err
	}

	failOn, ok := core.ParseSeverity(cfg.FailOn)
	if cfg.FailOn != "" && !ok {
		return fmt.Errorf("invalid fail_on severity %q", cfg.FailOn)
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	run := func(ctx context.Context) (*report.Report, error) {
		paths, err := collectFiles(roots, frontends)
		if err != nil {
			return nil, err
		}
		pool := runner.New(engine, frontends, runner.Options{
			Workers: cfg.Workers,
			Logger:  rc.Logger,
		})
		rep := pool.Run(ctx, paths)
		if err := renderReport(r, rep); err != nil {
			return nil, err
		}
		if cfg.History.Enabled && !opts.NoHistory {
			recordRun(rc, rep)
		}
		return rep, nil
	}

	ctx := cmd.Context()
	rep, err := run(ctx)
	if err != nil {
		return err
	}

	if opts.Watch {
		dirs, err := collectDirs(roots)
		if err != nil {
			return err
		}
		err = runner.Watch(ctx, dirs, rc.Logger, func() {
			if _, rerr := run(ctx); rerr != nil {
				rc.Logger.Warn("re-run failed", "error", rerr)
			}
		})
		if err == context.Canceled {
			return nil
		}
		return err
	}

	if rep.FailsAt(failOn) {
		return fmt.Errorf("found violations at or above severity %s", failOn)
	}
	return nil
}

// defaultFrontends returns the bundled front ends.
func defaultFrontends() *frontend.Registry {
	reg := frontend.NewRegistry()
	reg.Register(python.New())
	reg.Register(golang.New())
	return reg
}

// buildCheckConfig merges the project configuration with CLI flags.
// Flags take precedence.
func buildCheckConfig(cfg *config.Config, opts *CheckOptions) (*check.Config, error) {
	checkCfg := check.NewConfig()

	checkCfg.Enable(cfg.Check.Enabled...)
	for _, id := range cfg.Check.Disabled {
		checkCfg.Disable(strings.TrimSpace(id))
	}
	for id, name := range cfg.Check.Severity {
		sev, ok := core.ParseSeverity(name)
		if !ok {
			return nil, fmt.Errorf("invalid severity %q for rule %s", name, id)
		}
		checkCfg.SetSeverity(id, sev)
	}
	for id, ruleOpts := range cfg.Check.Rules {
		checkCfg.SetRuleOptions(id, ruleOpts)
	}

	for _, id := range opts.Disable {
		checkCfg.Disable(strings.TrimSpace(id))
	}
	if len(opts.Rules) > 0 {
		checkCfg.EnabledRules = nil
		checkCfg.Enable(opts.Rules...)
	}
	return checkCfg, nil
}

// collectFiles walks the roots and returns every file with a registered
// front end, sorted for a stable work queue.
func collectFiles(roots []string, frontends *frontend.Registry) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if _, ok := frontends.ForPath(path); ok {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// collectDirs returns every directory under the roots, for the watcher.
func collectDirs(roots []string) ([]string, error) {
	var dirs []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

// renderReport writes the report in the renderer's mode.
func renderReport(r *output.Renderer, rep *report.Report) error {
	if r.EffectiveMode() == output.ModeJSON {
		return report.RenderJSON(r.Out(), rep)
	}
	if rep.Summary.Total == 0 && len(rep.Failures) == 0 && !rep.Incomplete {
		r.Success(fmt.Sprintf("no violations in %d files", rep.FilesProcessed))
		return nil
	}
	for _, v := range rep.Violations {
		r.Printf("%s:%d: [%s] %s: %s\n", v.Path, v.Line, r.Severity(v.Severity), v.RuleID, v.Message)
	}
	for _, f := range rep.Failures {
		r.Printf("%s: degraded: %s\n", f.Path, f.Reason)
	}
	r.Printf("%d files, %d violations (%d errors, %d warnings, %d infos, %d hints)",
		rep.FilesProcessed, rep.Summary.Total,
		rep.Summary.Errors, rep.Summary.Warnings, rep.Summary.Infos, rep.Summary.Hints)
	if rep.Incomplete {
		r.Printf(" [incomplete]")
	}
	r.Println()
	return nil
}

// recordRun persists the run summary; failures are logged, never fatal.
func recordRun(rc *RunContext, rep *report.Report) {
	store, err := state.Open(rc.Cfg.History.Path)
	if err != nil {
		rc.Logger.Warn("history unavailable", "error", err)
		return
	}
	defer store.Close()
	if _, err := store.RecordRun(rep); err != nil {
		rc.Logger.Warn("failed to record run", "error", err)
	}
}
