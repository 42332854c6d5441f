// Package runner fans the parse → metrics → rule-evaluation pipeline out
// across a bounded worker pool and merges per-file results into a Report.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/complyhq/comply/pkg/check"
	"github.com/complyhq/comply/pkg/frontend"
	"github.com/complyhq/comply/pkg/metrics"
	"github.com/complyhq/comply/pkg/report"
)

// Loader reads the content for a path. The default reads from disk; tests
// substitute an in-memory mapping.
type Loader func(path string) ([]byte, error)

// Options configures a Runner.
type Options struct {
	// Workers bounds the pool size; 0 means runtime.NumCPU().
	Workers int

	// Loader provides file content; nil means os.ReadFile.
	Loader Loader

	// Logger receives per-file debug events; nil disables logging.
	Logger *slog.Logger
}

// Runner drives the analysis pipeline. The engine and front end registry it
// holds are read-only after construction and shared across all workers.
type Runner struct {
	engine    *check.Engine
	frontends *frontend.Registry
	workers   int
	loader    Loader
	logger    *slog.Logger
}

// New creates a Runner over the given engine and front ends.
func New(eng *check.Engine, frontends *frontend.Registry, opts Options) *Runner {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	loader := opts.Loader
	if loader == nil {
		loader = os.ReadFile
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		engine:    eng,
		frontends: frontends,
		workers:   workers,
		loader:    loader,
		logger:    logger,
	}
}

// Run processes the given paths and assembles the Report. Each file is
// handled start-to-finish by exactly one worker. Cancellation is
// cooperative: it is checked between files, in-flight files finish, and
// completed results are preserved in a Report marked incomplete.
func (r *Runner) Run(ctx context.Context, paths []string) *report.Report {
	jobs := make(chan string)
	results := make(chan report.FileResult, len(paths))

	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case <-ctx.Done():
				return
			case jobs <- path:
			}
		}
	}()

	var g errgroup.Group
	for i := 0; i < r.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case path, ok := <-jobs:
					if !ok {
						return nil
					}
					results <- r.processFile(path)
				}
			}
		})
	}
	_ = g.Wait()
	close(results)

	collected := make([]report.FileResult, 0, len(paths))
	for res := range results {
		collected = append(collected, res)
	}
	return report.Assemble(collected, ctx.Err() != nil)
}

// processFile runs one file through the full pipeline. Read and parse
// failures degrade the file instead of aborting the run.
func (r *Runner) processFile(path string) report.FileResult {
	content, err := r.loader(path)
	if err != nil {
		r.logger.Debug("file unreadable", "path", path, "error", err)
		return report.FileResult{
			Path:    path,
			Failure: &report.FileFailure{Path: path, Reason: fmt.Sprintf("read failed: %v", err)},
		}
	}

	parser, ok := r.frontends.ForPath(path)
	if !ok {
		return report.FileResult{
			Path:    path,
			Failure: &report.FileFailure{Path: path, Reason: "no front end registered for this file type"},
		}
	}

	unit := metrics.Annotate(parser.Parse(path, content))
	violations := r.engine.Evaluate(unit)
	r.logger.Debug("file analyzed", "path", path, "symbols", len(unit.Symbols), "violations", len(violations))

	res := report.FileResult{Path: path, Violations: violations}
	if unit.Degraded() {
		res.Failure = &report.FileFailure{Path: path, Reason: unit.ParseError}
	}
	return res
}
