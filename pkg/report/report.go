// Package report assembles per-file analysis results into the final,
// deterministic Report and renders it for humans and machines.
package report

import (
	"sort"

	"github.com/complyhq/comply/pkg/core"
)

// FileResult carries one processed file's outcome from a worker to the
// merge step.
type FileResult struct {
	Path       string
	Violations []core.Violation
	// Failure is set when the file was read or parsed only partially
	// (or not at all). The violations from partial symbols still count.
	Failure *FileFailure
}

// FileFailure records a per-file degradation: a parse error or an
// unreadable file. Degraded files are surfaced, never conflated with a
// clean pass.
type FileFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Summary holds violation counts by severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
	Hints    int `json:"hints"`
	Total    int `json:"total"`
}

// Report is the terminal artifact of a run: the deduplicated, totally
// ordered violation list plus per-file failures and summary counts.
// It is never mutated after assembly.
type Report struct {
	Violations     []core.Violation `json:"violations"`
	Failures       []FileFailure    `json:"failures,omitempty"`
	Summary        Summary          `json:"summary"`
	FilesProcessed int              `json:"files_processed"`
	// Incomplete marks a partial report produced under cancellation:
	// completed files are included, undequeued files are not.
	Incomplete bool `json:"incomplete,omitempty"`
}

// Assemble merges per-file results into a Report. Results may arrive in any
// completion order: violations are deduplicated by (path, line, rule id)
// keeping the first occurrence within a file's emission order, then sorted
// by path, line and rule id. That total order, not processing order, is
// what makes output reproducible across worker counts.
func Assemble(results []FileResult, incomplete bool) *Report {
	r := &Report{
		FilesProcessed: len(results),
		Incomplete:     incomplete,
	}

	seen := make(map[core.ViolationKey]bool)
	for _, res := range results {
		for _, v := range res.Violations {
			if seen[v.Key()] {
				continue
			}
			seen[v.Key()] = true
			r.Violations = append(r.Violations, v)
		}
		if res.Failure != nil {
			r.Failures = append(r.Failures, *res.Failure)
		}
	}

	sort.Slice(r.Violations, func(i, j int) bool {
		a, b := r.Violations[i], r.Violations[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.RuleID < b.RuleID
	})
	sort.Slice(r.Failures, func(i, j int) bool {
		return r.Failures[i].Path < r.Failures[j].Path
	})

	for _, v := range r.Violations {
		switch v.Severity {
		case core.SeverityError:
			r.Summary.Errors++
		case core.SeverityWarning:
			r.Summary.Warnings++
		case core.SeverityInfo:
			r.Summary.Infos++
		case core.SeverityHint:
			r.Summary.Hints++
		}
	}
	r.Summary.Total = len(r.Violations)
	return r
}

// FailsAt reports whether the report contains any violation at or above the
// given severity threshold. The surrounding tool uses this to decide
// process success or failure; the core never terminates a process itself.
func (r *Report) FailsAt(threshold core.Severity) bool {
	for _, v := range r.Violations {
		if v.Severity.AtLeast(threshold) {
			return true
		}
	}
	return false
}
