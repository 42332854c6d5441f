package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// RenderText writes the human-readable line-oriented form:
// one "path:line: [severity] rule_id: message" per violation in the
// report's total order, followed by degraded files and a summary line.
// Rendering never mutates the report.
func RenderText(w io.Writer, r *Report) error {
	for _, v := range r.Violations {
		if _, err := fmt.Fprintf(w, "%s:%d: [%s] %s: %s\n", v.Path, v.Line, v.Severity, v.RuleID, v.Message); err != nil {
			return err
		}
	}
	for _, f := range r.Failures {
		if _, err := fmt.Fprintf(w, "%s: degraded: %s\n", f.Path, f.Reason); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d files, %d violations (%d errors, %d warnings, %d infos, %d hints)",
		r.FilesProcessed, r.Summary.Total,
		r.Summary.Errors, r.Summary.Warnings, r.Summary.Infos, r.Summary.Hints)
	if err != nil {
		return err
	}
	if r.Incomplete {
		if _, err := fmt.Fprint(w, " [incomplete]"); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}

// RenderJSON writes the structured form: a field-for-field serialization of
// the report, stable across runs given identical inputs and configuration.
func RenderJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
