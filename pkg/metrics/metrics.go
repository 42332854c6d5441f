// Package metrics derives rule-independent facts from a SourceUnit so rules
// consume them instead of recomputing per rule: body line counts (blank and
// comment-only lines excluded) and per-symbol maximum nesting depth, taken
// from the per-line control-flow depth profile the front end recorded.
//
// Annotate is a deterministic pure function of its input unit. It has no
// failure mode of its own; a parse error already set on the unit passes
// through unchanged.
package metrics

import (
	"strings"

	"github.com/complyhq/comply/pkg/core"
)

// commentPrefixes maps a language tag to its line-comment markers.
// Unknown languages only get blank-line exclusion.
var commentPrefixes = map[string][]string{
	"python": {"#"},
	"go":     {"//"},
}

// Annotate populates the derived metric fields of every symbol in the unit
// and returns the same unit. The unit is mutated in place: the pipeline
// stage calling Annotate is the unit's sole owner at this point.
func Annotate(unit *core.SourceUnit) *core.SourceUnit {
	if unit == nil {
		return nil
	}
	prefixes := commentPrefixes[unit.Language]
	for i := range unit.Symbols {
		sym := &unit.Symbols[i]
		sym.BodyLineCount = bodyLineCount(unit.Lines, sym.StartLine, sym.EndLine, prefixes)
		sym.MaxNestingDepth = maxNestingDepth(unit.BlockDepth, sym.StartLine, sym.EndLine)
		sym.BranchCount = branchCount(unit.BlockDepth, sym.StartLine, sym.EndLine)
	}
	return unit
}

// bodyLineCount counts the lines in [start, end] that are neither blank nor
// comment-only. Lines are 1-based; out-of-range spans are clamped so a
// degraded unit with truncated content never panics.
func bodyLineCount(lines []string, start, end int, commentPrefixes []string) int {
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	count := 0
	for i := start - 1; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || isComment(trimmed, commentPrefixes) {
			continue
		}
		count++
	}
	return count
}

func isComment(trimmed string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// maxNestingDepth returns the deepest control-flow nesting within the span,
// relative to the depth at the declaration line. A missing or short depth
// profile (degraded unit) yields zero.
func maxNestingDepth(depths []int, start, end int) int {
	if len(depths) == 0 || start < 1 || start > len(depths) {
		return 0
	}
	if end > len(depths) {
		end = len(depths)
	}
	base := depths[start-1]
	deepest := 0
	for i := start - 1; i < end; i++ {
		if d := depths[i] - base; d > deepest {
			deepest = d
		}
	}
	return deepest
}

// branchCount approximates a cyclomatic-style branch count for the span: the
// number of control-flow blocks entered, read as the sum of positive depth
// deltas between consecutive lines.
func branchCount(depths []int, start, end int) int {
	if len(depths) == 0 || start < 1 || start > len(depths) {
		return 0
	}
	if end > len(depths) {
		end = len(depths)
	}
	count := 0
	prev := depths[start-1]
	for i := start; i < end; i++ {
		if d := depths[i] - prev; d > 0 {
			count += d
		}
		prev = depths[i]
	}
	return count
}
