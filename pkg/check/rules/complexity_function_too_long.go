package rules

import (
	"fmt"

	"github.com/complyhq/comply/pkg/check"
	"github.com/complyhq/comply/pkg/core"
)

func init() {
	FunctionTooLong.Check = checkFunctionTooLong
	check.MustRegister(FunctionTooLong)
}

// DefaultMaxFunctionLines is the default body length limit.
const DefaultMaxFunctionLines = 50

// FunctionTooLong flags function bodies longer than the configured limit,
// counting non-blank, non-comment lines only.
var FunctionTooLong = check.RuleDef{
	ID:          "complexity.function-too-long",
	Group:       "complexity",
	Description: "Function bodies must not exceed the configured line limit.",
	Severity:    core.SeverityWarning,
	AppliesTo:   []core.SymbolKind{core.KindFunction},
	ConfigKeys:  []string{"max_lines"},
}

func checkFunctionTooLong(sym *core.Symbol, unit *core.SourceUnit, opts map[string]any) []core.Violation {
	maxLines := check.GetIntOption(opts, "max_lines", DefaultMaxFunctionLines)
	if sym.BodyLineCount <= maxLines {
		return nil
	}
	return []core.Violation{{
		RuleID:   FunctionTooLong.ID,
		Severity: FunctionTooLong.Severity,
		Path:     unit.Path,
		Line:     sym.StartLine,
		Message:  fmt.Sprintf("function %q is %d lines long, limit is %d", sym.Name, sym.BodyLineCount, maxLines),
	}}
}
