package rules

import (
	"fmt"

	"github.com/complyhq/comply/pkg/check"
	"github.com/complyhq/comply/pkg/core"
)

func init() {
	BareExceptionHandler.Check = checkBareExceptionHandler
	check.MustRegister(BareExceptionHandler)
}

// BareExceptionHandler flags unqualified catch-all error handlers, which
// swallow failures the author never anticipated. One violation per handler.
var BareExceptionHandler = check.RuleDef{
	ID:          "style.bare-exception-handler",
	Group:       "style",
	Description: "Error handlers must name the failures they catch.",
	Severity:    core.SeverityWarning,
	AppliesTo:   []core.SymbolKind{core.KindFunction, core.KindClass},
}

func checkBareExceptionHandler(sym *core.Symbol, unit *core.SourceUnit, _ map[string]any) []core.Violation {
	var out []core.Violation
	for _, line := range sym.BareHandlerLines {
		out = append(out, core.Violation{
			RuleID:   BareExceptionHandler.ID,
			Severity: BareExceptionHandler.Severity,
			Path:     unit.Path,
			Line:     line,
			Message:  fmt.Sprintf("%s %q contains a bare catch-all handler", sym.Kind, sym.Name),
		})
	}
	return out
}
