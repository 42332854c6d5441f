package rules

import (
	"fmt"

	"github.com/complyhq/comply/pkg/check"
	"github.com/complyhq/comply/pkg/core"
)

func init() {
	MutableDefaultArgument.Check = checkMutableDefaultArgument
	check.MustRegister(MutableDefaultArgument)
}

// MutableDefaultArgument flags parameter defaults that are mutable literals.
// The default is evaluated once at definition time, so mutations leak across
// calls.
var MutableDefaultArgument = check.RuleDef{
	ID:          "style.mutable-default-argument",
	Group:       "style",
	Description: "Parameter defaults must not be mutable literals.",
	Severity:    core.SeverityWarning,
	AppliesTo:   []core.SymbolKind{core.KindFunction},
}

func checkMutableDefaultArgument(sym *core.Symbol, unit *core.SourceUnit, _ map[string]any) []core.Violation {
	if !sym.HasDefaultKind(core.DefaultKindMutableLiteral) {
		return nil
	}
	return []core.Violation{{
		RuleID:   MutableDefaultArgument.ID,
		Severity: MutableDefaultArgument.Severity,
		Path:     unit.Path,
		Line:     sym.StartLine,
		Message:  fmt.Sprintf("function %q uses a mutable literal as a parameter default", sym.Name),
	}}
}
