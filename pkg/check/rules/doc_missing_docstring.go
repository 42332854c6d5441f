package rules

import (
	"fmt"

	"github.com/complyhq/comply/pkg/check"
	"github.com/complyhq/comply/pkg/core"
)

func init() {
	MissingDocstring.Check = checkMissingDocstring
	check.MustRegister(MissingDocstring)
}

// MissingDocstring flags functions and classes declared without a docstring.
var MissingDocstring = check.RuleDef{
	ID:          "doc.missing-docstring",
	Group:       "doc",
	Description: "Functions and classes must carry a docstring.",
	Severity:    core.SeverityWarning,
	AppliesTo:   []core.SymbolKind{core.KindFunction, core.KindClass},
}

func checkMissingDocstring(sym *core.Symbol, unit *core.SourceUnit, _ map[string]any) []core.Violation {
	if sym.HasDocstring {
		return nil
	}
	return []core.Violation{{
		RuleID:   MissingDocstring.ID,
		Severity: MissingDocstring.Severity,
		Path:     unit.Path,
		Line:     sym.StartLine,
		Message:  fmt.Sprintf("%s %q has no docstring", sym.Kind, sym.Name),
	}}
}
