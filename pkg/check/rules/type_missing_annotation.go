package rules

import (
	"fmt"

	"github.com/complyhq/comply/pkg/check"
	"github.com/complyhq/comply/pkg/core"
)

func init() {
	MissingAnnotation.Check = checkMissingAnnotation
	check.MustRegister(MissingAnnotation)
}

// MissingAnnotation flags functions taking parameters without full type
// annotations (every parameter plus the return value).
var MissingAnnotation = check.RuleDef{
	ID:          "type.missing-annotation",
	Group:       "type",
	Description: "Functions with parameters must annotate parameters and return type.",
	Severity:    core.SeverityWarning,
	AppliesTo:   []core.SymbolKind{core.KindFunction},
}

func checkMissingAnnotation(sym *core.Symbol, unit *core.SourceUnit, _ map[string]any) []core.Violation {
	if sym.HasTypeAnnotations || sym.ParameterCount == 0 {
		return nil
	}
	return []core.Violation{{
		RuleID:   MissingAnnotation.ID,
		Severity: MissingAnnotation.Severity,
		Path:     unit.Path,
		Line:     sym.StartLine,
		Message:  fmt.Sprintf("function %q is missing type annotations", sym.Name),
	}}
}
