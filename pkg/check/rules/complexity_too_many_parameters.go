package rules

import (
	"fmt"

	"github.com/complyhq/comply/pkg/check"
	"github.com/complyhq/comply/pkg/core"
)

func init() {
	TooManyParameters.Check = checkTooManyParameters
	check.MustRegister(TooManyParameters)
}

// DefaultMaxParameters is the default parameter count limit.
const DefaultMaxParameters = 5

// TooManyParameters flags functions taking more parameters than the limit.
var TooManyParameters = check.RuleDef{
	ID:          "complexity.too-many-parameters",
	Group:       "complexity",
	Description: "Functions must not take more parameters than the configured limit.",
	Severity:    core.SeverityInfo,
	AppliesTo:   []core.SymbolKind{core.KindFunction},
	ConfigKeys:  []string{"max_params"},
}

func checkTooManyParameters(sym *core.Symbol, unit *core.SourceUnit, opts map[string]any) []core.Violation {
	maxParams := check.GetIntOption(opts, "max_params", DefaultMaxParameters)
	if sym.ParameterCount <= maxParams {
		return nil
	}
	return []core.Violation{{
		RuleID:   TooManyParameters.ID,
		Severity: TooManyParameters.Severity,
		Path:     unit.Path,
		Line:     sym.StartLine,
		Message:  fmt.Sprintf("function %q takes %d parameters, limit is %d", sym.Name, sym.ParameterCount, maxParams),
	}}
}
