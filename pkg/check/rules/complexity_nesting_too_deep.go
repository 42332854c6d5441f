package rules

import (
	"fmt"

	"github.com/complyhq/comply/pkg/check"
	"github.com/complyhq/comply/pkg/core"
)

func init() {
	NestingTooDeep.Check = checkNestingTooDeep
	check.MustRegister(NestingTooDeep)
}

// DefaultMaxNestingDepth is the default nesting limit.
const DefaultMaxNestingDepth = 4

// NestingTooDeep flags symbols whose control-flow nesting exceeds the
// configured depth. The boundary is strict: depth equal to the limit passes.
var NestingTooDeep = check.RuleDef{
	ID:          "complexity.nesting-too-deep",
	Group:       "complexity",
	Description: "Control-flow nesting must not exceed the configured depth.",
	Severity:    core.SeverityWarning,
	AppliesTo:   []core.SymbolKind{core.KindFunction, core.KindClass},
	ConfigKeys:  []string{"max_depth"},
}

func checkNestingTooDeep(sym *core.Symbol, unit *core.SourceUnit, opts map[string]any) []core.Violation {
	maxDepth := check.GetIntOption(opts, "max_depth", DefaultMaxNestingDepth)
	if sym.MaxNestingDepth <= maxDepth {
		return nil
	}
	return []core.Violation{{
		RuleID:   NestingTooDeep.ID,
		Severity: NestingTooDeep.Severity,
		Path:     unit.Path,
		Line:     sym.StartLine,
		Message:  fmt.Sprintf("%s %q nests %d levels deep, limit is %d", sym.Kind, sym.Name, sym.MaxNestingDepth, maxDepth),
	}}
}
