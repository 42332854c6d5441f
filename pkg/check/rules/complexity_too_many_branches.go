package rules

import (
	"fmt"

	"github.com/complyhq/comply/pkg/check"
	"github.com/complyhq/comply/pkg/core"
)

func init() {
	TooManyBranches.Check = checkTooManyBranches
	check.MustRegister(TooManyBranches)
}

// DefaultMaxBranches is the default branch count limit.
const DefaultMaxBranches = 10

// TooManyBranches flags functions whose cyclomatic-style branch count
// exceeds the configured limit.
var TooManyBranches = check.RuleDef{
	ID:          "complexity.too-many-branches",
	Group:       "complexity",
	Description: "Functions must not contain more branches than the configured limit.",
	Severity:    core.SeverityInfo,
	AppliesTo:   []core.SymbolKind{core.KindFunction},
	ConfigKeys:  []string{"max_branches"},
}

func checkTooManyBranches(sym *core.Symbol, unit *core.SourceUnit, opts map[string]any) []core.Violation {
	maxBranches := check.GetIntOption(opts, "max_branches", DefaultMaxBranches)
	if sym.BranchCount <= maxBranches {
		return nil
	}
	return []core.Violation{{
		RuleID:   TooManyBranches.ID,
		Severity: TooManyBranches.Severity,
		Path:     unit.Path,
		Line:     sym.StartLine,
		Message:  fmt.Sprintf("function %q has %d branches, limit is %d", sym.Name, sym.BranchCount, maxBranches),
	}}
}
