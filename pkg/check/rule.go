package check

import "github.com/complyhq/comply/pkg/core"

// CheckFunc analyzes one symbol and returns violations.
// The unit is the symbol's owning SourceUnit (needed for the path and for
// resolving weak parent links); opts carries rule-specific options from
// configuration.
type CheckFunc func(sym *core.Symbol, unit *core.SourceUnit, opts map[string]any) []core.Violation

// FileCheckFunc analyzes a whole unit and returns violations.
// Used by file-level rules, which run once per unit after symbol rules.
type FileCheckFunc func(unit *core.SourceUnit, opts map[string]any) []core.Violation

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the check function parameters.
type RuleDef struct {
	ID          string            // Stable identifier, e.g. "doc.missing-docstring"
	Group       string            // Category, e.g. "doc", "complexity", "style"
	Description string            // Human-readable description
	Severity    core.Severity     // Default severity
	AppliesTo   []core.SymbolKind // Symbol kinds the rule may fire on; nil for file-level rules
	FileLevel   bool              // True when the rule runs once per SourceUnit
	ConfigKeys  []string          // Configuration keys this rule accepts

	Check     CheckFunc     // Symbol-level check; nil for file-level rules
	CheckFile FileCheckFunc // File-level check; nil for symbol-level rules
}

// AppliesToKind reports whether the rule may fire on the given symbol kind.
func (r RuleDef) AppliesToKind(kind core.SymbolKind) bool {
	for _, k := range r.AppliesTo {
		if k == kind {
			return true
		}
	}
	return false
}
