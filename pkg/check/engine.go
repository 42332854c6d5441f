package check

import (
	"fmt"

	"github.com/complyhq/comply/pkg/core"
)

// RuleFailureID is the reserved rule id for synthetic violations emitted
// when a rule panics while evaluating a symbol or unit.
const RuleFailureID = "engine.rule-failure"

// Engine evaluates a resolved rule set against source units.
// It is immutable after construction and safe for concurrent use.
type Engine struct {
	rules []RuleDef
	cfg   *Config
}

// NewEngine resolves the configured rule set against the registry.
// Unknown rule ids fail here, before any file is processed.
func NewEngine(registry *Registry, cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	resolved, err := registry.Resolve(cfg.EnabledRules)
	if err != nil {
		return nil, err
	}
	rules := resolved[:0:0]
	for _, r := range resolved {
		if !cfg.IsDisabled(r.ID) {
			rules = append(rules, r)
		}
	}
	return &Engine{rules: rules, cfg: cfg}, nil
}

// Rules returns the resolved rule set in registration order.
func (e *Engine) Rules() []RuleDef {
	out := make([]RuleDef, len(e.rules))
	copy(out, e.rules)
	return out
}

// Evaluate runs the rule set against one unit: every symbol rule per symbol
// in document order, then file-level rules once. A degraded unit (parse
// error set) is still evaluated over whatever partial symbols exist.
func (e *Engine) Evaluate(unit *core.SourceUnit) []core.Violation {
	var out []core.Violation
	for i := range unit.Symbols {
		sym := &unit.Symbols[i]
		for _, rule := range e.rules {
			if rule.FileLevel || !rule.AppliesToKind(sym.Kind) {
				continue
			}
			out = append(out, e.runSymbolRule(rule, sym, unit)...)
		}
	}
	for _, rule := range e.rules {
		if rule.FileLevel {
			out = append(out, e.runFileRule(rule, unit)...)
		}
	}
	return out
}

func (e *Engine) runSymbolRule(rule RuleDef, sym *core.Symbol, unit *core.SourceUnit) (vs []core.Violation) {
	defer e.recoverRule(rule, unit, sym.StartLine, &vs)
	vs = rule.Check(sym, unit, e.cfg.GetRuleOptions(rule.ID))
	e.finalize(vs, rule, unit)
	return vs
}

func (e *Engine) runFileRule(rule RuleDef, unit *core.SourceUnit) (vs []core.Violation) {
	defer e.recoverRule(rule, unit, 1, &vs)
	vs = rule.CheckFile(unit, e.cfg.GetRuleOptions(rule.ID))
	e.finalize(vs, rule, unit)
	return vs
}

// finalize stamps path and resolved severity onto freshly emitted violations.
func (e *Engine) finalize(vs []core.Violation, rule RuleDef, unit *core.SourceUnit) {
	for i := range vs {
		if vs[i].Path == "" {
			vs[i].Path = unit.Path
		}
		vs[i].Severity = e.cfg.GetSeverity(rule.ID, vs[i].Severity)
	}
}

// recoverRule converts a rule panic into a synthetic engine.rule-failure
// violation so one buggy rule cannot mask the other findings for a file.
func (e *Engine) recoverRule(rule RuleDef, unit *core.SourceUnit, line int, vs *[]core.Violation) {
	rec := recover()
	if rec == nil {
		return
	}
	*vs = []core.Violation{{
		RuleID:   RuleFailureID,
		Severity: e.cfg.GetSeverity(RuleFailureID, core.SeverityError),
		Path:     unit.Path,
		Line:     line,
		Message:  fmt.Sprintf("rule %s failed during evaluation: %v", rule.ID, rec),
	}}
}
