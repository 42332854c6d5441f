package check

import "github.com/complyhq/comply/pkg/core"

// Config controls which rules run, their severity and their thresholds.
type Config struct {
	// EnabledRules restricts the run to the listed rule ids.
	// Empty means all registered rules.
	EnabledRules []string

	// DisabledRules contains rule ids to skip.
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules.
	SeverityOverrides map[string]core.Severity

	// RuleOptions holds rule-specific options (numeric thresholds etc.)
	// keyed by rule id.
	RuleOptions map[string]map[string]any
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
		RuleOptions:       make(map[string]map[string]any),
	}
}

// Enable restricts the run to the given rule ids (appends to any prior call).
func (c *Config) Enable(ruleIDs ...string) *Config {
	c.EnabledRules = append(c.EnabledRules, ruleIDs...)
	return c
}

// Disable disables a rule by id.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity core.Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// GetSeverity returns the severity for a rule, applying any override.
// Resolution order: run-level override > rule default.
func (c *Config) GetSeverity(ruleID string, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// SetRuleOptions sets rule-specific options for a rule id.
func (c *Config) SetRuleOptions(ruleID string, opts map[string]any) *Config {
	c.RuleOptions[ruleID] = opts
	return c
}

// GetRuleOptions returns rule-specific options, or nil if none are set.
func (c *Config) GetRuleOptions(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}
