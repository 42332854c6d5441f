package check

import "fmt"

// DuplicateRuleError is returned when a rule id is registered twice.
// Registration errors are fatal at startup, before any file processing.
type DuplicateRuleError struct {
	ID string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule %q is already registered", e.ID)
}

// UnknownRuleError is returned when configuration references a rule id
// that has no matching definition in the registry.
type UnknownRuleError struct {
	ID string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule %q", e.ID)
}
