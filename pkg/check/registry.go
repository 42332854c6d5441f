package check

import "sync"

// Registry stores rule definitions keyed by id, preserving registration
// order. It is write-once at startup and read-only afterwards, so the
// resolved rule set can be shared across workers without synchronization.
type Registry struct {
	mu    sync.RWMutex
	rules []RuleDef
	byID  map[string]int // index into rules
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]int)}
}

// Register adds a rule to the registry.
// Returns a *DuplicateRuleError if the id is already present.
func (r *Registry) Register(rule RuleDef) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rule.ID]; ok {
		return &DuplicateRuleError{ID: rule.ID}
	}
	r.byID[rule.ID] = len(r.rules)
	r.rules = append(r.rules, rule)
	return nil
}

// Resolve returns the definitions for the given enabled ids in registration
// order. An empty id set resolves to all registered rules. Returns an
// *UnknownRuleError if an id has no matching definition.
func (r *Registry) Resolve(enabledIDs []string) ([]RuleDef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(enabledIDs) == 0 {
		out := make([]RuleDef, len(r.rules))
		copy(out, r.rules)
		return out, nil
	}

	wanted := make(map[string]bool, len(enabledIDs))
	for _, id := range enabledIDs {
		if _, ok := r.byID[id]; !ok {
			return nil, &UnknownRuleError{ID: id}
		}
		wanted[id] = true
	}

	// Walk the ordered slice, not the id set, to keep registration order.
	var out []RuleDef
	for _, rule := range r.rules {
		if wanted[rule.ID] {
			out = append(out, rule)
		}
	}
	return out, nil
}

// GetByID returns a rule by its id.
func (r *Registry) GetByID(id string) (RuleDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return RuleDef{}, false
	}
	return r.rules[idx], true
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// defaultRegistry holds the built-in rules registered via init().
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry of built-in rules.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// MustRegister adds a rule to the default registry.
// Call this from init() functions in rule packages; duplicate ids are a
// programming error and panic.
func MustRegister(rule RuleDef) {
	if err := defaultRegistry.Register(rule); err != nil {
		panic(err)
	}
}

// AllRules returns all rules in the default registry in registration order.
func AllRules() []RuleDef {
	rules, _ := defaultRegistry.Resolve(nil)
	return rules
}
