// Package check provides the rule registry and the rule engine of the
// compliance pipeline.
//
// # Architecture
//
// The package follows a data-driven rule design: each rule is a RuleDef, a
// tagged record carrying metadata plus a pure check closure, rather than a
// per-rule type. Rules are stateless; all context arrives through the check
// function parameters, so the resolved rule set is safely shared read-only
// across concurrent workers.
//
// # Rule registration
//
// Built-in rules register themselves via init() when their package is
// imported:
//
//	import _ "github.com/complyhq/comply/pkg/check/rules"
//
// The default registry preserves registration order, which (together with
// the reporter's total sort) keeps output deterministic.
//
// # Evaluation
//
// An Engine is constructed from a registry and a Config. Unknown or
// duplicate rule ids fail at construction, before any file is read. During
// evaluation a panicking rule never aborts the unit: the engine recovers and
// emits a synthetic violation with rule id "engine.rule-failure" carrying
// the failing rule's id.
package check
