// Package core defines the shared data model for the compliance engine:
// source units, symbols, violations and severities. It has no dependencies
// on the front ends, the rule engine or the reporter, so every other
// package can import it without cycles.
package core

import "strings"

// SymbolKind classifies a declaration extracted from a source file.
type SymbolKind string

// Symbol kinds produced by front ends.
const (
	KindFunction SymbolKind = "function"
	KindClass    SymbolKind = "class"
	KindModule   SymbolKind = "module"
)

// DefaultKindMutableLiteral tags a parameter default that is a mutable
// literal (list/dict/set literal or constructor call).
const DefaultKindMutableLiteral = "mutable-literal"

// NoParent marks a top-level symbol with no enclosing declaration.
const NoParent = -1

// Symbol is one function, method or class/type declaration.
//
// Symbols are stored in document order in the owning SourceUnit. Parent is a
// weak back-reference: an index into the owning unit's Symbols slice, never
// a pointer, so the tree stays owned top-down by the unit.
type Symbol struct {
	Kind      SymbolKind `json:"kind"`
	Name      string     `json:"name"`
	StartLine int        `json:"start_line"` // 1-based, inclusive
	EndLine   int        `json:"end_line"`   // 1-based, inclusive
	Parent    int        `json:"parent"`     // index into SourceUnit.Symbols, NoParent at top level

	// Structural facts extracted by the front end.
	HasDocstring       bool     `json:"has_docstring"`
	ParameterCount     int      `json:"parameter_count"`
	HasTypeAnnotations bool     `json:"has_type_annotations"`
	DefaultArgKinds    []string `json:"default_arg_kinds,omitempty"`
	BareHandlerLines   []int    `json:"bare_handler_lines,omitempty"`

	// Derived facts populated by the metrics aggregator.
	MaxNestingDepth int `json:"max_nesting_depth"`
	BodyLineCount   int `json:"body_line_count"`
	BranchCount     int `json:"branch_count"`
}

// HasDefaultKind reports whether the symbol carries a default-argument tag.
func (s *Symbol) HasDefaultKind(kind string) bool {
	for _, k := range s.DefaultArgKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// SourceUnit is the normalized model of one analyzed file.
//
// A unit is owned exclusively by the pipeline stage processing it and is
// treated as immutable once the metrics aggregator hands it to the rule
// engine.
type SourceUnit struct {
	Path     string `json:"path"`
	Language string `json:"language"`

	// Lines holds the raw file content split by line; LineCount is
	// len(Lines) and kept explicit so degraded units can report a count
	// without content.
	Lines     []string `json:"-"`
	LineCount int      `json:"line_count"`

	// BlockDepth records, per line (0-based index), the number of
	// control-flow blocks enclosing that line. The front end computes it
	// because only the front end knows the grammar; the metrics
	// aggregator derives per-symbol nesting depth from it.
	BlockDepth []int `json:"-"`

	Symbols []Symbol `json:"symbols"`

	// ParseError is non-empty when the front end could not fully parse
	// the file. Partial symbols may still be present and are analyzed;
	// the unit is surfaced as degraded, never as a clean pass.
	ParseError string `json:"parse_error,omitempty"`
}

// Degraded reports whether the unit carries a parse (or read) failure.
func (u *SourceUnit) Degraded() bool {
	return u.ParseError != ""
}

// QualifiedName returns the dotted name of the symbol at index i,
// resolved through the weak parent links (e.g. "Order.total").
func (u *SourceUnit) QualifiedName(i int) string {
	if i < 0 || i >= len(u.Symbols) {
		return ""
	}
	parts := []string{u.Symbols[i].Name}
	for p := u.Symbols[i].Parent; p != NoParent && p >= 0 && p < len(u.Symbols); p = u.Symbols[p].Parent {
		parts = append([]string{u.Symbols[p].Name}, parts...)
	}
	return strings.Join(parts, ".")
}

// Violation is one reported instance of a rule firing at a location.
// Violations are immutable value records; equality for deduplication is by
// (Path, Line, RuleID).
type Violation struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
}

// ViolationKey is the deduplication identity of a violation.
type ViolationKey struct {
	Path   string
	Line   int
	RuleID string
}

// Key returns the deduplication identity of the violation.
func (v Violation) Key() ViolationKey {
	return ViolationKey{Path: v.Path, Line: v.Line, RuleID: v.RuleID}
}
