// Package rules contains the built-in compliance rules, one file per rule.
//
// Importing the package (usually as a blank import) registers every rule in
// the default registry via init():
//
//	import _ "github.com/complyhq/comply/pkg/check/rules"
//
// Rule groups:
//   - doc: documentation presence
//   - type: type annotation coverage
//   - complexity: size and nesting limits
//   - style: error-prone idioms
package rules
