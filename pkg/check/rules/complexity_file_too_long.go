package rules

import (
	"fmt"

	"github.com/complyhq/comply/pkg/check"
	"github.com/complyhq/comply/pkg/core"
)

func init() {
	FileTooLong.CheckFile = checkFileTooLong
	check.MustRegister(FileTooLong)
}

// DefaultMaxFileLines is the default file length limit.
const DefaultMaxFileLines = 400

// FileTooLong flags files longer than the configured raw line limit.
// This is a file-level rule: it runs once per unit, after symbol rules.
var FileTooLong = check.RuleDef{
	ID:          "complexity.file-too-long",
	Group:       "complexity",
	Description: "Files must not exceed the configured line limit.",
	Severity:    core.SeverityInfo,
	FileLevel:   true,
	ConfigKeys:  []string{"max_lines"},
}

func checkFileTooLong(unit *core.SourceUnit, opts map[string]any) []core.Violation {
	maxLines := check.GetIntOption(opts, "max_lines", DefaultMaxFileLines)
	if unit.LineCount <= maxLines {
		return nil
	}
	return []core.Violation{{
		RuleID:   FileTooLong.ID,
		Severity: FileTooLong.Severity,
		Path:     unit.Path,
		Line:     1,
		Message:  fmt.Sprintf("file is %d lines long, limit is %d", unit.LineCount, maxLines),
	}}
}
