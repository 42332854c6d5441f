package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/complyhq/comply/internal/cli/output"
	"github.com/complyhq/comply/pkg/check"
	_ "github.com/complyhq/comply/pkg/check/rules" // register built-in rules
	"github.com/complyhq/comply/pkg/core"
)

// ruleInfo is the machine-readable rule listing entry.
type ruleInfo struct {
	ID          string   `json:"id"`
	Group       string   `json:"group"`
	AppliesTo   []string `json:"applies_to"`
	Severity    string   `json:"default_severity"`
	ConfigKeys  []string `json:"config_keys,omitempty"`
	Description string   `json:"description"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List registered compliance rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, group)
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "Only list rules in this group")
	return cmd
}

func runRules(cmd *cobra.Command, group string) error {
	rc := GetRunContext(cmd)
	r := newRenderer(cmd, rc.Cfg, "")

	var infos []ruleInfo
	for _, rule := range check.AllRules() {
		if group != "" && rule.Group != group {
			continue
		}
		infos = append(infos, ruleInfo{
			ID:          rule.ID,
			Group:       rule.Group,
			AppliesTo:   appliesTo(rule),
			Severity:    rule.Severity.String(),
			ConfigKeys:  rule.ConfigKeys,
			Description: rule.Description,
		})
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "APPLIES TO", "SEVERITY", "OPTIONS", "DESCRIPTION"})
	for _, info := range infos {
		t.AppendRow(table.Row{
			info.ID,
			strings.Join(info.AppliesTo, ", "),
			info.Severity,
			strings.Join(info.ConfigKeys, ", "),
			info.Description,
		})
	}
	t.Render()
	return nil
}

func appliesTo(rule check.RuleDef) []string {
	if rule.FileLevel {
		return []string{"file"}
	}
	kinds := make([]string, 0, len(rule.AppliesTo))
	for _, k := range rule.AppliesTo {
		kinds = append(kinds, string(k))
	}
	if len(kinds) == 0 {
		kinds = append(kinds, string(core.KindFunction))
	}
	return kinds
}
