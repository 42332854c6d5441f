package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyhq/comply/internal/cli"
	"github.com/complyhq/comply/pkg/report"
)

// execute runs the root command with args and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCheckJSONReport(t *testing.T) {
	out, err := execute(t, "check", "testdata", "--format", "json", "--no-history")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	assert.Equal(t, 1, rep.FilesProcessed)
	assert.False(t, rep.Incomplete)
	assert.Empty(t, rep.Failures)

	var ids []string
	for _, v := range rep.Violations {
		assert.Equal(t, "testdata/sample.py", v.Path)
		ids = append(ids, v.RuleID)
	}
	assert.Contains(t, ids, "doc.missing-docstring")
	assert.Contains(t, ids, "type.missing-annotation")
	assert.Contains(t, ids, "style.mutable-default-argument")
	assert.Contains(t, ids, "style.bare-exception-handler")
}

func TestCheckFailOnWarning(t *testing.T) {
	_, err := execute(t, "check", "testdata", "--format", "json", "--no-history", "--fail-on", "warning")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "severity warning")
}

func TestCheckDisableRule(t *testing.T) {
	out, err := execute(t, "check", "testdata", "--format", "json", "--no-history",
		"--disable", "doc.missing-docstring")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	for _, v := range rep.Violations {
		assert.NotEqual(t, "doc.missing-docstring", v.RuleID)
	}
}

func TestCheckRuleSubset(t *testing.T) {
	out, err := execute(t, "check", "testdata", "--format", "json", "--no-history",
		"--rule", "style.bare-exception-handler")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.NotEmpty(t, rep.Violations)
	for _, v := range rep.Violations {
		assert.Equal(t, "style.bare-exception-handler", v.RuleID)
	}
}

func TestCheckUnknownRuleFailsFast(t *testing.T) {
	_, err := execute(t, "check", "testdata", "--no-history", "--rule", "nope.not-a-rule")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.not-a-rule")
}

func TestCheckInvalidFailOn(t *testing.T) {
	_, err := execute(t, "check", "testdata", "--no-history", "--fail-on", "fatal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fatal")
}

func TestRulesJSONListing(t *testing.T) {
	out, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)

	var infos []struct {
		ID       string `json:"id"`
		Group    string `json:"group"`
		Severity string `json:"default_severity"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.NotEmpty(t, infos)

	byID := make(map[string]string)
	for _, info := range infos {
		byID[info.ID] = info.Severity
	}
	assert.Equal(t, "warning", byID["doc.missing-docstring"])
	assert.Equal(t, "info", byID["complexity.too-many-parameters"])
}

func TestRulesGroupFilter(t *testing.T) {
	out, err := execute(t, "rules", "--format", "json", "--group", "complexity")
	require.NoError(t, err)

	var infos []struct {
		Group string `json:"group"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.NotEmpty(t, infos)
	for _, info := range infos {
		assert.Equal(t, "complexity", info.Group)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, cli.Version)
}
