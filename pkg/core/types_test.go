package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyhq/comply/pkg/core"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input string
		want  core.Severity
		ok    bool
	}{
		{"error", core.SeverityError, true},
		{"WARNING", core.SeverityWarning, true},
		{" info ", core.SeverityInfo, true},
		{"hint", core.SeverityHint, true},
		{"bogus", core.SeverityWarning, false},
		{"", core.SeverityWarning, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := core.ParseSeverity(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSeverityOrdering(t *testing.T) {
	assert.True(t, core.SeverityError.AtLeast(core.SeverityWarning))
	assert.True(t, core.SeverityWarning.AtLeast(core.SeverityWarning))
	assert.False(t, core.SeverityInfo.AtLeast(core.SeverityWarning))
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(core.SeverityWarning)
	require.NoError(t, err)
	assert.Equal(t, `"warning"`, string(data))

	var sev core.Severity
	require.NoError(t, json.Unmarshal([]byte(`"error"`), &sev))
	assert.Equal(t, core.SeverityError, sev)

	assert.Error(t, json.Unmarshal([]byte(`"loud"`), &sev))
}

func TestQualifiedName(t *testing.T) {
	unit := &core.SourceUnit{
		Symbols: []core.Symbol{
			{Kind: core.KindClass, Name: "Widget", Parent: core.NoParent},
			{Kind: core.KindFunction, Name: "render", Parent: 0},
			{Kind: core.KindFunction, Name: "helper", Parent: 1},
		},
	}
	assert.Equal(t, "Widget", unit.QualifiedName(0))
	assert.Equal(t, "Widget.render", unit.QualifiedName(1))
	assert.Equal(t, "Widget.render.helper", unit.QualifiedName(2))
	assert.Equal(t, "", unit.QualifiedName(5))
}

func TestViolationKey(t *testing.T) {
	a := core.Violation{RuleID: "doc.missing-docstring", Path: "a.py", Line: 3, Message: "one"}
	b := core.Violation{RuleID: "doc.missing-docstring", Path: "a.py", Line: 3, Message: "two"}
	c := core.Violation{RuleID: "doc.missing-docstring", Path: "a.py", Line: 4}

	assert.Equal(t, a.Key(), b.Key(), "equality ignores message")
	assert.NotEqual(t, a.Key(), c.Key())
}
