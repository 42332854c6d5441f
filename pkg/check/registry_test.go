package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyhq/comply/pkg/check"
	"github.com/complyhq/comply/pkg/core"
)

func noopRule(id string) check.RuleDef {
	return check.RuleDef{
		ID:        id,
		Group:     "test",
		Severity:  core.SeverityWarning,
		AppliesTo: []core.SymbolKind{core.KindFunction},
		Check: func(*core.Symbol, *core.SourceUnit, map[string]any) []core.Violation {
			return nil
		},
	}
}

func TestRegistryDuplicate(t *testing.T) {
	reg := check.NewRegistry()
	require.NoError(t, reg.Register(noopRule("test.one")))

	err := reg.Register(noopRule("test.one"))
	require.Error(t, err)

	var dup *check.DuplicateRuleError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "test.one", dup.ID)
	assert.Equal(t, 1, reg.Count())
}

func TestRegistryResolveUnknown(t *testing.T) {
	reg := check.NewRegistry()
	require.NoError(t, reg.Register(noopRule("test.one")))

	_, err := reg.Resolve([]string{"test.one", "test.missing"})
	require.Error(t, err)

	var unknown *check.UnknownRuleError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "test.missing", unknown.ID)
}

func TestRegistryResolveKeepsRegistrationOrder(t *testing.T) {
	reg := check.NewRegistry()
	for _, id := range []string{"test.c", "test.a", "test.b"} {
		require.NoError(t, reg.Register(noopRule(id)))
	}

	// Enabled ids arrive in arbitrary order; resolution order must not
	// depend on it.
	resolved, err := reg.Resolve([]string{"test.b", "test.c"})
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, "test.c", resolved[0].ID)
	assert.Equal(t, "test.b", resolved[1].ID)

	all, err := reg.Resolve(nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"test.c", "test.a", "test.b"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func TestRegistryGetByID(t *testing.T) {
	reg := check.NewRegistry()
	require.NoError(t, reg.Register(noopRule("test.one")))

	rule, ok := reg.GetByID("test.one")
	require.True(t, ok)
	assert.Equal(t, "test.one", rule.ID)

	_, ok = reg.GetByID("test.other")
	assert.False(t, ok)
}
