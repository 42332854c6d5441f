package state_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyhq/comply/internal/state"
	"github.com/complyhq/comply/pkg/report"
)

func openStore(t *testing.T) *state.Store {
	t.Helper()
	store, err := state.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := openStore(t)

	rep := &report.Report{
		FilesProcessed: 12,
		Summary:        report.Summary{Errors: 1, Warnings: 3, Infos: 2, Total: 6},
	}
	id, err := store.RecordRun(rep)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	incomplete := &report.Report{FilesProcessed: 2, Incomplete: true}
	_, err = store.RecordRun(incomplete)
	require.NoError(t, err)

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.True(t, runs[0].Incomplete)
	assert.Equal(t, 2, runs[0].Files)

	assert.Equal(t, id, runs[1].ID)
	assert.Equal(t, 12, runs[1].Files)
	assert.Equal(t, 6, runs[1].Violations)
	assert.Equal(t, 1, runs[1].Errors)
	assert.Equal(t, 3, runs[1].Warnings)
	assert.False(t, runs[1].Incomplete)
	assert.False(t, runs[1].CreatedAt.IsZero())
}

func TestListRunsLimit(t *testing.T) {
	store := openStore(t)
	for i := 0; i < 5; i++ {
		_, err := store.RecordRun(&report.Report{FilesProcessed: i})
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".comply", "history.db")
	store, err := state.Open(path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.ListRuns(1)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
