package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/keymapedit/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestRecord_FillsIDAndTimestamp(t *testing.T) {
	m := newTestManager(t)
	fixed := time.Date(2026, 3, 1, 12, 30, 45, 123000000, time.Local)
	m.now = func() time.Time { return fixed }

	saved, err := m.Record(types.ActivityEntry{
		Operation: types.OperationApply,
		Folder:    "/keymaps",
		File:      "a.json",
		Retained:  3,
		Removed:   1,
		Appended:  11,
	})
	require.NoError(t, err)
	assert.Len(t, saved.ID, 36)
	assert.True(t, fixed.Equal(saved.Timestamp))

	entries, err := m.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, saved.ID, got.ID)
	assert.True(t, fixed.Equal(got.Timestamp), "got %v", got.Timestamp)
	assert.Equal(t, types.OperationApply, got.Operation)
	assert.Equal(t, "a.json", got.File)
	assert.Equal(t, 3, got.Retained)
	assert.Equal(t, 1, got.Removed)
	assert.Equal(t, 11, got.Appended)
	assert.True(t, got.Succeeded())
}

func TestRecent_NewestFirstAndLimit(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	for i, file := range []string{"a.json", "b.json", "c.json"} {
		_, err := m.Record(types.ActivityEntry{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Operation: types.OperationDelete,
			File:      file,
		})
		require.NoError(t, err)
	}

	entries, err := m.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c.json", entries[0].File)
	assert.Equal(t, "b.json", entries[1].File)

	all, err := m.Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecent_SameTimestampUsesInsertOrder(t *testing.T) {
	m := newTestManager(t)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	m.now = func() time.Time { return fixed }

	for _, file := range []string{"first.json", "second.json"} {
		_, err := m.Record(types.ActivityEntry{Operation: types.OperationApply, File: file})
		require.NoError(t, err)
	}

	entries, err := m.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second.json", entries[0].File)
}

func TestRecord_Failure(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Record(types.ActivityEntry{
		Operation: types.OperationImportTemplate,
		Template:  "bad.json",
		Error:     "template is not valid JSON",
	})
	require.NoError(t, err)

	entries, err := m.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Succeeded())
	assert.Equal(t, "template is not valid JSON", entries[0].Error)
}

func TestClear(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Record(types.ActivityEntry{Operation: types.OperationSelectFolder, Folder: "/x"})
	require.NoError(t, err)

	count, err := m.GetCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, m.Clear())

	entries, err := m.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewManager_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	m, err := NewManager(path)
	require.NoError(t, err)
	_, err = m.Record(types.ActivityEntry{Operation: types.OperationApply, File: "a.json"})
	require.NoError(t, err)
	require.NoError(t, m.Close())

	reopened, err := NewManager(path)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.GetCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
