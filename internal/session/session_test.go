package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/keymapedit/internal/keymap"
)

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "keymap.json"), nil)
	assert.Equal(t, "", store.Load())
}

func TestStore_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed", content: `{"folder_path": `},
		{name: "wrong type", content: `{"folder_path": 12}`},
		{name: "not an object", content: `["a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "keymap.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			assert.Equal(t, "", NewStore(path, nil).Load())
		})
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "keymap.json")
	store := NewStore(path, nil)

	folder := filepath.Join(t.TempDir(), "蓝档案 keymaps")
	require.NoError(t, store.Save(folder))
	assert.Equal(t, folder, store.Load())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "蓝档案")
	assert.Contains(t, string(data), "\n  \"folder_path\": ")
}

func TestRestore(t *testing.T) {
	t.Run("existing folder", func(t *testing.T) {
		folder := t.TempDir()
		store := NewStore(filepath.Join(t.TempDir(), "keymap.json"), nil)
		require.NoError(t, store.Save(folder))

		s := Restore(store)
		assert.Equal(t, folder, s.Folder())
		assert.Nil(t, s.Template())
	})

	t.Run("vanished folder is unset", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "keymap.json"), nil)
		require.NoError(t, store.Save(filepath.Join(t.TempDir(), "gone")))

		assert.Equal(t, "", Restore(store).Folder())
	})

	t.Run("file instead of folder is unset", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "a.json")
		require.NoError(t, os.WriteFile(file, []byte("{}"), 0644))
		store := NewStore(filepath.Join(t.TempDir(), "keymap.json"), nil)
		require.NoError(t, store.Save(file))

		assert.Equal(t, "", Restore(store).Folder())
	})
}

func TestSession_Template(t *testing.T) {
	s := New()
	assert.Equal(t, "built-in defaults", s.TemplateName())

	tmpl := &keymap.Template{Name: "mine.json", Entries: []keymap.Entry{keymap.Entry(`{}`)}}
	s.SetTemplate(tmpl)
	assert.Same(t, tmpl, s.Template())
	assert.Equal(t, "mine.json", s.TemplateName())

	s.ClearTemplate()
	assert.Nil(t, s.Template())
}

func TestSession_Folder(t *testing.T) {
	s := New()
	assert.Empty(t, s.Folder())
	s.SetFolder("/tmp/x")
	assert.Equal(t, "/tmp/x", s.Folder())
}
