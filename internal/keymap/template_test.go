package keymap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/keymapedit/internal/types"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{name: "empty list is valid", input: `{"keymaps": []}`, wantCount: 0},
		{name: "any element shape", input: `{"keymaps": [1, "two", {"three": 3}, null]}`, wantCount: 4},
		{name: "keymaps object", input: `{"keymaps": {}}`, wantErr: true},
		{name: "empty object", input: `{}`, wantErr: true},
		{name: "top level list", input: `[]`, wantErr: true},
		{name: "malformed", input: `{"keymaps": [}`, wantErr: true},
		{name: "keymaps twice", input: `{"keymaps": [1], "keymaps": [2, 3]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseTemplate([]byte(tt.input))
			if tt.wantErr {
				var verr *types.ValidationError
				require.Error(t, err)
				assert.True(t, errors.As(err, &verr))
				return
			}
			require.NoError(t, err)
			assert.Len(t, entries, tt.wantCount)
		})
	}
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()

	t.Run("json file", func(t *testing.T) {
		path := filepath.Join(dir, "layout.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"keymaps":[{"key":{"text":"A"}},{"key":{"text":"B"}}]}`), 0644))

		tmpl, err := LoadTemplate(path)
		require.NoError(t, err)
		assert.Equal(t, "layout.json", tmpl.Name)
		assert.Equal(t, path, tmpl.Path)
		require.Len(t, tmpl.Entries, 2)
		assert.Equal(t, "A", tmpl.Entries[0].KeyText())
		assert.Equal(t, "B", tmpl.Entries[1].KeyText())
	})

	t.Run("jsonc file with comments", func(t *testing.T) {
		path := filepath.Join(dir, "layout.jsonc")
		content := `{
  // skill row
  "keymaps": [
    {"key": {"text": "Q"}}, // first
  ],
}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		tmpl, err := LoadTemplate(path)
		require.NoError(t, err)
		require.Len(t, tmpl.Entries, 1)
		assert.Equal(t, "Q", tmpl.Entries[0].KeyText())
	})

	t.Run("comments rejected in json file", func(t *testing.T) {
		path := filepath.Join(dir, "commented.json")
		require.NoError(t, os.WriteFile(path, []byte("{\n// c\n\"keymaps\": []}"), 0644))

		_, err := LoadTemplate(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTemplate(filepath.Join(dir, "nope.json"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}
