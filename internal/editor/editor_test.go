package editor

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/keymapedit/internal/keymap"
	"github.com/studiowebux/keymapedit/internal/session"
	"github.com/studiowebux/keymapedit/internal/types"
	"github.com/tidwall/gjson"
)

type fakeJournal struct {
	entries []types.ActivityEntry
	err     error
}

func (f *fakeJournal) Record(entry types.ActivityEntry) (types.ActivityEntry, error) {
	if f.err != nil {
		return entry, f.err
	}
	f.entries = append(f.entries, entry)
	return entry, nil
}

const sampleKeymap = `{
  "version": 3,
  "name": "方案一",
  "keymaps": [
    {"key": {"text": "Q"}, "type": "Click", "rel_work_position": {"rel_x": 0.5, "rel_y": 0.5}},
    {"key": {"text": "X"}, "type": "Click", "rel_work_position": {"rel_x": 0.9, "rel_y": 0.9}}
  ]
}`

type fixture struct {
	editor  *Editor
	journal *fakeJournal
	folder  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	folder := t.TempDir()
	store := session.NewStore(filepath.Join(t.TempDir(), "keymap.json"), nil)
	journal := &fakeJournal{}
	ed := New(session.New(), store, Options{Journal: journal})
	require.NoError(t, ed.SelectFolder(folder))
	journal.entries = nil
	return &fixture{editor: ed, journal: journal, folder: folder}
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.folder, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func requireKind(t *testing.T, err error, kind types.FailureKind) {
	t.Helper()
	require.Error(t, err)
	var f *types.Failure
	require.True(t, errors.As(err, &f), "want *types.Failure, got %T: %v", err, err)
	assert.Equal(t, kind, f.Kind, "failure: %v", err)
}

func TestSelectFolder(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "cfg", "keymap.json")
	store := session.NewStore(storePath, nil)
	ed := New(session.New(), store, Options{})

	requireKind(t, ed.SelectFolder(""), types.FailureCancelled)
	requireKind(t, ed.SelectFolder(filepath.Join(t.TempDir(), "missing")), types.FailureIO)

	file := filepath.Join(t.TempDir(), "a.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0644))
	requireKind(t, ed.SelectFolder(file), types.FailureIO)
	assert.Empty(t, ed.Session().Folder())

	folder := t.TempDir()
	require.NoError(t, ed.SelectFolder(folder))
	assert.Equal(t, folder, ed.Session().Folder())
	assert.Equal(t, folder, store.Load())
}

func TestFiles_NoFolder(t *testing.T) {
	ed := New(session.New(), session.NewStore(filepath.Join(t.TempDir(), "k.json"), nil), Options{})

	_, err := ed.Files()
	requireKind(t, err, types.FailureConfig)
	assert.ErrorIs(t, err, ErrNoFolder)

	_, err = ed.Apply("a.json")
	requireKind(t, err, types.FailureConfig)
}

func TestFiles_FolderVanished(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.RemoveAll(f.folder))

	_, err := f.editor.Files()
	requireKind(t, err, types.FailureIO)
}

func TestApply_DefaultSet(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "a.json", sampleKeymap)

	outcome, err := f.editor.Apply("a.json")
	require.NoError(t, err)

	assert.True(t, outcome.Written)
	assert.Equal(t, keymap.Stats{Retained: 1, Removed: 1, Appended: 11}, outcome.Stats)
	assert.Equal(t, []string{"X (Click)"}, outcome.Removed)
	assert.Len(t, outcome.Appended, 11)
	assert.Empty(t, outcome.Template)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	keymaps := gjson.GetBytes(data, "keymaps").Array()
	require.Len(t, keymaps, 12)
	assert.Equal(t, "Q", keymaps[0].Get("key.text").String())
	assert.Equal(t, "Shift", keymaps[1].Get("key.text").String())
	assert.Equal(t, "Alt", keymaps[11].Get("key.text").String())
	assert.Equal(t, int64(3), gjson.GetBytes(data, "version").Int())
	assert.Contains(t, string(data), `"name": "方案一"`)

	reparsed, err := keymap.ParseDocument(data)
	require.NoError(t, err)
	written, err := keymap.ParseDocument(outcome.Document().Encode())
	require.NoError(t, err)
	assert.Equal(t, written.Keymaps(), reparsed.Keymaps())

	require.Len(t, f.journal.entries, 1)
	rec := f.journal.entries[0]
	assert.Equal(t, types.OperationApply, rec.Operation)
	assert.Equal(t, f.folder, rec.Folder)
	assert.Equal(t, "a.json", rec.File)
	assert.Equal(t, 11, rec.Appended)
}

func TestApply_Twice(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.json", sampleKeymap)

	_, err := f.editor.Apply("a.json")
	require.NoError(t, err)

	// Most default controls sit inside the region, so a second run purges them
	outcome, err := f.editor.Apply("a.json")
	require.NoError(t, err)
	assert.Equal(t, 11, outcome.Stats.Appended)
	assert.Equal(t, 1+11, outcome.Stats.Retained+outcome.Stats.Removed)
}

func TestApply_Template(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.json", sampleKeymap)

	tmplPath := filepath.Join(t.TempDir(), "mine.json")
	require.NoError(t, os.WriteFile(tmplPath, []byte(`{"keymaps":[{"key":{"text":"Z"}},{"key":{"text":"Y"}}]}`), 0644))

	tmpl, err := f.editor.ImportTemplate(tmplPath)
	require.NoError(t, err)
	assert.Equal(t, "mine.json", tmpl.Name)

	outcome, err := f.editor.Apply("a.json")
	require.NoError(t, err)
	assert.Equal(t, "mine.json", outcome.Template)
	assert.Equal(t, []string{"Z", "Y"}, outcome.Appended)

	keymaps := outcome.Document().Keymaps()
	require.Len(t, keymaps, 3)
	assert.Equal(t, "Q", keymaps[0].KeyText())
	assert.Equal(t, "Z", keymaps[1].KeyText())
	assert.Equal(t, "Y", keymaps[2].KeyText())

	f.editor.ClearTemplate()
	outcome, err = f.editor.Preview("a.json")
	require.NoError(t, err)
	assert.Equal(t, 11, outcome.Stats.Appended)
}

func TestApply_EmptyTemplateUsesDefaults(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.json", sampleKeymap)

	tmplPath := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(tmplPath, []byte(`{"keymaps":[]}`), 0644))

	_, err := f.editor.ImportTemplate(tmplPath)
	require.NoError(t, err)

	outcome, err := f.editor.Preview("a.json")
	require.NoError(t, err)
	assert.Equal(t, 11, outcome.Stats.Appended)
	assert.Empty(t, outcome.Template)
}

func TestApply_InvalidDocument(t *testing.T) {
	f := newFixture(t)
	original := `{"keymaps": {"not": "a list"}}`
	path := f.write(t, "bad.json", original)

	_, err := f.editor.Apply("bad.json")
	requireKind(t, err, types.FailureValidation)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))

	require.Len(t, f.journal.entries, 1)
	assert.False(t, f.journal.entries[0].Succeeded())
}

func TestApply_Unlisted(t *testing.T) {
	f := newFixture(t)
	f.write(t, "com.nexon.bluearchive.json", sampleKeymap)

	_, err := f.editor.Apply("com.nexon.bluearchive.json")
	requireKind(t, err, types.FailureIO)
	assert.True(t, IsNotFound(err))

	_, err = f.editor.Apply("")
	requireKind(t, err, types.FailureCancelled)
}

func TestApply_ByDisplayName(t *testing.T) {
	f := newFixture(t)
	f.write(t, "com.nexon.bluearchive-pvp.json", sampleKeymap)

	outcome, err := f.editor.Apply("Global-pvp.json")
	require.NoError(t, err)
	assert.Equal(t, "com.nexon.bluearchive-pvp.json", outcome.File.Name)
}

func TestApply_KeepsFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	f := newFixture(t)
	path := f.write(t, "a.json", sampleKeymap)
	require.NoError(t, os.Chmod(path, 0600))

	_, err := f.editor.Apply("a.json")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestPreview_DoesNotWrite(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "a.json", sampleKeymap)

	outcome, err := f.editor.Preview("a.json")
	require.NoError(t, err)
	assert.False(t, outcome.Written)
	assert.Equal(t, 1, outcome.Stats.Removed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleKeymap, string(data))
	assert.Empty(t, f.journal.entries)
}

func TestImportTemplate_FailureKeepsPrevious(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"keymaps":[{"key":{"text":"G"}}]}`), 0644))
	_, err := f.editor.ImportTemplate(good)
	require.NoError(t, err)

	tests := []struct {
		name    string
		content string
		kind    types.FailureKind
	}{
		{name: "object keymaps", content: `{"keymaps": {}}`, kind: types.FailureValidation},
		{name: "no keymaps", content: `{}`, kind: types.FailureValidation},
		{name: "malformed", content: `{"keymaps": [`, kind: types.FailureValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := f.editor.ImportTemplate(path)
			requireKind(t, err, tt.kind)
			assert.Equal(t, "good.json", f.editor.Session().Template().Name)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := f.editor.ImportTemplate(filepath.Join(dir, "missing.json"))
		requireKind(t, err, types.FailureIO)
		assert.Equal(t, "good.json", f.editor.Session().Template().Name)
	})

	t.Run("cancelled", func(t *testing.T) {
		_, err := f.editor.ImportTemplate("")
		requireKind(t, err, types.FailureCancelled)
		assert.True(t, types.IsCancelled(err))
		assert.Equal(t, "good.json", f.editor.Session().Template().Name)
	})
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.json", sampleKeymap)
	f.write(t, "b.json", sampleKeymap)

	require.NoError(t, f.editor.Delete("a.json"))

	files, err := f.editor.Files()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "b.json", files[0].Name)

	err = f.editor.Delete("a.json")
	requireKind(t, err, types.FailureIO)

	require.NotEmpty(t, f.journal.entries)
	assert.Equal(t, types.OperationDelete, f.journal.entries[0].Operation)
	assert.Equal(t, "a.json", f.journal.entries[0].File)
}

func TestInspect(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.json", sampleKeymap)

	out, err := f.editor.Inspect("a.json", "")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "方案一"`)

	out, err = f.editor.Inspect("a.json", "keys")
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"Q\",\n  \"X\"\n]", out)

	_, err = f.editor.Inspect("a.json", "keymaps[")
	requireKind(t, err, types.FailureValidation)
}

func TestJournalFailureIsNotSurfaced(t *testing.T) {
	f := newFixture(t)
	f.journal.err = errors.New("disk full")
	f.write(t, "a.json", sampleKeymap)

	_, err := f.editor.Apply("a.json")
	assert.NoError(t, err)
}
