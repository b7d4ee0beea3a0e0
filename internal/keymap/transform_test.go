package keymap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(t *testing.T, x, y float64) Entry {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"rel_work_position": map[string]float64{"rel_x": x, "rel_y": y},
	})
	require.NoError(t, err)
	return Entry(raw)
}

func TestFilterExcluded(t *testing.T) {
	tests := []struct {
		name     string
		entry    Entry
		excluded bool
	}{
		{name: "inside region", entry: Entry(`{"rel_work_position":{"rel_x":0.8,"rel_y":0.9}}`), excluded: true},
		{name: "top left", entry: Entry(`{"rel_work_position":{"rel_x":0.1,"rel_y":0.1}}`)},
		{name: "x on boundary", entry: Entry(`{"rel_work_position":{"rel_x":0.67,"rel_y":0.95}}`)},
		{name: "y on boundary", entry: Entry(`{"rel_work_position":{"rel_x":0.95,"rel_y":0.79}}`)},
		{name: "just past both boundaries", entry: Entry(`{"rel_work_position":{"rel_x":0.6700001,"rel_y":0.7900001}}`), excluded: true},
		{name: "only x inside", entry: Entry(`{"rel_work_position":{"rel_x":0.9,"rel_y":0.5}}`)},
		{name: "only y inside", entry: Entry(`{"rel_work_position":{"rel_x":0.5,"rel_y":0.9}}`)},
		{name: "bottom right corner", entry: Entry(`{"rel_work_position":{"rel_x":1,"rel_y":1}}`), excluded: true},
		{name: "no work position", entry: Entry(`{"icon":{"rel_position":{"rel_x":0.9,"rel_y":0.9}}}`)},
		{name: "missing rel_x", entry: Entry(`{"rel_work_position":{"rel_y":0.9}}`)},
		{name: "missing rel_y", entry: Entry(`{"rel_work_position":{"rel_x":0.9}}`)},
		{name: "work position null", entry: Entry(`{"rel_work_position":null}`)},
		{name: "string coordinates", entry: Entry(`{"rel_work_position":{"rel_x":"0.9","rel_y":"0.9"}}`)},
		{name: "entry is not an object", entry: Entry(`42`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterExcluded([]Entry{tt.entry})
			if tt.excluded {
				assert.Empty(t, got)
			} else {
				require.Len(t, got, 1)
				assert.Equal(t, tt.entry, got[0])
			}
		})
	}
}

func TestFilterExcluded_PreservesOrder(t *testing.T) {
	entries := []Entry{
		entryAt(t, 0.1, 0.1),
		entryAt(t, 0.9, 0.9),
		entryAt(t, 0.2, 0.95),
		entryAt(t, 0.8, 0.8),
		entryAt(t, 0.95, 0.3),
	}

	got := FilterExcluded(entries)

	require.Len(t, got, 3)
	assert.Equal(t, entries[0], got[0])
	assert.Equal(t, entries[2], got[1])
	assert.Equal(t, entries[4], got[2])
}

func TestFilterExcluded_Empty(t *testing.T) {
	assert.Empty(t, FilterExcluded(nil))
	assert.NotNil(t, FilterExcluded(nil))
}

func TestBuildReplacement(t *testing.T) {
	t.Run("no template uses defaults", func(t *testing.T) {
		got := BuildReplacement(nil)
		assert.Equal(t, DefaultSet(), got)
	})

	t.Run("template entries verbatim", func(t *testing.T) {
		a := Entry(`{"key":{"text":"A"}}`)
		b := Entry(`{"key":{"text":"B"},"rel_work_position":{"rel_x":0.9,"rel_y":0.9}}`)
		tmpl := &Template{Name: "mine.json", Entries: []Entry{a, b}}

		got := BuildReplacement(tmpl)

		require.Len(t, got, 2)
		assert.Equal(t, a, got[0])
		assert.Equal(t, b, got[1])
	})

	t.Run("empty template falls back to defaults", func(t *testing.T) {
		tmpl := &Template{Name: "empty.json", Entries: []Entry{}}
		assert.Len(t, BuildReplacement(tmpl), 11)
	})
}

func TestApplyTransform_DefaultScenario(t *testing.T) {
	doc, err := ParseDocument([]byte(`{
		"version": 3,
		"keymaps": [
			{"rel_work_position": {"rel_x": 0.8, "rel_y": 0.9}},
			{"rel_work_position": {"rel_x": 0.1, "rel_y": 0.1}}
		]
	}`))
	require.NoError(t, err)

	out, stats, err := ApplyTransform(doc, BuildReplacement(nil))
	require.NoError(t, err)

	assert.Equal(t, Stats{Retained: 1, Removed: 1, Appended: 11}, stats)

	keymaps := out.Keymaps()
	require.Len(t, keymaps, 12)
	x, y := keymaps[0].WorkPosition()
	assert.Equal(t, 0.1, x)
	assert.Equal(t, 0.1, y)
	for i, entry := range DefaultSet() {
		assert.JSONEq(t, string(entry), string(keymaps[i+1]))
	}
}

func TestApplyTransform_CustomTemplate(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"keymaps":[{"key":{"text":"Z"}}]}`))
	require.NoError(t, err)

	tmpl := &Template{Entries: []Entry{Entry(`{"key":{"text":"A"}}`), Entry(`{"key":{"text":"B"}}`)}}
	out, stats, err := ApplyTransform(doc, BuildReplacement(tmpl))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Appended)
	var texts []string
	for _, entry := range out.Keymaps() {
		texts = append(texts, entry.KeyText())
	}
	assert.Equal(t, []string{"Z", "A", "B"}, texts)
}

func TestApplyTransform_DuplicatesAllowed(t *testing.T) {
	same := Entry(`{"key":{"text":"Q"},"rel_work_position":{"rel_x":0.1,"rel_y":0.1}}`)
	doc, err := ParseDocument([]byte(`{"keymaps":[` + string(same) + `]}`))
	require.NoError(t, err)

	out, _, err := ApplyTransform(doc, []Entry{same})
	require.NoError(t, err)

	assert.Len(t, out.Keymaps(), 2)
}

func TestApplyTransform_OtherFieldsUntouched(t *testing.T) {
	input := []byte(`{
  "name":   "方案一",
  "resolution": {"w": 1920, "h": 1080},
  "keymaps": [{"rel_work_position":{"rel_x":0.9,"rel_y":0.9}}],
  "flags": [true, false, null],
  "ratio": 1.50
}`)
	doc, err := ParseDocument(input)
	require.NoError(t, err)

	out, _, err := ApplyTransform(doc, []Entry{Entry(`{"key":{"text":"A"}}`)})
	require.NoError(t, err)

	assert.Equal(t, doc.FieldNames(), out.FieldNames())
	for _, name := range doc.FieldNames() {
		if name == KeymapsField {
			continue
		}
		before, ok := doc.Field(name)
		require.True(t, ok)
		after, ok := out.Field(name)
		require.True(t, ok)
		assert.Equal(t, string(before), string(after), "field %q changed", name)
	}
}

func TestApplyTransform_AddsMissingKeymaps(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"name":"x"}`))
	require.NoError(t, err)

	out, stats, err := ApplyTransform(doc, []Entry{Entry(`{"key":{"text":"A"}}`)})
	require.NoError(t, err)

	assert.Equal(t, Stats{Retained: 0, Removed: 0, Appended: 1}, stats)
	raw, ok := out.Field(KeymapsField)
	require.True(t, ok)
	assert.JSONEq(t, `[{"key":{"text":"A"}}]`, string(raw))
}

func TestApplyTransform_DoesNotMutateInput(t *testing.T) {
	input := `{"keymaps":[{"rel_work_position":{"rel_x":0.9,"rel_y":0.9}}]}`
	doc, err := ParseDocument([]byte(input))
	require.NoError(t, err)

	_, _, err = ApplyTransform(doc, nil)
	require.NoError(t, err)

	assert.Equal(t, input, string(doc.Raw()))
	assert.Len(t, doc.Keymaps(), 1)
}

func TestApplyTransform_RejectsInvalidReplacement(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"keymaps":[]}`))
	require.NoError(t, err)

	_, _, err = ApplyTransform(doc, []Entry{Entry(`{broken`)})
	assert.Error(t, err)
}

func TestRegion_Contains(t *testing.T) {
	assert.True(t, ExclusionRegion.Contains(0.68, 0.8))
	assert.False(t, ExclusionRegion.Contains(0.67, 0.8))
	assert.False(t, ExclusionRegion.Contains(0.68, 0.79))
	assert.False(t, ExclusionRegion.Contains(0, 0))
}
