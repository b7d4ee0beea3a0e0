package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/keymapedit/internal/types"
)

// Extension selects keymap files in a folder
const Extension = ".json"

// denylist holds the emulator's stock layouts, which are never offered for
// editing.
var denylist = map[string]struct{}{
	"com.nexon.bluearchive.json":                       {},
	"com.RoamingStar.BlueArchive.json":                 {},
	"com.RoamingStar.BlueArchive.bilibili.json":        {},
	"com.RoamingStar.BlueArchive-默认操作方案.json":          {},
	"com.nexon.bluearchive-默认操作模式.json":                {},
	"com.RoamingStar.BlueArchive.bilibili-默认操作方案.json": {},
}

// labels map package-name prefixes to short server names. Order matters:
// the bilibili package name starts with the official one.
var labels = []struct {
	prefix string
	label  string
}{
	{prefix: "com.nexon.bluearchive", label: "Global"},
	{prefix: "com.RoamingStar.BlueArchive.bilibili", label: "Bilibili"},
	{prefix: "com.RoamingStar.BlueArchive", label: "Official"},
}

// ErrNotFound is returned when a file is not in the listing
var ErrNotFound = errors.New("file not found")

// IsDenied reports whether name is a stock layout hidden from the listing
func IsDenied(name string) bool {
	_, ok := denylist[name]
	return ok
}

// DisplayName returns the label shown for a file name. Only the first
// matching prefix rule applies, and it replaces every occurrence of that
// prefix. Names with no known prefix are returned unchanged.
func DisplayName(name string) string {
	for _, l := range labels {
		if strings.HasPrefix(name, l.prefix) {
			return strings.ReplaceAll(name, l.prefix, l.label)
		}
	}
	return name
}

// List returns the editable keymap files directly inside dir, sorted by
// name. Subdirectories and denylisted names are skipped.
func List(dir string) ([]types.FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	files := []types.FileInfo{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Extension) || IsDenied(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		files = append(files, types.FileInfo{
			Path:         filepath.Join(dir, name),
			Name:         name,
			DisplayName:  DisplayName(name),
			Size:         info.Size(),
			ModifiedTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// Resolve finds a listed file by its file name or its display name. File
// names win over display names.
func Resolve(files []types.FileInfo, nameOrLabel string) (types.FileInfo, error) {
	for _, f := range files {
		if f.Name == nameOrLabel {
			return f, nil
		}
	}
	for _, f := range files {
		if f.DisplayName == nameOrLabel {
			return f, nil
		}
	}
	return types.FileInfo{}, fmt.Errorf("%w: %s", ErrNotFound, nameOrLabel)
}

// displayNames adapts a listing to fuzzy.Source
type displayNames []types.FileInfo

func (d displayNames) String(i int) string { return d[i].DisplayName }
func (d displayNames) Len() int            { return len(d) }

// Search returns the indices of files whose display name fuzzy-matches
// query, best match first. An empty query matches nothing.
func Search(files []types.FileInfo, query string) []int {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, displayNames(files))
	indices := make([]int, len(matches))
	for i, m := range matches {
		indices[i] = m.Index
	}
	return indices
}

// Delete removes name from dir. There is no undo.
func Delete(dir, name string) error {
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("invalid file name %q", name)
	}
	if err := os.Remove(filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
