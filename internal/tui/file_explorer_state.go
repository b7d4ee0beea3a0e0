package tui

import (
	"sync"

	"github.com/studiowebux/keymapedit/internal/catalog"
	"github.com/studiowebux/keymapedit/internal/types"
)

// FileExplorerState manages file navigation and search with thread safety
type FileExplorerState struct {
	mu sync.RWMutex

	files []types.FileInfo

	// Navigation
	fileIndex  int // Current selected file index
	fileOffset int // Scroll offset for file list

	// Search
	searchQuery   string // Current search query
	searchMatches []int  // Indices of matching files, best match first
	searchIndex   int    // Current position in search results
}

// NewFileExplorerState creates a new file explorer state
func NewFileExplorerState() *FileExplorerState {
	return &FileExplorerState{
		files:         []types.FileInfo{},
		searchMatches: []int{},
	}
}

// GetFiles returns a copy of the current file list
func (f *FileExplorerState) GetFiles() []types.FileInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()
	files := make([]types.FileInfo, len(f.files))
	copy(files, f.files)
	return files
}

// Len returns the number of listed files
func (f *FileExplorerState) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.files)
}

// SetFiles replaces the file list, keeping the selection on the same file
// name when it is still listed
func (f *FileExplorerState) SetFiles(files []types.FileInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var selected string
	if f.fileIndex >= 0 && f.fileIndex < len(f.files) {
		selected = f.files[f.fileIndex].Name
	}

	if files == nil {
		files = []types.FileInfo{}
	}
	f.files = files
	f.searchMatches = nil
	f.searchIndex = 0

	for i, file := range files {
		if file.Name == selected {
			f.fileIndex = i
			return
		}
	}

	// The selected file is gone: keep the position, clamped
	if f.fileIndex >= len(f.files) {
		f.fileIndex = len(f.files) - 1
	}
	if f.fileIndex < 0 {
		f.fileIndex = 0
	}
	if f.fileOffset > f.fileIndex {
		f.fileOffset = f.fileIndex
	}
}

// GetCurrentIndex returns the current file index
func (f *FileExplorerState) GetCurrentIndex() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fileIndex
}

// GetCurrentFile returns the currently selected file (or nil if none)
func (f *FileExplorerState) GetCurrentFile() *types.FileInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.files) == 0 || f.fileIndex < 0 || f.fileIndex >= len(f.files) {
		return nil
	}

	file := f.files[f.fileIndex]
	return &file
}

// Navigate moves the selection by delta positions (supports wrapping)
func (f *FileExplorerState) Navigate(delta int, pageSize int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.files) == 0 {
		return
	}

	f.fileIndex += delta

	// Wrap around (circular navigation)
	if f.fileIndex < 0 {
		f.fileIndex = len(f.files) - 1
	} else if f.fileIndex >= len(f.files) {
		f.fileIndex = 0
	}

	f.adjustScrollOffsetLocked(pageSize)
}

// GoTo selects index, clamped to the list
func (f *FileExplorerState) GoTo(index int, pageSize int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.files) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(f.files) {
		index = len(f.files) - 1
	}
	f.fileIndex = index
	f.adjustScrollOffsetLocked(pageSize)
}

// adjustScrollOffsetLocked adjusts scroll offset (must be called with lock held)
func (f *FileExplorerState) adjustScrollOffsetLocked(pageSize int) {
	if pageSize < 1 {
		pageSize = 1
	}
	if f.fileIndex < f.fileOffset {
		f.fileOffset = f.fileIndex
	} else if f.fileIndex >= f.fileOffset+pageSize {
		f.fileOffset = f.fileIndex - pageSize + 1
	}
}

// AdjustScrollOffset adjusts the scroll offset based on current index and page size
func (f *FileExplorerState) AdjustScrollOffset(pageSize int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adjustScrollOffsetLocked(pageSize)
}

// GetScrollOffset returns the current scroll offset
func (f *FileExplorerState) GetScrollOffset() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fileOffset
}

// Search fuzzy-matches query against the display names and jumps to the
// best match
func (f *FileExplorerState) Search(query string, pageSize int) (matchCount int, errorMsg string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searchQuery = query
	f.searchMatches = nil
	f.searchIndex = 0

	if query == "" {
		return 0, ""
	}

	f.searchMatches = catalog.Search(f.files, query)
	if len(f.searchMatches) == 0 {
		return 0, "No matching files found"
	}

	f.fileIndex = f.searchMatches[0]
	f.adjustScrollOffsetLocked(pageSize)

	return len(f.searchMatches), ""
}

// NextSearchMatch navigates to the next search match
func (f *FileExplorerState) NextSearchMatch(pageSize int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.searchMatches) == 0 {
		return false
	}

	f.searchIndex = (f.searchIndex + 1) % len(f.searchMatches)
	f.fileIndex = f.searchMatches[f.searchIndex]
	f.adjustScrollOffsetLocked(pageSize)

	return true
}

// PrevSearchMatch navigates to the previous search match
func (f *FileExplorerState) PrevSearchMatch(pageSize int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.searchMatches) == 0 {
		return false
	}

	f.searchIndex--
	if f.searchIndex < 0 {
		f.searchIndex = len(f.searchMatches) - 1
	}
	f.fileIndex = f.searchMatches[f.searchIndex]
	f.adjustScrollOffsetLocked(pageSize)

	return true
}

// IsSearchMatch reports whether index is one of the search results
func (f *FileExplorerState) IsSearchMatch(index int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, match := range f.searchMatches {
		if match == index {
			return true
		}
	}
	return false
}

// GetSearchInfo returns current search state
func (f *FileExplorerState) GetSearchInfo() (query string, currentMatch, totalMatches int) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.searchQuery, f.searchIndex + 1, len(f.searchMatches)
}

// ClearSearch clears the current search
func (f *FileExplorerState) ClearSearch() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchQuery = ""
	f.searchMatches = nil
	f.searchIndex = 0
}
