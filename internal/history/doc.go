// Package history records what the user did to which file: applies,
// deletions, template imports and folder changes. It stores counts and
// names only, never file content, so it cannot restore an edit.
package history
