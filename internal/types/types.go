package types

import "time"

// FileInfo represents a keymap file in the catalog
type FileInfo struct {
	Path         string    `json:"path" yaml:"path"`
	Name         string    `json:"name" yaml:"name"`               // Real filename, the value operations act on
	DisplayName  string    `json:"displayName" yaml:"displayName"` // Label shown to the user
	Size         int64     `json:"size" yaml:"size"`
	ModifiedTime time.Time `json:"modifiedTime" yaml:"modifiedTime"`
}

// Operation names recorded in the activity journal
const (
	OperationApply          = "apply"
	OperationDelete         = "delete"
	OperationImportTemplate = "import_template"
	OperationSelectFolder   = "select_folder"
)

// ActivityEntry is one row of the activity journal
type ActivityEntry struct {
	ID        string    `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Operation string    `json:"operation" yaml:"operation"`
	Folder    string    `json:"folder,omitempty" yaml:"folder,omitempty"`
	File      string    `json:"file,omitempty" yaml:"file,omitempty"`
	Template  string    `json:"template,omitempty" yaml:"template,omitempty"` // Empty when the default set was used
	Retained  int       `json:"retained" yaml:"retained"`
	Removed   int       `json:"removed" yaml:"removed"`
	Appended  int       `json:"appended" yaml:"appended"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Succeeded reports whether the recorded operation completed
func (e ActivityEntry) Succeeded() bool {
	return e.Error == ""
}
