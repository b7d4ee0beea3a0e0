package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal    Context = "global"     // Available everywhere
	ContextNormal    Context = "normal"     // File list
	ContextSearch    Context = "search"     // Search input mode
	ContextModal     Context = "modal"      // Scrollable modals: preview, log, manual, errors
	ContextTextInput Context = "text_input" // Folder and template path inputs
	ContextConfirm   Context = "confirm"    // Delete confirmation
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Navigation actions
	ActionNavigateUp     Action = "navigate_up"       // Move up one item
	ActionNavigateDown   Action = "navigate_down"     // Move down one item
	ActionPageUp         Action = "page_up"           // Move up one page
	ActionPageDown       Action = "page_down"         // Move down one page
	ActionGoToTop        Action = "go_to_top"         // Go to top
	ActionGoToBottom     Action = "go_to_bottom"      // Go to bottom
	ActionGoToTopPrepare Action = "go_to_top_prepare" // First 'g' in 'gg' sequence

	// Text input actions
	ActionTextSubmit Action = "text_submit" // Submit text input
	ActionTextCancel Action = "text_cancel" // Cancel text input
	ActionTextPaste  Action = "text_paste"  // Paste from clipboard

	// Modal actions
	ActionCloseModal Action = "close_modal" // Close current modal
	ActionConfirm    Action = "confirm"     // Confirm action (y/Y)
	ActionCancel     Action = "cancel"      // Cancel action (n/N)

	// File operations (Normal mode)
	ActionApply          Action = "apply"           // Transform the selected file in place
	ActionPreview        Action = "preview"         // Dry run on the selected file
	ActionDeleteFile     Action = "delete_file"     // Delete the selected file after confirmation
	ActionRefreshFiles   Action = "refresh_files"   // Re-read the folder
	ActionSelectFolder   Action = "select_folder"   // Enter a new keymap folder
	ActionImportTemplate Action = "import_template" // Load a template file
	ActionClearTemplate  Action = "clear_template"  // Revert to the built-in default set
	ActionCopyPath       Action = "copy_path"       // Copy the folder path to the clipboard

	// Search
	ActionOpenSearch Action = "open_search" // Start fuzzy search
	ActionSearchNext Action = "search_next" // Next match
	ActionSearchPrev Action = "search_prev" // Previous match

	// Modal launchers
	ActionOpenLog  Action = "open_log"  // Activity journal
	ActionOpenHelp Action = "open_help" // Manual and key help
)

// AllActions lists every action a config file may bind
var AllActions = []Action{
	ActionQuit, ActionQuitForce,
	ActionNavigateUp, ActionNavigateDown, ActionPageUp, ActionPageDown,
	ActionGoToTop, ActionGoToBottom, ActionGoToTopPrepare,
	ActionTextSubmit, ActionTextCancel, ActionTextPaste,
	ActionCloseModal, ActionConfirm, ActionCancel,
	ActionApply, ActionPreview, ActionDeleteFile, ActionRefreshFiles,
	ActionSelectFolder, ActionImportTemplate, ActionClearTemplate, ActionCopyPath,
	ActionOpenSearch, ActionSearchNext, ActionSearchPrev,
	ActionOpenLog, ActionOpenHelp,
}

// IsKnownAction reports whether a is one of AllActions
func IsKnownAction(a Action) bool {
	for _, known := range AllActions {
		if known == a {
			return true
		}
	}
	return false
}
