/*
Package tui implements the terminal user interface for keymapedit.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains all application state
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Core state, message types and the Update loop
  - keys.go: Keyboard input handling and keybind routing
  - render.go: The main view (file sidebar, details panel, status bar)
  - modals.go: Confirmation, input, preview, activity and help modals
  - actions.go: Editor calls wrapped as tea.Cmd functions
  - watcher.go: fsnotify watcher on the selected folder

# Single writer

The session (selected folder and active template) is only changed from
Update. Selecting a folder, importing a template and listing the folder run
synchronously in Update. Apply, preview and delete run as tea.Cmd functions
that return result messages; while one is in flight the model is busy and
refuses further file actions and session changes.

The folder watcher goroutine never touches the model. It only posts a
folderChangedMsg, which Update answers by re-listing the folder.

# Keybind System

Keybinds are managed through the keybinds.Registry:
  - Context-aware bindings (global, normal, search, modal, text input, confirm)
  - User-customizable via keybinds.json
  - Reserved keys protection
*/
package tui
