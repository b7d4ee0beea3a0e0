package cli

// ManualText is the usage manual shown by the manual command and the TUI help
const ManualText = `Keymap macro insertion tool

Main feature
- Insert macro controls and save: for the selected keymap file, removes the
  skill-card controls in the bottom-right corner of the screen and appends a
  set of macro controls, turning a plain keymap into one with macros.
  Default layout:
    R       one-tap restart
    Space   pause
    Ctrl    auto-fire
    Q W E   click points
    A S D   macros
    Shift   speed toggle
    Alt     auto mode
  A custom template can be imported instead: pick any keymap file holding
  only the controls you want appended. Without a template the layout above
  is used.

Other features
- Delete file: removes the selected keymap file. This cannot be undone.
- Select folder: choose the folder that holds the keymap JSON files.
- Copy folder path: copies the selected folder path to the clipboard.
- Activity log: shows the files edited, deleted and the templates imported.
`
