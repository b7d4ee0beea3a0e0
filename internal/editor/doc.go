/*
Package editor implements the user actions of keymapedit on top of the
keymap, catalog and session packages.

Every action returns either its result or a *types.Failure tagged with
one of the failure kinds. Front-ends (the cobra commands and the TUI)
call the same methods and only differ in how they present results and
ask for confirmation.

	ed := editor.New(sess, store, editor.Options{Journal: journal, Logger: logger})
	if err := ed.SelectFolder(dir); err != nil { ... }
	outcome, err := ed.Apply("com.nexon.bluearchive-custom.json")

When a journal is configured, folder changes, applies, deletions and
template imports are recorded. A journal error is logged and never turns
a successful action into a failure.
*/
package editor
