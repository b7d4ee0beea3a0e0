/*
Package keybinds maps keys to TUI actions per context.

# Key Concepts

Contexts:
  - Global: bindings available everywhere (ctrl+c)
  - Normal: the file list
  - Search, TextInput: the search prompt and the folder/template path inputs
  - Modal: scrollable modals (preview, activity log, manual, error details)
  - Confirm: the y/n delete prompt

A key bound in a specific context shadows the same key in Global.

# Configuration File Format

~/.keymapedit/keybinds.json maps keys to action names per section. For
each action a section mentions, the listed keys replace that action's
default keys in that context. The action "none" unbinds a key.

	{
	  "version": "1.0",
	  "normal": {
	    "x": "apply",
	    "enter": "preview",
	    "D": "delete_file",
	    "d": "none"
	  },
	  "confirm": {
	    "o": "confirm"
	  }
	}

Unknown actions and malformed keys make LoadOrDefault fail, so a typo is
reported instead of silently ignored. So does a file that leaves a mode
without its exit key (Registry.Validate) or binds keys that can never fire
(FindConflicts).

# Multi-Key Sequences

MatchMultiKey collects "g" as the first half of a sequence; "gg" goes to
the top. When the pair is not bound the second key is matched on its own.
CancelSequence drops a half-typed sequence when the view changes. Other
sequences are flagged by the validator because they can never match.

# Example Usage

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	if action, ok := registry.Match(keybinds.ContextNormal, msg.String()); ok {
		// Handle action
	}

The Registry is not synchronized. Build it before the program starts and
only read it from the Update loop afterwards.
*/
package keybinds
