/*
Package types defines data structures shared across keymapedit.

# Overview

The types package provides shared type definitions for:
  - Keymap files listed in the catalog (FileInfo)
  - Activity journal rows (ActivityEntry)
  - The failure taxonomy returned by user actions (Failure)

# Failures

Every user action returns either a result or a *Failure tagged with one kind:

	FailureConfig      persisted folder missing or unusable
	FailureValidation  document or template has the wrong shape
	FailureIO          read, write, delete or listing error
	FailureCancelled   nothing was selected; a no-op, not an error

Presentation code maps the kind to a message. KindOf and IsCancelled
classify any error, including wrapped ones.

# Field Tags

FileInfo and ActivityEntry carry JSON and YAML tags so the CLI can print
them in either format.
*/
package types
