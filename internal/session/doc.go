// Package session keeps the state shared by every user action: the folder
// being edited and the template to insert. Store persists the folder
// between runs.
package session
