/*
Package keymap implements the keymap file transformation.

A keymap file is a JSON object with a "keymaps" list of mapped controls.
Each control carries a rel_work_position with rel_x and rel_y in [0, 1].
The transformation removes every control inside ExclusionRegion
(rel_x > 0.67 and rel_y > 0.79) and appends a replacement set. The
replacement is the loaded template when it has entries, or the built-in
default set otherwise.

	doc, err := keymap.ParseDocument(data)
	out, stats, err := keymap.ApplyTransform(doc, keymap.BuildReplacement(tmpl))
	os.WriteFile(path, out.Encode(), mode)

Entries are opaque raw JSON. Apart from the coordinates, nothing in an
entry is read, and nothing outside the keymaps field is modified.

The package performs no I/O except LoadTemplate.
*/
package keymap
