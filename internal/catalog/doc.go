/*
Package catalog lists the keymap files in a folder.

Only regular files ending in .json directly inside the folder are listed.
The emulator's six stock layouts are hidden so they cannot be edited or
deleted by accident. Files named after a known game package get a short
display label (Global, Bilibili, Official) in place of the package name;
every operation still uses the real file name.
*/
package catalog
