// Package tui is a minimal terminal grid over a cursor: row navigation,
// in-place cell editing, save and discard. It is a demo surface for the
// cursor engine, not a general-purpose table widget.
package tui
