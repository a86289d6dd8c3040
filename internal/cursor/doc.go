// Package cursor implements a stateful single-record cursor over a
// datasource.
//
// A cursor binds to one datasource for its lifetime, tracks a position and a
// working copy of the current record, and drives reads and writes against the
// datasource. Its position is always one of the sentinels BOF, EOF or NEW, or
// a row index within the datasource.
//
// Unsaved edits are protected by the discard protocol: any move away from a
// dirty record raises a cancellable BeforeDiscard notification first, and a
// listener veto blocks the move. Saves over a record that changed underneath
// the cursor go through the overwrite protocol, which raises a cancellable
// BeforeOverwrite notification before clobbering the conflicting change.
//
// The cursor subscribes to its datasource's RowsInsert notifications and
// shifts its own index when rows are inserted at or before it, without
// touching in-progress edits.
package cursor
