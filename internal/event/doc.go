// Package event implements the synchronous notification protocol shared by
// datasources and cursors.
//
// A Notifier delivers events to listeners in registration order, in the
// caller's goroutine, before Fire returns. Some event types are cancellable:
// a listener vetoes one by returning false. Every listener still runs; the
// aggregate result reported to the firer is "cancelled if any listener voted
// false".
//
// The package also owns the Position tagged union (BOF, EOF, NEW, or a row
// index) because the protocol's payload shapes carry positions. Higher-level
// packages re-export it via type aliases.
package event
