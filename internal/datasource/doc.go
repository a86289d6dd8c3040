// Package datasource defines the ordered-record-collection contract consumed
// by cursors, plus the value types shared by all implementations and an
// array-backed reference implementation.
//
// A Datasource owns an ordered sequence of records with a fixed column
// schema. Every accessor returns a defensive copy; callers can never mutate
// internal storage directly. Mutations notify listeners through the
// datasource's Notifier after the backing sequence has changed.
//
// The execution model is single-threaded and cooperative: reads are always
// safe, writes mutate the shared sequence in place with no locking, and
// callers serialize their own write calls. AtomicReplace is the sole
// concurrency-safety mechanism, a single-slot compare-and-swap against the
// hazard of two cursors independently loading, then overwriting, the same
// record.
package datasource
