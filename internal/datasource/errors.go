package datasource

import (
	"errors"
	"fmt"
)

// Errors returned by datasource operations.
var (
	// ErrNoSuchRecord indicates a row index outside the valid range.
	ErrNoSuchRecord = errors.New("no such record")

	// ErrConcurrentModification indicates AtomicReplace found the stored
	// record differing from the expected one. The returned error is a
	// *ConflictError carrying the actual record.
	ErrConcurrentModification = errors.New("concurrent modification")
)

// ConflictError reports an AtomicReplace mismatch. It matches
// ErrConcurrentModification under errors.Is and carries the record actually
// stored at the index so callers can resolve the conflict.
type ConflictError struct {
	// Index is the row the replace was attempted on.
	Index int

	// Actual is a copy of the record currently stored at Index.
	Actual Record
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("concurrent modification of record %d", e.Index)
}

// Is matches the ErrConcurrentModification sentinel.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConcurrentModification
}
