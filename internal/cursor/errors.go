package cursor

import "errors"

// Errors returned by cursor operations. All are locally recoverable; the
// calling layer is expected to turn them into user-facing feedback.
var (
	// ErrIllegalMove indicates a position transition the state machine
	// forbids: backward from BOF, forward from EOF, an unbounded backward
	// move with unknown row count, or an out-of-range target.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoCurrentRecord indicates field access at BOF or EOF.
	ErrNoCurrentRecord = errors.New("no current record")

	// ErrNoSuchField indicates an unknown column name.
	ErrNoSuchField = errors.New("no such field")

	// ErrDiscardBlocked indicates a BeforeDiscard listener cancelled the move.
	ErrDiscardBlocked = errors.New("discard blocked by listener")

	// ErrOverwriteBlocked indicates a BeforeOverwrite listener cancelled the
	// save.
	ErrOverwriteBlocked = errors.New("overwrite blocked by listener")

	// ErrSaveBlocked is reserved for a future BeforeSave guard. No current
	// code path raises it.
	ErrSaveBlocked = errors.New("save blocked by listener")
)
