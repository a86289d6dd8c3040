package event

import "fmt"

// Type identifies a notification in the protocol.
type Type uint8

// Cursor and datasource notification types.
const (
	// MoveFirst fires before a move-to-first-record operation.
	MoveFirst Type = iota

	// MoveBackward is declared for protocol completeness; cursor operations
	// report all relative moves as MoveForward with a signed delta.
	MoveBackward

	// MoveForward fires before a relative move, carrying the requested delta
	// and the resolved target position.
	MoveForward

	// MoveLast fires before a move-to-last-record operation.
	MoveLast

	// MoveTo fires after the cursor has taken a new position, carrying the
	// old position and the new one.
	MoveTo

	// CreateNew fires before the cursor moves onto the NEW sentinel.
	CreateNew

	// DeleteCurrentRow fires when the cursor removes its current record.
	DeleteCurrentRow

	// BeforeDiscard fires before unsaved edits are discarded. Cancellable.
	BeforeDiscard

	// Discard fires after unsaved edits have been reverted.
	Discard

	// BeforeSave is reserved for a future save guard. Cancellable.
	BeforeSave

	// Save fires after a successful save, carrying the storage position of
	// the saved record as NewPosition.
	Save

	// BeforeOverwrite fires when a save detected a conflicting change and is
	// about to overwrite it. Cancellable.
	BeforeOverwrite

	// Overwrite fires after a conflicting record has been overwritten.
	Overwrite

	// Modified fires whenever the working copy of the current record changes.
	Modified

	// RowsInsert fires after a datasource inserted rows, carrying the
	// affected indices.
	RowsInsert

	// RowsUpdate fires after a datasource replaced rows in place.
	RowsUpdate

	// RowsDelete fires after a datasource removed rows.
	RowsDelete
)

// Cancellable reports whether listeners may veto the notification by
// returning false.
func (t Type) Cancellable() bool {
	switch t {
	case BeforeDiscard, BeforeSave, BeforeOverwrite:
		return true
	default:
		return false
	}
}

// String returns the protocol name of the type.
func (t Type) String() string {
	switch t {
	case MoveFirst:
		return "MOVE_FIRST"
	case MoveBackward:
		return "MOVE_BACKWARD"
	case MoveForward:
		return "MOVE_FORWARD"
	case MoveLast:
		return "MOVE_LAST"
	case MoveTo:
		return "MOVE_TO"
	case CreateNew:
		return "CREATE_NEW"
	case DeleteCurrentRow:
		return "DELETE_CURRENT_ROW"
	case BeforeDiscard:
		return "BEFORE_DISCARD"
	case Discard:
		return "DISCARD"
	case BeforeSave:
		return "BEFORE_SAVE"
	case Save:
		return "SAVE"
	case BeforeOverwrite:
		return "BEFORE_OVERWRITE"
	case Overwrite:
		return "OVERWRITE"
	case Modified:
		return "MODIFIED"
	case RowsInsert:
		return "ROWS_INSERT"
	case RowsUpdate:
		return "ROWS_UPDATE"
	case RowsDelete:
		return "ROWS_DELETE"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}
