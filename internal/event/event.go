package event

// Event is the payload delivered to listeners. The protocol has three shapes,
// all carried by the one struct:
//
//   - base: Type + Position (the emitter's position when it fired)
//   - movement: base + NewPosition (and Delta for MoveForward)
//   - row change: Type + Indices (datasource mutations)
//
// Fields outside an event's shape hold zero values and are not meaningful.
type Event struct {
	// Type identifies the notification.
	Type Type

	// Position is the emitter's position when the event fired.
	Position Position

	// NewPosition is the target or resulting position for movement events.
	NewPosition Position

	// Delta is the requested relative distance for MoveForward.
	Delta int

	// Indices lists the affected row indices for RowsInsert, RowsUpdate and
	// RowsDelete.
	Indices []int
}

// New creates a base-shape event.
func New(t Type, pos Position) Event {
	return Event{Type: t, Position: pos}
}

// NewMovement creates a movement-shape event carrying the old and new
// positions.
func NewMovement(t Type, pos, newPos Position) Event {
	return Event{Type: t, Position: pos, NewPosition: newPos}
}

// NewRows creates a row-change event for the given indices.
func NewRows(t Type, indices ...int) Event {
	return Event{Type: t, Indices: indices}
}
