package cursor

import (
	"errors"
	"fmt"

	"github.com/dshills/datacursor/internal/datasource"
	"github.com/dshills/datacursor/internal/event"
)

// Position is an alias for event.Position for convenience.
type Position = event.Position

// Cursor is a stateful single-record view over one datasource.
//
// A new cursor starts at BOF with no current record. It is not safe for
// concurrent use; all calls run to completion in the caller's goroutine,
// including every notification they raise.
type Cursor struct {
	ds       datasource.Datasource
	notifier *event.Notifier

	pos Position

	// loaded is the record as last read from the datasource: nil at BOF/EOF,
	// empty at NEW. current is the live working copy. The two are always
	// independent; mutating one never affects the other.
	loaded  datasource.Record
	current datasource.Record

	rowsSub event.Subscription
	closed  bool
}

// New creates a cursor bound to the datasource, positioned at BOF, and
// subscribed to the datasource's row-insertion notifications.
func New(ds datasource.Datasource) *Cursor {
	c := &Cursor{
		ds:       ds,
		notifier: event.NewNotifier(),
		pos:      event.BOF(),
	}
	sub, err := ds.Notifier().Subscribe(event.RowsInsert, c.onRowsInsert)
	if err != nil {
		// Subscribe only fails on a nil handler, which cannot happen here.
		panic(err)
	}
	c.rowsSub = sub
	return c
}

// Close drops the cursor's datasource subscription. The cursor must not be
// used afterwards.
func (c *Cursor) Close() {
	if c.closed {
		return
	}
	c.closed = true
	_ = c.ds.Notifier().Unsubscribe(c.rowsSub)
}

// Notifier exposes the cursor's notifications for subscription.
func (c *Cursor) Notifier() *event.Notifier {
	return c.notifier
}

// Datasource returns the datasource the cursor is bound to.
func (c *Cursor) Datasource() datasource.Datasource {
	return c.ds
}

// Position returns the cursor's current position.
func (c *Cursor) Position() Position {
	return c.pos
}

// RowCount returns the datasource's row count. A negative value means the
// count is unknown.
func (c *Cursor) RowCount() int {
	return c.ds.Count()
}

// Columns returns a copy of the datasource's column schema.
func (c *Cursor) Columns() datasource.Columns {
	return c.ds.Columns()
}

// LoadedValues returns a copy of the record as last read from the
// datasource, or nil at BOF/EOF.
func (c *Cursor) LoadedValues() datasource.Record {
	return c.loaded.Clone()
}

// CurrentValues returns a copy of the live working record, or nil at BOF/EOF.
func (c *Cursor) CurrentValues() datasource.Record {
	return c.current.Clone()
}

// IsDirty reports whether the working copy differs from the loaded snapshot
// under the symmetric per-key loose-equality diff. It is always false when no
// record is loaded.
func (c *Cursor) IsDirty() bool {
	if c.loaded == nil || c.current == nil {
		return false
	}
	return len(datasource.DiffKeys(c.current, c.loaded)) > 0
}

// SetFieldValue writes a value into the working copy of the current record
// and fires Modified. It fails with ErrNoCurrentRecord at BOF/EOF and with
// ErrNoSuchField for a column outside the schema.
func (c *Cursor) SetFieldValue(name string, value any) error {
	if !c.pos.HasRecord() {
		return ErrNoCurrentRecord
	}
	if !c.ds.Columns().Has(name) {
		return fmt.Errorf("%w: %q", ErrNoSuchField, name)
	}
	c.current[name] = value
	c.notifier.Fire(event.New(event.Modified, c.pos))
	return nil
}

// SetPosition validates the target, runs the discard protocol against it and,
// when the target differs from the current position, performs the move and
// fires MoveTo carrying the old and new positions.
func (c *Cursor) SetPosition(target Position) error {
	if err := c.validate(target); err != nil {
		return err
	}
	if err := c.MaybeDiscard(target); err != nil {
		return err
	}
	if target.Equal(c.pos) {
		return nil
	}
	return c.moveInternal(target, false)
}

// MoveRelative moves the cursor by delta rows. Targets past either end clamp
// to BOF or EOF. A zero delta is not a no-op: the discard protocol and the
// move notifications still run. Disallowed moves fail with ErrIllegalMove
// before any mutation or notification.
func (c *Cursor) MoveRelative(delta int) error {
	target, err := c.resolveRelative(delta)
	if err != nil {
		return err
	}

	// Clamp out-of-range targets to the sentinels; sentinels pass through.
	if i, ok := target.Index(); ok {
		if i < 0 {
			target = event.BOF()
		} else if n, known := c.rowCount(); known && i >= n {
			target = event.EOF()
		}
	}

	if err := c.validate(target); err != nil {
		return err
	}
	if err := c.MaybeDiscard(target); err != nil {
		return err
	}

	ev := event.NewMovement(event.MoveForward, c.pos, target)
	ev.Delta = delta
	c.notifier.Fire(ev)

	return c.SetPosition(target)
}

// resolveRelative maps a delta onto a target position before clamping.
func (c *Cursor) resolveRelative(delta int) (Position, error) {
	if delta == 0 {
		return c.pos, nil
	}
	switch {
	case c.pos.IsBOF():
		if delta < 0 {
			return Position{}, fmt.Errorf("%w: backward from BOF", ErrIllegalMove)
		}
		// One step forward from BOF lands on the first record.
		return event.At(delta - 1), nil
	case c.pos.IsEOF() || c.pos.IsNewRow():
		if delta > 0 {
			return Position{}, fmt.Errorf("%w: forward from %s", ErrIllegalMove, c.pos)
		}
		n, known := c.rowCount()
		if !known {
			return Position{}, fmt.Errorf("%w: backward from %s with unknown row count", ErrIllegalMove, c.pos)
		}
		return event.At(n + delta), nil
	default:
		i, _ := c.pos.Index()
		return event.At(i + delta), nil
	}
}

// MoveFirst moves onto the first record, or to EOF when the collection is
// empty. It fires MoveFirst before performing the move.
func (c *Cursor) MoveFirst() error {
	target := event.At(0)
	if n, known := c.rowCount(); known && n == 0 {
		target = event.EOF()
	}
	c.notifier.Fire(event.NewMovement(event.MoveFirst, c.pos, target))
	return c.SetPosition(target)
}

// MoveLast moves onto the last record. It fails with ErrIllegalMove when the
// row count is unknown, and fires MoveLast before performing the move.
func (c *Cursor) MoveLast() error {
	n, known := c.rowCount()
	if !known {
		return fmt.Errorf("%w: last record with unknown row count", ErrIllegalMove)
	}
	target := event.At(n - 1)
	c.notifier.Fire(event.NewMovement(event.MoveLast, c.pos, target))
	return c.SetPosition(target)
}

// MoveNew moves onto the NEW sentinel, an empty uncommitted record. It fires
// CreateNew before performing the move.
func (c *Cursor) MoveNew() error {
	target := event.NewRow()
	c.notifier.Fire(event.NewMovement(event.CreateNew, c.pos, target))
	return c.SetPosition(target)
}

// MaybeDiscard runs the discard protocol against a prospective move to
// target. It is a no-op when the cursor is clean. When dirty, it raises a
// cancellable BeforeDiscard carrying the current position and the target; a
// listener veto fails with ErrDiscardBlocked and leaves all state untouched,
// otherwise the edits are discarded.
func (c *Cursor) MaybeDiscard(target Position) error {
	if !c.IsDirty() {
		return nil
	}
	if !c.pos.HasRecord() {
		return ErrNoCurrentRecord
	}
	if !c.notifier.Fire(event.NewMovement(event.BeforeDiscard, c.pos, target)) {
		return ErrDiscardBlocked
	}
	return c.Discard()
}

// Discard abandons unsaved edits, reverting the working copy to the loaded
// snapshot, and fires Discard then Modified. Discarding an uncommitted NEW
// record collapses the cursor onto the last real record (EOF when the
// collection is empty).
func (c *Cursor) Discard() error {
	if !c.pos.HasRecord() {
		return ErrNoCurrentRecord
	}
	if !c.IsDirty() {
		return nil
	}

	c.current = c.loaded.Clone()
	c.notifier.Fire(event.New(event.Discard, c.pos))

	if c.pos.IsNewRow() {
		target := event.EOF()
		if n, known := c.rowCount(); known && n > 0 {
			target = event.At(n - 1)
		}
		if err := c.moveInternal(target, false); err != nil {
			return err
		}
	}

	c.notifier.Fire(event.New(event.Modified, c.pos))
	return nil
}

// Save writes the working record to the datasource and returns the storage
// index of the saved record.
//
// From NEW the record is appended. Otherwise the write goes through the
// datasource's compare-and-swap against the loaded snapshot; a detected
// conflict raises a cancellable BeforeOverwrite, and a listener veto fails
// with ErrOverwriteBlocked leaving the datasource unmodified. An uncancelled
// conflict is overwritten by force, firing Overwrite.
//
// After the write the snapshot is reloaded and Save fires carrying the
// storage index, which can differ from the cursor's resting position: unless
// SuppressMoveTo is given, the cursor then moves onto the saved record.
func (c *Cursor) Save(opts ...SaveOption) (int, error) {
	if !c.pos.HasRecord() {
		return 0, ErrNoCurrentRecord
	}

	var cfg saveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var newIndex int
	switch {
	case c.pos.IsNewRow():
		idx, err := c.ds.Add(c.current)
		if err != nil {
			return 0, err
		}
		newIndex = idx

	case cfg.forceOverwrite:
		i, _ := c.pos.Index()
		if err := c.ds.Replace(i, c.current); err != nil {
			return 0, err
		}
		newIndex = i

	default:
		i, _ := c.pos.Index()
		if err := c.atomicSave(i, cfg); err != nil {
			return 0, err
		}
		newIndex = i
	}

	if err := c.reload(); err != nil {
		return 0, err
	}
	c.notifier.Fire(event.NewMovement(event.Save, c.pos, event.At(newIndex)))

	target := event.At(newIndex)
	if !cfg.suppressMoveTo && !target.Equal(c.pos) {
		if err := c.moveInternal(target, false); err != nil {
			return 0, err
		}
	}
	return newIndex, nil
}

// atomicSave performs the compare-and-swap branch of Save, including the
// overwrite protocol on conflict.
func (c *Cursor) atomicSave(index int, cfg saveConfig) error {
	err := c.ds.AtomicReplace(index, c.loaded, c.current)
	if err == nil {
		return nil
	}

	var conflict *datasource.ConflictError
	if !errors.As(err, &conflict) {
		return err
	}

	attempted := c.pos
	if cfg.hasAttempted {
		attempted = cfg.attempted
	}
	if !c.notifier.Fire(event.NewMovement(event.BeforeOverwrite, c.pos, attempted)) {
		return ErrOverwriteBlocked
	}

	if err := c.ds.Replace(index, c.current); err != nil {
		return err
	}
	c.notifier.Fire(event.New(event.Overwrite, c.pos))
	return nil
}

// DeleteCurrent removes the record under the cursor, fires DeleteCurrentRow,
// and repositions onto the record that took its index (the new last record
// when the deleted one was last, EOF when the collection became empty).
func (c *Cursor) DeleteCurrent() error {
	i, ok := c.pos.Index()
	if !ok {
		return ErrNoCurrentRecord
	}
	if err := c.ds.Remove(i); err != nil {
		return err
	}
	c.notifier.Fire(event.New(event.DeleteCurrentRow, c.pos))

	target := event.EOF()
	if n, known := c.rowCount(); known {
		switch {
		case n == 0:
			target = event.EOF()
		case i < n:
			target = event.At(i)
		default:
			target = event.At(n - 1)
		}
	}
	return c.moveInternal(target, false)
}

// onRowsInsert keeps the cursor's index consistent when rows are inserted at
// or before it. The move bypasses the discard protocol and carries the
// working copy across, so insertions elsewhere never clobber an in-progress
// edit. Sentinel positions are unaffected.
func (c *Cursor) onRowsInsert(e event.Event) bool {
	i, ok := c.pos.Index()
	if !ok {
		return true
	}
	shifted := i
	for _, ins := range e.Indices {
		if ins <= shifted {
			shifted++
		}
	}
	if shifted != i {
		_ = c.moveInternal(event.At(shifted), true)
	}
	return true
}

// rowCount reads the datasource's count, treating a negative value as
// unknown.
func (c *Cursor) rowCount() (int, bool) {
	n := c.ds.Count()
	if n < 0 {
		return 0, false
	}
	return n, true
}

// validate checks that target is a sentinel or an in-range index.
func (c *Cursor) validate(target Position) error {
	i, ok := target.Index()
	if !ok {
		return nil
	}
	if i < 0 {
		return fmt.Errorf("%w: index %d", ErrIllegalMove, i)
	}
	if n, known := c.rowCount(); known && i >= n {
		return fmt.Errorf("%w: index %d beyond row count %d", ErrIllegalMove, i, n)
	}
	return nil
}

// moveInternal performs the actual move: the position is assigned first, the
// snapshot reloaded, and MoveTo fired last, so observers of MoveTo see the
// cursor already positioned at the new record. keepEdits carries the working
// copy across the move; it is only used by insert reindexing, where the
// record under the cursor has merely shifted.
func (c *Cursor) moveInternal(target Position, keepEdits bool) error {
	old := c.pos
	work := c.current

	c.pos = target
	if err := c.reload(); err != nil {
		return err
	}
	if keepEdits && work != nil && c.pos.HasRecord() {
		c.current = work
	}

	c.notifier.Fire(event.NewMovement(event.MoveTo, old, target))
	return nil
}

// reload refreshes the loaded snapshot and working copy for the current
// position: unset at BOF/EOF, empty at NEW, otherwise the datasource record
// projected onto the column schema.
func (c *Cursor) reload() error {
	switch {
	case c.pos.IsNewRow():
		c.loaded = datasource.Record{}
		c.current = datasource.Record{}
	case c.pos.HasRecord():
		i, _ := c.pos.Index()
		rec, err := c.ds.Get(i)
		if err != nil {
			return err
		}
		c.loaded = rec.Project(c.ds.Columns())
		c.current = c.loaded.Clone()
	default:
		c.loaded = nil
		c.current = nil
	}
	return nil
}
