package datasource

import "github.com/dshills/datacursor/internal/event"

// Memory is the array-backed reference implementation of the Datasource
// contract. It is not safe for concurrent use; callers serialize access per
// the cooperative execution model.
type Memory struct {
	columns  Columns
	rows     []Record
	notifier *event.Notifier
}

// NewMemory creates a datasource with the given schema and initial records.
// Both are copied in; the caller keeps ownership of its slices.
func NewMemory(columns Columns, rows []Record) *Memory {
	m := &Memory{
		columns:  columns.Clone(),
		rows:     make([]Record, 0, len(rows)),
		notifier: event.NewNotifier(),
	}
	for _, r := range rows {
		m.rows = append(m.rows, r.Clone())
	}
	return m
}

// Columns returns a copy of the column schema.
func (m *Memory) Columns() Columns {
	return m.columns.Clone()
}

// Count returns the current row count.
func (m *Memory) Count() int {
	return len(m.rows)
}

// Get returns a copy of the record at index.
func (m *Memory) Get(index int) (Record, error) {
	if index < 0 || index >= len(m.rows) {
		return nil, ErrNoSuchRecord
	}
	return m.rows[index].Clone(), nil
}

// Insert places a copy of rec at index, shifting subsequent rows up by one,
// then fires RowsInsert.
func (m *Memory) Insert(index int, rec Record) error {
	if index < 0 || index > len(m.rows) {
		return ErrNoSuchRecord
	}
	m.rows = append(m.rows, nil)
	copy(m.rows[index+1:], m.rows[index:])
	m.rows[index] = rec.Clone()
	m.notifier.Fire(event.NewRows(event.RowsInsert, index))
	return nil
}

// Add appends a copy of rec and returns its index.
func (m *Memory) Add(rec Record) (int, error) {
	index := len(m.rows)
	if err := m.Insert(index, rec); err != nil {
		return 0, err
	}
	return index, nil
}

// Replace overwrites the record at index, then fires RowsUpdate.
func (m *Memory) Replace(index int, rec Record) error {
	if index < 0 || index >= len(m.rows) {
		return ErrNoSuchRecord
	}
	m.rows[index] = rec.Clone()
	m.notifier.Fire(event.NewRows(event.RowsUpdate, index))
	return nil
}

// Remove deletes the record at index, shifting later rows down, then fires
// RowsDelete.
func (m *Memory) Remove(index int) error {
	if index < 0 || index >= len(m.rows) {
		return ErrNoSuchRecord
	}
	m.rows = append(m.rows[:index], m.rows[index+1:]...)
	m.notifier.Fire(event.NewRows(event.RowsDelete, index))
	return nil
}

// AtomicReplace compares expected against the stored record and replaces it
// with next only when they loosely match on every key.
func (m *Memory) AtomicReplace(index int, expected, next Record) error {
	if index < 0 || index >= len(m.rows) {
		return ErrNoSuchRecord
	}
	if diff := DiffKeys(expected, m.rows[index]); len(diff) > 0 {
		return &ConflictError{Index: index, Actual: m.rows[index].Clone()}
	}
	return m.Replace(index, next)
}

// Search returns the order-preserving insertion point for target, assuming
// the rows are sorted under cmp.
func (m *Memory) Search(target Record, cmp func(a, b Record) int) int {
	return searchFunc(len(m.rows), func(i int) Record { return m.rows[i] }, target, cmp)
}

// Notifier exposes the datasource's row-change notifications.
func (m *Memory) Notifier() *event.Notifier {
	return m.notifier
}
