// Package jsonrow implements the datasource contract over rows stored as raw
// JSON objects. Field reads go through gjson, record encoding through sjson,
// so records never round-trip through an intermediate map while stored.
package jsonrow

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/datacursor/internal/datasource"
	"github.com/dshills/datacursor/internal/event"
)

// Source is a Datasource whose backing store is one raw JSON object per row.
// Like the array-backed implementation it is not safe for concurrent use.
type Source struct {
	columns  datasource.Columns
	rows     [][]byte
	notifier *event.Notifier
}

// New creates an empty source with the given schema.
func New(columns datasource.Columns) *Source {
	return &Source{
		columns:  columns.Clone(),
		notifier: event.NewNotifier(),
	}
}

// Parse creates a source from a JSON array of objects.
func Parse(columns datasource.Columns, doc []byte) (*Source, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("jsonrow: invalid JSON document")
	}
	parsed := gjson.ParseBytes(doc)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("jsonrow: document is not an array")
	}

	s := New(columns)
	for _, row := range parsed.Array() {
		if !row.IsObject() {
			return nil, fmt.Errorf("jsonrow: row %d is not an object", len(s.rows))
		}
		s.rows = append(s.rows, []byte(row.Raw))
	}
	return s, nil
}

// Columns returns a copy of the column schema.
func (s *Source) Columns() datasource.Columns {
	return s.columns.Clone()
}

// Count returns the current row count.
func (s *Source) Count() int {
	return len(s.rows)
}

// Get returns the record at index decoded into a fresh map.
func (s *Source) Get(index int) (datasource.Record, error) {
	if index < 0 || index >= len(s.rows) {
		return nil, datasource.ErrNoSuchRecord
	}
	return decode(s.rows[index]), nil
}

// Field reads a single field of a row without decoding the whole record.
func (s *Source) Field(index int, name string) (any, error) {
	if index < 0 || index >= len(s.rows) {
		return nil, datasource.ErrNoSuchRecord
	}
	return gjson.GetBytes(s.rows[index], name).Value(), nil
}

// Insert encodes rec and places it at index, then fires RowsInsert.
func (s *Source) Insert(index int, rec datasource.Record) error {
	if index < 0 || index > len(s.rows) {
		return datasource.ErrNoSuchRecord
	}
	raw, err := s.encode(rec)
	if err != nil {
		return err
	}
	s.rows = append(s.rows, nil)
	copy(s.rows[index+1:], s.rows[index:])
	s.rows[index] = raw
	s.notifier.Fire(event.NewRows(event.RowsInsert, index))
	return nil
}

// Add appends rec and returns its index.
func (s *Source) Add(rec datasource.Record) (int, error) {
	index := len(s.rows)
	if err := s.Insert(index, rec); err != nil {
		return 0, err
	}
	return index, nil
}

// Replace overwrites the row at index, then fires RowsUpdate.
func (s *Source) Replace(index int, rec datasource.Record) error {
	if index < 0 || index >= len(s.rows) {
		return datasource.ErrNoSuchRecord
	}
	raw, err := s.encode(rec)
	if err != nil {
		return err
	}
	s.rows[index] = raw
	s.notifier.Fire(event.NewRows(event.RowsUpdate, index))
	return nil
}

// Remove deletes the row at index, then fires RowsDelete.
func (s *Source) Remove(index int) error {
	if index < 0 || index >= len(s.rows) {
		return datasource.ErrNoSuchRecord
	}
	s.rows = append(s.rows[:index], s.rows[index+1:]...)
	s.notifier.Fire(event.NewRows(event.RowsDelete, index))
	return nil
}

// AtomicReplace compares expected against the stored row and replaces it with
// next only when they loosely match on every key.
func (s *Source) AtomicReplace(index int, expected, next datasource.Record) error {
	if index < 0 || index >= len(s.rows) {
		return datasource.ErrNoSuchRecord
	}
	actual := decode(s.rows[index])
	if diff := datasource.DiffKeys(expected, actual); len(diff) > 0 {
		return &datasource.ConflictError{Index: index, Actual: actual}
	}
	return s.Replace(index, next)
}

// Search returns the order-preserving insertion point for target, assuming
// the rows are sorted under cmp.
func (s *Source) Search(target datasource.Record, cmp func(a, b datasource.Record) int) int {
	lo, hi := 0, len(s.rows)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(decode(s.rows[mid]), target) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Notifier exposes the source's row-change notifications.
func (s *Source) Notifier() *event.Notifier {
	return s.notifier
}

// Document renders the whole collection back to a JSON array.
func (s *Source) Document() []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range s.rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(row)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// encode renders a record as a raw JSON object, writing schema columns in
// schema order and ignoring keys outside the schema.
func (s *Source) encode(rec datasource.Record) ([]byte, error) {
	raw := []byte("{}")
	var err error
	for _, col := range s.columns {
		v, ok := rec[col.Name]
		if !ok {
			continue
		}
		raw, err = sjson.SetBytes(raw, col.Name, v)
		if err != nil {
			return nil, fmt.Errorf("jsonrow: encode field %q: %w", col.Name, err)
		}
	}
	return raw, nil
}

// decode parses a raw JSON object into a record. Numbers come back as
// float64, which loose equality treats the same as their integer forms.
func decode(raw []byte) datasource.Record {
	rec := datasource.Record{}
	gjson.ParseBytes(raw).ForEach(func(key, value gjson.Result) bool {
		rec[key.String()] = value.Value()
		return true
	})
	return rec
}
