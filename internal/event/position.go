package event

import "fmt"

// Kind discriminates the variants of a Position.
type Kind uint8

const (
	// KindBOF is the sentinel before the first record. It is the zero value,
	// so a zero Position is BOF, matching a cursor's initial state.
	KindBOF Kind = iota

	// KindEOF is the sentinel after the last record.
	KindEOF

	// KindNewRow is the sentinel for an uncommitted record under construction.
	KindNewRow

	// KindIndex is a concrete row index.
	KindIndex
)

// Position is a tagged value identifying where a cursor stands: one of the
// sentinels BOF, EOF, NEW, or an integer row index. Position is an immutable
// value type; compare with Equal.
type Position struct {
	kind  Kind
	index int
}

// BOF returns the before-first-record sentinel.
func BOF() Position {
	return Position{kind: KindBOF}
}

// EOF returns the after-last-record sentinel.
func EOF() Position {
	return Position{kind: KindEOF}
}

// NewRow returns the sentinel for an uncommitted record under construction.
func NewRow() Position {
	return Position{kind: KindNewRow}
}

// At returns a position at the given row index.
func At(index int) Position {
	return Position{kind: KindIndex, index: index}
}

// Kind returns the position's variant tag.
func (p Position) Kind() Kind {
	return p.kind
}

// Index returns the row index and true when the position is a concrete index.
func (p Position) Index() (int, bool) {
	if p.kind != KindIndex {
		return 0, false
	}
	return p.index, true
}

// IsBOF reports whether the position is the BOF sentinel.
func (p Position) IsBOF() bool { return p.kind == KindBOF }

// IsEOF reports whether the position is the EOF sentinel.
func (p Position) IsEOF() bool { return p.kind == KindEOF }

// IsNewRow reports whether the position is the NEW sentinel.
func (p Position) IsNewRow() bool { return p.kind == KindNewRow }

// HasRecord reports whether the position admits field access. Only a concrete
// index or the NEW sentinel does; BOF and EOF have no current record.
func (p Position) HasRecord() bool {
	return p.kind == KindIndex || p.kind == KindNewRow
}

// Equal reports whether two positions are the same variant and, for indexes,
// the same row.
func (p Position) Equal(other Position) bool {
	if p.kind != other.kind {
		return false
	}
	return p.kind != KindIndex || p.index == other.index
}

// String returns a string representation of the position.
func (p Position) String() string {
	switch p.kind {
	case KindBOF:
		return "BOF"
	case KindEOF:
		return "EOF"
	case KindNewRow:
		return "NEW"
	case KindIndex:
		return fmt.Sprintf("Index(%d)", p.index)
	default:
		return fmt.Sprintf("Unknown(%d)", p.kind)
	}
}
