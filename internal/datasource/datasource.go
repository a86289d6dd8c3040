package datasource

import "github.com/dshills/datacursor/internal/event"

// Datasource is an ordered collection of records with a fixed column schema.
//
// Implementations must hand out defensive copies from every accessor and must
// notify listeners through Notifier() after each mutation: Insert fires
// RowsInsert, Replace fires RowsUpdate and Remove fires RowsDelete, each
// carrying the affected indices.
type Datasource interface {
	// Columns returns a copy of the column schema.
	Columns() Columns

	// Count returns the current row count. A negative count means the count
	// is unknown; neither shipped implementation ever reports one, but cursor
	// logic tolerates it.
	Count() int

	// Get returns a copy of the record at index, or ErrNoSuchRecord when the
	// index is outside [0, Count()).
	Get(index int) (Record, error)

	// Insert places a copy of the record at index, shifting subsequent rows
	// up by one. The valid range is [0, Count()].
	Insert(index int, rec Record) error

	// Add appends a copy of the record and returns its index.
	Add(rec Record) (int, error)

	// Replace overwrites the record at index with a copy of rec.
	Replace(index int, rec Record) error

	// Remove deletes the record at index, shifting later rows down.
	Remove(index int) error

	// AtomicReplace is a single-slot compare-and-swap: it computes the
	// symmetric loose key-diff between expected and the record actually
	// stored at index. Any difference fails with a *ConflictError carrying
	// the actual record and performs no mutation; otherwise it behaves
	// exactly as Replace(index, next). Valid only under the single-threaded
	// cooperative model; it provides no isolation against parallel writers.
	AtomicReplace(index int, expected, next Record) error

	// Search binary-searches the collection, assumed sorted under cmp, and
	// returns the insertion point for target that preserves the order.
	Search(target Record, cmp func(a, b Record) int) int

	// Notifier exposes the datasource's row-change notifications.
	Notifier() *event.Notifier
}

// searchFunc is the binary search shared by implementations. get must return
// the record at a valid index without copying cost concerns; cmp reports the
// order of a relative to b.
func searchFunc(count int, get func(int) Record, target Record, cmp func(a, b Record) int) int {
	lo, hi := 0, count
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(get(mid), target) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
