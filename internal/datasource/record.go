package datasource

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Column describes one column of a datasource's schema.
type Column struct {
	// Name is the key under which values are stored in a Record.
	Name string

	// Caption is the human-readable column title.
	Caption string
}

// Columns is an ordered, fixed-per-datasource column schema.
type Columns []Column

// Clone returns an independent copy of the schema.
func (c Columns) Clone() Columns {
	if c == nil {
		return nil
	}
	out := make(Columns, len(c))
	copy(out, c)
	return out
}

// Index returns the position of the named column, or -1 if absent.
func (c Columns) Index(name string) int {
	for i, col := range c {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether the schema contains the named column.
func (c Columns) Has(name string) bool {
	return c.Index(name) >= 0
}

// Names returns the column names in schema order.
func (c Columns) Names() []string {
	names := make([]string, len(c))
	for i, col := range c {
		names[i] = col.Name
	}
	return names
}

// Record maps column names to opaque scalar values.
type Record map[string]any

// Clone returns an independent shallow copy. Values are treated as opaque
// scalars, so a shallow copy is sufficient to prevent aliasing.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Project returns a copy of the record restricted to the schema's columns.
func (r Record) Project(cols Columns) Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(cols))
	for _, col := range cols {
		if v, ok := r[col.Name]; ok {
			out[col.Name] = v
		}
	}
	return out
}

// LooseEqual compares two field values with weak equality: nil only equals
// nil, strings compare as strings, and everything numeric (including bools
// and numeric strings) compares by numeric value. Non-scalar values fall back
// to deep equality.
func LooseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return as == bs
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
	}

	return reflect.DeepEqual(a, b)
}

// toFloat coerces scalar values to float64 for weak numeric comparison.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// DiffKeys computes the symmetric per-key difference of two records: every
// key present in only one side, or present in both with loosely unequal
// values, is reported. The result is sorted for stable output.
func DiffKeys(a, b Record) []string {
	var keys []string
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !LooseEqual(av, bv) {
			keys = append(keys, k)
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
