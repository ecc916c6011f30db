package table

import (
	"strconv"
	"strings"
)

// ValueKind defines the storage type for a cell
type ValueKind string

const (
	KindString  ValueKind = "string"
	KindNumber  ValueKind = "number"
	KindMissing ValueKind = "missing"
)

// Value represents a typed cell value. Empty strings are stored as missing.
// Values are comparable with ==; equality is exact, no coercion.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
}

// String creates a string value; an empty string becomes missing
func String(s string) Value {
	if s == "" {
		return Missing()
	}
	return Value{Kind: KindString, Str: s}
}

// Number creates a numeric value
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// Missing creates a missing value
func Missing() Value {
	return Value{Kind: KindMissing}
}

// IsMissing reports whether the cell holds no value
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// Display returns the user-facing representation of the value
func (v Value) Display() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return ""
}

// Row is an ordered sequence of cells, one per table column
type Row []Value

// key returns an unambiguous encoding of the row for exact-equality checks
func (r Row) key() string {
	var b strings.Builder
	for i, v := range r {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		b.WriteString(string(v.Kind))
		b.WriteByte(0x1e)
		b.WriteString(v.Display())
	}
	return b.String()
}

// allMissing reports whether every cell in the row is missing
func (r Row) allMissing() bool {
	for _, v := range r {
		if !v.IsMissing() {
			return false
		}
	}
	return true
}

// Table is an in-memory tabular dataset with named columns and ordered rows.
// Each row holds exactly one cell per column. Tables are treated as immutable
// after cleaning; downstream steps only read them.
type Table struct {
	Columns []string
	Rows    []Row
}

// ColumnIndex returns the position of a column by name
func (t Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.Columns {
		if col == name {
			return i, true
		}
	}
	return -1, false
}

// Value returns the cell at the given row for the named column
func (t Table) Value(row int, column string) Value {
	idx, ok := t.ColumnIndex(column)
	if !ok || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return Missing()
	}
	return t.Rows[row][idx]
}

// Clone returns a deep copy of the table
func (t Table) Clone() Table {
	out := Table{
		Columns: make([]string, len(t.Columns)),
		Rows:    make([]Row, len(t.Rows)),
	}
	copy(out.Columns, t.Columns)
	for i, row := range t.Rows {
		out.Rows[i] = make(Row, len(row))
		copy(out.Rows[i], row)
	}
	return out
}
