// Package table provides the ordered in-memory record table that backs
// quarry datasets. A Table holds a fixed, ordered set of column names and
// rows of arbitrary values. Tables are value-producing: every transforming
// operation (Slice, Take, Filter, Concat, SortByColumn) returns a fresh
// Table and leaves the receiver untouched, so multiple datasets can safely
// share row data derived from one source.
package table

import (
	"fmt"
	"sort"
)

// Table is an ordered collection of rows over named columns.
// The zero value is not usable; construct with New.
type Table struct {
	cols  []string
	index map[string]int // column name → position in cols
	rows  [][]any
}

// New creates a Table with the given column names and rows.
// Every row must have exactly one value per column.
func New(cols []string, rows [][]any) (*Table, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("table: at least one column is required")
	}
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if c == "" {
			return nil, fmt.Errorf("table: column %d has an empty name", i)
		}
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("table: duplicate column %q", c)
		}
		index[c] = i
	}
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("table: row %d has %d values, want %d", i, len(row), len(cols))
		}
	}
	return &Table{cols: cloneStrings(cols), index: index, rows: cloneRows(rows)}, nil
}

// MustNew is New but panics on error. Intended for fixed literals in
// summarizers and tests.
func MustNew(cols []string, rows [][]any) *Table {
	t, err := New(cols, rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return cloneStrings(t.cols)
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnName returns the name of the column at position i.
func (t *Table) ColumnName(i int) (string, error) {
	if i < 0 || i >= len(t.cols) {
		return "", fmt.Errorf("table: column index %d out of range [0, %d)", i, len(t.cols))
	}
	return t.cols[i], nil
}

// Column returns all values of the named column in row order.
func (t *Table) Column(name string) ([]any, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("table: no column %q", name)
	}
	vals := make([]any, len(t.rows))
	for r, row := range t.rows {
		vals[r] = row[i]
	}
	return vals, nil
}

// Value returns the value at row i of the named column.
func (t *Table) Value(i int, name string) (any, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, fmt.Errorf("table: row %d out of range [0, %d)", i, len(t.rows))
	}
	c, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("table: no column %q", name)
	}
	return t.rows[i][c], nil
}

// Row returns a copy of row i.
func (t *Table) Row(i int) ([]any, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, fmt.Errorf("table: row %d out of range [0, %d)", i, len(t.rows))
	}
	return append([]any(nil), t.rows[i]...), nil
}

// Slice returns a new Table holding rows [lo, hi).
func (t *Table) Slice(lo, hi int) (*Table, error) {
	if lo < 0 || hi < lo || hi > len(t.rows) {
		return nil, fmt.Errorf("table: slice [%d, %d) out of range for %d rows", lo, hi, len(t.rows))
	}
	return t.shallow(t.rows[lo:hi]), nil
}

// Take returns a new Table whose rows are the receiver's rows at the given
// indices, in the given order. Indices may select any subset or permutation.
func (t *Table) Take(indices []int) (*Table, error) {
	rows := make([][]any, len(indices))
	for r, i := range indices {
		if i < 0 || i >= len(t.rows) {
			return nil, fmt.Errorf("table: take index %d out of range [0, %d)", i, len(t.rows))
		}
		rows[r] = t.rows[i]
	}
	return t.shallow(rows), nil
}

// Filter returns a new Table holding only the rows for which keep returns
// true. The row slice passed to keep must not be retained or modified.
func (t *Table) Filter(keep func(row []any) bool) *Table {
	rows := make([][]any, 0, len(t.rows))
	for _, row := range t.rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	return t.shallow(rows)
}

// Concat returns a new Table with the receiver's rows followed by each
// other table's rows in argument order. All tables must share the same
// column set in the same order.
func (t *Table) Concat(others ...*Table) (*Table, error) {
	rows := append([][]any(nil), t.rows...)
	for _, o := range others {
		if !sameColumns(t.cols, o.cols) {
			return nil, fmt.Errorf("table: cannot concat, columns %v != %v", o.cols, t.cols)
		}
		rows = append(rows, o.rows...)
	}
	return t.shallow(rows), nil
}

// SortByColumn returns a new Table with rows stably sorted by the named
// column. Values are ordered numerically when both are numeric, otherwise
// by their string form.
func (t *Table) SortByColumn(name string) (*Table, error) {
	c, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("table: no column %q", name)
	}
	rows := append([][]any(nil), t.rows...)
	sort.SliceStable(rows, func(i, j int) bool {
		return lessValue(rows[i][c], rows[j][c])
	})
	return t.shallow(rows).copyRows(), nil
}

// Equal reports whether two tables have identical columns and row values.
// Values are compared with ==, so it is meaningful for comparable cell
// types (strings, numbers).
func (t *Table) Equal(o *Table) bool {
	if o == nil || !sameColumns(t.cols, o.cols) || len(t.rows) != len(o.rows) {
		return false
	}
	for r := range t.rows {
		for c := range t.cols {
			if t.rows[r][c] != o.rows[r][c] {
				return false
			}
		}
	}
	return true
}

// shallow wraps the given rows with the receiver's schema. Row slices are
// shared with the source; Tables never mutate rows in place, so sharing is
// safe.
func (t *Table) shallow(rows [][]any) *Table {
	return &Table{cols: t.cols, index: t.index, rows: append([][]any(nil), rows...)}
}

func (t *Table) copyRows() *Table {
	t.rows = cloneRows(t.rows)
	return t
}

func cloneStrings(s []string) []string {
	return append([]string(nil), s...)
}

func cloneRows(rows [][]any) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		out[i] = append([]any(nil), row...)
	}
	return out
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func lessValue(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af < bf
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	return 0, false
}
