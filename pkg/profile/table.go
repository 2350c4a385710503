package profile

import (
	"fmt"
	"math"
	"sort"
)

// Missing is the sentinel stored in a column for a value that was not recorded
var Missing = math.NaN()

// IsMissing reports whether v is the missing sentinel
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Standard column names
const (
	ColX            = "exes"
	ColY            = "whys"
	ColThalweg      = "Thalweg"
	ColStation      = "Station"
	ColWaterSurface = "Water Surface"
	ColBankfull     = "Bankfull"
	ColTopOfBank    = "Top of Bank"
)

// BasicColumns must be present on every record table
var BasicColumns = []string{ColX, ColY, ColThalweg}

// FillColumns are the auxiliary elevation series that get interpolated
var FillColumns = []string{ColWaterSurface, ColBankfull, ColTopOfBank}

// Table is an ordered, column-oriented set of per-station records.
// A Table is never modified after construction; methods that change
// columns return a new Table sharing the untouched columns.
type Table struct {
	columns []string
	data    map[string][]float64
	n       int
}

// NewTable builds a table from a mapping of column name to values.
// All columns must have the same length.
func NewTable(columns map[string][]float64) (*Table, error) {
	t := &Table{
		data: make(map[string][]float64, len(columns)),
		n:    -1,
	}

	for _, name := range orderColumns(columns) {
		values := columns[name]
		if t.n >= 0 && len(values) != t.n {
			return nil, fmt.Errorf("column %q has %d values, expected %d: %w", name, len(values), t.n, ErrLengthMismatch)
		}
		t.n = len(values)
		t.columns = append(t.columns, name)
		t.data[name] = append([]float64(nil), values...)
	}

	if t.n < 0 {
		t.n = 0
	}
	return t, nil
}

// TableFromRows builds a table from rows of named fields. A key absent
// from a row is stored as Missing.
func TableFromRows(rows []map[string]float64) (*Table, error) {
	names := make(map[string][]float64)
	for _, row := range rows {
		for name := range row {
			names[name] = nil
		}
	}

	columns := make(map[string][]float64, len(names))
	for name := range names {
		values := make([]float64, len(rows))
		for i, row := range rows {
			v, ok := row[name]
			if !ok {
				v = Missing
			}
			values[i] = v
		}
		columns[name] = values
	}

	return NewTable(columns)
}

// orderColumns puts the known columns first in their canonical order and
// the rest after them alphabetically.
func orderColumns(columns map[string][]float64) []string {
	known := []string{ColX, ColY, ColThalweg, ColStation}
	known = append(known, FillColumns...)
	for _, m := range Morphologies {
		known = append(known, string(m))
	}

	seen := make(map[string]bool, len(known))
	var ordered []string
	for _, name := range known {
		seen[name] = true
		if _, ok := columns[name]; ok {
			ordered = append(ordered, name)
		}
	}

	var extra []string
	for name := range columns {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)

	return append(ordered, extra...)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return t.n
}

// Columns returns the column names in table order
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Has reports whether the table carries the named column
func (t *Table) Has(name string) bool {
	_, ok := t.data[name]
	return ok
}

// Column returns a copy of the named column
func (t *Table) Column(name string) ([]float64, bool) {
	values, ok := t.data[name]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), values...), true
}

// Value returns a single cell, or Missing when the column is absent
func (t *Table) Value(name string, row int) float64 {
	values, ok := t.data[name]
	if !ok || row < 0 || row >= t.n {
		return Missing
	}
	return values[row]
}

// Row returns the named fields of a single row
func (t *Table) Row(i int) map[string]float64 {
	row := make(map[string]float64, len(t.columns))
	for _, name := range t.columns {
		row[name] = t.data[name][i]
	}
	return row
}

// With returns a new table where the named column holds values. An
// existing column is replaced in place; a new one is appended.
func (t *Table) With(name string, values []float64) (*Table, error) {
	if len(t.columns) > 0 && len(values) != t.n {
		return nil, fmt.Errorf("column %q has %d values, expected %d: %w", name, len(values), t.n, ErrLengthMismatch)
	}

	next := t.shallowCopy()
	if !next.Has(name) {
		next.columns = append(next.columns, name)
	}
	next.data[name] = append([]float64(nil), values...)
	next.n = len(values)
	return next, nil
}

// Without returns a new table lacking the named column
func (t *Table) Without(name string) *Table {
	next := t.shallowCopy()
	if !next.Has(name) {
		return next
	}
	delete(next.data, name)
	cols := next.columns[:0:0]
	for _, c := range next.columns {
		if c != name {
			cols = append(cols, c)
		}
	}
	next.columns = cols
	return next
}

// Slice returns a deep copy of rows [start, end)
func (t *Table) Slice(start, end int) (*Table, error) {
	if start < 0 || end > t.n || start > end {
		return nil, fmt.Errorf("slice [%d, %d) out of range for %d rows", start, end, t.n)
	}

	sub := &Table{
		columns: append([]string(nil), t.columns...),
		data:    make(map[string][]float64, len(t.columns)),
		n:       end - start,
	}
	for _, name := range t.columns {
		sub.data[name] = append([]float64(nil), t.data[name][start:end]...)
	}
	return sub, nil
}

// shallowCopy copies the column index but shares the column slices,
// which is safe because no Table method writes into an existing slice.
func (t *Table) shallowCopy() *Table {
	next := &Table{
		columns: append([]string(nil), t.columns...),
		data:    make(map[string][]float64, len(t.data)),
		n:       t.n,
	}
	for name, values := range t.data {
		next.data[name] = values
	}
	return next
}
