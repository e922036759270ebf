package table

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch indicates a column whose length differs from the table's row count.
	ErrLengthMismatch = errors.New("column length does not match table rows")
	// ErrDuplicateColumn indicates two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")
)

// Column is a named, ordered sequence of cells.
type Column struct {
	Name  string
	Cells []Cell
}

// Len returns the number of cells in the column.
func (c Column) Len() int { return len(c.Cells) }

// Table is an in-memory dataset of equal-length named columns.
// Tables are never mutated after construction; Select and WithColumn return new tables.
type Table struct {
	fields []string
	cols   map[string][]Cell
	rows   int
}

// New builds a table from columns in the given order.
func New(cols ...Column) (*Table, error) {
	t := &Table{cols: make(map[string][]Cell, len(cols))}
	for i, c := range cols {
		if i == 0 {
			t.rows = len(c.Cells)
		}
		if _, ok := t.cols[c.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		if len(c.Cells) != t.rows {
			return nil, fmt.Errorf("%w: %q has %d cells, want %d", ErrLengthMismatch, c.Name, len(c.Cells), t.rows)
		}
		t.fields = append(t.fields, c.Name)
		t.cols[c.Name] = c.Cells
	}
	return t, nil
}

// MustNew is like New but panics on error. Intended for fixtures.
func MustNew(cols ...Column) *Table {
	t, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns returns the field names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.fields))
	copy(out, t.fields)
	return out
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	cells, ok := t.cols[name]
	if !ok {
		return Column{}, false
	}
	return Column{Name: name, Cells: cells}, true
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Row is one table row with its field names.
type Row struct {
	Fields []string
	Cells  []Cell
}

// Get returns the cell for a field.
func (r Row) Get(name string) (Cell, bool) {
	for i, f := range r.Fields {
		if f == name {
			return r.Cells[i], true
		}
	}
	return Cell{}, false
}

// Row returns row i. It panics if i is out of range, like a slice index.
func (t *Table) Row(i int) Row {
	if i < 0 || i >= t.rows {
		panic(fmt.Sprintf("table: row %d out of range [0,%d)", i, t.rows))
	}
	cells := make([]Cell, len(t.fields))
	for j, f := range t.fields {
		cells[j] = t.cols[f][i]
	}
	return Row{Fields: t.Columns(), Cells: cells}
}

// Select projects the given rows, in the given order, into a new table.
func (t *Table) Select(idx []int) *Table {
	out := &Table{fields: t.Columns(), cols: make(map[string][]Cell, len(t.fields)), rows: len(idx)}
	for _, f := range t.fields {
		src := t.cols[f]
		dst := make([]Cell, len(idx))
		for k, i := range idx {
			dst[k] = src[i]
		}
		out.cols[f] = dst
	}
	return out
}

// WithColumn returns a copy of the table with the column appended, or replaced
// in place when a column with that name already exists.
func (t *Table) WithColumn(name string, cells []Cell) (*Table, error) {
	if len(cells) != t.rows {
		return nil, fmt.Errorf("%w: %q has %d cells, want %d", ErrLengthMismatch, name, len(cells), t.rows)
	}
	out := &Table{fields: t.Columns(), cols: make(map[string][]Cell, len(t.fields)+1), rows: t.rows}
	for f, c := range t.cols {
		out.cols[f] = c
	}
	if _, ok := out.cols[name]; !ok {
		out.fields = append(out.fields, name)
	}
	out.cols[name] = cells
	return out, nil
}
