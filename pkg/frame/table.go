package frame

import (
	"github.com/strataframe/strata/pkg/errors"
)

// Table is an ordered collection of equal-length, uniquely-named columns.
type Table struct {
	cols  []*Column
	index map[string]int
}

func (*Table) isData() {}

// NewTable builds a table from columns, enforcing unique names and equal
// lengths. The table takes ownership of the column slice.
func NewTable(cols ...*Column) (*Table, error) {
	t := &Table{
		cols:  cols,
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if _, dup := t.index[c.Name()]; dup {
			return nil, errors.Newf(errors.ErrorTypeData,
				"duplicate column name %q", c.Name())
		}
		t.index[c.Name()] = i
		if c.Len() != cols[0].Len() {
			return nil, errors.Newf(errors.ErrorTypeData,
				"ragged columns: %q has %d rows, %q has %d",
				c.Name(), c.Len(), cols[0].Name(), cols[0].Len())
		}
	}
	return t, nil
}

// NumRows returns the row count
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumColumns returns the column count
func (t *Table) NumColumns() int { return len(t.cols) }

// Names returns the ordered column names
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name()
	}
	return names
}

// Fields returns the ordered schema of the table
func (t *Table) Fields() []Field {
	fields := make([]Field, len(t.cols))
	for i, c := range t.cols {
		fields[i] = c.Field()
	}
	return fields
}

// Column returns the named column, or nil if absent
func (t *Table) Column(name string) *Column {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.cols[i]
}

// ColumnAt returns the column at position i
func (t *Table) ColumnAt(i int) *Column { return t.cols[i] }

// Columns returns the ordered columns. The slice is shared; callers must
// not modify it.
func (t *Table) Columns() []*Column { return t.cols }

// MemoryUsage returns the approximate in-memory size in bytes
func (t *Table) MemoryUsage() int64 {
	var total int64
	for _, c := range t.cols {
		total += c.MemoryUsage()
	}
	return total
}

// Equal reports whether two tables have identical schemas and values
func (t *Table) Equal(o *Table) bool {
	if len(t.cols) != len(o.cols) {
		return false
	}
	for i, c := range t.cols {
		if !c.Equal(o.cols[i]) {
			return false
		}
	}
	return true
}
