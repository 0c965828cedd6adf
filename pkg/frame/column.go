package frame

import (
	"bytes"
	"time"

	"github.com/strataframe/strata/pkg/errors"
)

// Column is a single named, homogeneously-typed, nullable sequence of
// values: a typed buffer plus a validity bitmap.
type Column struct {
	name     string
	dtype    DataType
	buf      buffer
	validity []uint64
	length   int
	nulls    int
}

func (*Column) isData() {}

// NewColumn builds a column of type t from raw values. A nil value is a
// null entry. Coercion is strict: a value the buffer cannot represent
// (type mismatch, integer overflow, unparseable text) fails the whole
// construction with a data error naming the offending row.
func NewColumn(name string, t DataType, values []interface{}) (*Column, error) {
	c := NewEmptyColumn(name, t)
	for i, v := range values {
		if err := c.Append(v); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData,
				"column "+name).WithDetail("row", i)
		}
	}
	return c, nil
}

// NewEmptyColumn creates a zero-length column of type t.
func NewEmptyColumn(name string, t DataType) *Column {
	return &Column{
		name:  name,
		dtype: t,
		buf:   newBuffer(t),
	}
}

// AdoptInt64 wraps an existing int64 slice as a null-free column without
// copying. The adopted slice's capacity is pinned to its length, so a
// later Append reallocates rather than growing into the source buffer.
// The source must not be mutated while the column is alive.
func AdoptInt64(name string, vals []int64) *Column {
	c := &Column{
		name:  name,
		dtype: TypeInt64,
		buf:   adoptInt64Buffer(vals),
	}
	c.markAllValid(len(vals))
	return c
}

// AdoptFloat64 wraps an existing float64 slice as a null-free column
// without copying, under the same contract as AdoptInt64.
func AdoptFloat64(name string, vals []float64) *Column {
	c := &Column{
		name:  name,
		dtype: TypeFloat64,
		buf:   adoptFloat64Buffer(vals),
	}
	c.markAllValid(len(vals))
	return c
}

func (c *Column) markAllValid(n int) {
	words := (n + 63) / 64
	c.validity = make([]uint64, words)
	for i := 0; i < n; i++ {
		c.validity[i/64] |= 1 << (i % 64)
	}
	c.length = n
}

// Name returns the column name
func (c *Column) Name() string { return c.name }

// Type returns the column data type
func (c *Column) Type() DataType { return c.dtype }

// Len returns the number of rows
func (c *Column) Len() int { return c.length }

// NullCount returns the number of null entries
func (c *Column) NullCount() int { return c.nulls }

// Field returns the column's schema field
func (c *Column) Field() Field { return Field{Name: c.name, Type: c.dtype} }

// IsNull reports whether row i is null
func (c *Column) IsNull(i int) bool {
	return (c.validity[i/64] & (1 << (i % 64))) == 0
}

// Get returns the value at row i, or nil if the entry is null. The
// returned value is int64, float64, bool, string, time.Time or []byte
// depending on the column type.
func (c *Column) Get(i int) interface{} {
	if c.IsNull(i) {
		return nil
	}
	return c.buf.get(i)
}

// Values materializes all rows as a raw value slice, nulls as nil.
func (c *Column) Values() []interface{} {
	out := make([]interface{}, c.length)
	for i := 0; i < c.length; i++ {
		out[i] = c.Get(i)
	}
	return out
}

// Append adds one value (nil for null) to the column. Append is the only
// mutator; columns produced by Rename share storage with their source, so
// appending to either is visible through the other up to the shared
// prefix.
func (c *Column) Append(v interface{}) error {
	if v == nil {
		c.buf.appendZero()
		c.appendValidity(false)
		c.nulls++
		return nil
	}
	if c.dtype == TypeNull {
		return errors.Newf(errors.ErrorTypeData,
			"null-typed column %q cannot hold value %v", c.name, v)
	}
	if err := c.buf.append(v); err != nil {
		return err
	}
	c.appendValidity(true)
	return nil
}

func (c *Column) appendValidity(valid bool) {
	word := c.length / 64
	if word >= len(c.validity) {
		c.validity = append(c.validity, 0)
	}
	if valid {
		c.validity[word] |= 1 << (c.length % 64)
	}
	c.length++
}

// Rename returns a column with a new name sharing this column's buffer
// and validity bitmap. Used by the mapping adapter to adopt an existing
// column under its mapping key without copying.
func (c *Column) Rename(name string) *Column {
	out := *c
	out.name = name
	return &out
}

// Cast rebuilds the column under a different data type by re-coercing
// its materialized values. A TypeNull column casts to any type as an
// all-null column of the same length.
func (c *Column) Cast(t DataType) (*Column, error) {
	if t == c.dtype {
		return c, nil
	}
	return NewColumn(c.name, t, c.Values())
}

// MemoryUsage returns the approximate in-memory size in bytes
func (c *Column) MemoryUsage() int64 {
	return c.buf.memory() + int64(len(c.validity)*8)
}

// Equal reports whether two columns have the same name, type, length and
// row-for-row values (null positions included).
func (c *Column) Equal(o *Column) bool {
	if c.name != o.name || c.dtype != o.dtype || c.length != o.length {
		return false
	}
	for i := 0; i < c.length; i++ {
		if c.IsNull(i) != o.IsNull(i) {
			return false
		}
		if c.IsNull(i) {
			continue
		}
		if !valueEqual(c.buf.get(i), o.buf.get(i)) {
			return false
		}
	}
	return true
}

func valueEqual(a, b interface{}) bool {
	switch x := a.(type) {
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	default:
		return a == b
	}
}
