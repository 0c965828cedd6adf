package construct

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/strataframe/strata/pkg/errors"
	"github.com/strataframe/strata/pkg/frame"
	"github.com/strataframe/strata/pkg/pool"
	"github.com/strataframe/strata/pkg/schema"
)

// FromArrow constructs from the Arrow columnar family. A whole table or
// record batch produces a *frame.Table; a single array or chunked array
// produces a *frame.Column whose default name is the empty string. Any
// other value fails with an unsupported-input error.
//
// With rechunk disabled, a single-chunk, null-free int64 or float64
// array is adopted without copying: the adopted buffer stays reachable
// through the column (the garbage collector provides the strong hold)
// and its capacity is pinned so appending to the result cannot touch the
// source. Everything else copies, which also makes multi-chunk input
// contiguous — the contiguity the rechunk flag (default true) requests.
func FromArrow(v interface{}, opts ...Option) (frame.Data, error) {
	o := applyOptions(opts)

	switch x := v.(type) {
	case arrow.Table:
		n := int(x.NumCols())
		names := make([]string, n)
		built := make([]*frame.Column, n)
		for i := 0; i < n; i++ {
			names[i] = x.Schema().Field(i).Name
			col, err := convertChunks(names[i], x.Column(i).Data().Chunks(), o.rechunk)
			if err != nil {
				return nil, err
			}
			built[i] = col
		}
		return finishForeignTable(names, built, o)

	case arrow.Record:
		n := int(x.NumCols())
		names := make([]string, n)
		built := make([]*frame.Column, n)
		for i := 0; i < n; i++ {
			names[i] = x.ColumnName(i)
			col, err := convertChunks(names[i], []arrow.Array{x.Column(i)}, o.rechunk)
			if err != nil {
				return nil, err
			}
			built[i] = col
		}
		return finishForeignTable(names, built, o)

	case *arrow.Chunked:
		col, err := convertChunks("", x.Chunks(), o.rechunk)
		if err != nil {
			return nil, err
		}
		return finishForeignColumn(col, o)

	case arrow.Array:
		col, err := convertChunks("", []arrow.Array{x}, o.rechunk)
		if err != nil {
			return nil, err
		}
		return finishForeignColumn(col, o)

	default:
		return nil, errors.UnsupportedInput(v)
	}
}

// finishForeignTable reconciles declared renames and overrides against
// columns that arrived already typed, renaming and casting as needed.
func finishForeignTable(names []string, built []*frame.Column, o *options) (*frame.Table, error) {
	resolved, err := schema.Resolve(names, o.schema, o.overrides, func(i int, name string) (frame.DataType, error) {
		return built[i].Type(), nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]*frame.Column, resolved.Len())
	for i := 0; i < resolved.Len(); i++ {
		f := resolved.Field(i)
		col := built[i]
		if col.Name() != f.Name {
			col = col.Rename(f.Name)
		}
		if col.Type() != f.Type {
			cast, err := col.Cast(f.Type)
			if err != nil {
				return nil, err
			}
			col = cast
		}
		out[i] = col
	}
	return frame.NewTable(out...)
}

// finishForeignColumn applies single-column naming and overrides. The
// generated-placeholder rule does not apply here: an unnamed result
// keeps the empty name.
func finishForeignColumn(col *frame.Column, o *options) (*frame.Column, error) {
	name, t, err := resolveSingle(col.Name(), col.Type(), o)
	if err != nil {
		return nil, err
	}
	if col.Name() != name {
		col = col.Rename(name)
	}
	if col.Type() != t {
		return col.Cast(t)
	}
	return col, nil
}

// convertChunks turns one logical Arrow column into a frame column,
// adopting the backing buffer when the layout permits.
func convertChunks(name string, chunks []arrow.Array, rechunk bool) (*frame.Column, error) {
	if len(chunks) == 1 && !rechunk {
		switch a := chunks[0].(type) {
		case *array.Int64:
			if a.NullN() == 0 {
				return frame.AdoptInt64(name, a.Int64Values()), nil
			}
		case *array.Float64:
			if a.NullN() == 0 {
				return frame.AdoptFloat64(name, a.Float64Values()), nil
			}
		}
	}

	// scratch slice only: NewColumn copies into typed buffers
	scratch := pool.GetValueSlice()
	defer pool.PutValueSlice(scratch)

	values := (*scratch)[:0]
	t := frame.TypeNull
	for _, chunk := range chunks {
		var (
			chunkType frame.DataType
			err       error
		)
		values, chunkType, err = appendArrowValues(values, chunk)
		if err != nil {
			return nil, err
		}
		unified, ok := schema.Unify(t, chunkType)
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeData,
				"column %q: chunks disagree on type (%s vs %s)", name, t, chunkType)
		}
		t = unified
	}
	*scratch = values
	return frame.NewColumn(name, t, values)
}

// appendArrowValues extracts one chunk's values as raw Go values,
// reporting the mapped data type. Types without a scalar mapping fall
// back to JSON via the array's marshal representation.
func appendArrowValues(values []interface{}, arr arrow.Array) ([]interface{}, frame.DataType, error) {
	push := func(t frame.DataType, get func(i int) interface{}) frame.DataType {
		for i := 0; i < arr.Len(); i++ {
			if arr.IsNull(i) {
				values = append(values, nil)
				continue
			}
			values = append(values, get(i))
		}
		return t
	}

	var t frame.DataType
	switch a := arr.(type) {
	case *array.Boolean:
		t = push(frame.TypeBool, func(i int) interface{} { return a.Value(i) })
	case *array.Int8:
		t = push(frame.TypeInt64, func(i int) interface{} { return int64(a.Value(i)) })
	case *array.Int16:
		t = push(frame.TypeInt64, func(i int) interface{} { return int64(a.Value(i)) })
	case *array.Int32:
		t = push(frame.TypeInt64, func(i int) interface{} { return int64(a.Value(i)) })
	case *array.Int64:
		t = push(frame.TypeInt64, func(i int) interface{} { return a.Value(i) })
	case *array.Uint8:
		t = push(frame.TypeInt64, func(i int) interface{} { return int64(a.Value(i)) })
	case *array.Uint16:
		t = push(frame.TypeInt64, func(i int) interface{} { return int64(a.Value(i)) })
	case *array.Uint32:
		t = push(frame.TypeInt64, func(i int) interface{} { return int64(a.Value(i)) })
	case *array.Uint64:
		// overflow surfaces in column coercion, not here
		t = push(frame.TypeInt64, func(i int) interface{} { return a.Value(i) })
	case *array.Float32:
		t = push(frame.TypeFloat64, func(i int) interface{} { return float64(a.Value(i)) })
	case *array.Float64:
		t = push(frame.TypeFloat64, func(i int) interface{} { return a.Value(i) })
	case *array.String:
		t = push(frame.TypeString, func(i int) interface{} { return a.Value(i) })
	case *array.LargeString:
		t = push(frame.TypeString, func(i int) interface{} { return a.Value(i) })
	case *array.Binary:
		t = push(frame.TypeBytes, func(i int) interface{} { return a.Value(i) })
	case *array.LargeBinary:
		t = push(frame.TypeBytes, func(i int) interface{} { return a.Value(i) })
	case *array.FixedSizeBinary:
		t = push(frame.TypeBytes, func(i int) interface{} { return a.Value(i) })
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		t = push(frame.TypeTimestamp, func(i int) interface{} { return a.Value(i).ToTime(unit) })
	case *array.Date32:
		t = push(frame.TypeTimestamp, func(i int) interface{} { return a.Value(i).ToTime() })
	case *array.Date64:
		t = push(frame.TypeTimestamp, func(i int) interface{} { return a.Value(i).ToTime() })
	case *array.Null:
		t = push(frame.TypeNull, func(int) interface{} { return nil })
	default:
		// nested or exotic layouts keep their structure as JSON
		t = push(frame.TypeJSON, func(i int) interface{} { return arr.GetOneForMarshal(i) })
	}
	return values, t, nil
}
