// Package testutil provides shared test helpers: Arrow fixture builders
// and table assertions.
package testutil

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/strataframe/strata/pkg/frame"
)

// Int64Array builds an Arrow int64 array; a nil entry is a null.
func Int64Array(t *testing.T, values []interface{}) arrow.Array {
	t.Helper()
	b := array.NewInt64Builder(memory.NewGoAllocator())
	defer b.Release()
	for _, v := range values {
		if v == nil {
			b.AppendNull()
			continue
		}
		b.Append(v.(int64))
	}
	return b.NewArray()
}

// Float64Array builds an Arrow float64 array; a nil entry is a null.
func Float64Array(t *testing.T, values []interface{}) arrow.Array {
	t.Helper()
	b := array.NewFloat64Builder(memory.NewGoAllocator())
	defer b.Release()
	for _, v := range values {
		if v == nil {
			b.AppendNull()
			continue
		}
		b.Append(v.(float64))
	}
	return b.NewArray()
}

// StringArray builds an Arrow string array; a nil entry is a null.
func StringArray(t *testing.T, values []interface{}) arrow.Array {
	t.Helper()
	b := array.NewStringBuilder(memory.NewGoAllocator())
	defer b.Release()
	for _, v := range values {
		if v == nil {
			b.AppendNull()
			continue
		}
		b.Append(v.(string))
	}
	return b.NewArray()
}

// Record assembles an Arrow record batch from prebuilt arrays.
func Record(t *testing.T, names []string, cols []arrow.Array) arrow.Record {
	t.Helper()
	require.Equal(t, len(names), len(cols))
	fields := make([]arrow.Field, len(names))
	for i := range names {
		fields[i] = arrow.Field{Name: names[i], Type: cols[i].DataType(), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, cols, int64(cols[0].Len()))
}

// RequireColumn asserts a table column's type and row values (nil = null).
func RequireColumn(t *testing.T, table *frame.Table, name string, want frame.DataType, values []interface{}) {
	t.Helper()
	col := table.Column(name)
	require.NotNil(t, col, "column %q missing", name)
	require.Equal(t, want, col.Type(), "column %q type", name)
	require.Equal(t, len(values), col.Len(), "column %q length", name)
	for i, v := range values {
		require.Equal(t, v, col.Get(i), "column %q row %d", name, i)
	}
}
